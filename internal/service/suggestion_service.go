package service

import (
	"context"
	"strings"

	"ai-roadmap-be/internal/dto"
	"ai-roadmap-be/internal/entity"
	"ai-roadmap-be/internal/repository/memory"
	"ai-roadmap-be/internal/repository/specification"
	"ai-roadmap-be/internal/repository/unitofwork"
	"ai-roadmap-be/pkg/apperrors"
	"ai-roadmap-be/pkg/embedding"
	"ai-roadmap-be/pkg/vectorindex"

	"github.com/google/uuid"
)

const fallbackTopK = 5

type ISuggestionService interface {
	// Suggest embeds the query, matches it against the course and video
	// namespaces, and merges the resolved hits into the roadmap node's
	// suggestion ledgers.
	Suggest(ctx context.Context, ownerId uuid.UUID, req *dto.SuggestionQueryRequest) (*dto.SuggestionQueryResponse, error)

	// UpdateStatus upserts one ledger entry to the requested state, appending
	// it when the (content, node) pair is not in the ledger yet.
	UpdateStatus(ctx context.Context, ownerId uuid.UUID, req *dto.UpdateSuggestionStatusRequest) (*dto.UpdateSuggestionStatusResponse, error)
}

type suggestionService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.Provider
	indexClient       vectorindex.Client
	queryCache        *memory.QueryEmbeddingCache
	topK              int
}

func NewSuggestionService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.Provider,
	indexClient vectorindex.Client,
	queryCache *memory.QueryEmbeddingCache,
	defaultTopK int,
) ISuggestionService {
	if defaultTopK <= 0 {
		defaultTopK = fallbackTopK
	}
	return &suggestionService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		indexClient:       indexClient,
		queryCache:        queryCache,
		topK:              defaultTopK,
	}
}

func (s *suggestionService) Suggest(ctx context.Context, ownerId uuid.UUID, req *dto.SuggestionQueryRequest) (*dto.SuggestionQueryResponse, error) {
	query := strings.TrimSpace(req.Query)
	if query == "" {
		return nil, &apperrors.ValidationError{Field: "query", Message: "must not be empty"}
	}

	topK := req.TopK
	if topK <= 0 {
		topK = s.topK
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)

	// The roadmap node target is optional. Without one the query is answered
	// from the index alone and nothing is persisted.
	hasTarget := req.RoadmapId != uuid.Nil || req.NodeId != ""

	var roadmap *entity.Roadmap
	if hasTarget {
		if req.RoadmapId == uuid.Nil || req.NodeId == "" {
			return nil, &apperrors.ValidationError{Field: "node_id", Message: "roadmap_id and node_id must be provided together"}
		}

		var err error
		roadmap, err = uow.RoadmapRepository().FindOne(ctx,
			specification.ByID{ID: req.RoadmapId},
			specification.OwnedBy{OwnerID: ownerId},
		)
		if err != nil {
			return nil, err
		}
		if roadmap == nil {
			return nil, &apperrors.NotFoundError{Resource: "roadmap"}
		}
		if !hasNode(roadmap, req.NodeId) {
			return nil, &apperrors.ValidationError{Field: "node_id", Message: "node does not exist in roadmap"}
		}
	}

	values, err := s.queryVector(ctx, query)
	if err != nil {
		return nil, err
	}

	courses, err := s.matchCourses(ctx, uow, values, topK)
	if err != nil {
		return nil, err
	}
	videos, err := s.matchVideos(ctx, uow, values, topK)
	if err != nil {
		return nil, err
	}

	res := &dto.SuggestionQueryResponse{
		Courses: courses,
		Videos:  videos,
	}

	if roadmap == nil {
		res.Merge = dto.MergeReport{Skipped: true}
		return res, nil
	}

	// Ledger merge is best effort: a write failure must not discard results
	// the caller can already use.
	res.Merge = s.mergeLedgers(ctx, uow, roadmap, req.NodeId, courses, videos)

	return res, nil
}

func (s *suggestionService) UpdateStatus(ctx context.Context, ownerId uuid.UUID, req *dto.UpdateSuggestionStatusRequest) (*dto.UpdateSuggestionStatusResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	roadmap, err := uow.RoadmapRepository().FindOne(ctx,
		specification.ByID{ID: req.RoadmapId},
		specification.OwnedBy{OwnerID: ownerId},
	)
	if err != nil {
		return nil, err
	}
	if roadmap == nil {
		return nil, &apperrors.NotFoundError{Resource: "roadmap"}
	}
	if !hasNode(roadmap, req.NodeId) {
		return nil, &apperrors.ValidationError{Field: "node_id", Message: "node does not exist in roadmap"}
	}

	ledger := &roadmap.CourseSuggestions
	if req.Kind == "video" {
		ledger = &roadmap.VideoSuggestions
	}

	// Upsert: the caller passes the intended final state. A pair the ledger
	// has never seen gets appended with that state.
	updated := false
	for i := range *ledger {
		if (*ledger)[i].ContentId == req.ContentId && (*ledger)[i].NodeId == req.NodeId {
			(*ledger)[i].Status = req.Status
			updated = true
			break
		}
	}
	if !updated {
		*ledger = append(*ledger, entity.Suggestion{
			ContentId: req.ContentId,
			NodeId:    req.NodeId,
			Status:    req.Status,
		})
	}

	if err := uow.RoadmapRepository().Update(ctx, roadmap); err != nil {
		return nil, err
	}

	return &dto.UpdateSuggestionStatusResponse{
		RoadmapId: roadmap.Id,
		Updated:   true,
	}, nil
}

// queryVector returns the embedding for a suggestion query, reusing a cached
// vector when the same query was embedded recently.
func (s *suggestionService) queryVector(ctx context.Context, query string) ([]float32, error) {
	cacheKey := s.embeddingProvider.ModelName() + "|" + query
	if values, found := s.queryCache.Get(cacheKey); found {
		return values, nil
	}

	res, err := s.embeddingProvider.Generate(ctx, query, embedding.TaskRetrievalQuery)
	if err != nil {
		return nil, err
	}

	s.queryCache.Save(cacheKey, res.Values)
	return res.Values, nil
}

func (s *suggestionService) matchCourses(ctx context.Context, uow unitofwork.UnitOfWork, values []float32, topK int) ([]dto.SuggestedContent, error) {
	matches, err := s.indexClient.Query(ctx, entity.Namespace(entity.KindCourse), values, topK)
	if err != nil {
		return nil, err
	}

	ids, scoreOrder := matchedIds(matches, entity.KindCourse)
	if len(ids) == 0 {
		return []dto.SuggestedContent{}, nil
	}

	courses, err := uow.CourseRepository().FindAll(ctx,
		specification.ByIDs{IDs: ids},
		specification.PublishedAndApproved{},
	)
	if err != nil {
		return nil, err
	}

	byId := make(map[uuid.UUID]*entity.Course, len(courses))
	for _, c := range courses {
		byId[c.Id] = c
	}

	// Walk the index order so ranking survives the catalog lookup. Hits whose
	// row is gone or no longer visible drop out silently.
	out := make([]dto.SuggestedContent, 0, len(ids))
	for _, so := range scoreOrder {
		c, ok := byId[so.id]
		if !ok {
			continue
		}
		out = append(out, dto.SuggestedContent{
			Id:       c.Id,
			Title:    c.Title,
			Subtitle: c.Subtitle,
			Category: c.Category,
			Level:    c.Level,
			Score:    so.score,
		})
	}
	return out, nil
}

func (s *suggestionService) matchVideos(ctx context.Context, uow unitofwork.UnitOfWork, values []float32, topK int) ([]dto.SuggestedContent, error) {
	matches, err := s.indexClient.Query(ctx, entity.Namespace(entity.KindVideo), values, topK)
	if err != nil {
		return nil, err
	}

	ids, scoreOrder := matchedIds(matches, entity.KindVideo)
	if len(ids) == 0 {
		return []dto.SuggestedContent{}, nil
	}

	videos, err := uow.VideoRepository().FindAll(ctx,
		specification.ByIDs{IDs: ids},
		specification.PublishedAndApproved{},
	)
	if err != nil {
		return nil, err
	}

	byId := make(map[uuid.UUID]*entity.Video, len(videos))
	for _, v := range videos {
		byId[v.Id] = v
	}

	out := make([]dto.SuggestedContent, 0, len(ids))
	for _, so := range scoreOrder {
		v, ok := byId[so.id]
		if !ok {
			continue
		}
		out = append(out, dto.SuggestedContent{
			Id:       v.Id,
			Title:    v.Title,
			Subtitle: v.Subtitle,
			Category: v.Category,
			Level:    v.Level,
			Score:    so.score,
		})
	}
	return out, nil
}

type scoredId struct {
	id    uuid.UUID
	score float32
}

// matchedIds parses entity ids out of embedding keys like "course_<uuid>",
// deduplicating while preserving the index ranking.
func matchedIds(matches []vectorindex.Match, kind entity.EntityKind) ([]uuid.UUID, []scoredId) {
	prefix := string(kind) + "_"

	ids := make([]uuid.UUID, 0, len(matches))
	order := make([]scoredId, 0, len(matches))
	seen := make(map[uuid.UUID]bool)

	for _, m := range matches {
		raw, ok := strings.CutPrefix(m.Id, prefix)
		if !ok {
			continue
		}
		id, err := uuid.Parse(raw)
		if err != nil || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
		order = append(order, scoredId{id: id, score: float32(m.Score)})
	}
	return ids, order
}

// mergeLedgers appends new (content, node) pairs to the roadmap's suggestion
// lists and persists the roadmap. Existing pairs keep their status.
func (s *suggestionService) mergeLedgers(ctx context.Context, uow unitofwork.UnitOfWork, roadmap *entity.Roadmap, nodeId string, courses, videos []dto.SuggestedContent) dto.MergeReport {
	addedCourses := appendNewEntries(&roadmap.CourseSuggestions, nodeId, courses)
	addedVideos := appendNewEntries(&roadmap.VideoSuggestions, nodeId, videos)

	if addedCourses == 0 && addedVideos == 0 {
		return dto.MergeReport{CoursesMerged: true, VideosMerged: true}
	}

	if err := uow.RoadmapRepository().Update(ctx, roadmap); err != nil {
		return dto.MergeReport{Error: err.Error()}
	}
	return dto.MergeReport{CoursesMerged: true, VideosMerged: true}
}

func appendNewEntries(ledger *[]entity.Suggestion, nodeId string, hits []dto.SuggestedContent) int {
	existing := make(map[uuid.UUID]bool)
	for _, e := range *ledger {
		if e.NodeId == nodeId {
			existing[e.ContentId] = true
		}
	}

	added := 0
	for _, h := range hits {
		if existing[h.Id] {
			continue
		}
		*ledger = append(*ledger, entity.Suggestion{
			ContentId: h.Id,
			NodeId:    nodeId,
			Status:    false,
		})
		existing[h.Id] = true
		added++
	}
	return added
}

func hasNode(roadmap *entity.Roadmap, nodeId string) bool {
	for _, n := range roadmap.Nodes {
		if n.Id == nodeId {
			return true
		}
	}
	return false
}
