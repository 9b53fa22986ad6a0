package service

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"
	"time"

	"ai-roadmap-be/internal/dto"
	"ai-roadmap-be/internal/entity"
	"ai-roadmap-be/internal/repository/specification"
	"ai-roadmap-be/internal/repository/unitofwork"
	"ai-roadmap-be/pkg/apperrors"
	"ai-roadmap-be/pkg/events"
	"ai-roadmap-be/pkg/llm"
	pktNats "ai-roadmap-be/pkg/nats"

	"github.com/google/uuid"
)

const roadmapPromptTemplate = `You are a curriculum designer. Build a step-by-step learning roadmap.

Topic: %s
Category: %s
Level: %s
Notes: %s

Respond ONLY with a JSON object of this exact shape:
{"title": "...", "description": "...", "nodes": [{"id": "step-1", "title": "...", "description": "...", "order": 1}]}

Use between 5 and 10 nodes, ordered from fundamentals to advanced topics.`

type IRoadmapService interface {
	Generate(ctx context.Context, ownerId uuid.UUID, req *dto.GenerateRoadmapRequest) (*dto.GenerateRoadmapResponse, error)
	Show(ctx context.Context, ownerId uuid.UUID, id uuid.UUID) (*dto.RoadmapResponse, error)
	List(ctx context.Context, ownerId uuid.UUID) ([]*dto.RoadmapResponse, error)
	Update(ctx context.Context, ownerId uuid.UUID, req *dto.UpdateRoadmapRequest) (*dto.UpdateRoadmapResponse, error)
	Delete(ctx context.Context, ownerId uuid.UUID, id uuid.UUID) error
}

type roadmapService struct {
	uowFactory       unitofwork.RepositoryFactory
	publisherService IPublisherService
	llmProvider      llm.LLMProvider
	eventPublisher   *pktNats.Publisher
}

func NewRoadmapService(
	uowFactory unitofwork.RepositoryFactory,
	publisherService IPublisherService,
	llmProvider llm.LLMProvider,
	eventPublisher *pktNats.Publisher,
) IRoadmapService {
	return &roadmapService{
		uowFactory:       uowFactory,
		publisherService: publisherService,
		llmProvider:      llmProvider,
		eventPublisher:   eventPublisher,
	}
}

func (r *roadmapService) Generate(ctx context.Context, ownerId uuid.UUID, req *dto.GenerateRoadmapRequest) (*dto.GenerateRoadmapResponse, error) {
	prompt := fmt.Sprintf(roadmapPromptTemplate, req.Topic, req.Category, req.Level, req.Description)

	raw, err := r.llmProvider.Generate(ctx, prompt, llm.WithTemperature(0.4))
	if err != nil {
		return nil, err
	}

	title, description, nodes, err := parseGeneratedRoadmap(raw)
	if err != nil {
		return nil, err
	}
	if title == "" {
		title = req.Topic
	}

	uow := r.uowFactory.NewUnitOfWork(ctx)
	roadmap := entity.Roadmap{
		Id:                uuid.New(),
		Title:             title,
		Description:       description,
		Category:          req.Category,
		Level:             req.Level,
		Nodes:             nodes,
		CourseSuggestions: []entity.Suggestion{},
		VideoSuggestions:  []entity.Suggestion{},
		OwnerId:           ownerId,
		CreatedAt:         time.Now(),
	}

	if err := uow.RoadmapRepository().Create(ctx, &roadmap); err != nil {
		return nil, err
	}

	if err := r.queueEmbedding(ctx, roadmap.Id, ownerId); err != nil {
		return nil, err
	}

	if r.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: events.TypeRoadmapCreated,
			Data: map[string]interface{}{
				"title":      roadmap.Title,
				"roadmap_id": roadmap.Id,
				"user_id":    ownerId,
			},
			OccurredAt: time.Now(),
		}
		if err := r.eventPublisher.Publish(ctx, evt); err != nil {
			fmt.Printf("[WARN] Failed to publish ROADMAP_CREATED event: %v\n", err)
		}
	}

	return &dto.GenerateRoadmapResponse{Id: roadmap.Id}, nil
}

func (r *roadmapService) Show(ctx context.Context, ownerId uuid.UUID, id uuid.UUID) (*dto.RoadmapResponse, error) {
	uow := r.uowFactory.NewUnitOfWork(ctx)
	roadmap, err := uow.RoadmapRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{OwnerID: ownerId},
	)
	if err != nil {
		return nil, err
	}
	if roadmap == nil {
		return nil, &apperrors.NotFoundError{Resource: "roadmap"}
	}

	return toRoadmapResponse(roadmap), nil
}

func (r *roadmapService) List(ctx context.Context, ownerId uuid.UUID) ([]*dto.RoadmapResponse, error) {
	uow := r.uowFactory.NewUnitOfWork(ctx)
	roadmaps, err := uow.RoadmapRepository().FindAll(ctx,
		specification.OwnedBy{OwnerID: ownerId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.RoadmapResponse, 0, len(roadmaps))
	for _, roadmap := range roadmaps {
		res = append(res, toRoadmapResponse(roadmap))
	}
	return res, nil
}

func (r *roadmapService) Update(ctx context.Context, ownerId uuid.UUID, req *dto.UpdateRoadmapRequest) (*dto.UpdateRoadmapResponse, error) {
	uow := r.uowFactory.NewUnitOfWork(ctx)

	roadmap, err := uow.RoadmapRepository().FindOne(ctx,
		specification.ByID{ID: req.Id},
		specification.OwnedBy{OwnerID: ownerId},
	)
	if err != nil {
		return nil, err
	}
	if roadmap == nil {
		return nil, &apperrors.NotFoundError{Resource: "roadmap"}
	}

	now := time.Now()
	roadmap.Title = req.Title
	roadmap.Description = req.Description
	roadmap.Category = req.Category
	roadmap.Level = req.Level
	roadmap.Nodes = req.Nodes
	roadmap.UpdatedAt = &now

	// Ledger entries for removed nodes are garbage now; drop them.
	roadmap.CourseSuggestions = pruneOrphanedEntries(roadmap.CourseSuggestions, req.Nodes)
	roadmap.VideoSuggestions = pruneOrphanedEntries(roadmap.VideoSuggestions, req.Nodes)

	if err := uow.RoadmapRepository().Update(ctx, roadmap); err != nil {
		return nil, err
	}

	if err := r.queueEmbedding(ctx, roadmap.Id, ownerId); err != nil {
		return nil, err
	}

	return &dto.UpdateRoadmapResponse{Id: roadmap.Id}, nil
}

func (r *roadmapService) Delete(ctx context.Context, ownerId uuid.UUID, id uuid.UUID) error {
	uow := r.uowFactory.NewUnitOfWork(ctx)

	roadmap, err := uow.RoadmapRepository().FindOne(ctx,
		specification.ByID{ID: id},
		specification.OwnedBy{OwnerID: ownerId},
	)
	if err != nil {
		return err
	}
	if roadmap == nil {
		return &apperrors.NotFoundError{Resource: "roadmap"}
	}

	if err := uow.RoadmapRepository().Delete(ctx, id); err != nil {
		return err
	}

	return uow.EmbeddingStatusRepository().DeleteByEntity(ctx, id)
}

func (r *roadmapService) queueEmbedding(ctx context.Context, roadmapId, ownerId uuid.UUID) error {
	payload := dto.PublishEmbedMessage{
		EntityId:   roadmapId,
		OwnerId:    ownerId,
		EntityKind: entity.KindRoadmap,
	}
	payloadJson, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return r.publisherService.Publish(ctx, payloadJson)
}

// parseGeneratedRoadmap strips markdown fences the model may wrap the JSON in
// and decodes the node list. Missing node ids are filled in from the order.
func parseGeneratedRoadmap(response string) (string, string, []entity.RoadmapNode, error) {
	response = strings.TrimSpace(response)
	response = strings.TrimPrefix(response, "```json")
	response = strings.TrimPrefix(response, "```")
	response = strings.TrimSuffix(response, "```")
	response = strings.TrimSpace(response)

	jsonStart := strings.Index(response, "{")
	jsonEnd := strings.LastIndex(response, "}")
	if jsonStart >= 0 && jsonEnd > jsonStart {
		response = response[jsonStart : jsonEnd+1]
	}

	var parsed struct {
		Title       string               `json:"title"`
		Description string               `json:"description"`
		Nodes       []entity.RoadmapNode `json:"nodes"`
	}
	if err := json.Unmarshal([]byte(response), &parsed); err != nil {
		return "", "", nil, fmt.Errorf("model returned unparseable roadmap: %w", err)
	}
	if len(parsed.Nodes) == 0 {
		return "", "", nil, fmt.Errorf("model returned roadmap without nodes")
	}

	for i := range parsed.Nodes {
		if parsed.Nodes[i].Id == "" {
			parsed.Nodes[i].Id = fmt.Sprintf("step-%d", i+1)
		}
		if parsed.Nodes[i].Order == 0 {
			parsed.Nodes[i].Order = i + 1
		}
	}

	return parsed.Title, parsed.Description, parsed.Nodes, nil
}

func pruneOrphanedEntries(ledger []entity.Suggestion, nodes []entity.RoadmapNode) []entity.Suggestion {
	valid := make(map[string]bool, len(nodes))
	for _, n := range nodes {
		valid[n.Id] = true
	}

	kept := make([]entity.Suggestion, 0, len(ledger))
	for _, e := range ledger {
		if valid[e.NodeId] {
			kept = append(kept, e)
		}
	}
	return kept
}

func toRoadmapResponse(roadmap *entity.Roadmap) *dto.RoadmapResponse {
	return &dto.RoadmapResponse{
		Id:                roadmap.Id,
		Title:             roadmap.Title,
		Description:       roadmap.Description,
		Category:          roadmap.Category,
		Level:             roadmap.Level,
		Nodes:             roadmap.Nodes,
		CourseSuggestions: roadmap.CourseSuggestions,
		VideoSuggestions:  roadmap.VideoSuggestions,
		CreatedAt:         roadmap.CreatedAt,
		UpdatedAt:         roadmap.UpdatedAt,
	}
}
