package service

import (
	"context"
	"errors"
	"testing"

	"ai-roadmap-be/internal/dto"
	"ai-roadmap-be/internal/entity"
	"ai-roadmap-be/internal/repository/memory"
	"ai-roadmap-be/pkg/apperrors"
	"ai-roadmap-be/pkg/embedding"
	"ai-roadmap-be/pkg/vectorindex"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testRoadmap(ownerId uuid.UUID) *entity.Roadmap {
	return &entity.Roadmap{
		Id:       uuid.New(),
		Title:    "Backend Engineering",
		Category: "programming",
		Level:    "intermediate",
		Nodes: []entity.RoadmapNode{
			{Id: "step-1", Title: "HTTP basics", Order: 1},
			{Id: "step-2", Title: "Databases", Order: 2},
		},
		CourseSuggestions: []entity.Suggestion{},
		VideoSuggestions:  []entity.Suggestion{},
		OwnerId:           ownerId,
	}
}

func visibleCourse(id uuid.UUID, title string) *entity.Course {
	return &entity.Course{Id: id, Title: title, Category: "programming", Level: "intermediate", Published: true, Approved: true}
}

func newSuggestionFixture(t *testing.T) (*fakeUowFactory, *fakeEmbeddingProvider, *fakeIndexClient, ISuggestionService, *entity.Roadmap, uuid.UUID) {
	t.Helper()

	factory := newFakeUowFactory()
	ownerId := uuid.New()
	roadmap := testRoadmap(ownerId)
	factory.uow.roadmaps.findOneResult = roadmap

	provider := &fakeEmbeddingProvider{
		result: &embedding.Result{Values: []float32{0.5, 0.5}, Dimension: 2},
	}
	index := &fakeIndexClient{matches: map[string][]vectorindex.Match{}}

	svc := NewSuggestionService(factory, provider, index, memory.NewQueryEmbeddingCache(), 0)
	return factory, provider, index, svc, roadmap, ownerId
}

func TestSuggestEmptyQueryRejected(t *testing.T) {
	_, _, _, svc, roadmap, ownerId := newSuggestionFixture(t)

	_, err := svc.Suggest(context.Background(), ownerId, &dto.SuggestionQueryRequest{
		Query:     "   ",
		RoadmapId: roadmap.Id,
		NodeId:    "step-1",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestSuggestUnknownRoadmap(t *testing.T) {
	factory, _, _, svc, _, ownerId := newSuggestionFixture(t)
	factory.uow.roadmaps.findOneResult = nil

	_, err := svc.Suggest(context.Background(), ownerId, &dto.SuggestionQueryRequest{
		Query:     "learn sql",
		RoadmapId: uuid.New(),
		NodeId:    "step-1",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}

func TestSuggestUnknownNode(t *testing.T) {
	_, _, _, svc, roadmap, ownerId := newSuggestionFixture(t)

	_, err := svc.Suggest(context.Background(), ownerId, &dto.SuggestionQueryRequest{
		Query:     "learn sql",
		RoadmapId: roadmap.Id,
		NodeId:    "step-99",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestSuggestDefaultsTopK(t *testing.T) {
	_, _, index, svc, roadmap, ownerId := newSuggestionFixture(t)

	_, err := svc.Suggest(context.Background(), ownerId, &dto.SuggestionQueryRequest{
		Query:     "learn sql",
		RoadmapId: roadmap.Id,
		NodeId:    "step-1",
	})
	require.NoError(t, err)

	require.NotEmpty(t, index.queriedKs)
	for _, k := range index.queriedKs {
		assert.Equal(t, fallbackTopK, k)
	}
}

func TestSuggestUsesConfiguredTopK(t *testing.T) {
	factory := newFakeUowFactory()
	ownerId := uuid.New()
	roadmap := testRoadmap(ownerId)
	factory.uow.roadmaps.findOneResult = roadmap

	provider := &fakeEmbeddingProvider{result: &embedding.Result{Values: []float32{0.5}, Dimension: 1}}
	index := &fakeIndexClient{matches: map[string][]vectorindex.Match{}}

	svc := NewSuggestionService(factory, provider, index, memory.NewQueryEmbeddingCache(), 12)

	_, err := svc.Suggest(context.Background(), ownerId, &dto.SuggestionQueryRequest{
		Query:     "learn sql",
		RoadmapId: roadmap.Id,
		NodeId:    "step-1",
	})
	require.NoError(t, err)

	require.NotEmpty(t, index.queriedKs)
	for _, k := range index.queriedKs {
		assert.Equal(t, 12, k)
	}
}

func TestSuggestWithoutTargetSkipsMerge(t *testing.T) {
	factory, _, index, svc, _, ownerId := newSuggestionFixture(t)

	hit := uuid.New()
	index.matches["course-embeddings"] = []vectorindex.Match{
		{Id: entity.EmbeddingKey(entity.KindCourse, hit), Score: 0.9},
	}
	factory.uow.courses.findAllResult = []*entity.Course{visibleCourse(hit, "Hit")}

	res, err := svc.Suggest(context.Background(), ownerId, &dto.SuggestionQueryRequest{
		Query: "learn sql",
	})
	require.NoError(t, err)

	require.Len(t, res.Courses, 1)
	assert.True(t, res.Merge.Skipped)
	assert.False(t, res.Merge.CoursesMerged)
	assert.Empty(t, factory.uow.roadmaps.updated, "query without a target must not write any ledger")
}

func TestSuggestTargetRequiresBothFields(t *testing.T) {
	_, _, _, svc, _, ownerId := newSuggestionFixture(t)

	_, err := svc.Suggest(context.Background(), ownerId, &dto.SuggestionQueryRequest{
		Query:  "learn sql",
		NodeId: "step-1",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestSuggestPreservesRankingAndFiltersRetracted(t *testing.T) {
	factory, _, index, svc, roadmap, ownerId := newSuggestionFixture(t)

	first := uuid.New()
	retracted := uuid.New()
	second := uuid.New()

	index.matches["course-embeddings"] = []vectorindex.Match{
		{Id: entity.EmbeddingKey(entity.KindCourse, first), Score: 0.91},
		{Id: entity.EmbeddingKey(entity.KindCourse, retracted), Score: 0.85},
		{Id: entity.EmbeddingKey(entity.KindCourse, second), Score: 0.60},
	}
	// The retracted course does not come back from the catalog lookup.
	factory.uow.courses.findAllResult = []*entity.Course{
		visibleCourse(second, "SQL Deep Dive"),
		visibleCourse(first, "Intro to Databases"),
	}

	res, err := svc.Suggest(context.Background(), ownerId, &dto.SuggestionQueryRequest{
		Query:     "learn sql",
		RoadmapId: roadmap.Id,
		NodeId:    "step-2",
	})
	require.NoError(t, err)

	require.Len(t, res.Courses, 2)
	assert.Equal(t, first, res.Courses[0].Id)
	assert.InDelta(t, 0.91, float64(res.Courses[0].Score), 1e-6)
	assert.Equal(t, second, res.Courses[1].Id)
	assert.GreaterOrEqual(t, res.Courses[0].Score, res.Courses[1].Score)
}

func TestSuggestMergesLedgerWithoutDuplicates(t *testing.T) {
	factory, _, index, svc, roadmap, ownerId := newSuggestionFixture(t)

	known := uuid.New()
	fresh := uuid.New()

	// One entry already exists for this node, and the user already acted on it.
	roadmap.CourseSuggestions = []entity.Suggestion{
		{ContentId: known, NodeId: "step-1", Status: true},
	}

	index.matches["course-embeddings"] = []vectorindex.Match{
		{Id: entity.EmbeddingKey(entity.KindCourse, known), Score: 0.9},
		{Id: entity.EmbeddingKey(entity.KindCourse, fresh), Score: 0.8},
	}
	factory.uow.courses.findAllResult = []*entity.Course{
		visibleCourse(known, "Known"),
		visibleCourse(fresh, "Fresh"),
	}

	res, err := svc.Suggest(context.Background(), ownerId, &dto.SuggestionQueryRequest{
		Query:     "learn sql",
		RoadmapId: roadmap.Id,
		NodeId:    "step-1",
	})
	require.NoError(t, err)
	assert.True(t, res.Merge.CoursesMerged)

	require.Len(t, roadmap.CourseSuggestions, 2)
	assert.True(t, roadmap.CourseSuggestions[0].Status, "existing entry keeps its status")
	assert.Equal(t, fresh, roadmap.CourseSuggestions[1].ContentId)
	assert.False(t, roadmap.CourseSuggestions[1].Status)
}

func TestSuggestMergeFailureStillReturnsResults(t *testing.T) {
	factory, _, index, svc, roadmap, ownerId := newSuggestionFixture(t)

	hit := uuid.New()
	index.matches["course-embeddings"] = []vectorindex.Match{
		{Id: entity.EmbeddingKey(entity.KindCourse, hit), Score: 0.9},
	}
	factory.uow.courses.findAllResult = []*entity.Course{visibleCourse(hit, "Hit")}
	factory.uow.roadmaps.updateErr = errors.New("write conflict")

	res, err := svc.Suggest(context.Background(), ownerId, &dto.SuggestionQueryRequest{
		Query:     "learn sql",
		RoadmapId: roadmap.Id,
		NodeId:    "step-1",
	})
	require.NoError(t, err)

	require.Len(t, res.Courses, 1)
	assert.False(t, res.Merge.CoursesMerged)
	assert.Contains(t, res.Merge.Error, "write conflict")
}

func TestSuggestCachesQueryEmbedding(t *testing.T) {
	_, provider, _, svc, roadmap, ownerId := newSuggestionFixture(t)

	req := &dto.SuggestionQueryRequest{
		Query:     "learn sql",
		RoadmapId: roadmap.Id,
		NodeId:    "step-1",
	}

	_, err := svc.Suggest(context.Background(), ownerId, req)
	require.NoError(t, err)
	_, err = svc.Suggest(context.Background(), ownerId, req)
	require.NoError(t, err)

	assert.Equal(t, 1, provider.calls, "second identical query must hit the cache")
	assert.Equal(t, embedding.TaskRetrievalQuery, provider.lastTask)
}

func TestSuggestIndexErrorPropagates(t *testing.T) {
	_, _, index, svc, roadmap, ownerId := newSuggestionFixture(t)
	index.queryErr = apperrors.NewIndexServiceError(errors.New("timeout"), true)

	_, err := svc.Suggest(context.Background(), ownerId, &dto.SuggestionQueryRequest{
		Query:     "learn sql",
		RoadmapId: roadmap.Id,
		NodeId:    "step-1",
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsRetryable(err))
}

func TestUpdateStatusFlipsEntry(t *testing.T) {
	factory, _, _, svc, roadmap, ownerId := newSuggestionFixture(t)

	contentId := uuid.New()
	roadmap.VideoSuggestions = []entity.Suggestion{
		{ContentId: contentId, NodeId: "step-1", Status: false},
	}

	res, err := svc.UpdateStatus(context.Background(), ownerId, &dto.UpdateSuggestionStatusRequest{
		RoadmapId: roadmap.Id,
		NodeId:    "step-1",
		ContentId: contentId,
		Kind:      "video",
		Status:    true,
	})
	require.NoError(t, err)
	assert.True(t, res.Updated)
	assert.True(t, roadmap.VideoSuggestions[0].Status)
	require.Len(t, factory.uow.roadmaps.updated, 1)
}

func TestUpdateStatusAppendsMissingEntry(t *testing.T) {
	_, _, _, svc, roadmap, ownerId := newSuggestionFixture(t)

	contentId := uuid.New()
	req := &dto.UpdateSuggestionStatusRequest{
		RoadmapId: roadmap.Id,
		NodeId:    "step-1",
		ContentId: contentId,
		Kind:      "course",
		Status:    true,
	}

	res, err := svc.UpdateStatus(context.Background(), ownerId, req)
	require.NoError(t, err)
	assert.True(t, res.Updated)

	require.Len(t, roadmap.CourseSuggestions, 1)
	assert.Equal(t, contentId, roadmap.CourseSuggestions[0].ContentId)
	assert.Equal(t, "step-1", roadmap.CourseSuggestions[0].NodeId)
	assert.True(t, roadmap.CourseSuggestions[0].Status)

	// Repeating with the same pair updates in place, the ledger must not grow.
	req.Status = false
	_, err = svc.UpdateStatus(context.Background(), ownerId, req)
	require.NoError(t, err)
	require.Len(t, roadmap.CourseSuggestions, 1)
	assert.False(t, roadmap.CourseSuggestions[0].Status)
}

func TestUpdateStatusUnknownNode(t *testing.T) {
	_, _, _, svc, roadmap, ownerId := newSuggestionFixture(t)

	_, err := svc.UpdateStatus(context.Background(), ownerId, &dto.UpdateSuggestionStatusRequest{
		RoadmapId: roadmap.Id,
		NodeId:    "step-99",
		ContentId: uuid.New(),
		Kind:      "course",
		Status:    true,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsValidation(err))
}

func TestUpdateStatusUnknownRoadmap(t *testing.T) {
	factory, _, _, svc, _, ownerId := newSuggestionFixture(t)
	factory.uow.roadmaps.findOneResult = nil

	_, err := svc.UpdateStatus(context.Background(), ownerId, &dto.UpdateSuggestionStatusRequest{
		RoadmapId: uuid.New(),
		NodeId:    "step-1",
		ContentId: uuid.New(),
		Kind:      "course",
		Status:    true,
	})
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))
}
