package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"ai-roadmap-be/internal/entity"
	"ai-roadmap-be/pkg/apperrors"
	"ai-roadmap-be/pkg/embedding"
	"ai-roadmap-be/pkg/normalize"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func testCourse(ownerId uuid.UUID) *entity.Course {
	return &entity.Course{
		Id:          uuid.New(),
		Title:       "Go from Zero",
		Subtitle:    "Beginner path",
		Description: "Syntax and tooling",
		Category:    "programming",
		Level:       "beginner",
		OwnerId:     ownerId,
		CreatedAt:   time.Now(),
	}
}

func TestProcessEntitySuccess(t *testing.T) {
	factory := newFakeUowFactory()
	ownerId := uuid.New()
	course := testCourse(ownerId)
	factory.uow.courses.findOneResult = course

	provider := &fakeEmbeddingProvider{
		result: &embedding.Result{Values: []float32{0.1, 0.2}, Dimension: 2, TokenCount: 7},
	}
	index := &fakeIndexClient{}

	svc := NewEmbeddingService(factory, provider, index, 2, nil)

	err := svc.ProcessEntity(context.Background(), entity.KindCourse, course.Id, ownerId)
	require.NoError(t, err)

	rec := factory.uow.statuses.record(course.Id)
	require.NotNil(t, rec)
	assert.Equal(t, entity.EmbeddingStateCompleted, rec.Status)
	assert.Equal(t, normalize.CourseText(course), rec.SourceSnapshot)
	assert.Equal(t, 2, rec.Metrics.Dimension)
	assert.Equal(t, 7, rec.Metrics.TokenCount)
	assert.Equal(t, "fake-embedding-model", rec.Metrics.ModelName)
	assert.Equal(t, "course-embeddings", rec.Metrics.Namespace)

	require.Len(t, index.upserts, 1)
	up := index.upserts[0]
	assert.Equal(t, "course-embeddings", up.Namespace)
	assert.Equal(t, entity.EmbeddingKey(entity.KindCourse, course.Id), up.Id)
	assert.Equal(t, course.Id.String(), up.Metadata["entity_id"])
}

func TestProcessEntityProviderFailureMarksFailed(t *testing.T) {
	factory := newFakeUowFactory()
	ownerId := uuid.New()
	course := testCourse(ownerId)
	factory.uow.courses.findOneResult = course

	cause := apperrors.NewEmbeddingServiceError(errors.New("rate limited"), true)
	provider := &fakeEmbeddingProvider{err: cause}
	index := &fakeIndexClient{}

	svc := NewEmbeddingService(factory, provider, index, 1, nil)

	err := svc.ProcessEntity(context.Background(), entity.KindCourse, course.Id, ownerId)
	require.Error(t, err)
	assert.True(t, apperrors.IsRetryable(err))

	rec := factory.uow.statuses.record(course.Id)
	require.NotNil(t, rec)
	assert.Equal(t, entity.EmbeddingStateFailed, rec.Status)
	assert.Contains(t, rec.ErrorMessage, "rate limited")
	assert.Empty(t, index.upserts)
}

func TestProcessEntityIndexFailureMarksFailed(t *testing.T) {
	factory := newFakeUowFactory()
	ownerId := uuid.New()
	course := testCourse(ownerId)
	factory.uow.courses.findOneResult = course

	provider := &fakeEmbeddingProvider{
		result: &embedding.Result{Values: []float32{0.1}, Dimension: 1, TokenCount: 3},
	}
	index := &fakeIndexClient{
		upsertErr: apperrors.NewIndexServiceError(errors.New("index unavailable"), true),
	}

	svc := NewEmbeddingService(factory, provider, index, 1, nil)

	err := svc.ProcessEntity(context.Background(), entity.KindCourse, course.Id, ownerId)
	require.Error(t, err)
	assert.True(t, apperrors.IsRetryable(err))

	rec := factory.uow.statuses.record(course.Id)
	require.NotNil(t, rec)
	assert.Equal(t, entity.EmbeddingStateFailed, rec.Status)
}

func TestProcessEntityMissingEntity(t *testing.T) {
	factory := newFakeUowFactory()
	entityId := uuid.New()

	provider := &fakeEmbeddingProvider{}
	index := &fakeIndexClient{}

	svc := NewEmbeddingService(factory, provider, index, 1, nil)

	err := svc.ProcessEntity(context.Background(), entity.KindCourse, entityId, uuid.New())
	require.Error(t, err)
	assert.True(t, apperrors.IsNotFound(err))

	// Stale record dropped along the way
	assert.Contains(t, factory.uow.statuses.deleted, entityId)
	assert.Zero(t, provider.calls)
}

func TestProcessEntitySkipsUnchangedContent(t *testing.T) {
	factory := newFakeUowFactory()
	ownerId := uuid.New()
	course := testCourse(ownerId)
	factory.uow.courses.findOneResult = course

	provider := &fakeEmbeddingProvider{
		result: &embedding.Result{Values: []float32{0.1}, Dimension: 1},
	}
	factory.uow.statuses.findResult = &entity.EmbeddingStatus{
		Status:         entity.EmbeddingStateCompleted,
		SourceSnapshot: normalize.CourseText(course),
		ModelName:      provider.ModelName(),
	}
	index := &fakeIndexClient{}

	svc := NewEmbeddingService(factory, provider, index, 1, nil)

	err := svc.ProcessEntity(context.Background(), entity.KindCourse, course.Id, ownerId)
	require.NoError(t, err)

	assert.Zero(t, provider.calls)
	assert.Empty(t, index.upserts)
}

func TestProcessEntityReembedsWhenModelChanges(t *testing.T) {
	factory := newFakeUowFactory()
	ownerId := uuid.New()
	course := testCourse(ownerId)
	factory.uow.courses.findOneResult = course

	provider := &fakeEmbeddingProvider{
		result: &embedding.Result{Values: []float32{0.1}, Dimension: 1},
	}
	factory.uow.statuses.findResult = &entity.EmbeddingStatus{
		Status:         entity.EmbeddingStateCompleted,
		SourceSnapshot: normalize.CourseText(course),
		ModelName:      "old-model",
	}
	index := &fakeIndexClient{}

	svc := NewEmbeddingService(factory, provider, index, 1, nil)

	err := svc.ProcessEntity(context.Background(), entity.KindCourse, course.Id, ownerId)
	require.NoError(t, err)

	assert.Equal(t, 1, provider.calls)
	require.Len(t, index.upserts, 1)
}

func TestStatusReadNotFound(t *testing.T) {
	factory := newFakeUowFactory()
	svc := NewEmbeddingService(factory, &fakeEmbeddingProvider{}, &fakeIndexClient{}, 0, nil)

	res, err := svc.Status(context.Background(), uuid.New(), uuid.New())
	require.NoError(t, err)
	assert.Equal(t, entity.EmbeddingStateNotFound, res.Status)
	assert.Empty(t, res.EmbeddingKey)
}

func TestProcessEntityUsesDocumentTask(t *testing.T) {
	factory := newFakeUowFactory()
	ownerId := uuid.New()
	course := testCourse(ownerId)
	factory.uow.courses.findOneResult = course

	provider := &fakeEmbeddingProvider{
		result: &embedding.Result{Values: []float32{0.1}, Dimension: 1},
	}

	svc := NewEmbeddingService(factory, provider, &fakeIndexClient{}, 1, nil)

	err := svc.ProcessEntity(context.Background(), entity.KindCourse, course.Id, ownerId)
	require.NoError(t, err)
	assert.Equal(t, embedding.TaskRetrievalDocument, provider.lastTask)
}

func TestProcessEntityDimensionMismatchFails(t *testing.T) {
	factory := newFakeUowFactory()
	ownerId := uuid.New()
	course := testCourse(ownerId)
	factory.uow.courses.findOneResult = course

	provider := &fakeEmbeddingProvider{
		result: &embedding.Result{Values: []float32{0.1, 0.2, 0.3}, Dimension: 3},
	}
	index := &fakeIndexClient{}

	svc := NewEmbeddingService(factory, provider, index, 768, nil)

	err := svc.ProcessEntity(context.Background(), entity.KindCourse, course.Id, ownerId)
	require.Error(t, err)
	assert.False(t, apperrors.IsRetryable(err), "a dimension mismatch is a config problem, never retried")
	assert.Contains(t, err.Error(), "768")

	rec := factory.uow.statuses.record(course.Id)
	require.NotNil(t, rec)
	assert.Equal(t, entity.EmbeddingStateFailed, rec.Status)
	assert.Empty(t, index.upserts, "a mismatched vector must never reach the index")
}
