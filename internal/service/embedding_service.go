package service

import (
	"context"
	"fmt"
	"time"

	"ai-roadmap-be/internal/dto"
	"ai-roadmap-be/internal/entity"
	"ai-roadmap-be/internal/repository/contract"
	"ai-roadmap-be/internal/repository/specification"
	"ai-roadmap-be/internal/repository/unitofwork"
	"ai-roadmap-be/pkg/apperrors"
	"ai-roadmap-be/pkg/embedding"
	"ai-roadmap-be/pkg/events"
	pktNats "ai-roadmap-be/pkg/nats"
	"ai-roadmap-be/pkg/normalize"
	"ai-roadmap-be/pkg/vectorindex"

	"github.com/google/uuid"
)

type IEmbeddingService interface {
	// ProcessEntity runs the full pipeline for one entity: snapshot, embed,
	// index, record. It is safe to call repeatedly for the same entity.
	ProcessEntity(ctx context.Context, kind entity.EntityKind, entityId, ownerId uuid.UUID) error

	// Status reads the current lifecycle record for an entity.
	Status(ctx context.Context, entityId, ownerId uuid.UUID) (*dto.EmbeddingStatusResponse, error)
}

type embeddingService struct {
	uowFactory        unitofwork.RepositoryFactory
	embeddingProvider embedding.Provider
	indexClient       vectorindex.Client
	indexDimension    int
	eventPublisher    *pktNats.Publisher
}

// NewEmbeddingService builds the orchestrator. indexDimension is the vector
// size the index was created with; 0 disables the check.
func NewEmbeddingService(
	uowFactory unitofwork.RepositoryFactory,
	embeddingProvider embedding.Provider,
	indexClient vectorindex.Client,
	indexDimension int,
	eventPublisher *pktNats.Publisher,
) IEmbeddingService {
	return &embeddingService{
		uowFactory:        uowFactory,
		embeddingProvider: embeddingProvider,
		indexClient:       indexClient,
		indexDimension:    indexDimension,
		eventPublisher:    eventPublisher,
	}
}

// snapshot is the normalized source text plus the metadata stored alongside
// the vector for later resolution.
type snapshot struct {
	text     string
	metadata map[string]interface{}
}

func (es *embeddingService) ProcessEntity(ctx context.Context, kind entity.EntityKind, entityId, ownerId uuid.UUID) error {
	uow := es.uowFactory.NewUnitOfWork(ctx)
	statusRepo := uow.EmbeddingStatusRepository()

	snap, err := es.loadSnapshot(ctx, uow, kind, entityId)
	if err != nil {
		return err
	}
	if snap == nil {
		// Entity was deleted between publish and process. Drop any stale
		// status record and report not found so the caller can ack.
		if delErr := statusRepo.DeleteByEntity(ctx, entityId); delErr != nil {
			return delErr
		}
		return &apperrors.NotFoundError{Resource: string(kind)}
	}

	key := entity.EmbeddingKey(kind, entityId)
	namespace := entity.Namespace(kind)

	// Skip when the completed record already covers this exact content with
	// the current model.
	existing, err := statusRepo.Find(ctx, entityId, ownerId)
	if err != nil {
		return err
	}
	if existing.Status == entity.EmbeddingStateCompleted &&
		existing.SourceSnapshot == snap.text &&
		existing.ModelName == es.embeddingProvider.ModelName() {
		return nil
	}

	if err := statusRepo.UpsertProcessing(ctx, kind, entityId, ownerId, key, snap.text); err != nil {
		return err
	}

	started := time.Now()

	res, err := es.embeddingProvider.Generate(ctx, snap.text, embedding.TaskRetrievalDocument)
	if err != nil {
		es.recordFailure(ctx, statusRepo, kind, entityId, ownerId, err)
		return err
	}

	// A vector that does not fit the index is a configuration problem, not a
	// transient one. Retrying would produce the same mismatch.
	if es.indexDimension > 0 && res.Dimension != es.indexDimension {
		err := apperrors.NewEmbeddingServiceError(
			fmt.Errorf("model %q returned dimension %d, index expects %d",
				es.embeddingProvider.ModelName(), res.Dimension, es.indexDimension),
			false,
		)
		es.recordFailure(ctx, statusRepo, kind, entityId, ownerId, err)
		return err
	}

	if err := es.indexClient.Upsert(ctx, namespace, key, res.Values, snap.metadata); err != nil {
		es.recordFailure(ctx, statusRepo, kind, entityId, ownerId, err)
		return err
	}

	metrics := contract.CompletionMetrics{
		Dimension:  res.Dimension,
		ModelName:  es.embeddingProvider.ModelName(),
		Namespace:  namespace,
		TokenCount: res.TokenCount,
		DurationMs: time.Since(started).Milliseconds(),
		EmbeddedAt: time.Now(),
	}
	if err := statusRepo.MarkCompleted(ctx, entityId, ownerId, metrics); err != nil {
		return err
	}

	es.publishEvent(ctx, events.TypeEmbeddingCompleted, kind, entityId, ownerId, "")
	return nil
}

func (es *embeddingService) Status(ctx context.Context, entityId, ownerId uuid.UUID) (*dto.EmbeddingStatusResponse, error) {
	uow := es.uowFactory.NewUnitOfWork(ctx)

	record, err := uow.EmbeddingStatusRepository().Find(ctx, entityId, ownerId)
	if err != nil {
		return nil, err
	}

	res := dto.EmbeddingStatusResponse{
		EntityId: entityId,
		Status:   record.Status,
	}
	if record.Status == entity.EmbeddingStateNotFound {
		return &res, nil
	}

	res.EntityKind = record.EntityKind
	res.EmbeddingKey = record.EmbeddingKey
	res.Namespace = record.Namespace
	res.ModelName = record.ModelName
	res.Dimension = record.Dimension
	res.TokenCount = record.TokenCount
	res.DurationMs = record.DurationMs
	res.LastEmbeddedAt = record.LastEmbeddedAt
	res.ErrorMessage = record.ErrorMessage
	return &res, nil
}

// loadSnapshot fetches the entity and builds its normalized text plus index
// metadata. Returns (nil, nil) when the entity no longer exists.
func (es *embeddingService) loadSnapshot(ctx context.Context, uow unitofwork.UnitOfWork, kind entity.EntityKind, entityId uuid.UUID) (*snapshot, error) {
	byId := specification.ByID{ID: entityId}

	switch kind {
	case entity.KindCourse:
		course, err := uow.CourseRepository().FindOne(ctx, byId)
		if err != nil || course == nil {
			return nil, err
		}
		return &snapshot{
			text: normalize.CourseText(course),
			metadata: map[string]interface{}{
				"entity_kind": string(kind),
				"entity_id":   course.Id.String(),
				"owner_id":    course.OwnerId.String(),
				"title":       course.Title,
				"category":    course.Category,
				"level":       course.Level,
			},
		}, nil

	case entity.KindVideo:
		video, err := uow.VideoRepository().FindOne(ctx, byId)
		if err != nil || video == nil {
			return nil, err
		}
		return &snapshot{
			text: normalize.VideoText(video),
			metadata: map[string]interface{}{
				"entity_kind": string(kind),
				"entity_id":   video.Id.String(),
				"owner_id":    video.OwnerId.String(),
				"title":       video.Title,
				"category":    video.Category,
				"level":       video.Level,
			},
		}, nil

	case entity.KindRoadmap:
		roadmap, err := uow.RoadmapRepository().FindOne(ctx, byId)
		if err != nil || roadmap == nil {
			return nil, err
		}
		return &snapshot{
			text: normalize.RoadmapText(roadmap),
			metadata: map[string]interface{}{
				"entity_kind": string(kind),
				"entity_id":   roadmap.Id.String(),
				"owner_id":    roadmap.OwnerId.String(),
				"title":       roadmap.Title,
				"category":    roadmap.Category,
				"level":       roadmap.Level,
			},
		}, nil

	default:
		return nil, &apperrors.ValidationError{Field: "entity_kind", Message: fmt.Sprintf("unknown kind %q", kind)}
	}
}

func (es *embeddingService) recordFailure(ctx context.Context, statusRepo contract.EmbeddingStatusRepository, kind entity.EntityKind, entityId, ownerId uuid.UUID, cause error) {
	if err := statusRepo.MarkFailed(ctx, entityId, ownerId, cause.Error()); err != nil {
		fmt.Printf("[WARN] Failed to record embedding failure for %s: %v\n", entityId, err)
	}
	es.publishEvent(ctx, events.TypeEmbeddingFailed, kind, entityId, ownerId, cause.Error())
}

func (es *embeddingService) publishEvent(ctx context.Context, eventType string, kind entity.EntityKind, entityId, ownerId uuid.UUID, errMessage string) {
	if es.eventPublisher == nil {
		return
	}
	evt := events.NewEmbeddingEvent(eventType, string(kind), entityId, ownerId, errMessage)
	// Notification delivery is auxiliary; a bus hiccup must not fail the run.
	if err := es.eventPublisher.Publish(ctx, evt); err != nil {
		fmt.Printf("[WARN] Failed to publish %s event: %v\n", eventType, err)
	}
}
