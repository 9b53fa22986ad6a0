package implementation

import (
	"context"
	"errors"
	"time"

	"ai-roadmap-be/internal/entity"
	"ai-roadmap-be/internal/mapper"
	"ai-roadmap-be/internal/model"
	"ai-roadmap-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type EmbeddingStatusRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.EmbeddingStatusMapper
}

func NewEmbeddingStatusRepository(db *gorm.DB) contract.EmbeddingStatusRepository {
	return &EmbeddingStatusRepositoryImpl{
		db:     db,
		mapper: mapper.NewEmbeddingStatusMapper(),
	}
}

func (r *EmbeddingStatusRepositoryImpl) UpsertProcessing(ctx context.Context, kind entity.EntityKind, entityId, ownerId uuid.UUID, embeddingKey string, sourceSnapshot string) error {
	m := model.EmbeddingStatus{
		Id:             uuid.New(),
		EntityId:       entityId,
		OwnerId:        ownerId,
		EntityKind:     string(kind),
		EmbeddingKey:   embeddingKey,
		SourceSnapshot: sourceSnapshot,
		Status:         string(entity.EmbeddingStateProcessing),
		// Reset any stale outcome from the previous attempt.
		ErrorMessage: "",
	}

	return r.db.WithContext(ctx).Clauses(clause.OnConflict{
		Columns: []clause.Column{{Name: "entity_id"}, {Name: "owner_id"}},
		DoUpdates: clause.AssignmentColumns([]string{
			"entity_kind", "embedding_key", "source_snapshot", "status", "error_message", "updated_at",
		}),
	}).Create(&m).Error
}

func (r *EmbeddingStatusRepositoryImpl) MarkCompleted(ctx context.Context, entityId, ownerId uuid.UUID, metrics contract.CompletionMetrics) error {
	embeddedAt := metrics.EmbeddedAt
	if embeddedAt.IsZero() {
		embeddedAt = time.Now()
	}

	return r.db.WithContext(ctx).
		Model(&model.EmbeddingStatus{}).
		Where("entity_id = ? AND owner_id = ?", entityId, ownerId).
		Updates(map[string]interface{}{
			"status":           string(entity.EmbeddingStateCompleted),
			"dimension":        metrics.Dimension,
			"model_name":       metrics.ModelName,
			"namespace":        metrics.Namespace,
			"token_count":      metrics.TokenCount,
			"duration_ms":      metrics.DurationMs,
			"last_embedded_at": embeddedAt,
			"error_message":    "",
		}).Error
}

func (r *EmbeddingStatusRepositoryImpl) MarkFailed(ctx context.Context, entityId, ownerId uuid.UUID, errorMessage string) error {
	return r.db.WithContext(ctx).
		Model(&model.EmbeddingStatus{}).
		Where("entity_id = ? AND owner_id = ?", entityId, ownerId).
		Updates(map[string]interface{}{
			"status":        string(entity.EmbeddingStateFailed),
			"error_message": errorMessage,
		}).Error
}

func (r *EmbeddingStatusRepositoryImpl) Find(ctx context.Context, entityId, ownerId uuid.UUID) (*entity.EmbeddingStatus, error) {
	var m model.EmbeddingStatus
	err := r.db.WithContext(ctx).
		Where("entity_id = ? AND owner_id = ?", entityId, ownerId).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			// Absence is a status, not an error.
			return &entity.EmbeddingStatus{
				EntityId: entityId,
				OwnerId:  ownerId,
				Status:   entity.EmbeddingStateNotFound,
			}, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *EmbeddingStatusRepositoryImpl) DeleteByEntity(ctx context.Context, entityId uuid.UUID) error {
	return r.db.WithContext(ctx).
		Where("entity_id = ?", entityId).
		Delete(&model.EmbeddingStatus{}).Error
}
