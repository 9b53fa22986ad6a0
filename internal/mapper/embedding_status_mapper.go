package mapper

import (
	"time"

	"ai-roadmap-be/internal/entity"
	"ai-roadmap-be/internal/model"
)

type EmbeddingStatusMapper struct{}

func NewEmbeddingStatusMapper() *EmbeddingStatusMapper {
	return &EmbeddingStatusMapper{}
}

func (m *EmbeddingStatusMapper) ToEntity(s *model.EmbeddingStatus) *entity.EmbeddingStatus {
	if s == nil {
		return nil
	}

	var updatedAt *time.Time
	if !s.UpdatedAt.IsZero() {
		t := s.UpdatedAt
		updatedAt = &t
	}

	return &entity.EmbeddingStatus{
		Id:             s.Id,
		EntityId:       s.EntityId,
		OwnerId:        s.OwnerId,
		EntityKind:     entity.EntityKind(s.EntityKind),
		EmbeddingKey:   s.EmbeddingKey,
		Dimension:      s.Dimension,
		LastEmbeddedAt: s.LastEmbeddedAt,
		SourceSnapshot: s.SourceSnapshot,
		ModelName:      s.ModelName,
		Namespace:      s.Namespace,
		TokenCount:     s.TokenCount,
		DurationMs:     s.DurationMs,
		Status:         entity.EmbeddingState(s.Status),
		ErrorMessage:   s.ErrorMessage,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}

func (m *EmbeddingStatusMapper) ToModel(s *entity.EmbeddingStatus) *model.EmbeddingStatus {
	if s == nil {
		return nil
	}

	var updatedAt time.Time
	if s.UpdatedAt != nil {
		updatedAt = *s.UpdatedAt
	}

	return &model.EmbeddingStatus{
		Id:             s.Id,
		EntityId:       s.EntityId,
		OwnerId:        s.OwnerId,
		EntityKind:     string(s.EntityKind),
		EmbeddingKey:   s.EmbeddingKey,
		Dimension:      s.Dimension,
		LastEmbeddedAt: s.LastEmbeddedAt,
		SourceSnapshot: s.SourceSnapshot,
		ModelName:      s.ModelName,
		Namespace:      s.Namespace,
		TokenCount:     s.TokenCount,
		DurationMs:     s.DurationMs,
		Status:         string(s.Status),
		ErrorMessage:   s.ErrorMessage,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      updatedAt,
	}
}
