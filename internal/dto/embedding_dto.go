package dto

import (
	"time"

	"ai-roadmap-be/internal/entity"

	"github.com/google/uuid"
)

// PublishEmbedMessage is the in-process queue payload that asks the consumer
// to (re)embed one entity.
type PublishEmbedMessage struct {
	EntityId   uuid.UUID         `json:"entity_id"`
	OwnerId    uuid.UUID         `json:"owner_id"`
	EntityKind entity.EntityKind `json:"entity_kind"`
}

type EmbeddingStatusResponse struct {
	EntityId       uuid.UUID             `json:"entity_id"`
	EntityKind     entity.EntityKind     `json:"entity_kind"`
	Status         entity.EmbeddingState `json:"status"`
	EmbeddingKey   string                `json:"embedding_key,omitempty"`
	Namespace      string                `json:"namespace,omitempty"`
	ModelName      string                `json:"model_name,omitempty"`
	Dimension      int                   `json:"dimension,omitempty"`
	TokenCount     int                   `json:"token_count,omitempty"`
	DurationMs     int64                 `json:"duration_ms,omitempty"`
	LastEmbeddedAt *time.Time            `json:"last_embedded_at,omitempty"`
	ErrorMessage   string                `json:"error_message,omitempty"`
}

type ReembedRequest struct {
	EntityId uuid.UUID `json:"entity_id" validate:"required"`
	Kind     string    `json:"kind" validate:"required,oneof=course video roadmap"`
}

type ReembedResponse struct {
	EntityId uuid.UUID `json:"entity_id"`
	Queued   bool      `json:"queued"`
}
