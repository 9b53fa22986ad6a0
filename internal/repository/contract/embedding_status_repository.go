package contract

import (
	"context"
	"time"

	"ai-roadmap-be/internal/entity"

	"github.com/google/uuid"
)

// CompletionMetrics carries the processing metadata recorded when an
// embedding attempt succeeds.
type CompletionMetrics struct {
	Dimension  int
	ModelName  string
	Namespace  string
	TokenCount int
	DurationMs int64
	EmbeddedAt time.Time
}

// EmbeddingStatusRepository is the status store for the embedding lifecycle.
// Every write is an upsert keyed on (entityId, ownerId); a second row for
// the same pair must never exist.
type EmbeddingStatusRepository interface {
	// UpsertProcessing creates or resets the record to status=processing,
	// snapshotting the source text. Called before any external work starts.
	UpsertProcessing(ctx context.Context, kind entity.EntityKind, entityId, ownerId uuid.UUID, embeddingKey string, sourceSnapshot string) error

	// MarkCompleted transitions processing -> completed with metrics.
	MarkCompleted(ctx context.Context, entityId, ownerId uuid.UUID, metrics CompletionMetrics) error

	// MarkFailed transitions processing -> failed with an error message.
	MarkFailed(ctx context.Context, entityId, ownerId uuid.UUID, errorMessage string) error

	// Find returns the record, or one whose Status is NotFound when the pair
	// was never embedded. Absence is a status, not an error.
	Find(ctx context.Context, entityId, ownerId uuid.UUID) (*entity.EmbeddingStatus, error)

	// DeleteByEntity removes the record alongside the owning entity.
	DeleteByEntity(ctx context.Context, entityId uuid.UUID) error
}
