package entity

import (
	"time"

	"github.com/google/uuid"
)

// EmbeddingState is the closed lifecycle variant for an embedding attempt.
// NotFound is returned by reads for entities that were never embedded; it is
// never persisted.
type EmbeddingState string

const (
	EmbeddingStateProcessing EmbeddingState = "processing"
	EmbeddingStateCompleted  EmbeddingState = "completed"
	EmbeddingStateFailed     EmbeddingState = "failed"
	EmbeddingStateNotFound   EmbeddingState = "not_found"
)

// EntityKind identifies which content table an embedding belongs to and
// selects the vector index namespace.
type EntityKind string

const (
	KindCourse  EntityKind = "course"
	KindVideo   EntityKind = "video"
	KindRoadmap EntityKind = "roadmap"
)

// EmbeddingKey builds the deterministic external identifier used as the
// vector index entry id, e.g. "course_<uuid>". Re-embedding the same entity
// always targets the same key so the index upserts in place.
func EmbeddingKey(kind EntityKind, entityId uuid.UUID) string {
	return string(kind) + "_" + entityId.String()
}

// Namespace returns the vector index namespace for a content kind. Each kind
// lives in its own namespace so queries never mix courses with videos.
func Namespace(kind EntityKind) string {
	return string(kind) + "-embeddings"
}

// EmbeddingStatus tracks one embedding attempt per (entity, owner). A new
// attempt overwrites the previous record; no history is kept.
type EmbeddingStatus struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey"`
	EntityId       uuid.UUID `gorm:"type:uuid"`
	OwnerId        uuid.UUID `gorm:"type:uuid"`
	EntityKind     EntityKind
	EmbeddingKey   string
	Dimension      int
	LastEmbeddedAt *time.Time
	SourceSnapshot string
	ModelName      string
	Namespace      string
	TokenCount     int
	DurationMs     int64
	Status         EmbeddingState
	ErrorMessage   string
	CreatedAt      time.Time
	UpdatedAt      *time.Time
}
