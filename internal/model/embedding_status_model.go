package model

import (
	"time"

	"github.com/google/uuid"
)

// EmbeddingStatus has exactly one row per (entity_id, owner_id); every write
// is an upsert on that pair. No soft delete: the record lives and dies with
// the owning entity.
type EmbeddingStatus struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	EntityId       uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_embedding_entity_owner"`
	OwnerId        uuid.UUID `gorm:"type:uuid;not null;uniqueIndex:idx_embedding_entity_owner"`
	EntityKind     string    `gorm:"not null;index"`
	EmbeddingKey   string    `gorm:"not null;index"`
	Dimension      int
	LastEmbeddedAt *time.Time
	SourceSnapshot string `gorm:"type:text"`
	ModelName      string
	Namespace      string
	TokenCount     int
	DurationMs     int64
	Status         string `gorm:"not null;index"`
	ErrorMessage   string `gorm:"type:text"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (EmbeddingStatus) TableName() string {
	return "embedding_statuses"
}
