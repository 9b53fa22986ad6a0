package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
	"gorm.io/gorm"
)

// Roadmap stores the node graph and the two suggestion ledgers as JSONB.
// The ledgers are append-only; merge logic lives in the service layer.
type Roadmap struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title             string    `gorm:"not null"`
	Description       string    `gorm:"type:text"`
	Category          string    `gorm:"index"`
	Level             string
	Nodes             datatypes.JSON `gorm:"type:jsonb"`
	CourseSuggestions datatypes.JSON `gorm:"type:jsonb"`
	VideoSuggestions  datatypes.JSON `gorm:"type:jsonb"`
	OwnerId           uuid.UUID      `gorm:"type:uuid;not null;index"`
	CreatedAt         time.Time      `gorm:"autoCreateTime"`
	UpdatedAt         time.Time      `gorm:"autoUpdateTime"`
	DeletedAt         gorm.DeletedAt `gorm:"index"`
}

func (Roadmap) TableName() string {
	return "roadmaps"
}
