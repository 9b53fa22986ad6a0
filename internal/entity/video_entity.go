package entity

import (
	"time"

	"github.com/google/uuid"
)

type Video struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string
	Subtitle    string
	Description string
	Category    string
	Level       string
	Url         string
	DurationSec int
	Published   bool
	Approved    bool
	OwnerId     uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}
