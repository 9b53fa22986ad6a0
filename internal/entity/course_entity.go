package entity

import (
	"time"

	"github.com/google/uuid"
)

type Course struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title       string
	Subtitle    string
	Description string
	Category    string
	Level       string
	Price       float64
	Published   bool
	Approved    bool
	OwnerId     uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt   time.Time
	UpdatedAt   *time.Time
	DeletedAt   *time.Time
	IsDeleted   bool
}
