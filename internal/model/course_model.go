package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Course struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string    `gorm:"not null"`
	Subtitle    string
	Description string `gorm:"type:text"`
	Category    string `gorm:"index"`
	Level       string
	Price       float64
	Published   bool           `gorm:"default:false;index"`
	Approved    bool           `gorm:"default:false;index"`
	OwnerId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Course) TableName() string {
	return "courses"
}
