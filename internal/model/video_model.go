package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

type Video struct {
	Id          uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title       string    `gorm:"not null"`
	Subtitle    string
	Description string `gorm:"type:text"`
	Category    string `gorm:"index"`
	Level       string
	Url         string
	DurationSec int
	Published   bool           `gorm:"default:false;index"`
	Approved    bool           `gorm:"default:false;index"`
	OwnerId     uuid.UUID      `gorm:"type:uuid;not null;index"`
	CreatedAt   time.Time      `gorm:"autoCreateTime"`
	UpdatedAt   time.Time      `gorm:"autoUpdateTime"`
	DeletedAt   gorm.DeletedAt `gorm:"index"`
}

func (Video) TableName() string {
	return "videos"
}
