package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateVideoRequest struct {
	Title       string `json:"title" validate:"required"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Category    string `json:"category" validate:"required"`
	Level       string `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Url         string `json:"url" validate:"omitempty,url"`
	DurationSec int    `json:"duration_sec" validate:"gte=0"`
	Published   bool   `json:"published"`
}

type CreateVideoResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateVideoRequest struct {
	Id          uuid.UUID
	Title       string `json:"title" validate:"required"`
	Subtitle    string `json:"subtitle"`
	Description string `json:"description"`
	Category    string `json:"category" validate:"required"`
	Level       string `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Url         string `json:"url" validate:"omitempty,url"`
	DurationSec int    `json:"duration_sec" validate:"gte=0"`
	Published   bool   `json:"published"`
}

type UpdateVideoResponse struct {
	Id uuid.UUID `json:"id"`
}

type VideoResponse struct {
	Id          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Subtitle    string     `json:"subtitle"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Level       string     `json:"level"`
	Url         string     `json:"url"`
	DurationSec int        `json:"duration_sec"`
	Published   bool       `json:"published"`
	Approved    bool       `json:"approved"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}
