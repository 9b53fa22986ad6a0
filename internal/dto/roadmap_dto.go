package dto

import (
	"time"

	"ai-roadmap-be/internal/entity"

	"github.com/google/uuid"
)

type GenerateRoadmapRequest struct {
	Topic       string `json:"topic" validate:"required"`
	Category    string `json:"category" validate:"required"`
	Level       string `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Description string `json:"description"`
}

type GenerateRoadmapResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateRoadmapRequest struct {
	Id          uuid.UUID
	Title       string               `json:"title" validate:"required"`
	Description string               `json:"description"`
	Category    string               `json:"category" validate:"required"`
	Level       string               `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Nodes       []entity.RoadmapNode `json:"nodes" validate:"required,min=1,dive"`
}

type UpdateRoadmapResponse struct {
	Id uuid.UUID `json:"id"`
}

type RoadmapResponse struct {
	Id                uuid.UUID            `json:"id"`
	Title             string               `json:"title"`
	Description       string               `json:"description"`
	Category          string               `json:"category"`
	Level             string               `json:"level"`
	Nodes             []entity.RoadmapNode `json:"nodes"`
	CourseSuggestions []entity.Suggestion  `json:"course_suggestions"`
	VideoSuggestions  []entity.Suggestion  `json:"video_suggestions"`
	CreatedAt         time.Time            `json:"created_at"`
	UpdatedAt         *time.Time           `json:"updated_at"`
}
