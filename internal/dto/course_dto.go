package dto

import (
	"time"

	"github.com/google/uuid"
)

type CreateCourseRequest struct {
	Title       string  `json:"title" validate:"required"`
	Subtitle    string  `json:"subtitle"`
	Description string  `json:"description"`
	Category    string  `json:"category" validate:"required"`
	Level       string  `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Price       float64 `json:"price" validate:"gte=0"`
	Published   bool    `json:"published"`
}

type CreateCourseResponse struct {
	Id uuid.UUID `json:"id"`
}

type UpdateCourseRequest struct {
	Id          uuid.UUID
	Title       string  `json:"title" validate:"required"`
	Subtitle    string  `json:"subtitle"`
	Description string  `json:"description"`
	Category    string  `json:"category" validate:"required"`
	Level       string  `json:"level" validate:"required,oneof=beginner intermediate advanced"`
	Price       float64 `json:"price" validate:"gte=0"`
	Published   bool    `json:"published"`
}

type UpdateCourseResponse struct {
	Id uuid.UUID `json:"id"`
}

type CourseResponse struct {
	Id          uuid.UUID  `json:"id"`
	Title       string     `json:"title"`
	Subtitle    string     `json:"subtitle"`
	Description string     `json:"description"`
	Category    string     `json:"category"`
	Level       string     `json:"level"`
	Price       float64    `json:"price"`
	Published   bool       `json:"published"`
	Approved    bool       `json:"approved"`
	CreatedAt   time.Time  `json:"created_at"`
	UpdatedAt   *time.Time `json:"updated_at"`
}
