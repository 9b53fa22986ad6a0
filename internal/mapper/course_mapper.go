package mapper

import (
	"time"

	"ai-roadmap-be/internal/entity"
	"ai-roadmap-be/internal/model"

	"gorm.io/gorm"
)

type CourseMapper struct{}

func NewCourseMapper() *CourseMapper {
	return &CourseMapper{}
}

func (m *CourseMapper) ToEntity(c *model.Course) *entity.Course {
	if c == nil {
		return nil
	}

	var deletedAt *time.Time
	if c.DeletedAt.Valid {
		t := c.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !c.UpdatedAt.IsZero() {
		t := c.UpdatedAt
		updatedAt = &t
	}

	return &entity.Course{
		Id:          c.Id,
		Title:       c.Title,
		Subtitle:    c.Subtitle,
		Description: c.Description,
		Category:    c.Category,
		Level:       c.Level,
		Price:       c.Price,
		Published:   c.Published,
		Approved:    c.Approved,
		OwnerId:     c.OwnerId,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   c.DeletedAt.Valid,
	}
}

func (m *CourseMapper) ToModel(c *entity.Course) *model.Course {
	if c == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if c.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *c.DeletedAt, Valid: true}
	} else if c.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if c.UpdatedAt != nil {
		updatedAt = *c.UpdatedAt
	}

	return &model.Course{
		Id:          c.Id,
		Title:       c.Title,
		Subtitle:    c.Subtitle,
		Description: c.Description,
		Category:    c.Category,
		Level:       c.Level,
		Price:       c.Price,
		Published:   c.Published,
		Approved:    c.Approved,
		OwnerId:     c.OwnerId,
		CreatedAt:   c.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *CourseMapper) ToEntities(courses []*model.Course) []*entity.Course {
	entities := make([]*entity.Course, len(courses))
	for i, c := range courses {
		entities[i] = m.ToEntity(c)
	}
	return entities
}
