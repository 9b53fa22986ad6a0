package mapper

import (
	"time"

	"ai-roadmap-be/internal/entity"
	"ai-roadmap-be/internal/model"

	"gorm.io/gorm"
)

type VideoMapper struct{}

func NewVideoMapper() *VideoMapper {
	return &VideoMapper{}
}

func (m *VideoMapper) ToEntity(v *model.Video) *entity.Video {
	if v == nil {
		return nil
	}

	var deletedAt *time.Time
	if v.DeletedAt.Valid {
		t := v.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !v.UpdatedAt.IsZero() {
		t := v.UpdatedAt
		updatedAt = &t
	}

	return &entity.Video{
		Id:          v.Id,
		Title:       v.Title,
		Subtitle:    v.Subtitle,
		Description: v.Description,
		Category:    v.Category,
		Level:       v.Level,
		Url:         v.Url,
		DurationSec: v.DurationSec,
		Published:   v.Published,
		Approved:    v.Approved,
		OwnerId:     v.OwnerId,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
		IsDeleted:   v.DeletedAt.Valid,
	}
}

func (m *VideoMapper) ToModel(v *entity.Video) *model.Video {
	if v == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if v.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *v.DeletedAt, Valid: true}
	} else if v.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if v.UpdatedAt != nil {
		updatedAt = *v.UpdatedAt
	}

	return &model.Video{
		Id:          v.Id,
		Title:       v.Title,
		Subtitle:    v.Subtitle,
		Description: v.Description,
		Category:    v.Category,
		Level:       v.Level,
		Url:         v.Url,
		DurationSec: v.DurationSec,
		Published:   v.Published,
		Approved:    v.Approved,
		OwnerId:     v.OwnerId,
		CreatedAt:   v.CreatedAt,
		UpdatedAt:   updatedAt,
		DeletedAt:   deletedAt,
	}
}

func (m *VideoMapper) ToEntities(videos []*model.Video) []*entity.Video {
	entities := make([]*entity.Video, len(videos))
	for i, v := range videos {
		entities[i] = m.ToEntity(v)
	}
	return entities
}
