package mapper

import (
	"encoding/json"
	"time"

	"ai-roadmap-be/internal/entity"
	"ai-roadmap-be/internal/model"

	"gorm.io/datatypes"
	"gorm.io/gorm"
)

type RoadmapMapper struct{}

func NewRoadmapMapper() *RoadmapMapper {
	return &RoadmapMapper{}
}

func (m *RoadmapMapper) ToEntity(r *model.Roadmap) *entity.Roadmap {
	if r == nil {
		return nil
	}

	var deletedAt *time.Time
	if r.DeletedAt.Valid {
		t := r.DeletedAt.Time
		deletedAt = &t
	}

	var updatedAt *time.Time
	if !r.UpdatedAt.IsZero() {
		t := r.UpdatedAt
		updatedAt = &t
	}

	var nodes []entity.RoadmapNode
	if len(r.Nodes) > 0 {
		_ = json.Unmarshal(r.Nodes, &nodes)
	}
	var courseSuggestions []entity.Suggestion
	if len(r.CourseSuggestions) > 0 {
		_ = json.Unmarshal(r.CourseSuggestions, &courseSuggestions)
	}
	var videoSuggestions []entity.Suggestion
	if len(r.VideoSuggestions) > 0 {
		_ = json.Unmarshal(r.VideoSuggestions, &videoSuggestions)
	}

	return &entity.Roadmap{
		Id:                r.Id,
		Title:             r.Title,
		Description:       r.Description,
		Category:          r.Category,
		Level:             r.Level,
		Nodes:             nodes,
		CourseSuggestions: courseSuggestions,
		VideoSuggestions:  videoSuggestions,
		OwnerId:           r.OwnerId,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         updatedAt,
		DeletedAt:         deletedAt,
		IsDeleted:         r.DeletedAt.Valid,
	}
}

func (m *RoadmapMapper) ToModel(r *entity.Roadmap) *model.Roadmap {
	if r == nil {
		return nil
	}

	var deletedAt gorm.DeletedAt
	if r.DeletedAt != nil {
		deletedAt = gorm.DeletedAt{Time: *r.DeletedAt, Valid: true}
	} else if r.IsDeleted {
		deletedAt = gorm.DeletedAt{Time: time.Now(), Valid: true}
	}

	var updatedAt time.Time
	if r.UpdatedAt != nil {
		updatedAt = *r.UpdatedAt
	}

	nodesJson, _ := json.Marshal(marshalable(r.Nodes))
	courseJson, _ := json.Marshal(marshalableSuggestions(r.CourseSuggestions))
	videoJson, _ := json.Marshal(marshalableSuggestions(r.VideoSuggestions))

	return &model.Roadmap{
		Id:                r.Id,
		Title:             r.Title,
		Description:       r.Description,
		Category:          r.Category,
		Level:             r.Level,
		Nodes:             datatypes.JSON(nodesJson),
		CourseSuggestions: datatypes.JSON(courseJson),
		VideoSuggestions:  datatypes.JSON(videoJson),
		OwnerId:           r.OwnerId,
		CreatedAt:         r.CreatedAt,
		UpdatedAt:         updatedAt,
		DeletedAt:         deletedAt,
	}
}

func (m *RoadmapMapper) ToEntities(roadmaps []*model.Roadmap) []*entity.Roadmap {
	entities := make([]*entity.Roadmap, len(roadmaps))
	for i, r := range roadmaps {
		entities[i] = m.ToEntity(r)
	}
	return entities
}

// JSONB columns should hold [] rather than null for empty lists so appends
// on the read-modify-write path stay uniform.
func marshalable(nodes []entity.RoadmapNode) []entity.RoadmapNode {
	if nodes == nil {
		return []entity.RoadmapNode{}
	}
	return nodes
}

func marshalableSuggestions(s []entity.Suggestion) []entity.Suggestion {
	if s == nil {
		return []entity.Suggestion{}
	}
	return s
}
