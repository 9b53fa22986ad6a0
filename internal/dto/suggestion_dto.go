package dto

import (
	"github.com/google/uuid"
)

// SuggestionQueryRequest targets a roadmap node when RoadmapId and NodeId are
// both set; without a target the query only returns ranked results.
type SuggestionQueryRequest struct {
	Query     string    `json:"query" validate:"required"`
	TopK      int       `json:"top_k" validate:"omitempty,gte=1,lte=50"`
	RoadmapId uuid.UUID `json:"roadmap_id"`
	NodeId    string    `json:"node_id"`
}

// SuggestedContent is one ranked hit after index matches are resolved back to
// visible catalog rows. Score carries the index similarity unchanged.
type SuggestedContent struct {
	Id       uuid.UUID `json:"id"`
	Title    string    `json:"title"`
	Subtitle string    `json:"subtitle"`
	Category string    `json:"category"`
	Level    string    `json:"level"`
	Score    float32   `json:"score"`
}

type SuggestionQueryResponse struct {
	Courses []SuggestedContent `json:"courses"`
	Videos  []SuggestedContent `json:"videos"`
	Merge   MergeReport        `json:"merge"`
}

// MergeReport tells the caller how the ledger write went for each list, so a
// partial failure still surfaces alongside the usable results. Skipped means
// no roadmap node was targeted and nothing was persisted.
type MergeReport struct {
	CoursesMerged bool   `json:"courses_merged"`
	VideosMerged  bool   `json:"videos_merged"`
	Skipped       bool   `json:"skipped,omitempty"`
	Error         string `json:"error,omitempty"`
}

type UpdateSuggestionStatusRequest struct {
	RoadmapId uuid.UUID `json:"roadmap_id" validate:"required"`
	NodeId    string    `json:"node_id" validate:"required"`
	ContentId uuid.UUID `json:"content_id" validate:"required"`
	Kind      string    `json:"kind" validate:"required,oneof=course video"`
	Status    bool      `json:"status"`
}

type UpdateSuggestionStatusResponse struct {
	RoadmapId uuid.UUID `json:"roadmap_id"`
	Updated   bool      `json:"updated"`
}
