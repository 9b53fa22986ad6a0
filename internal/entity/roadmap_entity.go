package entity

import (
	"time"

	"github.com/google/uuid"
)

// RoadmapNode is one step in the generated learning graph. Nodes are stored
// embedded in the roadmap document, not as separate rows.
type RoadmapNode struct {
	Id          string `json:"id"`
	Title       string `json:"title"`
	Description string `json:"description"`
	Order       int    `json:"order"`
}

// Suggestion is one ledger entry attached to a roadmap node. The pair
// (ContentId, NodeId) is unique within its list; Status false means the user
// has not acted on it yet.
type Suggestion struct {
	ContentId uuid.UUID `json:"content_id"`
	NodeId    string    `json:"node_id"`
	Status    bool      `json:"status"`
}

type Roadmap struct {
	Id                uuid.UUID `gorm:"type:uuid;primaryKey"`
	Title             string
	Description       string
	Category          string
	Level             string
	Nodes             []RoadmapNode
	CourseSuggestions []Suggestion
	VideoSuggestions  []Suggestion
	OwnerId           uuid.UUID `gorm:"type:uuid;index"`
	CreatedAt         time.Time
	UpdatedAt         *time.Time
	DeletedAt         *time.Time
	IsDeleted         bool
}

// SuggestionsForNode returns the ledger entries of the given list kind that
// belong to nodeId.
func (r *Roadmap) SuggestionsForNode(kind string, nodeId string) []Suggestion {
	var out []Suggestion
	for _, s := range r.suggestionList(kind) {
		if s.NodeId == nodeId {
			out = append(out, s)
		}
	}
	return out
}

func (r *Roadmap) suggestionList(kind string) []Suggestion {
	if kind == "video" {
		return r.VideoSuggestions
	}
	return r.CourseSuggestions
}
