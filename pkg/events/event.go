package events

import (
	"time"

	"github.com/google/uuid"
)

// Event type codes published on the bus.
const (
	TypeCourseCreated      = "COURSE_CREATED"
	TypeVideoCreated       = "VIDEO_CREATED"
	TypeRoadmapCreated     = "ROADMAP_CREATED"
	TypeEmbeddingCompleted = "EMBEDDING_COMPLETED"
	TypeEmbeddingFailed    = "EMBEDDING_FAILED"
)

// Event defines the contract for all system events.
type Event interface {
	// EventType returns the unique code for this event (e.g., "COURSE_CREATED").
	EventType() string

	// Payload returns the data associated with the event.
	Payload() map[string]interface{}

	// Timestamp returns when the event occurred.
	Timestamp() time.Time
}

// BaseEvent is the generic implementation used throughout the system.
type BaseEvent struct {
	Type       string
	Data       map[string]interface{}
	OccurredAt time.Time
}

func (e BaseEvent) EventType() string {
	return e.Type
}

func (e BaseEvent) Payload() map[string]interface{} {
	return e.Data
}

func (e BaseEvent) Timestamp() time.Time {
	return e.OccurredAt
}

// NewEmbeddingEvent builds the completion/failure event the notifier pushes
// to the owning user's websocket clients.
func NewEmbeddingEvent(eventType string, kind string, entityId, ownerId uuid.UUID, errMessage string) BaseEvent {
	data := map[string]interface{}{
		"entity_kind": kind,
		"entity_id":   entityId,
		"user_id":     ownerId,
	}
	if errMessage != "" {
		data["error_message"] = errMessage
	}
	return BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}
}
