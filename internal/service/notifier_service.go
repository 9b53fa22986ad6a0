package service

import (
	"context"
	"fmt"

	"ai-roadmap-be/internal/pkg/logger"
	"ai-roadmap-be/internal/websocket"
	"ai-roadmap-be/pkg/events"
	pktNats "ai-roadmap-be/pkg/nats"

	"github.com/google/uuid"
)

// StatusDelivery defines how to push real-time updates.
// Typically implemented by the WebSocket Hub.
type StatusDelivery interface {
	Send(ownerID uuid.UUID, notification websocket.StatusNotification)
}

// NotifierService bridges the event bus and the websocket hub: embedding
// completion and failure events become pushes to the owning user.
type NotifierService struct {
	subscriber *pktNats.Subscriber
	delivery   StatusDelivery
	logger     logger.ILogger
}

func NewNotifierService(sub *pktNats.Subscriber, delivery StatusDelivery, log logger.ILogger) *NotifierService {
	return &NotifierService{
		subscriber: sub,
		delivery:   delivery,
		logger:     log,
	}
}

// Start begins listening to the event bus.
func (s *NotifierService) Start() {
	err := s.subscriber.Subscribe("events.>", "notifier-service-worker", s.handleEvent)
	if err != nil {
		s.logger.Error("NotifierService", "Failed to start notifier subscriber", map[string]interface{}{"error": err})
		return
	}
	s.logger.Info("NotifierService", "Notifier service started, listening to events.>", nil)
}

func (s *NotifierService) handleEvent(ctx context.Context, event events.Event) error {
	var status string
	switch event.EventType() {
	case events.TypeEmbeddingCompleted:
		status = "completed"
	case events.TypeEmbeddingFailed:
		status = "failed"
	default:
		// Other event types carry no websocket payload today.
		return nil
	}

	payload := event.Payload()

	ownerId, err := parsePayloadId(payload, "user_id")
	if err != nil {
		s.logger.Warn("NotifierService", "Event missing owner id", map[string]interface{}{"type": event.EventType(), "error": err.Error()})
		return nil
	}
	entityId, err := parsePayloadId(payload, "entity_id")
	if err != nil {
		s.logger.Warn("NotifierService", "Event missing entity id", map[string]interface{}{"type": event.EventType(), "error": err.Error()})
		return nil
	}

	kind, _ := payload["entity_kind"].(string)
	errMessage, _ := payload["error_message"].(string)

	notif := websocket.StatusNotification{
		EntityId:   entityId,
		EntityKind: kind,
		Status:     status,
		Error:      errMessage,
	}

	if s.delivery != nil {
		s.delivery.Send(ownerId, notif)
	}

	s.logger.Info("NotifierService", fmt.Sprintf("Pushed %s status for %s", status, entityId), map[string]interface{}{"kind": kind})
	return nil
}

// parsePayloadId pulls a uuid out of a decoded event payload, where values
// arrive as strings after the JSON round trip.
func parsePayloadId(payload map[string]interface{}, key string) (uuid.UUID, error) {
	raw, ok := payload[key].(string)
	if !ok {
		return uuid.Nil, fmt.Errorf("payload key %q missing or not a string", key)
	}
	return uuid.Parse(raw)
}
