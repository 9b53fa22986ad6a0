package websocket

import (
	"context"
	"encoding/json"
	"log"
	"sync"

	"ai-roadmap-be/internal/pkg/logger"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"
)

// StatusNotification is the payload pushed to an owner when one of their
// entities finishes (or fails) embedding.
type StatusNotification struct {
	EntityId   uuid.UUID `json:"entity_id"`
	EntityKind string    `json:"entity_kind"`
	Status     string    `json:"status"`
	Error      string    `json:"error,omitempty"`
}

type Hub struct {
	// Registered clients map: OwnerID -> List of Clients (multi-device)
	clients map[uuid.UUID][]*Client

	register   chan *Client
	unregister chan *Client

	mu sync.RWMutex

	// Redis connection for cross-instance fanout. Nil for single-instance
	// deployments; everything then stays in-process.
	rdb *redis.Client

	logger logger.ILogger
}

const clusterChannel = "embedding_events"

func NewHub(rdb *redis.Client, log logger.ILogger) *Hub {
	return &Hub{
		register:   make(chan *Client),
		unregister: make(chan *Client),
		clients:    make(map[uuid.UUID][]*Client),
		rdb:        rdb,
		logger:     log,
	}
}

func (h *Hub) Run() {
	if h.rdb != nil {
		go h.subscribeToRedis()
	}

	for {
		select {
		case client := <-h.register:
			h.mu.Lock()
			h.clients[client.OwnerID] = append(h.clients[client.OwnerID], client)
			h.mu.Unlock()
			h.logger.Info("Hub", "Client registered", map[string]interface{}{"owner_id": client.OwnerID})

		case client := <-h.unregister:
			h.mu.Lock()
			if clients, ok := h.clients[client.OwnerID]; ok {
				for i, c := range clients {
					if c == client {
						h.clients[client.OwnerID] = append(clients[:i], clients[i+1:]...)
						close(client.Send)
						break
					}
				}
				if len(h.clients[client.OwnerID]) == 0 {
					delete(h.clients, client.OwnerID)
					h.logger.Info("Hub", "Client completely unregistered", map[string]interface{}{"owner_id": client.OwnerID})
				}
			}
			h.mu.Unlock()
		}
	}
}

// Send delivers a status notification to every connection the owner has, on
// this instance and, via redis, on any other.
func (h *Hub) Send(ownerID uuid.UUID, notification StatusNotification) {
	data, _ := json.Marshal(map[string]interface{}{
		"type": "embedding_status",
		"data": notification,
	})

	h.mu.RLock()
	clients, localFound := h.clients[ownerID]
	h.mu.RUnlock()

	if localFound {
		for _, client := range clients {
			select {
			case client.Send <- data:
			default:
				h.logger.Warn("Hub", "Client Send buffer full, dropping message", map[string]interface{}{"owner_id": ownerID})
				close(client.Send)
				h.unregister <- client
			}
		}
	}

	// Always publish so other instances (and other devices connected to them)
	// see the update too.
	if h.rdb != nil {
		payload := map[string]interface{}{
			"target_owner_id": ownerID.String(),
			"message":         data,
		}
		jsonPayload, _ := json.Marshal(payload)
		h.rdb.Publish(context.Background(), clusterChannel, jsonPayload)
	}
}

func (h *Hub) subscribeToRedis() {
	// Every instance listens on the same channel and filters by owner. Cheap
	// at this fanout; a per-owner channel scheme is not worth the bookkeeping.
	ctx := context.Background()
	pubsub := h.rdb.Subscribe(ctx, clusterChannel)
	defer pubsub.Close()

	ch := pubsub.Channel()

	for msg := range ch {
		var payload struct {
			TargetOwnerID string          `json:"target_owner_id"`
			Message       json.RawMessage `json:"message"`
		}
		if err := json.Unmarshal([]byte(msg.Payload), &payload); err != nil {
			log.Printf("Redis msg parse error: %v", err)
			continue
		}

		uid, err := uuid.Parse(payload.TargetOwnerID)
		if err != nil {
			continue
		}

		h.mu.RLock()
		clients, ok := h.clients[uid]
		h.mu.RUnlock()

		if ok {
			for _, client := range clients {
				select {
				case client.Send <- payload.Message:
				default:
					close(client.Send)
					h.unregister <- client
				}
			}
		}
	}
}
