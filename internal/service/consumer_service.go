package service

import (
	"context"
	"encoding/json"
	"log"

	"ai-roadmap-be/internal/dto"
	"ai-roadmap-be/pkg/apperrors"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub           *gochannel.GoChannel
	topicName        string
	embeddingService IEmbeddingService
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	embeddingService IEmbeddingService,
) IConsumerService {
	return &consumerService{
		pubSub:           pubSub,
		topicName:        topicName,
		embeddingService: embeddingService,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(ctx, msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(ctx context.Context, msg *message.Message) {
	// A panic in one message must not take the consumer loop down.
	defer func() {
		if r := recover(); r != nil {
			log.Printf("[ERROR] Panic while processing message %s: %v", msg.UUID, r)
			msg.Ack()
		}
	}()

	var payload dto.PublishEmbedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		log.Printf("[ERROR] Failed to unmarshal message: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Processing embedding for %s %s", payload.EntityKind, payload.EntityId)

	err := cs.embeddingService.ProcessEntity(ctx, payload.EntityKind, payload.EntityId, payload.OwnerId)
	if err == nil {
		log.Printf("[SUCCESS] Embedding processed for %s %s", payload.EntityKind, payload.EntityId)
		msg.Ack()
		return
	}

	switch {
	case apperrors.IsNotFound(err):
		// Entity deleted before we got to it. Nothing to retry.
		log.Printf("[INFO] Entity gone, dropping message for %s %s", payload.EntityKind, payload.EntityId)
		msg.Ack()
	case apperrors.IsRetryable(err):
		log.Printf("[ERROR] Retryable failure for %s %s: %v", payload.EntityKind, payload.EntityId, err)
		msg.Nack()
	default:
		// Permanent failure. The status record already says failed; retrying
		// the same content would fail the same way.
		log.Printf("[ERROR] Permanent failure for %s %s: %v", payload.EntityKind, payload.EntityId, err)
		msg.Ack()
	}
}
