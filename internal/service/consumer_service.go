package service

import (
	"context"
	"encoding/json"

	"conversational-rag-be/internal/dto"
	"conversational-rag-be/internal/pkg/logger"
	"conversational-rag-be/pkg/rag/memstore"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

const consumerLogModule = "ConsumerService"

type IConsumerService interface {
	Consume(ctx context.Context) error
}

type consumerService struct {
	pubSub    *gochannel.GoChannel
	topicName string
	memories  *memstore.Store
	logger    logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	memories *memstore.Store,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:    pubSub,
		topicName: topicName,
		memories:  memories,
		logger:    log,
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
	var payload dto.StoreMemoryMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.logger.Error(consumerLogModule, "Failed to unmarshal memory message", map[string]interface{}{
			"message_id": msg.UUID,
			"error":      err.Error(),
		})
		// Ack invalid messages to prevent infinite retry.
		msg.Ack()
		return
	}

	cs.logger.Info(consumerLogModule, "Storing long-term memory", map[string]interface{}{
		"owner_id": payload.OwnerId,
	})

	if err := cs.memories.Store(ctx, payload.OwnerId, payload.MemoryText); err != nil {
		cs.logger.Error(consumerLogModule, "Failed to store long-term memory", map[string]interface{}{
			"owner_id": payload.OwnerId,
			"error":    err.Error(),
		})
		msg.Nack()
		return
	}

	msg.Ack()
}
