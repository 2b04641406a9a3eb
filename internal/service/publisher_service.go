package service

import (
	"encoding/json"

	"conversational-rag-be/internal/dto"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

// IMemoryPublisherService queues long-term memory writes so a completed turn
// never waits on the memory store.
type IMemoryPublisherService interface {
	PublishStoreMemory(ownerID string, memoryText string) error
}

type memoryPublisherService struct {
	pubSub    *gochannel.GoChannel
	topicName string
}

func NewMemoryPublisherService(pubSub *gochannel.GoChannel, topicName string) IMemoryPublisherService {
	return &memoryPublisherService{
		pubSub:    pubSub,
		topicName: topicName,
	}
}

func (s *memoryPublisherService) PublishStoreMemory(ownerID string, memoryText string) error {
	payload := dto.StoreMemoryMessage{
		OwnerId:    ownerID,
		MemoryText: memoryText,
	}

	msgJson, err := json.Marshal(payload)
	if err != nil {
		return err
	}

	return s.pubSub.Publish(s.topicName, message.NewMessage(watermill.NewUUID(), msgJson))
}
