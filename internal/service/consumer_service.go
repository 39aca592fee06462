package service

import (
	"context"
	"encoding/json"
	"log"

	"ai-docchat-be/internal/dto"
	"ai-docchat-be/pkg/events"
	pktNats "ai-docchat-be/pkg/nats"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the internal session events topic and relays each
// event to the external NATS stream when one is configured.
type consumerService struct {
	pubSub         *gochannel.GoChannel
	topicName      string
	eventPublisher *pktNats.Publisher
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	eventPublisher *pktNats.Publisher,
) IConsumerService {
	return &consumerService{
		pubSub:         pubSub,
		topicName:      topicName,
		eventPublisher: eventPublisher,
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
	var payload dto.SessionEventMessage
	err := json.Unmarshal(msg.Payload, &payload)
	if err != nil {
		log.Printf("[ERROR] Failed to unmarshal session event: %v", err)
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	log.Printf("[INFO] Session event %s for session %s", payload.Type, payload.SessionId)

	if cs.eventPublisher != nil {
		evt := events.BaseEvent{
			Type:       payload.Type,
			Data:       payload.Payload,
			OccurredAt: payload.OccurredAt,
		}
		if err := cs.eventPublisher.Publish(ctx, evt); err != nil {
			// Relay is auxiliary. Drop rather than redeliver forever.
			log.Printf("[WARN] Failed to relay %s event to NATS: %v", payload.Type, err)
		}
	}

	msg.Ack()
}
