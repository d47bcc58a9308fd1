package service

import (
	"context"
	"encoding/json"
	"time"

	"hustle-mentor-be/internal/entity"
	"hustle-mentor-be/internal/pkg/logger"
	"hustle-mentor-be/internal/repository/unitofwork"
	"hustle-mentor-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService drains the journey event bus into the activity_logs table.
// The trail is auxiliary: a failed write is logged and the message acked so
// the bus never backs up behind it.
type consumerService struct {
	pubSub     *gochannel.GoChannel
	topicName  string
	uowFactory unitofwork.RepositoryFactory
	log        logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	uowFactory unitofwork.RepositoryFactory,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:     pubSub,
		topicName:  topicName,
		uowFactory: uowFactory,
		log:        log,
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
	// Ack unconditionally; the activity trail tolerates gaps, an unacked
	// message would stall the channel.
	defer msg.Ack()

	var evt events.JourneyEvent
	if err := json.Unmarshal(msg.Payload, &evt); err != nil {
		cs.log.Error("consumer", "Failed to unmarshal journey event", map[string]interface{}{
			"error": err.Error(),
		})
		return
	}

	occurredAt := evt.OccurredAt
	if occurredAt.IsZero() {
		occurredAt = time.Now()
	}

	uow := cs.uowFactory.NewUnitOfWork(ctx)
	log := &entity.ActivityLog{
		Id:        uuid.New(),
		UserId:    evt.UserId,
		Type:      evt.Type,
		Details:   evt.Data,
		CreatedAt: occurredAt,
	}
	if err := uow.ActivityLogRepository().Create(ctx, log); err != nil {
		cs.log.Error("consumer", "Failed to persist activity log", map[string]interface{}{
			"error": err.Error(),
			"type":  evt.Type,
		})
	}
}
