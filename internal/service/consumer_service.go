// FILE: internal/service/consumer_service.go
package service

import (
	"context"
	"encoding/json"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"

	"subhub-be/internal/dto"
	"subhub-be/internal/pkg/logger"
	"subhub-be/internal/pkg/mailer"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// consumerService listens for SUBSCRIPTION_CREATED messages and sends the
// confirmation email. Runs off the request path, so a slow SMTP server never
// delays an API response.
type consumerService struct {
	pubSub       *gochannel.GoChannel
	topicName    string
	emailService mailer.IEmailService
	log          logger.ILogger
}

func NewConsumerService(
	pubSub *gochannel.GoChannel,
	topicName string,
	emailService mailer.IEmailService,
	log logger.ILogger,
) IConsumerService {
	return &consumerService{
		pubSub:       pubSub,
		topicName:    topicName,
		emailService: emailService,
		log:          log,
	}
}

func (cs *consumerService) Consume(ctx context.Context) error {
	messages, err := cs.pubSub.Subscribe(ctx, cs.topicName)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			cs.processMessage(msg)
		}
	}()

	return nil
}

func (cs *consumerService) processMessage(msg *message.Message) {
	var payload dto.PublishSubscriptionCreatedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		cs.log.Error("consumer", "Failed to unmarshal message", map[string]interface{}{
			"error": err.Error(),
		})
		msg.Ack() // Ack invalid messages to prevent infinite retry
		return
	}

	cs.log.Info("consumer", "Sending subscription confirmation", map[string]interface{}{
		"subscriptionId": payload.SubscriptionId,
	})

	// Email is best-effort, same as the webhook. Ack either way.
	if err := cs.emailService.SendSubscriptionConfirmation(
		payload.UserEmail,
		payload.UserName,
		payload.Amount,
		payload.EndDate,
	); err != nil {
		cs.log.Warn("consumer", "Failed to send confirmation email", map[string]interface{}{
			"subscriptionId": payload.SubscriptionId,
			"error":          err.Error(),
		})
	}

	msg.Ack()
}
