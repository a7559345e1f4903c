// FILE: internal/service/subscription_service.go
package service

import (
	"context"
	"time"

	"github.com/google/uuid"

	"subhub-be/internal/dto"
	"subhub-be/internal/entity"
	"subhub-be/internal/pkg/apperror"
	"subhub-be/internal/pkg/logger"
	"subhub-be/internal/pkg/webhook"
	"subhub-be/internal/repository/memory"
	"subhub-be/internal/repository/specification"
	"subhub-be/internal/repository/unitofwork"

	"subhub-be/pkg/events"
	pktNats "subhub-be/pkg/nats"
)

type ISubscriptionService interface {
	Subscribe(ctx context.Context, req *dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error)
	GetSubscription(ctx context.Context, id uuid.UUID) (*dto.SubscriptionResponse, error)
	CancelSubscription(ctx context.Context, id uuid.UUID) (*dto.SubscriptionResponse, error)
}

type subscriptionService struct {
	uowFactory     unitofwork.RepositoryFactory
	notifier       webhook.INotifier
	publisher      IPublisherService
	eventPublisher *pktNats.Publisher
	cache          *memory.SubscriptionCache
	log            logger.ILogger
}

func NewSubscriptionService(
	uowFactory unitofwork.RepositoryFactory,
	notifier webhook.INotifier,
	publisher IPublisherService,
	eventPublisher *pktNats.Publisher,
	cache *memory.SubscriptionCache,
	log logger.ILogger,
) ISubscriptionService {
	return &subscriptionService{
		uowFactory:     uowFactory,
		notifier:       notifier,
		publisher:      publisher,
		eventPublisher: eventPublisher,
		cache:          cache,
		log:            log,
	}
}

// Subscribe enforces the one-active-subscription-per-user rule, persists the
// new subscription, then notifies best-effort. The webhook outcome never
// decides the caller's result; durability of the record does.
func (s *subscriptionService) Subscribe(ctx context.Context, req *dto.CreateSubscriptionRequest) (*dto.SubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	// Check-then-act: two concurrent subscribes for the same user can both
	// pass this check. Known race, not closed by a storage constraint.
	existing, err := uow.SubscriptionRepository().FindLatestByUserId(ctx, req.UserId)
	if err != nil {
		return nil, err
	}
	if existing != nil && existing.IsActive() {
		return nil, apperror.NewConflictError("User already has an active subscription")
	}

	sub, err := entity.NewSubscription(
		uuid.New(),
		req.UserId,
		req.UserEmail,
		req.UserName,
		entity.PaymentMethod(req.PaymentMethod),
		req.Amount,
	)
	if err != nil {
		return nil, err
	}

	if err := uow.SubscriptionRepository().Create(ctx, sub); err != nil {
		return nil, err
	}
	s.log.Info("subscription", "Subscription created", map[string]interface{}{
		"subscriptionId": sub.Id,
		"userId":         sub.UserId,
	})

	s.publishCreated(ctx, sub)

	if err := s.notifier.Notify(ctx, webhook.Payload{
		Event:          webhook.EventPaymentSuccess,
		SubscriptionId: sub.Id,
		UserId:         sub.UserId,
		UserEmail:      sub.UserEmail,
		Amount:         sub.Amount,
		Timestamp:      time.Now(),
	}); err != nil {
		s.log.Warn("subscription", "Webhook notification failed", map[string]interface{}{
			"subscriptionId": sub.Id,
			"error":          err.Error(),
		})
	}

	res := dto.NewSubscriptionResponse(sub)
	s.cache.Set(res)
	return res, nil
}

func (s *subscriptionService) GetSubscription(ctx context.Context, id uuid.UUID) (*dto.SubscriptionResponse, error) {
	if res, found := s.cache.Get(id); found {
		return res, nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	sub, err := uow.SubscriptionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, apperror.NewNotFoundError("Subscription")
	}

	res := dto.NewSubscriptionResponse(sub)
	s.cache.Set(res)
	return res, nil
}

func (s *subscriptionService) CancelSubscription(ctx context.Context, id uuid.UUID) (*dto.SubscriptionResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := uow.SubscriptionRepository().FindOne(ctx, specification.ByID{ID: id})
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, apperror.NewNotFoundError("Subscription")
	}

	if err := sub.Cancel(); err != nil {
		return nil, err
	}

	if err := uow.SubscriptionRepository().Update(ctx, sub); err != nil {
		return nil, err
	}
	s.cache.Delete(sub.Id)
	s.log.Info("subscription", "Subscription cancelled", map[string]interface{}{
		"subscriptionId": sub.Id,
	})

	// Same partial-failure policy as Subscribe: the state change is durable,
	// the notification is best-effort.
	if err := s.notifier.Notify(ctx, webhook.Payload{
		Event:          webhook.EventSubscriptionCancelled,
		SubscriptionId: sub.Id,
		UserId:         sub.UserId,
		UserEmail:      sub.UserEmail,
		Amount:         sub.Amount,
		Timestamp:      time.Now(),
	}); err != nil {
		s.log.Warn("subscription", "Webhook notification failed", map[string]interface{}{
			"subscriptionId": sub.Id,
			"error":          err.Error(),
		})
	}

	return dto.NewSubscriptionResponse(sub), nil
}

func (s *subscriptionService) publishCreated(ctx context.Context, sub *entity.Subscription) {
	if s.publisher != nil {
		if err := s.publisher.PublishSubscriptionCreated(&dto.PublishSubscriptionCreatedMessage{
			SubscriptionId: sub.Id,
			UserId:         sub.UserId,
			UserEmail:      sub.UserEmail,
			UserName:       sub.UserName,
			Amount:         sub.Amount,
			EndDate:        sub.EndDate,
		}); err != nil {
			s.log.Warn("subscription", "Failed to publish SUBSCRIPTION_CREATED event", map[string]interface{}{
				"subscriptionId": sub.Id,
				"error":          err.Error(),
			})
		}
	}

	if s.eventPublisher != nil {
		evt := events.BaseEvent{
			Type: "SUBSCRIPTION_CREATED",
			Data: map[string]interface{}{
				"subscription_id": sub.Id,
				"user_id":         sub.UserId,
				"user_email":      sub.UserEmail,
				"amount":          sub.Amount,
				"occurred_at":     time.Now(),
			},
			OccurredAt: time.Now(),
		}
		if err := s.eventPublisher.Publish(ctx, evt); err != nil {
			s.log.Warn("subscription", "Failed to publish SUBSCRIPTION_CREATED to NATS", map[string]interface{}{
				"subscriptionId": sub.Id,
				"error":          err.Error(),
			})
		}
	}
}
