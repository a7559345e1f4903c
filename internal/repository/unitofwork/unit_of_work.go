package unitofwork

import (
	"context"

	"subhub-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SubscriptionRepository() contract.SubscriptionRepository
	WebhookDeliveryRepository() contract.WebhookDeliveryRepository
}
