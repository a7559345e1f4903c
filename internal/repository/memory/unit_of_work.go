package memory

import (
	"context"

	"subhub-be/internal/repository/contract"
	"subhub-be/internal/repository/unitofwork"
)

// UnitOfWork satisfies the unitofwork interfaces without a database. Begin,
// Commit and Rollback are no-ops; the backing maps are already atomic enough
// for tests.
type UnitOfWork struct {
	subscriptions *SubscriptionRepository
	deliveries    *WebhookDeliveryRepository
}

func (u *UnitOfWork) Begin(context.Context) error { return nil }
func (u *UnitOfWork) Commit() error               { return nil }
func (u *UnitOfWork) Rollback() error             { return nil }

func (u *UnitOfWork) SubscriptionRepository() contract.SubscriptionRepository {
	return u.subscriptions
}

func (u *UnitOfWork) WebhookDeliveryRepository() contract.WebhookDeliveryRepository {
	return u.deliveries
}

type RepositoryFactory struct {
	uow *UnitOfWork
}

func NewRepositoryFactory() *RepositoryFactory {
	return &RepositoryFactory{
		uow: &UnitOfWork{
			subscriptions: NewSubscriptionRepository(),
			deliveries:    NewWebhookDeliveryRepository(),
		},
	}
}

func (f *RepositoryFactory) NewUnitOfWork(context.Context) unitofwork.UnitOfWork {
	return f.uow
}

// Subscriptions exposes the backing repository so tests can seed and inspect it.
func (f *RepositoryFactory) Subscriptions() *SubscriptionRepository {
	return f.uow.subscriptions
}
