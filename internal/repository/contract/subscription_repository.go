package contract

import (
	"context"

	"subhub-be/internal/entity"
	"subhub-be/internal/repository/specification"
)

type SubscriptionRepository interface {
	Create(ctx context.Context, subscription *entity.Subscription) error
	Update(ctx context.Context, subscription *entity.Subscription) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Subscription, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.Subscription, error)

	// FindLatestByUserId returns the user's most recent subscription by
	// creation time, or nil when the user has none. The "one active
	// subscription per user" rule is checked against this row.
	FindLatestByUserId(ctx context.Context, userId string) (*entity.Subscription, error)
}
