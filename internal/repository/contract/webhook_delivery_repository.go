package contract

import (
	"context"

	"github.com/google/uuid"

	"subhub-be/internal/model"
)

// WebhookDeliveryRepository stores the outbound delivery audit trail. It works
// on the model directly; deliveries carry no domain rules worth an entity.
type WebhookDeliveryRepository interface {
	Create(ctx context.Context, delivery *model.WebhookDelivery) error
	FindAllBySubscriptionId(ctx context.Context, subscriptionId uuid.UUID) ([]*model.WebhookDelivery, error)
}
