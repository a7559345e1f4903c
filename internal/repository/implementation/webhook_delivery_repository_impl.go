package implementation

import (
	"context"

	"github.com/google/uuid"
	"gorm.io/gorm"

	"subhub-be/internal/model"
	"subhub-be/internal/repository/contract"
)

type WebhookDeliveryRepositoryImpl struct {
	db *gorm.DB
}

func NewWebhookDeliveryRepository(db *gorm.DB) contract.WebhookDeliveryRepository {
	return &WebhookDeliveryRepositoryImpl{db: db}
}

func (r *WebhookDeliveryRepositoryImpl) Create(ctx context.Context, delivery *model.WebhookDelivery) error {
	return r.db.WithContext(ctx).Create(delivery).Error
}

func (r *WebhookDeliveryRepositoryImpl) FindAllBySubscriptionId(ctx context.Context, subscriptionId uuid.UUID) ([]*model.WebhookDelivery, error) {
	var deliveries []*model.WebhookDelivery
	err := r.db.WithContext(ctx).
		Where("subscription_id = ?", subscriptionId).
		Order("created_at ASC").
		Find(&deliveries).Error
	if err != nil {
		return nil, err
	}
	return deliveries, nil
}
