package memory

import (
	"context"
	"sort"
	"sync"

	"github.com/google/uuid"

	"subhub-be/internal/entity"
	"subhub-be/internal/model"
	"subhub-be/internal/repository/contract"
	"subhub-be/internal/repository/specification"
)

// SubscriptionRepository is a map-backed implementation of the repository
// contract. It understands the common specifications by type switch, which is
// enough for the queries the services actually issue.
type SubscriptionRepository struct {
	mu   sync.RWMutex
	rows map[uuid.UUID]entity.Subscription
}

func NewSubscriptionRepository() *SubscriptionRepository {
	return &SubscriptionRepository{
		rows: make(map[uuid.UUID]entity.Subscription),
	}
}

func (r *SubscriptionRepository) Create(_ context.Context, subscription *entity.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[subscription.Id] = *subscription
	return nil
}

func (r *SubscriptionRepository) Update(_ context.Context, subscription *entity.Subscription) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows[subscription.Id] = *subscription
	return nil
}

func (r *SubscriptionRepository) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.Subscription, error) {
	matches, err := r.FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}
	if len(matches) == 0 {
		return nil, nil
	}
	return matches[0], nil
}

func (r *SubscriptionRepository) FindAll(_ context.Context, specs ...specification.Specification) ([]*entity.Subscription, error) {
	r.mu.RLock()
	defer r.mu.RUnlock()

	var matches []*entity.Subscription
	for id := range r.rows {
		row := r.rows[id]
		if matchesSpecs(&row, specs) {
			copied := row
			matches = append(matches, &copied)
		}
	}
	applyOrder(matches, specs)
	return matches, nil
}

func (r *SubscriptionRepository) FindLatestByUserId(ctx context.Context, userId string) (*entity.Subscription, error) {
	return r.FindOne(ctx,
		specification.ByUserID{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
}

func matchesSpecs(row *entity.Subscription, specs []specification.Specification) bool {
	for _, spec := range specs {
		switch s := spec.(type) {
		case specification.ByID:
			if row.Id != s.ID {
				return false
			}
		case specification.ByUserID:
			if row.UserId != s.UserID {
				return false
			}
		}
	}
	return true
}

func applyOrder(rows []*entity.Subscription, specs []specification.Specification) {
	for _, spec := range specs {
		if s, ok := spec.(specification.OrderBy); ok && s.Field == "created_at" {
			sort.SliceStable(rows, func(i, j int) bool {
				if s.Desc {
					return rows[i].CreatedAt.After(rows[j].CreatedAt)
				}
				return rows[i].CreatedAt.Before(rows[j].CreatedAt)
			})
		}
	}
}

// WebhookDeliveryRepository is the in-memory counterpart for delivery audit rows.
type WebhookDeliveryRepository struct {
	mu   sync.Mutex
	rows []model.WebhookDelivery
}

func NewWebhookDeliveryRepository() *WebhookDeliveryRepository {
	return &WebhookDeliveryRepository{}
}

func (r *WebhookDeliveryRepository) Create(_ context.Context, delivery *model.WebhookDelivery) error {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.rows = append(r.rows, *delivery)
	return nil
}

func (r *WebhookDeliveryRepository) FindAllBySubscriptionId(_ context.Context, subscriptionId uuid.UUID) ([]*model.WebhookDelivery, error) {
	r.mu.Lock()
	defer r.mu.Unlock()
	var matches []*model.WebhookDelivery
	for i := range r.rows {
		if r.rows[i].SubscriptionId == subscriptionId {
			copied := r.rows[i]
			matches = append(matches, &copied)
		}
	}
	return matches, nil
}

var _ contract.SubscriptionRepository = (*SubscriptionRepository)(nil)
var _ contract.WebhookDeliveryRepository = (*WebhookDeliveryRepository)(nil)
