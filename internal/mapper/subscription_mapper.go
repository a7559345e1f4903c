package mapper

import (
	"subhub-be/internal/entity"
	"subhub-be/internal/model"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

// ToEntity goes through the trusted reconstitution path: rows in the database
// already passed creation validation once.
func (m *SubscriptionMapper) ToEntity(s *model.Subscription) *entity.Subscription {
	if s == nil {
		return nil
	}
	return entity.ReconstituteSubscription(
		s.Id,
		s.UserId,
		s.UserEmail,
		s.UserName,
		entity.SubscriptionStatus(s.Status),
		entity.PaymentMethod(s.PaymentMethod),
		s.Amount,
		s.StartDate,
		s.EndDate,
		s.CreatedAt,
		s.UpdatedAt,
	)
}

func (m *SubscriptionMapper) ToModel(s *entity.Subscription) *model.Subscription {
	if s == nil {
		return nil
	}
	return &model.Subscription{
		Id:            s.Id,
		UserId:        s.UserId,
		UserEmail:     s.UserEmail,
		UserName:      s.UserName,
		Status:        string(s.Status),
		PaymentMethod: string(s.PaymentMethod),
		Amount:        s.Amount,
		StartDate:     s.StartDate,
		EndDate:       s.EndDate,
		CreatedAt:     s.CreatedAt,
		UpdatedAt:     s.UpdatedAt,
	}
}
