package dto

import (
	"time"

	"github.com/google/uuid"

	"subhub-be/internal/entity"
)

type CreateSubscriptionRequest struct {
	UserId        string  `json:"userId" validate:"required"`
	UserEmail     string  `json:"userEmail" validate:"required,email"`
	UserName      string  `json:"userName" validate:"required,min=2"`
	PaymentMethod string  `json:"paymentMethod" validate:"required,oneof=CREDIT_CARD DEBIT_CARD PAYPAL"`
	Amount        float64 `json:"amount" validate:"required,gt=0"`
}

// SubscriptionResponse is the wire projection of the entity. UpdatedAt stays
// internal; timestamps marshal as RFC3339.
type SubscriptionResponse struct {
	Id            uuid.UUID `json:"id"`
	UserId        string    `json:"userId"`
	UserEmail     string    `json:"userEmail"`
	UserName      string    `json:"userName"`
	Status        string    `json:"status"`
	PaymentMethod string    `json:"paymentMethod"`
	Amount        float64   `json:"amount"`
	StartDate     time.Time `json:"startDate"`
	EndDate       time.Time `json:"endDate"`
	CreatedAt     time.Time `json:"createdAt"`
}

func NewSubscriptionResponse(s *entity.Subscription) *SubscriptionResponse {
	return &SubscriptionResponse{
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
	}
}
