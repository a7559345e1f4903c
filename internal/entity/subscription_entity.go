// FILE: internal/entity/subscription_entity.go
package entity

import (
	"regexp"
	"time"

	"github.com/google/uuid"

	"subhub-be/internal/pkg/apperror"
)

type SubscriptionStatus string
type PaymentMethod string

const (
	SubscriptionStatusActive    SubscriptionStatus = "ACTIVE"
	SubscriptionStatusExpired   SubscriptionStatus = "EXPIRED"
	SubscriptionStatusCancelled SubscriptionStatus = "CANCELLED"

	PaymentMethodCreditCard PaymentMethod = "CREDIT_CARD"
	PaymentMethodDebitCard  PaymentMethod = "DEBIT_CARD"
	PaymentMethodPaypal     PaymentMethod = "PAYPAL"
)

// emailRegex rejects whitespace and requires local@domain.tld.
var emailRegex = regexp.MustCompile(`^[^\s@]+@[^\s@]+\.[^\s@]+$`)

type Subscription struct {
	Id            uuid.UUID
	UserId        string
	UserEmail     string
	UserName      string
	Status        SubscriptionStatus
	PaymentMethod PaymentMethod
	Amount        float64
	StartDate     time.Time
	EndDate       time.Time
	CreatedAt     time.Time
	UpdatedAt     time.Time
}

// NewSubscription is the validating factory. Every subscription starts ACTIVE
// with a fixed one-year period; EndDate is never recomputed after creation.
func NewSubscription(id uuid.UUID, userId, userEmail, userName string, paymentMethod PaymentMethod, amount float64) (*Subscription, error) {
	if !emailRegex.MatchString(userEmail) {
		return nil, apperror.NewDomainError("Invalid email format", "INVALID_EMAIL")
	}
	if amount <= 0 {
		return nil, apperror.NewDomainError("Amount must be greater than zero", "INVALID_AMOUNT")
	}

	now := time.Now()
	return &Subscription{
		Id:            id,
		UserId:        userId,
		UserEmail:     userEmail,
		UserName:      userName,
		Status:        SubscriptionStatusActive,
		PaymentMethod: paymentMethod,
		Amount:        amount,
		StartDate:     now,
		EndDate:       now.AddDate(1, 0, 0),
		CreatedAt:     now,
		UpdatedAt:     now,
	}, nil
}

// ReconstituteSubscription rebuilds an entity from storage. The record was
// validated when it was first created, so no checks run here.
func ReconstituteSubscription(id uuid.UUID, userId, userEmail, userName string, status SubscriptionStatus, paymentMethod PaymentMethod, amount float64, startDate, endDate, createdAt, updatedAt time.Time) *Subscription {
	return &Subscription{
		Id:            id,
		UserId:        userId,
		UserEmail:     userEmail,
		UserName:      userName,
		Status:        status,
		PaymentMethod: paymentMethod,
		Amount:        amount,
		StartDate:     startDate,
		EndDate:       endDate,
		CreatedAt:     createdAt,
		UpdatedAt:     updatedAt,
	}
}

// Cancel moves ACTIVE -> CANCELLED. CANCELLED and EXPIRED are terminal.
func (s *Subscription) Cancel() error {
	if s.Status == SubscriptionStatusCancelled {
		return apperror.NewDomainError("Subscription is already cancelled", "SUBSCRIPTION_ALREADY_CANCELLED")
	}
	if s.Status == SubscriptionStatusExpired {
		return apperror.NewDomainError("Cannot cancel an expired subscription", "SUBSCRIPTION_ALREADY_EXPIRED")
	}
	s.Status = SubscriptionStatusCancelled
	s.UpdatedAt = time.Now()
	return nil
}

// Expire moves ACTIVE -> EXPIRED.
func (s *Subscription) Expire() error {
	if s.Status != SubscriptionStatusActive {
		return apperror.NewDomainError("Only active subscriptions can expire", "SUBSCRIPTION_NOT_ACTIVE")
	}
	s.Status = SubscriptionStatusExpired
	s.UpdatedAt = time.Now()
	return nil
}

// IsActive reports whether the subscription is usable right now. Time-based
// expiry is observed lazily here, not flipped by a background job.
func (s *Subscription) IsActive() bool {
	return s.Status == SubscriptionStatusActive && time.Now().Before(s.EndDate)
}
