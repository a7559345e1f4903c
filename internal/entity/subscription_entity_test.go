package entity

import (
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"

	"subhub-be/internal/pkg/apperror"
)

func newValidSubscription(t *testing.T) *Subscription {
	t.Helper()
	sub, err := NewSubscription(uuid.New(), "user-001", "john@example.com", "John Doe", PaymentMethodCreditCard, 99.99)
	assert.NoError(t, err)
	return sub
}

func TestNewSubscription(t *testing.T) {
	t.Run("Valid input creates an active one-year subscription", func(t *testing.T) {
		before := time.Now()
		sub := newValidSubscription(t)

		assert.Equal(t, SubscriptionStatusActive, sub.Status)
		assert.Equal(t, "user-001", sub.UserId)
		assert.Equal(t, sub.StartDate.AddDate(1, 0, 0), sub.EndDate)
		assert.Equal(t, sub.StartDate.Year()+1, sub.EndDate.Year())
		assert.Equal(t, sub.CreatedAt, sub.UpdatedAt)
		assert.False(t, sub.StartDate.Before(before))
		assert.True(t, sub.IsActive())
	})

	t.Run("Rejects non-positive amounts", func(t *testing.T) {
		for _, amount := range []float64{0, -1, -99.99} {
			_, err := NewSubscription(uuid.New(), "user-001", "john@example.com", "John Doe", PaymentMethodPaypal, amount)
			assert.Error(t, err)

			var appErr *apperror.AppError
			assert.True(t, errors.As(err, &appErr))
			assert.Equal(t, "INVALID_AMOUNT", appErr.Code)
			assert.Equal(t, 422, appErr.StatusCode)
		}
	})

	t.Run("Rejects malformed emails", func(t *testing.T) {
		badEmails := []string{
			"plainaddress",
			"no-at-sign.com",
			"missing@tld",
			"spaces in@local.com",
			"@example.com",
			"john@",
		}
		for _, email := range badEmails {
			_, err := NewSubscription(uuid.New(), "user-001", email, "John Doe", PaymentMethodDebitCard, 10)
			assert.Error(t, err, "expected %q to be rejected", email)

			var appErr *apperror.AppError
			assert.True(t, errors.As(err, &appErr))
			assert.Equal(t, "INVALID_EMAIL", appErr.Code)
		}
	})
}

func TestReconstituteSubscription(t *testing.T) {
	t.Run("Skips validation entirely", func(t *testing.T) {
		// A row with values the factory would reject still loads.
		now := time.Now()
		sub := ReconstituteSubscription(uuid.New(), "user-001", "not-an-email", "X", SubscriptionStatusExpired, PaymentMethodPaypal, -5, now, now, now, now)

		assert.Equal(t, SubscriptionStatusExpired, sub.Status)
		assert.Equal(t, -5.0, sub.Amount)
	})
}

func TestSubscriptionTransitions(t *testing.T) {
	t.Run("Cancel on active succeeds and touches UpdatedAt", func(t *testing.T) {
		sub := newValidSubscription(t)
		createdAt := sub.UpdatedAt

		assert.NoError(t, sub.Cancel())
		assert.Equal(t, SubscriptionStatusCancelled, sub.Status)
		assert.False(t, sub.UpdatedAt.Before(createdAt))
		assert.False(t, sub.IsActive())
	})

	t.Run("Cancel twice fails with already-cancelled", func(t *testing.T) {
		sub := newValidSubscription(t)
		assert.NoError(t, sub.Cancel())

		err := sub.Cancel()
		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, "SUBSCRIPTION_ALREADY_CANCELLED", appErr.Code)
	})

	t.Run("Cancel after expire fails with already-expired", func(t *testing.T) {
		sub := newValidSubscription(t)
		assert.NoError(t, sub.Expire())

		err := sub.Cancel()
		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, "SUBSCRIPTION_ALREADY_EXPIRED", appErr.Code)
	})

	t.Run("Expire on active succeeds", func(t *testing.T) {
		sub := newValidSubscription(t)

		assert.NoError(t, sub.Expire())
		assert.Equal(t, SubscriptionStatusExpired, sub.Status)
		assert.False(t, sub.IsActive())
	})

	t.Run("Expire after cancel fails with not-active", func(t *testing.T) {
		sub := newValidSubscription(t)
		assert.NoError(t, sub.Cancel())

		err := sub.Expire()
		var appErr *apperror.AppError
		assert.True(t, errors.As(err, &appErr))
		assert.Equal(t, "SUBSCRIPTION_NOT_ACTIVE", appErr.Code)
	})

	t.Run("Expire twice fails", func(t *testing.T) {
		sub := newValidSubscription(t)
		assert.NoError(t, sub.Expire())
		assert.Error(t, sub.Expire())
	})
}

func TestIsActive(t *testing.T) {
	t.Run("False once the period has lapsed even while status is ACTIVE", func(t *testing.T) {
		now := time.Now()
		sub := ReconstituteSubscription(
			uuid.New(), "user-001", "john@example.com", "John Doe",
			SubscriptionStatusActive, PaymentMethodCreditCard, 99.99,
			now.AddDate(-1, 0, -1), now.Add(-time.Hour), now.AddDate(-1, 0, -1), now.AddDate(-1, 0, -1),
		)

		assert.Equal(t, SubscriptionStatusActive, sub.Status)
		assert.False(t, sub.IsActive())
	})
}
