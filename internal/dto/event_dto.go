package dto

import (
	"time"

	"github.com/google/uuid"
)

// PublishSubscriptionCreatedMessage is the payload carried on the in-process
// event bus when a subscription is created.
type PublishSubscriptionCreatedMessage struct {
	SubscriptionId uuid.UUID `json:"subscription_id"`
	UserId         string    `json:"user_id"`
	UserEmail      string    `json:"user_email"`
	UserName       string    `json:"user_name"`
	Amount         float64   `json:"amount"`
	EndDate        time.Time `json:"end_date"`
}
