package model

import (
	"time"

	"github.com/google/uuid"
	"gorm.io/datatypes"
)

// WebhookDelivery is the audit trail of outbound webhook calls. One row per
// notify() invocation, written after the retry loop settles.
type WebhookDelivery struct {
	Id             uuid.UUID      `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SubscriptionId uuid.UUID      `gorm:"type:uuid;not null;index"`
	Event          string         `gorm:"type:varchar(50);not null"`
	Payload        datatypes.JSON `gorm:"type:jsonb"`
	Attempts       int            `gorm:"not null"`
	Success        bool           `gorm:"not null"`
	LastError      *string        `gorm:"type:text"`
	CreatedAt      time.Time      `gorm:"autoCreateTime"`
}

func (WebhookDelivery) TableName() string {
	return "webhook_deliveries"
}
