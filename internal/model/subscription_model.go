package model

import (
	"time"

	"github.com/google/uuid"
)

type Subscription struct {
	Id            uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId        string    `gorm:"type:varchar(255);not null;index"`
	UserEmail     string    `gorm:"type:varchar(255);not null"`
	UserName      string    `gorm:"type:varchar(255);not null"`
	Status        string    `gorm:"type:varchar(50);not null"`
	PaymentMethod string    `gorm:"type:varchar(50);not null"`
	Amount        float64   `gorm:"type:decimal(10,2);not null"`
	StartDate     time.Time `gorm:"not null"`
	EndDate       time.Time `gorm:"not null"`
	CreatedAt     time.Time `gorm:"autoCreateTime;index"`
	UpdatedAt     time.Time `gorm:"autoUpdateTime"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
