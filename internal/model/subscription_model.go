package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type Plan struct {
	Id              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Name            string          `gorm:"type:varchar(255);not null"`
	Description     string          `gorm:"type:text"`
	Price           decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	CreditsPerMonth int             `gorm:"not null;check:credits_per_month > 0"`
	DurationDays    int             `gorm:"default:30"`
	IsActive        bool            `gorm:"default:true"`
	CreatedAt       time.Time       `gorm:"autoCreateTime"`
}

func (Plan) TableName() string {
	return "plans"
}

type Subscription struct {
	Id              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId          uuid.UUID       `gorm:"type:uuid;not null;index"`
	PlanId          uuid.UUID       `gorm:"type:uuid;not null;index"`
	SalonId         *uuid.UUID      `gorm:"type:uuid;index"`
	Status          string          `gorm:"type:subscription_status;not null"`
	CurrentCredits  int             `gorm:"not null;default:0;check:current_credits >= 0"`
	PlanPrice       decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	CreditsPerMonth int             `gorm:"not null"`
	StartDate       time.Time       `gorm:"not null"`
	EndDate         time.Time       `gorm:"not null;index"`
	CreatedAt       time.Time       `gorm:"autoCreateTime"`
	UpdatedAt       time.Time       `gorm:"autoUpdateTime"`
}

func (Subscription) TableName() string {
	return "subscriptions"
}
