package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/datatypes"
)

type WithdrawRequest struct {
	Id              uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SalonId         uuid.UUID       `gorm:"type:uuid;not null;index"`
	Amount          decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	HaircutsCount   int             `gorm:"not null;default:0"`
	CycleStart      time.Time       `gorm:"not null"`
	CycleEnd        time.Time       `gorm:"not null"`
	Status          string          `gorm:"type:withdraw_status;not null;index"`
	RejectionReason *string         `gorm:"type:text"`
	AdminId         *uuid.UUID      `gorm:"type:uuid"`
	RequestedAt     time.Time       `gorm:"not null"`
	PaidAt          *time.Time
}

func (WithdrawRequest) TableName() string {
	return "withdraw_requests"
}

type FinancialLog struct {
	Id          uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Type        string          `gorm:"type:varchar(50);not null;index"`
	Amount      decimal.Decimal `gorm:"type:numeric(12,2);not null"`
	Description string          `gorm:"type:text"`
	ReferenceId *uuid.UUID      `gorm:"type:uuid;index"`
	Metadata    datatypes.JSON  `gorm:"type:jsonb"`
	CreatedAt   time.Time       `gorm:"not null;index"`
}

func (FinancialLog) TableName() string {
	return "financial_logs"
}

type Payment struct {
	Id             uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	UserId         uuid.UUID       `gorm:"type:uuid;not null;index"`
	SubscriptionId uuid.UUID       `gorm:"type:uuid;not null;index"`
	PlanId         uuid.UUID       `gorm:"type:uuid;not null"`
	Amount         decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	Status         string          `gorm:"type:varchar(30);not null"`
	PaymentMethod  string          `gorm:"type:varchar(30)"`
	ExternalId     string          `gorm:"type:varchar(255);uniqueIndex;not null"`
	PaidAt         time.Time       `gorm:"not null"`
	CreatedAt      time.Time       `gorm:"autoCreateTime"`
}

func (Payment) TableName() string {
	return "payments"
}
