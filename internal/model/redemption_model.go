package model

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type HaircutCode struct {
	Id             uuid.UUID  `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Code           string     `gorm:"type:char(5);not null;index:idx_haircut_codes_lookup,priority:1"`
	SubscriptionId uuid.UUID  `gorm:"type:uuid;not null;index"`
	ExpiresAt      time.Time  `gorm:"not null;index:idx_haircut_codes_lookup,priority:3"`
	IsUsed         bool       `gorm:"not null;default:false;index:idx_haircut_codes_lookup,priority:2"`
	UsedAt         *time.Time
	CreatedAt      time.Time  `gorm:"autoCreateTime"`
}

func (HaircutCode) TableName() string {
	return "haircut_codes"
}

type HaircutHistory struct {
	Id               uuid.UUID       `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	SubscriptionId   uuid.UUID       `gorm:"type:uuid;not null;index"`
	SalonId          uuid.UUID       `gorm:"type:uuid;not null;index:idx_haircut_history_salon_created,priority:1"`
	ValidatedBy      uuid.UUID       `gorm:"type:uuid;not null"`
	CodeUsed         string          `gorm:"type:char(5);not null"`
	PricePerHaircut  decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	CommissionRate   decimal.Decimal `gorm:"type:numeric(5,2);not null"`
	AmountToSalon    decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	AmountToPlatform decimal.Decimal `gorm:"type:numeric(10,2);not null"`
	CreatedAt        time.Time       `gorm:"not null;index:idx_haircut_history_salon_created,priority:2"`
}

func (HaircutHistory) TableName() string {
	return "haircut_history"
}
