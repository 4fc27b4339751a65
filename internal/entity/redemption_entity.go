package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

const (
	CodeMin    = 10000
	CodeMax    = 99999
	CodeLength = 5
)

type RedemptionCode struct {
	Id             uuid.UUID
	Code           string
	SubscriptionId uuid.UUID
	ExpiresAt      time.Time
	IsUsed         bool
	UsedAt         *time.Time
	CreatedAt      time.Time
}

// IsLive is true while the code is unused and not yet expired
func (c *RedemptionCode) IsLive(now time.Time) bool {
	return !c.IsUsed && c.ExpiresAt.After(now)
}

// SettlementRecord is the immutable haircut history row written once per redemption
type SettlementRecord struct {
	Id               uuid.UUID
	SubscriptionId   uuid.UUID
	SalonId          uuid.UUID
	ValidatedBy      uuid.UUID
	CodeUsed         string
	PricePerHaircut  decimal.Decimal
	CommissionRate   decimal.Decimal
	AmountToSalon    decimal.Decimal
	AmountToPlatform decimal.Decimal
	CreatedAt        time.Time
}

// SettlementTotals is the sum of a salon's settlements over a period
type SettlementTotals struct {
	AmountToSalon    decimal.Decimal
	AmountToPlatform decimal.Decimal
	HaircutCount     int
}
