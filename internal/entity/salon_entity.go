package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// DefaultCommissionRate is the salon share applied when registration does not set one
var DefaultCommissionRate = decimal.NewFromInt(70)

type Salon struct {
	Id             uuid.UUID
	OwnerId        uuid.UUID
	Name           string
	Cnpj           string
	Phone          string
	Address        string
	City           string
	State          string
	IsApproved     bool
	IsActive       bool
	CommissionRate decimal.Decimal // percent of the haircut value paid to the salon
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// CanRedeem gates redemption: only approved, active salons settle haircuts
func (s *Salon) CanRedeem() bool {
	return s.IsApproved && s.IsActive
}
