// FILE: internal/entity/subscription_entity.go
package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SubscriptionStatus string

const (
	SubscriptionStatusActive    SubscriptionStatus = "active"
	SubscriptionStatusInactive  SubscriptionStatus = "inactive"
	SubscriptionStatusCancelled SubscriptionStatus = "cancelled"
	SubscriptionStatusPending   SubscriptionStatus = "pending"
)

// DefaultPlanDurationDays applies when a plan has no explicit duration
const DefaultPlanDurationDays = 30

type Plan struct {
	Id              uuid.UUID
	Name            string
	Description     string
	Price           decimal.Decimal
	CreditsPerMonth int
	DurationDays    int
	IsActive        bool
	CreatedAt       time.Time
}

// EffectiveDurationDays falls back to the default 30 day cycle
func (p *Plan) EffectiveDurationDays() int {
	if p.DurationDays <= 0 {
		return DefaultPlanDurationDays
	}
	return p.DurationDays
}

// Subscription carries a snapshot of the plan price and quota taken at purchase time.
// Settlement always reads the snapshot, never the live plan row.
type Subscription struct {
	Id              uuid.UUID
	UserId          uuid.UUID
	PlanId          uuid.UUID
	SalonId         *uuid.UUID
	Status          SubscriptionStatus
	CurrentCredits  int
	PlanPrice       decimal.Decimal
	CreditsPerMonth int
	StartDate       time.Time
	EndDate         time.Time
	CreatedAt       time.Time
	UpdatedAt       time.Time
}

// IsExpired reports whether the validity window has passed. Expiry is lazy:
// nothing flips the status, readers compare EndDate against now.
func (s *Subscription) IsExpired(now time.Time) bool {
	return !s.EndDate.After(now)
}

// IsUsable is true for an active subscription still inside its window
func (s *Subscription) IsUsable(now time.Time) bool {
	return s.Status == SubscriptionStatusActive && !s.IsExpired(now)
}

func (s *Subscription) IsLinkedTo(salonId uuid.UUID) bool {
	return s.SalonId != nil && *s.SalonId == salonId
}
