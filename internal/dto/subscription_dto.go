package dto

import (
	"time"

	"cutclub-be/internal/entity"

	"github.com/google/uuid"
)

type SubscriptionResponse struct {
	Id              uuid.UUID  `json:"id"`
	PlanId          uuid.UUID  `json:"plan_id"`
	SalonId         *uuid.UUID `json:"salon_id"`
	Status          string     `json:"status"`
	CurrentCredits  int        `json:"current_credits"`
	CreditsPerMonth int        `json:"credits_per_month"`
	PlanPrice       string     `json:"plan_price"`
	StartDate       time.Time  `json:"start_date"`
	EndDate         time.Time  `json:"end_date"`
	IsExpired       bool       `json:"is_expired"`
}

func NewSubscriptionResponse(s *entity.Subscription, now time.Time) *SubscriptionResponse {
	return &SubscriptionResponse{
		Id:              s.Id,
		PlanId:          s.PlanId,
		SalonId:         s.SalonId,
		Status:          string(s.Status),
		CurrentCredits:  s.CurrentCredits,
		CreditsPerMonth: s.CreditsPerMonth,
		PlanPrice:       s.PlanPrice.StringFixed(2),
		StartDate:       s.StartDate,
		EndDate:         s.EndDate,
		IsExpired:       s.IsExpired(now),
	}
}

// BalanceResponse is the subscriber dashboard projection
type BalanceResponse struct {
	HasSubscription bool                  `json:"has_subscription"`
	Subscription    *SubscriptionResponse `json:"subscription,omitempty"`
	Salon           *SalonResponse        `json:"salon,omitempty"`
	DaysRemaining   int                   `json:"days_remaining"`
	CanGenerateCode bool                  `json:"can_generate_code"`
}

type CodeResponse struct {
	Code             string    `json:"code"`
	ExpiresAt        time.Time `json:"expires_at"`
	ExpiresInSeconds int64     `json:"expires_in_seconds"`
}

func NewCodeResponse(c *entity.RedemptionCode, now time.Time) *CodeResponse {
	remaining := int64(c.ExpiresAt.Sub(now).Seconds())
	if remaining < 0 {
		remaining = 0
	}
	return &CodeResponse{
		Code:             c.Code,
		ExpiresAt:        c.ExpiresAt,
		ExpiresInSeconds: remaining,
	}
}

type LinkSalonRequest struct {
	SalonId uuid.UUID `json:"salon_id" validate:"required"`
}
