package dto

import (
	"cutclub-be/internal/entity"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type PlanRequest struct {
	Name            string          `json:"name" validate:"required,min=2,max=100"`
	Description     string          `json:"description" validate:"omitempty,max=500"`
	Price           decimal.Decimal `json:"price"`
	CreditsPerMonth int             `json:"credits_per_month" validate:"required,gt=0"`
	DurationDays    int             `json:"duration_days" validate:"omitempty,gt=0"`
	IsActive        *bool           `json:"is_active"`
}

type PlanResponse struct {
	Id              uuid.UUID `json:"id"`
	Name            string    `json:"name"`
	Description     string    `json:"description,omitempty"`
	Price           string    `json:"price"`
	CreditsPerMonth int       `json:"credits_per_month"`
	DurationDays    int       `json:"duration_days"`
	PricePerHaircut string    `json:"price_per_haircut"`
	IsActive        bool      `json:"is_active"`
}

func NewPlanResponse(p *entity.Plan) *PlanResponse {
	perHaircut := decimal.Zero
	if p.CreditsPerMonth > 0 {
		perHaircut = p.Price.Div(decimal.NewFromInt(int64(p.CreditsPerMonth))).RoundBank(2)
	}
	return &PlanResponse{
		Id:              p.Id,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price.StringFixed(2),
		CreditsPerMonth: p.CreditsPerMonth,
		DurationDays:    p.EffectiveDurationDays(),
		PricePerHaircut: perHaircut.StringFixed(2),
		IsActive:        p.IsActive,
	}
}

func NewPlanResponses(plans []*entity.Plan) []*PlanResponse {
	return lo.Map(plans, func(p *entity.Plan, _ int) *PlanResponse {
		return NewPlanResponse(p)
	})
}
