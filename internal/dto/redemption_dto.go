package dto

import (
	"fmt"
	"time"

	"cutclub-be/internal/entity"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type ValidateCodeRequest struct {
	Code string `json:"code" validate:"required"`
}

type SettlementResponse struct {
	Id               uuid.UUID `json:"id"`
	SubscriptionId   uuid.UUID `json:"subscription_id"`
	SalonId          uuid.UUID `json:"salon_id"`
	ValidatedBy      uuid.UUID `json:"validated_by"`
	CodeUsed         string    `json:"code_used"`
	PricePerHaircut  string    `json:"price_per_haircut"`
	CommissionRate   string    `json:"commission_rate"`
	AmountToSalon    string    `json:"amount_to_salon"`
	AmountToPlatform string    `json:"amount_to_platform"`
	CreatedAt        time.Time `json:"created_at"`
}

func NewSettlementResponse(r *entity.SettlementRecord) *SettlementResponse {
	return &SettlementResponse{
		Id:               r.Id,
		SubscriptionId:   r.SubscriptionId,
		SalonId:          r.SalonId,
		ValidatedBy:      r.ValidatedBy,
		CodeUsed:         r.CodeUsed,
		PricePerHaircut:  r.PricePerHaircut.StringFixed(2),
		CommissionRate:   r.CommissionRate.StringFixed(2),
		AmountToSalon:    r.AmountToSalon.StringFixed(2),
		AmountToPlatform: r.AmountToPlatform.StringFixed(2),
		CreatedAt:        r.CreatedAt,
	}
}

func NewSettlementResponses(records []*entity.SettlementRecord) []*SettlementResponse {
	return lo.Map(records, func(r *entity.SettlementRecord, _ int) *SettlementResponse {
		return NewSettlementResponse(r)
	})
}

// HistoryQuery bounds a listing; an empty side is left open
type HistoryQuery struct {
	From string `query:"from"`
	To   string `query:"to"`
}

// Window parses From and To as RFC3339 or plain dates. A plain To date covers the whole day.
func (q HistoryQuery) Window() (time.Time, time.Time, error) {
	from, err := parseBound(q.From, false)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	to, err := parseBound(q.To, true)
	if err != nil {
		return time.Time{}, time.Time{}, err
	}
	if !from.IsZero() && !to.IsZero() && to.Before(from) {
		return time.Time{}, time.Time{}, fmt.Errorf("%w: to is before from", entity.ErrInvalidInput)
	}
	return from, to, nil
}

func parseBound(value string, endOfDay bool) (time.Time, error) {
	if value == "" {
		return time.Time{}, nil
	}
	if t, err := time.Parse(time.RFC3339, value); err == nil {
		return t, nil
	}
	t, err := time.Parse(time.DateOnly, value)
	if err != nil {
		return time.Time{}, fmt.Errorf("%w: bad date %q", entity.ErrInvalidInput, value)
	}
	if endOfDay {
		t = t.AddDate(0, 0, 1)
	}
	return t, nil
}

type SalonHistoryResponse struct {
	Records       []*SettlementResponse `json:"records"`
	TotalToSalon  string                `json:"total_to_salon"`
	HaircutsCount int                   `json:"haircuts_count"`
}
