package dto

import (
	"time"

	"cutclub-be/internal/entity"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

// FinancialSummary is the salon's balance split by withdrawal state
type FinancialSummary struct {
	SalonId           uuid.UUID       `json:"salon_id"`
	Available         decimal.Decimal `json:"available"`
	AvailableHaircuts int             `json:"available_haircuts"`
	Pending           decimal.Decimal `json:"pending"`
	Paid              decimal.Decimal `json:"paid"`
	TotalEarned       decimal.Decimal `json:"total_earned"`
	CanWithdraw       bool            `json:"can_withdraw"`
	BlockedReason     string          `json:"blocked_reason,omitempty"`
	WithdrawOpenDay   int             `json:"withdraw_open_day"`
}

type RejectWithdrawalRequest struct {
	Reason string `json:"reason" validate:"required,min=3,max=500"`
}

type WithdrawResponse struct {
	Id              uuid.UUID  `json:"id"`
	SalonId         uuid.UUID  `json:"salon_id"`
	Amount          string     `json:"amount"`
	HaircutsCount   int        `json:"haircuts_count"`
	CycleStart      time.Time  `json:"cycle_start"`
	CycleEnd        time.Time  `json:"cycle_end"`
	Status          string     `json:"status"`
	RejectionReason *string    `json:"rejection_reason,omitempty"`
	RequestedAt     time.Time  `json:"requested_at"`
	PaidAt          *time.Time `json:"paid_at,omitempty"`
}

func NewWithdrawResponse(w *entity.WithdrawRequest) *WithdrawResponse {
	return &WithdrawResponse{
		Id:              w.Id,
		SalonId:         w.SalonId,
		Amount:          w.Amount.StringFixed(2),
		HaircutsCount:   w.HaircutsCount,
		CycleStart:      w.CycleStart,
		CycleEnd:        w.CycleEnd,
		Status:          string(w.Status),
		RejectionReason: w.RejectionReason,
		RequestedAt:     w.RequestedAt,
		PaidAt:          w.PaidAt,
	}
}

func NewWithdrawResponses(requests []*entity.WithdrawRequest) []*WithdrawResponse {
	return lo.Map(requests, func(w *entity.WithdrawRequest, _ int) *WithdrawResponse {
		return NewWithdrawResponse(w)
	})
}

type FinancialLogResponse struct {
	Id          uuid.UUID              `json:"id"`
	Type        string                 `json:"type"`
	Amount      string                 `json:"amount"`
	Description string                 `json:"description"`
	ReferenceId *uuid.UUID             `json:"reference_id,omitempty"`
	Metadata    map[string]interface{} `json:"metadata,omitempty"`
	CreatedAt   time.Time              `json:"created_at"`
}

func NewFinancialLogResponses(logs []*entity.FinancialLog) []*FinancialLogResponse {
	return lo.Map(logs, func(l *entity.FinancialLog, _ int) *FinancialLogResponse {
		return &FinancialLogResponse{
			Id:          l.Id,
			Type:        string(l.Type),
			Amount:      l.Amount.StringFixed(2),
			Description: l.Description,
			ReferenceId: l.ReferenceId,
			Metadata:    l.Metadata,
			CreatedAt:   l.CreatedAt,
		}
	})
}

// PaymentConfirmationRequest is the signed webhook body from the payment collaborator
type PaymentConfirmationRequest struct {
	UserId        uuid.UUID       `json:"user_id" validate:"required"`
	PlanId        uuid.UUID       `json:"plan_id" validate:"required"`
	Amount        decimal.Decimal `json:"amount"`
	ExternalId    string          `json:"external_id" validate:"required,max=255"`
	PaymentMethod string          `json:"payment_method" validate:"omitempty,max=50"`
	PaidAt        time.Time       `json:"paid_at"`
}

// AdminFinancialResponse is the platform ledger view over a period
type AdminFinancialResponse struct {
	Logs             []*FinancialLogResponse `json:"logs"`
	Settlements      []*SettlementResponse   `json:"settlements"`
	PlatformRevenue  string                  `json:"platform_revenue"`
	SalonPayouts     string                  `json:"salon_payouts"`
	HaircutsRedeemed int                     `json:"haircuts_redeemed"`
}
