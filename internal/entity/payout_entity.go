package entity

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type WithdrawStatus string

const (
	WithdrawStatusPending  WithdrawStatus = "pending"
	WithdrawStatusApproved WithdrawStatus = "approved"
	WithdrawStatusPaid     WithdrawStatus = "paid"
	WithdrawStatusRejected WithdrawStatus = "rejected"
)

type WithdrawRequest struct {
	Id              uuid.UUID
	SalonId         uuid.UUID
	Amount          decimal.Decimal
	HaircutsCount   int
	CycleStart      time.Time
	CycleEnd        time.Time
	Status          WithdrawStatus
	RejectionReason *string
	AdminId         *uuid.UUID
	RequestedAt     time.Time
	PaidAt          *time.Time
}

// IsOpen is true while the request still blocks a new one
func (w *WithdrawRequest) IsOpen() bool {
	return w.Status == WithdrawStatusPending || w.Status == WithdrawStatusApproved
}

// CanTransitionTo encodes pending -> approved -> paid, with rejection allowed before payment
func (s WithdrawStatus) CanTransitionTo(next WithdrawStatus) bool {
	switch s {
	case WithdrawStatusPending:
		return next == WithdrawStatusApproved || next == WithdrawStatusRejected
	case WithdrawStatusApproved:
		return next == WithdrawStatusPaid || next == WithdrawStatusRejected
	default:
		return false
	}
}

type FinancialLogType string

const (
	FinancialLogSettlement          FinancialLogType = "settlement"
	FinancialLogWithdrawPaid        FinancialLogType = "withdraw_paid"
	FinancialLogSubscriptionPayment FinancialLogType = "subscription_payment"
)

type FinancialLog struct {
	Id          uuid.UUID
	Type        FinancialLogType
	Amount      decimal.Decimal
	Description string
	ReferenceId *uuid.UUID
	Metadata    map[string]interface{}
	CreatedAt   time.Time
}

type PaymentStatus string

const (
	PaymentStatusCompleted PaymentStatus = "completed"
)

type Payment struct {
	Id             uuid.UUID
	UserId         uuid.UUID
	SubscriptionId uuid.UUID
	PlanId         uuid.UUID
	Amount         decimal.Decimal
	Status         PaymentStatus
	PaymentMethod  string
	ExternalId     string
	PaidAt         time.Time
	CreatedAt      time.Time
}
