package unitofwork

import (
	"context"

	"cutclub-be/internal/repository/contract"
)

type UnitOfWork interface {
	Begin(ctx context.Context) error
	Commit() error
	Rollback() error

	SubscriptionRepository() contract.SubscriptionRepository
	RedemptionCodeRepository() contract.RedemptionCodeRepository
	SalonRepository() contract.SalonRepository
	SettlementRepository() contract.SettlementRepository
	WithdrawRepository() contract.WithdrawRepository
	FinancialLogRepository() contract.FinancialLogRepository
	PaymentRepository() contract.PaymentRepository
	ProfileRepository() contract.ProfileRepository
}
