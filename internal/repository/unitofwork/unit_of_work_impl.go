package unitofwork

import (
	"context"
	"fmt"

	"cutclub-be/internal/repository/contract"
	"cutclub-be/internal/repository/implementation"

	"gorm.io/gorm"
)

type UnitOfWorkImpl struct {
	db *gorm.DB
	tx *gorm.DB // active transaction, nil outside Begin/Commit
}

func NewUnitOfWork(db *gorm.DB) UnitOfWork {
	return &UnitOfWorkImpl{
		db: db,
	}
}

func (u *UnitOfWorkImpl) getDB() *gorm.DB {
	if u.tx != nil {
		return u.tx
	}
	return u.db
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	u.tx = u.db.WithContext(ctx).Begin()
	return u.tx.Error
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	err := u.tx.Commit().Error
	u.tx = nil
	return err
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	err := u.tx.Rollback().Error
	u.tx = nil
	return err
}

// Repository Accessors

func (u *UnitOfWorkImpl) SubscriptionRepository() contract.SubscriptionRepository {
	return implementation.NewSubscriptionRepository(u.getDB())
}

func (u *UnitOfWorkImpl) RedemptionCodeRepository() contract.RedemptionCodeRepository {
	return implementation.NewRedemptionCodeRepository(u.getDB())
}

func (u *UnitOfWorkImpl) SalonRepository() contract.SalonRepository {
	return implementation.NewSalonRepository(u.getDB())
}

func (u *UnitOfWorkImpl) SettlementRepository() contract.SettlementRepository {
	return implementation.NewSettlementRepository(u.getDB())
}

func (u *UnitOfWorkImpl) WithdrawRepository() contract.WithdrawRepository {
	return implementation.NewWithdrawRepository(u.getDB())
}

func (u *UnitOfWorkImpl) FinancialLogRepository() contract.FinancialLogRepository {
	return implementation.NewFinancialLogRepository(u.getDB())
}

func (u *UnitOfWorkImpl) PaymentRepository() contract.PaymentRepository {
	return implementation.NewPaymentRepository(u.getDB())
}

func (u *UnitOfWorkImpl) ProfileRepository() contract.ProfileRepository {
	return implementation.NewProfileRepository(u.getDB())
}
