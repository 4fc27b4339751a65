package memory

import (
	"context"
	"fmt"

	"cutclub-be/internal/repository/contract"
	"cutclub-be/internal/repository/unitofwork"
)

type UnitOfWorkImpl struct {
	store *Store
	tx    *dataset // working copy, nil outside Begin/Commit
}

func NewUnitOfWork(store *Store) unitofwork.UnitOfWork {
	return &UnitOfWorkImpl{store: store}
}

func (u *UnitOfWorkImpl) Begin(ctx context.Context) error {
	if u.tx != nil {
		return fmt.Errorf("transaction already started")
	}
	if err := ctx.Err(); err != nil {
		return err
	}
	u.store.mu.Lock()
	u.tx = u.store.data.clone()
	return nil
}

func (u *UnitOfWorkImpl) Commit() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to commit")
	}
	u.store.data = u.tx
	u.tx = nil
	u.store.mu.Unlock()
	return nil
}

func (u *UnitOfWorkImpl) Rollback() error {
	if u.tx == nil {
		return fmt.Errorf("no transaction to rollback")
	}
	u.tx = nil
	u.store.mu.Unlock()
	return nil
}

func (u *UnitOfWorkImpl) read(fn func(d *dataset)) {
	if u.tx != nil {
		fn(u.tx)
		return
	}
	u.store.mu.RLock()
	defer u.store.mu.RUnlock()
	fn(u.store.data)
}

func (u *UnitOfWorkImpl) write(fn func(d *dataset) error) error {
	if u.tx != nil {
		return fn(u.tx)
	}
	u.store.mu.Lock()
	defer u.store.mu.Unlock()
	return fn(u.store.data)
}

// Repository Accessors

func (u *UnitOfWorkImpl) SubscriptionRepository() contract.SubscriptionRepository {
	return &subscriptionRepository{uow: u}
}

func (u *UnitOfWorkImpl) RedemptionCodeRepository() contract.RedemptionCodeRepository {
	return &redemptionCodeRepository{uow: u}
}

func (u *UnitOfWorkImpl) SalonRepository() contract.SalonRepository {
	return &salonRepository{uow: u}
}

func (u *UnitOfWorkImpl) SettlementRepository() contract.SettlementRepository {
	return &settlementRepository{uow: u}
}

func (u *UnitOfWorkImpl) WithdrawRepository() contract.WithdrawRepository {
	return &withdrawRepository{uow: u}
}

func (u *UnitOfWorkImpl) FinancialLogRepository() contract.FinancialLogRepository {
	return &financialLogRepository{uow: u}
}

func (u *UnitOfWorkImpl) PaymentRepository() contract.PaymentRepository {
	return &paymentRepository{uow: u}
}

func (u *UnitOfWorkImpl) ProfileRepository() contract.ProfileRepository {
	return &profileRepository{uow: u}
}

type RepositoryFactoryImpl struct {
	store *Store
}

func NewRepositoryFactory(store *Store) unitofwork.RepositoryFactory {
	return &RepositoryFactoryImpl{store: store}
}

func (f *RepositoryFactoryImpl) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return NewUnitOfWork(f.store)
}
