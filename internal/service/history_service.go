package service

import (
	"context"
	"fmt"
	"time"

	"cutclub-be/internal/entity"
	"cutclub-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

// HistoryService reads the append-only settlement ledger. Writes happen only inside redemption.
type HistoryService interface {
	ListBySalon(ctx context.Context, salonId uuid.UUID, from, to time.Time) ([]*entity.SettlementRecord, error)
	ListBySubscription(ctx context.Context, subscriptionId uuid.UUID) ([]*entity.SettlementRecord, error)
	SumBySalon(ctx context.Context, salonId uuid.UUID, from, to time.Time) (*entity.SettlementTotals, error)
	ListAll(ctx context.Context, from, to time.Time) ([]*entity.SettlementRecord, error)

	SalonHistory(ctx context.Context, ownerId uuid.UUID, from, to time.Time) ([]*entity.SettlementRecord, *entity.SettlementTotals, error)
	SubscriberHistory(ctx context.Context, subscriberId uuid.UUID) ([]*entity.SettlementRecord, error)
}

type historyService struct {
	uowFactory unitofwork.RepositoryFactory
}

func NewHistoryService(uowFactory unitofwork.RepositoryFactory) HistoryService {
	return &historyService{uowFactory: uowFactory}
}

func (s *historyService) ListBySalon(ctx context.Context, salonId uuid.UUID, from, to time.Time) ([]*entity.SettlementRecord, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.SettlementRepository().ListBySalon(ctx, salonId, from, to)
}

func (s *historyService) ListBySubscription(ctx context.Context, subscriptionId uuid.UUID) ([]*entity.SettlementRecord, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.SettlementRepository().ListBySubscription(ctx, subscriptionId)
}

func (s *historyService) SumBySalon(ctx context.Context, salonId uuid.UUID, from, to time.Time) (*entity.SettlementTotals, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.SettlementRepository().SumBySalon(ctx, salonId, from, to)
}

func (s *historyService) ListAll(ctx context.Context, from, to time.Time) ([]*entity.SettlementRecord, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.SettlementRepository().ListAll(ctx, from, to)
}

func (s *historyService) SalonHistory(ctx context.Context, ownerId uuid.UUID, from, to time.Time) ([]*entity.SettlementRecord, *entity.SettlementTotals, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	salon, err := uow.SalonRepository().FindByOwner(ctx, ownerId)
	if err != nil {
		return nil, nil, err
	}
	if salon == nil {
		return nil, nil, fmt.Errorf("salon of owner %s: %w", ownerId, entity.ErrNotFound)
	}

	records, err := uow.SettlementRepository().ListBySalon(ctx, salon.Id, from, to)
	if err != nil {
		return nil, nil, err
	}
	totals, err := uow.SettlementRepository().SumBySalon(ctx, salon.Id, from, to)
	if err != nil {
		return nil, nil, err
	}
	return records, totals, nil
}

// SubscriberHistory lists haircuts of the subscriber's latest subscription, which
// survives renewals since activation reuses the row.
func (s *historyService) SubscriberHistory(ctx context.Context, subscriberId uuid.UUID) ([]*entity.SettlementRecord, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	sub, err := uow.SubscriptionRepository().FindLatestSubscriptionByUser(ctx, subscriberId)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return []*entity.SettlementRecord{}, nil
	}
	return uow.SettlementRepository().ListBySubscription(ctx, sub.Id)
}
