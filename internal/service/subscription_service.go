package service

import (
	"context"
	"fmt"
	"math"
	"time"

	"cutclub-be/internal/dto"
	"cutclub-be/internal/entity"
	"cutclub-be/internal/eventbus"
	"cutclub-be/internal/pkg/clock"
	"cutclub-be/internal/pkg/logger"
	"cutclub-be/internal/repository/unitofwork"
	"cutclub-be/pkg/ledger"

	"github.com/google/uuid"
)

// SubscriptionService is the credit ledger seen from outside a transaction
type SubscriptionService interface {
	GetActiveSubscription(ctx context.Context, subscriberId uuid.UUID) (*entity.Subscription, error)
	DecrementCredit(ctx context.Context, subscriptionId uuid.UUID) (*entity.Subscription, error)
	ResetCredit(ctx context.Context, subscriptionId uuid.UUID, quota int, newEndDate time.Time) (*entity.Subscription, error)
	GetBalance(ctx context.Context, subscriberId uuid.UUID) (*dto.BalanceResponse, error)
	Cancel(ctx context.Context, subscriberId uuid.UUID) (*entity.Subscription, error)
	LinkSalon(ctx context.Context, subscriberId, salonId uuid.UUID) (*entity.Subscription, error)
}

type subscriptionService struct {
	uowFactory unitofwork.RepositoryFactory
	ledger     *ledger.Ledger
	clock      clock.Clock
	publisher  eventbus.Publisher
	logger     logger.ILogger
}

func NewSubscriptionService(
	uowFactory unitofwork.RepositoryFactory,
	clk clock.Clock,
	publisher eventbus.Publisher,
	logger logger.ILogger,
) SubscriptionService {
	return &subscriptionService{
		uowFactory: uowFactory,
		ledger:     ledger.New(clk),
		clock:      clk,
		publisher:  publisher,
		logger:     logger,
	}
}

func (s *subscriptionService) GetActiveSubscription(ctx context.Context, subscriberId uuid.UUID) (*entity.Subscription, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return s.ledger.ActiveSubscription(ctx, uow, subscriberId)
}

func (s *subscriptionService) DecrementCredit(ctx context.Context, subscriptionId uuid.UUID) (*entity.Subscription, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	sub, err := s.ledger.Decrement(ctx, uow, subscriptionId)
	if err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *subscriptionService) ResetCredit(ctx context.Context, subscriptionId uuid.UUID, quota int, newEndDate time.Time) (*entity.Subscription, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	sub, err := uow.SubscriptionRepository().FindSubscriptionForUpdate(ctx, subscriptionId)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, fmt.Errorf("subscription %s: %w", subscriptionId, entity.ErrNotFound)
	}

	if err := s.ledger.Reset(ctx, uow, sub, quota, newEndDate); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	return sub, nil
}

func (s *subscriptionService) GetBalance(ctx context.Context, subscriberId uuid.UUID) (*dto.BalanceResponse, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	now := s.clock.Now()

	sub, err := uow.SubscriptionRepository().FindLatestSubscriptionByUser(ctx, subscriberId)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return &dto.BalanceResponse{HasSubscription: false}, nil
	}

	res := &dto.BalanceResponse{
		HasSubscription: true,
		Subscription:    dto.NewSubscriptionResponse(sub, now),
		CanGenerateCode: sub.IsUsable(now) && sub.CurrentCredits > 0,
	}
	if !sub.IsExpired(now) {
		res.DaysRemaining = int(math.Ceil(sub.EndDate.Sub(now).Hours() / 24))
	}

	if sub.SalonId != nil {
		salon, err := uow.SalonRepository().FindById(ctx, *sub.SalonId)
		if err != nil {
			return nil, err
		}
		if salon != nil {
			res.Salon = dto.NewSalonResponse(salon)
		}
	}
	return res, nil
}

func (s *subscriptionService) Cancel(ctx context.Context, subscriberId uuid.UUID) (*entity.Subscription, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	sub, err := uow.SubscriptionRepository().FindActiveSubscriptionByUser(ctx, subscriberId)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, fmt.Errorf("active subscription for %s: %w", subscriberId, entity.ErrNotFound)
	}

	sub.Status = entity.SubscriptionStatusCancelled
	sub.UpdatedAt = s.clock.Now()
	if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("SUBSCRIPTION", "Subscription cancelled", map[string]interface{}{
		"subscription_id": sub.Id,
		"user_id":         subscriberId,
	})
	s.publisher.PublishSubscriptionCancelled(ctx, sub)
	return sub, nil
}

// LinkSalon binds the subscription to its salon. The link is permanent.
func (s *subscriptionService) LinkSalon(ctx context.Context, subscriberId, salonId uuid.UUID) (*entity.Subscription, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	sub, err := s.ledger.ActiveSubscription(ctx, uow, subscriberId)
	if err != nil {
		return nil, err
	}
	sub, err = uow.SubscriptionRepository().FindSubscriptionForUpdate(ctx, sub.Id)
	if err != nil {
		return nil, err
	}
	if sub.SalonId != nil {
		if *sub.SalonId == salonId {
			return sub, nil
		}
		return nil, entity.ErrSalonLocked
	}

	salon, err := uow.SalonRepository().FindById(ctx, salonId)
	if err != nil {
		return nil, err
	}
	if salon == nil {
		return nil, fmt.Errorf("salon %s: %w", salonId, entity.ErrNotFound)
	}
	if !salon.CanRedeem() {
		return nil, entity.ErrSalonNotApproved
	}

	sub.SalonId = &salon.Id
	sub.UpdatedAt = s.clock.Now()
	if err := uow.SubscriptionRepository().UpdateSubscription(ctx, sub); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("SUBSCRIPTION", "Salon linked", map[string]interface{}{
		"subscription_id": sub.Id,
		"salon_id":        salonId,
	})
	return sub, nil
}
