// Package ledger holds the credit balance rules shared by redemption, activation and the
// subscriber endpoints. Every method runs on the caller's unit of work so it joins
// whatever transaction is open.
package ledger

import (
	"context"
	"fmt"
	"time"

	"cutclub-be/internal/entity"
	"cutclub-be/internal/pkg/clock"
	"cutclub-be/internal/repository/unitofwork"

	"github.com/google/uuid"
)

type Ledger struct {
	clock clock.Clock
}

func New(clk clock.Clock) *Ledger {
	return &Ledger{clock: clk}
}

// ActiveSubscription returns the subscriber's active, unexpired subscription or entity.ErrNotFound
func (l *Ledger) ActiveSubscription(ctx context.Context, uow unitofwork.UnitOfWork, subscriberId uuid.UUID) (*entity.Subscription, error) {
	sub, err := uow.SubscriptionRepository().FindActiveSubscriptionByUser(ctx, subscriberId)
	if err != nil {
		return nil, err
	}
	if sub == nil || sub.IsExpired(l.clock.Now()) {
		return nil, fmt.Errorf("active subscription for %s: %w", subscriberId, entity.ErrNotFound)
	}
	return sub, nil
}

// Decrement consumes one credit. The repository guards on current_credits > 0,
// so concurrent callers can never push the balance below zero.
func (l *Ledger) Decrement(ctx context.Context, uow unitofwork.UnitOfWork, subscriptionId uuid.UUID) (*entity.Subscription, error) {
	repo := uow.SubscriptionRepository()
	sub, err := repo.FindSubscriptionForUpdate(ctx, subscriptionId)
	if err != nil {
		return nil, err
	}
	if sub == nil {
		return nil, fmt.Errorf("subscription %s: %w", subscriptionId, entity.ErrNotFound)
	}
	if sub.CurrentCredits <= 0 {
		return nil, entity.ErrInsufficientCredit
	}
	if err := repo.DecrementCredit(ctx, subscriptionId); err != nil {
		return nil, err
	}
	sub.CurrentCredits--
	return sub, nil
}

// Reset starts a new cycle: credits equal the quota (no rollover), status active,
// window from now to newEndDate.
func (l *Ledger) Reset(ctx context.Context, uow unitofwork.UnitOfWork, sub *entity.Subscription, quota int, newEndDate time.Time) error {
	if quota <= 0 {
		return fmt.Errorf("quota %d: %w", quota, entity.ErrInvalidPlan)
	}
	now := l.clock.Now()
	sub.CurrentCredits = quota
	sub.Status = entity.SubscriptionStatusActive
	sub.StartDate = now
	sub.EndDate = newEndDate
	sub.UpdatedAt = now
	return uow.SubscriptionRepository().UpdateSubscription(ctx, sub)
}
