package service

import (
	"context"
	"sync"
	"testing"
	"time"

	"cutclub-be/internal/entity"
	"cutclub-be/internal/pkg/logger"
	"cutclub-be/internal/repository/contract"
	"cutclub-be/internal/repository/unitofwork"
	"cutclub-be/pkg/events"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestActivate_NewSubscription(t *testing.T) {
	f := newFixture(t)
	plan := f.seedPlan(t, "99.90", 4)
	userId := uuid.New()

	sub, err := f.activation.Activate(f.ctx, PaymentConfirmation{
		UserId:     userId,
		PlanId:     plan.Id,
		Amount:     decimal.RequireFromString("99.90"),
		ExternalId: "pay_001",
	})
	require.NoError(t, err)

	assert.Equal(t, userId, sub.UserId)
	assert.Equal(t, entity.SubscriptionStatusActive, sub.Status)
	assert.Equal(t, 4, sub.CurrentCredits)
	assert.Equal(t, 4, sub.CreditsPerMonth)
	assert.True(t, sub.PlanPrice.Equal(plan.Price))
	assert.Nil(t, sub.SalonId)
	assert.Equal(t, f.clock.Now().AddDate(0, 0, 30), sub.EndDate)

	payment, err := f.uow().PaymentRepository().FindByExternalId(f.ctx, "pay_001")
	require.NoError(t, err)
	require.NotNil(t, payment)
	assert.Equal(t, sub.Id, payment.SubscriptionId)

	logs, err := f.payouts.FinancialLogs(f.ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.FinancialLogSubscriptionPayment, logs[0].Type)

	assert.Equal(t, []string{events.TypeSubscriptionActivated}, f.recorder.Events())
}

func TestActivate_ReplayIsIdempotent(t *testing.T) {
	f := newFixture(t)
	plan := f.seedPlan(t, "50", 2)
	confirmation := PaymentConfirmation{
		UserId:     uuid.New(),
		PlanId:     plan.Id,
		Amount:     decimal.NewFromInt(50),
		ExternalId: "pay_replay",
	}

	first, err := f.activation.Activate(f.ctx, confirmation)
	require.NoError(t, err)

	_, err = f.subscriptions.DecrementCredit(f.ctx, first.Id)
	require.NoError(t, err)

	replay, err := f.activation.Activate(f.ctx, confirmation)
	require.NoError(t, err)
	assert.Equal(t, first.Id, replay.Id)
	assert.Equal(t, 1, replay.CurrentCredits, "replay must not refill credits")

	logs, err := f.payouts.FinancialLogs(f.ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	assert.Len(t, logs, 1)
}

func TestActivate_RenewalResetsCreditsAndKeepsSalon(t *testing.T) {
	f := newFixture(t)
	basic := f.seedPlan(t, "50", 2)
	plus := f.seedPlan(t, "90", 4)
	salon := f.seedSalon(t, true, true, "70")
	userId := uuid.New()

	sub, err := f.activation.Activate(f.ctx, PaymentConfirmation{
		UserId: userId, PlanId: basic.Id, Amount: basic.Price, ExternalId: "pay_1",
	})
	require.NoError(t, err)
	_, err = f.subscriptions.LinkSalon(f.ctx, userId, salon.Id)
	require.NoError(t, err)
	_, err = f.subscriptions.DecrementCredit(f.ctx, sub.Id)
	require.NoError(t, err)

	f.clock.Advance(31 * 24 * time.Hour)

	renewed, err := f.activation.Activate(f.ctx, PaymentConfirmation{
		UserId: userId, PlanId: plus.Id, Amount: plus.Price, ExternalId: "pay_2",
	})
	require.NoError(t, err)

	assert.Equal(t, sub.Id, renewed.Id)
	assert.Equal(t, 4, renewed.CurrentCredits, "unused credits do not roll over")
	assert.Equal(t, plus.Id, renewed.PlanId)
	assert.True(t, renewed.PlanPrice.Equal(plus.Price))
	assert.Equal(t, f.clock.Now().AddDate(0, 0, 30), renewed.EndDate)
	require.NotNil(t, renewed.SalonId)
	assert.Equal(t, salon.Id, *renewed.SalonId)
}

func TestActivate_Rejections(t *testing.T) {
	f := newFixture(t)
	plan := f.seedPlan(t, "50", 2)

	_, err := f.activation.Activate(f.ctx, PaymentConfirmation{
		UserId: uuid.New(), PlanId: plan.Id, Amount: plan.Price,
	})
	assert.ErrorIs(t, err, entity.ErrInvalidInput)

	_, err = f.activation.Activate(f.ctx, PaymentConfirmation{
		UserId: uuid.New(), PlanId: uuid.New(), Amount: plan.Price, ExternalId: "pay_x",
	})
	assert.ErrorIs(t, err, entity.ErrNotFound)

	// the failed attempt left no payment behind, so the id is still usable
	payment, err := f.uow().PaymentRepository().FindByExternalId(f.ctx, "pay_x")
	require.NoError(t, err)
	assert.Nil(t, payment)
}

// staleReads hides a user's subscriptions from the first lookups, like a transaction
// that read before a competing activation committed
type staleReads struct {
	unitofwork.RepositoryFactory
	mu     sync.Mutex
	misses int
}

func (f *staleReads) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &staleReadUoW{UnitOfWork: f.RepositoryFactory.NewUnitOfWork(ctx), factory: f}
}

type staleReadUoW struct {
	unitofwork.UnitOfWork
	factory *staleReads
}

func (u *staleReadUoW) SubscriptionRepository() contract.SubscriptionRepository {
	return &staleSubscriptions{SubscriptionRepository: u.UnitOfWork.SubscriptionRepository(), factory: u.factory}
}

type staleSubscriptions struct {
	contract.SubscriptionRepository
	factory *staleReads
}

func (r *staleSubscriptions) FindLatestSubscriptionByUser(ctx context.Context, userId uuid.UUID) (*entity.Subscription, error) {
	r.factory.mu.Lock()
	defer r.factory.mu.Unlock()
	if r.factory.misses > 0 {
		r.factory.misses--
		return nil, nil
	}
	return r.SubscriptionRepository.FindLatestSubscriptionByUser(ctx, userId)
}

func TestActivate_LosingCreateRaceIsRetryable(t *testing.T) {
	f := newFixture(t)
	plan := f.seedPlan(t, "50", 2)
	existing := f.seedSubscription(t, plan, nil, 0)

	activation := NewActivationService(&staleReads{RepositoryFactory: f.factory, misses: 1}, f.clock, f.recorder, logger.NewNopLogger())
	confirmation := PaymentConfirmation{
		UserId:     existing.UserId,
		PlanId:     plan.Id,
		Amount:     decimal.NewFromInt(50),
		ExternalId: "pay_race",
	}

	_, err := activation.Activate(f.ctx, confirmation)
	require.ErrorIs(t, err, entity.ErrConcurrentUpdate)

	payment, err := f.uow().PaymentRepository().FindByExternalId(f.ctx, "pay_race")
	require.NoError(t, err)
	assert.Nil(t, payment, "the losing attempt must leave no payment behind")

	renewed, err := activation.Activate(f.ctx, confirmation)
	require.NoError(t, err)
	assert.Equal(t, existing.Id, renewed.Id)
	assert.Equal(t, 2, renewed.CurrentCredits)

	active, err := f.uow().SubscriptionRepository().FindActiveSubscriptionByUser(f.ctx, existing.UserId)
	require.NoError(t, err)
	require.NotNil(t, active)
	assert.Equal(t, existing.Id, active.Id)
}
