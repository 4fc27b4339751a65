package service

import (
	"testing"
	"time"

	"cutclub-be/internal/entity"
	"cutclub-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDecrementCredit(t *testing.T) {
	f := newFixture(t)
	plan := f.seedPlan(t, "100", 2)
	sub := f.seedSubscription(t, plan, nil, 2)

	updated, err := f.subscriptions.DecrementCredit(f.ctx, sub.Id)
	require.NoError(t, err)
	assert.Equal(t, 1, updated.CurrentCredits)

	_, err = f.subscriptions.DecrementCredit(f.ctx, sub.Id)
	require.NoError(t, err)

	_, err = f.subscriptions.DecrementCredit(f.ctx, sub.Id)
	assert.ErrorIs(t, err, entity.ErrInsufficientCredit)
	assert.Equal(t, 0, f.subscription(t, sub.Id).CurrentCredits)
}

func TestResetCredit(t *testing.T) {
	f := newFixture(t)
	plan := f.seedPlan(t, "100", 4)
	sub := f.seedSubscription(t, plan, nil, 1)
	end := f.clock.Now().AddDate(0, 0, 60)

	updated, err := f.subscriptions.ResetCredit(f.ctx, sub.Id, 4, end)
	require.NoError(t, err)
	assert.Equal(t, 4, updated.CurrentCredits)
	assert.Equal(t, end, updated.EndDate)
	assert.Equal(t, entity.SubscriptionStatusActive, updated.Status)

	_, err = f.subscriptions.ResetCredit(f.ctx, sub.Id, 0, end)
	assert.ErrorIs(t, err, entity.ErrInvalidPlan)
	assert.Equal(t, 4, f.subscription(t, sub.Id).CurrentCredits)
}

func TestGetActiveSubscription_LazyExpiry(t *testing.T) {
	f := newFixture(t)
	plan := f.seedPlan(t, "100", 4)
	sub := f.seedSubscription(t, plan, nil, 4)

	got, err := f.subscriptions.GetActiveSubscription(f.ctx, sub.UserId)
	require.NoError(t, err)
	assert.Equal(t, sub.Id, got.Id)

	f.clock.Set(sub.EndDate)
	_, err = f.subscriptions.GetActiveSubscription(f.ctx, sub.UserId)
	assert.ErrorIs(t, err, entity.ErrNotFound)

	// status is never flipped by a read
	assert.Equal(t, entity.SubscriptionStatusActive, f.subscription(t, sub.Id).Status)
}

func TestGetBalance(t *testing.T) {
	f := newFixture(t)

	empty, err := f.subscriptions.GetBalance(f.ctx, uuid.New())
	require.NoError(t, err)
	assert.False(t, empty.HasSubscription)

	plan := f.seedPlan(t, "100", 4)
	salon := f.seedSalon(t, true, true, "70")
	sub := f.seedSubscription(t, plan, salon, 3)

	balance, err := f.subscriptions.GetBalance(f.ctx, sub.UserId)
	require.NoError(t, err)
	assert.True(t, balance.HasSubscription)
	assert.True(t, balance.CanGenerateCode)
	assert.Equal(t, 30, balance.DaysRemaining)
	assert.Equal(t, 3, balance.Subscription.CurrentCredits)
	require.NotNil(t, balance.Salon)
	assert.Equal(t, salon.Id, balance.Salon.Id)

	f.clock.Advance(31 * 24 * time.Hour)
	balance, err = f.subscriptions.GetBalance(f.ctx, sub.UserId)
	require.NoError(t, err)
	assert.True(t, balance.Subscription.IsExpired)
	assert.False(t, balance.CanGenerateCode)
	assert.Zero(t, balance.DaysRemaining)
}

func TestCancel(t *testing.T) {
	f := newFixture(t)
	plan := f.seedPlan(t, "100", 4)
	sub := f.seedSubscription(t, plan, nil, 4)

	cancelled, err := f.subscriptions.Cancel(f.ctx, sub.UserId)
	require.NoError(t, err)
	assert.Equal(t, entity.SubscriptionStatusCancelled, cancelled.Status)
	assert.Equal(t, []string{events.TypeSubscriptionCancelled}, f.recorder.Events())

	_, err = f.subscriptions.Cancel(f.ctx, sub.UserId)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}

func TestLinkSalon(t *testing.T) {
	f := newFixture(t)
	plan := f.seedPlan(t, "100", 4)
	salon := f.seedSalon(t, true, true, "70")
	other := f.seedSalon(t, true, true, "70")
	pending := f.seedSalon(t, false, true, "70")
	sub := f.seedSubscription(t, plan, nil, 4)

	_, err := f.subscriptions.LinkSalon(f.ctx, sub.UserId, pending.Id)
	assert.ErrorIs(t, err, entity.ErrSalonNotApproved)

	_, err = f.subscriptions.LinkSalon(f.ctx, sub.UserId, uuid.New())
	assert.ErrorIs(t, err, entity.ErrNotFound)

	linked, err := f.subscriptions.LinkSalon(f.ctx, sub.UserId, salon.Id)
	require.NoError(t, err)
	require.NotNil(t, linked.SalonId)
	assert.Equal(t, salon.Id, *linked.SalonId)

	again, err := f.subscriptions.LinkSalon(f.ctx, sub.UserId, salon.Id)
	require.NoError(t, err)
	assert.Equal(t, salon.Id, *again.SalonId)

	_, err = f.subscriptions.LinkSalon(f.ctx, sub.UserId, other.Id)
	assert.ErrorIs(t, err, entity.ErrSalonLocked)
	assert.Equal(t, salon.Id, *f.subscription(t, sub.Id).SalonId)
}
