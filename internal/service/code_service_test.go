package service

import (
	"errors"
	"strconv"
	"testing"
	"time"

	"cutclub-be/internal/entity"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRandomCodeRange(t *testing.T) {
	for i := 0; i < 500; i++ {
		code, err := RandomCode()
		require.NoError(t, err)
		require.Len(t, code, entity.CodeLength)

		n, err := strconv.Atoi(code)
		require.NoError(t, err)
		assert.GreaterOrEqual(t, n, entity.CodeMin)
		assert.LessOrEqual(t, n, entity.CodeMax)
	}
}

func TestGenerateCode(t *testing.T) {
	f := newFixture(t)
	plan := f.seedPlan(t, "100", 4)
	sub := f.seedSubscription(t, plan, nil, 4)

	code, err := f.codes.GenerateCode(f.ctx, sub.Id)
	require.NoError(t, err)

	assert.Equal(t, sub.Id, code.SubscriptionId)
	assert.False(t, code.IsUsed)
	assert.Equal(t, f.clock.Now().Add(30*time.Minute), code.ExpiresAt)

	// issuing a code never spends credit
	assert.Equal(t, 4, f.subscription(t, sub.Id).CurrentCredits)
}

func TestGenerateCode_NoCredits(t *testing.T) {
	f := newFixture(t)
	plan := f.seedPlan(t, "100", 4)
	sub := f.seedSubscription(t, plan, nil, 0)

	_, err := f.codes.GenerateCode(f.ctx, sub.Id)
	assert.ErrorIs(t, err, entity.ErrInsufficientCredit)

	count, err := f.uow().RedemptionCodeRepository().CountBySubscription(f.ctx, sub.Id)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestGenerateCode_UnusableSubscription(t *testing.T) {
	f := newFixture(t)
	plan := f.seedPlan(t, "100", 4)

	t.Run("unknown", func(t *testing.T) {
		_, err := f.codes.GenerateCode(f.ctx, uuid.New())
		assert.ErrorIs(t, err, entity.ErrNotFound)
	})

	t.Run("expired", func(t *testing.T) {
		sub := f.seedSubscription(t, plan, nil, 4)
		f.clock.Advance(31 * 24 * time.Hour)
		defer f.clock.Set(fixtureStart)

		_, err := f.codes.GenerateCode(f.ctx, sub.Id)
		assert.ErrorIs(t, err, entity.ErrNotFound)
	})

	t.Run("cancelled", func(t *testing.T) {
		sub := f.seedSubscription(t, plan, nil, 4)
		_, err := f.subscriptions.Cancel(f.ctx, sub.UserId)
		require.NoError(t, err)

		_, err = f.codes.GenerateCode(f.ctx, sub.Id)
		assert.ErrorIs(t, err, entity.ErrNotFound)
	})
}

func TestGenerateCode_SourceFailure(t *testing.T) {
	boom := errors.New("entropy exhausted")
	f := newFixture(t, WithCodeSource(func() (string, error) { return "", boom }))
	plan := f.seedPlan(t, "100", 4)
	sub := f.seedSubscription(t, plan, nil, 4)

	_, err := f.codes.GenerateCode(f.ctx, sub.Id)
	assert.ErrorIs(t, err, boom)
}

func TestCurrentCode(t *testing.T) {
	f := newFixture(t, fixedCodes("12345", "67890"))
	plan := f.seedPlan(t, "100", 4)
	sub := f.seedSubscription(t, plan, nil, 4)

	_, err := f.codes.CurrentCode(f.ctx, sub.UserId)
	assert.ErrorIs(t, err, entity.ErrNotFound)

	_, err = f.codes.GenerateCodeForSubscriber(f.ctx, sub.UserId)
	require.NoError(t, err)
	f.clock.Advance(time.Minute)
	_, err = f.codes.GenerateCodeForSubscriber(f.ctx, sub.UserId)
	require.NoError(t, err)

	current, err := f.codes.CurrentCode(f.ctx, sub.UserId)
	require.NoError(t, err)
	assert.Equal(t, "67890", current.Code)

	f.clock.Advance(30 * time.Minute)
	_, err = f.codes.CurrentCode(f.ctx, sub.UserId)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}
