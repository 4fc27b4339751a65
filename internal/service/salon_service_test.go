package service

import (
	"testing"

	"cutclub-be/internal/dto"
	"cutclub-be/internal/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRegisterSalon(t *testing.T) {
	f := newFixture(t)
	ownerId := uuid.New()
	req := &dto.RegisterSalonRequest{Name: "Barbearia Centro", City: "Recife", State: "PE"}

	salon, err := f.salons.Register(f.ctx, ownerId, req)
	require.NoError(t, err)
	assert.False(t, salon.IsApproved)
	assert.True(t, salon.IsActive)
	assert.True(t, salon.CommissionRate.Equal(entity.DefaultCommissionRate))

	_, err = f.salons.Register(f.ctx, ownerId, req)
	assert.ErrorIs(t, err, entity.ErrAlreadyRegistered)

	mine, err := f.salons.GetByOwner(f.ctx, ownerId)
	require.NoError(t, err)
	assert.Equal(t, salon.Id, mine.Id)

	public, err := f.salons.ListPublic(f.ctx)
	require.NoError(t, err)
	assert.Empty(t, public, "pending salons are not listed")

	_, err = f.salons.SetApproval(f.ctx, salon.Id, true)
	require.NoError(t, err)

	public, err = f.salons.ListPublic(f.ctx)
	require.NoError(t, err)
	assert.Len(t, public, 1)
}

func TestSetCommissionRate(t *testing.T) {
	f := newFixture(t)
	plan := f.seedPlan(t, "100", 4)
	salon := f.seedSalon(t, true, true, "70")
	sub := f.seedSubscription(t, plan, salon, 4)

	before := f.redeem(t, sub, salon)

	_, err := f.salons.SetCommissionRate(f.ctx, salon.Id, decimal.NewFromInt(101))
	assert.ErrorIs(t, err, entity.ErrInvalidInput)
	_, err = f.salons.SetCommissionRate(f.ctx, salon.Id, decimal.NewFromInt(-1))
	assert.ErrorIs(t, err, entity.ErrInvalidInput)

	updated, err := f.salons.SetCommissionRate(f.ctx, salon.Id, decimal.NewFromInt(50))
	require.NoError(t, err)
	assert.Equal(t, "50.00", updated.CommissionRate.StringFixed(2))

	after := f.redeem(t, sub, salon)
	assert.Equal(t, "12.50", after.AmountToSalon.StringFixed(2))

	// existing history keeps the rate it settled with
	records, err := f.history.ListBySubscription(f.ctx, sub.Id)
	require.NoError(t, err)
	for _, r := range records {
		if r.Id == before.Id {
			assert.Equal(t, "70.00", r.CommissionRate.StringFixed(2))
			assert.Equal(t, "17.50", r.AmountToSalon.StringFixed(2))
		}
	}
}

func TestDeactivatedSalonStopsRedemptions(t *testing.T) {
	f := newFixture(t)
	plan := f.seedPlan(t, "100", 4)
	salon := f.seedSalon(t, true, true, "70")
	sub := f.seedSubscription(t, plan, salon, 4)

	_, err := f.salons.SetActive(f.ctx, salon.Id, false)
	require.NoError(t, err)

	code, err := f.codes.GenerateCode(f.ctx, sub.Id)
	require.NoError(t, err)
	_, err = f.redemptions.Validate(f.ctx, code.Code, salon.Id, salon.OwnerId)
	assert.ErrorIs(t, err, entity.ErrSalonNotApproved)

	_, err = f.salons.SetActive(f.ctx, uuid.New(), true)
	assert.ErrorIs(t, err, entity.ErrNotFound)
}
