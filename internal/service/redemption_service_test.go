package service

import (
	"sync"
	"testing"
	"time"

	"cutclub-be/internal/entity"
	"cutclub-be/pkg/events"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestValidate_SettlesHaircut(t *testing.T) {
	f := newFixture(t)
	plan := f.seedPlan(t, "79.99", 3)
	salon := f.seedSalon(t, true, true, "80")
	sub := f.seedSubscription(t, plan, salon, 3)

	code, err := f.codes.GenerateCode(f.ctx, sub.Id)
	require.NoError(t, err)
	assert.Len(t, code.Code, entity.CodeLength)

	validator := uuid.New()
	record, err := f.redemptions.Validate(f.ctx, code.Code, salon.Id, validator)
	require.NoError(t, err)

	assert.Equal(t, sub.Id, record.SubscriptionId)
	assert.Equal(t, salon.Id, record.SalonId)
	assert.Equal(t, validator, record.ValidatedBy)
	assert.Equal(t, code.Code, record.CodeUsed)
	assert.Equal(t, "26.66", record.PricePerHaircut.StringFixed(2))
	assert.Equal(t, "21.33", record.AmountToSalon.StringFixed(2))
	assert.Equal(t, "5.33", record.AmountToPlatform.StringFixed(2))
	assert.True(t, record.AmountToSalon.Add(record.AmountToPlatform).Equal(record.PricePerHaircut))

	assert.Equal(t, 2, f.subscription(t, sub.Id).CurrentCredits)

	live, err := f.uow().RedemptionCodeRepository().FindLiveByCode(f.ctx, code.Code, f.clock.Now())
	require.NoError(t, err)
	assert.Empty(t, live, "used code must no longer be live")

	records, err := f.history.ListBySubscription(f.ctx, sub.Id)
	require.NoError(t, err)
	assert.Len(t, records, 1)

	logs, err := f.payouts.FinancialLogs(f.ctx, time.Time{}, time.Time{})
	require.NoError(t, err)
	require.Len(t, logs, 1)
	assert.Equal(t, entity.FinancialLogSettlement, logs[0].Type)
	assert.True(t, logs[0].Amount.Equal(record.AmountToPlatform))

	assert.Equal(t, []string{events.TypeHaircutRedeemed}, f.recorder.Events())
}

func TestValidate_SecondAttemptIsRejected(t *testing.T) {
	f := newFixture(t)
	plan := f.seedPlan(t, "79.99", 3)
	salon := f.seedSalon(t, true, true, "80")
	sub := f.seedSubscription(t, plan, salon, 3)

	code, err := f.codes.GenerateCode(f.ctx, sub.Id)
	require.NoError(t, err)

	_, err = f.redemptions.Validate(f.ctx, code.Code, salon.Id, uuid.New())
	require.NoError(t, err)

	_, err = f.redemptions.Validate(f.ctx, code.Code, salon.Id, uuid.New())
	assert.ErrorIs(t, err, entity.ErrCodeNotFound)

	assert.Equal(t, 2, f.subscription(t, sub.Id).CurrentCredits)
	records, err := f.history.ListBySubscription(f.ctx, sub.Id)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestValidate_ExpiredCode(t *testing.T) {
	f := newFixture(t)
	plan := f.seedPlan(t, "100", 4)
	salon := f.seedSalon(t, true, true, "70")
	sub := f.seedSubscription(t, plan, salon, 4)

	code, err := f.codes.GenerateCode(f.ctx, sub.Id)
	require.NoError(t, err)

	f.clock.Advance(30*time.Minute + time.Second)

	_, err = f.redemptions.Validate(f.ctx, code.Code, salon.Id, uuid.New())
	assert.ErrorIs(t, err, entity.ErrCodeNotFound)
	assert.Equal(t, 4, f.subscription(t, sub.Id).CurrentCredits)
}

func TestValidate_ExpiresExactlyAtTTL(t *testing.T) {
	f := newFixture(t)
	plan := f.seedPlan(t, "100", 4)
	salon := f.seedSalon(t, true, true, "70")
	sub := f.seedSubscription(t, plan, salon, 4)

	code, err := f.codes.GenerateCode(f.ctx, sub.Id)
	require.NoError(t, err)

	f.clock.Advance(30 * time.Minute)

	_, err = f.redemptions.Validate(f.ctx, code.Code, salon.Id, uuid.New())
	assert.ErrorIs(t, err, entity.ErrCodeNotFound)
}

func TestValidate_WrongSalon(t *testing.T) {
	f := newFixture(t)
	plan := f.seedPlan(t, "100", 4)
	home := f.seedSalon(t, true, true, "70")
	other := f.seedSalon(t, true, true, "70")
	sub := f.seedSubscription(t, plan, home, 4)

	code, err := f.codes.GenerateCode(f.ctx, sub.Id)
	require.NoError(t, err)

	_, err = f.redemptions.Validate(f.ctx, code.Code, other.Id, uuid.New())
	assert.ErrorIs(t, err, entity.ErrWrongSalon)

	// code survives the failed attempt
	_, err = f.redemptions.Validate(f.ctx, code.Code, home.Id, uuid.New())
	assert.NoError(t, err)
}

func TestValidate_UnlinkedSubscriptionIsWrongSalon(t *testing.T) {
	f := newFixture(t)
	plan := f.seedPlan(t, "100", 4)
	salon := f.seedSalon(t, true, true, "70")
	sub := f.seedSubscription(t, plan, nil, 4)

	code, err := f.codes.GenerateCode(f.ctx, sub.Id)
	require.NoError(t, err)

	_, err = f.redemptions.Validate(f.ctx, code.Code, salon.Id, uuid.New())
	assert.ErrorIs(t, err, entity.ErrWrongSalon)
}

func TestValidate_SalonNotApproved(t *testing.T) {
	tests := []struct {
		name     string
		approved bool
		active   bool
	}{
		{name: "pending approval", approved: false, active: true},
		{name: "deactivated", approved: true, active: false},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			plan := f.seedPlan(t, "100", 4)
			salon := f.seedSalon(t, tt.approved, tt.active, "70")
			sub := f.seedSubscription(t, plan, salon, 4)

			code, err := f.codes.GenerateCode(f.ctx, sub.Id)
			require.NoError(t, err)

			_, err = f.redemptions.Validate(f.ctx, code.Code, salon.Id, uuid.New())
			assert.ErrorIs(t, err, entity.ErrSalonNotApproved)
			assert.Equal(t, 4, f.subscription(t, sub.Id).CurrentCredits)
		})
	}
}

func TestValidate_MalformedInput(t *testing.T) {
	f := newFixture(t)
	salon := f.seedSalon(t, true, true, "70")

	for _, input := range []string{"", "1234", "123456", "12a45", " 12345", "abcde"} {
		_, err := f.redemptions.Validate(f.ctx, input, salon.Id, uuid.New())
		assert.ErrorIs(t, err, entity.ErrCodeNotFound, "input %q", input)
	}
}

func TestValidate_CreditsExhaustedAfterCodeIssued(t *testing.T) {
	f := newFixture(t, fixedCodes("11111", "22222"))
	plan := f.seedPlan(t, "60", 1)
	salon := f.seedSalon(t, true, true, "50")
	sub := f.seedSubscription(t, plan, salon, 1)

	first, err := f.codes.GenerateCode(f.ctx, sub.Id)
	require.NoError(t, err)
	second, err := f.codes.GenerateCode(f.ctx, sub.Id)
	require.NoError(t, err)

	_, err = f.redemptions.Validate(f.ctx, first.Code, salon.Id, uuid.New())
	require.NoError(t, err)

	_, err = f.redemptions.Validate(f.ctx, second.Code, salon.Id, uuid.New())
	assert.ErrorIs(t, err, entity.ErrInsufficientCredit)
	assert.Equal(t, 0, f.subscription(t, sub.Id).CurrentCredits)
}

func TestValidate_CollisionPrefersPresentingSalon(t *testing.T) {
	f := newFixture(t, fixedCodes("55555"))
	plan := f.seedPlan(t, "100", 4)
	salonA := f.seedSalon(t, true, true, "70")
	salonB := f.seedSalon(t, true, true, "70")
	subA := f.seedSubscription(t, plan, salonA, 4)
	subB := f.seedSubscription(t, plan, salonB, 4)

	_, err := f.codes.GenerateCode(f.ctx, subA.Id)
	require.NoError(t, err)
	f.clock.Advance(time.Second)
	_, err = f.codes.GenerateCode(f.ctx, subB.Id)
	require.NoError(t, err)

	// subB holds the newest code, but salonA presents it for its own subscriber
	record, err := f.redemptions.Validate(f.ctx, "55555", salonA.Id, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, subA.Id, record.SubscriptionId)

	record, err = f.redemptions.Validate(f.ctx, "55555", salonB.Id, uuid.New())
	require.NoError(t, err)
	assert.Equal(t, subB.Id, record.SubscriptionId)
}

func TestValidate_ConcurrentAttemptsSettleOnce(t *testing.T) {
	f := newFixture(t)
	plan := f.seedPlan(t, "100", 4)
	salon := f.seedSalon(t, true, true, "70")
	sub := f.seedSubscription(t, plan, salon, 4)

	code, err := f.codes.GenerateCode(f.ctx, sub.Id)
	require.NoError(t, err)

	const attempts = 16
	// every loser records a failure against the salon
	f.withFailureBudget(attempts)

	var (
		wg       sync.WaitGroup
		mu       sync.Mutex
		settled  int
		rejected int
	)
	for i := 0; i < attempts; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.redemptions.Validate(f.ctx, code.Code, salon.Id, uuid.New())
			mu.Lock()
			defer mu.Unlock()
			if err == nil {
				settled++
				return
			}
			if assert.ErrorIs(t, err, entity.ErrCodeNotFound) {
				rejected++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, settled)
	assert.Equal(t, attempts-1, rejected)
	assert.Equal(t, 3, f.subscription(t, sub.Id).CurrentCredits)

	records, err := f.history.ListBySubscription(f.ctx, sub.Id)
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestValidate_ConcurrentCodesNeverOverdraw(t *testing.T) {
	values := []string{"10001", "10002", "10003", "10004", "10005"}
	f := newFixture(t, fixedCodes(values...))
	plan := f.seedPlan(t, "100", 4)
	salon := f.seedSalon(t, true, true, "70")
	sub := f.seedSubscription(t, plan, salon, 2)

	for range values {
		_, err := f.codes.GenerateCode(f.ctx, sub.Id)
		require.NoError(t, err)
	}

	var wg sync.WaitGroup
	for _, v := range values {
		wg.Add(1)
		go func(v string) {
			defer wg.Done()
			_, _ = f.redemptions.Validate(f.ctx, v, salon.Id, uuid.New())
		}(v)
	}
	wg.Wait()

	assert.Equal(t, 0, f.subscription(t, sub.Id).CurrentCredits)
	records, err := f.history.ListBySubscription(f.ctx, sub.Id)
	require.NoError(t, err)
	assert.Len(t, records, 2)
}

func TestValidate_ThrottlesRepeatedFailures(t *testing.T) {
	f := newFixture(t)
	plan := f.seedPlan(t, "100", 4)
	salon := f.seedSalon(t, true, true, "70")
	sub := f.seedSubscription(t, plan, salon, 4)

	for i := 0; i < 10; i++ {
		_, err := f.redemptions.Validate(f.ctx, "00000", salon.Id, uuid.New())
		require.ErrorIs(t, err, entity.ErrCodeNotFound)
	}

	code, err := f.codes.GenerateCode(f.ctx, sub.Id)
	require.NoError(t, err)

	_, err = f.redemptions.Validate(f.ctx, code.Code, salon.Id, uuid.New())
	assert.ErrorIs(t, err, entity.ErrTooManyAttempts)

	// another salon is unaffected
	other := f.seedSalon(t, true, true, "70")
	_, err = f.redemptions.Validate(f.ctx, "00000", other.Id, uuid.New())
	assert.ErrorIs(t, err, entity.ErrCodeNotFound)
}

func TestValidateForOwner(t *testing.T) {
	f := newFixture(t)
	plan := f.seedPlan(t, "100", 4)
	salon := f.seedSalon(t, true, true, "70")
	sub := f.seedSubscription(t, plan, salon, 4)

	code, err := f.codes.GenerateCode(f.ctx, sub.Id)
	require.NoError(t, err)

	record, err := f.redemptions.ValidateForOwner(f.ctx, code.Code, salon.OwnerId)
	require.NoError(t, err)
	assert.Equal(t, salon.OwnerId, record.ValidatedBy)
	assert.True(t, record.CommissionRate.Equal(decimal.NewFromInt(70)))

	_, err = f.redemptions.ValidateForOwner(f.ctx, code.Code, uuid.New())
	assert.ErrorIs(t, err, entity.ErrNotFound)
}
