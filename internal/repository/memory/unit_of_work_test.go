package memory

import (
	"context"
	"testing"
	"time"

	"cutclub-be/internal/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newSubscription(credits int) *entity.Subscription {
	now := time.Now()
	return &entity.Subscription{
		Id:              uuid.New(),
		UserId:          uuid.New(),
		PlanId:          uuid.New(),
		Status:          entity.SubscriptionStatusActive,
		CurrentCredits:  credits,
		PlanPrice:       decimal.NewFromInt(100),
		CreditsPerMonth: credits,
		StartDate:       now,
		EndDate:         now.AddDate(0, 0, 30),
	}
}

func TestUnitOfWork_CommitPublishesChanges(t *testing.T) {
	ctx := context.Background()
	factory := NewRepositoryFactory(NewStore())
	sub := newSubscription(2)

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.SubscriptionRepository().CreateSubscription(ctx, sub))
	require.NoError(t, uow.SubscriptionRepository().DecrementCredit(ctx, sub.Id))
	require.NoError(t, uow.Commit())

	got, err := factory.NewUnitOfWork(ctx).SubscriptionRepository().FindSubscriptionById(ctx, sub.Id)
	require.NoError(t, err)
	require.NotNil(t, got)
	assert.Equal(t, 1, got.CurrentCredits)

	// rolling back after commit is a harmless error, as with the deferred call in services
	assert.Error(t, uow.Rollback())
}

func TestUnitOfWork_RollbackDiscardsChanges(t *testing.T) {
	ctx := context.Background()
	factory := NewRepositoryFactory(NewStore())
	sub := newSubscription(2)
	require.NoError(t, factory.NewUnitOfWork(ctx).SubscriptionRepository().CreateSubscription(ctx, sub))

	uow := factory.NewUnitOfWork(ctx)
	require.NoError(t, uow.Begin(ctx))
	require.NoError(t, uow.SubscriptionRepository().DecrementCredit(ctx, sub.Id))
	require.NoError(t, uow.RedemptionCodeRepository().Create(ctx, &entity.RedemptionCode{
		Code:           "12345",
		SubscriptionId: sub.Id,
		ExpiresAt:      time.Now().Add(time.Minute),
	}))
	require.NoError(t, uow.Rollback())

	reader := factory.NewUnitOfWork(ctx)
	got, err := reader.SubscriptionRepository().FindSubscriptionById(ctx, sub.Id)
	require.NoError(t, err)
	assert.Equal(t, 2, got.CurrentCredits)

	count, err := reader.RedemptionCodeRepository().CountBySubscription(ctx, sub.Id)
	require.NoError(t, err)
	assert.Zero(t, count)
}

func TestUnitOfWork_ReturnedEntitiesAreCopies(t *testing.T) {
	ctx := context.Background()
	factory := NewRepositoryFactory(NewStore())
	salonId := uuid.New()
	sub := newSubscription(2)
	sub.SalonId = &salonId
	require.NoError(t, factory.NewUnitOfWork(ctx).SubscriptionRepository().CreateSubscription(ctx, sub))

	got, err := factory.NewUnitOfWork(ctx).SubscriptionRepository().FindSubscriptionById(ctx, sub.Id)
	require.NoError(t, err)
	got.CurrentCredits = 99
	*got.SalonId = uuid.New()

	again, err := factory.NewUnitOfWork(ctx).SubscriptionRepository().FindSubscriptionById(ctx, sub.Id)
	require.NoError(t, err)
	assert.Equal(t, 2, again.CurrentCredits)
	assert.Equal(t, salonId, *again.SalonId)
}

func TestDecrementCredit_NeverNegative(t *testing.T) {
	ctx := context.Background()
	factory := NewRepositoryFactory(NewStore())
	sub := newSubscription(1)
	repo := factory.NewUnitOfWork(ctx).SubscriptionRepository()
	require.NoError(t, repo.CreateSubscription(ctx, sub))

	require.NoError(t, repo.DecrementCredit(ctx, sub.Id))
	assert.ErrorIs(t, repo.DecrementCredit(ctx, sub.Id), entity.ErrInsufficientCredit)

	got, err := repo.FindSubscriptionById(ctx, sub.Id)
	require.NoError(t, err)
	assert.Equal(t, 0, got.CurrentCredits)
}

func TestMarkUsed_OnlyOnce(t *testing.T) {
	ctx := context.Background()
	factory := NewRepositoryFactory(NewStore())
	repo := factory.NewUnitOfWork(ctx).RedemptionCodeRepository()
	code := &entity.RedemptionCode{
		Code:           "54321",
		SubscriptionId: uuid.New(),
		ExpiresAt:      time.Now().Add(time.Minute),
	}
	require.NoError(t, repo.Create(ctx, code))

	require.NoError(t, repo.MarkUsed(ctx, code.Id, time.Now()))
	assert.ErrorIs(t, repo.MarkUsed(ctx, code.Id, time.Now()), entity.ErrCodeNotFound)

	live, err := repo.FindLiveByCode(ctx, "54321", time.Now())
	require.NoError(t, err)
	assert.Empty(t, live)
}

func TestCreateSubscription_OneActivePerUser(t *testing.T) {
	ctx := context.Background()
	repo := NewRepositoryFactory(NewStore()).NewUnitOfWork(ctx).SubscriptionRepository()
	first := newSubscription(2)
	require.NoError(t, repo.CreateSubscription(ctx, first))

	second := newSubscription(2)
	second.UserId = first.UserId
	assert.ErrorIs(t, repo.CreateSubscription(ctx, second), entity.ErrConcurrentUpdate)

	inactive := newSubscription(0)
	inactive.UserId = first.UserId
	inactive.Status = entity.SubscriptionStatusInactive
	require.NoError(t, repo.CreateSubscription(ctx, inactive))

	first.Status = entity.SubscriptionStatusCancelled
	require.NoError(t, repo.UpdateSubscription(ctx, first))
	assert.NoError(t, repo.CreateSubscription(ctx, second))
}

func TestCreateWithdraw_OneOpenPerSalon(t *testing.T) {
	ctx := context.Background()
	repo := NewRepositoryFactory(NewStore()).NewUnitOfWork(ctx).WithdrawRepository()
	salonId := uuid.New()
	newRequest := func(status entity.WithdrawStatus) *entity.WithdrawRequest {
		return &entity.WithdrawRequest{
			SalonId:  salonId,
			Amount:   decimal.NewFromInt(35),
			Status:   status,
			CycleEnd: time.Now(),
		}
	}

	open := newRequest(entity.WithdrawStatusPending)
	require.NoError(t, repo.Create(ctx, open))
	assert.ErrorIs(t, repo.Create(ctx, newRequest(entity.WithdrawStatusPending)), entity.ErrWithdrawalNotAllowed)
	assert.NoError(t, repo.Create(ctx, newRequest(entity.WithdrawStatusRejected)))

	other := newRequest(entity.WithdrawStatusPending)
	other.SalonId = uuid.New()
	assert.NoError(t, repo.Create(ctx, other))

	open.Status = entity.WithdrawStatusPaid
	require.NoError(t, repo.Update(ctx, open))
	assert.NoError(t, repo.Create(ctx, newRequest(entity.WithdrawStatusApproved)))
}
