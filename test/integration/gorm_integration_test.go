package integration

import (
	"context"
	"log"
	"os"
	"sync"
	"testing"
	"time"

	"cutclub-be/internal/entity"
	"cutclub-be/internal/repository/unitofwork"
	"cutclub-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

// Runs against a database prepared by cmd/migrate.
func TestGormRepositories(t *testing.T) {
	if err := godotenv.Load("../../.env"); err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	require.NoError(t, err)

	ctx := context.Background()
	factory := unitofwork.NewRepositoryFactory(gormDB)
	now := time.Now().UTC().Truncate(time.Microsecond)

	owner := &entity.Profile{Id: uuid.New(), Email: "owner-" + uuid.NewString() + "@example.com", FullName: "Owner", Role: entity.UserRoleSalonOwner}
	subscriber := &entity.Profile{Id: uuid.New(), Email: "sub-" + uuid.NewString() + "@example.com", FullName: "Subscriber", Role: entity.UserRoleSubscriber}
	plan := &entity.Plan{Id: uuid.New(), Name: "Integration " + uuid.NewString()[:8], Price: decimal.RequireFromString("79.99"), CreditsPerMonth: 3, DurationDays: 30, IsActive: true}
	salon := &entity.Salon{Id: uuid.New(), OwnerId: owner.Id, Name: "Integration Salon", City: "Recife", State: "PE", IsApproved: true, IsActive: true, CommissionRate: decimal.NewFromInt(80)}
	sub := &entity.Subscription{
		Id:              uuid.New(),
		UserId:          subscriber.Id,
		PlanId:          plan.Id,
		SalonId:         &salon.Id,
		Status:          entity.SubscriptionStatusActive,
		CurrentCredits:  3,
		PlanPrice:       plan.Price,
		CreditsPerMonth: plan.CreditsPerMonth,
		StartDate:       now,
		EndDate:         now.AddDate(0, 0, 30),
	}

	t.Run("seed graph in one transaction", func(t *testing.T) {
		uow := factory.NewUnitOfWork(ctx)
		require.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()

		require.NoError(t, uow.ProfileRepository().Create(ctx, owner))
		require.NoError(t, uow.ProfileRepository().Create(ctx, subscriber))
		require.NoError(t, uow.SubscriptionRepository().CreatePlan(ctx, plan))
		require.NoError(t, uow.SalonRepository().Create(ctx, salon))
		require.NoError(t, uow.SubscriptionRepository().CreateSubscription(ctx, sub))
		require.NoError(t, uow.Commit())

		found, err := factory.NewUnitOfWork(ctx).SubscriptionRepository().FindActiveSubscriptionByUser(ctx, subscriber.Id)
		require.NoError(t, err)
		require.NotNil(t, found)
		assert.Equal(t, sub.Id, found.Id)
		assert.True(t, plan.Price.Equal(found.PlanPrice))
	})

	t.Run("rolled back writes are discarded", func(t *testing.T) {
		uow := factory.NewUnitOfWork(ctx)
		require.NoError(t, uow.Begin(ctx))
		ghost := &entity.Profile{Id: uuid.New(), Email: "ghost-" + uuid.NewString() + "@example.com", FullName: "Ghost", Role: entity.UserRoleSubscriber}
		require.NoError(t, uow.ProfileRepository().Create(ctx, ghost))
		require.NoError(t, uow.Rollback())

		found, err := factory.NewUnitOfWork(ctx).ProfileRepository().FindById(ctx, ghost.Id)
		require.NoError(t, err)
		assert.Nil(t, found)
	})

	t.Run("live code is consumed once", func(t *testing.T) {
		repo := factory.NewUnitOfWork(ctx).RedemptionCodeRepository()
		code := &entity.RedemptionCode{Id: uuid.New(), Code: "54321", SubscriptionId: sub.Id, ExpiresAt: now.Add(30 * time.Minute), CreatedAt: now}
		require.NoError(t, repo.Create(ctx, code))

		live, err := repo.FindLiveByCode(ctx, "54321", now)
		require.NoError(t, err)
		assert.Contains(t, lookupIds(live), code.Id)

		live, err = repo.FindLiveByCode(ctx, "54321", code.ExpiresAt)
		require.NoError(t, err)
		assert.NotContains(t, lookupIds(live), code.Id, "a code is dead at its expiry instant")

		require.NoError(t, repo.MarkUsed(ctx, code.Id, now))
		assert.ErrorIs(t, repo.MarkUsed(ctx, code.Id, now), entity.ErrCodeNotFound)
	})

	t.Run("concurrent decrements stop at zero", func(t *testing.T) {
		var wg sync.WaitGroup
		var mu sync.Mutex
		succeeded := 0
		for i := 0; i < 8; i++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				uow := factory.NewUnitOfWork(ctx)
				if err := uow.Begin(ctx); err != nil {
					return
				}
				defer uow.Rollback()
				if err := uow.SubscriptionRepository().DecrementCredit(ctx, sub.Id); err != nil {
					return
				}
				if uow.Commit() == nil {
					mu.Lock()
					succeeded++
					mu.Unlock()
				}
			}()
		}
		wg.Wait()

		assert.Equal(t, 3, succeeded)
		found, err := factory.NewUnitOfWork(ctx).SubscriptionRepository().FindSubscriptionById(ctx, sub.Id)
		require.NoError(t, err)
		assert.Equal(t, 0, found.CurrentCredits)
	})

	t.Run("settlement totals", func(t *testing.T) {
		repo := factory.NewUnitOfWork(ctx).SettlementRepository()
		record := &entity.SettlementRecord{
			Id:               uuid.New(),
			SubscriptionId:   sub.Id,
			SalonId:          salon.Id,
			ValidatedBy:      owner.Id,
			CodeUsed:         "54321",
			PricePerHaircut:  decimal.RequireFromString("26.66"),
			CommissionRate:   decimal.NewFromInt(80),
			AmountToSalon:    decimal.RequireFromString("21.33"),
			AmountToPlatform: decimal.RequireFromString("5.33"),
			CreatedAt:        now,
		}
		require.NoError(t, repo.Append(ctx, record))

		totals, err := repo.SumBySalon(ctx, salon.Id, time.Time{}, time.Time{})
		require.NoError(t, err)
		assert.Equal(t, "21.33", totals.AmountToSalon.StringFixed(2))
		assert.Equal(t, 1, totals.HaircutCount)

		totals, err = repo.SumBySalon(ctx, salon.Id, now.Add(-time.Hour), now)
		require.NoError(t, err)
		assert.Equal(t, 0, totals.HaircutCount, "window end is exclusive")
	})

	t.Run("second active subscription is a retryable conflict", func(t *testing.T) {
		duplicate := *sub
		duplicate.Id = uuid.New()
		duplicate.SalonId = nil
		err := factory.NewUnitOfWork(ctx).SubscriptionRepository().CreateSubscription(ctx, &duplicate)
		assert.ErrorIs(t, err, entity.ErrConcurrentUpdate)
	})

	t.Run("one open withdrawal per salon", func(t *testing.T) {
		uow := factory.NewUnitOfWork(ctx)
		require.NoError(t, uow.Begin(ctx))
		defer uow.Rollback()

		locked, err := uow.SalonRepository().FindByIdForUpdate(ctx, salon.Id)
		require.NoError(t, err)
		require.NotNil(t, locked)

		request := func() *entity.WithdrawRequest {
			return &entity.WithdrawRequest{
				Id:          uuid.New(),
				SalonId:     salon.Id,
				Amount:      decimal.RequireFromString("21.33"),
				CycleStart:  now.Add(-time.Hour),
				CycleEnd:    now,
				Status:      entity.WithdrawStatusPending,
				RequestedAt: now,
			}
		}
		require.NoError(t, uow.WithdrawRepository().Create(ctx, request()))
		err = uow.WithdrawRepository().Create(ctx, request())
		assert.ErrorIs(t, err, entity.ErrWithdrawalNotAllowed)
	})
}

func lookupIds(codes []*entity.RedemptionCode) []uuid.UUID {
	ids := make([]uuid.UUID, 0, len(codes))
	for _, c := range codes {
		ids = append(ids, c.Id)
	}
	return ids
}
