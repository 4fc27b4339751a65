package service

import (
	"context"
	"testing"
	"time"

	"cutclub-be/internal/entity"
	"cutclub-be/internal/eventbus"
	"cutclub-be/internal/pkg/clock"
	"cutclub-be/internal/pkg/logger"
	"cutclub-be/internal/pkg/ratelimit"
	"cutclub-be/internal/repository/memory"
	"cutclub-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/require"
)

// Mid-month so withdrawals are open by default
var fixtureStart = time.Date(2025, time.March, 15, 12, 0, 0, 0, time.UTC)

type fixture struct {
	ctx      context.Context
	factory  unitofwork.RepositoryFactory
	clock    *clock.Manual
	recorder *eventbus.Recorder
	limiter  *ratelimit.MemoryLimiter

	subscriptions SubscriptionService
	codes         CodeService
	redemptions   RedemptionService
	history       HistoryService
	activation    ActivationService
	payouts       PayoutService
	salons        SalonService
	plans         PlanService
}

func newFixture(t *testing.T, opts ...CodeServiceOption) *fixture {
	t.Helper()

	factory := memory.NewRepositoryFactory(memory.NewStore())
	clk := clock.NewManual(fixtureStart)
	recorder := eventbus.NewRecorder()
	limiter := ratelimit.NewMemoryLimiter(10, 15*time.Minute)
	log := logger.NewNopLogger()

	return &fixture{
		ctx:      context.Background(),
		factory:  factory,
		clock:    clk,
		recorder: recorder,
		limiter:  limiter,

		subscriptions: NewSubscriptionService(factory, clk, recorder, log),
		codes:         NewCodeService(factory, clk, 30*time.Minute, log, opts...),
		redemptions:   NewRedemptionService(factory, clk, limiter, recorder, log),
		history:       NewHistoryService(factory),
		activation:    NewActivationService(factory, clk, recorder, log),
		payouts:       NewPayoutService(factory, clk, 10, recorder, log),
		salons:        NewSalonService(factory, clk, recorder, log),
		plans:         NewPlanService(factory, clk, log),
	}
}

// withFailureBudget swaps in a limiter that tolerates maxFailures wrong codes per salon
func (f *fixture) withFailureBudget(maxFailures int) {
	f.limiter = ratelimit.NewMemoryLimiter(maxFailures, 15*time.Minute)
	f.redemptions = NewRedemptionService(f.factory, f.clock, f.limiter, f.recorder, logger.NewNopLogger())
}

func (f *fixture) uow() unitofwork.UnitOfWork {
	return f.factory.NewUnitOfWork(f.ctx)
}

func (f *fixture) seedPlan(t *testing.T, price string, credits int) *entity.Plan {
	t.Helper()
	plan := &entity.Plan{
		Id:              uuid.New(),
		Name:            "Plan " + price,
		Price:           decimal.RequireFromString(price),
		CreditsPerMonth: credits,
		DurationDays:    30,
		IsActive:        true,
		CreatedAt:       f.clock.Now(),
	}
	require.NoError(t, f.uow().SubscriptionRepository().CreatePlan(f.ctx, plan))
	return plan
}

func (f *fixture) seedSalon(t *testing.T, approved, active bool, commission string) *entity.Salon {
	t.Helper()
	salon := &entity.Salon{
		Id:             uuid.New(),
		OwnerId:        uuid.New(),
		Name:           "Salon",
		City:           "Curitiba",
		State:          "PR",
		IsApproved:     approved,
		IsActive:       active,
		CommissionRate: decimal.RequireFromString(commission),
		CreatedAt:      f.clock.Now(),
		UpdatedAt:      f.clock.Now(),
	}
	require.NoError(t, f.uow().SalonRepository().Create(f.ctx, salon))
	return salon
}

// seedSubscription creates an active subscription linked to salon (nil leaves it unlinked)
func (f *fixture) seedSubscription(t *testing.T, plan *entity.Plan, salon *entity.Salon, credits int) *entity.Subscription {
	t.Helper()
	now := f.clock.Now()
	sub := &entity.Subscription{
		Id:              uuid.New(),
		UserId:          uuid.New(),
		PlanId:          plan.Id,
		Status:          entity.SubscriptionStatusActive,
		CurrentCredits:  credits,
		PlanPrice:       plan.Price,
		CreditsPerMonth: plan.CreditsPerMonth,
		StartDate:       now,
		EndDate:         now.AddDate(0, 0, 30),
		CreatedAt:       now,
		UpdatedAt:       now,
	}
	if salon != nil {
		sub.SalonId = &salon.Id
	}
	require.NoError(t, f.uow().SubscriptionRepository().CreateSubscription(f.ctx, sub))
	return sub
}

func (f *fixture) subscription(t *testing.T, id uuid.UUID) *entity.Subscription {
	t.Helper()
	sub, err := f.uow().SubscriptionRepository().FindSubscriptionById(f.ctx, id)
	require.NoError(t, err)
	require.NotNil(t, sub)
	return sub
}

func fixedCodes(values ...string) CodeServiceOption {
	i := 0
	return WithCodeSource(func() (string, error) {
		v := values[i%len(values)]
		i++
		return v, nil
	})
}

// redeem issues a code for sub and validates it at salon
func (f *fixture) redeem(t *testing.T, sub *entity.Subscription, salon *entity.Salon) *entity.SettlementRecord {
	t.Helper()
	code, err := f.codes.GenerateCode(f.ctx, sub.Id)
	require.NoError(t, err)
	record, err := f.redemptions.Validate(f.ctx, code.Code, salon.Id, salon.OwnerId)
	require.NoError(t, err)
	return record
}
