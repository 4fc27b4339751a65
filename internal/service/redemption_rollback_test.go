package service

import (
	"context"
	"errors"
	"testing"
	"time"

	"cutclub-be/internal/entity"
	"cutclub-be/internal/pkg/logger"
	"cutclub-be/internal/repository/contract"
	"cutclub-be/internal/repository/unitofwork"
	"cutclub-be/pkg/events"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var errDiskFull = errors.New("disk full")

// failingFactory hands out units of work whose ledger appends fail on demand
type failingFactory struct {
	unitofwork.RepositoryFactory
	settlementErr error
	logErr        error
}

func (f *failingFactory) NewUnitOfWork(ctx context.Context) unitofwork.UnitOfWork {
	return &failingUoW{UnitOfWork: f.RepositoryFactory.NewUnitOfWork(ctx), factory: f}
}

type failingUoW struct {
	unitofwork.UnitOfWork
	factory *failingFactory
}

func (u *failingUoW) SettlementRepository() contract.SettlementRepository {
	return &failingSettlements{SettlementRepository: u.UnitOfWork.SettlementRepository(), err: u.factory.settlementErr}
}

func (u *failingUoW) FinancialLogRepository() contract.FinancialLogRepository {
	return &failingLogs{FinancialLogRepository: u.UnitOfWork.FinancialLogRepository(), err: u.factory.logErr}
}

type failingSettlements struct {
	contract.SettlementRepository
	err error
}

func (r *failingSettlements) Append(ctx context.Context, record *entity.SettlementRecord) error {
	if r.err != nil {
		return r.err
	}
	return r.SettlementRepository.Append(ctx, record)
}

type failingLogs struct {
	contract.FinancialLogRepository
	err error
}

func (r *failingLogs) Append(ctx context.Context, log *entity.FinancialLog) error {
	if r.err != nil {
		return r.err
	}
	return r.FinancialLogRepository.Append(ctx, log)
}

func TestValidate_FailedAppendRollsBackSettlement(t *testing.T) {
	cases := []struct {
		name    string
		factory func(base unitofwork.RepositoryFactory) unitofwork.RepositoryFactory
	}{
		{
			name: "settlement record",
			factory: func(base unitofwork.RepositoryFactory) unitofwork.RepositoryFactory {
				return &failingFactory{RepositoryFactory: base, settlementErr: errDiskFull}
			},
		},
		{
			name: "financial log",
			factory: func(base unitofwork.RepositoryFactory) unitofwork.RepositoryFactory {
				return &failingFactory{RepositoryFactory: base, logErr: errDiskFull}
			},
		},
	}

	for _, tc := range cases {
		t.Run(tc.name, func(t *testing.T) {
			f := newFixture(t)
			plan := f.seedPlan(t, "79.99", 3)
			salon := f.seedSalon(t, true, true, "80")
			sub := f.seedSubscription(t, plan, salon, 3)

			code, err := f.codes.GenerateCode(f.ctx, sub.Id)
			require.NoError(t, err)

			broken := NewRedemptionService(tc.factory(f.factory), f.clock, f.limiter, f.recorder, logger.NewNopLogger())
			_, err = broken.Validate(f.ctx, code.Code, salon.Id, uuid.New())
			require.ErrorIs(t, err, errDiskFull)

			assert.Equal(t, 3, f.subscription(t, sub.Id).CurrentCredits)

			live, err := f.uow().RedemptionCodeRepository().FindLatestLiveBySubscription(f.ctx, sub.Id, f.clock.Now())
			require.NoError(t, err)
			require.NotNil(t, live)
			assert.Equal(t, code.Id, live.Id)
			assert.False(t, live.IsUsed)

			records, err := f.history.ListBySubscription(f.ctx, sub.Id)
			require.NoError(t, err)
			assert.Empty(t, records)

			logs, err := f.uow().FinancialLogRepository().List(f.ctx, time.Time{}, time.Time{})
			require.NoError(t, err)
			assert.Empty(t, logs)
			assert.NotContains(t, f.recorder.Events(), events.TypeHaircutRedeemed)

			// the same code still settles once storage recovers
			record, err := f.redemptions.Validate(f.ctx, code.Code, salon.Id, uuid.New())
			require.NoError(t, err)
			assert.Equal(t, sub.Id, record.SubscriptionId)
			assert.Equal(t, 2, f.subscription(t, sub.Id).CurrentCredits)
		})
	}
}
