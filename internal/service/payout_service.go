package service

import (
	"context"
	"fmt"
	"time"

	"cutclub-be/internal/dto"
	"cutclub-be/internal/entity"
	"cutclub-be/internal/eventbus"
	"cutclub-be/internal/pkg/clock"
	"cutclub-be/internal/pkg/logger"
	"cutclub-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PayoutService turns the settlement ledger into withdrawal cycles.
// A cycle covers settlements created in [cycle_start, cycle_end); the next cycle starts
// at the end of the newest non-rejected request.
type PayoutService interface {
	Summary(ctx context.Context, salonId uuid.UUID) (*dto.FinancialSummary, error)
	SummaryForOwner(ctx context.Context, ownerId uuid.UUID) (*dto.FinancialSummary, error)
	RequestWithdrawal(ctx context.Context, ownerId uuid.UUID) (*entity.WithdrawRequest, error)
	ListForOwner(ctx context.Context, ownerId uuid.UUID) ([]*entity.WithdrawRequest, error)

	// Admin
	ListAll(ctx context.Context, status entity.WithdrawStatus) ([]*entity.WithdrawRequest, error)
	Approve(ctx context.Context, adminId, withdrawId uuid.UUID) (*entity.WithdrawRequest, error)
	MarkPaid(ctx context.Context, adminId, withdrawId uuid.UUID) (*entity.WithdrawRequest, error)
	Reject(ctx context.Context, adminId, withdrawId uuid.UUID, reason string) (*entity.WithdrawRequest, error)
	FinancialLogs(ctx context.Context, from, to time.Time) ([]*entity.FinancialLog, error)
}

type payoutService struct {
	uowFactory unitofwork.RepositoryFactory
	clock      clock.Clock
	openDay    int
	publisher  eventbus.Publisher
	logger     logger.ILogger
}

func NewPayoutService(
	uowFactory unitofwork.RepositoryFactory,
	clk clock.Clock,
	withdrawOpenDay int,
	publisher eventbus.Publisher,
	logger logger.ILogger,
) PayoutService {
	return &payoutService{
		uowFactory: uowFactory,
		clock:      clk,
		openDay:    withdrawOpenDay,
		publisher:  publisher,
		logger:     logger,
	}
}

type cycleState struct {
	summary    *dto.FinancialSummary
	cycleStart time.Time
}

func (s *payoutService) salonOf(ctx context.Context, uow unitofwork.UnitOfWork, ownerId uuid.UUID) (*entity.Salon, error) {
	salon, err := uow.SalonRepository().FindByOwner(ctx, ownerId)
	if err != nil {
		return nil, err
	}
	if salon == nil {
		return nil, fmt.Errorf("salon of owner %s: %w", ownerId, entity.ErrNotFound)
	}
	return salon, nil
}

func (s *payoutService) compute(ctx context.Context, uow unitofwork.UnitOfWork, salonId uuid.UUID) (*cycleState, error) {
	now := s.clock.Now()
	settlements := uow.SettlementRepository()

	latest, err := uow.WithdrawRepository().FindLatestCycle(ctx, salonId)
	if err != nil {
		return nil, err
	}

	var cycleStart time.Time
	if latest != nil {
		cycleStart = latest.CycleEnd
	} else {
		first, err := settlements.FirstBySalon(ctx, salonId)
		if err != nil {
			return nil, err
		}
		if first != nil {
			cycleStart = first.CreatedAt
		}
	}

	available, err := settlements.SumBySalon(ctx, salonId, cycleStart, now)
	if err != nil {
		return nil, err
	}
	lifetime, err := settlements.SumBySalon(ctx, salonId, time.Time{}, time.Time{})
	if err != nil {
		return nil, err
	}

	requests, err := uow.WithdrawRepository().ListBySalon(ctx, salonId)
	if err != nil {
		return nil, err
	}

	summary := &dto.FinancialSummary{
		SalonId:           salonId,
		Available:         available.AmountToSalon,
		AvailableHaircuts: available.HaircutCount,
		Pending:           decimal.Zero,
		Paid:              decimal.Zero,
		TotalEarned:       lifetime.AmountToSalon,
		WithdrawOpenDay:   s.openDay,
	}
	hasOpen := false
	for _, w := range requests {
		switch {
		case w.IsOpen():
			hasOpen = true
			summary.Pending = summary.Pending.Add(w.Amount)
		case w.Status == entity.WithdrawStatusPaid:
			summary.Paid = summary.Paid.Add(w.Amount)
		}
	}

	switch {
	case now.Day() < s.openDay:
		summary.BlockedReason = fmt.Sprintf("withdrawals open on day %d of the month", s.openDay)
	case hasOpen:
		summary.BlockedReason = "a withdrawal request is already in progress"
	case !available.AmountToSalon.IsPositive():
		summary.BlockedReason = "no balance available"
	default:
		summary.CanWithdraw = true
	}

	return &cycleState{summary: summary, cycleStart: cycleStart}, nil
}

func (s *payoutService) Summary(ctx context.Context, salonId uuid.UUID) (*dto.FinancialSummary, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	state, err := s.compute(ctx, uow, salonId)
	if err != nil {
		return nil, err
	}
	return state.summary, nil
}

func (s *payoutService) SummaryForOwner(ctx context.Context, ownerId uuid.UUID) (*dto.FinancialSummary, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	salon, err := s.salonOf(ctx, uow, ownerId)
	if err != nil {
		return nil, err
	}
	state, err := s.compute(ctx, uow, salon.Id)
	if err != nil {
		return nil, err
	}
	return state.summary, nil
}

func (s *payoutService) RequestWithdrawal(ctx context.Context, ownerId uuid.UUID) (*entity.WithdrawRequest, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	salon, err := s.salonOf(ctx, uow, ownerId)
	if err != nil {
		return nil, err
	}
	// serializes concurrent requests of one salon so only one sees the open cycle
	if _, err := uow.SalonRepository().FindByIdForUpdate(ctx, salon.Id); err != nil {
		return nil, err
	}

	state, err := s.compute(ctx, uow, salon.Id)
	if err != nil {
		return nil, err
	}
	if !state.summary.CanWithdraw {
		return nil, fmt.Errorf("%w: %s", entity.ErrWithdrawalNotAllowed, state.summary.BlockedReason)
	}

	now := s.clock.Now()
	request := &entity.WithdrawRequest{
		Id:            uuid.New(),
		SalonId:       salon.Id,
		Amount:        state.summary.Available,
		HaircutsCount: state.summary.AvailableHaircuts,
		CycleStart:    state.cycleStart,
		CycleEnd:      now,
		Status:        entity.WithdrawStatusPending,
		RequestedAt:   now,
	}
	if err := uow.WithdrawRepository().Create(ctx, request); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("PAYOUT", "Withdrawal requested", map[string]interface{}{
		"withdraw_id": request.Id,
		"salon_id":    salon.Id,
		"amount":      request.Amount.StringFixed(2),
	})
	s.publisher.PublishWithdrawalRequested(ctx, request)
	return request, nil
}

func (s *payoutService) ListForOwner(ctx context.Context, ownerId uuid.UUID) ([]*entity.WithdrawRequest, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	salon, err := s.salonOf(ctx, uow, ownerId)
	if err != nil {
		return nil, err
	}
	return uow.WithdrawRepository().ListBySalon(ctx, salon.Id)
}

func (s *payoutService) ListAll(ctx context.Context, status entity.WithdrawStatus) ([]*entity.WithdrawRequest, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.WithdrawRepository().ListAll(ctx, status)
}

func (s *payoutService) transition(
	ctx context.Context,
	adminId, withdrawId uuid.UUID,
	next entity.WithdrawStatus,
	apply func(uow unitofwork.UnitOfWork, w *entity.WithdrawRequest) error,
) (*entity.WithdrawRequest, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	w, err := uow.WithdrawRepository().FindById(ctx, withdrawId)
	if err != nil {
		return nil, err
	}
	if w == nil {
		return nil, fmt.Errorf("withdraw request %s: %w", withdrawId, entity.ErrNotFound)
	}
	if !w.Status.CanTransitionTo(next) {
		return nil, fmt.Errorf("%w: %s to %s", entity.ErrInvalidTransition, w.Status, next)
	}

	previous := w.Status
	w.Status = next
	w.AdminId = &adminId
	if apply != nil {
		if err := apply(uow, w); err != nil {
			return nil, err
		}
	}
	if err := uow.WithdrawRepository().Update(ctx, w); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("PAYOUT", "Withdrawal status changed", map[string]interface{}{
		"withdraw_id": w.Id,
		"from":        previous,
		"to":          next,
		"admin_id":    adminId,
	})
	s.publisher.PublishWithdrawalUpdated(ctx, w)
	return w, nil
}

func (s *payoutService) Approve(ctx context.Context, adminId, withdrawId uuid.UUID) (*entity.WithdrawRequest, error) {
	return s.transition(ctx, adminId, withdrawId, entity.WithdrawStatusApproved, nil)
}

func (s *payoutService) MarkPaid(ctx context.Context, adminId, withdrawId uuid.UUID) (*entity.WithdrawRequest, error) {
	return s.transition(ctx, adminId, withdrawId, entity.WithdrawStatusPaid, func(uow unitofwork.UnitOfWork, w *entity.WithdrawRequest) error {
		now := s.clock.Now()
		w.PaidAt = &now
		return uow.FinancialLogRepository().Append(ctx, &entity.FinancialLog{
			Id:          uuid.New(),
			Type:        entity.FinancialLogWithdrawPaid,
			Amount:      w.Amount,
			Description: fmt.Sprintf("Payout of %d haircuts", w.HaircutsCount),
			ReferenceId: &w.Id,
			Metadata: map[string]interface{}{
				"salon_id":    w.SalonId.String(),
				"cycle_start": w.CycleStart,
				"cycle_end":   w.CycleEnd,
			},
			CreatedAt: now,
		})
	})
}

func (s *payoutService) Reject(ctx context.Context, adminId, withdrawId uuid.UUID, reason string) (*entity.WithdrawRequest, error) {
	if reason == "" {
		return nil, fmt.Errorf("rejection reason is required: %w", entity.ErrInvalidInput)
	}
	return s.transition(ctx, adminId, withdrawId, entity.WithdrawStatusRejected, func(_ unitofwork.UnitOfWork, w *entity.WithdrawRequest) error {
		w.RejectionReason = &reason
		return nil
	})
}

func (s *payoutService) FinancialLogs(ctx context.Context, from, to time.Time) ([]*entity.FinancialLog, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.FinancialLogRepository().List(ctx, from, to)
}
