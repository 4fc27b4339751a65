package service

import (
	"context"
	"errors"
	"fmt"
	"regexp"

	"cutclub-be/internal/entity"
	"cutclub-be/internal/eventbus"
	"cutclub-be/internal/pkg/clock"
	"cutclub-be/internal/pkg/logger"
	"cutclub-be/internal/pkg/ratelimit"
	"cutclub-be/internal/repository/unitofwork"
	"cutclub-be/internal/tracer"
	"cutclub-be/pkg/ledger"
	"cutclub-be/pkg/settlement"

	"github.com/google/uuid"
	"go.opentelemetry.io/otel/attribute"
)

var codePattern = regexp.MustCompile(`^[0-9]{5}$`)

type RedemptionService interface {
	// Validate redeems codeValue at salonId and returns the settlement record it wrote
	Validate(ctx context.Context, codeValue string, salonId, validatorUserId uuid.UUID) (*entity.SettlementRecord, error)
	// ValidateForOwner resolves the caller's salon first
	ValidateForOwner(ctx context.Context, codeValue string, ownerId uuid.UUID) (*entity.SettlementRecord, error)
}

type redemptionService struct {
	uowFactory unitofwork.RepositoryFactory
	ledger     *ledger.Ledger
	clock      clock.Clock
	limiter    ratelimit.FailureLimiter
	publisher  eventbus.Publisher
	logger     logger.ILogger
}

func NewRedemptionService(
	uowFactory unitofwork.RepositoryFactory,
	clk clock.Clock,
	limiter ratelimit.FailureLimiter,
	publisher eventbus.Publisher,
	logger logger.ILogger,
) RedemptionService {
	return &redemptionService{
		uowFactory: uowFactory,
		ledger:     ledger.New(clk),
		clock:      clk,
		limiter:    limiter,
		publisher:  publisher,
		logger:     logger,
	}
}

func (s *redemptionService) ValidateForOwner(ctx context.Context, codeValue string, ownerId uuid.UUID) (*entity.SettlementRecord, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	salon, err := uow.SalonRepository().FindByOwner(ctx, ownerId)
	if err != nil {
		return nil, err
	}
	if salon == nil {
		return nil, fmt.Errorf("salon of owner %s: %w", ownerId, entity.ErrNotFound)
	}
	return s.Validate(ctx, codeValue, salon.Id, ownerId)
}

func (s *redemptionService) Validate(ctx context.Context, codeValue string, salonId, validatorUserId uuid.UUID) (*entity.SettlementRecord, error) {
	throttleKey := salonId.String()
	allowed, err := s.limiter.Allow(ctx, throttleKey)
	if err != nil {
		// the throttle is advisory, a broken backend must not block redemptions
		s.logger.Warn("REDEMPTION", "Failure limiter unavailable", map[string]interface{}{"error": err.Error()})
		allowed = true
	}
	if !allowed {
		return nil, entity.ErrTooManyAttempts
	}

	spanCtx, span := tracer.Start(ctx, "redemption.settle", attribute.String("salon.id", throttleKey))
	record, subscriberId, err := s.settle(spanCtx, codeValue, salonId, validatorUserId)
	tracer.Finish(span, err)
	if err != nil {
		if errors.Is(err, entity.ErrCodeNotFound) || errors.Is(err, entity.ErrWrongSalon) {
			if lerr := s.limiter.RecordFailure(ctx, throttleKey); lerr != nil {
				s.logger.Warn("REDEMPTION", "Failed to record validation failure", map[string]interface{}{"error": lerr.Error()})
			}
		}
		s.logger.Info("REDEMPTION", "Validation rejected", map[string]interface{}{
			"salon_id": salonId,
			"reason":   err.Error(),
		})
		return nil, err
	}

	s.logger.Info("REDEMPTION", "Haircut settled", map[string]interface{}{
		"settlement_id":      record.Id,
		"subscription_id":    record.SubscriptionId,
		"salon_id":           record.SalonId,
		"amount_to_salon":    record.AmountToSalon.StringFixed(2),
		"amount_to_platform": record.AmountToPlatform.StringFixed(2),
	})
	s.publisher.PublishHaircutRedeemed(ctx, record, subscriberId)
	return record, nil
}

// settle runs every check and write of a redemption inside one transaction.
// Check order: code, salon link, credit, salon approval.
func (s *redemptionService) settle(ctx context.Context, codeValue string, salonId, validatorUserId uuid.UUID) (*entity.SettlementRecord, uuid.UUID, error) {
	if !codePattern.MatchString(codeValue) {
		return nil, uuid.Nil, entity.ErrCodeNotFound
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, uuid.Nil, err
	}
	defer uow.Rollback()

	now := s.clock.Now()

	code, sub, err := s.resolveCode(ctx, uow, codeValue, salonId)
	if err != nil {
		return nil, uuid.Nil, err
	}
	if !sub.IsLinkedTo(salonId) {
		return nil, uuid.Nil, entity.ErrWrongSalon
	}
	if sub.CurrentCredits <= 0 {
		return nil, uuid.Nil, entity.ErrInsufficientCredit
	}

	salon, err := uow.SalonRepository().FindById(ctx, salonId)
	if err != nil {
		return nil, uuid.Nil, err
	}
	if salon == nil || !salon.CanRedeem() {
		return nil, uuid.Nil, entity.ErrSalonNotApproved
	}

	split, err := settlement.ComputeSplit(sub.PlanPrice, sub.CreditsPerMonth, salon.CommissionRate)
	if err != nil {
		return nil, uuid.Nil, fmt.Errorf("%w: %w", entity.ErrInvalidPlan, err)
	}

	if err := uow.RedemptionCodeRepository().MarkUsed(ctx, code.Id, now); err != nil {
		return nil, uuid.Nil, err
	}
	if _, err := s.ledger.Decrement(ctx, uow, sub.Id); err != nil {
		return nil, uuid.Nil, err
	}

	record := &entity.SettlementRecord{
		Id:               uuid.New(),
		SubscriptionId:   sub.Id,
		SalonId:          salonId,
		ValidatedBy:      validatorUserId,
		CodeUsed:         code.Code,
		PricePerHaircut:  split.PricePerHaircut,
		CommissionRate:   salon.CommissionRate,
		AmountToSalon:    split.AmountToSalon,
		AmountToPlatform: split.AmountToPlatform,
		CreatedAt:        now,
	}
	if err := uow.SettlementRepository().Append(ctx, record); err != nil {
		return nil, uuid.Nil, err
	}

	if err := uow.FinancialLogRepository().Append(ctx, &entity.FinancialLog{
		Id:          uuid.New(),
		Type:        entity.FinancialLogSettlement,
		Amount:      split.AmountToPlatform,
		Description: fmt.Sprintf("Haircut at %s", salon.Name),
		ReferenceId: &record.Id,
		Metadata: map[string]interface{}{
			"salon_id":          salonId.String(),
			"subscription_id":   sub.Id.String(),
			"price_per_haircut": split.PricePerHaircut.StringFixed(2),
			"amount_to_salon":   split.AmountToSalon.StringFixed(2),
		},
		CreatedAt: now,
	}); err != nil {
		return nil, uuid.Nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, uuid.Nil, err
	}
	return record, sub.UserId, nil
}

// resolveCode picks among live codes sharing the value. A code whose subscription is
// linked to the presenting salon wins; otherwise the newest one is reported.
func (s *redemptionService) resolveCode(ctx context.Context, uow unitofwork.UnitOfWork, codeValue string, salonId uuid.UUID) (*entity.RedemptionCode, *entity.Subscription, error) {
	codes, err := uow.RedemptionCodeRepository().FindLiveByCode(ctx, codeValue, s.clock.Now())
	if err != nil {
		return nil, nil, err
	}

	var (
		fallbackCode *entity.RedemptionCode
		fallbackSub  *entity.Subscription
	)
	for _, code := range codes {
		sub, err := uow.SubscriptionRepository().FindSubscriptionForUpdate(ctx, code.SubscriptionId)
		if err != nil {
			return nil, nil, err
		}
		if sub == nil {
			continue
		}
		if sub.IsLinkedTo(salonId) {
			return code, sub, nil
		}
		if fallbackCode == nil {
			fallbackCode, fallbackSub = code, sub
		}
	}

	if fallbackCode == nil {
		return nil, nil, entity.ErrCodeNotFound
	}
	return fallbackCode, fallbackSub, nil
}
