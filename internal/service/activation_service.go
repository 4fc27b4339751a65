package service

import (
	"context"
	"fmt"
	"time"

	"cutclub-be/internal/entity"
	"cutclub-be/internal/eventbus"
	"cutclub-be/internal/pkg/clock"
	"cutclub-be/internal/pkg/logger"
	"cutclub-be/internal/repository/unitofwork"
	"cutclub-be/pkg/ledger"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// PaymentConfirmation is the only input the payment collaborator owes the core
type PaymentConfirmation struct {
	UserId        uuid.UUID
	PlanId        uuid.UUID
	Amount        decimal.Decimal
	ExternalId    string
	PaymentMethod string
	PaidAt        time.Time
}

type ActivationService interface {
	// Activate creates or renews the subscriber's subscription. Replays of the same
	// ExternalId return the subscription without touching it.
	Activate(ctx context.Context, confirmation PaymentConfirmation) (*entity.Subscription, error)
}

type activationService struct {
	uowFactory unitofwork.RepositoryFactory
	ledger     *ledger.Ledger
	clock      clock.Clock
	publisher  eventbus.Publisher
	logger     logger.ILogger
}

func NewActivationService(
	uowFactory unitofwork.RepositoryFactory,
	clk clock.Clock,
	publisher eventbus.Publisher,
	logger logger.ILogger,
) ActivationService {
	return &activationService{
		uowFactory: uowFactory,
		ledger:     ledger.New(clk),
		clock:      clk,
		publisher:  publisher,
		logger:     logger,
	}
}

func (s *activationService) Activate(ctx context.Context, confirmation PaymentConfirmation) (*entity.Subscription, error) {
	if confirmation.ExternalId == "" {
		return nil, fmt.Errorf("external id is required: %w", entity.ErrInvalidInput)
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	existing, err := uow.PaymentRepository().FindByExternalId(ctx, confirmation.ExternalId)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		s.logger.Info("ACTIVATION", "Duplicate confirmation ignored", map[string]interface{}{
			"external_id": confirmation.ExternalId,
		})
		return uow.SubscriptionRepository().FindSubscriptionById(ctx, existing.SubscriptionId)
	}

	plan, err := uow.SubscriptionRepository().FindPlanById(ctx, confirmation.PlanId)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, fmt.Errorf("plan %s: %w", confirmation.PlanId, entity.ErrNotFound)
	}
	if plan.CreditsPerMonth <= 0 {
		return nil, fmt.Errorf("plan %s has no credits: %w", plan.Id, entity.ErrInvalidPlan)
	}
	if !confirmation.Amount.Equal(plan.Price) {
		s.logger.Warn("ACTIVATION", "Paid amount differs from plan price", map[string]interface{}{
			"external_id": confirmation.ExternalId,
			"paid":        confirmation.Amount.StringFixed(2),
			"plan_price":  plan.Price.StringFixed(2),
		})
	}

	now := s.clock.Now()
	endDate := now.AddDate(0, 0, plan.EffectiveDurationDays())

	sub, err := uow.SubscriptionRepository().FindLatestSubscriptionByUser(ctx, confirmation.UserId)
	if err != nil {
		return nil, err
	}

	if sub == nil {
		sub = &entity.Subscription{
			Id:              uuid.New(),
			UserId:          confirmation.UserId,
			PlanId:          plan.Id,
			Status:          entity.SubscriptionStatusActive,
			CurrentCredits:  plan.CreditsPerMonth,
			PlanPrice:       plan.Price,
			CreditsPerMonth: plan.CreditsPerMonth,
			StartDate:       now,
			EndDate:         endDate,
			CreatedAt:       now,
			UpdatedAt:       now,
		}
		if err := uow.SubscriptionRepository().CreateSubscription(ctx, sub); err != nil {
			return nil, err
		}
	} else {
		sub, err = uow.SubscriptionRepository().FindSubscriptionForUpdate(ctx, sub.Id)
		if err != nil {
			return nil, err
		}
		// the renewed cycle settles at the price paid for it
		sub.PlanId = plan.Id
		sub.PlanPrice = plan.Price
		sub.CreditsPerMonth = plan.CreditsPerMonth
		if err := s.ledger.Reset(ctx, uow, sub, plan.CreditsPerMonth, endDate); err != nil {
			return nil, err
		}
	}

	paidAt := confirmation.PaidAt
	if paidAt.IsZero() {
		paidAt = now
	}
	payment := &entity.Payment{
		Id:             uuid.New(),
		UserId:         confirmation.UserId,
		SubscriptionId: sub.Id,
		PlanId:         plan.Id,
		Amount:         confirmation.Amount,
		Status:         entity.PaymentStatusCompleted,
		PaymentMethod:  confirmation.PaymentMethod,
		ExternalId:     confirmation.ExternalId,
		PaidAt:         paidAt,
		CreatedAt:      now,
	}
	if err := uow.PaymentRepository().Create(ctx, payment); err != nil {
		return nil, err
	}

	if err := uow.FinancialLogRepository().Append(ctx, &entity.FinancialLog{
		Id:          uuid.New(),
		Type:        entity.FinancialLogSubscriptionPayment,
		Amount:      confirmation.Amount,
		Description: fmt.Sprintf("Subscription payment for plan %s", plan.Name),
		ReferenceId: &payment.Id,
		Metadata: map[string]interface{}{
			"user_id":         confirmation.UserId.String(),
			"subscription_id": sub.Id.String(),
			"external_id":     confirmation.ExternalId,
		},
		CreatedAt: now,
	}); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("ACTIVATION", "Subscription activated", map[string]interface{}{
		"subscription_id": sub.Id,
		"user_id":         sub.UserId,
		"credits":         sub.CurrentCredits,
		"end_date":        sub.EndDate,
	})
	s.publisher.PublishSubscriptionActivated(ctx, sub, confirmation.ExternalId)
	return sub, nil
}
