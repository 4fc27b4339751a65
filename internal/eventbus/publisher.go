package eventbus

import (
	"context"
	"time"

	"cutclub-be/internal/entity"
	"cutclub-be/internal/pkg/logger"
	pkgEvents "cutclub-be/pkg/events"
	pktNats "cutclub-be/pkg/nats"

	"github.com/google/uuid"
)

// Publisher abstracts domain event publishing. Implementations are best effort:
// failures are logged and never returned to the caller.
type Publisher interface {
	PublishHaircutRedeemed(ctx context.Context, record *entity.SettlementRecord, subscriberId uuid.UUID)
	PublishSubscriptionActivated(ctx context.Context, subscription *entity.Subscription, externalId string)
	PublishSubscriptionCancelled(ctx context.Context, subscription *entity.Subscription)
	PublishWithdrawalRequested(ctx context.Context, request *entity.WithdrawRequest)
	PublishWithdrawalUpdated(ctx context.Context, request *entity.WithdrawRequest)
	PublishSalonUpdated(ctx context.Context, salon *entity.Salon)
}

// NatsPublisher implements Publisher on top of JetStream
type NatsPublisher struct {
	publisher *pktNats.Publisher
	logger    logger.ILogger
}

// NewNatsPublisher accepts a nil publisher, in which case every call is a no-op
func NewNatsPublisher(publisher *pktNats.Publisher, logger logger.ILogger) *NatsPublisher {
	return &NatsPublisher{
		publisher: publisher,
		logger:    logger,
	}
}

func (p *NatsPublisher) publish(ctx context.Context, eventType string, data map[string]interface{}) {
	if p.publisher == nil {
		return
	}

	evt := pkgEvents.BaseEvent{
		Type:       eventType,
		Data:       data,
		OccurredAt: time.Now(),
	}

	if err := p.publisher.Publish(ctx, evt); err != nil {
		p.logger.Error("EVENTS", "Failed to publish "+eventType+" event", map[string]interface{}{"error": err.Error()})
	}
}

func (p *NatsPublisher) PublishHaircutRedeemed(ctx context.Context, record *entity.SettlementRecord, subscriberId uuid.UUID) {
	p.publish(ctx, pkgEvents.TypeHaircutRedeemed, map[string]interface{}{
		"settlement_id":      record.Id,
		"subscription_id":    record.SubscriptionId,
		"subscriber_id":      subscriberId,
		"salon_id":           record.SalonId,
		"validated_by":       record.ValidatedBy,
		"code":               record.CodeUsed,
		"price_per_haircut":  record.PricePerHaircut.StringFixed(2),
		"amount_to_salon":    record.AmountToSalon.StringFixed(2),
		"amount_to_platform": record.AmountToPlatform.StringFixed(2),
		"entity_type":        "haircut_history",
		"entity_id":          record.Id.String(),
	})
}

func (p *NatsPublisher) PublishSubscriptionActivated(ctx context.Context, subscription *entity.Subscription, externalId string) {
	p.publish(ctx, pkgEvents.TypeSubscriptionActivated, map[string]interface{}{
		"subscription_id": subscription.Id,
		"user_id":         subscription.UserId,
		"plan_id":         subscription.PlanId,
		"credits":         subscription.CurrentCredits,
		"end_date":        subscription.EndDate,
		"external_id":     externalId,
		"entity_type":     "subscription",
		"entity_id":       subscription.Id.String(),
	})
}

func (p *NatsPublisher) PublishSubscriptionCancelled(ctx context.Context, subscription *entity.Subscription) {
	p.publish(ctx, pkgEvents.TypeSubscriptionCancelled, map[string]interface{}{
		"subscription_id": subscription.Id,
		"user_id":         subscription.UserId,
		"entity_type":     "subscription",
		"entity_id":       subscription.Id.String(),
	})
}

func withdrawalData(request *entity.WithdrawRequest) map[string]interface{} {
	return map[string]interface{}{
		"withdraw_id":    request.Id,
		"salon_id":       request.SalonId,
		"amount":         request.Amount.StringFixed(2),
		"haircuts_count": request.HaircutsCount,
		"status":         string(request.Status),
		"cycle_start":    request.CycleStart,
		"cycle_end":      request.CycleEnd,
		"entity_type":    "withdraw_request",
		"entity_id":      request.Id.String(),
	}
}

func (p *NatsPublisher) PublishWithdrawalRequested(ctx context.Context, request *entity.WithdrawRequest) {
	p.publish(ctx, pkgEvents.TypeWithdrawalRequested, withdrawalData(request))
}

func (p *NatsPublisher) PublishWithdrawalUpdated(ctx context.Context, request *entity.WithdrawRequest) {
	p.publish(ctx, pkgEvents.TypeWithdrawalUpdated, withdrawalData(request))
}

func (p *NatsPublisher) PublishSalonUpdated(ctx context.Context, salon *entity.Salon) {
	p.publish(ctx, pkgEvents.TypeSalonUpdated, map[string]interface{}{
		"salon_id":        salon.Id,
		"is_approved":     salon.IsApproved,
		"is_active":       salon.IsActive,
		"commission_rate": salon.CommissionRate.String(),
		"entity_type":     "salon",
		"entity_id":       salon.Id.String(),
	})
}
