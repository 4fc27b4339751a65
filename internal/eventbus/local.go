package eventbus

import (
	"context"
	"encoding/json"
	"time"

	"cutclub-be/internal/entity"
	"cutclub-be/internal/pkg/logger"

	"github.com/ThreeDotsLabs/watermill"
	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/google/uuid"
)

// In-process watermill topics
const (
	TopicPaymentConfirmed = "payment.confirmed"
	TopicHaircutRedeemed  = "haircut.redeemed"
)

// PaymentConfirmedMessage is what the payment collaborator hands over once money has settled
type PaymentConfirmedMessage struct {
	UserId        uuid.UUID `json:"user_id"`
	PlanId        uuid.UUID `json:"plan_id"`
	Amount        string    `json:"amount"`
	ExternalId    string    `json:"external_id"`
	PaymentMethod string    `json:"payment_method"`
	PaidAt        time.Time `json:"paid_at"`
}

type HaircutRedeemedMessage struct {
	SettlementId    uuid.UUID `json:"settlement_id"`
	SubscriptionId  uuid.UUID `json:"subscription_id"`
	SubscriberId    uuid.UUID `json:"subscriber_id"`
	SalonId         uuid.UUID `json:"salon_id"`
	Code            string    `json:"code"`
	PricePerHaircut string    `json:"price_per_haircut"`
	RedeemedAt      time.Time `json:"redeemed_at"`
}

func NewGoChannel() *gochannel.GoChannel {
	return gochannel.NewGoChannel(
		gochannel.Config{OutputChannelBuffer: 256},
		watermill.NewStdLogger(false, false),
	)
}

// LocalBus pushes JSON messages onto in-process topics
type LocalBus struct {
	pubSub *gochannel.GoChannel
}

func NewLocalBus(pubSub *gochannel.GoChannel) *LocalBus {
	return &LocalBus{pubSub: pubSub}
}

func (b *LocalBus) Send(topic string, payload interface{}) error {
	body, err := json.Marshal(payload)
	if err != nil {
		return err
	}
	return b.pubSub.Publish(topic, message.NewMessage(watermill.NewUUID(), body))
}

// LocalPublisher forwards redemptions to the receipt topic; other events have no local consumer
type LocalPublisher struct {
	bus    *LocalBus
	logger logger.ILogger
}

func NewLocalPublisher(bus *LocalBus, logger logger.ILogger) *LocalPublisher {
	return &LocalPublisher{bus: bus, logger: logger}
}

func (p *LocalPublisher) PublishHaircutRedeemed(ctx context.Context, record *entity.SettlementRecord, subscriberId uuid.UUID) {
	msg := HaircutRedeemedMessage{
		SettlementId:    record.Id,
		SubscriptionId:  record.SubscriptionId,
		SubscriberId:    subscriberId,
		SalonId:         record.SalonId,
		Code:            record.CodeUsed,
		PricePerHaircut: record.PricePerHaircut.StringFixed(2),
		RedeemedAt:      record.CreatedAt,
	}
	if err := p.bus.Send(TopicHaircutRedeemed, msg); err != nil {
		p.logger.Error("EVENTS", "Failed to enqueue receipt", map[string]interface{}{"error": err.Error()})
	}
}

func (p *LocalPublisher) PublishSubscriptionActivated(ctx context.Context, subscription *entity.Subscription, externalId string) {
}

func (p *LocalPublisher) PublishSubscriptionCancelled(ctx context.Context, subscription *entity.Subscription) {
}

func (p *LocalPublisher) PublishWithdrawalRequested(ctx context.Context, request *entity.WithdrawRequest) {
}

func (p *LocalPublisher) PublishWithdrawalUpdated(ctx context.Context, request *entity.WithdrawRequest) {
}

func (p *LocalPublisher) PublishSalonUpdated(ctx context.Context, salon *entity.Salon) {}
