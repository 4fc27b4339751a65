package service

import (
	"context"
	"encoding/json"
	"errors"
	"time"

	"cutclub-be/internal/entity"
	"cutclub-be/internal/eventbus"
	"cutclub-be/internal/pkg/logger"
	"cutclub-be/internal/pkg/mailer"
	"cutclub-be/internal/repository/unitofwork"
	"cutclub-be/pkg/events"

	"github.com/ThreeDotsLabs/watermill/message"
	"github.com/ThreeDotsLabs/watermill/message/router/middleware"
	"github.com/ThreeDotsLabs/watermill/pubsub/gochannel"
	"github.com/shopspring/decimal"
)

type IConsumerService interface {
	Consume(ctx context.Context) error
}

// activationConsumer applies payment confirmations queued on the payment.confirmed topic
type activationConsumer struct {
	pubSub     *gochannel.GoChannel
	activation ActivationService
	retry      middleware.Retry
	logger     logger.ILogger
}

type ActivationConsumerOption func(*activationConsumer)

// WithActivationRetry replaces the backoff applied to transient activation failures
func WithActivationRetry(retry middleware.Retry) ActivationConsumerOption {
	return func(c *activationConsumer) {
		c.retry = retry
	}
}

func NewActivationConsumer(pubSub *gochannel.GoChannel, activation ActivationService, logger logger.ILogger, opts ...ActivationConsumerOption) IConsumerService {
	c := &activationConsumer{
		pubSub:     pubSub,
		activation: activation,
		retry: middleware.Retry{
			MaxRetries:      5,
			InitialInterval: 500 * time.Millisecond,
			MaxInterval:     30 * time.Second,
			Multiplier:      2,
		},
		logger: logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c
}

func (c *activationConsumer) Consume(ctx context.Context) error {
	messages, err := c.pubSub.Subscribe(ctx, eventbus.TopicPaymentConfirmed)
	if err != nil {
		return err
	}

	retry := c.retry
	retry.OnRetryHook = func(retryNum int, delay time.Duration) {
		c.logger.Warn("ACTIVATION", "Retrying confirmation", map[string]interface{}{
			"attempt": retryNum,
			"delay":   delay.String(),
		})
	}
	handler := retry.Middleware(func(msg *message.Message) ([]*message.Message, error) {
		return nil, c.processMessage(ctx, msg)
	})

	go func() {
		for msg := range messages {
			if _, err := handler(msg); err != nil {
				// retries exhausted; redelivery starts a new backoff round
				c.logger.Error("ACTIVATION", "Confirmation requeued", map[string]interface{}{"error": err.Error()})
				msg.Nack()
				continue
			}
			msg.Ack()
		}
	}()

	return nil
}

// processMessage returns an error only for failures worth retrying
func (c *activationConsumer) processMessage(ctx context.Context, msg *message.Message) error {
	var payload eventbus.PaymentConfirmedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.logger.Error("ACTIVATION", "Failed to unmarshal confirmation", map[string]interface{}{"error": err.Error()})
		return nil
	}

	amount, err := decimal.NewFromString(payload.Amount)
	if err != nil {
		c.logger.Error("ACTIVATION", "Invalid amount in confirmation", map[string]interface{}{
			"external_id": payload.ExternalId,
			"amount":      payload.Amount,
		})
		return nil
	}

	_, err = c.activation.Activate(ctx, PaymentConfirmation{
		UserId:        payload.UserId,
		PlanId:        payload.PlanId,
		Amount:        amount,
		ExternalId:    payload.ExternalId,
		PaymentMethod: payload.PaymentMethod,
		PaidAt:        payload.PaidAt,
	})
	if err == nil {
		return nil
	}

	permanent := errors.Is(err, entity.ErrNotFound) || errors.Is(err, entity.ErrInvalidPlan) || errors.Is(err, entity.ErrInvalidInput)
	c.logger.Error("ACTIVATION", "Activation failed", map[string]interface{}{
		"external_id": payload.ExternalId,
		"error":       err.Error(),
		"permanent":   permanent,
	})
	if permanent {
		return nil
	}
	return err
}

// receiptConsumer emails the subscriber after each settled haircut
type receiptConsumer struct {
	pubSub     *gochannel.GoChannel
	uowFactory unitofwork.RepositoryFactory
	mailer     mailer.IEmailService
	logger     logger.ILogger
}

func NewReceiptConsumer(pubSub *gochannel.GoChannel, uowFactory unitofwork.RepositoryFactory, mailer mailer.IEmailService, logger logger.ILogger) IConsumerService {
	return &receiptConsumer{
		pubSub:     pubSub,
		uowFactory: uowFactory,
		mailer:     mailer,
		logger:     logger,
	}
}

func (c *receiptConsumer) Consume(ctx context.Context) error {
	messages, err := c.pubSub.Subscribe(ctx, eventbus.TopicHaircutRedeemed)
	if err != nil {
		return err
	}

	go func() {
		for msg := range messages {
			c.processMessage(ctx, msg)
			// receipts are best effort, a failed send is logged and dropped
			msg.Ack()
		}
	}()

	return nil
}

func (c *receiptConsumer) processMessage(ctx context.Context, msg *message.Message) {
	var payload eventbus.HaircutRedeemedMessage
	if err := json.Unmarshal(msg.Payload, &payload); err != nil {
		c.logger.Error("RECEIPT", "Failed to unmarshal redemption", map[string]interface{}{"error": err.Error()})
		return
	}

	uow := c.uowFactory.NewUnitOfWork(ctx)

	profile, err := uow.ProfileRepository().FindById(ctx, payload.SubscriberId)
	if err != nil || profile == nil || profile.Email == "" {
		c.logger.Warn("RECEIPT", "No contact for subscriber", map[string]interface{}{"subscriber_id": payload.SubscriberId})
		return
	}

	salonName := "your salon"
	if salon, err := uow.SalonRepository().FindById(ctx, payload.SalonId); err == nil && salon != nil {
		salonName = salon.Name
	}

	creditsLeft := 0
	if sub, err := uow.SubscriptionRepository().FindSubscriptionById(ctx, payload.SubscriptionId); err == nil && sub != nil {
		creditsLeft = sub.CurrentCredits
	}

	err = c.mailer.SendRedemptionReceipt(mailer.Receipt{
		ToEmail:         profile.Email,
		FullName:        profile.FullName,
		SalonName:       salonName,
		Code:            payload.Code,
		PricePerHaircut: payload.PricePerHaircut,
		CreditsLeft:     creditsLeft,
		RedeemedAt:      payload.RedeemedAt,
	})
	if err != nil {
		c.logger.Error("RECEIPT", "Failed to send receipt", map[string]interface{}{"error": err.Error()})
		return
	}
	c.logger.Info("RECEIPT", "Receipt sent", map[string]interface{}{"settlement_id": payload.SettlementId})
}

// PaymentBridge moves PAYMENT_CONFIRMED events from NATS onto the local activation topic
type PaymentBridge struct {
	bus    *eventbus.LocalBus
	logger logger.ILogger
}

func NewPaymentBridge(bus *eventbus.LocalBus, logger logger.ILogger) *PaymentBridge {
	return &PaymentBridge{bus: bus, logger: logger}
}

// Handle matches pkg/nats EventHandler
func (b *PaymentBridge) Handle(ctx context.Context, event events.Event) error {
	raw, err := json.Marshal(event.Payload())
	if err != nil {
		return err
	}
	var payload eventbus.PaymentConfirmedMessage
	if err := json.Unmarshal(raw, &payload); err != nil {
		b.logger.Error("ACTIVATION", "Malformed PAYMENT_CONFIRMED event", map[string]interface{}{"error": err.Error()})
		return nil
	}
	return b.bus.Send(eventbus.TopicPaymentConfirmed, payload)
}
