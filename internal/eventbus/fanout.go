package eventbus

import (
	"context"

	"cutclub-be/internal/entity"

	"github.com/google/uuid"
)

// Fanout delivers every event to each wrapped publisher in order
type Fanout []Publisher

func (f Fanout) PublishHaircutRedeemed(ctx context.Context, record *entity.SettlementRecord, subscriberId uuid.UUID) {
	for _, p := range f {
		p.PublishHaircutRedeemed(ctx, record, subscriberId)
	}
}

func (f Fanout) PublishSubscriptionActivated(ctx context.Context, subscription *entity.Subscription, externalId string) {
	for _, p := range f {
		p.PublishSubscriptionActivated(ctx, subscription, externalId)
	}
}

func (f Fanout) PublishSubscriptionCancelled(ctx context.Context, subscription *entity.Subscription) {
	for _, p := range f {
		p.PublishSubscriptionCancelled(ctx, subscription)
	}
}

func (f Fanout) PublishWithdrawalRequested(ctx context.Context, request *entity.WithdrawRequest) {
	for _, p := range f {
		p.PublishWithdrawalRequested(ctx, request)
	}
}

func (f Fanout) PublishWithdrawalUpdated(ctx context.Context, request *entity.WithdrawRequest) {
	for _, p := range f {
		p.PublishWithdrawalUpdated(ctx, request)
	}
}

func (f Fanout) PublishSalonUpdated(ctx context.Context, salon *entity.Salon) {
	for _, p := range f {
		p.PublishSalonUpdated(ctx, salon)
	}
}
