package eventbus

import (
	"context"
	"sync"

	"cutclub-be/internal/entity"
	pkgEvents "cutclub-be/pkg/events"

	"github.com/google/uuid"
)

// Recorder keeps published event types in memory for assertions
type Recorder struct {
	mu     sync.Mutex
	events []string
}

func NewRecorder() *Recorder {
	return &Recorder{}
}

func (r *Recorder) add(eventType string) {
	r.mu.Lock()
	defer r.mu.Unlock()
	r.events = append(r.events, eventType)
}

func (r *Recorder) Events() []string {
	r.mu.Lock()
	defer r.mu.Unlock()
	return append([]string(nil), r.events...)
}

func (r *Recorder) PublishHaircutRedeemed(ctx context.Context, record *entity.SettlementRecord, subscriberId uuid.UUID) {
	r.add(pkgEvents.TypeHaircutRedeemed)
}

func (r *Recorder) PublishSubscriptionActivated(ctx context.Context, subscription *entity.Subscription, externalId string) {
	r.add(pkgEvents.TypeSubscriptionActivated)
}

func (r *Recorder) PublishSubscriptionCancelled(ctx context.Context, subscription *entity.Subscription) {
	r.add(pkgEvents.TypeSubscriptionCancelled)
}

func (r *Recorder) PublishWithdrawalRequested(ctx context.Context, request *entity.WithdrawRequest) {
	r.add(pkgEvents.TypeWithdrawalRequested)
}

func (r *Recorder) PublishWithdrawalUpdated(ctx context.Context, request *entity.WithdrawRequest) {
	r.add(pkgEvents.TypeWithdrawalUpdated)
}

func (r *Recorder) PublishSalonUpdated(ctx context.Context, salon *entity.Salon) {
	r.add(pkgEvents.TypeSalonUpdated)
}
