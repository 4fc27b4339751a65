package contract

import (
	"context"
	"time"

	"cutclub-be/internal/entity"

	"github.com/google/uuid"
)

// SettlementRepository is append-only: there is no update or delete on purpose
type SettlementRepository interface {
	Append(ctx context.Context, record *entity.SettlementRecord) error
	ListBySalon(ctx context.Context, salonId uuid.UUID, from, to time.Time) ([]*entity.SettlementRecord, error)
	ListBySubscription(ctx context.Context, subscriptionId uuid.UUID) ([]*entity.SettlementRecord, error)
	ListAll(ctx context.Context, from, to time.Time) ([]*entity.SettlementRecord, error)
	SumBySalon(ctx context.Context, salonId uuid.UUID, from, to time.Time) (*entity.SettlementTotals, error)
	FirstBySalon(ctx context.Context, salonId uuid.UUID) (*entity.SettlementRecord, error)
}
