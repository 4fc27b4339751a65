package contract

import (
	"context"
	"time"

	"cutclub-be/internal/entity"

	"github.com/google/uuid"
)

type RedemptionCodeRepository interface {
	Create(ctx context.Context, code *entity.RedemptionCode) error
	// FindLiveByCode returns unused, unexpired codes with this value, newest first, locked for update
	FindLiveByCode(ctx context.Context, code string, now time.Time) ([]*entity.RedemptionCode, error)
	FindLatestLiveBySubscription(ctx context.Context, subscriptionId uuid.UUID, now time.Time) (*entity.RedemptionCode, error)
	// MarkUsed flips is_used only if it is still false; a lost race yields entity.ErrCodeNotFound
	MarkUsed(ctx context.Context, id uuid.UUID, usedAt time.Time) error
	CountBySubscription(ctx context.Context, subscriptionId uuid.UUID) (int64, error)
}
