package contract

import (
	"context"
	"time"

	"cutclub-be/internal/entity"

	"github.com/google/uuid"
)

type WithdrawRepository interface {
	Create(ctx context.Context, request *entity.WithdrawRequest) error
	Update(ctx context.Context, request *entity.WithdrawRequest) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.WithdrawRequest, error)
	ListBySalon(ctx context.Context, salonId uuid.UUID) ([]*entity.WithdrawRequest, error)
	ListAll(ctx context.Context, status entity.WithdrawStatus) ([]*entity.WithdrawRequest, error)
	// FindLatestCycle returns the newest non-rejected request of the salon
	FindLatestCycle(ctx context.Context, salonId uuid.UUID) (*entity.WithdrawRequest, error)
}

type FinancialLogRepository interface {
	Append(ctx context.Context, log *entity.FinancialLog) error
	List(ctx context.Context, from, to time.Time) ([]*entity.FinancialLog, error)
}

type PaymentRepository interface {
	Create(ctx context.Context, payment *entity.Payment) error
	FindByExternalId(ctx context.Context, externalId string) (*entity.Payment, error)
}
