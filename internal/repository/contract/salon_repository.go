package contract

import (
	"context"

	"cutclub-be/internal/entity"

	"github.com/google/uuid"
)

type SalonFilter struct {
	ApprovedOnly bool
	ActiveOnly   bool
}

type SalonRepository interface {
	Create(ctx context.Context, salon *entity.Salon) error
	Update(ctx context.Context, salon *entity.Salon) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Salon, error)
	// FindByIdForUpdate locks the salon row until the surrounding transaction ends
	FindByIdForUpdate(ctx context.Context, id uuid.UUID) (*entity.Salon, error)
	FindByOwner(ctx context.Context, ownerId uuid.UUID) (*entity.Salon, error)
	FindAll(ctx context.Context, filter SalonFilter) ([]*entity.Salon, error)
}
