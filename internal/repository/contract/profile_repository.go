package contract

import (
	"context"

	"cutclub-be/internal/entity"

	"github.com/google/uuid"
)

type ProfileRepository interface {
	Create(ctx context.Context, profile *entity.Profile) error
	FindById(ctx context.Context, id uuid.UUID) (*entity.Profile, error)
}
