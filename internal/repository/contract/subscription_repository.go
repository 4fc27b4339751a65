package contract

import (
	"context"

	"cutclub-be/internal/entity"

	"github.com/google/uuid"
)

type SubscriptionRepository interface {
	// Plans
	CreatePlan(ctx context.Context, plan *entity.Plan) error
	UpdatePlan(ctx context.Context, plan *entity.Plan) error
	FindPlanById(ctx context.Context, id uuid.UUID) (*entity.Plan, error)
	FindAllPlans(ctx context.Context, activeOnly bool) ([]*entity.Plan, error)
	CountSubscriptionsByPlan(ctx context.Context, planId uuid.UUID) (int64, error)

	// Subscriptions
	CreateSubscription(ctx context.Context, subscription *entity.Subscription) error
	UpdateSubscription(ctx context.Context, subscription *entity.Subscription) error
	FindSubscriptionById(ctx context.Context, id uuid.UUID) (*entity.Subscription, error)
	// FindSubscriptionForUpdate takes a row lock held until the surrounding transaction ends
	FindSubscriptionForUpdate(ctx context.Context, id uuid.UUID) (*entity.Subscription, error)
	FindActiveSubscriptionByUser(ctx context.Context, userId uuid.UUID) (*entity.Subscription, error)
	FindLatestSubscriptionByUser(ctx context.Context, userId uuid.UUID) (*entity.Subscription, error)
	FindSubscriptionsBySalon(ctx context.Context, salonId uuid.UUID) ([]*entity.Subscription, error)

	// DecrementCredit subtracts one credit only while current_credits > 0.
	// Returns entity.ErrInsufficientCredit without touching the row otherwise.
	DecrementCredit(ctx context.Context, id uuid.UUID) error
}
