package memory

import (
	"context"
	"fmt"
	"time"

	"cutclub-be/internal/entity"

	"github.com/google/uuid"
)

type subscriptionRepository struct {
	uow *UnitOfWorkImpl
}

func (r *subscriptionRepository) CreatePlan(ctx context.Context, plan *entity.Plan) error {
	return r.uow.write(func(d *dataset) error {
		ensureId(&plan.Id)
		ensureTime(&plan.CreatedAt)
		d.plans = append(d.plans, *plan)
		return nil
	})
}

func (r *subscriptionRepository) UpdatePlan(ctx context.Context, plan *entity.Plan) error {
	return r.uow.write(func(d *dataset) error {
		for i := range d.plans {
			if d.plans[i].Id == plan.Id {
				d.plans[i] = *plan
				return nil
			}
		}
		return entity.ErrNotFound
	})
}

func (r *subscriptionRepository) FindPlanById(ctx context.Context, id uuid.UUID) (*entity.Plan, error) {
	var found *entity.Plan
	r.uow.read(func(d *dataset) {
		for _, p := range d.plans {
			if p.Id == id {
				p := p
				found = &p
				return
			}
		}
	})
	return found, nil
}

func (r *subscriptionRepository) FindAllPlans(ctx context.Context, activeOnly bool) ([]*entity.Plan, error) {
	var plans []*entity.Plan
	r.uow.read(func(d *dataset) {
		for _, p := range d.plans {
			if activeOnly && !p.IsActive {
				continue
			}
			p := p
			plans = append(plans, &p)
		}
	})
	sortPlansByPrice(plans)
	return plans, nil
}

func (r *subscriptionRepository) CountSubscriptionsByPlan(ctx context.Context, planId uuid.UUID) (int64, error) {
	var count int64
	r.uow.read(func(d *dataset) {
		for _, s := range d.subscriptions {
			if s.PlanId == planId {
				count++
			}
		}
	})
	return count, nil
}

func (r *subscriptionRepository) CreateSubscription(ctx context.Context, subscription *entity.Subscription) error {
	return r.uow.write(func(d *dataset) error {
		if subscription.Status == entity.SubscriptionStatusActive {
			for _, s := range d.subscriptions {
				if s.UserId == subscription.UserId && s.Status == entity.SubscriptionStatusActive {
					return fmt.Errorf("%w: %w", entity.ErrConcurrentUpdate, errDuplicate("subscriptions.uq_subscriptions_active_user"))
				}
			}
		}
		ensureId(&subscription.Id)
		ensureTime(&subscription.CreatedAt)
		if subscription.UpdatedAt.IsZero() {
			subscription.UpdatedAt = subscription.CreatedAt
		}
		d.subscriptions = append(d.subscriptions, copySubscription(*subscription))
		return nil
	})
}

func (r *subscriptionRepository) UpdateSubscription(ctx context.Context, subscription *entity.Subscription) error {
	return r.uow.write(func(d *dataset) error {
		for i := range d.subscriptions {
			if d.subscriptions[i].Id == subscription.Id {
				d.subscriptions[i] = copySubscription(*subscription)
				return nil
			}
		}
		return entity.ErrNotFound
	})
}

func (r *subscriptionRepository) findOne(match func(s *entity.Subscription) bool) *entity.Subscription {
	var found *entity.Subscription
	r.uow.read(func(d *dataset) {
		for _, i := range newestFirst(len(d.subscriptions), func(i int) time.Time { return d.subscriptions[i].CreatedAt }) {
			if match(&d.subscriptions[i]) {
				s := copySubscription(d.subscriptions[i])
				found = &s
				return
			}
		}
	})
	return found
}

func (r *subscriptionRepository) FindSubscriptionById(ctx context.Context, id uuid.UUID) (*entity.Subscription, error) {
	return r.findOne(func(s *entity.Subscription) bool { return s.Id == id }), nil
}

// FindSubscriptionForUpdate relies on the transaction holding the store lock
func (r *subscriptionRepository) FindSubscriptionForUpdate(ctx context.Context, id uuid.UUID) (*entity.Subscription, error) {
	return r.FindSubscriptionById(ctx, id)
}

func (r *subscriptionRepository) FindActiveSubscriptionByUser(ctx context.Context, userId uuid.UUID) (*entity.Subscription, error) {
	return r.findOne(func(s *entity.Subscription) bool {
		return s.UserId == userId && s.Status == entity.SubscriptionStatusActive
	}), nil
}

func (r *subscriptionRepository) FindLatestSubscriptionByUser(ctx context.Context, userId uuid.UUID) (*entity.Subscription, error) {
	return r.findOne(func(s *entity.Subscription) bool { return s.UserId == userId }), nil
}

func (r *subscriptionRepository) FindSubscriptionsBySalon(ctx context.Context, salonId uuid.UUID) ([]*entity.Subscription, error) {
	var subs []*entity.Subscription
	r.uow.read(func(d *dataset) {
		for _, i := range newestFirst(len(d.subscriptions), func(i int) time.Time { return d.subscriptions[i].CreatedAt }) {
			if d.subscriptions[i].IsLinkedTo(salonId) {
				s := copySubscription(d.subscriptions[i])
				subs = append(subs, &s)
			}
		}
	})
	return subs, nil
}

func (r *subscriptionRepository) DecrementCredit(ctx context.Context, id uuid.UUID) error {
	return r.uow.write(func(d *dataset) error {
		for i := range d.subscriptions {
			if d.subscriptions[i].Id != id {
				continue
			}
			if d.subscriptions[i].CurrentCredits <= 0 {
				return entity.ErrInsufficientCredit
			}
			d.subscriptions[i].CurrentCredits--
			return nil
		}
		return entity.ErrInsufficientCredit
	})
}
