package implementation

import (
	"context"
	"errors"
	"fmt"

	"cutclub-be/internal/entity"
	"cutclub-be/internal/mapper"
	"cutclub-be/internal/model"
	"cutclub-be/internal/repository/contract"
	"cutclub-be/internal/repository/scope"
	"cutclub-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

type SubscriptionRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SubscriptionMapper
}

func NewSubscriptionRepository(db *gorm.DB) contract.SubscriptionRepository {
	return &SubscriptionRepositoryImpl{
		db:     db,
		mapper: mapper.NewSubscriptionMapper(),
	}
}

func applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

// Plan Implementation

func (r *SubscriptionRepositoryImpl) CreatePlan(ctx context.Context, plan *entity.Plan) error {
	m := r.mapper.PlanToModel(plan)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*plan = *r.mapper.PlanToEntity(m)
	return nil
}

func (r *SubscriptionRepositoryImpl) UpdatePlan(ctx context.Context, plan *entity.Plan) error {
	m := r.mapper.PlanToModel(plan)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*plan = *r.mapper.PlanToEntity(m)
	return nil
}

func (r *SubscriptionRepositoryImpl) FindPlanById(ctx context.Context, id uuid.UUID) (*entity.Plan, error) {
	var m model.Plan
	if err := r.db.WithContext(ctx).Scopes(specification.ByID{ID: id}.Apply).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.PlanToEntity(&m), nil
}

func (r *SubscriptionRepositoryImpl) FindAllPlans(ctx context.Context, activeOnly bool) ([]*entity.Plan, error) {
	var models []*model.Plan
	query := r.db.WithContext(ctx).Order("price ASC")
	if activeOnly {
		query = specification.Filter("is_active", true).Apply(query)
	}
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return lo.Map(models, func(m *model.Plan, _ int) *entity.Plan {
		return r.mapper.PlanToEntity(m)
	}), nil
}

func (r *SubscriptionRepositoryImpl) CountSubscriptionsByPlan(ctx context.Context, planId uuid.UUID) (int64, error) {
	var count int64
	err := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("plan_id = ?", planId).
		Count(&count).Error
	return count, err
}

// Subscription Implementation

func (r *SubscriptionRepositoryImpl) CreateSubscription(ctx context.Context, subscription *entity.Subscription) error {
	m := r.mapper.SubscriptionToModel(subscription)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("active subscription of user %s: %w", subscription.UserId, entity.ErrConcurrentUpdate)
		}
		return err
	}
	*subscription = *r.mapper.SubscriptionToEntity(m)
	return nil
}

func (r *SubscriptionRepositoryImpl) UpdateSubscription(ctx context.Context, subscription *entity.Subscription) error {
	m := r.mapper.SubscriptionToModel(subscription)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*subscription = *r.mapper.SubscriptionToEntity(m)
	return nil
}

func (r *SubscriptionRepositoryImpl) findOneSubscription(ctx context.Context, specs ...specification.Specification) (*entity.Subscription, error) {
	var m model.Subscription
	query := applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SubscriptionToEntity(&m), nil
}

func (r *SubscriptionRepositoryImpl) FindSubscriptionById(ctx context.Context, id uuid.UUID) (*entity.Subscription, error) {
	return r.findOneSubscription(ctx, specification.ByID{ID: id})
}

func (r *SubscriptionRepositoryImpl) FindSubscriptionForUpdate(ctx context.Context, id uuid.UUID) (*entity.Subscription, error) {
	return r.findOneSubscription(ctx, specification.ByID{ID: id}, specification.ForUpdate{})
}

func (r *SubscriptionRepositoryImpl) FindActiveSubscriptionByUser(ctx context.Context, userId uuid.UUID) (*entity.Subscription, error) {
	return r.findOneSubscription(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.Filter("status", string(entity.SubscriptionStatusActive)),
		specification.OrderBy{Field: "created_at", Desc: true},
	)
}

func (r *SubscriptionRepositoryImpl) FindLatestSubscriptionByUser(ctx context.Context, userId uuid.UUID) (*entity.Subscription, error) {
	return r.findOneSubscription(ctx,
		specification.UserOwnedBy{UserID: userId},
		specification.OrderBy{Field: "created_at", Desc: true},
	)
}

func (r *SubscriptionRepositoryImpl) FindSubscriptionsBySalon(ctx context.Context, salonId uuid.UUID) ([]*entity.Subscription, error) {
	var models []*model.Subscription
	query := applySpecifications(r.db.WithContext(ctx), specification.BySalonID{SalonID: salonId})
	if err := query.Scopes(scope.OrderByCreatedDesc).Find(&models).Error; err != nil {
		return nil, err
	}
	return lo.Map(models, func(m *model.Subscription, _ int) *entity.Subscription {
		return r.mapper.SubscriptionToEntity(m)
	}), nil
}

func (r *SubscriptionRepositoryImpl) DecrementCredit(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Model(&model.Subscription{}).
		Where("id = ? AND current_credits > 0", id).
		UpdateColumns(map[string]interface{}{
			"current_credits": gorm.Expr("current_credits - 1"),
			"updated_at":      gorm.Expr("NOW()"),
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return entity.ErrInsufficientCredit
	}
	return nil
}
