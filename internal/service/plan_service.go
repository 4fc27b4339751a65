package service

import (
	"context"
	"fmt"
	"time"

	"cutclub-be/internal/dto"
	"cutclub-be/internal/entity"
	"cutclub-be/internal/pkg/clock"
	"cutclub-be/internal/pkg/logger"
	"cutclub-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/patrickmn/go-cache"
)

const activePlansKey = "plans:active"

type PlanService interface {
	ListActive(ctx context.Context) ([]*entity.Plan, error)
	ListAll(ctx context.Context) ([]*entity.Plan, error)
	Create(ctx context.Context, req *dto.PlanRequest) (*entity.Plan, error)
	// Update rejects price or quota changes once any subscription references the plan
	Update(ctx context.Context, planId uuid.UUID, req *dto.PlanRequest) (*entity.Plan, error)
}

type planService struct {
	uowFactory unitofwork.RepositoryFactory
	clock      clock.Clock
	cache      *cache.Cache
	logger     logger.ILogger
}

func NewPlanService(uowFactory unitofwork.RepositoryFactory, clk clock.Clock, logger logger.ILogger) PlanService {
	return &planService{
		uowFactory: uowFactory,
		clock:      clk,
		cache:      cache.New(5*time.Minute, 10*time.Minute),
		logger:     logger,
	}
}

func (s *planService) ListActive(ctx context.Context) ([]*entity.Plan, error) {
	if x, found := s.cache.Get(activePlansKey); found {
		return x.([]*entity.Plan), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	plans, err := uow.SubscriptionRepository().FindAllPlans(ctx, true)
	if err != nil {
		return nil, err
	}
	s.cache.Set(activePlansKey, plans, cache.DefaultExpiration)
	return plans, nil
}

func (s *planService) ListAll(ctx context.Context) ([]*entity.Plan, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.SubscriptionRepository().FindAllPlans(ctx, false)
}

func validatePlan(req *dto.PlanRequest) error {
	if req.CreditsPerMonth <= 0 {
		return fmt.Errorf("credits per month must be positive: %w", entity.ErrInvalidPlan)
	}
	if req.Price.IsNegative() {
		return fmt.Errorf("price must not be negative: %w", entity.ErrInvalidPlan)
	}
	if req.DurationDays < 0 {
		return fmt.Errorf("duration must not be negative: %w", entity.ErrInvalidPlan)
	}
	return nil
}

func (s *planService) Create(ctx context.Context, req *dto.PlanRequest) (*entity.Plan, error) {
	if err := validatePlan(req); err != nil {
		return nil, err
	}

	plan := &entity.Plan{
		Id:              uuid.New(),
		Name:            req.Name,
		Description:     req.Description,
		Price:           req.Price.Round(2),
		CreditsPerMonth: req.CreditsPerMonth,
		DurationDays:    req.DurationDays,
		IsActive:        req.IsActive == nil || *req.IsActive,
		CreatedAt:       s.clock.Now(),
	}
	if plan.DurationDays == 0 {
		plan.DurationDays = entity.DefaultPlanDurationDays
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.SubscriptionRepository().CreatePlan(ctx, plan); err != nil {
		return nil, err
	}
	s.cache.Delete(activePlansKey)

	s.logger.Info("PLAN", "Plan created", map[string]interface{}{"plan_id": plan.Id, "name": plan.Name})
	return plan, nil
}

func (s *planService) Update(ctx context.Context, planId uuid.UUID, req *dto.PlanRequest) (*entity.Plan, error) {
	if err := validatePlan(req); err != nil {
		return nil, err
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	repo := uow.SubscriptionRepository()
	plan, err := repo.FindPlanById(ctx, planId)
	if err != nil {
		return nil, err
	}
	if plan == nil {
		return nil, fmt.Errorf("plan %s: %w", planId, entity.ErrNotFound)
	}

	price := req.Price.Round(2)
	if !price.Equal(plan.Price) || req.CreditsPerMonth != plan.CreditsPerMonth {
		count, err := repo.CountSubscriptionsByPlan(ctx, planId)
		if err != nil {
			return nil, err
		}
		if count > 0 {
			return nil, fmt.Errorf("plan %s has %d subscriptions: %w", planId, count, entity.ErrPlanInUse)
		}
	}

	plan.Name = req.Name
	plan.Description = req.Description
	plan.Price = price
	plan.CreditsPerMonth = req.CreditsPerMonth
	if req.DurationDays > 0 {
		plan.DurationDays = req.DurationDays
	}
	if req.IsActive != nil {
		plan.IsActive = *req.IsActive
	}
	if err := repo.UpdatePlan(ctx, plan); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}
	s.cache.Delete(activePlansKey)

	s.logger.Info("PLAN", "Plan updated", map[string]interface{}{"plan_id": plan.Id})
	return plan, nil
}
