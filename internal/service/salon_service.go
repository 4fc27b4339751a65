package service

import (
	"context"
	"fmt"

	"cutclub-be/internal/dto"
	"cutclub-be/internal/entity"
	"cutclub-be/internal/eventbus"
	"cutclub-be/internal/pkg/clock"
	"cutclub-be/internal/pkg/logger"
	"cutclub-be/internal/repository/contract"
	"cutclub-be/internal/repository/unitofwork"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type SalonService interface {
	Register(ctx context.Context, ownerId uuid.UUID, req *dto.RegisterSalonRequest) (*entity.Salon, error)
	GetByOwner(ctx context.Context, ownerId uuid.UUID) (*entity.Salon, error)
	ListPublic(ctx context.Context) ([]*entity.Salon, error)

	// Admin
	ListAll(ctx context.Context) ([]*entity.Salon, error)
	SetApproval(ctx context.Context, salonId uuid.UUID, approved bool) (*entity.Salon, error)
	SetActive(ctx context.Context, salonId uuid.UUID, active bool) (*entity.Salon, error)
	SetCommissionRate(ctx context.Context, salonId uuid.UUID, rate decimal.Decimal) (*entity.Salon, error)
}

type salonService struct {
	uowFactory unitofwork.RepositoryFactory
	clock      clock.Clock
	publisher  eventbus.Publisher
	logger     logger.ILogger
}

func NewSalonService(
	uowFactory unitofwork.RepositoryFactory,
	clk clock.Clock,
	publisher eventbus.Publisher,
	logger logger.ILogger,
) SalonService {
	return &salonService{
		uowFactory: uowFactory,
		clock:      clk,
		publisher:  publisher,
		logger:     logger,
	}
}

// Register creates the owner's salon pending admin approval
func (s *salonService) Register(ctx context.Context, ownerId uuid.UUID, req *dto.RegisterSalonRequest) (*entity.Salon, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)

	existing, err := uow.SalonRepository().FindByOwner(ctx, ownerId)
	if err != nil {
		return nil, err
	}
	if existing != nil {
		return nil, fmt.Errorf("owner %s already has a salon: %w", ownerId, entity.ErrAlreadyRegistered)
	}

	now := s.clock.Now()
	salon := &entity.Salon{
		Id:             uuid.New(),
		OwnerId:        ownerId,
		Name:           req.Name,
		Cnpj:           req.Cnpj,
		Phone:          req.Phone,
		Address:        req.Address,
		City:           req.City,
		State:          req.State,
		IsApproved:     false,
		IsActive:       true,
		CommissionRate: entity.DefaultCommissionRate,
		CreatedAt:      now,
		UpdatedAt:      now,
	}
	if err := uow.SalonRepository().Create(ctx, salon); err != nil {
		return nil, err
	}

	s.logger.Info("SALON", "Salon registered", map[string]interface{}{
		"salon_id": salon.Id,
		"owner_id": ownerId,
	})
	return salon, nil
}

func (s *salonService) GetByOwner(ctx context.Context, ownerId uuid.UUID) (*entity.Salon, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	salon, err := uow.SalonRepository().FindByOwner(ctx, ownerId)
	if err != nil {
		return nil, err
	}
	if salon == nil {
		return nil, fmt.Errorf("salon of owner %s: %w", ownerId, entity.ErrNotFound)
	}
	return salon, nil
}

func (s *salonService) ListPublic(ctx context.Context) ([]*entity.Salon, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.SalonRepository().FindAll(ctx, contract.SalonFilter{ApprovedOnly: true, ActiveOnly: true})
}

func (s *salonService) ListAll(ctx context.Context) ([]*entity.Salon, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	return uow.SalonRepository().FindAll(ctx, contract.SalonFilter{})
}

func (s *salonService) update(ctx context.Context, salonId uuid.UUID, mutate func(salon *entity.Salon) error) (*entity.Salon, error) {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.Begin(ctx); err != nil {
		return nil, err
	}
	defer uow.Rollback()

	salon, err := uow.SalonRepository().FindById(ctx, salonId)
	if err != nil {
		return nil, err
	}
	if salon == nil {
		return nil, fmt.Errorf("salon %s: %w", salonId, entity.ErrNotFound)
	}

	if err := mutate(salon); err != nil {
		return nil, err
	}
	salon.UpdatedAt = s.clock.Now()
	if err := uow.SalonRepository().Update(ctx, salon); err != nil {
		return nil, err
	}

	if err := uow.Commit(); err != nil {
		return nil, err
	}

	s.logger.Info("SALON", "Salon updated", map[string]interface{}{
		"salon_id":        salon.Id,
		"is_approved":     salon.IsApproved,
		"is_active":       salon.IsActive,
		"commission_rate": salon.CommissionRate.String(),
	})
	s.publisher.PublishSalonUpdated(ctx, salon)
	return salon, nil
}

func (s *salonService) SetApproval(ctx context.Context, salonId uuid.UUID, approved bool) (*entity.Salon, error) {
	return s.update(ctx, salonId, func(salon *entity.Salon) error {
		salon.IsApproved = approved
		return nil
	})
}

func (s *salonService) SetActive(ctx context.Context, salonId uuid.UUID, active bool) (*entity.Salon, error) {
	return s.update(ctx, salonId, func(salon *entity.Salon) error {
		salon.IsActive = active
		return nil
	})
}

// SetCommissionRate affects future settlements only; existing records keep their snapshot
func (s *salonService) SetCommissionRate(ctx context.Context, salonId uuid.UUID, rate decimal.Decimal) (*entity.Salon, error) {
	if rate.IsNegative() || rate.GreaterThan(decimal.NewFromInt(100)) {
		return nil, fmt.Errorf("commission rate %s outside 0..100: %w", rate, entity.ErrInvalidInput)
	}
	return s.update(ctx, salonId, func(salon *entity.Salon) error {
		salon.CommissionRate = rate.Round(2)
		return nil
	})
}
