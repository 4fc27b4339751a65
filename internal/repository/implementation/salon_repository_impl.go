package implementation

import (
	"context"
	"errors"

	"cutclub-be/internal/entity"
	"cutclub-be/internal/mapper"
	"cutclub-be/internal/model"
	"cutclub-be/internal/repository/contract"
	"cutclub-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"gorm.io/gorm"
)

type SalonRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.SalonMapper
}

func NewSalonRepository(db *gorm.DB) contract.SalonRepository {
	return &SalonRepositoryImpl{
		db:     db,
		mapper: mapper.NewSalonMapper(),
	}
}

func (r *SalonRepositoryImpl) Create(ctx context.Context, salon *entity.Salon) error {
	m := r.mapper.ToModel(salon)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*salon = *r.mapper.ToEntity(m)
	return nil
}

func (r *SalonRepositoryImpl) Update(ctx context.Context, salon *entity.Salon) error {
	m := r.mapper.ToModel(salon)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*salon = *r.mapper.ToEntity(m)
	return nil
}

func (r *SalonRepositoryImpl) findOne(ctx context.Context, specs ...specification.Specification) (*entity.Salon, error) {
	var m model.Salon
	if err := applySpecifications(r.db.WithContext(ctx), specs...).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *SalonRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Salon, error) {
	return r.findOne(ctx, specification.ByID{ID: id})
}

func (r *SalonRepositoryImpl) FindByIdForUpdate(ctx context.Context, id uuid.UUID) (*entity.Salon, error) {
	return r.findOne(ctx, specification.ByID{ID: id}, specification.ForUpdate{})
}

func (r *SalonRepositoryImpl) FindByOwner(ctx context.Context, ownerId uuid.UUID) (*entity.Salon, error) {
	return r.findOne(ctx, specification.Filter("owner_id", ownerId))
}

func (r *SalonRepositoryImpl) FindAll(ctx context.Context, filter contract.SalonFilter) ([]*entity.Salon, error) {
	specs := []specification.Specification{specification.OrderBy{Field: "name"}}
	if filter.ApprovedOnly {
		specs = append(specs, specification.Filter("is_approved", true))
	}
	if filter.ActiveOnly {
		specs = append(specs, specification.Filter("is_active", true))
	}

	var models []*model.Salon
	if err := applySpecifications(r.db.WithContext(ctx), specs...).Find(&models).Error; err != nil {
		return nil, err
	}
	return lo.Map(models, func(m *model.Salon, _ int) *entity.Salon {
		return r.mapper.ToEntity(m)
	}), nil
}
