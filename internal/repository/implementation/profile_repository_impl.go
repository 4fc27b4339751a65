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
	"gorm.io/gorm"
)

type ProfileRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.ProfileMapper
}

func NewProfileRepository(db *gorm.DB) contract.ProfileRepository {
	return &ProfileRepositoryImpl{
		db:     db,
		mapper: mapper.NewProfileMapper(),
	}
}

func (r *ProfileRepositoryImpl) Create(ctx context.Context, profile *entity.Profile) error {
	m := r.mapper.ToModel(profile)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*profile = *r.mapper.ToEntity(m)
	return nil
}

func (r *ProfileRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	var m model.Profile
	if err := r.db.WithContext(ctx).Scopes(specification.ByID{ID: id}.Apply).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}
