package implementation

import (
	"context"
	"errors"
	"time"

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

type RedemptionCodeRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RedemptionMapper
}

func NewRedemptionCodeRepository(db *gorm.DB) contract.RedemptionCodeRepository {
	return &RedemptionCodeRepositoryImpl{
		db:     db,
		mapper: mapper.NewRedemptionMapper(),
	}
}

func (r *RedemptionCodeRepositoryImpl) Create(ctx context.Context, code *entity.RedemptionCode) error {
	m := r.mapper.CodeToModel(code)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*code = *r.mapper.CodeToEntity(m)
	return nil
}

func (r *RedemptionCodeRepositoryImpl) FindLiveByCode(ctx context.Context, code string, now time.Time) ([]*entity.RedemptionCode, error) {
	var models []*model.HaircutCode
	query := applySpecifications(r.db.WithContext(ctx),
		specification.ByCodeValue{Code: code},
		specification.LiveCode{Now: now},
		specification.ForUpdate{},
	)
	if err := query.Scopes(scope.OrderByCreatedDesc).Find(&models).Error; err != nil {
		return nil, err
	}
	return lo.Map(models, func(m *model.HaircutCode, _ int) *entity.RedemptionCode {
		return r.mapper.CodeToEntity(m)
	}), nil
}

func (r *RedemptionCodeRepositoryImpl) FindLatestLiveBySubscription(ctx context.Context, subscriptionId uuid.UUID, now time.Time) (*entity.RedemptionCode, error) {
	var m model.HaircutCode
	query := applySpecifications(r.db.WithContext(ctx),
		specification.BySubscriptionID{SubscriptionID: subscriptionId},
		specification.LiveCode{Now: now},
	)
	if err := query.Scopes(scope.OrderByCreatedDesc).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.CodeToEntity(&m), nil
}

func (r *RedemptionCodeRepositoryImpl) MarkUsed(ctx context.Context, id uuid.UUID, usedAt time.Time) error {
	res := r.db.WithContext(ctx).Model(&model.HaircutCode{}).
		Where("id = ? AND is_used = ?", id, false).
		UpdateColumns(map[string]interface{}{
			"is_used": true,
			"used_at": usedAt,
		})
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return entity.ErrCodeNotFound
	}
	return nil
}

func (r *RedemptionCodeRepositoryImpl) CountBySubscription(ctx context.Context, subscriptionId uuid.UUID) (int64, error) {
	var count int64
	err := applySpecifications(r.db.WithContext(ctx).Model(&model.HaircutCode{}),
		specification.BySubscriptionID{SubscriptionID: subscriptionId},
	).Count(&count).Error
	return count, err
}
