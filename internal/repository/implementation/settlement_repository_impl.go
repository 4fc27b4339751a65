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
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type SettlementRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.RedemptionMapper
}

func NewSettlementRepository(db *gorm.DB) contract.SettlementRepository {
	return &SettlementRepositoryImpl{
		db:     db,
		mapper: mapper.NewRedemptionMapper(),
	}
}

func (r *SettlementRepositoryImpl) Append(ctx context.Context, record *entity.SettlementRecord) error {
	m := r.mapper.SettlementToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*record = *r.mapper.SettlementToEntity(m)
	return nil
}

func (r *SettlementRepositoryImpl) list(ctx context.Context, specs ...specification.Specification) ([]*entity.SettlementRecord, error) {
	var models []*model.HaircutHistory
	if err := applySpecifications(r.db.WithContext(ctx), specs...).Scopes(scope.OrderByCreatedDesc).Find(&models).Error; err != nil {
		return nil, err
	}
	return lo.Map(models, func(m *model.HaircutHistory, _ int) *entity.SettlementRecord {
		return r.mapper.SettlementToEntity(m)
	}), nil
}

func (r *SettlementRepositoryImpl) ListBySalon(ctx context.Context, salonId uuid.UUID, from, to time.Time) ([]*entity.SettlementRecord, error) {
	return r.list(ctx, specification.BySalonID{SalonID: salonId}, specification.CreatedBetween{From: from, To: to})
}

func (r *SettlementRepositoryImpl) ListBySubscription(ctx context.Context, subscriptionId uuid.UUID) ([]*entity.SettlementRecord, error) {
	return r.list(ctx, specification.BySubscriptionID{SubscriptionID: subscriptionId})
}

func (r *SettlementRepositoryImpl) ListAll(ctx context.Context, from, to time.Time) ([]*entity.SettlementRecord, error) {
	return r.list(ctx, specification.CreatedBetween{From: from, To: to})
}

func (r *SettlementRepositoryImpl) SumBySalon(ctx context.Context, salonId uuid.UUID, from, to time.Time) (*entity.SettlementTotals, error) {
	var row struct {
		AmountToSalon    decimal.Decimal
		AmountToPlatform decimal.Decimal
		HaircutCount     int
	}
	query := applySpecifications(r.db.WithContext(ctx).Model(&model.HaircutHistory{}),
		specification.BySalonID{SalonID: salonId},
		specification.CreatedBetween{From: from, To: to},
	)
	err := query.Select(`
			COALESCE(SUM(amount_to_salon), 0) AS amount_to_salon,
			COALESCE(SUM(amount_to_platform), 0) AS amount_to_platform,
			COUNT(*) AS haircut_count
		`).
		Scan(&row).Error
	if err != nil {
		return nil, err
	}
	return &entity.SettlementTotals{
		AmountToSalon:    row.AmountToSalon,
		AmountToPlatform: row.AmountToPlatform,
		HaircutCount:     row.HaircutCount,
	}, nil
}

func (r *SettlementRepositoryImpl) FirstBySalon(ctx context.Context, salonId uuid.UUID) (*entity.SettlementRecord, error) {
	var m model.HaircutHistory
	query := applySpecifications(r.db.WithContext(ctx), specification.BySalonID{SalonID: salonId})
	if err := query.Scopes(scope.OrderByCreatedAsc).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.SettlementToEntity(&m), nil
}
