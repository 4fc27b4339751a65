package implementation

import (
	"context"
	"errors"
	"fmt"
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

type WithdrawRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PayoutMapper
}

func NewWithdrawRepository(db *gorm.DB) contract.WithdrawRepository {
	return &WithdrawRepositoryImpl{
		db:     db,
		mapper: mapper.NewPayoutMapper(),
	}
}

func (r *WithdrawRepositoryImpl) Create(ctx context.Context, request *entity.WithdrawRequest) error {
	m := r.mapper.WithdrawToModel(request)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return fmt.Errorf("%w: a withdrawal request is already in progress", entity.ErrWithdrawalNotAllowed)
		}
		return err
	}
	*request = *r.mapper.WithdrawToEntity(m)
	return nil
}

func (r *WithdrawRepositoryImpl) Update(ctx context.Context, request *entity.WithdrawRequest) error {
	m := r.mapper.WithdrawToModel(request)
	if err := r.db.WithContext(ctx).Save(m).Error; err != nil {
		return err
	}
	*request = *r.mapper.WithdrawToEntity(m)
	return nil
}

func (r *WithdrawRepositoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.WithdrawRequest, error) {
	var m model.WithdrawRequest
	query := applySpecifications(r.db.WithContext(ctx), specification.ByID{ID: id}, specification.ForUpdate{})
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.WithdrawToEntity(&m), nil
}

func (r *WithdrawRepositoryImpl) list(ctx context.Context, specs ...specification.Specification) ([]*entity.WithdrawRequest, error) {
	var models []*model.WithdrawRequest
	specs = append(specs, specification.OrderBy{Field: "requested_at", Desc: true})
	if err := applySpecifications(r.db.WithContext(ctx), specs...).Find(&models).Error; err != nil {
		return nil, err
	}
	return lo.Map(models, func(m *model.WithdrawRequest, _ int) *entity.WithdrawRequest {
		return r.mapper.WithdrawToEntity(m)
	}), nil
}

func (r *WithdrawRepositoryImpl) ListBySalon(ctx context.Context, salonId uuid.UUID) ([]*entity.WithdrawRequest, error) {
	return r.list(ctx, specification.BySalonID{SalonID: salonId})
}

func (r *WithdrawRepositoryImpl) ListAll(ctx context.Context, status entity.WithdrawStatus) ([]*entity.WithdrawRequest, error) {
	if status == "" {
		return r.list(ctx)
	}
	return r.list(ctx, specification.Filter("status", string(status)))
}

func (r *WithdrawRepositoryImpl) FindLatestCycle(ctx context.Context, salonId uuid.UUID) (*entity.WithdrawRequest, error) {
	var m model.WithdrawRequest
	query := applySpecifications(r.db.WithContext(ctx),
		specification.BySalonID{SalonID: salonId},
		specification.OrderBy{Field: "cycle_end", Desc: true},
	).Where("status <> ?", string(entity.WithdrawStatusRejected))
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.WithdrawToEntity(&m), nil
}

type FinancialLogRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PayoutMapper
}

func NewFinancialLogRepository(db *gorm.DB) contract.FinancialLogRepository {
	return &FinancialLogRepositoryImpl{
		db:     db,
		mapper: mapper.NewPayoutMapper(),
	}
}

func (r *FinancialLogRepositoryImpl) Append(ctx context.Context, log *entity.FinancialLog) error {
	m, err := r.mapper.LogToModel(log)
	if err != nil {
		return err
	}
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	log.Id = m.Id
	return nil
}

func (r *FinancialLogRepositoryImpl) List(ctx context.Context, from, to time.Time) ([]*entity.FinancialLog, error) {
	var models []*model.FinancialLog
	query := applySpecifications(r.db.WithContext(ctx), specification.CreatedBetween{From: from, To: to})
	if err := query.Scopes(scope.OrderByCreatedDesc).Find(&models).Error; err != nil {
		return nil, err
	}
	return lo.Map(models, func(m *model.FinancialLog, _ int) *entity.FinancialLog {
		return r.mapper.LogToEntity(m)
	}), nil
}

type PaymentRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PayoutMapper
}

func NewPaymentRepository(db *gorm.DB) contract.PaymentRepository {
	return &PaymentRepositoryImpl{
		db:     db,
		mapper: mapper.NewPayoutMapper(),
	}
}

func (r *PaymentRepositoryImpl) Create(ctx context.Context, payment *entity.Payment) error {
	m := r.mapper.PaymentToModel(payment)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		return err
	}
	*payment = *r.mapper.PaymentToEntity(m)
	return nil
}

func (r *PaymentRepositoryImpl) FindByExternalId(ctx context.Context, externalId string) (*entity.Payment, error) {
	var m model.Payment
	if err := r.db.WithContext(ctx).Where("external_id = ?", externalId).First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.PaymentToEntity(&m), nil
}
