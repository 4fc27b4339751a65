package memory

import (
	"context"
	"fmt"
	"time"

	"cutclub-be/internal/entity"

	"github.com/google/uuid"
)

type withdrawRepository struct {
	uow *UnitOfWorkImpl
}

func (r *withdrawRepository) Create(ctx context.Context, request *entity.WithdrawRequest) error {
	return r.uow.write(func(d *dataset) error {
		if request.IsOpen() {
			for i := range d.withdrawals {
				if d.withdrawals[i].SalonId == request.SalonId && d.withdrawals[i].IsOpen() {
					return fmt.Errorf("%w: %w", entity.ErrWithdrawalNotAllowed, errDuplicate("withdraw_requests.uq_withdraw_requests_open_salon"))
				}
			}
		}
		ensureId(&request.Id)
		ensureTime(&request.RequestedAt)
		d.withdrawals = append(d.withdrawals, copyWithdraw(*request))
		return nil
	})
}

func (r *withdrawRepository) Update(ctx context.Context, request *entity.WithdrawRequest) error {
	return r.uow.write(func(d *dataset) error {
		for i := range d.withdrawals {
			if d.withdrawals[i].Id == request.Id {
				d.withdrawals[i] = copyWithdraw(*request)
				return nil
			}
		}
		return entity.ErrNotFound
	})
}

func (r *withdrawRepository) list(match func(w *entity.WithdrawRequest) bool, at func(w *entity.WithdrawRequest) time.Time) []*entity.WithdrawRequest {
	var requests []*entity.WithdrawRequest
	r.uow.read(func(d *dataset) {
		for _, i := range newestFirst(len(d.withdrawals), func(i int) time.Time { return at(&d.withdrawals[i]) }) {
			if match(&d.withdrawals[i]) {
				w := copyWithdraw(d.withdrawals[i])
				requests = append(requests, &w)
			}
		}
	})
	return requests
}

func requestedAt(w *entity.WithdrawRequest) time.Time { return w.RequestedAt }

func (r *withdrawRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.WithdrawRequest, error) {
	found := r.list(func(w *entity.WithdrawRequest) bool { return w.Id == id }, requestedAt)
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

func (r *withdrawRepository) ListBySalon(ctx context.Context, salonId uuid.UUID) ([]*entity.WithdrawRequest, error) {
	return r.list(func(w *entity.WithdrawRequest) bool { return w.SalonId == salonId }, requestedAt), nil
}

func (r *withdrawRepository) ListAll(ctx context.Context, status entity.WithdrawStatus) ([]*entity.WithdrawRequest, error) {
	return r.list(func(w *entity.WithdrawRequest) bool {
		return status == "" || w.Status == status
	}, requestedAt), nil
}

func (r *withdrawRepository) FindLatestCycle(ctx context.Context, salonId uuid.UUID) (*entity.WithdrawRequest, error) {
	found := r.list(func(w *entity.WithdrawRequest) bool {
		return w.SalonId == salonId && w.Status != entity.WithdrawStatusRejected
	}, func(w *entity.WithdrawRequest) time.Time { return w.CycleEnd })
	if len(found) == 0 {
		return nil, nil
	}
	return found[0], nil
}

type financialLogRepository struct {
	uow *UnitOfWorkImpl
}

func (r *financialLogRepository) Append(ctx context.Context, log *entity.FinancialLog) error {
	return r.uow.write(func(d *dataset) error {
		ensureId(&log.Id)
		ensureTime(&log.CreatedAt)
		d.logs = append(d.logs, copyLog(*log))
		return nil
	})
}

func (r *financialLogRepository) List(ctx context.Context, from, to time.Time) ([]*entity.FinancialLog, error) {
	var logs []*entity.FinancialLog
	r.uow.read(func(d *dataset) {
		for _, i := range newestFirst(len(d.logs), func(i int) time.Time { return d.logs[i].CreatedAt }) {
			if inWindow(d.logs[i].CreatedAt, from, to) {
				l := copyLog(d.logs[i])
				logs = append(logs, &l)
			}
		}
	})
	return logs, nil
}

type paymentRepository struct {
	uow *UnitOfWorkImpl
}

func (r *paymentRepository) Create(ctx context.Context, payment *entity.Payment) error {
	return r.uow.write(func(d *dataset) error {
		for _, p := range d.payments {
			if p.ExternalId == payment.ExternalId {
				return errDuplicate("payments.external_id")
			}
		}
		ensureId(&payment.Id)
		ensureTime(&payment.CreatedAt)
		d.payments = append(d.payments, *payment)
		return nil
	})
}

func (r *paymentRepository) FindByExternalId(ctx context.Context, externalId string) (*entity.Payment, error) {
	var found *entity.Payment
	r.uow.read(func(d *dataset) {
		for _, p := range d.payments {
			if p.ExternalId == externalId {
				p := p
				found = &p
				return
			}
		}
	})
	return found, nil
}
