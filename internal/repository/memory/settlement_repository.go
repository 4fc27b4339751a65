package memory

import (
	"context"
	"time"

	"cutclub-be/internal/entity"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

type settlementRepository struct {
	uow *UnitOfWorkImpl
}

func (r *settlementRepository) Append(ctx context.Context, record *entity.SettlementRecord) error {
	return r.uow.write(func(d *dataset) error {
		ensureId(&record.Id)
		ensureTime(&record.CreatedAt)
		d.settlements = append(d.settlements, *record)
		return nil
	})
}

func (r *settlementRepository) list(match func(h *entity.SettlementRecord) bool) []*entity.SettlementRecord {
	var records []*entity.SettlementRecord
	r.uow.read(func(d *dataset) {
		for _, i := range newestFirst(len(d.settlements), func(i int) time.Time { return d.settlements[i].CreatedAt }) {
			if match(&d.settlements[i]) {
				h := d.settlements[i]
				records = append(records, &h)
			}
		}
	})
	return records
}

func (r *settlementRepository) ListBySalon(ctx context.Context, salonId uuid.UUID, from, to time.Time) ([]*entity.SettlementRecord, error) {
	return r.list(func(h *entity.SettlementRecord) bool {
		return h.SalonId == salonId && inWindow(h.CreatedAt, from, to)
	}), nil
}

func (r *settlementRepository) ListBySubscription(ctx context.Context, subscriptionId uuid.UUID) ([]*entity.SettlementRecord, error) {
	return r.list(func(h *entity.SettlementRecord) bool { return h.SubscriptionId == subscriptionId }), nil
}

func (r *settlementRepository) ListAll(ctx context.Context, from, to time.Time) ([]*entity.SettlementRecord, error) {
	return r.list(func(h *entity.SettlementRecord) bool { return inWindow(h.CreatedAt, from, to) }), nil
}

func (r *settlementRepository) SumBySalon(ctx context.Context, salonId uuid.UUID, from, to time.Time) (*entity.SettlementTotals, error) {
	totals := &entity.SettlementTotals{AmountToSalon: decimal.Zero, AmountToPlatform: decimal.Zero}
	records, _ := r.ListBySalon(ctx, salonId, from, to)
	for _, h := range records {
		totals.AmountToSalon = totals.AmountToSalon.Add(h.AmountToSalon)
		totals.AmountToPlatform = totals.AmountToPlatform.Add(h.AmountToPlatform)
		totals.HaircutCount++
	}
	return totals, nil
}

func (r *settlementRepository) FirstBySalon(ctx context.Context, salonId uuid.UUID) (*entity.SettlementRecord, error) {
	records, _ := r.ListBySalon(ctx, salonId, time.Time{}, time.Time{})
	if len(records) == 0 {
		return nil, nil
	}
	return records[len(records)-1], nil
}
