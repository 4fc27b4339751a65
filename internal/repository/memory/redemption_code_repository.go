package memory

import (
	"context"
	"time"

	"cutclub-be/internal/entity"

	"github.com/google/uuid"
)

type redemptionCodeRepository struct {
	uow *UnitOfWorkImpl
}

func (r *redemptionCodeRepository) Create(ctx context.Context, code *entity.RedemptionCode) error {
	return r.uow.write(func(d *dataset) error {
		ensureId(&code.Id)
		ensureTime(&code.CreatedAt)
		d.codes = append(d.codes, copyCode(*code))
		return nil
	})
}

func (r *redemptionCodeRepository) live(match func(c *entity.RedemptionCode) bool, now time.Time) []*entity.RedemptionCode {
	var codes []*entity.RedemptionCode
	r.uow.read(func(d *dataset) {
		for _, i := range newestFirst(len(d.codes), func(i int) time.Time { return d.codes[i].CreatedAt }) {
			if d.codes[i].IsLive(now) && match(&d.codes[i]) {
				c := copyCode(d.codes[i])
				codes = append(codes, &c)
			}
		}
	})
	return codes
}

func (r *redemptionCodeRepository) FindLiveByCode(ctx context.Context, code string, now time.Time) ([]*entity.RedemptionCode, error) {
	return r.live(func(c *entity.RedemptionCode) bool { return c.Code == code }, now), nil
}

func (r *redemptionCodeRepository) FindLatestLiveBySubscription(ctx context.Context, subscriptionId uuid.UUID, now time.Time) (*entity.RedemptionCode, error) {
	codes := r.live(func(c *entity.RedemptionCode) bool { return c.SubscriptionId == subscriptionId }, now)
	if len(codes) == 0 {
		return nil, nil
	}
	return codes[0], nil
}

func (r *redemptionCodeRepository) MarkUsed(ctx context.Context, id uuid.UUID, usedAt time.Time) error {
	return r.uow.write(func(d *dataset) error {
		for i := range d.codes {
			if d.codes[i].Id != id {
				continue
			}
			if d.codes[i].IsUsed {
				return entity.ErrCodeNotFound
			}
			d.codes[i].IsUsed = true
			d.codes[i].UsedAt = &usedAt
			return nil
		}
		return entity.ErrCodeNotFound
	})
}

func (r *redemptionCodeRepository) CountBySubscription(ctx context.Context, subscriptionId uuid.UUID) (int64, error) {
	var count int64
	r.uow.read(func(d *dataset) {
		for _, c := range d.codes {
			if c.SubscriptionId == subscriptionId {
				count++
			}
		}
	})
	return count, nil
}
