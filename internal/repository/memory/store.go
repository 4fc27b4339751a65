// Package memory keeps every repository in process. It backs tests and the
// STORAGE_DRIVER=memory mode; transactions hold the store's write lock and
// work on a private copy that is swapped in on commit.
package memory

import (
	"sort"
	"sync"
	"time"

	"cutclub-be/internal/entity"

	"github.com/google/uuid"
	"github.com/samber/lo"
)

type dataset struct {
	plans         []entity.Plan
	subscriptions []entity.Subscription
	codes         []entity.RedemptionCode
	salons        []entity.Salon
	settlements   []entity.SettlementRecord
	withdrawals   []entity.WithdrawRequest
	logs          []entity.FinancialLog
	payments      []entity.Payment
	profiles      []entity.Profile
}

func (d *dataset) clone() *dataset {
	return &dataset{
		plans:         append([]entity.Plan(nil), d.plans...),
		subscriptions: lo.Map(d.subscriptions, func(s entity.Subscription, _ int) entity.Subscription { return copySubscription(s) }),
		codes:         lo.Map(d.codes, func(c entity.RedemptionCode, _ int) entity.RedemptionCode { return copyCode(c) }),
		salons:        append([]entity.Salon(nil), d.salons...),
		settlements:   append([]entity.SettlementRecord(nil), d.settlements...),
		withdrawals:   lo.Map(d.withdrawals, func(w entity.WithdrawRequest, _ int) entity.WithdrawRequest { return copyWithdraw(w) }),
		logs:          lo.Map(d.logs, func(l entity.FinancialLog, _ int) entity.FinancialLog { return copyLog(l) }),
		payments:      append([]entity.Payment(nil), d.payments...),
		profiles:      append([]entity.Profile(nil), d.profiles...),
	}
}

type Store struct {
	mu   sync.RWMutex
	data *dataset
}

func NewStore() *Store {
	return &Store{data: &dataset{}}
}

func ptrCopy[T any](p *T) *T {
	if p == nil {
		return nil
	}
	v := *p
	return &v
}

func copySubscription(s entity.Subscription) entity.Subscription {
	s.SalonId = ptrCopy(s.SalonId)
	return s
}

func copyCode(c entity.RedemptionCode) entity.RedemptionCode {
	c.UsedAt = ptrCopy(c.UsedAt)
	return c
}

func copyWithdraw(w entity.WithdrawRequest) entity.WithdrawRequest {
	w.RejectionReason = ptrCopy(w.RejectionReason)
	w.AdminId = ptrCopy(w.AdminId)
	w.PaidAt = ptrCopy(w.PaidAt)
	return w
}

func copyLog(l entity.FinancialLog) entity.FinancialLog {
	l.ReferenceId = ptrCopy(l.ReferenceId)
	if l.Metadata != nil {
		l.Metadata = lo.Assign(l.Metadata)
	}
	return l
}

func ensureId(id *uuid.UUID) {
	if *id == uuid.Nil {
		*id = uuid.New()
	}
}

func ensureTime(t *time.Time) {
	if t.IsZero() {
		*t = time.Now()
	}
}

func sortPlansByPrice(plans []*entity.Plan) {
	sort.SliceStable(plans, func(a, b int) bool {
		return plans[a].Price.LessThan(plans[b].Price)
	})
}

// newestFirst returns indexes ordered by timestamp descending; later inserts win ties
func newestFirst(n int, at func(i int) time.Time) []int {
	idx := make([]int, n)
	for i := range idx {
		idx[i] = n - 1 - i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		return at(idx[a]).After(at(idx[b]))
	})
	return idx
}

func inWindow(t, from, to time.Time) bool {
	if !from.IsZero() && t.Before(from) {
		return false
	}
	if !to.IsZero() && !t.Before(to) {
		return false
	}
	return true
}
