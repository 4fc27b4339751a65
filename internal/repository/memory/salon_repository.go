package memory

import (
	"context"
	"sort"

	"cutclub-be/internal/entity"
	"cutclub-be/internal/repository/contract"

	"github.com/google/uuid"
)

type salonRepository struct {
	uow *UnitOfWorkImpl
}

func (r *salonRepository) Create(ctx context.Context, salon *entity.Salon) error {
	return r.uow.write(func(d *dataset) error {
		for _, s := range d.salons {
			if s.OwnerId == salon.OwnerId {
				return errDuplicate("salons.owner_id")
			}
		}
		ensureId(&salon.Id)
		ensureTime(&salon.CreatedAt)
		if salon.UpdatedAt.IsZero() {
			salon.UpdatedAt = salon.CreatedAt
		}
		d.salons = append(d.salons, *salon)
		return nil
	})
}

func (r *salonRepository) Update(ctx context.Context, salon *entity.Salon) error {
	return r.uow.write(func(d *dataset) error {
		for i := range d.salons {
			if d.salons[i].Id == salon.Id {
				d.salons[i] = *salon
				return nil
			}
		}
		return entity.ErrNotFound
	})
}

func (r *salonRepository) findOne(match func(s *entity.Salon) bool) *entity.Salon {
	var found *entity.Salon
	r.uow.read(func(d *dataset) {
		for _, s := range d.salons {
			if match(&s) {
				s := s
				found = &s
				return
			}
		}
	})
	return found
}

func (r *salonRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.Salon, error) {
	return r.findOne(func(s *entity.Salon) bool { return s.Id == id }), nil
}

// FindByIdForUpdate relies on the transaction holding the store lock
func (r *salonRepository) FindByIdForUpdate(ctx context.Context, id uuid.UUID) (*entity.Salon, error) {
	return r.FindById(ctx, id)
}

func (r *salonRepository) FindByOwner(ctx context.Context, ownerId uuid.UUID) (*entity.Salon, error) {
	return r.findOne(func(s *entity.Salon) bool { return s.OwnerId == ownerId }), nil
}

func (r *salonRepository) FindAll(ctx context.Context, filter contract.SalonFilter) ([]*entity.Salon, error) {
	var salons []*entity.Salon
	r.uow.read(func(d *dataset) {
		for _, s := range d.salons {
			if filter.ApprovedOnly && !s.IsApproved {
				continue
			}
			if filter.ActiveOnly && !s.IsActive {
				continue
			}
			s := s
			salons = append(salons, &s)
		}
	})
	sort.SliceStable(salons, func(a, b int) bool { return salons[a].Name < salons[b].Name })
	return salons, nil
}
