package memory

import (
	"context"
	"fmt"

	"cutclub-be/internal/entity"

	"github.com/google/uuid"
)

func errDuplicate(key string) error {
	return fmt.Errorf("duplicate key value violates unique constraint %q", key)
}

type profileRepository struct {
	uow *UnitOfWorkImpl
}

func (r *profileRepository) Create(ctx context.Context, profile *entity.Profile) error {
	return r.uow.write(func(d *dataset) error {
		ensureId(&profile.Id)
		for _, p := range d.profiles {
			if p.Id == profile.Id {
				return errDuplicate("profiles.pkey")
			}
		}
		ensureTime(&profile.CreatedAt)
		d.profiles = append(d.profiles, *profile)
		return nil
	})
}

func (r *profileRepository) FindById(ctx context.Context, id uuid.UUID) (*entity.Profile, error) {
	var found *entity.Profile
	r.uow.read(func(d *dataset) {
		for _, p := range d.profiles {
			if p.Id == id {
				p := p
				found = &p
				return
			}
		}
	})
	return found, nil
}
