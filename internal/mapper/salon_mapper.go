package mapper

import (
	"cutclub-be/internal/entity"
	"cutclub-be/internal/model"
)

type SalonMapper struct{}

func NewSalonMapper() *SalonMapper {
	return &SalonMapper{}
}

func (m *SalonMapper) ToEntity(s *model.Salon) *entity.Salon {
	if s == nil {
		return nil
	}
	return &entity.Salon{
		Id:             s.Id,
		OwnerId:        s.OwnerId,
		Name:           s.Name,
		Cnpj:           s.Cnpj,
		Phone:          s.Phone,
		Address:        s.Address,
		City:           s.City,
		State:          s.State,
		IsApproved:     s.IsApproved,
		IsActive:       s.IsActive,
		CommissionRate: s.CommissionRate,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}

func (m *SalonMapper) ToModel(s *entity.Salon) *model.Salon {
	if s == nil {
		return nil
	}
	return &model.Salon{
		Id:             s.Id,
		OwnerId:        s.OwnerId,
		Name:           s.Name,
		Cnpj:           s.Cnpj,
		Phone:          s.Phone,
		Address:        s.Address,
		City:           s.City,
		State:          s.State,
		IsApproved:     s.IsApproved,
		IsActive:       s.IsActive,
		CommissionRate: s.CommissionRate,
		CreatedAt:      s.CreatedAt,
		UpdatedAt:      s.UpdatedAt,
	}
}
