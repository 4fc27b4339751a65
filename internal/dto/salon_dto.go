package dto

import (
	"time"

	"cutclub-be/internal/entity"

	"github.com/google/uuid"
	"github.com/samber/lo"
	"github.com/shopspring/decimal"
)

type RegisterSalonRequest struct {
	Name    string `json:"name" validate:"required,min=2,max=120"`
	Cnpj    string `json:"cnpj" validate:"omitempty,max=18"`
	Phone   string `json:"phone" validate:"omitempty,max=20"`
	Address string `json:"address" validate:"omitempty,max=255"`
	City    string `json:"city" validate:"required,max=100"`
	State   string `json:"state" validate:"required,len=2"`
}

type SetApprovalRequest struct {
	Approved *bool `json:"approved" validate:"required"`
}

type SetActiveRequest struct {
	Active *bool `json:"active" validate:"required"`
}

type SetCommissionRequest struct {
	CommissionRate decimal.Decimal `json:"commission_rate"`
}

type SalonResponse struct {
	Id             uuid.UUID `json:"id"`
	OwnerId        uuid.UUID `json:"owner_id"`
	Name           string    `json:"name"`
	Cnpj           string    `json:"cnpj,omitempty"`
	Phone          string    `json:"phone,omitempty"`
	Address        string    `json:"address,omitempty"`
	City           string    `json:"city"`
	State          string    `json:"state"`
	IsApproved     bool      `json:"is_approved"`
	IsActive       bool      `json:"is_active"`
	CommissionRate string    `json:"commission_rate"`
	CreatedAt      time.Time `json:"created_at"`
}

func NewSalonResponse(s *entity.Salon) *SalonResponse {
	return &SalonResponse{
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
		CommissionRate: s.CommissionRate.StringFixed(2),
		CreatedAt:      s.CreatedAt,
	}
}

// PublicSalonResponse hides owner and registry data from subscribers
type PublicSalonResponse struct {
	Id      uuid.UUID `json:"id"`
	Name    string    `json:"name"`
	Address string    `json:"address,omitempty"`
	City    string    `json:"city"`
	State   string    `json:"state"`
	Phone   string    `json:"phone,omitempty"`
}

func NewPublicSalonResponses(salons []*entity.Salon) []*PublicSalonResponse {
	return lo.Map(salons, func(s *entity.Salon, _ int) *PublicSalonResponse {
		return &PublicSalonResponse{
			Id:      s.Id,
			Name:    s.Name,
			Address: s.Address,
			City:    s.City,
			State:   s.State,
			Phone:   s.Phone,
		}
	})
}

func NewSalonResponses(salons []*entity.Salon) []*SalonResponse {
	return lo.Map(salons, func(s *entity.Salon, _ int) *SalonResponse {
		return NewSalonResponse(s)
	})
}
