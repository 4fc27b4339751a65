package mapper

import (
	"cutclub-be/internal/entity"
	"cutclub-be/internal/model"
)

type SubscriptionMapper struct{}

func NewSubscriptionMapper() *SubscriptionMapper {
	return &SubscriptionMapper{}
}

func (m *SubscriptionMapper) PlanToEntity(p *model.Plan) *entity.Plan {
	if p == nil {
		return nil
	}
	return &entity.Plan{
		Id:              p.Id,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		CreditsPerMonth: p.CreditsPerMonth,
		DurationDays:    p.DurationDays,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
	}
}

func (m *SubscriptionMapper) PlanToModel(p *entity.Plan) *model.Plan {
	if p == nil {
		return nil
	}
	return &model.Plan{
		Id:              p.Id,
		Name:            p.Name,
		Description:     p.Description,
		Price:           p.Price,
		CreditsPerMonth: p.CreditsPerMonth,
		DurationDays:    p.DurationDays,
		IsActive:        p.IsActive,
		CreatedAt:       p.CreatedAt,
	}
}

func (m *SubscriptionMapper) SubscriptionToEntity(s *model.Subscription) *entity.Subscription {
	if s == nil {
		return nil
	}
	return &entity.Subscription{
		Id:              s.Id,
		UserId:          s.UserId,
		PlanId:          s.PlanId,
		SalonId:         s.SalonId,
		Status:          entity.SubscriptionStatus(s.Status),
		CurrentCredits:  s.CurrentCredits,
		PlanPrice:       s.PlanPrice,
		CreditsPerMonth: s.CreditsPerMonth,
		StartDate:       s.StartDate,
		EndDate:         s.EndDate,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}

func (m *SubscriptionMapper) SubscriptionToModel(s *entity.Subscription) *model.Subscription {
	if s == nil {
		return nil
	}
	return &model.Subscription{
		Id:              s.Id,
		UserId:          s.UserId,
		PlanId:          s.PlanId,
		SalonId:         s.SalonId,
		Status:          string(s.Status),
		CurrentCredits:  s.CurrentCredits,
		PlanPrice:       s.PlanPrice,
		CreditsPerMonth: s.CreditsPerMonth,
		StartDate:       s.StartDate,
		EndDate:         s.EndDate,
		CreatedAt:       s.CreatedAt,
		UpdatedAt:       s.UpdatedAt,
	}
}
