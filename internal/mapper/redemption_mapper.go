package mapper

import (
	"cutclub-be/internal/entity"
	"cutclub-be/internal/model"
)

type RedemptionMapper struct{}

func NewRedemptionMapper() *RedemptionMapper {
	return &RedemptionMapper{}
}

func (m *RedemptionMapper) CodeToEntity(c *model.HaircutCode) *entity.RedemptionCode {
	if c == nil {
		return nil
	}
	return &entity.RedemptionCode{
		Id:             c.Id,
		Code:           c.Code,
		SubscriptionId: c.SubscriptionId,
		ExpiresAt:      c.ExpiresAt,
		IsUsed:         c.IsUsed,
		UsedAt:         c.UsedAt,
		CreatedAt:      c.CreatedAt,
	}
}

func (m *RedemptionMapper) CodeToModel(c *entity.RedemptionCode) *model.HaircutCode {
	if c == nil {
		return nil
	}
	return &model.HaircutCode{
		Id:             c.Id,
		Code:           c.Code,
		SubscriptionId: c.SubscriptionId,
		ExpiresAt:      c.ExpiresAt,
		IsUsed:         c.IsUsed,
		UsedAt:         c.UsedAt,
		CreatedAt:      c.CreatedAt,
	}
}

func (m *RedemptionMapper) SettlementToEntity(h *model.HaircutHistory) *entity.SettlementRecord {
	if h == nil {
		return nil
	}
	return &entity.SettlementRecord{
		Id:               h.Id,
		SubscriptionId:   h.SubscriptionId,
		SalonId:          h.SalonId,
		ValidatedBy:      h.ValidatedBy,
		CodeUsed:         h.CodeUsed,
		PricePerHaircut:  h.PricePerHaircut,
		CommissionRate:   h.CommissionRate,
		AmountToSalon:    h.AmountToSalon,
		AmountToPlatform: h.AmountToPlatform,
		CreatedAt:        h.CreatedAt,
	}
}

func (m *RedemptionMapper) SettlementToModel(r *entity.SettlementRecord) *model.HaircutHistory {
	if r == nil {
		return nil
	}
	return &model.HaircutHistory{
		Id:               r.Id,
		SubscriptionId:   r.SubscriptionId,
		SalonId:          r.SalonId,
		ValidatedBy:      r.ValidatedBy,
		CodeUsed:         r.CodeUsed,
		PricePerHaircut:  r.PricePerHaircut,
		CommissionRate:   r.CommissionRate,
		AmountToSalon:    r.AmountToSalon,
		AmountToPlatform: r.AmountToPlatform,
		CreatedAt:        r.CreatedAt,
	}
}
