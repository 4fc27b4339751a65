package mapper

import (
	"encoding/json"

	"cutclub-be/internal/entity"
	"cutclub-be/internal/model"

	"gorm.io/datatypes"
)

type PayoutMapper struct{}

func NewPayoutMapper() *PayoutMapper {
	return &PayoutMapper{}
}

func (m *PayoutMapper) WithdrawToEntity(w *model.WithdrawRequest) *entity.WithdrawRequest {
	if w == nil {
		return nil
	}
	return &entity.WithdrawRequest{
		Id:              w.Id,
		SalonId:         w.SalonId,
		Amount:          w.Amount,
		HaircutsCount:   w.HaircutsCount,
		CycleStart:      w.CycleStart,
		CycleEnd:        w.CycleEnd,
		Status:          entity.WithdrawStatus(w.Status),
		RejectionReason: w.RejectionReason,
		AdminId:         w.AdminId,
		RequestedAt:     w.RequestedAt,
		PaidAt:          w.PaidAt,
	}
}

func (m *PayoutMapper) WithdrawToModel(w *entity.WithdrawRequest) *model.WithdrawRequest {
	if w == nil {
		return nil
	}
	return &model.WithdrawRequest{
		Id:              w.Id,
		SalonId:         w.SalonId,
		Amount:          w.Amount,
		HaircutsCount:   w.HaircutsCount,
		CycleStart:      w.CycleStart,
		CycleEnd:        w.CycleEnd,
		Status:          string(w.Status),
		RejectionReason: w.RejectionReason,
		AdminId:         w.AdminId,
		RequestedAt:     w.RequestedAt,
		PaidAt:          w.PaidAt,
	}
}

func (m *PayoutMapper) LogToEntity(l *model.FinancialLog) *entity.FinancialLog {
	if l == nil {
		return nil
	}
	var metadata map[string]interface{}
	if len(l.Metadata) > 0 {
		// Malformed metadata is dropped rather than failing the read
		_ = json.Unmarshal(l.Metadata, &metadata)
	}
	return &entity.FinancialLog{
		Id:          l.Id,
		Type:        entity.FinancialLogType(l.Type),
		Amount:      l.Amount,
		Description: l.Description,
		ReferenceId: l.ReferenceId,
		Metadata:    metadata,
		CreatedAt:   l.CreatedAt,
	}
}

func (m *PayoutMapper) LogToModel(l *entity.FinancialLog) (*model.FinancialLog, error) {
	if l == nil {
		return nil, nil
	}
	var metadata datatypes.JSON
	if l.Metadata != nil {
		raw, err := json.Marshal(l.Metadata)
		if err != nil {
			return nil, err
		}
		metadata = datatypes.JSON(raw)
	}
	return &model.FinancialLog{
		Id:          l.Id,
		Type:        string(l.Type),
		Amount:      l.Amount,
		Description: l.Description,
		ReferenceId: l.ReferenceId,
		Metadata:    metadata,
		CreatedAt:   l.CreatedAt,
	}, nil
}

func (m *PayoutMapper) PaymentToEntity(p *model.Payment) *entity.Payment {
	if p == nil {
		return nil
	}
	return &entity.Payment{
		Id:             p.Id,
		UserId:         p.UserId,
		SubscriptionId: p.SubscriptionId,
		PlanId:         p.PlanId,
		Amount:         p.Amount,
		Status:         entity.PaymentStatus(p.Status),
		PaymentMethod:  p.PaymentMethod,
		ExternalId:     p.ExternalId,
		PaidAt:         p.PaidAt,
		CreatedAt:      p.CreatedAt,
	}
}

func (m *PayoutMapper) PaymentToModel(p *entity.Payment) *model.Payment {
	if p == nil {
		return nil
	}
	return &model.Payment{
		Id:             p.Id,
		UserId:         p.UserId,
		SubscriptionId: p.SubscriptionId,
		PlanId:         p.PlanId,
		Amount:         p.Amount,
		Status:         string(p.Status),
		PaymentMethod:  p.PaymentMethod,
		ExternalId:     p.ExternalId,
		PaidAt:         p.PaidAt,
		CreatedAt:      p.CreatedAt,
	}
}
