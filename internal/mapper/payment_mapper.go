package mapper

import (
	"featured-listing-be/internal/entity"
	"featured-listing-be/internal/model"

	"gorm.io/datatypes"
)

type PaymentAttemptMapper struct{}

func NewPaymentAttemptMapper() *PaymentAttemptMapper {
	return &PaymentAttemptMapper{}
}

func (m *PaymentAttemptMapper) ToEntity(model *model.PaymentAttempt) *entity.PaymentAttempt {
	if model == nil {
		return nil
	}
	return &entity.PaymentAttempt{
		Id:              model.Id,
		Provider:        model.Provider,
		TransactionRef:  model.TransactionRef,
		Amount:          model.Amount,
		PayerIdentity:   model.PayerIdentity,
		Status:          entity.PaymentAttemptStatus(model.Status),
		FeatureRecordId: model.FeatureRecordId,
		RawPayload:      []byte(model.RawPayload),
		CreatedAt:       model.CreatedAt,
	}
}

func (m *PaymentAttemptMapper) ToModel(entity *entity.PaymentAttempt) *model.PaymentAttempt {
	if entity == nil {
		return nil
	}
	return &model.PaymentAttempt{
		Id:              entity.Id,
		Provider:        entity.Provider,
		TransactionRef:  entity.TransactionRef,
		Amount:          entity.Amount,
		PayerIdentity:   entity.PayerIdentity,
		Status:          string(entity.Status),
		FeatureRecordId: entity.FeatureRecordId,
		RawPayload:      datatypes.JSON(entity.RawPayload),
		CreatedAt:       entity.CreatedAt,
	}
}
