package mapper

import (
	"featured-listing-be/internal/entity"
	"featured-listing-be/internal/model"
)

type FeatureRecordMapper struct{}

func NewFeatureRecordMapper() *FeatureRecordMapper {
	return &FeatureRecordMapper{}
}

func (m *FeatureRecordMapper) ToEntity(model *model.FeatureRecord) *entity.FeatureRecord {
	if model == nil {
		return nil
	}
	return &entity.FeatureRecord{
		Id:             model.Id,
		ResourceType:   entity.ResourceType(model.ResourceType),
		ResourceId:     model.ResourceId,
		VendorId:       model.VendorId,
		Scope:          entity.FeatureScope(model.Scope),
		ScopeState:     model.ScopeState,
		FeaturedFrom:   model.FeaturedFrom,
		FeaturedTo:     model.FeaturedTo,
		TransactionRef: model.TransactionRef,
		Provider:       model.Provider,
		CreatedAt:      model.CreatedAt,
		UpdatedAt:      model.UpdatedAt,
	}
}

func (m *FeatureRecordMapper) ToModel(entity *entity.FeatureRecord) *model.FeatureRecord {
	if entity == nil {
		return nil
	}
	return &model.FeatureRecord{
		Id:             entity.Id,
		ResourceType:   string(entity.ResourceType),
		ResourceId:     entity.ResourceId,
		VendorId:       entity.VendorId,
		Scope:          string(entity.Scope),
		ScopeState:     entity.ScopeState,
		FeaturedFrom:   entity.FeaturedFrom,
		FeaturedTo:     entity.FeaturedTo,
		TransactionRef: entity.TransactionRef,
		Provider:       entity.Provider,
		CreatedAt:      entity.CreatedAt,
		UpdatedAt:      entity.UpdatedAt,
	}
}

func (m *FeatureRecordMapper) ToEntities(models []*model.FeatureRecord) []*entity.FeatureRecord {
	entities := make([]*entity.FeatureRecord, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.ToEntity(mdl))
	}
	return entities
}
