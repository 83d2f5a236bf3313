package mapper

import (
	"featured-listing-be/internal/entity"
	"featured-listing-be/internal/model"
)

type PriceMapper struct{}

func NewPriceMapper() *PriceMapper {
	return &PriceMapper{}
}

func (m *PriceMapper) ToEntity(model *model.PriceEntry) *entity.PriceEntry {
	if model == nil {
		return nil
	}
	return &entity.PriceEntry{
		Id:           model.Id,
		Scope:        entity.FeatureScope(model.Scope),
		DurationCode: entity.DurationCode(model.DurationCode),
		Price:        model.Price,
		CreatedAt:    model.CreatedAt,
		UpdatedAt:    model.UpdatedAt,
	}
}

func (m *PriceMapper) ToModel(entity *entity.PriceEntry) *model.PriceEntry {
	if entity == nil {
		return nil
	}
	return &model.PriceEntry{
		Id:           entity.Id,
		Scope:        string(entity.Scope),
		DurationCode: string(entity.DurationCode),
		Price:        entity.Price,
		CreatedAt:    entity.CreatedAt,
		UpdatedAt:    entity.UpdatedAt,
	}
}

func (m *PriceMapper) ToEntities(models []*model.PriceEntry) []*entity.PriceEntry {
	entities := make([]*entity.PriceEntry, 0, len(models))
	for _, mdl := range models {
		entities = append(entities, m.ToEntity(mdl))
	}
	return entities
}
