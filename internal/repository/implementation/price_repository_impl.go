package implementation

import (
	"context"
	"errors"

	"featured-listing-be/internal/entity"
	"featured-listing-be/internal/mapper"
	"featured-listing-be/internal/model"
	"featured-listing-be/internal/repository/contract"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type PriceRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.PriceMapper
}

func NewPriceRepository(db *gorm.DB) contract.PriceRepository {
	return &PriceRepositoryImpl{
		db:     db,
		mapper: mapper.NewPriceMapper(),
	}
}

func (r *PriceRepositoryImpl) Upsert(ctx context.Context, entry *entity.PriceEntry) error {
	m := r.mapper.ToModel(entry)
	err := r.db.WithContext(ctx).
		Clauses(clause.OnConflict{
			Columns:   []clause.Column{{Name: "scope"}, {Name: "duration_code"}},
			DoUpdates: clause.AssignmentColumns([]string{"price", "updated_at"}),
		}).
		Create(m).Error
	if err != nil {
		return err
	}
	*entry = *r.mapper.ToEntity(m)
	return nil
}

func (r *PriceRepositoryImpl) FindCell(ctx context.Context, scope entity.FeatureScope, code entity.DurationCode) (*entity.PriceEntry, error) {
	var m model.PriceEntry
	err := r.db.WithContext(ctx).
		Where("scope = ? AND duration_code = ?", string(scope), string(code)).
		First(&m).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *PriceRepositoryImpl) FindAll(ctx context.Context) ([]*entity.PriceEntry, error) {
	var models []*model.PriceEntry
	err := r.db.WithContext(ctx).
		Order("scope ASC, duration_code ASC").
		Find(&models).Error
	if err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}
