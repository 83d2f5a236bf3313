package implementation

import (
	"context"
	"errors"
	"time"

	"featured-listing-be/internal/entity"
	"featured-listing-be/internal/mapper"
	"featured-listing-be/internal/model"
	"featured-listing-be/internal/pkg/apperror"
	"featured-listing-be/internal/repository/contract"
	"featured-listing-be/internal/repository/specification"

	"github.com/google/uuid"
	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

type FeatureRecordRepositoryImpl struct {
	db     *gorm.DB
	mapper *mapper.FeatureRecordMapper
}

func NewFeatureRecordRepository(db *gorm.DB) contract.FeatureRecordRepository {
	return &FeatureRecordRepositoryImpl{
		db:     db,
		mapper: mapper.NewFeatureRecordMapper(),
	}
}

func (r *FeatureRecordRepositoryImpl) applySpecifications(db *gorm.DB, specs ...specification.Specification) *gorm.DB {
	for _, spec := range specs {
		db = spec.Apply(db)
	}
	return db
}

func (r *FeatureRecordRepositoryImpl) Create(ctx context.Context, record *entity.FeatureRecord) error {
	m := r.mapper.ToModel(record)
	if err := r.db.WithContext(ctx).Create(m).Error; err != nil {
		// The live-window exclusion constraint and the transaction_ref unique
		// index both surface here; either way the caller raced a duplicate.
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && (pgErr.Code == "23P01" || pgErr.Code == "23505") {
			return apperror.Conflict("%s %s already holds a live placement window", record.ResourceType, record.ResourceId)
		}
		return err
	}
	*record = *r.mapper.ToEntity(m)
	return nil
}

func (r *FeatureRecordRepositoryImpl) Delete(ctx context.Context, id uuid.UUID) error {
	res := r.db.WithContext(ctx).Delete(&model.FeatureRecord{}, id)
	if res.Error != nil {
		return res.Error
	}
	if res.RowsAffected == 0 {
		return gorm.ErrRecordNotFound
	}
	return nil
}

func (r *FeatureRecordRepositoryImpl) FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FeatureRecord, error) {
	var m model.FeatureRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.First(&m).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, nil
		}
		return nil, err
	}
	return r.mapper.ToEntity(&m), nil
}

func (r *FeatureRecordRepositoryImpl) FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FeatureRecord, error) {
	var models []*model.FeatureRecord
	query := r.applySpecifications(r.db.WithContext(ctx), specs...)
	if err := query.Find(&models).Error; err != nil {
		return nil, err
	}
	return r.mapper.ToEntities(models), nil
}

func (r *FeatureRecordRepositoryImpl) Count(ctx context.Context, specs ...specification.Specification) (int64, error) {
	var count int64
	query := r.applySpecifications(r.db.WithContext(ctx).Model(&model.FeatureRecord{}), specs...)
	if err := query.Count(&count).Error; err != nil {
		return 0, err
	}
	return count, nil
}

func (r *FeatureRecordRepositoryImpl) CountActiveByType(ctx context.Context, now time.Time) (map[entity.ResourceType]int64, error) {
	type row struct {
		ResourceType string
		Total        int64
	}
	var rows []row
	err := r.db.WithContext(ctx).
		Model(&model.FeatureRecord{}).
		Select("resource_type, COUNT(*) AS total").
		Where("featured_from <= ? AND featured_to > ?", now, now).
		Group("resource_type").
		Scan(&rows).Error
	if err != nil {
		return nil, err
	}

	breakdown := make(map[entity.ResourceType]int64, len(rows))
	for _, rw := range rows {
		breakdown[entity.ResourceType(rw.ResourceType)] = rw.Total
	}
	return breakdown, nil
}

func (r *FeatureRecordRepositoryImpl) ExtendWindow(ctx context.Context, id uuid.UUID, days int) (*entity.FeatureRecord, error) {
	// Single SQL increment: concurrent extends on the same record are additive
	// and commutative, no read-modify-write involved.
	res := r.db.WithContext(ctx).
		Model(&model.FeatureRecord{}).
		Where("id = ?", id).
		Update("featured_to", gorm.Expr("featured_to + make_interval(days => ?)", days))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindOne(ctx, specification.ByID{ID: id})
}

func (r *FeatureRecordRepositoryImpl) CloseWindow(ctx context.Context, id uuid.UUID, now time.Time) (*entity.FeatureRecord, error) {
	// LEAST keeps the earlier close, so repeated unfeature calls converge on
	// the first call's instant.
	res := r.db.WithContext(ctx).
		Model(&model.FeatureRecord{}).
		Where("id = ?", id).
		Update("featured_to", gorm.Expr("LEAST(featured_to, ?)", now))
	if res.Error != nil {
		return nil, res.Error
	}
	if res.RowsAffected == 0 {
		return nil, gorm.ErrRecordNotFound
	}
	return r.FindOne(ctx, specification.ByID{ID: id})
}
