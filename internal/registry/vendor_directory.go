package registry

import (
	"context"
	"errors"

	"featured-listing-be/internal/entity"
	"featured-listing-be/internal/pkg/apperror"
	"featured-listing-be/internal/repository/contract"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// vendorSearchLimit bounds the id list fed back into the record query.
const vendorSearchLimit = 200

type VendorDirectoryImpl struct {
	db *gorm.DB
}

func NewVendorDirectory(db *gorm.DB) contract.VendorDirectory {
	return &VendorDirectoryImpl{db: db}
}

func (d *VendorDirectoryImpl) FindById(ctx context.Context, id uuid.UUID) (*entity.VendorSummary, error) {
	var summary entity.VendorSummary
	err := d.db.WithContext(ctx).
		Table("vendors").
		Select("id, business_name AS name, email").
		Where("id = ?", id).
		Take(&summary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("vendor %s not found", id)
		}
		return nil, err
	}
	return &summary, nil
}

func (d *VendorDirectoryImpl) SearchIds(ctx context.Context, query string) ([]uuid.UUID, error) {
	var ids []uuid.UUID
	pattern := "%" + query + "%"
	err := d.db.WithContext(ctx).
		Table("vendors").
		Where("business_name ILIKE ? OR email ILIKE ?", pattern, pattern).
		Limit(vendorSearchLimit).
		Pluck("id", &ids).Error
	if err != nil {
		return nil, err
	}
	return ids, nil
}
