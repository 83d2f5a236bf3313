package specification

import (
	"time"

	"featured-listing-be/internal/entity"

	"github.com/google/uuid"
	"gorm.io/gorm"
)

// Window specifications translate the derived status into range predicates on
// the stored timestamps, so status filtering happens in SQL without a status
// column ever existing.

// ActiveAt matches records whose window contains the instant.
type ActiveAt struct {
	Now time.Time
}

func (s ActiveAt) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("featured_from <= ? AND featured_to > ?", s.Now, s.Now)
}

// ScheduledAt matches records whose window has not opened yet.
type ScheduledAt struct {
	Now time.Time
}

func (s ScheduledAt) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("featured_from > ?", s.Now)
}

// ExpiredAt matches records whose window has closed.
type ExpiredAt struct {
	Now time.Time
}

func (s ExpiredAt) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("featured_to <= ?", s.Now)
}

// LiveAt matches scheduled or active records, i.e. anything still holding the
// resource's placement slot.
type LiveAt struct {
	Now time.Time
}

func (s LiveAt) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("featured_to > ?", s.Now)
}

// ByResource pins a record to one listing.
type ByResource struct {
	ResourceType entity.ResourceType
	ResourceId   string
}

func (s ByResource) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("resource_type = ? AND resource_id = ?", string(s.ResourceType), s.ResourceId)
}

// ByVendor filters records owned by a vendor.
type ByVendor struct {
	VendorId uuid.UUID
}

func (s ByVendor) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("vendor_id = ?", s.VendorId)
}

// ByTransactionRef filters by the payment idempotency key.
type ByTransactionRef struct {
	Ref string
}

func (s ByTransactionRef) Apply(db *gorm.DB) *gorm.DB {
	return db.Where("transaction_ref = ?", s.Ref)
}

// MatchQuery implements the admin free-text search: substring on the resource
// id, or any of the vendor ids the directory matched for the same text.
type MatchQuery struct {
	Text      string
	VendorIds []uuid.UUID
}

func (s MatchQuery) Apply(db *gorm.DB) *gorm.DB {
	pattern := "%" + s.Text + "%"
	if len(s.VendorIds) == 0 {
		return db.Where("resource_id ILIKE ?", pattern)
	}
	return db.Where("resource_id ILIKE ? OR vendor_id IN ?", pattern, s.VendorIds)
}
