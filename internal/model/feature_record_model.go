package model

import (
	"time"

	"github.com/google/uuid"
)

// FeatureRecord persists a promotional placement window. Status is derived at
// read time from featured_from/featured_to and never stored.
type FeatureRecord struct {
	Id             uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	ResourceType   string    `gorm:"type:resource_type;not null;index:idx_feature_resource,priority:1"`
	ResourceId     string    `gorm:"type:varchar(64);not null;index:idx_feature_resource,priority:2"`
	VendorId       uuid.UUID `gorm:"type:uuid;not null;index"`
	Scope          string    `gorm:"type:feature_scope;not null"`
	ScopeState     string    `gorm:"type:varchar(100)"`
	FeaturedFrom   time.Time `gorm:"not null"`
	FeaturedTo     time.Time `gorm:"not null;index"`
	TransactionRef *string   `gorm:"type:varchar(128);uniqueIndex"`
	Provider       *string   `gorm:"type:varchar(32)"`
	CreatedAt      time.Time `gorm:"autoCreateTime"`
	UpdatedAt      time.Time `gorm:"autoUpdateTime"`
}

func (FeatureRecord) TableName() string {
	return "feature_records"
}
