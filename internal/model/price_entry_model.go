package model

import (
	"time"

	"github.com/google/uuid"
)

// PriceEntry is one cell of the feature pricing matrix.
type PriceEntry struct {
	Id           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Scope        string    `gorm:"type:feature_scope;not null;uniqueIndex:ux_price_cell,priority:1"`
	DurationCode string    `gorm:"type:varchar(8);not null;uniqueIndex:ux_price_cell,priority:2"`
	Price        int64     `gorm:"not null"`
	CreatedAt    time.Time `gorm:"autoCreateTime"`
	UpdatedAt    time.Time `gorm:"autoUpdateTime"`
}

func (PriceEntry) TableName() string {
	return "feature_price_entries"
}
