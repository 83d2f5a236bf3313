package entity

import (
	"time"

	"github.com/google/uuid"
)

// PriceEntry is one cell of the 2x4 pricing matrix (scope x duration code).
// Prices are whole currency units (naira).
type PriceEntry struct {
	Id           uuid.UUID
	Scope        FeatureScope
	DurationCode DurationCode
	Price        int64
	CreatedAt    time.Time
	UpdatedAt    time.Time
}
