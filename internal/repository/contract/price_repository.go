package contract

import (
	"context"

	"featured-listing-be/internal/entity"
)

type PriceRepository interface {
	// Upsert writes one pricing cell, inserting or replacing on the
	// (scope, duration_code) unique index.
	Upsert(ctx context.Context, entry *entity.PriceEntry) error
	FindCell(ctx context.Context, scope entity.FeatureScope, code entity.DurationCode) (*entity.PriceEntry, error)
	FindAll(ctx context.Context) ([]*entity.PriceEntry, error)
}
