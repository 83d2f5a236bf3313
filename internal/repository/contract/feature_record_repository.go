package contract

import (
	"context"
	"time"

	"featured-listing-be/internal/entity"
	"featured-listing-be/internal/repository/specification"

	"github.com/google/uuid"
)

type FeatureRecordRepository interface {
	Create(ctx context.Context, record *entity.FeatureRecord) error
	Delete(ctx context.Context, id uuid.UUID) error
	FindOne(ctx context.Context, specs ...specification.Specification) (*entity.FeatureRecord, error)
	FindAll(ctx context.Context, specs ...specification.Specification) ([]*entity.FeatureRecord, error)
	Count(ctx context.Context, specs ...specification.Specification) (int64, error)

	// CountActiveByType powers the admin overview breakdown.
	CountActiveByType(ctx context.Context, now time.Time) (map[entity.ResourceType]int64, error)

	// ExtendWindow pushes featured_to forward by whole days as a single SQL
	// increment, so concurrent extends compose instead of losing updates.
	ExtendWindow(ctx context.Context, id uuid.UUID, days int) (*entity.FeatureRecord, error)

	// CloseWindow clamps featured_to to at most the given instant. Calling it
	// again later is a no-op, which makes unfeature idempotent.
	CloseWindow(ctx context.Context, id uuid.UUID, now time.Time) (*entity.FeatureRecord, error)
}
