package contract

import (
	"context"

	"featured-listing-be/internal/entity"

	"github.com/google/uuid"
)

// ResourceDirectory resolves display metadata for any of the eight listing
// types. The listing collections are owned by the wider platform; lookups
// return apperror.KindNotFound when the underlying listing was deleted.
type ResourceDirectory interface {
	FindById(ctx context.Context, resourceType entity.ResourceType, resourceId string) (*entity.ResourceSummary, error)
}

// VendorDirectory resolves vendor identity for admin display and search.
type VendorDirectory interface {
	FindById(ctx context.Context, id uuid.UUID) (*entity.VendorSummary, error)
	// SearchIds returns vendor ids whose name or email contains the query.
	SearchIds(ctx context.Context, query string) ([]uuid.UUID, error)
}
