package overview

import (
	"context"
	"time"

	"featured-listing-be/internal/dto"
	"featured-listing-be/internal/entity"
	"featured-listing-be/internal/pkg/apperror"
	"featured-listing-be/internal/pkg/logger"
	"featured-listing-be/internal/repository/contract"
	"featured-listing-be/internal/repository/specification"
	"featured-listing-be/internal/repository/unitofwork"
	"featured-listing-be/pkg/admin/mapper"
)

const recentLimit = 10

// Aggregator assembles the ops dashboard headline: active placement counts
// and the latest purchases with display metadata joined in.
type Aggregator struct {
	resourceDir contract.ResourceDirectory
	vendorDir   contract.VendorDirectory
	logger      logger.ILogger
}

// NewAggregator creates a new overview aggregator
func NewAggregator(resourceDir contract.ResourceDirectory, vendorDir contract.VendorDirectory, sysLogger logger.ILogger) *Aggregator {
	return &Aggregator{
		resourceDir: resourceDir,
		vendorDir:   vendorDir,
		logger:      sysLogger,
	}
}

// GetOverview retrieves dashboard statistics
func (a *Aggregator) GetOverview(ctx context.Context, uow unitofwork.UnitOfWork) (*dto.AdminOverviewResponse, error) {
	now := time.Now()
	repo := uow.FeatureRecordRepository()

	totalActive, err := repo.Count(ctx, specification.ActiveAt{Now: now})
	if err != nil {
		return nil, err
	}

	byType, err := repo.CountActiveByType(ctx, now)
	if err != nil {
		return nil, err
	}
	// Every known type appears in the breakdown, zero or not, so the
	// dashboard tiles never shift around.
	breakdown := make(map[string]int64, len(entity.ResourceTypes))
	for _, rt := range entity.ResourceTypes {
		breakdown[string(rt)] = byType[rt]
	}

	recent, err := repo.FindAll(ctx,
		specification.OrderBy{Field: "created_at", Desc: true},
		specification.Pagination{Limit: recentLimit},
	)
	if err != nil {
		return nil, err
	}

	return &dto.AdminOverviewResponse{
		TotalActive: totalActive,
		Breakdown:   breakdown,
		Recent:      a.Decorate(ctx, recent, now),
	}, nil
}

// Decorate joins placements with listing and vendor metadata. Directory
// misses degrade to placeholder rows; any other directory failure is logged
// and degrades the same way so one broken lookup cannot sink a whole page.
func (a *Aggregator) Decorate(ctx context.Context, records []*entity.FeatureRecord, now time.Time) []dto.FeatureListItem {
	items := make([]dto.FeatureListItem, 0, len(records))
	for _, r := range records {
		resource, err := a.resourceDir.FindById(ctx, r.ResourceType, r.ResourceId)
		if err != nil && !apperror.IsKind(err, apperror.KindNotFound) {
			a.logger.Warn("AdminOverview", "resource lookup failed", map[string]interface{}{
				"resource_type": r.ResourceType,
				"resource_id":   r.ResourceId,
				"error":         err.Error(),
			})
		}
		vendor, err := a.vendorDir.FindById(ctx, r.VendorId)
		if err != nil && !apperror.IsKind(err, apperror.KindNotFound) {
			a.logger.Warn("AdminOverview", "vendor lookup failed", map[string]interface{}{
				"vendor_id": r.VendorId,
				"error":     err.Error(),
			})
		}
		items = append(items, mapper.RecordToListItem(r, resource, vendor, now))
	}
	return items
}
