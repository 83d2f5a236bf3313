package mapper

import (
	"time"

	"featured-listing-be/internal/dto"
	"featured-listing-be/internal/entity"
)

// Display placeholders for records whose listing or vendor has been deleted.
// The record itself is kept for billing history, so the row must still render.
const (
	DeletedResourceName = "[deleted listing]"
	DeletedVendorName   = "[deleted vendor]"
)

// RecordToResponse converts a placement entity to its wire shape. Status is
// derived at conversion time, never read from storage.
func RecordToResponse(r *entity.FeatureRecord, now time.Time) *dto.FeatureRecordResponse {
	if r == nil {
		return nil
	}
	return &dto.FeatureRecordResponse{
		Id:             r.Id,
		ResourceType:   string(r.ResourceType),
		ResourceId:     r.ResourceId,
		VendorId:       r.VendorId,
		FeatureType:    string(r.Scope),
		State:          r.ScopeState,
		FeaturedFrom:   r.FeaturedFrom,
		FeaturedTo:     r.FeaturedTo,
		Status:         string(r.StatusAt(now)),
		TransactionRef: r.TransactionRef,
		Provider:       r.Provider,
		CreatedAt:      r.CreatedAt,
	}
}

// RecordToListItem joins a placement with its display metadata. Nil summaries
// degrade to placeholders instead of dropping the row.
func RecordToListItem(r *entity.FeatureRecord, resource *entity.ResourceSummary, vendor *entity.VendorSummary, now time.Time) dto.FeatureListItem {
	item := dto.FeatureListItem{
		FeatureRecordResponse: *RecordToResponse(r, now),
		ResourceName:          DeletedResourceName,
		VendorName:            DeletedVendorName,
	}
	if resource != nil {
		item.ResourceName = resource.Name
		item.Thumbnail = resource.Thumbnail
		item.Location = resource.Location
	}
	if vendor != nil {
		item.VendorName = vendor.Name
		item.VendorEmail = vendor.Email
	}
	return item
}
