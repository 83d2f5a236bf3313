// FILE: internal/dto/admin_dto.go
package dto

import "github.com/google/uuid"

// AdminCreateFeatureRequest creates a placement directly, bypassing payment.
// Duration is canonical days here, not a pricing code.
type AdminCreateFeatureRequest struct {
	ResourceType string    `json:"resource_type" validate:"required"`
	ResourceId   string    `json:"resource_id" validate:"required"`
	VendorId     uuid.UUID `json:"vendor_id" validate:"required"`
	FeatureType  string    `json:"feature_type" validate:"required,oneof=local global"`
	DurationDays int       `json:"duration_days" validate:"required,gt=0"`
	State        string    `json:"state,omitempty"`
}

// ExtendFeatureRequest pushes a placement's end forward. Days defaults to 7
// when omitted, matching the operator dashboard's quick-extend button.
type ExtendFeatureRequest struct {
	Days int `json:"days" validate:"omitempty,gt=0"`
}

// FeatureListItem is one admin table row: the record joined with display
// metadata. Placeholder fields appear when the listing or vendor was deleted.
type FeatureListItem struct {
	FeatureRecordResponse
	ResourceName string `json:"resource_name"`
	Thumbnail    string `json:"thumbnail,omitempty"`
	Location     string `json:"location,omitempty"`
	VendorName   string `json:"vendor_name"`
	VendorEmail  string `json:"vendor_email"`
}

// FeatureListResponse is a page of admin rows.
type FeatureListResponse struct {
	Rows  []FeatureListItem `json:"rows"`
	Total int64             `json:"total"`
	Page  int               `json:"page"`
	Limit int               `json:"limit"`
}

// AdminOverviewResponse is the ops dashboard headline.
type AdminOverviewResponse struct {
	TotalActive int64             `json:"total_active"`
	Breakdown   map[string]int64  `json:"breakdown"`
	Recent      []FeatureListItem `json:"recent"`
}
