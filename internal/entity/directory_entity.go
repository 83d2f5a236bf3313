package entity

import "github.com/google/uuid"

// ResourceSummary is the display-safe slice of a listing, looked up through
// the resource registry. The listing collections themselves belong to the
// wider platform; this service only reads these three columns.
type ResourceSummary struct {
	Name      string
	Thumbnail string
	Location  string
}

// VendorSummary is the slice of the vendor directory the admin surface needs.
type VendorSummary struct {
	Id    uuid.UUID
	Name  string
	Email string
}
