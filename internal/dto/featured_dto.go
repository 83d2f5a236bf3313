// FILE: internal/dto/featured_dto.go
package dto

// FeaturedListingResponse is the public-safe projection of an active
// placement: no vendor identity, no payment detail, no window internals.
type FeaturedListingResponse struct {
	ResourceType string `json:"resource_type"`
	ResourceId   string `json:"resource_id"`
	Name         string `json:"name"`
	Thumbnail    string `json:"thumbnail,omitempty"`
	Location     string `json:"location,omitempty"`
	Scope        string `json:"scope"`
	State        string `json:"state,omitempty"`
}
