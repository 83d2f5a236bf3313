// FILE: internal/dto/pricing_dto.go
package dto

// SetPriceRequest upserts one cell of the pricing matrix (admin only).
type SetPriceRequest struct {
	Type     string `json:"type" validate:"required,oneof=local global"`
	Duration string `json:"duration" validate:"required,oneof=7d 1m 6m 1y"`
	Price    int64  `json:"price" validate:"required,gt=0"`
}

// PriceEntryResponse is one row of the public price table. The server
// guarantees all 8 cells exist, so clients never need fallback tables.
type PriceEntryResponse struct {
	Type     string `json:"type"`
	Duration string `json:"duration"`
	Price    int64  `json:"price"`
}
