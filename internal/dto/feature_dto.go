// FILE: internal/dto/feature_dto.go
// DTOs for the vendor purchase flow and feature record display
package dto

import (
	"time"

	"github.com/google/uuid"
)

// VerifyPurchaseRequest carries the intended placement for a paid
// transaction reference. Duration is a pricing code (7d/1m/6m/1y); the
// controller converts it to days before anything is stored.
type VerifyPurchaseRequest struct {
	ResourceId  string `json:"resource_id" validate:"required"`
	FeatureType string `json:"feature_type" validate:"required,oneof=local global"`
	Duration    string `json:"duration" validate:"required,oneof=7d 1m 6m 1y"`
	State       string `json:"state,omitempty"`
}

// FeatureRecordResponse is the canonical wire shape of a placement.
type FeatureRecordResponse struct {
	Id             uuid.UUID `json:"id"`
	ResourceType   string    `json:"resource_type"`
	ResourceId     string    `json:"resource_id"`
	VendorId       uuid.UUID `json:"vendor_id"`
	FeatureType    string    `json:"feature_type"`
	State          string    `json:"state,omitempty"`
	FeaturedFrom   time.Time `json:"featured_from"`
	FeaturedTo     time.Time `json:"featured_to"`
	Status         string    `json:"status"`
	TransactionRef *string   `json:"transaction_ref,omitempty"`
	Provider       *string   `json:"provider,omitempty"`
	CreatedAt      time.Time `json:"created_at"`
}

// PublishFeatureActivatedMessage flows through the in-process receipt
// pipeline after a successful purchase.
type PublishFeatureActivatedMessage struct {
	FeatureRecordId uuid.UUID `json:"feature_record_id"`
	VendorId        uuid.UUID `json:"vendor_id"`
	ResourceType    string    `json:"resource_type"`
	ResourceId      string    `json:"resource_id"`
	Provider        string    `json:"provider"`
	TransactionRef  string    `json:"transaction_ref"`
	Amount          int64     `json:"amount"`
	FeaturedTo      time.Time `json:"featured_to"`
	Extended        bool      `json:"extended"`
}
