package entity

import (
	"time"

	"github.com/google/uuid"
)

type ResourceType string
type FeatureScope string
type FeatureStatus string
type DurationCode string

const (
	ResourceTypeRoom        ResourceType = "room"
	ResourceTypeMenu        ResourceType = "menu"
	ResourceTypeShortlet    ResourceType = "shortlet"
	ResourceTypeRestaurant  ResourceType = "restaurant"
	ResourceTypeEventCenter ResourceType = "eventcenter"
	ResourceTypeTourGuide   ResourceType = "tourguide"
	ResourceTypeChop        ResourceType = "chop"
	ResourceTypeGift        ResourceType = "gift"

	FeatureScopeLocal  FeatureScope = "local"
	FeatureScopeGlobal FeatureScope = "global"

	FeatureStatusScheduled  FeatureStatus = "scheduled"
	FeatureStatusActive     FeatureStatus = "active"
	FeatureStatusExpired    FeatureStatus = "expired"
	FeatureStatusUnfeatured FeatureStatus = "unfeatured"

	DurationCode7Days   DurationCode = "7d"
	DurationCode1Month  DurationCode = "1m"
	DurationCode6Months DurationCode = "6m"
	DurationCode1Year   DurationCode = "1y"
)

// ResourceTypes lists every listing type that can carry a featured placement.
var ResourceTypes = []ResourceType{
	ResourceTypeRoom,
	ResourceTypeMenu,
	ResourceTypeShortlet,
	ResourceTypeRestaurant,
	ResourceTypeEventCenter,
	ResourceTypeTourGuide,
	ResourceTypeChop,
	ResourceTypeGift,
}

// durationCodeDays maps a pricing bucket to the day-count stored on records.
var durationCodeDays = map[DurationCode]int{
	DurationCode7Days:   7,
	DurationCode1Month:  30,
	DurationCode6Months: 180,
	DurationCode1Year:   365,
}

func (r ResourceType) Valid() bool {
	for _, t := range ResourceTypes {
		if r == t {
			return true
		}
	}
	return false
}

func (s FeatureScope) Valid() bool {
	return s == FeatureScopeLocal || s == FeatureScopeGlobal
}

func (d DurationCode) Valid() bool {
	_, ok := durationCodeDays[d]
	return ok
}

// Days converts the pricing bucket to the canonical day count. Records always
// store days; codes exist only at the purchase boundary and in the price table.
func (d DurationCode) Days() int {
	return durationCodeDays[d]
}

// FeatureRecord is a paid, time-boxed promotional placement for one resource.
// The active window is half-open: [FeaturedFrom, FeaturedTo).
type FeatureRecord struct {
	Id             uuid.UUID
	ResourceType   ResourceType
	ResourceId     string
	VendorId       uuid.UUID
	Scope          FeatureScope
	ScopeState     string // state/region, set only for local scope
	FeaturedFrom   time.Time
	FeaturedTo     time.Time
	TransactionRef *string // payment idempotency key, nil for admin-created records
	Provider       *string
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// ResolveStatus derives the placement status from the stored window. Status is
// never persisted; every read computes it fresh so multiple stateless
// instances can never drift.
func ResolveStatus(featuredFrom, featuredTo, now time.Time) FeatureStatus {
	switch {
	case now.Before(featuredFrom):
		return FeatureStatusScheduled
	case now.Before(featuredTo):
		return FeatureStatusActive
	default:
		return FeatureStatusExpired
	}
}

func (f *FeatureRecord) StatusAt(now time.Time) FeatureStatus {
	return ResolveStatus(f.FeaturedFrom, f.FeaturedTo, now)
}

// Live reports whether the record still owns the resource's placement slot,
// i.e. it is scheduled or active. Only live records block a new window.
func (f *FeatureRecord) Live(now time.Time) bool {
	return now.Before(f.FeaturedTo)
}
