// Package registry maps each featurable resource type onto the listing
// collection that owns it. The listing tables belong to the wider platform;
// this service only ever reads the three display columns, so the binding is a
// table name plus column aliases rather than a full model per type.
package registry

import (
	"context"
	"errors"
	"fmt"
	"time"

	"featured-listing-be/internal/entity"
	"featured-listing-be/internal/pkg/apperror"
	"featured-listing-be/internal/repository/contract"

	gocache "github.com/patrickmn/go-cache"
	"gorm.io/gorm"
)

type binding struct {
	table     string
	name      string
	thumbnail string
	location  string
}

// Column names differ per collection because each listing type predates this
// service; the registry absorbs that instead of every caller switching on the
// type string.
var bindings = map[entity.ResourceType]binding{
	entity.ResourceTypeRoom:        {table: "rooms", name: "title", thumbnail: "thumbnail", location: "location"},
	entity.ResourceTypeMenu:        {table: "menus", name: "dish_name", thumbnail: "image_url", location: "restaurant_city"},
	entity.ResourceTypeShortlet:    {table: "shortlets", name: "title", thumbnail: "thumbnail", location: "address"},
	entity.ResourceTypeRestaurant:  {table: "restaurants", name: "name", thumbnail: "logo_url", location: "city"},
	entity.ResourceTypeEventCenter: {table: "event_centers", name: "name", thumbnail: "thumbnail", location: "address"},
	entity.ResourceTypeTourGuide:   {table: "tour_guides", name: "display_name", thumbnail: "avatar_url", location: "state"},
	entity.ResourceTypeChop:        {table: "chops", name: "name", thumbnail: "image_url", location: "city"},
	entity.ResourceTypeGift:        {table: "gifts", name: "name", thumbnail: "image_url", location: "city"},
}

type ResourceRegistry struct {
	db    *gorm.DB
	cache *gocache.Cache
}

func NewResourceRegistry(db *gorm.DB) contract.ResourceDirectory {
	return &ResourceRegistry{
		db:    db,
		cache: gocache.New(5*time.Minute, 10*time.Minute),
	}
}

func (r *ResourceRegistry) FindById(ctx context.Context, resourceType entity.ResourceType, resourceId string) (*entity.ResourceSummary, error) {
	b, ok := bindings[resourceType]
	if !ok {
		return nil, apperror.InvalidArgument("unknown resource type %q", resourceType)
	}

	cacheKey := fmt.Sprintf("%s:%s", resourceType, resourceId)
	if cached, found := r.cache.Get(cacheKey); found {
		summary := cached.(entity.ResourceSummary)
		return &summary, nil
	}

	var summary entity.ResourceSummary
	err := r.db.WithContext(ctx).
		Table(b.table).
		Select(fmt.Sprintf("%s AS name, %s AS thumbnail, %s AS location", b.name, b.thumbnail, b.location)).
		Where("id = ?", resourceId).
		Take(&summary).Error
	if err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, apperror.NotFound("%s %s not found", resourceType, resourceId)
		}
		return nil, err
	}

	r.cache.Set(cacheKey, summary, gocache.DefaultExpiration)
	return &summary, nil
}
