package service

import (
	"context"
	"encoding/json"
	"time"

	"featured-listing-be/internal/dto"
	"featured-listing-be/internal/entity"
	"featured-listing-be/internal/pkg/apperror"
	"featured-listing-be/internal/pkg/logger"
	"featured-listing-be/internal/repository/contract"
	"featured-listing-be/internal/repository/specification"
	"featured-listing-be/internal/repository/unitofwork"

	"github.com/redis/go-redis/v9"
)

const (
	// featuredCacheTTL keeps the public rail fresh enough that an expiry is
	// visible within a minute while absorbing the homepage read load.
	featuredCacheTTL = 60 * time.Second

	// featuredMaxResults caps a single rail. The homepage never renders more.
	featuredMaxResults = 50
)

// FeaturedFilter narrows the public rail. Zero values mean no filter.
type FeaturedFilter struct {
	ResourceType string
	Scope        string
	State        string
}

type IFeaturedService interface {
	// ActiveListings returns the public projection of currently active
	// placements, newest window first. Listings deleted since purchase are
	// silently dropped rather than rendered as placeholders.
	ActiveListings(ctx context.Context, filter FeaturedFilter) ([]dto.FeaturedListingResponse, error)
}

type featuredService struct {
	uowFactory  unitofwork.RepositoryFactory
	resourceDir contract.ResourceDirectory
	rdb         *redis.Client
	logger      logger.ILogger
}

func NewFeaturedService(uowFactory unitofwork.RepositoryFactory, resourceDir contract.ResourceDirectory, rdb *redis.Client, sysLogger logger.ILogger) IFeaturedService {
	return &featuredService{
		uowFactory:  uowFactory,
		resourceDir: resourceDir,
		rdb:         rdb,
		logger:      sysLogger,
	}
}

func (s *featuredService) ActiveListings(ctx context.Context, filter FeaturedFilter) ([]dto.FeaturedListingResponse, error) {
	if filter.ResourceType != "" && !entity.ResourceType(filter.ResourceType).Valid() {
		return nil, apperror.InvalidArgument("unknown resource type %q", filter.ResourceType)
	}
	if filter.Scope != "" && !entity.FeatureScope(filter.Scope).Valid() {
		return nil, apperror.InvalidArgument("feature type must be local or global")
	}

	cacheKey := "featured:active:" + filter.ResourceType + ":" + filter.Scope + ":" + filter.State
	if cached := s.readCache(ctx, cacheKey); cached != nil {
		return cached, nil
	}

	now := time.Now()
	specs := []specification.Specification{
		specification.ActiveAt{Now: now},
		specification.OrderBy{Field: "featured_from", Desc: true},
		specification.Pagination{Limit: featuredMaxResults},
	}
	if filter.ResourceType != "" {
		specs = append(specs, specification.Filter("resource_type", filter.ResourceType))
	}
	if filter.Scope != "" {
		specs = append(specs, specification.Filter("scope", filter.Scope))
	}
	if filter.State != "" {
		specs = append(specs, specification.Filter("scope_state", filter.State))
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	records, err := uow.FeatureRecordRepository().FindAll(ctx, specs...)
	if err != nil {
		return nil, err
	}

	listings := make([]dto.FeaturedListingResponse, 0, len(records))
	for _, r := range records {
		resource, err := s.resourceDir.FindById(ctx, r.ResourceType, r.ResourceId)
		if err != nil {
			if !apperror.IsKind(err, apperror.KindNotFound) {
				s.logger.Warn("FeaturedService", "resource lookup failed", map[string]interface{}{
					"resource_type": r.ResourceType,
					"resource_id":   r.ResourceId,
					"error":         err.Error(),
				})
			}
			continue
		}
		listings = append(listings, dto.FeaturedListingResponse{
			ResourceType: string(r.ResourceType),
			ResourceId:   r.ResourceId,
			Name:         resource.Name,
			Thumbnail:    resource.Thumbnail,
			Location:     resource.Location,
			Scope:        string(r.Scope),
			State:        r.ScopeState,
		})
	}

	s.writeCache(ctx, cacheKey, listings)
	return listings, nil
}

// readCache returns nil on any miss or failure; the rail always has the
// database to fall back on.
func (s *featuredService) readCache(ctx context.Context, key string) []dto.FeaturedListingResponse {
	if s.rdb == nil {
		return nil
	}
	raw, err := s.rdb.Get(ctx, key).Bytes()
	if err != nil {
		return nil
	}
	var listings []dto.FeaturedListingResponse
	if err := json.Unmarshal(raw, &listings); err != nil {
		return nil
	}
	return listings
}

func (s *featuredService) writeCache(ctx context.Context, key string, listings []dto.FeaturedListingResponse) {
	if s.rdb == nil {
		return
	}
	raw, err := json.Marshal(listings)
	if err != nil {
		return
	}
	if err := s.rdb.Set(ctx, key, raw, featuredCacheTTL).Err(); err != nil {
		s.logger.Warn("FeaturedService", "cache write failed", map[string]interface{}{"error": err.Error()})
	}
}
