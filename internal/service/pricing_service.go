// FILE: internal/service/pricing_service.go
package service

import (
	"context"
	"fmt"

	"featured-listing-be/internal/dto"
	"featured-listing-be/internal/entity"
	"featured-listing-be/internal/pkg/apperror"
	"featured-listing-be/internal/repository/unitofwork"

	gocache "github.com/patrickmn/go-cache"
)

const priceCacheKey = "feature-pricing:matrix"

// DefaultPriceTable guarantees every (scope, duration) cell resolves even
// before an admin ever touches pricing. Values are naira.
var DefaultPriceTable = map[entity.FeatureScope]map[entity.DurationCode]int64{
	entity.FeatureScopeLocal: {
		entity.DurationCode7Days:   5000,
		entity.DurationCode1Month:  15000,
		entity.DurationCode6Months: 70000,
		entity.DurationCode1Year:   120000,
	},
	entity.FeatureScopeGlobal: {
		entity.DurationCode7Days:   10000,
		entity.DurationCode1Month:  25000,
		entity.DurationCode6Months: 120000,
		entity.DurationCode1Year:   200000,
	},
}

type IPricingService interface {
	// EnsureDefaults fills any missing cell of the 2x4 matrix. Called once at
	// startup so GetPrice is total for every valid pair.
	EnsureDefaults(ctx context.Context) error
	GetPrice(ctx context.Context, scope entity.FeatureScope, code entity.DurationCode) (int64, error)
	SetPrice(ctx context.Context, req *dto.SetPriceRequest) (*dto.PriceEntryResponse, error)
	ListAll(ctx context.Context) ([]*dto.PriceEntryResponse, error)
}

type pricingService struct {
	uowFactory unitofwork.RepositoryFactory
	cache      *gocache.Cache
}

func NewPricingService(uowFactory unitofwork.RepositoryFactory, cache *gocache.Cache) IPricingService {
	return &pricingService{
		uowFactory: uowFactory,
		cache:      cache,
	}
}

func (s *pricingService) EnsureDefaults(ctx context.Context) error {
	uow := s.uowFactory.NewUnitOfWork(ctx)
	repo := uow.PriceRepository()

	for scope, cells := range DefaultPriceTable {
		for code, price := range cells {
			existing, err := repo.FindCell(ctx, scope, code)
			if err != nil {
				return err
			}
			if existing != nil {
				continue
			}
			entry := &entity.PriceEntry{Scope: scope, DurationCode: code, Price: price}
			if err := repo.Upsert(ctx, entry); err != nil {
				return err
			}
		}
	}
	s.cache.Delete(priceCacheKey)
	return nil
}

func (s *pricingService) GetPrice(ctx context.Context, scope entity.FeatureScope, code entity.DurationCode) (int64, error) {
	if !scope.Valid() {
		return 0, apperror.InvalidArgument("unknown scope %q", scope)
	}
	if !code.Valid() {
		return 0, apperror.InvalidArgument("unknown duration code %q", code)
	}

	if cached, found := s.cache.Get(s.cellKey(scope, code)); found {
		return cached.(int64), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	entry, err := uow.PriceRepository().FindCell(ctx, scope, code)
	if err != nil {
		return 0, err
	}
	if entry == nil {
		// Seeding guarantees coverage; reaching here means the table was
		// tampered with out of band. The default still makes the call total.
		if price, ok := DefaultPriceTable[scope][code]; ok {
			return price, nil
		}
		return 0, apperror.NotFound("no price configured for %s/%s", scope, code)
	}

	s.cache.Set(s.cellKey(scope, code), entry.Price, gocache.DefaultExpiration)
	return entry.Price, nil
}

func (s *pricingService) SetPrice(ctx context.Context, req *dto.SetPriceRequest) (*dto.PriceEntryResponse, error) {
	if req.Price <= 0 {
		return nil, apperror.InvalidArgument("price must be positive")
	}

	entry := &entity.PriceEntry{
		Scope:        entity.FeatureScope(req.Type),
		DurationCode: entity.DurationCode(req.Duration),
		Price:        req.Price,
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	if err := uow.PriceRepository().Upsert(ctx, entry); err != nil {
		return nil, err
	}

	s.cache.Delete(s.cellKey(entry.Scope, entry.DurationCode))
	s.cache.Delete(priceCacheKey)

	return &dto.PriceEntryResponse{
		Type:     string(entry.Scope),
		Duration: string(entry.DurationCode),
		Price:    entry.Price,
	}, nil
}

func (s *pricingService) ListAll(ctx context.Context) ([]*dto.PriceEntryResponse, error) {
	if cached, found := s.cache.Get(priceCacheKey); found {
		return cached.([]*dto.PriceEntryResponse), nil
	}

	uow := s.uowFactory.NewUnitOfWork(ctx)
	entries, err := uow.PriceRepository().FindAll(ctx)
	if err != nil {
		return nil, err
	}

	res := make([]*dto.PriceEntryResponse, 0, len(entries))
	for _, e := range entries {
		res = append(res, &dto.PriceEntryResponse{
			Type:     string(e.Scope),
			Duration: string(e.DurationCode),
			Price:    e.Price,
		})
	}

	s.cache.Set(priceCacheKey, res, gocache.DefaultExpiration)
	return res, nil
}

func (s *pricingService) cellKey(scope entity.FeatureScope, code entity.DurationCode) string {
	return fmt.Sprintf("feature-pricing:%s:%s", scope, code)
}
