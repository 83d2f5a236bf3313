// FILE: internal/service/pricing_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"featured-listing-be/internal/dto"
	"featured-listing-be/internal/entity"
	"featured-listing-be/internal/pkg/apperror"

	gocache "github.com/patrickmn/go-cache"
	"github.com/stretchr/testify/assert"
)

type priceCell struct {
	scope entity.FeatureScope
	code  entity.DurationCode
}

type fakePriceRepo struct {
	cells     map[priceCell]*entity.PriceEntry
	findCalls int
}

func newFakePriceRepo() *fakePriceRepo {
	return &fakePriceRepo{cells: make(map[priceCell]*entity.PriceEntry)}
}

func (r *fakePriceRepo) Upsert(ctx context.Context, entry *entity.PriceEntry) error {
	cp := *entry
	r.cells[priceCell{entry.Scope, entry.DurationCode}] = &cp
	return nil
}

func (r *fakePriceRepo) FindCell(ctx context.Context, scope entity.FeatureScope, code entity.DurationCode) (*entity.PriceEntry, error) {
	r.findCalls++
	entry, ok := r.cells[priceCell{scope, code}]
	if !ok {
		return nil, nil
	}
	cp := *entry
	return &cp, nil
}

func (r *fakePriceRepo) FindAll(ctx context.Context) ([]*entity.PriceEntry, error) {
	var out []*entity.PriceEntry
	for _, entry := range r.cells {
		cp := *entry
		out = append(out, &cp)
	}
	return out, nil
}

func newTestPricingService() (IPricingService, *fakePriceRepo) {
	repo := newFakePriceRepo()
	uow := &fakeUnitOfWork{
		features: newFakeFeatureRecordRepo(),
		attempts: newFakePaymentAttemptRepo(),
		prices:   repo,
	}
	svc := NewPricingService(&fakeRepositoryFactory{uow: uow}, gocache.New(time.Minute, time.Minute))
	return svc, repo
}

func TestEnsureDefaultsFillsEveryCell(t *testing.T) {
	svc, repo := newTestPricingService()

	err := svc.EnsureDefaults(context.Background())
	assert.NoError(t, err)
	assert.Len(t, repo.cells, 8, "two scopes times four durations")

	for scope, cells := range DefaultPriceTable {
		for code, want := range cells {
			price, err := svc.GetPrice(context.Background(), scope, code)
			assert.NoError(t, err)
			assert.Equal(t, want, price, "%s/%s", scope, code)
		}
	}
}

func TestEnsureDefaultsPreservesAdminPrices(t *testing.T) {
	svc, repo := newTestPricingService()

	// Admin already priced this cell; seeding must not overwrite it.
	err := repo.Upsert(context.Background(), &entity.PriceEntry{
		Scope:        entity.FeatureScopeLocal,
		DurationCode: entity.DurationCode7Days,
		Price:        9999,
	})
	assert.NoError(t, err)

	err = svc.EnsureDefaults(context.Background())
	assert.NoError(t, err)

	price, err := svc.GetPrice(context.Background(), entity.FeatureScopeLocal, entity.DurationCode7Days)
	assert.NoError(t, err)
	assert.Equal(t, int64(9999), price)
}

func TestGetPriceCachesLookups(t *testing.T) {
	svc, repo := newTestPricingService()
	assert.NoError(t, svc.EnsureDefaults(context.Background()))

	before := repo.findCalls
	_, err := svc.GetPrice(context.Background(), entity.FeatureScopeGlobal, entity.DurationCode1Year)
	assert.NoError(t, err)
	_, err = svc.GetPrice(context.Background(), entity.FeatureScopeGlobal, entity.DurationCode1Year)
	assert.NoError(t, err)
	assert.Equal(t, before+1, repo.findCalls, "second read should come from cache")
}

func TestGetPriceRejectsUnknownCells(t *testing.T) {
	svc, _ := newTestPricingService()

	_, err := svc.GetPrice(context.Background(), "regional", entity.DurationCode7Days)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidArgument))

	_, err = svc.GetPrice(context.Background(), entity.FeatureScopeLocal, "90d")
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidArgument))
}

func TestSetPriceInvalidatesCache(t *testing.T) {
	svc, _ := newTestPricingService()
	assert.NoError(t, svc.EnsureDefaults(context.Background()))

	// Warm the cache.
	price, err := svc.GetPrice(context.Background(), entity.FeatureScopeLocal, entity.DurationCode1Month)
	assert.NoError(t, err)
	assert.Equal(t, int64(15000), price)

	_, err = svc.SetPrice(context.Background(), &dto.SetPriceRequest{
		Type:     string(entity.FeatureScopeLocal),
		Duration: string(entity.DurationCode1Month),
		Price:    20000,
	})
	assert.NoError(t, err)

	price, err = svc.GetPrice(context.Background(), entity.FeatureScopeLocal, entity.DurationCode1Month)
	assert.NoError(t, err)
	assert.Equal(t, int64(20000), price)
}

func TestSetPriceRejectsNonPositive(t *testing.T) {
	svc, _ := newTestPricingService()

	_, err := svc.SetPrice(context.Background(), &dto.SetPriceRequest{
		Type:     string(entity.FeatureScopeLocal),
		Duration: string(entity.DurationCode7Days),
		Price:    0,
	})
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidArgument))
}
