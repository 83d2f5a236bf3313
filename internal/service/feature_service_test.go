// FILE: internal/service/feature_service_test.go
package service

import (
	"context"
	"testing"
	"time"

	"featured-listing-be/internal/entity"
	"featured-listing-be/internal/pkg/apperror"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
)

type fakeVendorSearcher struct {
	ids []uuid.UUID
}

func (f *fakeVendorSearcher) SearchIds(ctx context.Context, query string) ([]uuid.UUID, error) {
	return f.ids, nil
}

func newTestFeatureService() (IFeatureService, *fakeUnitOfWork) {
	uow := &fakeUnitOfWork{
		features: newFakeFeatureRecordRepo(),
		attempts: newFakePaymentAttemptRepo(),
	}
	svc := NewFeatureService(&fakeRepositoryFactory{uow: uow}, &fakeVendorSearcher{})
	return svc, uow
}

func TestCreateFeatureRejectsLiveOverlap(t *testing.T) {
	svc, _ := newTestFeatureService()
	params := CreateFeatureParams{
		ResourceType: entity.ResourceTypeShortlet,
		ResourceId:   "sl-42",
		VendorId:     uuid.New(),
		Scope:        entity.FeatureScopeGlobal,
		DurationDays: 7,
	}

	first, err := svc.Create(context.Background(), params)
	assert.NoError(t, err)
	assert.NotNil(t, first)

	_, err = svc.Create(context.Background(), params)
	assert.True(t, apperror.IsKind(err, apperror.KindConflict))

	// A different resource of the same type is unaffected.
	params.ResourceId = "sl-43"
	_, err = svc.Create(context.Background(), params)
	assert.NoError(t, err)
}

func TestCreateFeatureAllowedAfterExpiry(t *testing.T) {
	svc, uow := newTestFeatureService()
	params := CreateFeatureParams{
		ResourceType: entity.ResourceTypeRoom,
		ResourceId:   "room-1",
		VendorId:     uuid.New(),
		Scope:        entity.FeatureScopeLocal,
		ScopeState:   "Abuja",
		DurationDays: 7,
	}

	first, err := svc.Create(context.Background(), params)
	assert.NoError(t, err)

	// Push the stored window fully into the past.
	stored := uow.features.records[first.Id]
	stored.FeaturedFrom = stored.FeaturedFrom.AddDate(0, -1, 0)
	stored.FeaturedTo = stored.FeaturedTo.AddDate(0, -1, 0)

	second, err := svc.Create(context.Background(), params)
	assert.NoError(t, err)
	assert.NotEqual(t, first.Id, second.Id, "an expired window never blocks a new one")
}

func TestExtendFeature(t *testing.T) {
	svc, _ := newTestFeatureService()
	record, err := svc.Create(context.Background(), CreateFeatureParams{
		ResourceType: entity.ResourceTypeMenu,
		ResourceId:   "menu-9",
		VendorId:     uuid.New(),
		Scope:        entity.FeatureScopeGlobal,
		DurationDays: 7,
	})
	assert.NoError(t, err)

	extended, err := svc.Extend(context.Background(), record.Id, 30)
	assert.NoError(t, err)
	assert.Equal(t, record.FeaturedTo.AddDate(0, 0, 30), extended.FeaturedTo)

	// Extensions accumulate: a second extend adds on top of the first.
	extended, err = svc.Extend(context.Background(), record.Id, 7)
	assert.NoError(t, err)
	assert.Equal(t, record.FeaturedTo.AddDate(0, 0, 37), extended.FeaturedTo)

	_, err = svc.Extend(context.Background(), record.Id, 0)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidArgument))

	_, err = svc.Extend(context.Background(), uuid.New(), 7)
	assert.True(t, apperror.IsKind(err, apperror.KindNotFound))
}

func TestUnfeatureIsIdempotent(t *testing.T) {
	svc, _ := newTestFeatureService()
	record, err := svc.Create(context.Background(), CreateFeatureParams{
		ResourceType: entity.ResourceTypeTourGuide,
		ResourceId:   "tg-7",
		VendorId:     uuid.New(),
		Scope:        entity.FeatureScopeGlobal,
		DurationDays: 30,
	})
	assert.NoError(t, err)

	closed, err := svc.Unfeature(context.Background(), record.Id)
	assert.NoError(t, err)
	assert.False(t, closed.Live(time.Now().Add(time.Second)))

	// A second unfeature must not move the window end forward again.
	again, err := svc.Unfeature(context.Background(), record.Id)
	assert.NoError(t, err)
	assert.Equal(t, closed.FeaturedTo, again.FeaturedTo)
}

func TestListRejectsUnknownStatusFilter(t *testing.T) {
	svc, _ := newTestFeatureService()

	_, _, err := svc.List(context.Background(), ListFeaturesFilter{Status: "running"}, 1, 20)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidArgument))

	_, _, err = svc.List(context.Background(), ListFeaturesFilter{ResourceType: "hotel"}, 1, 20)
	assert.True(t, apperror.IsKind(err, apperror.KindInvalidArgument))
}
