package integration

import (
	"context"
	"log"
	"os"
	"testing"
	"time"

	"featured-listing-be/internal/entity"
	"featured-listing-be/internal/repository/specification"
	"featured-listing-be/internal/repository/unitofwork"
	"featured-listing-be/pkg/database"

	"github.com/google/uuid"
	"github.com/joho/godotenv"
	"github.com/stretchr/testify/assert"
)

func TestGormConnection(t *testing.T) {
	// Load .env from root
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	// Verify Wiring
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(context.Background())

	assert.NotNil(t, uow.FeatureRecordRepository())
	assert.NotNil(t, uow.PriceRepository())
	assert.NotNil(t, uow.PaymentAttemptRepository())

	// Basic Ping
	sqlDB, _ := gormDB.DB()
	err = sqlDB.Ping()
	assert.NoError(t, err)
	t.Log("Successfully connected to DB and initialized UnitOfWork Factory")

	// Verify Data Access (implies columns exist)
	t.Run("Check Feature Record Repository", func(t *testing.T) {
		count, err := uow.FeatureRecordRepository().Count(context.Background())
		assert.NoError(t, err)
		t.Logf("Feature record count: %d", count)
	})

	t.Run("Check Price Repository", func(t *testing.T) {
		entries, err := uow.PriceRepository().FindAll(context.Background())
		assert.NoError(t, err)
		t.Logf("Price entry count: %d", len(entries))
	})
}

func TestFeatureRecordLifecycle(t *testing.T) {
	err := godotenv.Load("../../.env")
	if err != nil {
		log.Println("No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		t.Skip("Skipping integration test: DB_CONNECTION_STRING not set")
	}

	gormDB, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		t.Fatalf("Failed to connect to DB: %v", err)
	}

	ctx := context.Background()
	uowFactory := unitofwork.NewRepositoryFactory(gormDB)
	uow := uowFactory.NewUnitOfWork(ctx)
	repo := uow.FeatureRecordRepository()

	// Unique resource id per run so reruns never collide with leftovers.
	resourceId := "it-" + uuid.NewString()
	now := time.Now()
	record := &entity.FeatureRecord{
		Id:           uuid.New(),
		ResourceType: entity.ResourceTypeRestaurant,
		ResourceId:   resourceId,
		VendorId:     uuid.New(),
		Scope:        entity.FeatureScopeGlobal,
		FeaturedFrom: now,
		FeaturedTo:   now.AddDate(0, 0, 7),
	}

	err = repo.Create(ctx, record)
	if err != nil {
		t.Fatalf("Failed to create feature record: %v", err)
	}
	defer func() {
		if err := repo.Delete(ctx, record.Id); err != nil {
			t.Logf("cleanup failed: %v", err)
		}
	}()

	t.Run("Record is live immediately", func(t *testing.T) {
		found, err := repo.FindOne(ctx,
			specification.ByResource{ResourceType: record.ResourceType, ResourceId: resourceId},
			specification.LiveAt{Now: time.Now()},
		)
		assert.NoError(t, err)
		assert.NotNil(t, found)
		assert.Equal(t, record.Id, found.Id)
	})

	t.Run("Extend pushes the window forward", func(t *testing.T) {
		extended, err := repo.ExtendWindow(ctx, record.Id, 7)
		assert.NoError(t, err)
		assert.True(t, extended.FeaturedTo.After(record.FeaturedTo))
	})

	t.Run("Close clamps the window", func(t *testing.T) {
		closed, err := repo.CloseWindow(ctx, record.Id, time.Now())
		assert.NoError(t, err)
		assert.Equal(t, entity.FeatureStatusExpired, closed.StatusAt(time.Now().Add(time.Second)))

		// Closing again is a no-op.
		again, err := repo.CloseWindow(ctx, record.Id, time.Now())
		assert.NoError(t, err)
		assert.WithinDuration(t, closed.FeaturedTo, again.FeaturedTo, time.Second)
	})

	t.Run("Overlap constraint rejects a second live window", func(t *testing.T) {
		overlapFrom := time.Now()
		dup := &entity.FeatureRecord{
			Id:           uuid.New(),
			ResourceType: entity.ResourceTypeEventCenter,
			ResourceId:   "it-overlap-" + uuid.NewString(),
			VendorId:     uuid.New(),
			Scope:        entity.FeatureScopeGlobal,
			FeaturedFrom: overlapFrom,
			FeaturedTo:   overlapFrom.AddDate(0, 0, 7),
		}
		err := repo.Create(ctx, dup)
		assert.NoError(t, err)
		defer repo.Delete(ctx, dup.Id)

		clash := &entity.FeatureRecord{
			Id:           uuid.New(),
			ResourceType: dup.ResourceType,
			ResourceId:   dup.ResourceId,
			VendorId:     uuid.New(),
			Scope:        entity.FeatureScopeGlobal,
			FeaturedFrom: overlapFrom.AddDate(0, 0, 1),
			FeaturedTo:   overlapFrom.AddDate(0, 0, 10),
		}
		err = repo.Create(ctx, clash)
		assert.Error(t, err, "exclusion constraint should reject overlapping windows")
	})
}
