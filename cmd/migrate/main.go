package main

import (
	"log"
	"os"

	"featured-listing-be/internal/model"
	"featured-listing-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	// 1. Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	// 2. Connect to Database using existing GORM helpers
	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Starting Authoritative GORM Migration...")

	// 3. Pre-Migration: Extensions & Enums (Things GORM AutoMigrate doesn't do perfectly)
	color.Cyan("Step 1: Setting up Extensions and Enums...")

	setupSQL := []string{
		// Extensions
		`CREATE EXTENSION IF NOT EXISTS pgcrypto;`,
		`CREATE EXTENSION IF NOT EXISTS btree_gist;`,

		// Enums (Idempotent creation)
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'resource_type') THEN CREATE TYPE resource_type AS ENUM ('room', 'menu', 'shortlet', 'restaurant', 'eventcenter', 'tourguide', 'chop', 'gift'); END IF; END $$;`,
		`DO $$ BEGIN IF NOT EXISTS (SELECT 1 FROM pg_type WHERE typname = 'feature_scope') THEN CREATE TYPE feature_scope AS ENUM ('local', 'global'); END IF; END $$;`,
	}

	for _, sql := range setupSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute setup SQL: %v. Continuing...", err)
		}
	}

	// 4. AutoMigrate All Models (The Core Task)
	color.Cyan("Step 2: Running AutoMigrate...")

	models := []interface{}{
		&model.FeatureRecord{},
		&model.PriceEntry{},
		&model.PaymentAttempt{},
	}

	// Migrate strictly
	if err := db.AutoMigrate(models...); err != nil {
		log.Fatalf("Error: AutoMigrate failed: %v", err)
	}

	// 5. Post-Migration: Constraints GORM cannot express
	color.Cyan("Step 3: Creating Constraints...")

	postMigrationSQL := []string{
		// One live window per resource, enforced at the storage layer. The
		// service checks first, but two racing inserts can both pass that
		// check; this constraint is the backstop that turns the loser into a
		// 23P01 the repository maps to a conflict.
		`DO $$ BEGIN
		  IF NOT EXISTS (SELECT 1 FROM pg_constraint WHERE conname = 'ex_feature_records_no_overlap') THEN
		    ALTER TABLE feature_records ADD CONSTRAINT ex_feature_records_no_overlap
		      EXCLUDE USING gist (
		        resource_type WITH =,
		        resource_id WITH =,
		        tstzrange(featured_from, featured_to) WITH &&
		      );
		  END IF;
		END $$;`,
	}

	for _, sql := range postMigrationSQL {
		if err := db.Exec(sql).Error; err != nil {
			log.Printf("Warn: Failed to execute post-migration SQL: %v", err)
		}
	}

	color.Green("✅ Success: Database migration completed successfully via GORM.")
}
