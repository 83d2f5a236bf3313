package main

import (
	"log"
	"os"

	"featured-listing-be/internal/model"
	"featured-listing-be/internal/service"
	"featured-listing-be/pkg/database"

	"github.com/fatih/color"
	"github.com/joho/godotenv"
)

func main() {
	// Load Environment Variables
	if err := godotenv.Load(); err != nil {
		log.Println("Info: No .env file found, using system env")
	}

	dsn := os.Getenv("DB_CONNECTION_STRING")
	if dsn == "" {
		log.Fatal("Error: DB_CONNECTION_STRING is not set")
	}

	db, err := database.NewGormDBFromDSN(dsn)
	if err != nil {
		log.Fatal("Error: Failed to connect to database:", err)
	}

	color.Cyan("Seeding Feature Price Table...")

	for scope, cells := range service.DefaultPriceTable {
		for code, price := range cells {
			// Existing cells keep their admin-set price
			var existing model.PriceEntry
			if err := db.Where("scope = ? AND duration_code = ?", scope, code).First(&existing).Error; err == nil {
				log.Printf("Price %s/%s already exists, skipping...", scope, code)
				continue
			}

			entry := model.PriceEntry{
				Scope:        string(scope),
				DurationCode: string(code),
				Price:        price,
			}
			if err := db.Create(&entry).Error; err != nil {
				log.Printf("Error creating price %s/%s: %v", scope, code, err)
			} else {
				log.Printf("Created price: %s/%s = %d", scope, code, price)
			}
		}
	}

	color.Green("Price seeding completed!")
}
