package main

import (
	"log"

	"bank-management/internal/config"
	"bank-management/internal/database"
	"bank-management/internal/idgen"
	"bank-management/internal/models"

	"github.com/brianvoe/gofakeit/v7"
	"github.com/joho/godotenv"
	"github.com/shopspring/decimal"
)

const totalAccounts = 100

var accountTypes = []string{
	models.AccountTypeSavings,
	models.AccountTypeChecking,
	models.AccountTypeBusiness,
}

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	var count int64
	if err := db.Model(&models.Account{}).Count(&count).Error; err != nil {
		log.Fatalf("Failed to count accounts: %v", err)
	}
	if count >= totalAccounts {
		log.Printf("Database already has %d accounts. Skipping.", count)
		return
	}

	ids := idgen.New()
	log.Printf("Seeding %d accounts...", totalAccounts)

	for i := 0; i < totalAccounts; i++ {
		account := &models.Account{
			AccountNumber: ids.AccountNumber(),
			OwnerName:     gofakeit.Name(),
			Email:         gofakeit.Email(),
			PhoneNumber:   gofakeit.Phone(),
			Balance:       decimal.NewFromFloat(gofakeit.Float64Range(0, 50000)).Round(2),
			AccountType:   accountTypes[i%len(accountTypes)],
			Status:        models.AccountStatusActive,
		}

		if err := db.Create(account).Error; err != nil {
			log.Printf("Skipping account %d: %v", i, err)
		}
	}

	log.Println("Seeding complete")
}
