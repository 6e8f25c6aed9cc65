package database

import (
	"fmt"
	"testing"

	"bank-management/internal/config"
	"bank-management/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/driver/sqlite"
	"gorm.io/gorm"
	"gorm.io/gorm/logger"
)

// SetupTestDB opens an in-memory sqlite database with the full schema for
// repository test suites
func SetupTestDB(t *testing.T) *DB {
	t.Helper()

	db, err := gorm.Open(sqlite.Open(":memory:"), &gorm.Config{
		Logger: logger.Default.LogMode(logger.Silent),
	})
	if err != nil {
		t.Fatalf("failed to connect to test database: %v", err)
	}

	testDB := &DB{
		DB: db,
		config: &config.DatabaseConfig{
			MaxConnections: 1,
			MaxIdleConns:   1,
		},
	}

	if err := testDB.AutoMigrate(); err != nil {
		t.Fatalf("failed to migrate test database: %v", err)
	}

	return testDB
}

// CreateTestAccount inserts an active savings account for use as a fixture
func CreateTestAccount(t *testing.T, db *DB, accountNumber, email string, balance decimal.Decimal) *models.Account {
	t.Helper()

	account := &models.Account{
		AccountNumber: accountNumber,
		OwnerName:     "Test Owner",
		Email:         email,
		Balance:       balance,
		AccountType:   models.AccountTypeSavings,
		Status:        models.AccountStatusActive,
	}

	if err := db.Create(account).Error; err != nil {
		t.Fatalf("failed to create test account: %v", err)
	}

	return account
}

// CleanupTestDB deletes all rows, children before parents
func CleanupTestDB(t *testing.T, db *DB) {
	t.Helper()

	tables := []string{
		"loan_payments",
		"loans",
		"cards",
		"transactions",
		"audit_logs",
		"accounts",
	}

	for _, table := range tables {
		if err := db.Exec(fmt.Sprintf("DELETE FROM %s", table)).Error; err != nil {
			t.Logf("failed to cleanup table %s: %v", table, err)
		}
	}
}
