package repositories

import (
	"errors"
	"fmt"
	"strings"
	"time"

	"bank-management/internal/idgen"
	"bank-management/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

var (
	ErrAccountNotFound     = errors.New("account not found")
	ErrAccountNumberExists = errors.New("account number already exists")
	ErrEmailExists         = errors.New("email already exists")
	ErrInsufficientFunds   = errors.New("insufficient funds")
	ErrAccountNotActive    = errors.New("account is not active")
	ErrStaleAccount        = errors.New("account was modified concurrently")
)

// accountRepository implements AccountRepositoryInterface
type accountRepository struct {
	db  *gorm.DB
	ids idgen.Generator
}

// NewAccountRepository creates a new account repository
func NewAccountRepository(db *gorm.DB, ids idgen.Generator) AccountRepositoryInterface {
	return &accountRepository{
		db:  db,
		ids: ids,
	}
}

// Create creates a new account
func (r *accountRepository) Create(account *models.Account) error {
	if err := r.db.Create(account).Error; err != nil {
		if errors.Is(err, gorm.ErrDuplicatedKey) {
			return ErrAccountNumberExists
		}
		return fmt.Errorf("failed to create account: %w", err)
	}
	return nil
}

// GetByID retrieves an account by ID
func (r *accountRepository) GetByID(id uint) (*models.Account, error) {
	var account models.Account
	if err := r.db.First(&account, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return &account, nil
}

// GetByAccountNumber retrieves an account by account number
func (r *accountRepository) GetByAccountNumber(accountNumber string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("account_number = ?", accountNumber).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by number: %w", err)
	}
	return &account, nil
}

// GetByEmail retrieves an account by owner email
func (r *accountRepository) GetByEmail(email string) (*models.Account, error) {
	var account models.Account
	if err := r.db.Where("email = ?", email).First(&account).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by email: %w", err)
	}
	return &account, nil
}

// GetAllWithFilters retrieves accounts with filters and pagination.
// The total count is taken before paging so callers can compute page
// metadata.
func (r *accountRepository) GetAllWithFilters(filters models.AccountFilters) ([]models.Account, int64, error) {
	var accounts []models.Account
	var total int64

	filters.Normalize()
	query := r.db.Model(&models.Account{})

	if filters.SearchTerm != "" {
		term := "%" + strings.ToLower(filters.SearchTerm) + "%"
		query = query.Where(
			"LOWER(owner_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(account_number) LIKE ?",
			term, term, term,
		)
	}
	if filters.AccountType != "" {
		query = query.Where("account_type = ?", filters.AccountType)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count filtered accounts: %w", err)
	}

	if err := query.Offset(filters.Offset()).Limit(filters.PageSize).
		Order(filters.OrderClause()).Find(&accounts).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get filtered accounts: %w", err)
	}

	return accounts, total, nil
}

// Search retrieves accounts matching a search term over owner name, email
// and account number
func (r *accountRepository) Search(searchTerm string, limit int) ([]models.Account, error) {
	var accounts []models.Account
	term := "%" + strings.ToLower(searchTerm) + "%"

	if err := r.db.
		Where("LOWER(owner_name) LIKE ? OR LOWER(email) LIKE ? OR LOWER(account_number) LIKE ?",
			term, term, term).
		Limit(limit).
		Order("created_at DESC").
		Find(&accounts).Error; err != nil {
		return nil, fmt.Errorf("failed to search accounts: %w", err)
	}
	return accounts, nil
}

// Update updates an account
func (r *accountRepository) Update(account *models.Account) error {
	if err := r.db.Save(account).Error; err != nil {
		return fmt.Errorf("failed to update account: %w", err)
	}
	return nil
}

// Delete soft deletes an account
func (r *accountRepository) Delete(id uint) error {
	result := r.db.Delete(&models.Account{}, id)
	if result.Error != nil {
		return fmt.Errorf("failed to delete account: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrAccountNotFound
	}
	return nil
}

// GenerateUniqueAccountNumber generates an account number that does not
// collide with an existing one
func (r *accountRepository) GenerateUniqueAccountNumber() (string, error) {
	maxAttempts := 10
	for i := 0; i < maxAttempts; i++ {
		accountNumber := r.ids.AccountNumber()

		var count int64
		if err := r.db.Model(&models.Account{}).
			Where("account_number = ?", accountNumber).
			Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check account number uniqueness: %w", err)
		}

		if count == 0 {
			return accountNumber, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique account number after %d attempts", maxAttempts)
}

// CheckEmailExists checks if an account already uses the email
func (r *accountRepository) CheckEmailExists(email string) (bool, error) {
	var count int64
	if err := r.db.Model(&models.Account{}).
		Where("email = ?", email).
		Count(&count).Error; err != nil {
		return false, fmt.Errorf("failed to check email existence: %w", err)
	}
	return count > 0, nil
}

// CreateWithTransaction creates an account with initial transactions in a
// database transaction
func (r *accountRepository) CreateWithTransaction(account *models.Account, transactions []models.Transaction) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		if err := tx.Create(account).Error; err != nil {
			return fmt.Errorf("failed to create account: %w", err)
		}

		if len(transactions) > 0 {
			for i := range transactions {
				transactions[i].AccountID = account.ID
			}
			if err := tx.Create(&transactions).Error; err != nil {
				return fmt.Errorf("failed to create initial transactions: %w", err)
			}
		}

		return nil
	})
}

// ExecuteBalanceChange applies a balance delta and writes the matching
// transaction row atomically. A negative delta is a debit; the locked
// balance must cover it. The account version is asserted and bumped so a
// concurrent writer surfaces as ErrStaleAccount instead of a lost update.
func (r *accountRepository) ExecuteBalanceChange(accountID uint, delta decimal.Decimal, record *models.Transaction) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		var account models.Account

		if err := lockForUpdate(tx).First(&account, accountID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountNotFound
			}
			return fmt.Errorf("failed to lock account: %w", err)
		}

		if !account.IsActive() {
			return ErrAccountNotActive
		}

		newBalance := account.Balance.Add(delta)
		if newBalance.LessThan(decimal.Zero) {
			return ErrInsufficientFunds
		}

		if err := assertAndBumpVersion(tx, &account, newBalance); err != nil {
			return err
		}

		record.AccountID = accountID
		record.BalanceAfter = newBalance
		if err := tx.Create(record).Error; err != nil {
			return fmt.Errorf("failed to create transaction record: %w", err)
		}

		return nil
	})
}

// ExecuteAtomicTransfer moves amount between two accounts and writes both
// transaction legs in one database transaction. The fee applies to the
// debit leg only. Accounts are locked in ascending ID order to avoid
// deadlocks between concurrent opposing transfers.
func (r *accountRepository) ExecuteAtomicTransfer(fromID, toID uint, amount, fee decimal.Decimal, debitTx, creditTx *models.Transaction) error {
	return r.db.Transaction(func(tx *gorm.DB) error {
		firstID, secondID := fromID, toID
		if toID < fromID {
			firstID, secondID = toID, fromID
		}

		var first, second models.Account
		if err := lockForUpdate(tx).First(&first, firstID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountNotFound
			}
			return fmt.Errorf("failed to lock account: %w", err)
		}
		if err := lockForUpdate(tx).First(&second, secondID).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return ErrAccountNotFound
			}
			return fmt.Errorf("failed to lock account: %w", err)
		}

		fromAcct, toAcct := &first, &second
		if first.ID != fromID {
			fromAcct, toAcct = &second, &first
		}

		if !fromAcct.IsActive() || !toAcct.IsActive() {
			return ErrAccountNotActive
		}

		totalDebit := amount.Add(fee)
		if fromAcct.Balance.LessThan(totalDebit) {
			return ErrInsufficientFunds
		}

		newFromBalance := fromAcct.Balance.Sub(totalDebit)
		newToBalance := toAcct.Balance.Add(amount)

		if err := assertAndBumpVersion(tx, fromAcct, newFromBalance); err != nil {
			return err
		}
		if err := assertAndBumpVersion(tx, toAcct, newToBalance); err != nil {
			return err
		}

		debitTx.AccountID = fromID
		debitTx.BalanceAfter = newFromBalance
		if err := tx.Create(debitTx).Error; err != nil {
			return fmt.Errorf("failed to create debit transaction: %w", err)
		}

		creditTx.AccountID = toID
		creditTx.BalanceAfter = newToBalance
		if err := tx.Create(creditTx).Error; err != nil {
			return fmt.Errorf("failed to create credit transaction: %w", err)
		}

		return nil
	})
}

// lockForUpdate adds a SELECT ... FOR UPDATE clause. sqlite has no row
// locking syntax; there the version assert alone guards the write.
func lockForUpdate(tx *gorm.DB) *gorm.DB {
	if tx.Dialector.Name() == "sqlite" {
		return tx
	}
	return tx.Clauses(clause.Locking{Strength: "UPDATE"})
}

// assertAndBumpVersion writes the new balance only if the version read
// under lock is still current, then increments it. UpdateColumns keeps
// the model hooks out of a write that carries no loaded row.
func assertAndBumpVersion(tx *gorm.DB, account *models.Account, newBalance decimal.Decimal) error {
	result := tx.Model(&models.Account{}).
		Where("id = ? AND version = ?", account.ID, account.Version).
		UpdateColumns(map[string]interface{}{
			"balance":    newBalance,
			"version":    account.Version + 1,
			"updated_at": time.Now(),
		})

	if result.Error != nil {
		return fmt.Errorf("failed to update account balance: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrStaleAccount
	}

	account.Balance = newBalance
	account.Version++
	return nil
}

// GetStatistics aggregates account counts, balances over active accounts
// and the per-type distribution
func (r *accountRepository) GetStatistics() (*models.AccountStatistics, error) {
	stats := &models.AccountStatistics{
		TypeDistribution: make(map[string]int64),
	}

	if err := r.db.Model(&models.Account{}).Count(&stats.TotalAccounts).Error; err != nil {
		return nil, fmt.Errorf("failed to count accounts: %w", err)
	}

	if err := r.db.Model(&models.Account{}).
		Where("status = ?", models.AccountStatusActive).
		Count(&stats.ActiveAccounts).Error; err != nil {
		return nil, fmt.Errorf("failed to count active accounts: %w", err)
	}

	var balances struct {
		Total   decimal.Decimal
		Average decimal.Decimal
	}
	if err := r.db.Model(&models.Account{}).
		Select("COALESCE(SUM(balance), 0) as total, COALESCE(AVG(balance), 0) as average").
		Where("status = ?", models.AccountStatusActive).
		Scan(&balances).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate balances: %w", err)
	}
	stats.TotalBalance = balances.Total
	stats.AverageBalance = balances.Average.Round(2)

	rows := []struct {
		AccountType string
		Count       int64
	}{}
	if err := r.db.Model(&models.Account{}).
		Select("account_type, COUNT(*) as count").
		Group("account_type").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate account types: %w", err)
	}
	for _, row := range rows {
		stats.TypeDistribution[row.AccountType] = row.Count
	}

	return stats, nil
}
