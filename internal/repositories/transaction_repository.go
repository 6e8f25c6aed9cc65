package repositories

import (
	"errors"
	"fmt"

	"bank-management/internal/idgen"
	"bank-management/internal/models"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

var (
	ErrTransactionNotFound = errors.New("transaction not found")
)

// transactionRepository implements TransactionRepositoryInterface
type transactionRepository struct {
	db  *gorm.DB
	ids idgen.Generator
}

// NewTransactionRepository creates a new transaction repository
func NewTransactionRepository(db *gorm.DB, ids idgen.Generator) TransactionRepositoryInterface {
	return &transactionRepository{
		db:  db,
		ids: ids,
	}
}

// Create creates a new transaction
func (r *transactionRepository) Create(transaction *models.Transaction) error {
	if err := r.db.Create(transaction).Error; err != nil {
		return fmt.Errorf("failed to create transaction: %w", err)
	}
	return nil
}

// GetByID retrieves a transaction by numeric ID
func (r *transactionRepository) GetByID(id uint) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.First(&transaction, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return &transaction, nil
}

// GetByTransactionID retrieves a transaction by its external identifier
func (r *transactionRepository) GetByTransactionID(transactionID string) (*models.Transaction, error) {
	var transaction models.Transaction
	if err := r.db.Where("transaction_id = ?", transactionID).First(&transaction).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction by transaction id: %w", err)
	}
	return &transaction, nil
}

// GetWithFilters retrieves transactions with filters and pagination. The
// total count is taken before paging.
func (r *transactionRepository) GetWithFilters(filters models.TransactionFilters) ([]models.Transaction, int64, error) {
	var transactions []models.Transaction
	var total int64

	filters.Normalize()
	query := r.db.Model(&models.Transaction{})

	if filters.AccountID != 0 {
		query = query.Where("account_id = ?", filters.AccountID)
	}
	if filters.Type != "" {
		query = query.Where("type = ?", filters.Type)
	}
	if filters.Status != "" {
		query = query.Where("status = ?", filters.Status)
	}
	if filters.StartDate != nil {
		query = query.Where("timestamp >= ?", *filters.StartDate)
	}
	if filters.EndDate != nil {
		query = query.Where("timestamp <= ?", *filters.EndDate)
	}

	if err := query.Count(&total).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to count filtered transactions: %w", err)
	}

	if err := query.Offset(filters.Offset()).Limit(filters.PageSize).
		Order("timestamp DESC").
		Find(&transactions).Error; err != nil {
		return nil, 0, fmt.Errorf("failed to get filtered transactions: %w", err)
	}

	return transactions, total, nil
}

// GetRecentByAccountID retrieves the most recent transactions for an account
func (r *transactionRepository) GetRecentByAccountID(accountID uint, limit int) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Where("account_id = ?", accountID).
		Order("timestamp DESC").
		Limit(limit).
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get recent transactions: %w", err)
	}
	return transactions, nil
}

// GetPendingByAccountID retrieves pending transactions for an account,
// oldest first
func (r *transactionRepository) GetPendingByAccountID(accountID uint) ([]models.Transaction, error) {
	var transactions []models.Transaction
	if err := r.db.Where("account_id = ? AND status = ?", accountID, models.TransactionStatusPending).
		Order("timestamp ASC").
		Find(&transactions).Error; err != nil {
		return nil, fmt.Errorf("failed to get pending transactions: %w", err)
	}
	return transactions, nil
}

// CountPendingByAccountID counts pending transactions for an account
func (r *transactionRepository) CountPendingByAccountID(accountID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Transaction{}).
		Where("account_id = ? AND status = ?", accountID, models.TransactionStatusPending).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count pending transactions: %w", err)
	}
	return count, nil
}

// UpdateStatus moves a transaction to a new status. The update only
// applies while the row is still pending so concurrent status changes
// cannot race past the transition guard.
func (r *transactionRepository) UpdateStatus(id uint, status string) error {
	result := r.db.Model(&models.Transaction{}).
		Where("id = ? AND status = ?", id, models.TransactionStatusPending).
		Update("status", status)

	if result.Error != nil {
		return fmt.Errorf("failed to update transaction status: %w", result.Error)
	}
	if result.RowsAffected == 0 {
		return ErrTransactionNotFound
	}
	return nil
}

// GenerateUniqueTransactionID generates a transaction id that does not
// collide with an existing one
func (r *transactionRepository) GenerateUniqueTransactionID() (string, error) {
	maxAttempts := 10
	for i := 0; i < maxAttempts; i++ {
		transactionID := r.ids.TransactionID()

		var count int64
		if err := r.db.Model(&models.Transaction{}).
			Where("transaction_id = ?", transactionID).
			Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check transaction id uniqueness: %w", err)
		}

		if count == 0 {
			return transactionID, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique transaction id after %d attempts", maxAttempts)
}

// GetStatistics aggregates transaction counts and sums over completed
// transactions, optionally bounded by the filter's date window. A zero
// AccountID aggregates across all accounts.
func (r *transactionRepository) GetStatistics(filters models.TransactionFilters) (*models.TransactionStatistics, error) {
	stats := &models.TransactionStatistics{}

	scope := func() *gorm.DB {
		query := r.db.Model(&models.Transaction{})
		if filters.AccountID != 0 {
			query = query.Where("account_id = ?", filters.AccountID)
		}
		if filters.StartDate != nil {
			query = query.Where("timestamp >= ?", *filters.StartDate)
		}
		if filters.EndDate != nil {
			query = query.Where("timestamp <= ?", *filters.EndDate)
		}
		return query
	}

	if err := scope().Count(&stats.TotalTransactions).Error; err != nil {
		return nil, fmt.Errorf("failed to count transactions: %w", err)
	}

	var totals struct {
		Amount  decimal.Decimal
		Fees    decimal.Decimal
		Average decimal.Decimal
	}
	if err := scope().
		Select("COALESCE(SUM(amount), 0) as amount, COALESCE(SUM(fee), 0) as fees, COALESCE(AVG(amount), 0) as average").
		Where("status = ?", models.TransactionStatusCompleted).
		Scan(&totals).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate transaction amounts: %w", err)
	}
	stats.TotalAmount = totals.Amount
	stats.TotalFees = totals.Fees
	stats.AverageAmount = totals.Average.Round(2)

	rows := []struct {
		Type   string
		Amount decimal.Decimal
	}{}
	if err := scope().
		Select("type, COALESCE(SUM(amount), 0) as amount").
		Where("status = ?", models.TransactionStatusCompleted).
		Group("type").
		Scan(&rows).Error; err != nil {
		return nil, fmt.Errorf("failed to aggregate transaction types: %w", err)
	}

	for _, row := range rows {
		switch row.Type {
		case models.TransactionTypeDeposit:
			stats.TotalDeposits = row.Amount
		case models.TransactionTypeWithdrawal:
			stats.TotalWithdrawals = row.Amount
		case models.TransactionTypeTransfer:
			stats.TotalTransfers = row.Amount
		}
	}

	return stats, nil
}
