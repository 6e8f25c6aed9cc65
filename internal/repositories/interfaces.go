package repositories

import (
	"bank-management/internal/models"

	"github.com/shopspring/decimal"
)

// AccountRepositoryInterface defines the contract for account repository operations
type AccountRepositoryInterface interface {
	Create(account *models.Account) error
	GetByID(id uint) (*models.Account, error)
	GetByAccountNumber(accountNumber string) (*models.Account, error)
	GetByEmail(email string) (*models.Account, error)
	GetAllWithFilters(filters models.AccountFilters) ([]models.Account, int64, error)
	Search(searchTerm string, limit int) ([]models.Account, error)
	Update(account *models.Account) error
	Delete(id uint) error
	CheckEmailExists(email string) (bool, error)
	GenerateUniqueAccountNumber() (string, error)
	CreateWithTransaction(account *models.Account, transactions []models.Transaction) error
	ExecuteBalanceChange(accountID uint, delta decimal.Decimal, record *models.Transaction) error
	ExecuteAtomicTransfer(fromID, toID uint, amount, fee decimal.Decimal, debitTx, creditTx *models.Transaction) error
	GetStatistics() (*models.AccountStatistics, error)
}

// TransactionRepositoryInterface defines the contract for transaction repository operations
type TransactionRepositoryInterface interface {
	Create(transaction *models.Transaction) error
	GetByID(id uint) (*models.Transaction, error)
	GetByTransactionID(transactionID string) (*models.Transaction, error)
	GetWithFilters(filters models.TransactionFilters) ([]models.Transaction, int64, error)
	GetRecentByAccountID(accountID uint, limit int) ([]models.Transaction, error)
	GetPendingByAccountID(accountID uint) ([]models.Transaction, error)
	CountPendingByAccountID(accountID uint) (int64, error)
	UpdateStatus(id uint, status string) error
	GenerateUniqueTransactionID() (string, error)
	GetStatistics(filters models.TransactionFilters) (*models.TransactionStatistics, error)
}

// AuditLogRepositoryInterface defines the contract for audit log repository operations
type AuditLogRepositoryInterface interface {
	Create(log *models.AuditLog) error
	GetByAccountID(accountID uint, offset, limit int) ([]*models.AuditLog, int64, error)
	GetByAction(action string, offset, limit int) ([]*models.AuditLog, int64, error)
}

// CardRepositoryInterface defines the contract for card repository operations
type CardRepositoryInterface interface {
	Create(card *models.Card) error
	GetByID(id uint) (*models.Card, error)
	GetByAccountID(accountID uint) ([]models.Card, error)
	Update(card *models.Card) error
	GenerateUniqueCardNumber() (string, error)
}

// LoanRepositoryInterface defines the contract for loan repository operations
type LoanRepositoryInterface interface {
	Create(loan *models.Loan) error
	GetByID(id uint) (*models.Loan, error)
	GetByAccountID(accountID uint) ([]models.Loan, error)
	CountActiveByAccountID(accountID uint) (int64, error)
	Update(loan *models.Loan) error
	CreatePayment(payment *models.LoanPayment) error
	GetPayments(loanID uint) ([]models.LoanPayment, error)
	GenerateUniqueLoanNumber() (string, error)
}
