package services

import (
	"time"

	"bank-management/internal/dto"
	"bank-management/internal/models"

	"github.com/shopspring/decimal"
)

// AccountServiceInterface defines account-related business operations
type AccountServiceInterface interface {
	CreateAccount(req *dto.CreateAccountRequest) (*models.Account, error)
	GetAccountByID(id uint) (*models.Account, error)
	GetAccountByNumber(accountNumber string) (*models.Account, error)
	GetAccounts(filters models.AccountFilters) ([]models.Account, int64, error)
	SearchAccounts(searchTerm string, limit int) ([]models.Account, error)
	UpdateAccount(id uint, req *dto.UpdateAccountRequest) (*models.Account, error)
	DeleteAccount(id uint) error
	SuspendAccount(id uint, reason string) (*models.Account, error)
	ActivateAccount(id uint, reason string) (*models.Account, error)
	CloseAccount(id uint, reason string) (*models.Account, error)
	GetBalance(id uint) (*dto.BalanceResponse, error)
	GetStatistics() (*models.AccountStatistics, error)
}

// TransactionServiceInterface defines money movement and transaction queries
type TransactionServiceInterface interface {
	Deposit(accountID uint, req *dto.DepositRequest) (*models.Transaction, error)
	Withdraw(accountID uint, req *dto.WithdrawRequest) (*models.Transaction, error)
	Transfer(accountID uint, req *dto.TransferRequest) (*dto.TransferResponse, error)
	GetTransactionByID(id uint) (*models.Transaction, error)
	GetTransactionByTransactionID(transactionID string) (*models.Transaction, error)
	GetTransactions(filters models.TransactionFilters) ([]models.Transaction, int64, error)
	GetRecentTransactions(accountID uint, limit int) ([]models.Transaction, error)
	GetPendingTransactions(accountID uint) ([]models.Transaction, error)
	CancelTransaction(id uint) (*models.Transaction, error)
	ProcessTransaction(id uint) (*models.Transaction, error)
	GetStatistics(filters models.TransactionFilters) (*models.TransactionStatistics, error)
}

// CardServiceInterface defines card issuance and lifecycle operations
type CardServiceInterface interface {
	IssueCard(accountID uint, req *dto.IssueCardRequest) (*models.Card, error)
	GetCardByID(id uint) (*models.Card, error)
	GetAccountCards(accountID uint) ([]models.Card, error)
	BlockCard(id uint, reason string) (*models.Card, error)
	UnblockCard(id uint) (*models.Card, error)
}

// LoanServiceInterface defines loan origination and repayment operations
type LoanServiceInterface interface {
	CreateLoan(accountID uint, req *dto.CreateLoanRequest) (*models.Loan, error)
	GetLoanByID(id uint) (*models.Loan, error)
	GetAccountLoans(accountID uint) ([]models.Loan, error)
	RecordPayment(loanID uint, amount decimal.Decimal) (*models.Loan, *models.LoanPayment, error)
	GetLoanPayments(loanID uint) ([]models.LoanPayment, error)
}

type MetricsRecorderInterface interface {
	IncrementCounter(name string, tags map[string]string)
	RecordProcessingTime(name string, duration time.Duration)
	RecordGauge(name string, value float64, tags map[string]string)
}
