package services

import (
	"errors"
	"fmt"
	"log/slog"

	"bank-management/internal/dto"
	"bank-management/internal/models"
	"bank-management/internal/repositories"

	"github.com/shopspring/decimal"
)

var (
	ErrAccountNotFound        = errors.New("account not found")
	ErrEmailExists            = errors.New("email already in use")
	ErrInvalidAmount          = errors.New("invalid amount")
	ErrInsufficientFunds      = errors.New("insufficient funds")
	ErrAccountNotActive       = errors.New("account is not active")
	ErrBalanceNotZero         = errors.New("account balance must be zero")
	ErrHasPendingActivity     = errors.New("account has pending transactions")
	ErrHasActiveLoans         = errors.New("account has active loans")
	ErrConcurrentModification = errors.New("account was modified concurrently")
)

// accountService implements AccountServiceInterface
type accountService struct {
	accountRepo     repositories.AccountRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	loanRepo        repositories.LoanRepositoryInterface
	auditRepo       repositories.AuditLogRepositoryInterface
	logger          *slog.Logger
	metrics         MetricsRecorderInterface
}

// NewAccountService creates an account service
func NewAccountService(
	accountRepo repositories.AccountRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	loanRepo repositories.LoanRepositoryInterface,
	auditRepo repositories.AuditLogRepositoryInterface,
	logger *slog.Logger,
	metrics MetricsRecorderInterface,
) AccountServiceInterface {
	return &accountService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		loanRepo:        loanRepo,
		auditRepo:       auditRepo,
		logger:          logger,
		metrics:         metrics,
	}
}

// CreateAccount creates a new account. A positive initial balance is
// recorded as a synthetic deposit transaction written in the same database
// transaction as the account itself.
func (s *accountService) CreateAccount(req *dto.CreateAccountRequest) (*models.Account, error) {
	if req.InitialBalance.LessThan(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	exists, err := s.accountRepo.CheckEmailExists(req.Email)
	if err != nil {
		return nil, fmt.Errorf("failed to check email: %w", err)
	}
	if exists {
		return nil, ErrEmailExists
	}

	accountNumber, err := s.accountRepo.GenerateUniqueAccountNumber()
	if err != nil {
		return nil, fmt.Errorf("failed to generate account number: %w", err)
	}

	account := &models.Account{
		AccountNumber: accountNumber,
		OwnerName:     req.OwnerName,
		Email:         req.Email,
		PhoneNumber:   req.PhoneNumber,
		Balance:       req.InitialBalance,
		AccountType:   req.AccountType,
		Status:        models.AccountStatusActive,
		Notes:         req.Notes,
	}

	var transactions []models.Transaction
	if req.InitialBalance.GreaterThan(decimal.Zero) {
		transactionID, err := s.transactionRepo.GenerateUniqueTransactionID()
		if err != nil {
			return nil, fmt.Errorf("failed to generate transaction id: %w", err)
		}

		transactions = append(transactions, models.Transaction{
			TransactionID: transactionID,
			Type:          models.TransactionTypeDeposit,
			Amount:        req.InitialBalance,
			BalanceAfter:  req.InitialBalance,
			Description:   "Initial deposit",
			Fee:           decimal.Zero,
			Status:        models.TransactionStatusCompleted,
		})
	}

	if err := s.accountRepo.CreateWithTransaction(account, transactions); err != nil {
		return nil, fmt.Errorf("failed to create account: %w", err)
	}

	s.audit(account.ID, models.AuditActionCreated, "", models.JSONBMap{
		"account_number": account.AccountNumber,
		"account_type":   account.AccountType,
	})
	s.metrics.IncrementCounter("account.created", map[string]string{
		"account_type": account.AccountType,
	})

	return account, nil
}

// GetAccountByID retrieves an account by ID
func (s *accountService) GetAccountByID(id uint) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

// GetAccountByNumber retrieves an account by account number
func (s *accountService) GetAccountByNumber(accountNumber string) (*models.Account, error) {
	account, err := s.accountRepo.GetByAccountNumber(accountNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account by number: %w", err)
	}
	return account, nil
}

// GetAccounts retrieves accounts matching the filters with pagination
func (s *accountService) GetAccounts(filters models.AccountFilters) ([]models.Account, int64, error) {
	accounts, total, err := s.accountRepo.GetAllWithFilters(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get accounts: %w", err)
	}
	return accounts, total, nil
}

// SearchAccounts retrieves accounts matching a search term
func (s *accountService) SearchAccounts(searchTerm string, limit int) ([]models.Account, error) {
	accounts, err := s.accountRepo.Search(searchTerm, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to search accounts: %w", err)
	}
	return accounts, nil
}

// UpdateAccount applies partial updates to an account's details. Status
// changes go through the lifecycle guards.
func (s *accountService) UpdateAccount(id uint, req *dto.UpdateAccountRequest) (*models.Account, error) {
	account, err := s.GetAccountByID(id)
	if err != nil {
		return nil, err
	}

	changes := models.JSONBMap{}

	if req.OwnerName != nil {
		account.OwnerName = *req.OwnerName
		changes["owner_name"] = *req.OwnerName
	}
	if req.PhoneNumber != nil {
		account.PhoneNumber = *req.PhoneNumber
		changes["phone_number"] = *req.PhoneNumber
	}
	if req.Notes != nil {
		account.Notes = *req.Notes
		changes["notes"] = *req.Notes
	}
	if req.Status != nil && *req.Status != account.Status {
		if err := s.transitionStatus(account, *req.Status); err != nil {
			return nil, err
		}
		changes["status"] = *req.Status
	}

	if len(changes) == 0 {
		return account, nil
	}

	if err := s.accountRepo.Update(account); err != nil {
		return nil, fmt.Errorf("failed to update account: %w", err)
	}

	s.audit(account.ID, models.AuditActionUpdated, "", changes)

	return account, nil
}

func (s *accountService) transitionStatus(account *models.Account, status string) error {
	switch status {
	case models.AccountStatusActive:
		return account.Activate()
	case models.AccountStatusSuspended:
		return account.Suspend()
	case models.AccountStatusClosed:
		return account.Close()
	default:
		return models.ErrInvalidAccountStatus
	}
}

// DeleteAccount soft deletes an account. The balance must be zero and the
// account must have no pending transactions or active loans.
func (s *accountService) DeleteAccount(id uint) error {
	account, err := s.GetAccountByID(id)
	if err != nil {
		return err
	}

	if !account.Balance.IsZero() {
		return ErrBalanceNotZero
	}

	pending, err := s.transactionRepo.CountPendingByAccountID(id)
	if err != nil {
		return fmt.Errorf("failed to count pending transactions: %w", err)
	}
	if pending > 0 {
		return ErrHasPendingActivity
	}

	activeLoans, err := s.loanRepo.CountActiveByAccountID(id)
	if err != nil {
		return fmt.Errorf("failed to count active loans: %w", err)
	}
	if activeLoans > 0 {
		return ErrHasActiveLoans
	}

	if err := s.accountRepo.Delete(id); err != nil {
		return fmt.Errorf("failed to delete account: %w", err)
	}

	s.audit(id, models.AuditActionDeleted, "", models.JSONBMap{
		"account_number": account.AccountNumber,
	})

	return nil
}

// SuspendAccount suspends an active account
func (s *accountService) SuspendAccount(id uint, reason string) (*models.Account, error) {
	return s.changeStatus(id, models.AuditActionSuspended, reason, func(a *models.Account) error {
		return a.Suspend()
	})
}

// ActivateAccount reactivates a suspended account
func (s *accountService) ActivateAccount(id uint, reason string) (*models.Account, error) {
	return s.changeStatus(id, models.AuditActionActivated, reason, func(a *models.Account) error {
		return a.Activate()
	})
}

// CloseAccount closes an account. The balance must be zero; closed is
// terminal.
func (s *accountService) CloseAccount(id uint, reason string) (*models.Account, error) {
	return s.changeStatus(id, models.AuditActionClosed, reason, func(a *models.Account) error {
		return a.Close()
	})
}

func (s *accountService) changeStatus(id uint, action, reason string, transition func(*models.Account) error) (*models.Account, error) {
	account, err := s.GetAccountByID(id)
	if err != nil {
		return nil, err
	}

	previousStatus := account.Status
	if err := transition(account); err != nil {
		return nil, err
	}

	if err := s.accountRepo.Update(account); err != nil {
		return nil, fmt.Errorf("failed to update account status: %w", err)
	}

	s.audit(account.ID, action, reason, models.JSONBMap{
		"previous_status": previousStatus,
		"new_status":      account.Status,
	})

	return account, nil
}

// GetBalance reports an account's current balance
func (s *accountService) GetBalance(id uint) (*dto.BalanceResponse, error) {
	account, err := s.GetAccountByID(id)
	if err != nil {
		return nil, err
	}

	return &dto.BalanceResponse{
		AccountID:     account.ID,
		AccountNumber: account.AccountNumber,
		Balance:       account.Balance,
	}, nil
}

// GetStatistics aggregates account-level statistics
func (s *accountService) GetStatistics() (*models.AccountStatistics, error) {
	stats, err := s.accountRepo.GetStatistics()
	if err != nil {
		return nil, fmt.Errorf("failed to get account statistics: %w", err)
	}
	s.metrics.RecordGauge("active_accounts", float64(stats.ActiveAccounts), nil)
	return stats, nil
}

// audit writes an audit row. Audit failures are logged, never surfaced to
// the caller.
func (s *accountService) audit(accountID uint, action, reason string, metadata models.JSONBMap) {
	if err := s.auditRepo.Create(&models.AuditLog{
		AccountID: accountID,
		Action:    action,
		Actor:     "api",
		Reason:    reason,
		Metadata:  metadata,
	}); err != nil {
		s.logger.Error("failed to create audit log", "error", err, "action", action, "account_id", accountID)
	}
}
