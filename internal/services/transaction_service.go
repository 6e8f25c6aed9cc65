package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bank-management/internal/dto"
	"bank-management/internal/models"
	"bank-management/internal/repositories"

	"github.com/shopspring/decimal"
)

var (
	ErrTransactionNotFound   = errors.New("transaction not found")
	ErrTransactionNotPending = errors.New("transaction is not pending")
	ErrSameAccountTransfer   = errors.New("cannot transfer to same account")
	ErrRecipientNotFound     = errors.New("recipient account not found")
)

// transactionService implements TransactionServiceInterface
type transactionService struct {
	accountRepo     repositories.AccountRepositoryInterface
	transactionRepo repositories.TransactionRepositoryInterface
	auditRepo       repositories.AuditLogRepositoryInterface
	logger          *slog.Logger
	metrics         MetricsRecorderInterface
}

// NewTransactionService creates a transaction service
func NewTransactionService(
	accountRepo repositories.AccountRepositoryInterface,
	transactionRepo repositories.TransactionRepositoryInterface,
	auditRepo repositories.AuditLogRepositoryInterface,
	logger *slog.Logger,
	metrics MetricsRecorderInterface,
) TransactionServiceInterface {
	return &transactionService{
		accountRepo:     accountRepo,
		transactionRepo: transactionRepo,
		auditRepo:       auditRepo,
		logger:          logger,
		metrics:         metrics,
	}
}

// Deposit credits an amount to an account. Deposits carry no fee.
func (s *transactionService) Deposit(accountID uint, req *dto.DepositRequest) (*models.Transaction, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	transactionID, err := s.transactionRepo.GenerateUniqueTransactionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate transaction id: %w", err)
	}

	record := &models.Transaction{
		TransactionID: transactionID,
		Type:          models.TransactionTypeDeposit,
		Amount:        req.Amount,
		Description:   req.Description,
		Reference:     req.Reference,
		Fee:           decimal.Zero,
		Status:        models.TransactionStatusCompleted,
		Timestamp:     time.Now().UTC(),
	}

	start := time.Now()
	if err := s.accountRepo.ExecuteBalanceChange(accountID, req.Amount, record); err != nil {
		s.recordOutcome(models.TransactionTypeDeposit, "failed", start)
		return nil, s.mapBalanceError(err)
	}
	s.recordOutcome(models.TransactionTypeDeposit, "success", start)

	return record, nil
}

// Withdraw debits an amount plus its fee from an account. The amount is
// checked against the balance first so an amount the account could never
// cover is rejected before the fee enters the picture.
func (s *transactionService) Withdraw(accountID uint, req *dto.WithdrawRequest) (*models.Transaction, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if !account.IsActive() {
		return nil, ErrAccountNotActive
	}

	if !account.CanWithdraw(req.Amount) {
		return nil, ErrInsufficientFunds
	}

	fee := CalculateFee(models.TransactionTypeWithdrawal, req.Amount)
	total := req.Amount.Add(fee)
	if account.Balance.LessThan(total) {
		return nil, ErrInsufficientFunds
	}

	transactionID, err := s.transactionRepo.GenerateUniqueTransactionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate transaction id: %w", err)
	}

	record := &models.Transaction{
		TransactionID: transactionID,
		Type:          models.TransactionTypeWithdrawal,
		Amount:        req.Amount,
		Description:   req.Description,
		Reference:     req.Reference,
		Fee:           fee,
		Status:        models.TransactionStatusCompleted,
		Timestamp:     time.Now().UTC(),
	}

	start := time.Now()
	if err := s.accountRepo.ExecuteBalanceChange(accountID, total.Neg(), record); err != nil {
		s.recordOutcome(models.TransactionTypeWithdrawal, "failed", start)
		return nil, s.mapBalanceError(err)
	}
	s.recordOutcome(models.TransactionTypeWithdrawal, "success", start)
	s.recordFee(fee)

	return record, nil
}

// Transfer moves an amount from one account to another identified by its
// account number. Two transaction rows are written atomically; the fee is
// charged to the sender only.
func (s *transactionService) Transfer(accountID uint, req *dto.TransferRequest) (*dto.TransferResponse, error) {
	if req.Amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidAmount
	}

	source, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get source account: %w", err)
	}

	recipient, err := s.accountRepo.GetByAccountNumber(req.RecipientAccountNumber)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrRecipientNotFound
		}
		return nil, fmt.Errorf("failed to get recipient account: %w", err)
	}

	if source.ID == recipient.ID {
		return nil, ErrSameAccountTransfer
	}

	if !source.IsActive() || !recipient.IsActive() {
		return nil, ErrAccountNotActive
	}

	fee := CalculateFee(models.TransactionTypeTransfer, req.Amount)
	if source.Balance.LessThan(req.Amount.Add(fee)) {
		return nil, ErrInsufficientFunds
	}

	debitID, err := s.transactionRepo.GenerateUniqueTransactionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate transaction id: %w", err)
	}
	creditID, err := s.transactionRepo.GenerateUniqueTransactionID()
	if err != nil {
		return nil, fmt.Errorf("failed to generate transaction id: %w", err)
	}

	description := req.Description
	if description == "" {
		description = fmt.Sprintf("Transfer to %s", recipient.AccountNumber)
	}

	now := time.Now().UTC()
	debit := &models.Transaction{
		TransactionID:    debitID,
		Type:             models.TransactionTypeTransfer,
		Amount:           req.Amount,
		Description:      description,
		Reference:        req.Reference,
		RecipientAccount: recipient.AccountNumber,
		RecipientName:    recipient.OwnerName,
		Fee:              fee,
		Status:           models.TransactionStatusCompleted,
		Timestamp:        now,
	}
	credit := &models.Transaction{
		TransactionID: creditID,
		Type:          models.TransactionTypeTransfer,
		Amount:        req.Amount,
		Description:   fmt.Sprintf("Transfer from %s", source.AccountNumber),
		Reference:     req.Reference,
		Fee:           decimal.Zero,
		Status:        models.TransactionStatusCompleted,
		Timestamp:     now,
	}

	start := time.Now()
	if err := s.accountRepo.ExecuteAtomicTransfer(source.ID, recipient.ID, req.Amount, fee, debit, credit); err != nil {
		s.recordOutcome(models.TransactionTypeTransfer, "failed", start)
		return nil, s.mapBalanceError(err)
	}
	s.recordOutcome(models.TransactionTypeTransfer, "success", start)
	s.recordFee(fee)
	s.metrics.RecordGauge("transaction_amount", req.Amount.InexactFloat64(), map[string]string{
		"operation": models.TransactionTypeTransfer,
	})

	return &dto.TransferResponse{
		DebitTransaction:  debit,
		CreditTransaction: credit,
		SourceBalance:     debit.BalanceAfter,
		RecipientBalance:  credit.BalanceAfter,
		TotalFee:          fee,
	}, nil
}

// GetTransactionByID retrieves a transaction by numeric ID
func (s *transactionService) GetTransactionByID(id uint) (*models.Transaction, error) {
	transaction, err := s.transactionRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return transaction, nil
}

// GetTransactionByTransactionID retrieves a transaction by its external id
func (s *transactionService) GetTransactionByTransactionID(transactionID string) (*models.Transaction, error) {
	transaction, err := s.transactionRepo.GetByTransactionID(transactionID)
	if err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			return nil, ErrTransactionNotFound
		}
		return nil, fmt.Errorf("failed to get transaction: %w", err)
	}
	return transaction, nil
}

// GetTransactions retrieves transactions matching the filters with
// pagination
func (s *transactionService) GetTransactions(filters models.TransactionFilters) ([]models.Transaction, int64, error) {
	transactions, total, err := s.transactionRepo.GetWithFilters(filters)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to get transactions: %w", err)
	}
	return transactions, total, nil
}

// GetRecentTransactions retrieves the most recent transactions for an
// account
func (s *transactionService) GetRecentTransactions(accountID uint, limit int) ([]models.Transaction, error) {
	if _, err := s.requireAccount(accountID); err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.GetRecentByAccountID(accountID, limit)
	if err != nil {
		return nil, fmt.Errorf("failed to get recent transactions: %w", err)
	}
	return transactions, nil
}

// GetPendingTransactions retrieves pending transactions for an account
func (s *transactionService) GetPendingTransactions(accountID uint) ([]models.Transaction, error) {
	if _, err := s.requireAccount(accountID); err != nil {
		return nil, err
	}

	transactions, err := s.transactionRepo.GetPendingByAccountID(accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get pending transactions: %w", err)
	}
	return transactions, nil
}

// CancelTransaction cancels a pending transaction
func (s *transactionService) CancelTransaction(id uint) (*models.Transaction, error) {
	return s.settlePending(id, models.TransactionStatusCancelled)
}

// ProcessTransaction completes a pending transaction
func (s *transactionService) ProcessTransaction(id uint) (*models.Transaction, error) {
	return s.settlePending(id, models.TransactionStatusCompleted)
}

func (s *transactionService) settlePending(id uint, status string) (*models.Transaction, error) {
	transaction, err := s.GetTransactionByID(id)
	if err != nil {
		return nil, err
	}

	if !transaction.IsPending() {
		return nil, ErrTransactionNotPending
	}

	if err := s.transactionRepo.UpdateStatus(id, status); err != nil {
		if errors.Is(err, repositories.ErrTransactionNotFound) {
			// The row moved out of pending between the read and the update
			return nil, ErrTransactionNotPending
		}
		return nil, fmt.Errorf("failed to update transaction status: %w", err)
	}

	transaction.Status = status
	return transaction, nil
}

// GetStatistics aggregates transaction statistics
func (s *transactionService) GetStatistics(filters models.TransactionFilters) (*models.TransactionStatistics, error) {
	stats, err := s.transactionRepo.GetStatistics(filters)
	if err != nil {
		return nil, fmt.Errorf("failed to get transaction statistics: %w", err)
	}
	return stats, nil
}

func (s *transactionService) requireAccount(accountID uint) (*models.Account, error) {
	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}
	return account, nil
}

func (s *transactionService) mapBalanceError(err error) error {
	switch {
	case errors.Is(err, repositories.ErrAccountNotFound):
		return ErrAccountNotFound
	case errors.Is(err, repositories.ErrAccountNotActive):
		return ErrAccountNotActive
	case errors.Is(err, repositories.ErrInsufficientFunds):
		return ErrInsufficientFunds
	case errors.Is(err, repositories.ErrStaleAccount):
		return ErrConcurrentModification
	default:
		return fmt.Errorf("failed to execute balance change: %w", err)
	}
}

func (s *transactionService) recordFee(fee decimal.Decimal) {
	if fee.GreaterThan(decimal.Zero) {
		s.metrics.RecordGauge("fees_collected", fee.InexactFloat64(), nil)
	}
}

func (s *transactionService) recordOutcome(operation, status string, start time.Time) {
	s.metrics.IncrementCounter("transaction.processed", map[string]string{
		"operation": operation,
		"status":    status,
	})
	s.metrics.RecordProcessingTime("transaction.processing", time.Since(start))
}
