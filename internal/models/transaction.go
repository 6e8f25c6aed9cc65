package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	TransactionTypeDeposit    = "deposit"
	TransactionTypeWithdrawal = "withdrawal"
	TransactionTypeTransfer   = "transfer"

	TransactionStatusPending   = "pending"
	TransactionStatusCompleted = "completed"
	TransactionStatusFailed    = "failed"
	TransactionStatusCancelled = "cancelled"

	// TransactionIDPrefix prefixes every externally visible transaction id.
	TransactionIDPrefix = "TXN"
	// TransactionIDHexDigits is the number of uppercase hex digits after the prefix.
	TransactionIDHexDigits = 12
)

var (
	ErrInvalidTransactionType   = errors.New("invalid transaction type")
	ErrInvalidTransactionStatus = errors.New("invalid transaction status")
	ErrInvalidAmount            = errors.New("transaction amount must be positive")
	ErrInvalidStatusTransition  = errors.New("invalid transaction status transition")
	ErrTransactionNotPending    = errors.New("transaction is not pending")
)

// Transaction represents a single money movement against an account.
// Transfers produce two rows, one per leg, sharing recipient metadata.
type Transaction struct {
	ID               uint            `gorm:"primaryKey" json:"id"`
	TransactionID    string          `gorm:"type:varchar(30);uniqueIndex;not null" json:"transaction_id"`
	AccountID        uint            `gorm:"not null;index" json:"account_id"`
	Type             string          `gorm:"type:varchar(20);not null;index" json:"type"`
	Amount           decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	BalanceAfter     decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"balance_after"`
	Description      string          `gorm:"type:varchar(255)" json:"description,omitempty"`
	Reference        string          `gorm:"type:varchar(100)" json:"reference,omitempty"`
	RecipientAccount string          `gorm:"type:varchar(20)" json:"recipient_account,omitempty"`
	RecipientName    string          `gorm:"type:varchar(100)" json:"recipient_name,omitempty"`
	Fee              decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"fee"`
	Status           string          `gorm:"type:varchar(20);not null;default:'completed';index" json:"status"`
	Timestamp        time.Time       `gorm:"not null;index" json:"timestamp"`

	Account *Account `gorm:"foreignKey:AccountID" json:"-"`
}

// BeforeCreate hook for Transaction
func (t *Transaction) BeforeCreate(tx *gorm.DB) error {
	if t.Status == "" {
		t.Status = TransactionStatusCompleted
	}

	if t.Timestamp.IsZero() {
		t.Timestamp = time.Now()
	}

	return t.Validate()
}

// Validate validates the transaction fields
func (t *Transaction) Validate() error {
	if t.TransactionID == "" {
		return errors.New("transaction id is required")
	}

	if !ValidateTransactionID(t.TransactionID) {
		return errors.New("transaction id must be TXN followed by 12 uppercase hex digits")
	}

	if t.AccountID == 0 {
		return errors.New("account id is required")
	}

	if !IsValidTransactionType(t.Type) {
		return ErrInvalidTransactionType
	}

	if !IsValidTransactionStatus(t.Status) {
		return ErrInvalidTransactionStatus
	}

	if t.Amount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidAmount
	}

	if t.Fee.LessThan(decimal.Zero) {
		return errors.New("fee cannot be negative")
	}

	return nil
}

// IsPending returns true if the transaction is still pending
func (t *Transaction) IsPending() bool {
	return t.Status == TransactionStatusPending
}

// CanTransitionTo reports whether the transaction may move to the target
// status. Pending is the only mutable state.
func (t *Transaction) CanTransitionTo(target string) bool {
	if !IsValidTransactionStatus(target) {
		return false
	}

	switch t.Status {
	case TransactionStatusPending:
		return target == TransactionStatusCompleted ||
			target == TransactionStatusFailed ||
			target == TransactionStatusCancelled
	default:
		return false
	}
}

// Complete marks a pending transaction as completed
func (t *Transaction) Complete() error {
	if !t.CanTransitionTo(TransactionStatusCompleted) {
		return ErrTransactionNotPending
	}
	t.Status = TransactionStatusCompleted
	return nil
}

// Cancel marks a pending transaction as cancelled
func (t *Transaction) Cancel() error {
	if !t.CanTransitionTo(TransactionStatusCancelled) {
		return ErrTransactionNotPending
	}
	t.Status = TransactionStatusCancelled
	return nil
}

// Fail marks a pending transaction as failed
func (t *Transaction) Fail() error {
	if !t.CanTransitionTo(TransactionStatusFailed) {
		return ErrTransactionNotPending
	}
	t.Status = TransactionStatusFailed
	return nil
}

// TotalDebit returns the total amount removed from the account for a
// withdrawal or outgoing transfer (amount plus fee).
func (t *Transaction) TotalDebit() decimal.Decimal {
	return t.Amount.Add(t.Fee)
}

// TableName returns the table name for Transaction
func (t *Transaction) TableName() string {
	return "transactions"
}

// IsValidTransactionType checks if the transaction type is valid
func IsValidTransactionType(transactionType string) bool {
	switch transactionType {
	case TransactionTypeDeposit, TransactionTypeWithdrawal, TransactionTypeTransfer:
		return true
	default:
		return false
	}
}

// IsValidTransactionStatus checks if the transaction status is valid
func IsValidTransactionStatus(status string) bool {
	switch status {
	case TransactionStatusPending, TransactionStatusCompleted,
		TransactionStatusFailed, TransactionStatusCancelled:
		return true
	default:
		return false
	}
}

// ValidateTransactionID validates a transaction id format (TXN + 12 uppercase hex)
func ValidateTransactionID(transactionID string) bool {
	if !strings.HasPrefix(transactionID, TransactionIDPrefix) {
		return false
	}

	hex := transactionID[len(TransactionIDPrefix):]
	if len(hex) != TransactionIDHexDigits {
		return false
	}

	for _, char := range hex {
		if (char < '0' || char > '9') && (char < 'A' || char > 'F') {
			return false
		}
	}

	return true
}
