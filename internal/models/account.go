package models

import (
	"errors"
	"strings"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	AccountTypeSavings  = "savings"
	AccountTypeChecking = "checking"
	AccountTypeBusiness = "business"

	AccountStatusActive    = "active"
	AccountStatusSuspended = "suspended"
	AccountStatusClosed    = "closed"

	// AccountNumberPrefix prefixes every externally visible account number.
	AccountNumberPrefix = "ACC"
	// AccountNumberDigits is the number of digits following the prefix.
	AccountNumberDigits = 9
)

var (
	ErrInvalidAccountType   = errors.New("invalid account type")
	ErrInvalidAccountStatus = errors.New("invalid account status")
	ErrInvalidBalance       = errors.New("balance cannot be negative")
	ErrAccountNotActive     = errors.New("account is not active")
	ErrAccountClosed        = errors.New("account is closed")
	ErrBalanceNotZero       = errors.New("account balance must be zero to close")
	ErrInsufficientFunds    = errors.New("insufficient funds")
)

// Account represents a customer bank account
type Account struct {
	ID            uint            `gorm:"primaryKey" json:"id"`
	AccountNumber string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"account_number"`
	OwnerName     string          `gorm:"type:varchar(100);not null" json:"owner_name"`
	Email         string          `gorm:"type:varchar(120);uniqueIndex;not null" json:"email"`
	PhoneNumber   string          `gorm:"type:varchar(20)" json:"phone_number,omitempty"`
	Balance       decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"balance"`
	AccountType   string          `gorm:"type:varchar(20);not null;default:'savings'" json:"account_type"`
	Status        string          `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	Notes         string          `gorm:"type:varchar(500)" json:"notes,omitempty"`
	Version       int             `gorm:"not null;default:1" json:"version"`
	CreatedAt     time.Time       `gorm:"not null;index" json:"created_at"`
	UpdatedAt     time.Time       `gorm:"not null" json:"updated_at"`
	DeletedAt     gorm.DeletedAt  `gorm:"index" json:"deleted_at,omitempty"`

	// Associations
	Transactions []Transaction `gorm:"foreignKey:AccountID" json:"-"`
	Cards        []Card        `gorm:"foreignKey:AccountID" json:"-"`
	Loans        []Loan        `gorm:"foreignKey:AccountID" json:"-"`
}

// BeforeCreate hook for Account
func (a *Account) BeforeCreate(tx *gorm.DB) error {
	if a.Status == "" {
		a.Status = AccountStatusActive
	}
	if a.Version == 0 {
		a.Version = 1
	}

	// Set timestamps if not already set (for tests)
	now := time.Now()
	if a.CreatedAt.IsZero() {
		a.CreatedAt = now
	}
	if a.UpdatedAt.IsZero() {
		a.UpdatedAt = now
	}

	return a.Validate()
}

// BeforeUpdate hook for Account
func (a *Account) BeforeUpdate(tx *gorm.DB) error {
	a.UpdatedAt = time.Now()
	return a.Validate()
}

// Validate validates the account fields
func (a *Account) Validate() error {
	if a.OwnerName == "" {
		return errors.New("owner name is required")
	}

	if a.Email == "" {
		return errors.New("email is required")
	}

	if a.AccountNumber == "" {
		return errors.New("account number is required")
	}

	if !ValidateAccountNumber(a.AccountNumber) {
		return errors.New("account number must be ACC followed by 9 digits")
	}

	if !IsValidAccountType(a.AccountType) {
		return ErrInvalidAccountType
	}

	if !IsValidAccountStatus(a.Status) {
		return ErrInvalidAccountStatus
	}

	if a.Balance.LessThan(decimal.Zero) {
		return ErrInvalidBalance
	}

	return nil
}

// IsActive returns true if the account is active
func (a *Account) IsActive() bool {
	return a.Status == AccountStatusActive
}

// CanDeposit checks whether the amount can be deposited
func (a *Account) CanDeposit(amount decimal.Decimal) bool {
	return a.IsActive() && amount.GreaterThan(decimal.Zero)
}

// CanWithdraw checks whether the amount can be withdrawn. This check is
// amount-only; fee coverage is verified separately by the caller.
func (a *Account) CanWithdraw(amount decimal.Decimal) bool {
	return a.IsActive() && a.Balance.GreaterThanOrEqual(amount) && amount.GreaterThan(decimal.Zero)
}

// Suspend moves an active account to suspended
func (a *Account) Suspend() error {
	if a.Status == AccountStatusClosed {
		return ErrAccountClosed
	}
	if a.Status == AccountStatusSuspended {
		return errors.New("account is already suspended")
	}

	a.Status = AccountStatusSuspended
	return nil
}

// Activate moves a suspended account back to active. Closed is terminal.
func (a *Account) Activate() error {
	if a.Status == AccountStatusClosed {
		return ErrAccountClosed
	}
	if a.Status == AccountStatusActive {
		return errors.New("account is already active")
	}

	a.Status = AccountStatusActive
	return nil
}

// Close closes the account. The balance must be zero.
func (a *Account) Close() error {
	if a.Status == AccountStatusClosed {
		return errors.New("account is already closed")
	}

	if !a.Balance.IsZero() {
		return ErrBalanceNotZero
	}

	a.Status = AccountStatusClosed
	return nil
}

// Debit subtracts amount from the balance
func (a *Account) Debit(amount decimal.Decimal) error {
	if !a.IsActive() {
		return ErrAccountNotActive
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("debit amount must be positive")
	}

	if a.Balance.LessThan(amount) {
		return ErrInsufficientFunds
	}

	a.Balance = a.Balance.Sub(amount)
	return nil
}

// Credit adds amount to the balance
func (a *Account) Credit(amount decimal.Decimal) error {
	if !a.IsActive() {
		return ErrAccountNotActive
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return errors.New("credit amount must be positive")
	}

	a.Balance = a.Balance.Add(amount)
	return nil
}

// TableName returns the table name for Account
func (a *Account) TableName() string {
	return "accounts"
}

// Helper functions

// IsValidAccountType checks if the account type is valid
func IsValidAccountType(accountType string) bool {
	switch accountType {
	case AccountTypeSavings, AccountTypeChecking, AccountTypeBusiness:
		return true
	default:
		return false
	}
}

// IsValidAccountStatus checks if the account status is valid
func IsValidAccountStatus(status string) bool {
	switch status {
	case AccountStatusActive, AccountStatusSuspended, AccountStatusClosed:
		return true
	default:
		return false
	}
}

// ValidateAccountNumber validates an account number format (ACC + 9 digits)
func ValidateAccountNumber(accountNumber string) bool {
	if !strings.HasPrefix(accountNumber, AccountNumberPrefix) {
		return false
	}

	digits := accountNumber[len(AccountNumberPrefix):]
	if len(digits) != AccountNumberDigits {
		return false
	}

	for _, char := range digits {
		if char < '0' || char > '9' {
			return false
		}
	}

	return true
}
