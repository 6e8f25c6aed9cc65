package models

import (
	"errors"
	"fmt"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	CardTypeDebit   = "debit"
	CardTypeCredit  = "credit"
	CardTypePrepaid = "prepaid"

	CardStatusActive   = "active"
	CardStatusInactive = "inactive"
	CardStatusExpired  = "expired"
)

var (
	ErrInvalidCardType = errors.New("invalid card type")
	ErrCardBlocked     = errors.New("card is blocked")
	ErrCardNotBlocked  = errors.New("card is not blocked")
	ErrCardExpired     = errors.New("card is expired")
)

// Card represents a payment card issued against an account
type Card struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	AccountID       uint            `gorm:"not null;index" json:"account_id"`
	CardNumber      string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"card_number"`
	CardHolderName  string          `gorm:"type:varchar(100);not null" json:"card_holder_name"`
	CardType        string          `gorm:"type:varchar(20);not null" json:"card_type"`
	ExpiryDate      string          `gorm:"type:varchar(7);not null" json:"expiry_date"`
	CVV             string          `gorm:"type:varchar(4);not null" json:"-"`
	CreditLimit     decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"credit_limit"`
	AvailableCredit decimal.Decimal `gorm:"type:decimal(18,2);not null;default:0" json:"available_credit"`
	Status          string          `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	IsBlocked       bool            `gorm:"not null;default:false" json:"is_blocked"`
	BlockedDate     *time.Time      `json:"blocked_date,omitempty"`
	BlockReason     string          `gorm:"type:varchar(255)" json:"block_reason,omitempty"`
	IssuedDate      time.Time       `gorm:"not null" json:"issued_date"`
	CreatedAt       time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt       time.Time       `gorm:"not null" json:"updated_at"`

	Account *Account `gorm:"foreignKey:AccountID" json:"-"`
}

// BeforeCreate hook for Card
func (c *Card) BeforeCreate(tx *gorm.DB) error {
	if c.Status == "" {
		c.Status = CardStatusActive
	}

	now := time.Now()
	if c.IssuedDate.IsZero() {
		c.IssuedDate = now
	}
	if c.CreatedAt.IsZero() {
		c.CreatedAt = now
	}
	if c.UpdatedAt.IsZero() {
		c.UpdatedAt = now
	}

	return c.Validate()
}

// BeforeUpdate hook for Card
func (c *Card) BeforeUpdate(tx *gorm.DB) error {
	c.UpdatedAt = time.Now()
	return nil
}

// Validate validates the card fields
func (c *Card) Validate() error {
	if c.AccountID == 0 {
		return errors.New("account id is required")
	}

	if c.CardNumber == "" {
		return errors.New("card number is required")
	}

	if c.CardHolderName == "" {
		return errors.New("card holder name is required")
	}

	if !IsValidCardType(c.CardType) {
		return ErrInvalidCardType
	}

	if _, err := ParseExpiryDate(c.ExpiryDate); err != nil {
		return err
	}

	return nil
}

// IsExpired returns true if the card expiry date has passed
func (c *Card) IsExpired() bool {
	expiry, err := ParseExpiryDate(c.ExpiryDate)
	if err != nil {
		return true
	}

	// The card is usable through the end of its expiry month.
	endOfMonth := expiry.AddDate(0, 1, 0)
	return !time.Now().Before(endOfMonth)
}

// CanUse returns true if the card is active, unblocked and unexpired
func (c *Card) CanUse() bool {
	return c.Status == CardStatusActive && !c.IsBlocked && !c.IsExpired()
}

// Block blocks the card with a reason
func (c *Card) Block(reason string) error {
	if c.IsBlocked {
		return ErrCardBlocked
	}

	now := time.Now()
	c.IsBlocked = true
	c.BlockedDate = &now
	c.BlockReason = reason
	return nil
}

// Unblock removes a block from the card
func (c *Card) Unblock() error {
	if !c.IsBlocked {
		return ErrCardNotBlocked
	}

	c.IsBlocked = false
	c.BlockedDate = nil
	c.BlockReason = ""
	return nil
}

// TableName returns the table name for Card
func (c *Card) TableName() string {
	return "cards"
}

// IsValidCardType checks if the card type is valid
func IsValidCardType(cardType string) bool {
	switch cardType {
	case CardTypeDebit, CardTypeCredit, CardTypePrepaid:
		return true
	default:
		return false
	}
}

// ParseExpiryDate parses an MM/YYYY expiry string into the first day of
// that month.
func ParseExpiryDate(expiry string) (time.Time, error) {
	parsed, err := time.Parse("01/2006", expiry)
	if err != nil {
		return time.Time{}, fmt.Errorf("expiry date must be in MM/YYYY format: %w", err)
	}
	return parsed, nil
}
