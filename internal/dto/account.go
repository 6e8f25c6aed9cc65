package dto

import (
	"github.com/shopspring/decimal"
)

// Account Request DTOs

// CreateAccountRequest represents the request payload for creating a new account
type CreateAccountRequest struct {
	OwnerName      string          `json:"owner_name" validate:"required,min=1,max=100"`
	Email          string          `json:"email" validate:"required,email,max=120"`
	PhoneNumber    string          `json:"phone_number" validate:"omitempty,max=20"`
	AccountType    string          `json:"account_type" validate:"required,account_type"`
	InitialBalance decimal.Decimal `json:"initial_balance" validate:"omitempty,positive_amount"`
	Notes          string          `json:"notes" validate:"omitempty,max=500"`
}

// UpdateAccountRequest represents the request payload for updating account details
type UpdateAccountRequest struct {
	OwnerName   *string `json:"owner_name" validate:"omitempty,min=1,max=100"`
	PhoneNumber *string `json:"phone_number" validate:"omitempty,max=20"`
	Notes       *string `json:"notes" validate:"omitempty,max=500"`
	Status      *string `json:"status" validate:"omitempty,oneof=active suspended closed"`
}

// AccountStatusRequest carries an optional reason for a lifecycle change
type AccountStatusRequest struct {
	Reason string `json:"reason" validate:"omitempty,max=255"`
}

// Account Response DTOs

// BalanceResponse reports an account's current balance
type BalanceResponse struct {
	AccountID     uint            `json:"account_id"`
	AccountNumber string          `json:"account_number"`
	Balance       decimal.Decimal `json:"balance"`
}
