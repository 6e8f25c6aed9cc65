package dto

import (
	"github.com/shopspring/decimal"

	"bank-management/internal/models"
)

// Transaction Request DTOs

// DepositRequest represents the request payload for a deposit
type DepositRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"required,positive_amount"`
	Description string          `json:"description" validate:"omitempty,max=255"`
	Reference   string          `json:"reference" validate:"omitempty,max=100"`
}

// WithdrawRequest represents the request payload for a withdrawal
type WithdrawRequest struct {
	Amount      decimal.Decimal `json:"amount" validate:"required,positive_amount"`
	Description string          `json:"description" validate:"omitempty,max=255"`
	Reference   string          `json:"reference" validate:"omitempty,max=100"`
}

// TransferRequest represents the request payload for a transfer between accounts
type TransferRequest struct {
	RecipientAccountNumber string          `json:"recipient_account_number" validate:"required,account_number"`
	Amount                 decimal.Decimal `json:"amount" validate:"required,positive_amount"`
	Description            string          `json:"description" validate:"omitempty,max=255"`
	Reference              string          `json:"reference" validate:"omitempty,max=100"`
}

// CalculateFeeRequest asks for the fee of a hypothetical transaction.
// Bound from query parameters on the calculate-fee endpoint.
type CalculateFeeRequest struct {
	Type   string          `query:"transactionType" json:"type" validate:"required,transaction_type"`
	Amount decimal.Decimal `query:"amount" json:"amount" validate:"required,positive_amount"`
}

// Transaction Response DTOs

// FeeResponse reports the fee for a transaction type and amount
type FeeResponse struct {
	Type   string          `json:"type"`
	Amount decimal.Decimal `json:"amount"`
	Fee    decimal.Decimal `json:"fee"`
}

// TransferResponse represents the outcome of a completed transfer. Both
// legs are returned together with the resulting balances and total fee.
type TransferResponse struct {
	DebitTransaction  *models.Transaction `json:"debit_transaction"`
	CreditTransaction *models.Transaction `json:"credit_transaction"`
	SourceBalance     decimal.Decimal     `json:"source_balance"`
	RecipientBalance  decimal.Decimal     `json:"recipient_balance"`
	TotalFee          decimal.Decimal     `json:"total_fee"`
}
