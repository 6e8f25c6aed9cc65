package dto

import "github.com/shopspring/decimal"

// CreateLoanRequest represents the request payload for originating a loan
type CreateLoanRequest struct {
	LoanType        string          `json:"loan_type" validate:"required,oneof=personal mortgage auto business"`
	PrincipalAmount decimal.Decimal `json:"principal_amount" validate:"required,positive_amount"`
	InterestRate    decimal.Decimal `json:"interest_rate" validate:"omitempty"`
	TermInMonths    int             `json:"term_in_months" validate:"required,min=1,max=480"`
}

// LoanPaymentRequest represents the request payload for recording a payment
type LoanPaymentRequest struct {
	Amount decimal.Decimal `json:"amount" validate:"required,positive_amount"`
}
