package dto

import "github.com/shopspring/decimal"

// IssueCardRequest represents the request payload for issuing a card
type IssueCardRequest struct {
	CardHolderName string          `json:"card_holder_name" validate:"required,min=1,max=100"`
	CardType       string          `json:"card_type" validate:"required,oneof=debit credit prepaid"`
	CreditLimit    decimal.Decimal `json:"credit_limit" validate:"omitempty"`
}

// BlockCardRequest carries the reason for blocking a card
type BlockCardRequest struct {
	Reason string `json:"reason" validate:"required,min=1,max=255"`
}
