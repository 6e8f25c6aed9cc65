package validation

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type amountPayload struct {
	Amount decimal.Decimal `json:"amount" validate:"required,positive_amount"`
}

type optionalAmountPayload struct {
	Amount decimal.Decimal `json:"amount" validate:"omitempty,positive_amount"`
}

type typedPayload struct {
	AccountType     string `json:"account_type" validate:"omitempty,account_type"`
	TransactionType string `json:"transaction_type" validate:"omitempty,transaction_type"`
}

type numberPayload struct {
	AccountNumber string `json:"account_number" validate:"required,account_number"`
}

func TestPositiveAmount_Decimal(t *testing.T) {
	v := GetValidator().GetValidate()

	assert.NoError(t, v.Struct(amountPayload{Amount: decimal.NewFromFloat(0.01)}))
	assert.Error(t, v.Struct(amountPayload{Amount: decimal.NewFromFloat(-5.00)}))
	// Zero is caught as a missing required value
	assert.Error(t, v.Struct(amountPayload{Amount: decimal.Zero}))
}

func TestPositiveAmount_OptionalZeroAllowed(t *testing.T) {
	v := GetValidator().GetValidate()

	assert.NoError(t, v.Struct(optionalAmountPayload{Amount: decimal.Zero}))
	assert.NoError(t, v.Struct(optionalAmountPayload{Amount: decimal.NewFromInt(100)}))
	assert.Error(t, v.Struct(optionalAmountPayload{Amount: decimal.NewFromInt(-1)}))
}

func TestAccountNumberTag(t *testing.T) {
	v := GetValidator().GetValidate()

	assert.NoError(t, v.Struct(numberPayload{AccountNumber: "ACC123456789"}))
	assert.Error(t, v.Struct(numberPayload{AccountNumber: "ACC12345678"}))
	assert.Error(t, v.Struct(numberPayload{AccountNumber: "XYZ123456789"}))
}

func TestTypeTags(t *testing.T) {
	v := GetValidator().GetValidate()

	testCases := []struct {
		name    string
		payload typedPayload
		valid   bool
	}{
		{"valid account type", typedPayload{AccountType: "checking"}, true},
		{"uppercase account type rejected", typedPayload{AccountType: "Checking"}, false},
		{"unknown account type", typedPayload{AccountType: "offshore"}, false},
		{"valid transaction type", typedPayload{TransactionType: "withdrawal"}, true},
		{"unknown transaction type", typedPayload{TransactionType: "chargeback"}, false},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			err := v.Struct(tc.payload)
			if tc.valid {
				assert.NoError(t, err)
			} else {
				assert.Error(t, err)
			}
		})
	}
}
