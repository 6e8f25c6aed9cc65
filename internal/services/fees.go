package services

import (
	"bank-management/internal/models"

	"github.com/shopspring/decimal"
)

var (
	withdrawalTier1Limit = decimal.NewFromInt(1000)
	withdrawalTier2Limit = decimal.NewFromInt(5000)
	withdrawalTier1Fee   = decimal.NewFromInt(5)
	withdrawalTier2Fee   = decimal.NewFromInt(10)
	withdrawalRate       = decimal.NewFromFloat(0.002)

	transferTier1Limit = decimal.NewFromInt(1000)
	transferTier2Limit = decimal.NewFromInt(10000)
	transferTier1Fee   = decimal.NewFromInt(2)
	transferTier2Fee   = decimal.NewFromInt(5)
	transferRate       = decimal.NewFromFloat(0.001)
)

// CalculateFee returns the fee charged for a transaction of the given type
// and amount. Deposits are free. Withdrawals and transfers use flat tiers
// up to their thresholds and a percentage of the amount above them,
// rounded to 2 decimal places. Unknown types carry no fee.
func CalculateFee(transactionType string, amount decimal.Decimal) decimal.Decimal {
	switch transactionType {
	case models.TransactionTypeWithdrawal:
		if amount.LessThanOrEqual(withdrawalTier1Limit) {
			return withdrawalTier1Fee
		}
		if amount.LessThanOrEqual(withdrawalTier2Limit) {
			return withdrawalTier2Fee
		}
		return amount.Mul(withdrawalRate).Round(2)
	case models.TransactionTypeTransfer:
		if amount.LessThanOrEqual(transferTier1Limit) {
			return transferTier1Fee
		}
		if amount.LessThanOrEqual(transferTier2Limit) {
			return transferTier2Fee
		}
		return amount.Mul(transferRate).Round(2)
	default:
		return decimal.Zero
	}
}
