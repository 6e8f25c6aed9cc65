package models

import (
	"time"

	"github.com/shopspring/decimal"
)

// TransactionFilters holds the optional filters and paging for per-account
// transaction listings
type TransactionFilters struct {
	AccountID uint
	Type      string
	Status    string
	StartDate *time.Time
	EndDate   *time.Time
	Page      int
	PageSize  int
}

// Normalize clamps paging values into their allowed ranges
func (f *TransactionFilters) Normalize() {
	if f.Page < 1 {
		f.Page = 1
	}
	if f.PageSize < 1 {
		f.PageSize = DefaultPageSize
	}
	if f.PageSize > MaxPageSize {
		f.PageSize = MaxPageSize
	}
}

// Offset returns the row offset for the current page
func (f *TransactionFilters) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// TransactionStatistics aggregates transaction counts and sums, optionally
// bounded by a date window
type TransactionStatistics struct {
	TotalTransactions int64           `json:"total_transactions"`
	TotalAmount       decimal.Decimal `json:"total_amount"`
	TotalDeposits     decimal.Decimal `json:"total_deposits"`
	TotalWithdrawals  decimal.Decimal `json:"total_withdrawals"`
	TotalTransfers    decimal.Decimal `json:"total_transfers"`
	TotalFees         decimal.Decimal `json:"total_fees"`
	AverageAmount     decimal.Decimal `json:"average_amount"`
}
