package models

import (
	"strings"

	"github.com/shopspring/decimal"
)

const (
	// DefaultPageSize applies when a page size is not given.
	DefaultPageSize = 10
	// MaxPageSize caps the page size on every paginated listing.
	MaxPageSize = 100
)

// AccountFilters holds the optional filters, sorting and paging for
// account listings
type AccountFilters struct {
	SearchTerm    string
	AccountType   string
	Status        string
	SortBy        string
	SortDirection string
	Page          int
	PageSize      int
}

// sortableColumns maps accepted sortBy values onto their columns. Anything
// else falls back to creation time.
var sortableColumns = map[string]string{
	"ownerName":     "owner_name",
	"email":         "email",
	"balance":       "balance",
	"accountNumber": "account_number",
	"createdAt":     "created_at",
}

// OrderClause returns the ORDER BY expression for the requested sort.
// Defaults to created_at DESC.
func (f *AccountFilters) OrderClause() string {
	column, ok := sortableColumns[f.SortBy]
	if !ok {
		column = "created_at"
	}

	direction := "DESC"
	if strings.EqualFold(f.SortDirection, "asc") {
		direction = "ASC"
	}

	return column + " " + direction
}

// Normalize clamps paging values into their allowed ranges
func (f *AccountFilters) Normalize() {
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
func (f *AccountFilters) Offset() int {
	return (f.Page - 1) * f.PageSize
}

// AccountStatistics aggregates account counts and balances
type AccountStatistics struct {
	TotalAccounts    int64            `json:"total_accounts"`
	ActiveAccounts   int64            `json:"active_accounts"`
	TotalBalance     decimal.Decimal  `json:"total_balance"`
	AverageBalance   decimal.Decimal  `json:"average_balance"`
	TypeDistribution map[string]int64 `json:"type_distribution"`
}
