package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAccountFilters_Normalize(t *testing.T) {
	testCases := []struct {
		name             string
		filters          AccountFilters
		expectedPage     int
		expectedPageSize int
	}{
		{"Defaults applied", AccountFilters{}, 1, DefaultPageSize},
		{"Negative page clamped", AccountFilters{Page: -3, PageSize: 20}, 1, 20},
		{"Oversized page size capped", AccountFilters{Page: 2, PageSize: 500}, 2, MaxPageSize},
		{"Valid values untouched", AccountFilters{Page: 4, PageSize: 25}, 4, 25},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			tc.filters.Normalize()
			assert.Equal(t, tc.expectedPage, tc.filters.Page)
			assert.Equal(t, tc.expectedPageSize, tc.filters.PageSize)
		})
	}
}

func TestAccountFilters_Offset(t *testing.T) {
	filters := AccountFilters{Page: 3, PageSize: 10}
	assert.Equal(t, 20, filters.Offset())
}

func TestAccountFilters_OrderClause(t *testing.T) {
	testCases := []struct {
		name     string
		filters  AccountFilters
		expected string
	}{
		{"Default sort", AccountFilters{}, "created_at DESC"},
		{"Sort by owner name ascending", AccountFilters{SortBy: "ownerName", SortDirection: "asc"}, "owner_name ASC"},
		{"Sort by balance descending", AccountFilters{SortBy: "balance", SortDirection: "desc"}, "balance DESC"},
		{"Direction case insensitive", AccountFilters{SortBy: "email", SortDirection: "ASC"}, "email ASC"},
		{"Unknown column falls back", AccountFilters{SortBy: "notes", SortDirection: "asc"}, "created_at ASC"},
		{"Unknown direction defaults to descending", AccountFilters{SortBy: "accountNumber", SortDirection: "sideways"}, "account_number DESC"},
	}

	for _, tc := range testCases {
		t.Run(tc.name, func(t *testing.T) {
			assert.Equal(t, tc.expected, tc.filters.OrderClause())
		})
	}
}
