package handlers

import (
	"strconv"
	"time"

	"bank-management/internal/models"

	"github.com/labstack/echo/v4"
)

// parseIDParam parses a numeric path parameter
func parseIDParam(c echo.Context, name string) (uint, error) {
	value, err := strconv.ParseUint(c.Param(name), 10, 32)
	if err != nil {
		return 0, err
	}
	return uint(value), nil
}

func getIntParam(c echo.Context, name string, defaultValue int) int {
	param := c.QueryParam(name)
	if param == "" {
		return defaultValue
	}

	value, err := strconv.Atoi(param)
	if err != nil {
		return defaultValue
	}

	return value
}

// parseAccountFilters reads the listing query parameters. Paging is
// clamped by Normalize at the repository boundary.
func parseAccountFilters(c echo.Context) models.AccountFilters {
	return models.AccountFilters{
		SearchTerm:    c.QueryParam("searchTerm"),
		AccountType:   c.QueryParam("accountType"),
		Status:        c.QueryParam("status"),
		SortBy:        c.QueryParam("sortBy"),
		SortDirection: c.QueryParam("sortDirection"),
		Page:          getIntParam(c, "page", 1),
		PageSize:      getIntParam(c, "pageSize", models.DefaultPageSize),
	}
}

// parseTransactionFilters reads per-account transaction listing parameters
func parseTransactionFilters(c echo.Context, accountID uint) models.TransactionFilters {
	filters := models.TransactionFilters{
		AccountID: accountID,
		Type:      c.QueryParam("type"),
		Status:    c.QueryParam("status"),
		Page:      getIntParam(c, "page", 1),
		PageSize:  getIntParam(c, "pageSize", models.DefaultPageSize),
	}

	if start := parseDateParam(c, "startDate"); start != nil {
		filters.StartDate = start
	}
	if end := parseDateParam(c, "endDate"); end != nil {
		filters.EndDate = end
	}

	return filters
}

// parseDateParam accepts RFC3339 or date-only values
func parseDateParam(c echo.Context, name string) *time.Time {
	param := c.QueryParam(name)
	if param == "" {
		return nil
	}

	if t, err := time.Parse(time.RFC3339, param); err == nil {
		return &t
	}
	if t, err := time.Parse("2006-01-02", param); err == nil {
		return &t
	}

	return nil
}
