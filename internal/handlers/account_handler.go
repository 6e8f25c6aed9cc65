package handlers

import (
	"strings"

	"bank-management/internal/dto"
	"bank-management/internal/errors"
	"bank-management/internal/models"
	"bank-management/internal/services"

	"github.com/labstack/echo/v4"
)

// AccountHandler handles account-related HTTP requests
type AccountHandler struct {
	accountService services.AccountServiceInterface
}

// NewAccountHandler creates a new account handler
func NewAccountHandler(accountService services.AccountServiceInterface) *AccountHandler {
	return &AccountHandler{accountService: accountService}
}

// CreateAccount creates a new bank account. A positive initial balance is
// recorded as a synthetic deposit transaction.
func (h *AccountHandler) CreateAccount(c echo.Context) error {
	var req dto.CreateAccountRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	account, err := h.accountService.CreateAccount(&req)
	if err != nil {
		return h.mapAccountErr(c, err)
	}

	return SendCreated(c, account, "Account created successfully")
}

// GetAccounts retrieves a filtered, paginated account listing
func (h *AccountHandler) GetAccounts(c echo.Context) error {
	filters := parseAccountFilters(c)

	accounts, total, err := h.accountService.GetAccounts(filters)
	if err != nil {
		return SendSystemError(c, err)
	}

	filters.Normalize()
	page := dto.NewPagedResult(accounts, total, filters.Page, filters.PageSize)
	return SendSuccess(c, page, "")
}

// SearchAccounts retrieves accounts matching a search term
func (h *AccountHandler) SearchAccounts(c echo.Context) error {
	searchTerm := c.QueryParam("searchTerm")
	if searchTerm == "" {
		return SendError(c, errors.ValidationRequiredField, errors.WithDetails("searchTerm is required"))
	}

	limit := getIntParam(c, "limit", 20)

	accounts, err := h.accountService.SearchAccounts(searchTerm, limit)
	if err != nil {
		return SendSystemError(c, err)
	}

	return SendSuccess(c, accounts, "")
}

// GetStatistics reports aggregate account statistics
func (h *AccountHandler) GetStatistics(c echo.Context) error {
	stats, err := h.accountService.GetStatistics()
	if err != nil {
		return SendSystemError(c, err)
	}

	return SendSuccess(c, stats, "")
}

// GetAccount retrieves a specific account by ID
func (h *AccountHandler) GetAccount(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid account ID"))
	}

	account, err := h.accountService.GetAccountByID(id)
	if err != nil {
		return h.mapAccountErr(c, err)
	}

	return SendSuccess(c, account, "")
}

// GetAccountByNumber retrieves an account by its account number
func (h *AccountHandler) GetAccountByNumber(c echo.Context) error {
	account, err := h.accountService.GetAccountByNumber(c.Param("number"))
	if err != nil {
		return h.mapAccountErr(c, err)
	}

	return SendSuccess(c, account, "")
}

// GetBalance reports the current balance of an account
func (h *AccountHandler) GetBalance(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid account ID"))
	}

	balance, err := h.accountService.GetBalance(id)
	if err != nil {
		return h.mapAccountErr(c, err)
	}

	return SendSuccess(c, balance, "")
}

// UpdateAccount applies partial updates to an account
func (h *AccountHandler) UpdateAccount(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid account ID"))
	}

	var req dto.UpdateAccountRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	account, err := h.accountService.UpdateAccount(id, &req)
	if err != nil {
		return h.mapAccountErr(c, err)
	}

	return SendSuccess(c, account, "Account updated successfully")
}

// DeleteAccount soft deletes an account with a zero balance and no
// pending activity
func (h *AccountHandler) DeleteAccount(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid account ID"))
	}

	if err := h.accountService.DeleteAccount(id); err != nil {
		return h.mapAccountErr(c, err)
	}

	return SendSuccess(c, nil, "Account deleted successfully")
}

// SuspendAccount suspends an active account
func (h *AccountHandler) SuspendAccount(c echo.Context) error {
	return h.changeStatus(c, h.accountService.SuspendAccount, "Account suspended successfully")
}

// ActivateAccount reactivates a suspended account
func (h *AccountHandler) ActivateAccount(c echo.Context) error {
	return h.changeStatus(c, h.accountService.ActivateAccount, "Account activated successfully")
}

// CloseAccount closes an account. The balance must be zero.
func (h *AccountHandler) CloseAccount(c echo.Context) error {
	return h.changeStatus(c, h.accountService.CloseAccount, "Account closed successfully")
}

func (h *AccountHandler) changeStatus(c echo.Context, op func(uint, string) (*models.Account, error), message string) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid account ID"))
	}

	var req dto.AccountStatusRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	account, err := op(id, req.Reason)
	if err != nil {
		return h.mapAccountErr(c, err)
	}

	return SendSuccess(c, account, message)
}

func (h *AccountHandler) mapAccountErr(c echo.Context, err error) error {
	switch {
	case err == services.ErrAccountNotFound:
		return SendError(c, errors.AccountNotFound)
	case err == services.ErrEmailExists:
		return SendError(c, errors.AccountEmailExists)
	case err == services.ErrInvalidAmount:
		return SendError(c, errors.TransactionInvalidAmount)
	case err == services.ErrAccountNotActive:
		return SendError(c, errors.AccountInactive)
	case err == services.ErrBalanceNotZero, err == models.ErrBalanceNotZero:
		return SendError(c, errors.AccountBalanceNotZero)
	case err == services.ErrHasPendingActivity, err == services.ErrHasActiveLoans:
		return SendError(c, errors.AccountHasPendingActivity)
	case err == services.ErrConcurrentModification:
		return SendError(c, errors.AccountConcurrentUpdate)
	case err == models.ErrAccountClosed:
		return SendError(c, errors.AccountClosed)
	case err == models.ErrInvalidAccountStatus:
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	// Lifecycle guards surface free-form errors (already suspended, already
	// active, already closed)
	if msg := err.Error(); strings.HasPrefix(msg, "account is already") {
		return SendError(c, errors.AccountOperationNotPermitted, errors.WithDetails(msg))
	}

	return SendSystemError(c, err)
}
