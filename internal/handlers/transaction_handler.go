package handlers

import (
	"bank-management/internal/dto"
	"bank-management/internal/errors"
	"bank-management/internal/models"
	"bank-management/internal/services"

	"github.com/labstack/echo/v4"
)

// TransactionHandler handles transaction-related HTTP requests
type TransactionHandler struct {
	transactionService services.TransactionServiceInterface
}

// NewTransactionHandler creates a new transaction handler
func NewTransactionHandler(transactionService services.TransactionServiceInterface) *TransactionHandler {
	return &TransactionHandler{transactionService: transactionService}
}

// Deposit credits an amount to an account
func (h *TransactionHandler) Deposit(c echo.Context) error {
	accountID, err := parseIDParam(c, "accountId")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid account ID"))
	}

	var req dto.DepositRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	transaction, err := h.transactionService.Deposit(accountID, &req)
	if err != nil {
		return h.mapTransactionErr(c, err)
	}

	return SendCreated(c, transaction, "Deposit completed successfully")
}

// Withdraw debits an amount plus its fee from an account
func (h *TransactionHandler) Withdraw(c echo.Context) error {
	accountID, err := parseIDParam(c, "accountId")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid account ID"))
	}

	var req dto.WithdrawRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	transaction, err := h.transactionService.Withdraw(accountID, &req)
	if err != nil {
		return h.mapTransactionErr(c, err)
	}

	return SendCreated(c, transaction, "Withdrawal completed successfully")
}

// Transfer moves an amount from the source account to a recipient
// identified by account number
func (h *TransactionHandler) Transfer(c echo.Context) error {
	accountID, err := parseIDParam(c, "accountId")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid account ID"))
	}

	var req dto.TransferRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	transfer, err := h.transactionService.Transfer(accountID, &req)
	if err != nil {
		return h.mapTransferErr(c, err)
	}

	return SendCreated(c, transfer, "Transfer completed successfully")
}

// GetTransaction retrieves a transaction by numeric ID
func (h *TransactionHandler) GetTransaction(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid transaction ID"))
	}

	transaction, err := h.transactionService.GetTransactionByID(id)
	if err != nil {
		return h.mapTransactionErr(c, err)
	}

	return SendSuccess(c, transaction, "")
}

// GetTransactionByTransactionID retrieves a transaction by its external id
func (h *TransactionHandler) GetTransactionByTransactionID(c echo.Context) error {
	transaction, err := h.transactionService.GetTransactionByTransactionID(c.Param("txnId"))
	if err != nil {
		return h.mapTransactionErr(c, err)
	}

	return SendSuccess(c, transaction, "")
}

// GetAccountTransactions retrieves a filtered, paginated transaction
// listing for an account
func (h *TransactionHandler) GetAccountTransactions(c echo.Context) error {
	accountID, err := parseIDParam(c, "accountId")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid account ID"))
	}

	filters := parseTransactionFilters(c, accountID)

	transactions, total, err := h.transactionService.GetTransactions(filters)
	if err != nil {
		return SendSystemError(c, err)
	}

	filters.Normalize()
	page := dto.NewPagedResult(transactions, total, filters.Page, filters.PageSize)
	return SendSuccess(c, page, "")
}

// GetRecentTransactions retrieves the most recent transactions for an
// account
func (h *TransactionHandler) GetRecentTransactions(c echo.Context) error {
	accountID, err := parseIDParam(c, "accountId")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid account ID"))
	}

	limit := getIntParam(c, "limit", 10)

	transactions, err := h.transactionService.GetRecentTransactions(accountID, limit)
	if err != nil {
		return h.mapTransactionErr(c, err)
	}

	return SendSuccess(c, transactions, "")
}

// GetPendingTransactions retrieves pending transactions for an account
func (h *TransactionHandler) GetPendingTransactions(c echo.Context) error {
	accountID, err := parseIDParam(c, "accountId")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid account ID"))
	}

	transactions, err := h.transactionService.GetPendingTransactions(accountID)
	if err != nil {
		return h.mapTransactionErr(c, err)
	}

	return SendSuccess(c, transactions, "")
}

// CancelTransaction cancels a pending transaction
func (h *TransactionHandler) CancelTransaction(c echo.Context) error {
	return h.settle(c, h.transactionService.CancelTransaction, "Transaction cancelled successfully")
}

// ProcessTransaction completes a pending transaction
func (h *TransactionHandler) ProcessTransaction(c echo.Context) error {
	return h.settle(c, h.transactionService.ProcessTransaction, "Transaction processed successfully")
}

func (h *TransactionHandler) settle(c echo.Context, op func(uint) (*models.Transaction, error), message string) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid transaction ID"))
	}

	transaction, err := op(id)
	if err != nil {
		return h.mapTransactionErr(c, err)
	}

	return SendSuccess(c, transaction, message)
}

// GetStatistics reports aggregate transaction statistics, optionally
// bounded by a date window
func (h *TransactionHandler) GetStatistics(c echo.Context) error {
	filters := models.TransactionFilters{
		StartDate: parseDateParam(c, "startDate"),
		EndDate:   parseDateParam(c, "endDate"),
	}

	stats, err := h.transactionService.GetStatistics(filters)
	if err != nil {
		return SendSystemError(c, err)
	}

	return SendSuccess(c, stats, "")
}

// CalculateFee reports the fee a hypothetical transaction would carry
func (h *TransactionHandler) CalculateFee(c echo.Context) error {
	var req dto.CalculateFeeRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid query parameters"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	fee := services.CalculateFee(req.Type, req.Amount)

	return SendSuccess(c, dto.FeeResponse{
		Type:   req.Type,
		Amount: req.Amount,
		Fee:    fee,
	}, "")
}

func (h *TransactionHandler) mapTransactionErr(c echo.Context, err error) error {
	switch err {
	case services.ErrAccountNotFound:
		return SendError(c, errors.AccountNotFound)
	case services.ErrAccountNotActive:
		return SendError(c, errors.AccountInactive)
	case services.ErrInvalidAmount:
		return SendError(c, errors.TransactionInvalidAmount)
	case services.ErrInsufficientFunds:
		return SendError(c, errors.TransactionInsufficientFunds)
	case services.ErrTransactionNotFound:
		return SendError(c, errors.TransactionNotFound)
	case services.ErrTransactionNotPending:
		return SendError(c, errors.TransactionNotPending)
	case services.ErrConcurrentModification:
		return SendError(c, errors.AccountConcurrentUpdate)
	}

	return SendSystemError(c, err)
}

func (h *TransactionHandler) mapTransferErr(c echo.Context, err error) error {
	switch err {
	case services.ErrAccountNotFound:
		return SendError(c, errors.AccountNotFound)
	case services.ErrRecipientNotFound:
		return SendError(c, errors.TransferRecipientNotFound)
	case services.ErrSameAccountTransfer:
		return SendError(c, errors.TransferSameAccount)
	case services.ErrAccountNotActive:
		return SendError(c, errors.AccountInactive)
	case services.ErrInvalidAmount:
		return SendError(c, errors.TransferInvalidAmount)
	case services.ErrInsufficientFunds:
		return SendError(c, errors.TransferInsufficientFunds)
	case services.ErrConcurrentModification:
		return SendError(c, errors.AccountConcurrentUpdate)
	}

	return SendSystemError(c, err)
}
