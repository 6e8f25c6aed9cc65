package handlers

import (
	"bank-management/internal/dto"
	"bank-management/internal/errors"
	"bank-management/internal/models"
	"bank-management/internal/services"

	"github.com/labstack/echo/v4"
)

// LoanHandler handles loan-related HTTP requests
type LoanHandler struct {
	loanService services.LoanServiceInterface
}

// NewLoanHandler creates a new loan handler
func NewLoanHandler(loanService services.LoanServiceInterface) *LoanHandler {
	return &LoanHandler{loanService: loanService}
}

// CreateLoan originates a loan against an account
func (h *LoanHandler) CreateLoan(c echo.Context) error {
	accountID, err := parseIDParam(c, "accountId")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid account ID"))
	}

	var req dto.CreateLoanRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	loan, err := h.loanService.CreateLoan(accountID, &req)
	if err != nil {
		return h.mapLoanErr(c, err)
	}

	return SendCreated(c, loan, "Loan created successfully")
}

// GetLoan retrieves a loan by ID
func (h *LoanHandler) GetLoan(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid loan ID"))
	}

	loan, err := h.loanService.GetLoanByID(id)
	if err != nil {
		return h.mapLoanErr(c, err)
	}

	return SendSuccess(c, loan, "")
}

// GetAccountLoans retrieves all loans for an account
func (h *LoanHandler) GetAccountLoans(c echo.Context) error {
	accountID, err := parseIDParam(c, "accountId")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid account ID"))
	}

	loans, err := h.loanService.GetAccountLoans(accountID)
	if err != nil {
		return h.mapLoanErr(c, err)
	}

	return SendSuccess(c, loans, "")
}

// RecordPayment applies a payment to a loan
func (h *LoanHandler) RecordPayment(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid loan ID"))
	}

	var req dto.LoanPaymentRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	loan, payment, err := h.loanService.RecordPayment(id, req.Amount)
	if err != nil {
		return h.mapLoanErr(c, err)
	}

	return SendSuccess(c, map[string]interface{}{
		"loan":    loan,
		"payment": payment,
	}, "Payment recorded successfully")
}

// GetLoanPayments retrieves all payments for a loan
func (h *LoanHandler) GetLoanPayments(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid loan ID"))
	}

	payments, err := h.loanService.GetLoanPayments(id)
	if err != nil {
		return h.mapLoanErr(c, err)
	}

	return SendSuccess(c, payments, "")
}

func (h *LoanHandler) mapLoanErr(c echo.Context, err error) error {
	switch err {
	case services.ErrAccountNotFound:
		return SendError(c, errors.AccountNotFound)
	case services.ErrAccountNotActive:
		return SendError(c, errors.AccountInactive)
	case services.ErrLoanNotFound:
		return SendError(c, errors.LoanNotFound)
	case models.ErrLoanNotActive:
		return SendError(c, errors.LoanNotActive)
	case models.ErrInvalidLoanPayment, models.ErrPaymentExceedsOwed:
		return SendError(c, errors.LoanInvalidPayment)
	case services.ErrNegativeLoanRate,
		models.ErrInvalidLoanPrincipal, models.ErrInvalidLoanTerm, models.ErrInvalidLoanType:
		return SendError(c, errors.LoanInvalidTerms)
	}

	return SendSystemError(c, err)
}
