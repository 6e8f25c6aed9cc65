package handlers

import (
	"bank-management/internal/dto"
	"bank-management/internal/errors"
	"bank-management/internal/models"
	"bank-management/internal/services"

	"github.com/labstack/echo/v4"
)

// CardHandler handles card-related HTTP requests
type CardHandler struct {
	cardService services.CardServiceInterface
}

// NewCardHandler creates a new card handler
func NewCardHandler(cardService services.CardServiceInterface) *CardHandler {
	return &CardHandler{cardService: cardService}
}

// IssueCard issues a new card against an account
func (h *CardHandler) IssueCard(c echo.Context) error {
	accountID, err := parseIDParam(c, "accountId")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid account ID"))
	}

	var req dto.IssueCardRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	card, err := h.cardService.IssueCard(accountID, &req)
	if err != nil {
		return h.mapCardErr(c, err)
	}

	return SendCreated(c, card, "Card issued successfully")
}

// GetCard retrieves a card by ID
func (h *CardHandler) GetCard(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid card ID"))
	}

	card, err := h.cardService.GetCardByID(id)
	if err != nil {
		return h.mapCardErr(c, err)
	}

	return SendSuccess(c, card, "")
}

// GetAccountCards retrieves all cards for an account
func (h *CardHandler) GetAccountCards(c echo.Context) error {
	accountID, err := parseIDParam(c, "accountId")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid account ID"))
	}

	cards, err := h.cardService.GetAccountCards(accountID)
	if err != nil {
		return h.mapCardErr(c, err)
	}

	return SendSuccess(c, cards, "")
}

// BlockCard blocks a card with a reason
func (h *CardHandler) BlockCard(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid card ID"))
	}

	var req dto.BlockCardRequest
	if err := c.Bind(&req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails("Invalid request body"))
	}

	if err := c.Validate(req); err != nil {
		return SendError(c, errors.ValidationGeneral, errors.WithDetails(err.Error()))
	}

	card, err := h.cardService.BlockCard(id, req.Reason)
	if err != nil {
		return h.mapCardErr(c, err)
	}

	return SendSuccess(c, card, "Card blocked successfully")
}

// UnblockCard removes a block from a card
func (h *CardHandler) UnblockCard(c echo.Context) error {
	id, err := parseIDParam(c, "id")
	if err != nil {
		return SendError(c, errors.ValidationInvalidFormat, errors.WithDetails("Invalid card ID"))
	}

	card, err := h.cardService.UnblockCard(id)
	if err != nil {
		return h.mapCardErr(c, err)
	}

	return SendSuccess(c, card, "Card unblocked successfully")
}

func (h *CardHandler) mapCardErr(c echo.Context, err error) error {
	switch err {
	case services.ErrAccountNotFound:
		return SendError(c, errors.AccountNotFound)
	case services.ErrAccountNotActive:
		return SendError(c, errors.AccountInactive)
	case services.ErrCardNotFound:
		return SendError(c, errors.CardNotFound)
	case models.ErrCardBlocked:
		return SendError(c, errors.CardAlreadyBlocked)
	case models.ErrCardNotBlocked:
		return SendError(c, errors.CardNotBlocked)
	case models.ErrCardExpired:
		return SendError(c, errors.CardExpired)
	}

	return SendSystemError(c, err)
}
