package services

import (
	"errors"
	"fmt"
	"log/slog"

	"bank-management/internal/dto"
	"bank-management/internal/idgen"
	"bank-management/internal/models"
	"bank-management/internal/repositories"

	"github.com/shopspring/decimal"
)

var (
	ErrCardNotFound = errors.New("card not found")
)

// cardService implements CardServiceInterface
type cardService struct {
	accountRepo repositories.AccountRepositoryInterface
	cardRepo    repositories.CardRepositoryInterface
	ids         idgen.Generator
	logger      *slog.Logger
}

// NewCardService creates a card service
func NewCardService(
	accountRepo repositories.AccountRepositoryInterface,
	cardRepo repositories.CardRepositoryInterface,
	ids idgen.Generator,
	logger *slog.Logger,
) CardServiceInterface {
	return &cardService{
		accountRepo: accountRepo,
		cardRepo:    cardRepo,
		ids:         ids,
		logger:      logger,
	}
}

// IssueCard issues a new card against an active account. The card number,
// CVV and expiry date are generated.
func (s *cardService) IssueCard(accountID uint, req *dto.IssueCardRequest) (*models.Card, error) {
	account, err := s.accountRepo.GetByID(accountID)
	if err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	if !account.IsActive() {
		return nil, ErrAccountNotActive
	}

	cardNumber, err := s.cardRepo.GenerateUniqueCardNumber()
	if err != nil {
		return nil, fmt.Errorf("failed to generate card number: %w", err)
	}

	creditLimit := decimal.Zero
	if req.CardType == models.CardTypeCredit {
		creditLimit = req.CreditLimit
	}

	card := &models.Card{
		AccountID:       accountID,
		CardNumber:      cardNumber,
		CardHolderName:  req.CardHolderName,
		CardType:        req.CardType,
		ExpiryDate:      s.ids.CardExpiry(),
		CVV:             s.ids.CVV(),
		CreditLimit:     creditLimit,
		AvailableCredit: creditLimit,
		Status:          models.CardStatusActive,
	}

	if err := s.cardRepo.Create(card); err != nil {
		return nil, fmt.Errorf("failed to create card: %w", err)
	}

	s.logger.Info("card issued", "card_id", card.ID, "account_id", accountID, "card_type", card.CardType)

	return card, nil
}

// GetCardByID retrieves a card by ID
func (s *cardService) GetCardByID(id uint) (*models.Card, error) {
	card, err := s.cardRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrCardNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return card, nil
}

// GetAccountCards retrieves all cards for an account
func (s *cardService) GetAccountCards(accountID uint) ([]models.Card, error) {
	if _, err := s.accountRepo.GetByID(accountID); err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	cards, err := s.cardRepo.GetByAccountID(accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get cards: %w", err)
	}
	return cards, nil
}

// BlockCard blocks a card with a reason
func (s *cardService) BlockCard(id uint, reason string) (*models.Card, error) {
	card, err := s.GetCardByID(id)
	if err != nil {
		return nil, err
	}

	if err := card.Block(reason); err != nil {
		return nil, err
	}

	if err := s.cardRepo.Update(card); err != nil {
		return nil, fmt.Errorf("failed to block card: %w", err)
	}

	s.logger.Info("card blocked", "card_id", card.ID, "reason", reason)

	return card, nil
}

// UnblockCard removes a block from a card
func (s *cardService) UnblockCard(id uint) (*models.Card, error) {
	card, err := s.GetCardByID(id)
	if err != nil {
		return nil, err
	}

	if err := card.Unblock(); err != nil {
		return nil, err
	}

	if err := s.cardRepo.Update(card); err != nil {
		return nil, fmt.Errorf("failed to unblock card: %w", err)
	}

	s.logger.Info("card unblocked", "card_id", card.ID)

	return card, nil
}
