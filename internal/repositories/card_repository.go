package repositories

import (
	"errors"
	"fmt"

	"bank-management/internal/idgen"
	"bank-management/internal/models"

	"gorm.io/gorm"
)

var (
	ErrCardNotFound = errors.New("card not found")
)

// cardRepository implements CardRepositoryInterface
type cardRepository struct {
	db  *gorm.DB
	ids idgen.Generator
}

// NewCardRepository creates a new card repository
func NewCardRepository(db *gorm.DB, ids idgen.Generator) CardRepositoryInterface {
	return &cardRepository{
		db:  db,
		ids: ids,
	}
}

// Create creates a new card
func (r *cardRepository) Create(card *models.Card) error {
	if err := r.db.Create(card).Error; err != nil {
		return fmt.Errorf("failed to create card: %w", err)
	}
	return nil
}

// GetByID retrieves a card by ID
func (r *cardRepository) GetByID(id uint) (*models.Card, error) {
	var card models.Card
	if err := r.db.First(&card, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrCardNotFound
		}
		return nil, fmt.Errorf("failed to get card: %w", err)
	}
	return &card, nil
}

// GetByAccountID retrieves all cards for an account
func (r *cardRepository) GetByAccountID(accountID uint) ([]models.Card, error) {
	var cards []models.Card
	if err := r.db.Where("account_id = ?", accountID).
		Order("issued_date DESC").
		Find(&cards).Error; err != nil {
		return nil, fmt.Errorf("failed to get cards for account: %w", err)
	}
	return cards, nil
}

// Update updates a card
func (r *cardRepository) Update(card *models.Card) error {
	if err := r.db.Save(card).Error; err != nil {
		return fmt.Errorf("failed to update card: %w", err)
	}
	return nil
}

// GenerateUniqueCardNumber generates a card number that does not collide
// with an existing one
func (r *cardRepository) GenerateUniqueCardNumber() (string, error) {
	maxAttempts := 10
	for i := 0; i < maxAttempts; i++ {
		cardNumber := r.ids.CardNumber()

		var count int64
		if err := r.db.Model(&models.Card{}).
			Where("card_number = ?", cardNumber).
			Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check card number uniqueness: %w", err)
		}

		if count == 0 {
			return cardNumber, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique card number after %d attempts", maxAttempts)
}
