package repositories

import (
	"errors"
	"fmt"

	"bank-management/internal/idgen"
	"bank-management/internal/models"

	"gorm.io/gorm"
)

var (
	ErrLoanNotFound = errors.New("loan not found")
)

// loanRepository implements LoanRepositoryInterface
type loanRepository struct {
	db  *gorm.DB
	ids idgen.Generator
}

// NewLoanRepository creates a new loan repository
func NewLoanRepository(db *gorm.DB, ids idgen.Generator) LoanRepositoryInterface {
	return &loanRepository{
		db:  db,
		ids: ids,
	}
}

// Create creates a new loan
func (r *loanRepository) Create(loan *models.Loan) error {
	if err := r.db.Create(loan).Error; err != nil {
		return fmt.Errorf("failed to create loan: %w", err)
	}
	return nil
}

// GetByID retrieves a loan by ID
func (r *loanRepository) GetByID(id uint) (*models.Loan, error) {
	var loan models.Loan
	if err := r.db.First(&loan, id).Error; err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, fmt.Errorf("failed to get loan: %w", err)
	}
	return &loan, nil
}

// GetByAccountID retrieves all loans for an account
func (r *loanRepository) GetByAccountID(accountID uint) ([]models.Loan, error) {
	var loans []models.Loan
	if err := r.db.Where("account_id = ?", accountID).
		Order("start_date DESC").
		Find(&loans).Error; err != nil {
		return nil, fmt.Errorf("failed to get loans for account: %w", err)
	}
	return loans, nil
}

// CountActiveByAccountID counts active loans for an account
func (r *loanRepository) CountActiveByAccountID(accountID uint) (int64, error) {
	var count int64
	if err := r.db.Model(&models.Loan{}).
		Where("account_id = ? AND status = ?", accountID, models.LoanStatusActive).
		Count(&count).Error; err != nil {
		return 0, fmt.Errorf("failed to count active loans: %w", err)
	}
	return count, nil
}

// Update updates a loan
func (r *loanRepository) Update(loan *models.Loan) error {
	if err := r.db.Save(loan).Error; err != nil {
		return fmt.Errorf("failed to update loan: %w", err)
	}
	return nil
}

// CreatePayment records a loan payment
func (r *loanRepository) CreatePayment(payment *models.LoanPayment) error {
	if err := r.db.Create(payment).Error; err != nil {
		return fmt.Errorf("failed to create loan payment: %w", err)
	}
	return nil
}

// GetPayments retrieves all payments for a loan, newest first
func (r *loanRepository) GetPayments(loanID uint) ([]models.LoanPayment, error) {
	var payments []models.LoanPayment
	if err := r.db.Where("loan_id = ?", loanID).
		Order("payment_date DESC").
		Find(&payments).Error; err != nil {
		return nil, fmt.Errorf("failed to get loan payments: %w", err)
	}
	return payments, nil
}

// GenerateUniqueLoanNumber generates a loan number that does not collide
// with an existing one
func (r *loanRepository) GenerateUniqueLoanNumber() (string, error) {
	maxAttempts := 10
	for i := 0; i < maxAttempts; i++ {
		loanNumber := r.ids.LoanNumber()

		var count int64
		if err := r.db.Model(&models.Loan{}).
			Where("loan_number = ?", loanNumber).
			Count(&count).Error; err != nil {
			return "", fmt.Errorf("failed to check loan number uniqueness: %w", err)
		}

		if count == 0 {
			return loanNumber, nil
		}
	}

	return "", fmt.Errorf("failed to generate unique loan number after %d attempts", maxAttempts)
}
