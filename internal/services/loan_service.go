package services

import (
	"errors"
	"fmt"
	"log/slog"
	"time"

	"bank-management/internal/dto"
	"bank-management/internal/models"
	"bank-management/internal/repositories"

	"github.com/shopspring/decimal"
)

var (
	ErrLoanNotFound     = errors.New("loan not found")
	ErrNegativeLoanRate = errors.New("interest rate cannot be negative")
)

// loanService implements LoanServiceInterface
type loanService struct {
	accountRepo repositories.AccountRepositoryInterface
	loanRepo    repositories.LoanRepositoryInterface
	logger      *slog.Logger
}

// NewLoanService creates a loan service
func NewLoanService(
	accountRepo repositories.AccountRepositoryInterface,
	loanRepo repositories.LoanRepositoryInterface,
	logger *slog.Logger,
) LoanServiceInterface {
	return &loanService{
		accountRepo: accountRepo,
		loanRepo:    loanRepo,
		logger:      logger,
	}
}

// CreateLoan originates a loan against an active account. The monthly
// payment is amortized from the principal, rate and term; the first payment
// falls due one month after the start date.
func (s *loanService) CreateLoan(accountID uint, req *dto.CreateLoanRequest) (*models.Loan, error) {
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

	if req.PrincipalAmount.LessThanOrEqual(decimal.Zero) {
		return nil, models.ErrInvalidLoanPrincipal
	}
	if req.InterestRate.LessThan(decimal.Zero) {
		return nil, ErrNegativeLoanRate
	}

	loanNumber, err := s.loanRepo.GenerateUniqueLoanNumber()
	if err != nil {
		return nil, fmt.Errorf("failed to generate loan number: %w", err)
	}

	startDate := time.Now().UTC()
	firstPayment := startDate.AddDate(0, 1, 0)

	loan := &models.Loan{
		AccountID:         accountID,
		LoanNumber:        loanNumber,
		LoanType:          req.LoanType,
		PrincipalAmount:   req.PrincipalAmount,
		OutstandingAmount: req.PrincipalAmount,
		InterestRate:      req.InterestRate,
		TermInMonths:      req.TermInMonths,
		MonthlyPayment:    models.CalculateMonthlyPayment(req.PrincipalAmount, req.InterestRate, req.TermInMonths),
		Status:            models.LoanStatusActive,
		StartDate:         startDate,
		NextPaymentDate:   &firstPayment,
	}

	if err := s.loanRepo.Create(loan); err != nil {
		return nil, fmt.Errorf("failed to create loan: %w", err)
	}

	s.logger.Info("loan created",
		"loan_id", loan.ID,
		"account_id", accountID,
		"principal", req.PrincipalAmount.String(),
		"monthly_payment", loan.MonthlyPayment.String())

	return loan, nil
}

// GetLoanByID retrieves a loan by ID
func (s *loanService) GetLoanByID(id uint) (*models.Loan, error) {
	loan, err := s.loanRepo.GetByID(id)
	if err != nil {
		if errors.Is(err, repositories.ErrLoanNotFound) {
			return nil, ErrLoanNotFound
		}
		return nil, fmt.Errorf("failed to get loan: %w", err)
	}
	return loan, nil
}

// GetAccountLoans retrieves all loans for an account
func (s *loanService) GetAccountLoans(accountID uint) ([]models.Loan, error) {
	if _, err := s.accountRepo.GetByID(accountID); err != nil {
		if errors.Is(err, repositories.ErrAccountNotFound) {
			return nil, ErrAccountNotFound
		}
		return nil, fmt.Errorf("failed to get account: %w", err)
	}

	loans, err := s.loanRepo.GetByAccountID(accountID)
	if err != nil {
		return nil, fmt.Errorf("failed to get loans: %w", err)
	}
	return loans, nil
}

// RecordPayment applies a payment to a loan, splitting it into interest
// and principal and reducing the outstanding amount. The loan is marked
// paid when the outstanding amount reaches zero.
func (s *loanService) RecordPayment(loanID uint, amount decimal.Decimal) (*models.Loan, *models.LoanPayment, error) {
	loan, err := s.GetLoanByID(loanID)
	if err != nil {
		return nil, nil, err
	}

	payment, err := loan.ApplyPayment(amount, time.Now().UTC())
	if err != nil {
		return nil, nil, err
	}

	if err := s.loanRepo.CreatePayment(payment); err != nil {
		return nil, nil, fmt.Errorf("failed to record loan payment: %w", err)
	}

	if err := s.loanRepo.Update(loan); err != nil {
		return nil, nil, fmt.Errorf("failed to update loan: %w", err)
	}

	s.logger.Info("loan payment recorded",
		"loan_id", loan.ID,
		"amount", amount.String(),
		"outstanding", loan.OutstandingAmount.String(),
		"status", loan.Status)

	return loan, payment, nil
}

// GetLoanPayments retrieves all payments for a loan
func (s *loanService) GetLoanPayments(loanID uint) ([]models.LoanPayment, error) {
	if _, err := s.GetLoanByID(loanID); err != nil {
		return nil, err
	}

	payments, err := s.loanRepo.GetPayments(loanID)
	if err != nil {
		return nil, fmt.Errorf("failed to get loan payments: %w", err)
	}
	return payments, nil
}
