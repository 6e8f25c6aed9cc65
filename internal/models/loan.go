package models

import (
	"errors"
	"time"

	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	LoanTypePersonal = "personal"
	LoanTypeMortgage = "mortgage"
	LoanTypeAuto     = "auto"
	LoanTypeBusiness = "business"

	LoanStatusActive    = "active"
	LoanStatusPaid      = "paid"
	LoanStatusDefaulted = "defaulted"
)

var (
	ErrInvalidLoanType      = errors.New("invalid loan type")
	ErrLoanNotActive        = errors.New("loan is not active")
	ErrInvalidLoanPayment   = errors.New("payment amount must be positive")
	ErrPaymentExceedsOwed   = errors.New("payment exceeds outstanding amount")
	ErrInvalidLoanTerm      = errors.New("loan term must be positive")
	ErrInvalidLoanPrincipal = errors.New("loan principal must be positive")
)

// Loan represents an amortized loan issued against an account
type Loan struct {
	ID                uint            `gorm:"primaryKey" json:"id"`
	AccountID         uint            `gorm:"not null;index" json:"account_id"`
	LoanNumber        string          `gorm:"type:varchar(20);uniqueIndex;not null" json:"loan_number"`
	LoanType          string          `gorm:"type:varchar(20);not null" json:"loan_type"`
	PrincipalAmount   decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"principal_amount"`
	OutstandingAmount decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"outstanding_amount"`
	InterestRate      decimal.Decimal `gorm:"type:decimal(8,4);not null" json:"interest_rate"`
	TermInMonths      int             `gorm:"not null" json:"term_in_months"`
	MonthlyPayment    decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"monthly_payment"`
	Status            string          `gorm:"type:varchar(20);not null;default:'active'" json:"status"`
	StartDate         time.Time       `gorm:"not null" json:"start_date"`
	EndDate           time.Time       `gorm:"not null" json:"end_date"`
	NextPaymentDate   *time.Time      `json:"next_payment_date,omitempty"`
	CreatedAt         time.Time       `gorm:"not null" json:"created_at"`
	UpdatedAt         time.Time       `gorm:"not null" json:"updated_at"`

	Account  *Account      `gorm:"foreignKey:AccountID" json:"-"`
	Payments []LoanPayment `gorm:"foreignKey:LoanID" json:"-"`
}

// LoanPayment records a single repayment with its principal/interest split
type LoanPayment struct {
	ID              uint            `gorm:"primaryKey" json:"id"`
	LoanID          uint            `gorm:"not null;index" json:"loan_id"`
	Amount          decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"amount"`
	PrincipalAmount decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"principal_amount"`
	InterestAmount  decimal.Decimal `gorm:"type:decimal(18,2);not null" json:"interest_amount"`
	PaymentDate     time.Time       `gorm:"not null" json:"payment_date"`

	Loan *Loan `gorm:"foreignKey:LoanID" json:"-"`
}

// BeforeCreate hook for Loan
func (l *Loan) BeforeCreate(tx *gorm.DB) error {
	if l.Status == "" {
		l.Status = LoanStatusActive
	}

	now := time.Now()
	if l.StartDate.IsZero() {
		l.StartDate = now
	}
	if l.EndDate.IsZero() {
		l.EndDate = l.StartDate.AddDate(0, l.TermInMonths, 0)
	}
	if l.CreatedAt.IsZero() {
		l.CreatedAt = now
	}
	if l.UpdatedAt.IsZero() {
		l.UpdatedAt = now
	}

	return l.Validate()
}

// BeforeUpdate hook for Loan
func (l *Loan) BeforeUpdate(tx *gorm.DB) error {
	l.UpdatedAt = time.Now()
	return nil
}

// Validate validates the loan fields
func (l *Loan) Validate() error {
	if l.AccountID == 0 {
		return errors.New("account id is required")
	}

	if l.LoanNumber == "" {
		return errors.New("loan number is required")
	}

	if !IsValidLoanType(l.LoanType) {
		return ErrInvalidLoanType
	}

	if l.PrincipalAmount.LessThanOrEqual(decimal.Zero) {
		return ErrInvalidLoanPrincipal
	}

	if l.OutstandingAmount.LessThan(decimal.Zero) {
		return errors.New("outstanding amount cannot be negative")
	}

	if l.InterestRate.LessThan(decimal.Zero) {
		return errors.New("interest rate cannot be negative")
	}

	if l.TermInMonths <= 0 {
		return ErrInvalidLoanTerm
	}

	return nil
}

// CalculateMonthlyPayment computes the amortized monthly payment:
// P*r*(1+r)^n / ((1+r)^n - 1), where r is the monthly rate. A zero rate
// degenerates to principal/term. The result is rounded to 2 places.
func CalculateMonthlyPayment(principal decimal.Decimal, annualRate decimal.Decimal, termInMonths int) decimal.Decimal {
	if termInMonths <= 0 {
		return decimal.Zero
	}

	months := decimal.NewFromInt(int64(termInMonths))
	if annualRate.IsZero() {
		return principal.Div(months).Round(2)
	}

	monthlyRate := annualRate.Div(decimal.NewFromInt(12)).Div(decimal.NewFromInt(100))
	factor := decimal.NewFromInt(1).Add(monthlyRate).Pow(months)

	numerator := principal.Mul(monthlyRate).Mul(factor)
	denominator := factor.Sub(decimal.NewFromInt(1))

	return numerator.Div(denominator).Round(2)
}

// CalculateTotalInterest returns the total interest paid over the full term
func (l *Loan) CalculateTotalInterest() decimal.Decimal {
	total := l.MonthlyPayment.Mul(decimal.NewFromInt(int64(l.TermInMonths)))
	return total.Sub(l.PrincipalAmount).Round(2)
}

// RemainingPayments estimates how many monthly payments remain
func (l *Loan) RemainingPayments() int {
	if l.MonthlyPayment.LessThanOrEqual(decimal.Zero) || l.OutstandingAmount.LessThanOrEqual(decimal.Zero) {
		return 0
	}

	remaining := l.OutstandingAmount.Div(l.MonthlyPayment).Ceil()
	return int(remaining.IntPart())
}

// IsOverdue returns true when the next payment date has passed on an
// active loan
func (l *Loan) IsOverdue() bool {
	if l.Status != LoanStatusActive || l.NextPaymentDate == nil {
		return false
	}
	return time.Now().After(*l.NextPaymentDate)
}

// ApplyPayment reduces the outstanding amount, splitting the payment into
// interest accrued for one month and principal. The loan is marked paid
// when the outstanding amount reaches zero.
func (l *Loan) ApplyPayment(amount decimal.Decimal, paymentDate time.Time) (*LoanPayment, error) {
	if l.Status != LoanStatusActive {
		return nil, ErrLoanNotActive
	}

	if amount.LessThanOrEqual(decimal.Zero) {
		return nil, ErrInvalidLoanPayment
	}

	monthlyRate := l.InterestRate.Div(decimal.NewFromInt(12)).Div(decimal.NewFromInt(100))
	interest := l.OutstandingAmount.Mul(monthlyRate).Round(2)
	if interest.GreaterThan(amount) {
		interest = amount
	}
	principal := amount.Sub(interest)

	if principal.GreaterThan(l.OutstandingAmount) {
		return nil, ErrPaymentExceedsOwed
	}

	l.OutstandingAmount = l.OutstandingAmount.Sub(principal)
	if l.OutstandingAmount.IsZero() {
		l.Status = LoanStatusPaid
		l.NextPaymentDate = nil
	} else {
		next := paymentDate.AddDate(0, 1, 0)
		l.NextPaymentDate = &next
	}

	payment := &LoanPayment{
		LoanID:          l.ID,
		Amount:          amount,
		PrincipalAmount: principal,
		InterestAmount:  interest,
		PaymentDate:     paymentDate,
	}

	return payment, nil
}

// TableName returns the table name for Loan
func (l *Loan) TableName() string {
	return "loans"
}

// TableName returns the table name for LoanPayment
func (p *LoanPayment) TableName() string {
	return "loan_payments"
}

// IsValidLoanType checks if the loan type is valid
func IsValidLoanType(loanType string) bool {
	switch loanType {
	case LoanTypePersonal, LoanTypeMortgage, LoanTypeAuto, LoanTypeBusiness:
		return true
	default:
		return false
	}
}
