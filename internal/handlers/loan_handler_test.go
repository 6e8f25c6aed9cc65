package handlers

import (
	"net/http"
	"testing"
	"time"

	"bank-management/internal/dto"
	"bank-management/internal/models"
	"bank-management/internal/services"
	"bank-management/internal/services/service_mocks"

	"github.com/golang/mock/gomock"
	"github.com/labstack/echo/v4"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// LoanHandlerSuite defines the test suite for LoanHandler
type LoanHandlerSuite struct {
	suite.Suite
	ctrl        *gomock.Controller
	mockService *service_mocks.MockLoanServiceInterface
	handler     *LoanHandler
	echo        *echo.Echo
}

// SetupTest runs before each test in the suite
func (s *LoanHandlerSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.mockService = service_mocks.NewMockLoanServiceInterface(s.ctrl)
	s.handler = NewLoanHandler(s.mockService)

	s.echo = echo.New()
	s.echo.Validator = NewValidator()
}

// TearDownTest runs after each test in the suite
func (s *LoanHandlerSuite) TearDownTest() {
	s.ctrl.Finish()
}

// TestLoanHandlerSuite runs the test suite
func TestLoanHandlerSuite(t *testing.T) {
	suite.Run(t, new(LoanHandlerSuite))
}

func (s *LoanHandlerSuite) sampleLoan() *models.Loan {
	return &models.Loan{
		ID:                20,
		AccountID:         1,
		LoanNumber:        "LN0000000001",
		LoanType:          models.LoanTypePersonal,
		PrincipalAmount:   decimal.NewFromFloat(10000.00),
		OutstandingAmount: decimal.NewFromFloat(10000.00),
		InterestRate:      decimal.NewFromFloat(6.0),
		TermInMonths:      12,
		Status:            models.LoanStatusActive,
		StartDate:         time.Now().UTC(),
	}
}

// Test CreateLoan functionality
func (s *LoanHandlerSuite) TestCreateLoan() {
	s.mockService.EXPECT().CreateLoan(uint(1), gomock.Any()).Return(s.sampleLoan(), nil)

	c, rec := newJSONContext(s.echo, http.MethodPost, "/api/v1/accounts/1/loans",
		dto.CreateLoanRequest{
			LoanType:        "personal",
			PrincipalAmount: decimal.NewFromFloat(10000.00),
			InterestRate:    decimal.NewFromFloat(6.0),
			TermInMonths:    12,
		})
	c.SetParamNames("accountId")
	c.SetParamValues("1")

	s.NoError(s.handler.CreateLoan(c))
	s.Equal(http.StatusCreated, rec.Code)
	s.Contains(rec.Body.String(), "Loan created successfully")
	s.Contains(rec.Body.String(), "LN0000000001")
}

func (s *LoanHandlerSuite) TestCreateLoan_InvalidLoanType() {
	c, rec := newJSONContext(s.echo, http.MethodPost, "/api/v1/accounts/1/loans",
		dto.CreateLoanRequest{
			LoanType:        "payday",
			PrincipalAmount: decimal.NewFromFloat(10000.00),
			TermInMonths:    12,
		})
	c.SetParamNames("accountId")
	c.SetParamValues("1")

	s.NoError(s.handler.CreateLoan(c))
	s.Equal(http.StatusBadRequest, rec.Code)
}

func (s *LoanHandlerSuite) TestCreateLoan_NegativeRate() {
	s.mockService.EXPECT().CreateLoan(uint(1), gomock.Any()).Return(nil, services.ErrNegativeLoanRate)

	c, rec := newJSONContext(s.echo, http.MethodPost, "/api/v1/accounts/1/loans",
		dto.CreateLoanRequest{
			LoanType:        "personal",
			PrincipalAmount: decimal.NewFromFloat(10000.00),
			InterestRate:    decimal.NewFromFloat(-1.0),
			TermInMonths:    12,
		})
	c.SetParamNames("accountId")
	c.SetParamValues("1")

	s.NoError(s.handler.CreateLoan(c))
	s.Equal(http.StatusBadRequest, rec.Code)
	s.Contains(rec.Body.String(), "LOAN_004")
}

func (s *LoanHandlerSuite) TestCreateLoan_AccountNotFound() {
	s.mockService.EXPECT().CreateLoan(uint(99), gomock.Any()).Return(nil, services.ErrAccountNotFound)

	c, rec := newJSONContext(s.echo, http.MethodPost, "/api/v1/accounts/99/loans",
		dto.CreateLoanRequest{
			LoanType:        "personal",
			PrincipalAmount: decimal.NewFromFloat(10000.00),
			TermInMonths:    12,
		})
	c.SetParamNames("accountId")
	c.SetParamValues("99")

	s.NoError(s.handler.CreateLoan(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "ACCOUNT_001")
}

// Test GetLoan functionality
func (s *LoanHandlerSuite) TestGetLoan_NotFound() {
	s.mockService.EXPECT().GetLoanByID(uint(99)).Return(nil, services.ErrLoanNotFound)

	c, rec := newJSONContext(s.echo, http.MethodGet, "/api/v1/loans/99", nil)
	c.SetParamNames("id")
	c.SetParamValues("99")

	s.NoError(s.handler.GetLoan(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "LOAN_001")
}

func (s *LoanHandlerSuite) TestGetAccountLoans() {
	s.mockService.EXPECT().GetAccountLoans(uint(1)).Return([]models.Loan{*s.sampleLoan()}, nil)

	c, rec := newJSONContext(s.echo, http.MethodGet, "/api/v1/accounts/1/loans", nil)
	c.SetParamNames("accountId")
	c.SetParamValues("1")

	s.NoError(s.handler.GetAccountLoans(c))
	s.Equal(http.StatusOK, rec.Code)
}

// Test RecordPayment functionality
func (s *LoanHandlerSuite) TestRecordPayment() {
	loan := s.sampleLoan()
	loan.OutstandingAmount = decimal.NewFromFloat(9550.00)
	payment := &models.LoanPayment{
		ID:              1,
		LoanID:          20,
		Amount:          decimal.NewFromFloat(500.00),
		PrincipalAmount: decimal.NewFromFloat(450.00),
		InterestAmount:  decimal.NewFromFloat(50.00),
	}

	s.mockService.EXPECT().RecordPayment(uint(20), gomock.Any()).DoAndReturn(
		func(loanID uint, amount decimal.Decimal) (*models.Loan, *models.LoanPayment, error) {
			s.True(amount.Equal(decimal.NewFromFloat(500.00)))
			return loan, payment, nil
		})

	c, rec := newJSONContext(s.echo, http.MethodPost, "/api/v1/loans/20/payments",
		dto.LoanPaymentRequest{Amount: decimal.NewFromFloat(500.00)})
	c.SetParamNames("id")
	c.SetParamValues("20")

	s.NoError(s.handler.RecordPayment(c))
	s.Equal(http.StatusOK, rec.Code)
	s.Contains(rec.Body.String(), "Payment recorded successfully")
	s.Contains(rec.Body.String(), `"loan"`)
	s.Contains(rec.Body.String(), `"payment"`)
}

func (s *LoanHandlerSuite) TestRecordPayment_ExceedsOutstanding() {
	s.mockService.EXPECT().RecordPayment(uint(20), gomock.Any()).
		Return(nil, nil, models.ErrPaymentExceedsOwed)

	c, rec := newJSONContext(s.echo, http.MethodPost, "/api/v1/loans/20/payments",
		dto.LoanPaymentRequest{Amount: decimal.NewFromFloat(99999.00)})
	c.SetParamNames("id")
	c.SetParamValues("20")

	s.NoError(s.handler.RecordPayment(c))
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Contains(rec.Body.String(), "LOAN_003")
}

func (s *LoanHandlerSuite) TestRecordPayment_PaidLoan() {
	s.mockService.EXPECT().RecordPayment(uint(20), gomock.Any()).
		Return(nil, nil, models.ErrLoanNotActive)

	c, rec := newJSONContext(s.echo, http.MethodPost, "/api/v1/loans/20/payments",
		dto.LoanPaymentRequest{Amount: decimal.NewFromFloat(100.00)})
	c.SetParamNames("id")
	c.SetParamValues("20")

	s.NoError(s.handler.RecordPayment(c))
	s.Equal(http.StatusUnprocessableEntity, rec.Code)
	s.Contains(rec.Body.String(), "LOAN_002")
}

// Test GetLoanPayments functionality
func (s *LoanHandlerSuite) TestGetLoanPayments() {
	s.mockService.EXPECT().GetLoanPayments(uint(20)).
		Return([]models.LoanPayment{{ID: 1, LoanID: 20}}, nil)

	c, rec := newJSONContext(s.echo, http.MethodGet, "/api/v1/loans/20/payments", nil)
	c.SetParamNames("id")
	c.SetParamValues("20")

	s.NoError(s.handler.GetLoanPayments(c))
	s.Equal(http.StatusOK, rec.Code)
}

func (s *LoanHandlerSuite) TestGetLoanPayments_LoanNotFound() {
	s.mockService.EXPECT().GetLoanPayments(uint(99)).Return(nil, services.ErrLoanNotFound)

	c, rec := newJSONContext(s.echo, http.MethodGet, "/api/v1/loans/99/payments", nil)
	c.SetParamNames("id")
	c.SetParamValues("99")

	s.NoError(s.handler.GetLoanPayments(c))
	s.Equal(http.StatusNotFound, rec.Code)
	s.Contains(rec.Body.String(), "LOAN_001")
}
