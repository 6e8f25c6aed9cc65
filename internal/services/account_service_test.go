package services

import (
	"errors"
	"log/slog"
	"testing"
	"time"

	"bank-management/internal/dto"
	"bank-management/internal/models"
	"bank-management/internal/repositories"
	"bank-management/internal/repositories/repository_mocks"

	"github.com/golang/mock/gomock"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/suite"
)

// noopMetrics satisfies MetricsRecorderInterface without touching the
// global prometheus registry.
type noopMetrics struct{}

func (noopMetrics) IncrementCounter(string, map[string]string)     {}
func (noopMetrics) RecordProcessingTime(string, time.Duration)     {}
func (noopMetrics) RecordGauge(string, float64, map[string]string) {}

// capturingMetrics records gauge writes so tests can assert on them
type capturingMetrics struct {
	noopMetrics
	gauges map[string]float64
}

func newCapturingMetrics() *capturingMetrics {
	return &capturingMetrics{gauges: make(map[string]float64)}
}

func (m *capturingMetrics) RecordGauge(name string, value float64, _ map[string]string) {
	m.gauges[name] += value
}

// AccountServiceSuite defines the test suite for AccountServiceInterface
type AccountServiceSuite struct {
	suite.Suite
	ctrl            *gomock.Controller
	accountRepo     *repository_mocks.MockAccountRepositoryInterface
	transactionRepo *repository_mocks.MockTransactionRepositoryInterface
	loanRepo        *repository_mocks.MockLoanRepositoryInterface
	auditRepo       *repository_mocks.MockAuditLogRepositoryInterface
	service         *accountService
}

// SetupTest runs before each test in the suite
func (s *AccountServiceSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.accountRepo = repository_mocks.NewMockAccountRepositoryInterface(s.ctrl)
	s.transactionRepo = repository_mocks.NewMockTransactionRepositoryInterface(s.ctrl)
	s.loanRepo = repository_mocks.NewMockLoanRepositoryInterface(s.ctrl)
	s.auditRepo = repository_mocks.NewMockAuditLogRepositoryInterface(s.ctrl)
	s.service = NewAccountService(
		s.accountRepo,
		s.transactionRepo,
		s.loanRepo,
		s.auditRepo,
		slog.Default(),
		noopMetrics{},
	).(*accountService)
}

// TearDownTest runs after each test in the suite
func (s *AccountServiceSuite) TearDownTest() {
	s.ctrl.Finish()
}

// TestAccountServiceSuite runs the test suite
func TestAccountServiceSuite(t *testing.T) {
	suite.Run(t, new(AccountServiceSuite))
}

func (s *AccountServiceSuite) activeAccount() *models.Account {
	return &models.Account{
		ID:            1,
		AccountNumber: "ACC123456789",
		OwnerName:     "Jane Doe",
		Email:         "jane@example.com",
		Balance:       decimal.NewFromFloat(1000.00),
		AccountType:   models.AccountTypeSavings,
		Status:        models.AccountStatusActive,
		Version:       1,
	}
}

// Test CreateAccount functionality
func (s *AccountServiceSuite) TestCreateAccount_WithInitialBalance() {
	req := &dto.CreateAccountRequest{
		OwnerName:      "Jane Doe",
		Email:          "jane@example.com",
		AccountType:    models.AccountTypeSavings,
		InitialBalance: decimal.NewFromFloat(500.00),
	}

	s.accountRepo.EXPECT().CheckEmailExists("jane@example.com").Return(false, nil)
	s.accountRepo.EXPECT().GenerateUniqueAccountNumber().Return("ACC123456789", nil)
	s.transactionRepo.EXPECT().GenerateUniqueTransactionID().Return("TXN0011223344AA", nil)
	s.accountRepo.EXPECT().CreateWithTransaction(gomock.Any(), gomock.Any()).DoAndReturn(
		func(account *models.Account, transactions []models.Transaction) error {
			account.ID = 1
			s.Len(transactions, 1)
			s.Equal(models.TransactionTypeDeposit, transactions[0].Type)
			s.True(transactions[0].Amount.Equal(decimal.NewFromFloat(500.00)))
			s.True(transactions[0].Fee.IsZero())
			s.Equal(models.TransactionStatusCompleted, transactions[0].Status)
			return nil
		})
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil)

	account, err := s.service.CreateAccount(req)
	s.NoError(err)
	s.NotNil(account)
	s.Equal("ACC123456789", account.AccountNumber)
	s.Equal(models.AccountStatusActive, account.Status)
	s.True(account.Balance.Equal(decimal.NewFromFloat(500.00)))
}

func (s *AccountServiceSuite) TestCreateAccount_ZeroBalanceSkipsTransaction() {
	req := &dto.CreateAccountRequest{
		OwnerName:   "Jane Doe",
		Email:       "jane@example.com",
		AccountType: models.AccountTypeChecking,
	}

	s.accountRepo.EXPECT().CheckEmailExists("jane@example.com").Return(false, nil)
	s.accountRepo.EXPECT().GenerateUniqueAccountNumber().Return("ACC123456789", nil)
	s.accountRepo.EXPECT().CreateWithTransaction(gomock.Any(), gomock.Nil()).Return(nil)
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil)

	account, err := s.service.CreateAccount(req)
	s.NoError(err)
	s.NotNil(account)
}

func (s *AccountServiceSuite) TestCreateAccount_DuplicateEmail() {
	req := &dto.CreateAccountRequest{
		OwnerName:   "Jane Doe",
		Email:       "taken@example.com",
		AccountType: models.AccountTypeSavings,
	}

	s.accountRepo.EXPECT().CheckEmailExists("taken@example.com").Return(true, nil)

	_, err := s.service.CreateAccount(req)
	s.ErrorIs(err, ErrEmailExists)
}

func (s *AccountServiceSuite) TestCreateAccount_NegativeInitialBalance() {
	req := &dto.CreateAccountRequest{
		OwnerName:      "Jane Doe",
		Email:          "jane@example.com",
		AccountType:    models.AccountTypeSavings,
		InitialBalance: decimal.NewFromFloat(-10.00),
	}

	_, err := s.service.CreateAccount(req)
	s.ErrorIs(err, ErrInvalidAmount)
}

func (s *AccountServiceSuite) TestGetAccountByID() {
	account := s.activeAccount()
	s.accountRepo.EXPECT().GetByID(uint(1)).Return(account, nil)

	found, err := s.service.GetAccountByID(1)
	s.NoError(err)
	s.Equal(account.AccountNumber, found.AccountNumber)
}

func (s *AccountServiceSuite) TestGetAccountByID_NotFound() {
	s.accountRepo.EXPECT().GetByID(uint(99)).Return(nil, repositories.ErrAccountNotFound)

	_, err := s.service.GetAccountByID(99)
	s.ErrorIs(err, ErrAccountNotFound)
}

func (s *AccountServiceSuite) TestGetAccountByNumber_NotFound() {
	s.accountRepo.EXPECT().GetByAccountNumber("ACC000000000").Return(nil, repositories.ErrAccountNotFound)

	_, err := s.service.GetAccountByNumber("ACC000000000")
	s.ErrorIs(err, ErrAccountNotFound)
}

func (s *AccountServiceSuite) TestUpdateAccount_PartialFields() {
	account := s.activeAccount()
	s.accountRepo.EXPECT().GetByID(uint(1)).Return(account, nil)
	s.accountRepo.EXPECT().Update(account).Return(nil)
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil)

	newName := "Jane Updated"
	updated, err := s.service.UpdateAccount(1, &dto.UpdateAccountRequest{OwnerName: &newName})
	s.NoError(err)
	s.Equal("Jane Updated", updated.OwnerName)
	// Untouched fields survive
	s.Equal("jane@example.com", updated.Email)
}

func (s *AccountServiceSuite) TestUpdateAccount_NoChanges() {
	account := s.activeAccount()
	s.accountRepo.EXPECT().GetByID(uint(1)).Return(account, nil)

	updated, err := s.service.UpdateAccount(1, &dto.UpdateAccountRequest{})
	s.NoError(err)
	s.Equal(account, updated)
}

func (s *AccountServiceSuite) TestUpdateAccount_StatusTransition() {
	account := s.activeAccount()
	s.accountRepo.EXPECT().GetByID(uint(1)).Return(account, nil)
	s.accountRepo.EXPECT().Update(account).Return(nil)
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil)

	suspended := models.AccountStatusSuspended
	updated, err := s.service.UpdateAccount(1, &dto.UpdateAccountRequest{Status: &suspended})
	s.NoError(err)
	s.Equal(models.AccountStatusSuspended, updated.Status)
}

func (s *AccountServiceSuite) TestDeleteAccount() {
	account := s.activeAccount()
	account.Balance = decimal.Zero
	s.accountRepo.EXPECT().GetByID(uint(1)).Return(account, nil)
	s.transactionRepo.EXPECT().CountPendingByAccountID(uint(1)).Return(int64(0), nil)
	s.loanRepo.EXPECT().CountActiveByAccountID(uint(1)).Return(int64(0), nil)
	s.accountRepo.EXPECT().Delete(uint(1)).Return(nil)
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil)

	err := s.service.DeleteAccount(1)
	s.NoError(err)
}

func (s *AccountServiceSuite) TestDeleteAccount_NonZeroBalance() {
	account := s.activeAccount()
	s.accountRepo.EXPECT().GetByID(uint(1)).Return(account, nil)

	err := s.service.DeleteAccount(1)
	s.ErrorIs(err, ErrBalanceNotZero)
}

func (s *AccountServiceSuite) TestDeleteAccount_PendingTransactions() {
	account := s.activeAccount()
	account.Balance = decimal.Zero
	s.accountRepo.EXPECT().GetByID(uint(1)).Return(account, nil)
	s.transactionRepo.EXPECT().CountPendingByAccountID(uint(1)).Return(int64(2), nil)

	err := s.service.DeleteAccount(1)
	s.ErrorIs(err, ErrHasPendingActivity)
}

func (s *AccountServiceSuite) TestDeleteAccount_ActiveLoans() {
	account := s.activeAccount()
	account.Balance = decimal.Zero
	s.accountRepo.EXPECT().GetByID(uint(1)).Return(account, nil)
	s.transactionRepo.EXPECT().CountPendingByAccountID(uint(1)).Return(int64(0), nil)
	s.loanRepo.EXPECT().CountActiveByAccountID(uint(1)).Return(int64(1), nil)

	err := s.service.DeleteAccount(1)
	s.ErrorIs(err, ErrHasActiveLoans)
}

func (s *AccountServiceSuite) TestSuspendAccount() {
	account := s.activeAccount()
	s.accountRepo.EXPECT().GetByID(uint(1)).Return(account, nil)
	s.accountRepo.EXPECT().Update(account).Return(nil)
	s.auditRepo.EXPECT().Create(gomock.Any()).DoAndReturn(func(log *models.AuditLog) error {
		s.Equal(models.AuditActionSuspended, log.Action)
		s.Equal("fraud review", log.Reason)
		s.Equal(models.AccountStatusActive, log.Metadata["previous_status"])
		return nil
	})

	updated, err := s.service.SuspendAccount(1, "fraud review")
	s.NoError(err)
	s.Equal(models.AccountStatusSuspended, updated.Status)
}

func (s *AccountServiceSuite) TestActivateAccount_AlreadyActive() {
	account := s.activeAccount()
	s.accountRepo.EXPECT().GetByID(uint(1)).Return(account, nil)

	_, err := s.service.ActivateAccount(1, "")
	s.Error(err)
}

func (s *AccountServiceSuite) TestCloseAccount() {
	account := s.activeAccount()
	account.Balance = decimal.Zero
	s.accountRepo.EXPECT().GetByID(uint(1)).Return(account, nil)
	s.accountRepo.EXPECT().Update(account).Return(nil)
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(nil)

	updated, err := s.service.CloseAccount(1, "customer request")
	s.NoError(err)
	s.Equal(models.AccountStatusClosed, updated.Status)
}

func (s *AccountServiceSuite) TestCloseAccount_NonZeroBalance() {
	account := s.activeAccount()
	s.accountRepo.EXPECT().GetByID(uint(1)).Return(account, nil)

	_, err := s.service.CloseAccount(1, "")
	s.ErrorIs(err, models.ErrBalanceNotZero)
}

func (s *AccountServiceSuite) TestGetBalance() {
	account := s.activeAccount()
	s.accountRepo.EXPECT().GetByID(uint(1)).Return(account, nil)

	balance, err := s.service.GetBalance(1)
	s.NoError(err)
	s.Equal(uint(1), balance.AccountID)
	s.Equal("ACC123456789", balance.AccountNumber)
	s.True(balance.Balance.Equal(decimal.NewFromFloat(1000.00)))
}

func (s *AccountServiceSuite) TestGetStatistics() {
	stats := &models.AccountStatistics{
		TotalAccounts:  3,
		ActiveAccounts: 2,
		TotalBalance:   decimal.NewFromFloat(4000.00),
		AverageBalance: decimal.NewFromFloat(2000.00),
	}
	s.accountRepo.EXPECT().GetStatistics().Return(stats, nil)

	got, err := s.service.GetStatistics()
	s.NoError(err)
	s.Equal(int64(3), got.TotalAccounts)
}

func (s *AccountServiceSuite) TestGetStatistics_UpdatesActiveAccountsGauge() {
	metrics := newCapturingMetrics()
	s.service.metrics = metrics

	s.accountRepo.EXPECT().GetStatistics().Return(&models.AccountStatistics{
		TotalAccounts:  5,
		ActiveAccounts: 4,
	}, nil)

	_, err := s.service.GetStatistics()
	s.NoError(err)
	s.InDelta(4.0, metrics.gauges["active_accounts"], 0.0001)
}

func (s *AccountServiceSuite) TestAuditFailureDoesNotFailOperation() {
	account := s.activeAccount()
	s.accountRepo.EXPECT().GetByID(uint(1)).Return(account, nil)
	s.accountRepo.EXPECT().Update(account).Return(nil)
	s.auditRepo.EXPECT().Create(gomock.Any()).Return(errors.New("audit store down"))

	updated, err := s.service.SuspendAccount(1, "fraud review")
	s.NoError(err)
	s.Equal(models.AccountStatusSuspended, updated.Status)
}
