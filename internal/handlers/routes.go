package handlers

import (
	"bank-management/internal/services"

	"github.com/labstack/echo/v4"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

// Handlers bundles all HTTP handlers for route registration
type Handlers struct {
	Account     *AccountHandler
	Transaction *TransactionHandler
	Card        *CardHandler
	Loan        *LoanHandler
	Health      *HealthCheckHandler
}

// NewHandlers constructs the full handler set from the service layer
func NewHandlers(
	db *gorm.DB,
	accountService services.AccountServiceInterface,
	transactionService services.TransactionServiceInterface,
	cardService services.CardServiceInterface,
	loanService services.LoanServiceInterface,
) *Handlers {
	return &Handlers{
		Account:     NewAccountHandler(accountService),
		Transaction: NewTransactionHandler(transactionService),
		Card:        NewCardHandler(cardService),
		Loan:        NewLoanHandler(loanService),
		Health:      NewHealthCheckHandler(db),
	}
}

// Register wires all routes onto the Echo instance
func (h *Handlers) Register(e *echo.Echo) {
	e.GET("/health", h.Health.HealthCheck)
	e.GET("/metrics", echo.WrapHandler(promhttp.Handler()))

	api := e.Group("/api/v1")

	accounts := api.Group("/accounts")
	accounts.POST("", h.Account.CreateAccount)
	accounts.GET("", h.Account.GetAccounts)
	accounts.GET("/search", h.Account.SearchAccounts)
	accounts.GET("/statistics", h.Account.GetStatistics)
	accounts.GET("/by-number/:number", h.Account.GetAccountByNumber)
	accounts.GET("/:id", h.Account.GetAccount)
	accounts.PUT("/:id", h.Account.UpdateAccount)
	accounts.DELETE("/:id", h.Account.DeleteAccount)
	accounts.GET("/:id/balance", h.Account.GetBalance)
	accounts.POST("/:id/suspend", h.Account.SuspendAccount)
	accounts.POST("/:id/activate", h.Account.ActivateAccount)
	accounts.POST("/:id/close", h.Account.CloseAccount)

	accounts.POST("/:accountId/deposit", h.Transaction.Deposit)
	accounts.POST("/:accountId/withdraw", h.Transaction.Withdraw)
	accounts.POST("/:accountId/transfer", h.Transaction.Transfer)
	accounts.GET("/:accountId/transactions", h.Transaction.GetAccountTransactions)
	accounts.GET("/:accountId/transactions/recent", h.Transaction.GetRecentTransactions)
	accounts.GET("/:accountId/transactions/pending", h.Transaction.GetPendingTransactions)

	accounts.POST("/:accountId/cards", h.Card.IssueCard)
	accounts.GET("/:accountId/cards", h.Card.GetAccountCards)

	accounts.POST("/:accountId/loans", h.Loan.CreateLoan)
	accounts.GET("/:accountId/loans", h.Loan.GetAccountLoans)

	transactions := api.Group("/transactions")
	transactions.GET("/statistics", h.Transaction.GetStatistics)
	transactions.GET("/calculate-fee", h.Transaction.CalculateFee)
	transactions.GET("/accounts/:accountId", h.Transaction.GetAccountTransactions)
	transactions.GET("/accounts/:accountId/recent", h.Transaction.GetRecentTransactions)
	transactions.GET("/accounts/:accountId/pending", h.Transaction.GetPendingTransactions)
	transactions.GET("/by-transaction-id/:txnId", h.Transaction.GetTransactionByTransactionID)
	transactions.GET("/:id", h.Transaction.GetTransaction)
	transactions.POST("/:id/cancel", h.Transaction.CancelTransaction)
	transactions.POST("/:id/process", h.Transaction.ProcessTransaction)

	cards := api.Group("/cards")
	cards.GET("/:id", h.Card.GetCard)
	cards.POST("/:id/block", h.Card.BlockCard)
	cards.POST("/:id/unblock", h.Card.UnblockCard)

	loans := api.Group("/loans")
	loans.GET("/:id", h.Loan.GetLoan)
	loans.POST("/:id/payments", h.Loan.RecordPayment)
	loans.GET("/:id/payments", h.Loan.GetLoanPayments)
}
