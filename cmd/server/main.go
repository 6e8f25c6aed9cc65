package main

import (
	"context"
	"log"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"bank-management/internal/config"
	"bank-management/internal/database"
	"bank-management/internal/handlers"
	"bank-management/internal/idgen"
	"bank-management/internal/middleware"
	"bank-management/internal/repositories"
	"bank-management/internal/services"

	"github.com/joho/godotenv"
	"github.com/labstack/echo/v4"
	echomw "github.com/labstack/echo/v4/middleware"
)

func main() {
	if err := godotenv.Load(); err != nil {
		log.Println("No .env file found, using environment variables")
	}

	cfg := config.Load()

	logger := slog.New(slog.NewJSONHandler(os.Stdout, nil))
	slog.SetDefault(logger)

	db, err := database.Initialize(cfg)
	if err != nil {
		log.Fatalf("Failed to initialize database: %v", err)
	}

	ids := idgen.New()

	accountRepo := repositories.NewAccountRepository(db, ids)
	transactionRepo := repositories.NewTransactionRepository(db, ids)
	cardRepo := repositories.NewCardRepository(db, ids)
	loanRepo := repositories.NewLoanRepository(db, ids)
	auditRepo := repositories.NewAuditLogRepository(db)

	metrics := services.NewPrometheusMetrics()

	accountService := services.NewAccountService(accountRepo, transactionRepo, loanRepo, auditRepo, logger, metrics)
	transactionService := services.NewTransactionService(accountRepo, transactionRepo, auditRepo, logger, metrics)
	cardService := services.NewCardService(accountRepo, cardRepo, ids, logger)
	loanService := services.NewLoanService(accountRepo, loanRepo, logger)

	e := echo.New()
	e.HideBanner = true
	e.Validator = handlers.NewValidator()
	e.HTTPErrorHandler = middleware.CustomHTTPErrorHandler

	e.Use(middleware.RequestID())
	e.Use(middleware.PanicRecovery())
	e.Use(middleware.SecurityHeaders())
	e.Use(middleware.RateLimiterWithConfig(cfg.Security.RateLimitPerSecond, cfg.Security.RateLimitBurst))
	e.Use(echomw.CORSWithConfig(echomw.CORSConfig{
		AllowOrigins: cfg.Server.CORSAllowOrigins,
	}))

	h := handlers.NewHandlers(db, accountService, transactionService, cardService, loanService)
	h.Register(e)

	server := &http.Server{
		Addr:         cfg.Server.Host + ":" + cfg.Server.Port,
		ReadTimeout:  cfg.Server.ReadTimeout,
		WriteTimeout: cfg.Server.WriteTimeout,
	}

	go func() {
		logger.Info("server starting", "addr", server.Addr)
		if err := e.StartServer(server); err != nil && err != http.ErrServerClosed {
			log.Fatalf("Server error: %v", err)
		}
	}()

	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	logger.Info("shutting down server")
	ctx, cancel := context.WithTimeout(context.Background(), 10*time.Second)
	defer cancel()
	if err := e.Shutdown(ctx); err != nil {
		log.Fatalf("Shutdown error: %v", err)
	}
}
