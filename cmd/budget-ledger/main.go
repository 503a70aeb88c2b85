package main

import (
	"context"
	"fmt"
	"os"
	"os/signal"
	"syscall"

	"budget-ledger/internal/api"
	"budget-ledger/internal/api/handlers"
	"budget-ledger/internal/repository"
	"budget-ledger/internal/service"
	"budget-ledger/pkg/auth"
	"budget-ledger/pkg/config"
	"budget-ledger/pkg/logger"

	"go.uber.org/zap"
)

// @title Budget Ledger API
// @version 1.0
// @description Budgets split into named accounts, spending and approval workflow, balance summaries.

// @host localhost:8080
// @BasePath /api/v1

// @securityDefinitions.apikey Bearer
// @in header
// @name Authorization
// @description Type "Bearer" followed by a space and JWT token.

func main() {
	// Load configuration
	cfg, err := config.Load()
	if err != nil {
		fmt.Printf("Failed to load config: %v\n", err)
		os.Exit(1)
	}

	// Initialize global logger
	if err := logger.Init(cfg.Logger.Level); err != nil {
		fmt.Printf("Failed to initialize logger: %v\n", err)
		os.Exit(1)
	}
	defer logger.Sync()

	appLogger := logger.Get()
	appLogger.Info("Starting budget ledger service",
		zap.String("storage", cfg.Storage.Driver),
		zap.String("allocation_policy", cfg.Ledger.AllocationPolicy),
	)

	// Initialize storage
	ctx := context.Background()
	store, err := repository.OpenStore(ctx, cfg, logger.Named("store"))
	if err != nil {
		appLogger.Fatal("Failed to open storage", zap.Error(err))
	}
	defer store.Close()

	// Initialize services
	ledger := service.NewLedgerService(store, service.Options{
		Policy:     service.AllocationPolicy(cfg.Ledger.AllocationPolicy),
		MaxRetries: cfg.Ledger.MaxRetries,
	}, logger.Named("ledger"))

	jwtManager := auth.NewJWTManager(cfg.JWT.SecretKey, cfg.JWT.Expiration, cfg.JWT.Issuer)

	// Initialize handlers
	httpLogger := logger.Named("http")
	app := api.SetupRouter(api.Handlers{
		Budget:   handlers.NewBudgetHandler(ledger, httpLogger),
		Spending: handlers.NewSpendingHandler(ledger, httpLogger),
		Summary:  handlers.NewSummaryHandler(ledger, cfg.Ledger.CurrencySymbol, httpLogger),
	}, jwtManager, cfg.Ledger.SharedOrganizationID, cfg.Server, appLogger)

	// Start server
	go func() {
		addr := ":" + cfg.Server.Port
		appLogger.Info("Server starting", zap.String("address", addr))
		if err := app.Listen(addr); err != nil {
			appLogger.Fatal("Server failed", zap.Error(err))
		}
	}()

	// Wait for interrupt signal
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit

	appLogger.Info("Shutting down server")
	if err := app.ShutdownWithTimeout(cfg.Server.WriteTimeout); err != nil {
		appLogger.Error("Server shutdown error", zap.Error(err))
	}
}
