package main

import (
	"context"
	"fmt"
	"os"

	"budget-ledger/internal/repository"
	"budget-ledger/pkg/config"
	"budget-ledger/pkg/logger"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var flagStorage string

var rootCmd = &cobra.Command{
	Use:          "ledgerctl",
	Short:        "Budget ledger admin tool",
	Long:         "Apply schema migrations, seed demo data and mint local access tokens for the budget ledger.",
	SilenceUsage: true,
}

// Execute runs the root command and exits non-zero on failure.
func Execute() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}

func init() {
	rootCmd.PersistentFlags().StringVar(&flagStorage, "storage", "", "Override STORAGE_DRIVER (postgres, sqlite, memory)")
}

// loadConfig reads the environment and applies command-line overrides.
func loadConfig() (*config.Config, *zap.Logger, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, nil, err
	}
	if flagStorage != "" {
		cfg.Storage.Driver = flagStorage
		if err := cfg.Validate(); err != nil {
			return nil, nil, err
		}
	}
	if err := logger.Init(cfg.Logger.Level); err != nil {
		return nil, nil, fmt.Errorf("initializing logger: %w", err)
	}
	return cfg, logger.Get(), nil
}

func openStore(ctx context.Context) (*config.Config, repository.Store, *zap.Logger, error) {
	cfg, log, err := loadConfig()
	if err != nil {
		return nil, nil, nil, err
	}
	store, err := repository.OpenStore(ctx, cfg, log.Named("store"))
	if err != nil {
		return nil, nil, nil, err
	}
	return cfg, store, log, nil
}
