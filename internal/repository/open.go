package repository

import (
	"context"
	"fmt"

	"budget-ledger/pkg/config"
	"budget-ledger/pkg/postgres"
	"budget-ledger/pkg/sqlite"

	"go.uber.org/zap"
)

// OpenStore connects the backend selected by cfg.Storage.Driver and makes
// sure its schema is current.
func OpenStore(ctx context.Context, cfg *config.Config, logger *zap.Logger) (Store, error) {
	switch cfg.Storage.Driver {
	case config.StorageDriverPostgres:
		pool, err := postgres.NewPool(ctx, &cfg.Database, logger)
		if err != nil {
			return nil, err
		}
		if err := postgres.Migrate(ctx, pool, logger); err != nil {
			pool.Close()
			return nil, err
		}
		return NewPostgresStore(pool, logger), nil

	case config.StorageDriverSQLite:
		db, err := sqlite.Open(cfg.Storage.SQLitePath, logger)
		if err != nil {
			return nil, err
		}
		return NewSQLiteStore(db, logger), nil

	case config.StorageDriverMemory:
		logger.Warn("Using in-memory storage, data is lost on restart")
		return NewMemoryStore(logger), nil
	}
	return nil, fmt.Errorf("unknown storage driver %q", cfg.Storage.Driver)
}
