// Package sqlite opens the single-file ledger database used in local mode.
package sqlite

import (
	"database/sql"
	"fmt"
	"os"
	"path/filepath"

	"go.uber.org/zap"

	_ "modernc.org/sqlite" // register sqlite driver
)

// Open opens or creates the database at path and ensures the schema exists.
func Open(path string, logger *zap.Logger) (*sql.DB, error) {
	if dir := filepath.Dir(path); dir != "" {
		if err := os.MkdirAll(dir, 0o750); err != nil {
			return nil, fmt.Errorf("creating database dir: %w", err)
		}
	}

	db, err := sql.Open("sqlite", path+"?_pragma=journal_mode(wal)&_pragma=busy_timeout(5000)&_pragma=foreign_keys(on)&_time_format=sqlite")
	if err != nil {
		return nil, fmt.Errorf("opening sqlite db: %w", err)
	}
	// one writer at a time keeps BEGIN/COMMIT from tripping SQLITE_BUSY
	db.SetMaxOpenConns(1)

	if err := Migrate(db); err != nil {
		_ = db.Close()
		return nil, err
	}

	logger.Info("SQLite database opened", zap.String("path", path))
	return db, nil
}

// Migrate creates the ledger tables if they are missing.
func Migrate(db *sql.DB) error {
	if _, err := db.Exec(schemaSQL); err != nil {
		return fmt.Errorf("creating schema: %w", err)
	}
	return nil
}
