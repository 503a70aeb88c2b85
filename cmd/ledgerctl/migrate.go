package main

import (
	"fmt"

	"budget-ledger/pkg/logger"

	"github.com/spf13/cobra"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the ledger schema",
	RunE:  runMigrate,
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}

// Opening a store applies migrations for postgres and creates the sqlite schema.
func runMigrate(cmd *cobra.Command, _ []string) error {
	cfg, store, _, err := openStore(cmd.Context())
	if err != nil {
		return err
	}
	defer logger.Sync()
	defer store.Close()

	fmt.Printf("  Schema ready (%s)\n", cfg.Storage.Driver)
	return nil
}
