package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"plant-irrigation-api/db"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Apply pending database migrations",
	RunE:  runMigrate,
}

func runMigrate(cmd *cobra.Command, args []string) error {
	cfg, err := loadConfig()
	if err != nil {
		return err
	}

	store, err := db.Open(cfg.Database)
	if err != nil {
		return fmt.Errorf("failed to connect to database: %w", err)
	}
	defer store.Close()

	if err := store.RunMigrations(cmd.Context()); err != nil {
		return err
	}

	version, err := store.CurrentVersion(cmd.Context())
	if err != nil {
		return fmt.Errorf("failed to get current schema version: %w", err)
	}

	fmt.Fprintf(cmd.OutOrStdout(), "Database schema version: %d\n", version)
	return nil
}

func init() {
	rootCmd.AddCommand(migrateCmd)
}
