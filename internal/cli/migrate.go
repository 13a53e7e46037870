package cli

import (
	"fmt"

	"github.com/spf13/cobra"

	"questjournal/internal/storage"
)

var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or upgrade the database schema and list applied migrations",
	RunE: func(cmd *cobra.Command, args []string) error {
		db, err := openDB()
		if err != nil {
			return err
		}
		defer db.Close()

		names, err := storage.AppliedMigrations(db.DB)
		if err != nil {
			return fmt.Errorf("list migrations: %w", err)
		}
		for _, n := range names {
			fmt.Fprintln(cmd.OutOrStdout(), n)
		}
		return nil
	},
}
