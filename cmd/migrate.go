package cmd

import (
	"github.com/spf13/cobra"
)

// migrateCmd creates or updates the site and ledger tables.
var migrateCmd = &cobra.Command{
	Use:   "migrate",
	Short: "Create or update the database tables",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(true)
		if err != nil {
			return err
		}
		defer e.logger.Sync()

		if err := migrate(e.db); err != nil {
			return err
		}
		e.logger.Info("Database schema is up to date")
		return nil
	},
}

func init() {
	RootCmd.AddCommand(migrateCmd)
}
