package cmd

import (
	"encoding/json"
	"errors"
	"fmt"

	"picklist/core/storage"
	"picklist/feature/integrity"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var fixFlag bool

// integrityCmd represents the integrity command
var integrityCmd = &cobra.Command{
	Use:   "integrity",
	Short: "Check the bucket and the database schema",
	Long: `Checks that the artifact bucket exists, that the configured site sheet is
present, and that the site and ledger tables carry every expected column.
With --fix the bucket is created and the tables are migrated first.`,
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx := cmd.Context()

		e, err := loadEnv(false)
		if err != nil {
			return err
		}
		defer e.logger.Sync()

		client, err := storage.NewClient(e.cfg.Storage)
		if err != nil {
			return fmt.Errorf("failed to create storage client: %w", err)
		}
		svc := integrity.NewService(client, e.cfg.Storage.Bucket, e.logger, e.db, integrityOptions(e))

		if fixFlag {
			if err := svc.FixStorage(ctx); err != nil {
				return err
			}
			if err := svc.FixDatabase(); err != nil && !errors.Is(err, integrity.ErrNoDatabase) {
				return err
			}
		}

		report := map[string]any{}
		st, err := svc.CheckStorage(ctx)
		if err != nil {
			return err
		}
		report["storage"] = st

		db, err := svc.CheckDatabase()
		switch {
		case errors.Is(err, integrity.ErrNoDatabase):
			e.logger.Warn("Skipping database check: no connection")
		case err != nil:
			return err
		default:
			report["database"] = db
		}

		data, err := json.MarshalIndent(report, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal report: %w", err)
		}
		fmt.Println(string(data))

		healthy := st.OK() && (db == nil || db.Matched)
		e.logger.Info("Integrity check completed", zap.Bool("healthy", healthy))
		if !healthy {
			return fmt.Errorf("integrity check failed")
		}
		return nil
	},
}

func init() {
	integrityCmd.Flags().BoolVar(&fixFlag, "fix", false, "Create the bucket and migrate the tables before checking")
	RootCmd.AddCommand(integrityCmd)
}
