package cmd

import (
	"context"
	"fmt"
	"io"
	"os"
	"path/filepath"

	"picklist/core/reconcile"
	coresites "picklist/core/sites"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// sitesCmd manages the database-hosted site table.
var sitesCmd = &cobra.Command{
	Use:   "sites",
	Short: "Manage the hosted site table",
}

var sitesImportCmd = &cobra.Command{
	Use:   "import <file>",
	Short: "Import a site sheet into the database",
	Long: `Creates or updates one site per row. Rows match stored sites by new
code first, then by legacy code. A code left blank in the sheet keeps the
stored value.`,
	Args: cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(true)
		if err != nil {
			return err
		}
		defer e.logger.Sync()

		if err := coresites.Migrate(e.db); err != nil {
			return err
		}
		columns, err := reconcile.LoadColumnMaps(e.cfg.Reconcile.ColumnMapFile)
		if err != nil {
			return err
		}

		f, err := os.Open(args[0])
		if err != nil {
			return fmt.Errorf("failed to open %s: %w", args[0], err)
		}
		defer f.Close()

		summary, total, err := importSites(cmd.Context(), e.db, filepath.Base(args[0]), f, columns.Sites)
		if err != nil {
			return err
		}
		e.logger.Info("Sites imported",
			zap.Int("created", summary.Created),
			zap.Int("updated", summary.Updated),
			zap.Int64("total", total),
		)
		return nil
	},
}

var sitesListCmd = &cobra.Command{
	Use:   "list",
	Short: "Print the hosted site table",
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(true)
		if err != nil {
			return err
		}
		defer e.logger.Sync()

		return listSites(cmd.Context(), os.Stdout, coresites.NewDBStore(e.db))
	},
}

// importSites upserts a site sheet and returns the stored site count after it.
func importSites(ctx context.Context, db *gorm.DB, name string, r io.Reader, m reconcile.ColumnMap) (coresites.ImportSummary, int64, error) {
	records, err := coresites.ReadSheet(name, r, m)
	if err != nil {
		return coresites.ImportSummary{}, 0, err
	}

	store := coresites.NewDBStore(db)
	summary, err := store.Import(ctx, records)
	if err != nil {
		return summary, 0, err
	}
	total, err := store.Count(ctx)
	if err != nil {
		return summary, 0, err
	}
	return summary, total, nil
}

func listSites(ctx context.Context, w io.Writer, store *coresites.DBStore) error {
	records, err := store.FetchAll(ctx)
	if err != nil {
		return err
	}
	for _, r := range records {
		fmt.Fprintf(w, "%-12s %-12s %-10s %s\n", r.NewCode, r.LegacyCode, r.Warehouse, r.Name)
	}

	total, err := store.Count(ctx)
	if err != nil {
		return err
	}
	fmt.Fprintf(w, "\n%d sites\n", total)
	return nil
}

func init() {
	sitesCmd.AddCommand(sitesImportCmd)
	sitesCmd.AddCommand(sitesListCmd)
	RootCmd.AddCommand(sitesCmd)
}
