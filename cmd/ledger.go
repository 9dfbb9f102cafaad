package cmd

import (
	"context"
	"fmt"
	"io"
	"os"

	"picklist/core/ledger"

	"github.com/spf13/cobra"
)

// ledgerCmd inspects the distribution ledger.
var ledgerCmd = &cobra.Command{
	Use:   "ledger",
	Short: "Inspect recorded distributions",
}

var ledgerListCmd = &cobra.Command{
	Use:   "list <site_code>",
	Short: "Print the SKUs already distributed to a site",
	Args:  cobra.ExactArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		e, err := loadEnv(true)
		if err != nil {
			return err
		}
		defer e.logger.Sync()

		return listLedger(cmd.Context(), os.Stdout, ledger.NewStore(e.db), args[0])
	},
}

func listLedger(ctx context.Context, w io.Writer, store *ledger.Store, site string) error {
	records, err := store.List(ctx, site)
	if err != nil {
		return err
	}
	for _, r := range records {
		fmt.Fprintf(w, "%-16s %-24s %s\n", r.SKUCode, r.ActivityName, r.CreatedAt.Format("2006-01-02 15:04:05"))
	}
	fmt.Fprintf(w, "\n%d SKUs distributed to %s\n", len(records), site)
	return nil
}

func init() {
	ledgerCmd.AddCommand(ledgerListCmd)
	RootCmd.AddCommand(ledgerCmd)
}
