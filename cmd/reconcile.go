package cmd

import (
	"context"
	"encoding/json"
	"fmt"
	"os"
	"path/filepath"

	"picklist/core/ledger"
	"picklist/core/reconcile"
	coresites "picklist/core/sites"
	"picklist/core/storage"
	"picklist/feature/picking"

	"github.com/spf13/cobra"
	"go.uber.org/zap"
)

var (
	webFile    string
	manualFile string
	masterFile string
	sitesFile  string
	outDir     string
	noLedger   bool
	jsonOutput bool
)

// reconcileCmd runs one reconciliation from local files.
var reconcileCmd = &cobra.Command{
	Use:   "reconcile",
	Short: "Build picking lists from local order files",
	Long: `Reads the storefront export, the manual template and the SKU master,
validates every order line against the site table and writes one picking list
per warehouse plus the invalid-order reports into --out.

The site table comes from --sites or, when omitted, from the configured site
source. Valid lines are recorded in the distribution ledger unless
--no-ledger is given or no database is reachable.

Examples:
  picklist reconcile --web web.xlsx --manual manual.xlsx --master sku.xlsx --sites sites.xlsx
  picklist reconcile --web web.csv --manual manual.xlsx --master sku.xlsx --out ./out --no-ledger`,
	RunE: runReconcile,
}

func init() {
	reconcileCmd.Flags().StringVar(&webFile, "web", "", "Storefront order export (.xlsx or .csv)")
	reconcileCmd.Flags().StringVar(&manualFile, "manual", "", "Manual order template (.xlsx or .csv)")
	reconcileCmd.Flags().StringVar(&masterFile, "master", "", "SKU master list (.xlsx or .csv)")
	reconcileCmd.Flags().StringVar(&sitesFile, "sites", "", "Site table; overrides the configured site source")
	reconcileCmd.Flags().StringVar(&outDir, "out", ".", "Directory receiving the reports")
	reconcileCmd.Flags().BoolVar(&noLedger, "no-ledger", false, "Do not record distributions")
	reconcileCmd.Flags().BoolVar(&jsonOutput, "json", false, "Print the summary as JSON")
	_ = reconcileCmd.MarkFlagRequired("web")
	_ = reconcileCmd.MarkFlagRequired("manual")
	_ = reconcileCmd.MarkFlagRequired("master")

	RootCmd.AddCommand(reconcileCmd)
}

func runReconcile(cmd *cobra.Command, args []string) error {
	ctx := cmd.Context()
	if ctx == nil {
		ctx = context.Background()
	}

	e, err := loadEnv(false)
	if err != nil {
		return err
	}
	cfg, l, db := e.cfg, e.logger, e.db
	defer l.Sync()

	columns, err := reconcile.LoadColumnMaps(cfg.Reconcile.ColumnMapFile)
	if err != nil {
		return err
	}

	opts := picking.Options{Config: cfg.Reconcile, Columns: columns}

	if sitesFile == "" {
		var client storage.Client
		if cfg.Reconcile.SiteSource == reconcile.SiteSourceStorage {
			if client, err = storage.NewClient(cfg.Storage); err != nil {
				return fmt.Errorf("failed to connect to storage: %w", err)
			}
		}
		if opts.Sites, err = coresites.New(cfg.Reconcile, db, client, cfg.Storage.Bucket, columns.Sites); err != nil {
			return err
		}
	}

	if db != nil && cfg.Reconcile.LedgerEnabled && !noLedger {
		if err := ledger.Migrate(db); err != nil {
			return err
		}
		opts.Ledger = ledger.NewStore(db)
	}

	in := picking.RunInput{SkipLedger: noLedger}
	var files []*os.File
	defer func() {
		for _, f := range files {
			_ = f.Close()
		}
	}()
	open := func(channel, path string) (picking.Upload, error) {
		f, err := os.Open(path)
		if err != nil {
			return picking.Upload{}, &reconcile.InputReadError{Channel: channel, Err: err}
		}
		files = append(files, f)
		return picking.Upload{Name: filepath.Base(path), Reader: f}, nil
	}
	if in.Web, err = open(reconcile.ChannelWeb, webFile); err != nil {
		return err
	}
	if in.Manual, err = open(reconcile.ChannelManual, manualFile); err != nil {
		return err
	}
	if in.Master, err = open(reconcile.ChannelMaster, masterFile); err != nil {
		return err
	}
	if sitesFile != "" {
		u, err := open(reconcile.ChannelSites, sitesFile)
		if err != nil {
			return err
		}
		in.Sites = &u
	}

	svc := picking.NewService(nil, "", l, opts)
	out, err := svc.Reconcile(ctx, in)
	if err != nil {
		return err
	}

	if err := os.MkdirAll(outDir, 0o755); err != nil {
		return fmt.Errorf("failed to create output directory: %w", err)
	}
	err = picking.WriteReports(out.Reports, func(name string, data []byte) error {
		path := filepath.Join(outDir, name)
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write %s: %w", path, err)
		}
		l.Info("Report written", zap.String("file", path))
		return nil
	})
	if err != nil {
		return err
	}

	return printSummary(l, out)
}

// printSummary reports the counts of a finished run.
func printSummary(l *zap.Logger, out *picking.Outcome) error {
	s := out.Result.Summary

	if jsonOutput {
		data, err := json.MarshalIndent(struct {
			Summary reconcile.Summary        `json:"summary"`
			Ledger  *reconcile.LedgerSummary `json:"ledger,omitempty"`
		}{s, out.Ledger}, "", "  ")
		if err != nil {
			return fmt.Errorf("failed to marshal summary: %w", err)
		}
		fmt.Println(string(data))
		return nil
	}

	fmt.Println("\n=== Picking Run ===")
	fmt.Printf("Lines: %d (web %d, manual %d)\n", s.TotalLines, s.WebLines, s.ManualLines)
	fmt.Printf("Valid: %d across %d warehouses\n", s.ValidLines, s.Warehouses)
	fmt.Printf("Invalid SKU: %d\n", s.InvalidSKU)
	fmt.Printf("Invalid Site: %d\n", s.InvalidSite)
	fmt.Printf("Both Invalid: %d\n", s.BothInvalid)
	if out.Ledger != nil {
		fmt.Printf("Ledger: %d inserted, %d already recorded\n", out.Ledger.Inserted, out.Ledger.Skipped)
	}

	l.Info("Reconciliation completed",
		zap.Int("valid", s.ValidLines),
		zap.Int("invalid_sku", s.InvalidSKU),
		zap.Int("invalid_site", s.InvalidSite),
	)
	return nil
}
