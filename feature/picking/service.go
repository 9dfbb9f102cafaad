package picking

import (
	"bytes"
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"path"
	"sort"
	"strings"
	"time"

	"picklist/core/metrics"
	"picklist/core/reconcile"
	"picklist/core/sheet"
	"picklist/core/sites"
	"picklist/core/storage"

	"github.com/google/uuid"
	"github.com/minio/minio-go/v7"
	"go.uber.org/zap"
)

// SummaryFile is stored next to the reports of every run.
const SummaryFile = "summary.json"

var (
	// ErrSitesRequired is returned when no hosted site store exists and the
	// run carries no site sheet.
	ErrSitesRequired = errors.New("a site table file is required")
	// ErrRunNotFound is returned for an unknown run id or file.
	ErrRunNotFound = errors.New("run not found")
)

// Upload is one input file.
type Upload struct {
	Name   string
	Reader io.Reader
}

// RunInput holds the files of one run.
type RunInput struct {
	Web    Upload
	Manual Upload
	Master Upload
	// Sites is optional when a hosted site store is configured; when given it
	// replaces the hosted table for this run.
	Sites *Upload
	// SkipLedger disables distribution recording for this run.
	SkipLedger bool
}

// RunReport describes a finished run.
type RunReport struct {
	ID        string                   `json:"id"`
	CreatedAt time.Time                `json:"created_at"`
	Summary   reconcile.Summary        `json:"summary"`
	Ledger    *reconcile.LedgerSummary `json:"ledger,omitempty"`
	Files     []string                 `json:"files"`
}

// Outcome is the in-memory result of a reconciliation, before storage.
type Outcome struct {
	Result  *reconcile.Result
	Ledger  *reconcile.LedgerSummary
	Reports []sheet.Named
}

// Options wires the service to its collaborators.
type Options struct {
	// Sites is the hosted site store; nil means every run uploads its own.
	Sites reconcile.SiteStore
	// Ledger records distributions; nil disables recording.
	Ledger  reconcile.Ledger
	Config  reconcile.Config
	Columns reconcile.ColumnMaps
	Metrics *metrics.Registry
}

// Service runs reconciliations and keeps their reports in the bucket.
type Service struct {
	client storage.Client
	bucket string
	logger *zap.Logger
	opts   Options
}

// NewService creates a picking service.
func NewService(client storage.Client, bucket string, logger *zap.Logger, opts Options) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	if opts.Metrics == nil {
		opts.Metrics = metrics.NewRegistry()
	}
	if opts.Columns.Web == nil {
		opts.Columns = reconcile.DefaultColumnMaps()
	}
	return &Service{client: client, bucket: bucket, logger: logger, opts: opts}
}

// Reconcile reads the inputs, runs the engine, records distributions of the
// valid lines and renders the reports. Nothing is stored.
func (s *Service) Reconcile(ctx context.Context, in RunInput) (*Outcome, error) {
	start := time.Now()
	out, err := s.reconcile(ctx, in)
	s.opts.Metrics.RunSeconds.Observe(time.Since(start).Seconds())
	s.opts.Metrics.Runs.WithLabelValues(resultLabel(err)).Inc()
	return out, err
}

func (s *Service) reconcile(ctx context.Context, in RunInput) (*Outcome, error) {
	maps := s.opts.Columns

	webTable, err := readTable(reconcile.ChannelWeb, in.Web)
	if err != nil {
		return nil, err
	}
	manualTable, err := readTable(reconcile.ChannelManual, in.Manual)
	if err != nil {
		return nil, err
	}
	masterTable, err := readTable(reconcile.ChannelMaster, in.Master)
	if err != nil {
		return nil, err
	}

	web, err := reconcile.ParseOrders(reconcile.OriginWeb, webTable, maps.Web)
	if err != nil {
		return nil, err
	}
	manual, err := reconcile.ParseOrders(reconcile.OriginManual, manualTable, maps.Manual)
	if err != nil {
		return nil, err
	}
	skus, err := reconcile.ParseSKUs(masterTable, maps.Master)
	if err != nil {
		return nil, err
	}

	store, err := s.siteStore(in.Sites)
	if err != nil {
		return nil, err
	}

	engine := reconcile.NewEngine(store, s.opts.Config, s.logger)
	result, err := engine.Run(ctx, reconcile.Input{Web: web, Manual: manual, SKUs: skus})
	if err != nil {
		return nil, err
	}
	s.opts.Metrics.ObserveLines(result.Summary.ValidLines, result.Summary.InvalidSKU, result.Summary.InvalidSite)

	out := &Outcome{Result: result}
	if s.opts.Ledger != nil && !in.SkipLedger {
		summary, err := reconcile.Distribute(ctx, s.opts.Ledger, result.Lines, s.opts.Config.LedgerLabel)
		if err != nil {
			return nil, &LedgerError{Err: err}
		}
		s.opts.Metrics.ObserveLedger(summary.Inserted, summary.Skipped)
		s.logger.Info("Distribution ledger updated",
			zap.Int("inserted", summary.Inserted),
			zap.Int("skipped", summary.Skipped),
		)
		out.Ledger = &summary
	}

	out.Reports = result.Reports()
	return out, nil
}

// Run reconciles the inputs and stores the reports under a new run id.
func (s *Service) Run(ctx context.Context, in RunInput) (*RunReport, error) {
	out, err := s.Reconcile(ctx, in)
	if err != nil {
		return nil, err
	}

	report := &RunReport{
		ID:        uuid.NewString(),
		CreatedAt: time.Now().UTC(),
		Summary:   out.Result.Summary,
		Ledger:    out.Ledger,
	}

	err = WriteReports(out.Reports, func(name string, data []byte) error {
		if err := storage.PutBytes(ctx, s.client, s.bucket, s.objectName(report.ID, name), data, sheet.ContentType); err != nil {
			return err
		}
		report.Files = append(report.Files, name)
		return nil
	})
	if err != nil {
		return nil, err
	}

	summary, err := json.Marshal(report)
	if err != nil {
		return nil, fmt.Errorf("failed to encode run summary: %w", err)
	}
	if err := storage.PutBytes(ctx, s.client, s.bucket, s.objectName(report.ID, SummaryFile), summary, "application/json"); err != nil {
		return nil, err
	}

	s.logger.Info("Run stored",
		zap.String("run_id", report.ID),
		zap.Strings("files", report.Files),
	)
	return report, nil
}

// GetRun loads the stored summary of a run.
func (s *Service) GetRun(ctx context.Context, id string) (*RunReport, error) {
	if _, err := uuid.Parse(id); err != nil {
		return nil, ErrRunNotFound
	}
	data, err := storage.ReadAll(ctx, s.client, s.bucket, s.objectName(id, SummaryFile))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrRunNotFound
		}
		return nil, err
	}

	var report RunReport
	if err := json.Unmarshal(data, &report); err != nil {
		return nil, fmt.Errorf("failed to decode run summary: %w", err)
	}
	return &report, nil
}

// ListRuns returns the ids of stored runs, sorted.
func (s *Service) ListRuns(ctx context.Context) ([]string, error) {
	keys, err := storage.ListKeys(ctx, s.client, s.bucket, s.prefix()+"/")
	if err != nil {
		return nil, err
	}

	seen := make(map[string]bool)
	var ids []string
	for _, k := range keys {
		rest := strings.TrimPrefix(k, s.prefix()+"/")
		id, _, ok := strings.Cut(rest, "/")
		if !ok || seen[id] {
			continue
		}
		seen[id] = true
		ids = append(ids, id)
	}
	sort.Strings(ids)
	return ids, nil
}

// OpenFile opens a stored report of a run.
func (s *Service) OpenFile(ctx context.Context, id, name string) ([]byte, error) {
	if _, err := uuid.Parse(id); err != nil || name == "" || strings.ContainsAny(name, `/\`) {
		return nil, ErrRunNotFound
	}
	data, err := storage.ReadAll(ctx, s.client, s.bucket, s.objectName(id, name))
	if err != nil {
		if isNotFound(err) {
			return nil, ErrRunNotFound
		}
		return nil, err
	}
	return data, nil
}

// DeleteRun removes every object of a run.
func (s *Service) DeleteRun(ctx context.Context, id string) error {
	if _, err := uuid.Parse(id); err != nil {
		return ErrRunNotFound
	}
	keys, err := storage.ListKeys(ctx, s.client, s.bucket, s.objectName(id, ""))
	if err != nil {
		return err
	}
	if len(keys) == 0 {
		return ErrRunNotFound
	}
	for _, k := range keys {
		if err := s.client.RemoveObject(ctx, s.bucket, k, minio.RemoveObjectOptions{}); err != nil {
			return fmt.Errorf("failed to remove %s: %w", k, err)
		}
	}
	s.logger.Info("Run deleted", zap.String("run_id", id), zap.Int("objects", len(keys)))
	return nil
}

func (s *Service) siteStore(upload *Upload) (reconcile.SiteStore, error) {
	if upload != nil {
		records, err := sites.ReadSheet(upload.Name, upload.Reader, s.opts.Columns.Sites)
		if err != nil {
			return nil, err
		}
		return sites.NewMemoryStore(records), nil
	}
	if s.opts.Sites == nil {
		return nil, &reconcile.InputReadError{Channel: reconcile.ChannelSites, Err: ErrSitesRequired}
	}
	return s.opts.Sites, nil
}

func (s *Service) prefix() string {
	if s.opts.Config.ReportPrefix == "" {
		return "runs"
	}
	return strings.Trim(s.opts.Config.ReportPrefix, "/")
}

func (s *Service) objectName(id, name string) string {
	return path.Join(s.prefix(), id) + "/" + name
}

func readTable(channel string, u Upload) (*sheet.Table, error) {
	if u.Reader == nil {
		return nil, &reconcile.InputReadError{Channel: channel, Err: errors.New("file is missing")}
	}
	t, err := sheet.Read(u.Name, u.Reader)
	if err != nil {
		return nil, &reconcile.InputReadError{Channel: channel, Err: err}
	}
	return t, nil
}

func isNotFound(err error) bool {
	var resp minio.ErrorResponse
	if errors.As(err, &resp) {
		return resp.Code == "NoSuchKey"
	}
	return false
}

// WriteReports encodes each report as a workbook and hands it to write.
func WriteReports(reports []sheet.Named, write func(name string, data []byte) error) error {
	for _, r := range reports {
		var buf bytes.Buffer
		if err := sheet.WriteXLSX(&buf, r.Table); err != nil {
			return fmt.Errorf("failed to render %s: %w", r.Name, err)
		}
		if err := write(r.Name, buf.Bytes()); err != nil {
			return err
		}
	}
	return nil
}
