package sites

import (
	"context"
	"errors"
	"io"

	"picklist/core/reconcile"
	coresites "picklist/core/sites"

	"go.uber.org/zap"
)

// ErrImportUnsupported is returned when the hosted store is not the database.
var ErrImportUnsupported = errors.New("site import requires the database site source")

// Importer writes site records to the hosted table.
type Importer interface {
	Import(ctx context.Context, records []reconcile.SiteRecord) (coresites.ImportSummary, error)
}

type invalidator interface {
	Invalidate()
}

// Service reads and maintains the hosted site table.
type Service struct {
	store    reconcile.SiteStore
	importer Importer
	columns  reconcile.ColumnMap
	logger   *zap.Logger
}

// NewService creates a sites service. importer may be nil.
func NewService(store reconcile.SiteStore, importer Importer, columns reconcile.ColumnMap, logger *zap.Logger) *Service {
	if logger == nil {
		logger = zap.NewNop()
	}
	return &Service{store: store, importer: importer, columns: columns, logger: logger}
}

// List returns every site.
func (s *Service) List(ctx context.Context) ([]reconcile.SiteRecord, error) {
	records, err := s.store.FetchAll(ctx)
	if err != nil {
		return nil, &reconcile.ReferenceStoreError{Op: "fetch_all", Err: err}
	}
	return records, nil
}

// Lookup finds a site by code. space is "new", "legacy" or empty for either.
func (s *Service) Lookup(ctx context.Context, code, space string) (*reconcile.SiteRecord, error) {
	var (
		rec *reconcile.SiteRecord
		err error
	)
	switch space {
	case "new":
		rec, err = s.store.FetchByNewCode(ctx, code)
	case "legacy":
		rec, err = s.store.FetchByLegacyCode(ctx, code)
	default:
		rec, err = s.store.FetchByCode(ctx, code)
	}
	if err != nil {
		return nil, &reconcile.ReferenceStoreError{Op: "fetch_by_code", Err: err}
	}
	return rec, nil
}

// Import parses a site sheet and upserts it into the hosted table.
func (s *Service) Import(ctx context.Context, name string, r io.Reader) (coresites.ImportSummary, error) {
	if s.importer == nil {
		return coresites.ImportSummary{}, ErrImportUnsupported
	}
	records, err := coresites.ReadSheet(name, r, s.columns)
	if err != nil {
		return coresites.ImportSummary{}, err
	}
	summary, err := s.importer.Import(ctx, records)
	if err != nil {
		return summary, err
	}
	if c, ok := s.store.(invalidator); ok {
		c.Invalidate()
	}
	s.logger.Info("Sites imported",
		zap.String("file", name),
		zap.Int("created", summary.Created),
		zap.Int("updated", summary.Updated),
	)
	return summary, nil
}
