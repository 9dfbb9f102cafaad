package reconcile

import (
	"context"

	"go.uber.org/zap"
)

// Engine joins order lines against the site table and the SKU master,
// classifies them and groups the valid ones by warehouse.
type Engine struct {
	store   SiteStore
	space   CodeSpace
	markers map[string]struct{}
	logger  *zap.Logger
}

// Input is everything one run consumes besides the site table.
type Input struct {
	Web    *Batch
	Manual *Batch
	SKUs   []SKUEntry
}

// NewEngine creates an engine reading sites from store.
func NewEngine(store SiteStore, cfg Config, logger *zap.Logger) *Engine {
	if logger == nil {
		logger = zap.NewNop()
	}
	markers := make(map[string]struct{})
	for _, m := range cfg.Markers() {
		markers[m] = struct{}{}
	}
	return &Engine{
		store:   store,
		space:   cfg.Space(),
		markers: markers,
		logger:  logger,
	}
}

// Run performs one reconciliation. The site table is fetched once and
// indexed in memory. A store failure aborts the run with a
// *ReferenceStoreError; row-level failures never do.
func (e *Engine) Run(ctx context.Context, in Input) (*Result, error) {
	records, err := e.store.FetchAll(ctx)
	if err != nil {
		return nil, &ReferenceStoreError{Op: "fetch_all", Err: err}
	}
	if len(records) == 0 {
		return nil, &ReferenceStoreError{Op: "fetch_all", Err: ErrNoSites}
	}

	sites := NewSiteIndex(records)
	if len(sites.Duplicates) > 0 {
		e.logger.Warn("Duplicate site codes, first record wins", zap.Strings("codes", sites.Duplicates))
	}
	skus := e.skuDirectory(in.SKUs)

	union, extra := unionBatches(in.Web, in.Manual)
	result := &Result{
		Lines:        make([]Line, 0, len(union)),
		ExtraColumns: extra,
	}
	groupIndex := make(map[string]int)

	for _, ol := range union {
		line := Line{OrderLine: ol}

		if site, ok := sites.Resolve(ol.Origin, ol.SiteCode, e.space); ok {
			line.Warehouse = site.Warehouse
			line.ResolvedName = site.Name
			line.Company = site.Company
		}
		line.OrderableStatus = skus[ol.SKUCode]

		// The two checks are independent; a line may fail both.
		_, orderable := e.markers[line.OrderableStatus]
		line.SKUInvalid = line.OrderableStatus == "" || !orderable
		line.SiteInvalid = line.Warehouse == ""

		result.Lines = append(result.Lines, line)
		switch ol.Origin {
		case OriginWeb:
			result.Summary.WebLines++
		case OriginManual:
			result.Summary.ManualLines++
		}

		if line.SKUInvalid {
			result.InvalidSKU = append(result.InvalidSKU, line)
		}
		if line.SiteInvalid {
			result.InvalidSite = append(result.InvalidSite, line)
		}
		if line.SKUInvalid && line.SiteInvalid {
			result.Summary.BothInvalid++
		}
		if !line.Valid() {
			continue
		}

		pos, ok := groupIndex[line.Warehouse]
		if !ok {
			pos = len(result.Groups)
			groupIndex[line.Warehouse] = pos
			result.Groups = append(result.Groups, WarehouseGroup{Warehouse: line.Warehouse})
		}
		result.Groups[pos].Lines = append(result.Groups[pos].Lines, line)
		result.Summary.ValidLines++
	}

	result.Summary.TotalLines = len(result.Lines)
	result.Summary.InvalidSKU = len(result.InvalidSKU)
	result.Summary.InvalidSite = len(result.InvalidSite)
	result.Summary.Warehouses = len(result.Groups)

	e.logger.Info("Reconciliation finished",
		zap.Int("sites", sites.Len()),
		zap.Int("lines", result.Summary.TotalLines),
		zap.Int("valid", result.Summary.ValidLines),
		zap.Int("invalid_sku", result.Summary.InvalidSKU),
		zap.Int("invalid_site", result.Summary.InvalidSite),
		zap.Int("warehouses", result.Summary.Warehouses),
	)
	return result, nil
}

// skuDirectory maps SKU codes to their status; the first entry per code wins.
func (e *Engine) skuDirectory(entries []SKUEntry) map[string]string {
	dir := make(map[string]string, len(entries))
	dups := 0
	for _, s := range entries {
		code := CanonicalCode(s.SKUCode)
		if _, seen := dir[code]; seen {
			dups++
			continue
		}
		dir[code] = s.OrderableStatus
	}
	if dups > 0 {
		e.logger.Warn("Duplicate SKU master entries, first entry wins", zap.Int("count", dups))
	}
	return dir
}

// unionBatches appends web lines then manual lines, tagging each with its
// batch origin, and merges the passthrough columns in first-seen order.
func unionBatches(web, manual *Batch) ([]OrderLine, []string) {
	var (
		lines []OrderLine
		extra []string
		seen  = make(map[string]bool)
	)
	for _, b := range []struct {
		batch  *Batch
		origin Origin
	}{{web, OriginWeb}, {manual, OriginManual}} {
		if b.batch == nil {
			continue
		}
		for _, col := range b.batch.ExtraColumns {
			if !seen[col] {
				seen[col] = true
				extra = append(extra, col)
			}
		}
		for _, l := range b.batch.Lines {
			l.Origin = b.origin
			l.SiteCode = CanonicalCode(l.SiteCode)
			l.SKUCode = CanonicalCode(l.SKUCode)
			lines = append(lines, l)
		}
	}
	return lines, extra
}
