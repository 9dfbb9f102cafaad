package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Run results.
const (
	ResultOK          = "ok"
	ResultInputError  = "input_error"
	ResultStoreError  = "store_error"
	ResultLedgerError = "ledger_error"
	ResultError       = "error"
)

// Registry holds the service counters on a private prometheus registry.
type Registry struct {
	reg           *prometheus.Registry
	Runs          *prometheus.CounterVec
	Lines         *prometheus.CounterVec
	LedgerRecords *prometheus.CounterVec
	RunSeconds    prometheus.Histogram
}

// NewRegistry creates the collectors and registers them on a fresh registry,
// so tests and servers never share global state.
func NewRegistry() *Registry {
	r := prometheus.NewRegistry()
	runs := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "picklist_runs_total",
		Help: "Reconciliation runs by result.",
	}, []string{"result"})
	lines := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "picklist_lines_total",
		Help: "Reconciled order lines by class.",
	}, []string{"class"})
	ledger := prometheus.NewCounterVec(prometheus.CounterOpts{
		Name: "picklist_ledger_records_total",
		Help: "Distribution ledger outcomes.",
	}, []string{"outcome"})
	seconds := prometheus.NewHistogram(prometheus.HistogramOpts{
		Name:    "picklist_run_duration_seconds",
		Help:    "Wall time of a reconciliation run, from upload parsing to rendered reports.",
		Buckets: prometheus.DefBuckets,
	})

	r.MustRegister(runs, lines, ledger, seconds)
	return &Registry{
		reg:           r,
		Runs:          runs,
		Lines:         lines,
		LedgerRecords: ledger,
		RunSeconds:    seconds,
	}
}

// ObserveLines adds one run's line counts.
func (r *Registry) ObserveLines(valid, invalidSKU, invalidSite int) {
	r.Lines.WithLabelValues("valid").Add(float64(valid))
	r.Lines.WithLabelValues("invalid_sku").Add(float64(invalidSKU))
	r.Lines.WithLabelValues("invalid_site").Add(float64(invalidSite))
}

// ObserveLedger adds one run's ledger outcome.
func (r *Registry) ObserveLedger(inserted, skipped int) {
	r.LedgerRecords.WithLabelValues("inserted").Add(float64(inserted))
	r.LedgerRecords.WithLabelValues("skipped").Add(float64(skipped))
}

// Handler serves the registry in the prometheus text format.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.reg, promhttp.HandlerOpts{})
}
