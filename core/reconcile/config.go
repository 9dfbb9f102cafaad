package reconcile

import (
	"strings"
	"time"
)

// Site sources selectable by configuration.
const (
	SiteSourceUpload   = "upload"
	SiteSourceDatabase = "database"
	SiteSourceStorage  = "storage"
)

// Config holds the reconciliation settings.
type Config struct {
	// SiteSource selects where the site table comes from.
	SiteSource string `mapstructure:"site_source" default:"upload" validate:"oneof=upload database storage"`
	// SiteObject is the bucket key of the site sheet for the storage source.
	SiteObject string `mapstructure:"site_object" default:"reference/sites.xlsx"`
	// CodeSpace selects the site resolution strategy.
	CodeSpace string `mapstructure:"code_space" default:"scoped" validate:"oneof=scoped either"`
	// OrderableMarkers is a comma separated list of exact statuses that make a SKU orderable.
	OrderableMarkers string `mapstructure:"orderable_markers" default:"orderable at station,油站可订"`
	// LedgerEnabled records first distributions of valid lines when a database is available.
	LedgerEnabled bool `mapstructure:"ledger_enabled" default:"true"`
	// LedgerLabel is written as the activity name of new distribution records.
	LedgerLabel string `mapstructure:"ledger_label" default:"auto picking distribution"`
	// ColumnMapFile optionally overrides the header rename maps.
	ColumnMapFile string `mapstructure:"column_map_file" default:""`
	// CacheTTLSeconds caches the site table between runs. Zero disables caching.
	CacheTTLSeconds int `mapstructure:"cache_ttl_seconds" default:"0" validate:"min=0"`
	// ReportPrefix is the bucket prefix under which run artifacts are stored.
	ReportPrefix string `mapstructure:"report_prefix" default:"runs"`
}

// Markers returns the trimmed, non-empty orderable markers.
func (c Config) Markers() []string {
	var out []string
	for _, m := range strings.Split(c.OrderableMarkers, ",") {
		if m = strings.TrimSpace(m); m != "" {
			out = append(out, m)
		}
	}
	return out
}

// Space returns the configured code space, defaulting to scoped.
func (c Config) Space() CodeSpace {
	if CodeSpace(c.CodeSpace) == CodeSpaceEither {
		return CodeSpaceEither
	}
	return CodeSpaceScoped
}

// CacheTTL returns the site cache lifetime.
func (c Config) CacheTTL() time.Duration {
	return time.Duration(c.CacheTTLSeconds) * time.Second
}
