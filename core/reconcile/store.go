package reconcile

import (
	"context"
	"errors"
)

// ErrNoSites is returned when the site table is empty.
var ErrNoSites = errors.New("no sites loaded")

// SiteStore is the authoritative site to warehouse mapping.
type SiteStore interface {
	// FetchAll returns every site record.
	FetchAll(ctx context.Context) ([]SiteRecord, error)
	// FetchByNewCode looks a site up in the new code space only.
	FetchByNewCode(ctx context.Context, code string) (*SiteRecord, error)
	// FetchByLegacyCode looks a site up in the legacy code space only.
	FetchByLegacyCode(ctx context.Context, code string) (*SiteRecord, error)
	// FetchByCode tries the new code space, then the legacy one.
	FetchByCode(ctx context.Context, code string) (*SiteRecord, error)
}

// Ledger records which (site, SKU) pairs have already been distributed.
type Ledger interface {
	Exists(ctx context.Context, siteCode, skuCode string) (bool, error)
	Insert(ctx context.Context, siteCode, skuCode, label string) error
}
