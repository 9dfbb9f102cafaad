package reconcile

import (
	"github.com/shopspring/decimal"
)

// Origin identifies the channel an order line came from.
type Origin string

const (
	// OriginWeb is the storefront export, keyed by new site codes.
	OriginWeb Origin = "web"
	// OriginManual is the partner-station template, keyed by legacy site codes.
	OriginManual Origin = "manual"
)

// OrderLine is one requested quantity of one SKU for one site, as parsed.
type OrderLine struct {
	Origin      Origin
	SiteCode    string
	SKUCode     string
	Quantity    decimal.Decimal
	SiteName    string
	ProductName string
	// Extra holds columns with no canonical meaning, keyed by header.
	Extra map[string]string
	// Row is the 1-based spreadsheet row, header included.
	Row int
}

// SiteRecord is one physical site in the reference store.
type SiteRecord struct {
	NewCode    string `json:"new_code" validate:"required_without=LegacyCode"`
	LegacyCode string `json:"legacy_code" validate:"required_without=NewCode"`
	Warehouse  string `json:"warehouse"`
	Name       string `json:"name"`
	Company    string `json:"company,omitempty"`
}

// SKUEntry is one product's order eligibility from the master list.
type SKUEntry struct {
	SKUCode         string
	OrderableStatus string
}

// Line is an order line after the site and SKU joins.
type Line struct {
	OrderLine
	Warehouse       string
	ResolvedName    string
	Company         string
	OrderableStatus string
	SKUInvalid      bool
	SiteInvalid     bool
}

// Valid reports whether the line may go onto a picking list.
func (l Line) Valid() bool {
	return !l.SKUInvalid && !l.SiteInvalid
}

// WarehouseGroup is the picking list of one warehouse.
type WarehouseGroup struct {
	Warehouse string
	Lines     []Line
}

// Summary provides aggregate counts for one run.
type Summary struct {
	TotalLines  int `json:"total_lines"`
	WebLines    int `json:"web_lines"`
	ManualLines int `json:"manual_lines"`
	ValidLines  int `json:"valid_lines"`
	InvalidSKU  int `json:"invalid_sku"`
	InvalidSite int `json:"invalid_site"`
	// BothInvalid counts lines present in both invalid reports.
	BothInvalid int `json:"both_invalid"`
	Warehouses  int `json:"warehouses"`
}

// Result is the output of one reconciliation run.
type Result struct {
	// Lines holds every enriched line in union order.
	Lines       []Line
	Groups      []WarehouseGroup
	InvalidSKU  []Line
	InvalidSite []Line
	Summary     Summary
	// ExtraColumns are passthrough headers in first-seen order.
	ExtraColumns []string
}

// Valid returns the lines that passed both checks, in union order.
func (r *Result) Valid() []Line {
	var out []Line
	for _, l := range r.Lines {
		if l.Valid() {
			out = append(out, l)
		}
	}
	return out
}
