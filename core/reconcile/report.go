package reconcile

import (
	"strings"

	"picklist/core/sheet"
)

// Report file names.
const (
	ReportInvalidSKU  = "invalid_sku.xlsx"
	ReportInvalidSite = "invalid_site.xlsx"
)

var reportColumns = []string{
	ColOrigin,
	ColSiteCode,
	ColSKUCode,
	ColProductName,
	ColQuantity,
	ColWarehouse,
	ColSiteName,
	ColCompany,
	ColOrderable,
}

func reserved(column string) bool {
	for _, c := range reportColumns {
		if c == column {
			return true
		}
	}
	return false
}

// PickingListName returns the file name of a warehouse picking list. The
// warehouse is embedded verbatim apart from path separators.
func PickingListName(warehouse string) string {
	safe := strings.NewReplacer("/", "_", "\\", "_").Replace(warehouse)
	return "picking_" + safe + ".xlsx"
}

// Reports returns one picking list per warehouse with valid lines, followed
// by the invalid SKU and invalid site reports. The invalid reports are
// always present, empty or not.
func (r *Result) Reports() []sheet.Named {
	out := make([]sheet.Named, 0, len(r.Groups)+2)
	for _, g := range r.Groups {
		if len(g.Lines) == 0 {
			continue
		}
		out = append(out, sheet.Named{Name: PickingListName(g.Warehouse), Table: LinesTable(g.Lines, r.ExtraColumns)})
	}
	out = append(out,
		sheet.Named{Name: ReportInvalidSKU, Table: LinesTable(r.InvalidSKU, r.ExtraColumns)},
		sheet.Named{Name: ReportInvalidSite, Table: LinesTable(r.InvalidSite, r.ExtraColumns)},
	)
	return out
}

// LinesTable renders enriched lines with the fixed report columns followed
// by the passthrough columns.
func LinesTable(lines []Line, extra []string) *sheet.Table {
	header := append(append([]string(nil), reportColumns...), extra...)
	t := sheet.NewTable(header...)
	t.Numeric = map[string]bool{ColQuantity: true}

	for _, l := range lines {
		siteName := l.ResolvedName
		if siteName == "" {
			siteName = l.SiteName
		}
		row := []string{
			string(l.Origin),
			l.SiteCode,
			l.SKUCode,
			l.ProductName,
			l.Quantity.String(),
			l.Warehouse,
			siteName,
			l.Company,
			l.OrderableStatus,
		}
		for _, col := range extra {
			row = append(row, l.Extra[col])
		}
		t.Append(row)
	}
	return t
}
