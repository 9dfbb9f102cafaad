package reconcile

import (
	"errors"
	"fmt"
	"strings"

	"picklist/core/sheet"

	"github.com/shopspring/decimal"
)

// Batch is the normalized content of one order file.
type Batch struct {
	Origin Origin
	Lines  []OrderLine
	// ExtraColumns lists passthrough headers in file order.
	ExtraColumns []string
}

var orderColumns = map[string]bool{
	ColSiteCode:    true,
	ColSKUCode:     true,
	ColQuantity:    true,
	ColProductName: true,
	ColSiteName:    true,
}

// Normalize renames recognised headers to their canonical names and checks
// that every required column is present. Unrecognised headers are kept. When
// two headers map to the same canonical name the first one wins.
func Normalize(channel string, t *sheet.Table, m ColumnMap, required ...string) (*sheet.Table, error) {
	out := &sheet.Table{Header: make([]string, len(t.Header)), Rows: t.Rows, SourceRows: t.SourceRows}
	used := make(map[string]bool, len(t.Header))

	for i, h := range t.Header {
		name := h
		if target, ok := m[h]; ok && !used[target] {
			name = target
		}
		out.Header[i] = name
		used[name] = true
	}

	for _, col := range required {
		if !used[col] {
			return nil, &SchemaError{Channel: channel, Column: col}
		}
	}
	return out, nil
}

// ParseOrders normalizes an order file and converts its rows to order lines.
func ParseOrders(origin Origin, t *sheet.Table, m ColumnMap) (*Batch, error) {
	channel := string(origin)
	n, err := Normalize(channel, t, m, ColSiteCode, ColSKUCode, ColQuantity)
	if err != nil {
		return nil, err
	}

	batch := &Batch{Origin: origin}
	for _, h := range n.Header {
		if h != "" && !orderColumns[h] && !reserved(h) {
			batch.ExtraColumns = append(batch.ExtraColumns, h)
		}
	}

	for i := range n.Rows {
		qty, err := parseQuantity(n.Value(i, ColQuantity))
		if err != nil {
			return nil, &InputReadError{Channel: channel, Row: n.RowNumber(i), Err: err}
		}

		line := OrderLine{
			Origin:      origin,
			SiteCode:    CanonicalCode(n.Value(i, ColSiteCode)),
			SKUCode:     CanonicalCode(n.Value(i, ColSKUCode)),
			Quantity:    qty,
			SiteName:    strings.TrimSpace(n.Value(i, ColSiteName)),
			ProductName: strings.TrimSpace(n.Value(i, ColProductName)),
			Row:         n.RowNumber(i),
		}
		if len(batch.ExtraColumns) > 0 {
			line.Extra = make(map[string]string, len(batch.ExtraColumns))
			for _, col := range batch.ExtraColumns {
				line.Extra[col] = n.Value(i, col)
			}
		}
		batch.Lines = append(batch.Lines, line)
	}
	return batch, nil
}

// ParseSKUs normalizes the SKU master list.
func ParseSKUs(t *sheet.Table, m ColumnMap) ([]SKUEntry, error) {
	n, err := Normalize(ChannelMaster, t, m, ColSKUCode, ColOrderable)
	if err != nil {
		return nil, err
	}

	entries := make([]SKUEntry, 0, n.Len())
	for i := range n.Rows {
		entries = append(entries, SKUEntry{
			SKUCode:         CanonicalCode(n.Value(i, ColSKUCode)),
			OrderableStatus: strings.TrimSpace(n.Value(i, ColOrderable)),
		})
	}
	return entries, nil
}

// ParseSites normalizes a site table. Every row needs a warehouse column
// and at least one of the two codes.
func ParseSites(t *sheet.Table, m ColumnMap) ([]SiteRecord, error) {
	n, err := Normalize(ChannelSites, t, m, ColWarehouse)
	if err != nil {
		return nil, err
	}
	if !n.Has(ColNewCode) && !n.Has(ColLegacyCode) {
		return nil, &SchemaError{Channel: ChannelSites, Column: ColNewCode}
	}

	records := make([]SiteRecord, 0, n.Len())
	for i := range n.Rows {
		rec := SiteRecord{
			NewCode:    CanonicalCode(n.Value(i, ColNewCode)),
			LegacyCode: CanonicalCode(n.Value(i, ColLegacyCode)),
			Warehouse:  strings.TrimSpace(n.Value(i, ColWarehouse)),
			Name:       strings.TrimSpace(n.Value(i, ColName)),
			Company:    strings.TrimSpace(n.Value(i, ColCompany)),
		}
		if rec.NewCode == "" && rec.LegacyCode == "" {
			return nil, &InputReadError{Channel: ChannelSites, Row: n.RowNumber(i), Err: errors.New("site has neither a new nor a legacy code")}
		}
		records = append(records, rec)
	}
	return records, nil
}

func parseQuantity(raw string) (decimal.Decimal, error) {
	raw = strings.TrimSpace(raw)
	if raw == "" {
		return decimal.Zero, nil
	}
	qty, err := decimal.NewFromString(strings.ReplaceAll(raw, ",", ""))
	if err != nil {
		return decimal.Zero, fmt.Errorf("quantity %q is not a number", raw)
	}
	return qty, nil
}
