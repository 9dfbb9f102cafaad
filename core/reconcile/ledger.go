package reconcile

import (
	"context"
	"fmt"
)

// LedgerSummary counts the outcome of recording distributions.
type LedgerSummary struct {
	Inserted int `json:"inserted"`
	Skipped  int `json:"skipped"`
}

// RecordIfAbsent inserts a distribution record unless one already exists
// for the pair. It reports whether a record was inserted.
func RecordIfAbsent(ctx context.Context, ledger Ledger, siteCode, skuCode, label string) (bool, error) {
	exists, err := ledger.Exists(ctx, siteCode, skuCode)
	if err != nil {
		return false, fmt.Errorf("check distribution %s/%s: %w", siteCode, skuCode, err)
	}
	if exists {
		return false, nil
	}
	if err := ledger.Insert(ctx, siteCode, skuCode, label); err != nil {
		return false, fmt.Errorf("record distribution %s/%s: %w", siteCode, skuCode, err)
	}
	return true, nil
}

// Distribute records every valid line's (site, SKU) pair. Each pair is sent
// to the ledger at most once per call; repeats count as skipped.
func Distribute(ctx context.Context, ledger Ledger, lines []Line, label string) (LedgerSummary, error) {
	var summary LedgerSummary
	seen := make(map[[2]string]struct{}, len(lines))

	for _, l := range lines {
		if !l.Valid() {
			continue
		}
		key := [2]string{l.SiteCode, l.SKUCode}
		if _, ok := seen[key]; ok {
			summary.Skipped++
			continue
		}
		seen[key] = struct{}{}

		inserted, err := RecordIfAbsent(ctx, ledger, l.SiteCode, l.SKUCode, label)
		if err != nil {
			return summary, err
		}
		if inserted {
			summary.Inserted++
		} else {
			summary.Skipped++
		}
	}
	return summary, nil
}
