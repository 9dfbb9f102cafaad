// Package ledger stores distribution records in the activity_records table.
// A unique index on (site_code, sku_code) keeps at most one record per pair
// even when two runs insert at the same time.
package ledger
