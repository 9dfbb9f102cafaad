// Package reconcile turns the day's order files into per-warehouse picking lists.
//
// A run consumes two order channels, a SKU master list and a site table:
//
//  1. Normalize: each file's headers are renamed to canonical columns through a
//     per-channel ColumnMap; a missing required column is a *SchemaError.
//     Site and SKU codes are canonicalised so 1001, "1001 " and "1001.0" match.
//  2. Union: web lines, then manual lines, each in file order.
//  3. Site resolution against a SiteIndex built once from SiteStore.FetchAll.
//     Under CodeSpaceScoped web lines search new codes and manual lines search
//     legacy codes; CodeSpaceEither tries new then legacy for every line.
//  4. SKU resolution against the master list.
//  5. Classification: a line is SKU-invalid when its status is not an exact
//     orderable marker and site-invalid when no warehouse was found. The flags
//     are independent, so a line may appear in both invalid reports; only lines
//     with neither flag reach a picking list.
//  6. Grouping of valid lines by warehouse, order preserved.
//
// Distribute then records each valid (site, SKU) pair in the Ledger at most
// once, and Result.Reports renders the artifacts offered for download.
//
// # Errors
//
//   - *InputReadError: a file is not a readable table or a cell is malformed.
//   - *SchemaError: a required column is missing.
//   - *ReferenceStoreError: the site table could not be loaded.
//
// Row-level validation failures are not errors.
package reconcile
