// Package picking turns uploaded order files into per-warehouse picking lists.
//
// A run reads the web order export, the manual order template and the SKU
// master, resolves every line against the site table, records first
// distributions in the ledger and stores one workbook per warehouse plus the
// invalid SKU and invalid site reports under runs/<id>/ in the bucket.
//
// # HTTP Endpoints
//
//   - POST   /picking/runs                  : start a run (multipart upload)
//   - GET    /picking/runs                  : list run ids
//   - GET    /picking/runs/:id              : run summary
//   - GET    /picking/runs/:id/files/:name  : download a report
//   - DELETE /picking/runs/:id              : delete a run
//
// Unreadable files and missing columns answer 400, an unavailable site store
// 502.
package picking
