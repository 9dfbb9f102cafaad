// Package sheet reads and writes the tabular files exchanged with users.
//
// Uploads arrive as xlsx workbooks (first sheet only) or CSV files and are
// decoded into a Table: one header row plus string cells, every row padded
// to the header width. Picking lists and invalid-row reports are encoded back
// into xlsx with a bold header row. Empty tables still produce a workbook
// holding only the header.
package sheet
