// Package database handles database connections and schema inspection.
//
// It wraps GORM to open either MySQL (production) or SQLite (local runs and
// tests) from the application's configuration.
//
// # Schema Inspection
//
// The inspector reads a table's columns (SHOW COLUMNS on MySQL, PRAGMA
// table_info on SQLite) and reports which of the columns the site table and
// the distribution ledger rely on are missing. The integrity feature uses it
// before a run is attempted.
//
// # Usage
//
//	db, err := database.Connect(cfg.Database)
//	report, err := database.InspectTable(db, "sites", []string{"site_code", "warehouse"})
package database
