package database

import (
	"fmt"
	"sort"
	"strings"

	"gorm.io/gorm"
)

// ColumnInfo is one column of a table as reported by the database.
type ColumnInfo struct {
	Field string
	Type  string
	Null  string
	Key   string
	Extra string
}

// TableReport lists what a table lacks compared to an expected column set.
type TableReport struct {
	Table          string   `json:"table"`
	Exists         bool     `json:"exists"`
	MissingColumns []string `json:"missing_columns"`
}

// OK reports whether the table exists with every expected column.
func (r TableReport) OK() bool {
	return r.Exists && len(r.MissingColumns) == 0
}

// GetTableColumns retrieves the column definitions for a given table.
// Field and Type are lower-cased. A missing table yields no columns on sqlite.
func GetTableColumns(db *gorm.DB, tableName string) ([]ColumnInfo, error) {
	var columns []ColumnInfo

	if db.Dialector.Name() == "sqlite" {
		type sqliteColumn struct {
			Name    string
			Type    string
			Notnull int
			Pk      int
		}
		var rows []sqliteColumn
		if err := db.Raw(fmt.Sprintf("PRAGMA table_info('%s')", tableName)).Scan(&rows).Error; err != nil {
			return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
		}
		for _, col := range rows {
			info := ColumnInfo{
				Field: strings.ToLower(col.Name),
				Type:  strings.ToLower(col.Type),
				Null:  "YES",
			}
			if col.Notnull == 1 {
				info.Null = "NO"
			}
			if col.Pk == 1 {
				info.Key = "PRI"
			}
			columns = append(columns, info)
		}
		return columns, nil
	}

	if err := db.Raw(fmt.Sprintf("SHOW COLUMNS FROM `%s`", tableName)).Scan(&columns).Error; err != nil {
		return nil, fmt.Errorf("failed to get columns for table %s: %w", tableName, err)
	}
	for i := range columns {
		columns[i].Type = strings.ToLower(columns[i].Type)
		columns[i].Field = strings.ToLower(columns[i].Field)
	}
	return columns, nil
}

// InspectTable compares a table against the columns the application reads and writes.
func InspectTable(db *gorm.DB, tableName string, expected []string) (TableReport, error) {
	report := TableReport{Table: tableName, MissingColumns: []string{}}

	if !db.Migrator().HasTable(tableName) {
		report.MissingColumns = append(report.MissingColumns, expected...)
		sort.Strings(report.MissingColumns)
		return report, nil
	}
	report.Exists = true

	columns, err := GetTableColumns(db, tableName)
	if err != nil {
		return report, err
	}

	present := make(map[string]struct{}, len(columns))
	for _, col := range columns {
		present[col.Field] = struct{}{}
	}
	for _, name := range expected {
		if _, ok := present[strings.ToLower(name)]; !ok {
			report.MissingColumns = append(report.MissingColumns, name)
		}
	}
	sort.Strings(report.MissingColumns)
	return report, nil
}
