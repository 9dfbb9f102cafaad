package checks

import (
	"fmt"
	"reflect"
	"strings"

	"picklist/core/database"

	"gorm.io/gorm"
)

// DatabaseReport is the result of a schema check.
type DatabaseReport struct {
	Matched bool                            `json:"matched"`
	Tables  map[string]database.TableReport `json:"tables"`
	Errors  []string                        `json:"errors"`
}

// CheckDatabase verifies that every model's table exists with the columns
// named in its gorm tags.
func CheckDatabase(db *gorm.DB, models ...any) (*DatabaseReport, error) {
	if db == nil {
		return nil, fmt.Errorf("database connection is nil")
	}

	report := &DatabaseReport{
		Matched: true,
		Tables:  make(map[string]database.TableReport),
		Errors:  []string{},
	}

	for _, model := range models {
		table, columns, err := ModelColumns(model)
		if err != nil {
			return nil, err
		}

		tbl, err := database.InspectTable(db, table, columns)
		if err != nil {
			report.Errors = append(report.Errors, fmt.Sprintf("Failed to inspect table %s: %v", table, err))
			report.Matched = false
			continue
		}
		if !tbl.OK() {
			report.Matched = false
		}
		report.Tables[table] = tbl
	}

	return report, nil
}

// FixDatabase creates or updates the tables of models.
func FixDatabase(db *gorm.DB, models ...any) error {
	if db == nil {
		return fmt.Errorf("database connection is nil")
	}
	if err := db.AutoMigrate(models...); err != nil {
		return fmt.Errorf("failed to migrate: %w", err)
	}
	return nil
}

// ModelColumns returns the table name and column names of a gorm model.
// Only fields with an explicit column tag are listed.
func ModelColumns(model any) (string, []string, error) {
	t := reflect.TypeOf(model)
	if t.Kind() == reflect.Ptr {
		t = t.Elem()
	}
	if t.Kind() != reflect.Struct {
		return "", nil, fmt.Errorf("model %s is not a struct", t)
	}

	tabler, ok := reflect.New(t).Interface().(interface{ TableName() string })
	if !ok {
		return "", nil, fmt.Errorf("model %s does not implement TableName", t.Name())
	}

	var columns []string
	for i := 0; i < t.NumField(); i++ {
		if col := parseGormColumn(t.Field(i).Tag.Get("gorm")); col != "" {
			columns = append(columns, col)
		}
	}
	return tabler.TableName(), columns, nil
}

func parseGormColumn(tag string) string {
	for _, p := range strings.Split(tag, ";") {
		if strings.HasPrefix(p, "column:") {
			return strings.TrimPrefix(p, "column:")
		}
	}
	return ""
}
