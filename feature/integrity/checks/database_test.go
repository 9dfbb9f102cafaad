package checks

import (
	"regexp"
	"testing"

	"picklist/core/database"
	"picklist/core/ledger"
	"picklist/core/sites"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

func setupMockDB(t *testing.T) (*gorm.DB, sqlmock.Sqlmock) {
	db, mock, err := sqlmock.New()
	if err != nil {
		t.Fatalf("Failed to open mock sql db: %v", err)
	}

	dialector := mysql.New(mysql.Config{
		Conn:                      db,
		SkipInitializeWithVersion: true,
	})

	gormDB, err := gorm.Open(dialector, &gorm.Config{})
	if err != nil {
		t.Fatalf("Failed to open gorm db: %v", err)
	}

	return gormDB, mock
}

func TestModelColumns(t *testing.T) {
	table, cols, err := ModelColumns(ledger.Record{})
	require.NoError(t, err)
	assert.Equal(t, "activity_records", table)
	assert.Equal(t, []string{"id", "site_code", "sku_code", "activity_name", "created_at"}, cols)

	table, cols, err = ModelColumns(&sites.Site{})
	require.NoError(t, err)
	assert.Equal(t, "sites", table)
	assert.Contains(t, cols, "old_code")

	_, _, err = ModelColumns(struct{ A int }{})
	assert.ErrorContains(t, err, "does not implement TableName")
}

func TestCheckDatabase_NilDB(t *testing.T) {
	report, err := CheckDatabase(nil, sites.Site{})
	assert.Error(t, err)
	assert.Nil(t, report)
}

func TestCheckDatabase_SQLite(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)

	report, err := CheckDatabase(db, sites.Site{}, ledger.Record{})
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.False(t, report.Tables["sites"].Exists)
	assert.Contains(t, report.Tables["activity_records"].MissingColumns, "sku_code")

	require.NoError(t, FixDatabase(db, sites.Site{}, ledger.Record{}))

	report, err = CheckDatabase(db, sites.Site{}, ledger.Record{})
	require.NoError(t, err)
	assert.True(t, report.Matched)
	assert.Empty(t, report.Tables["sites"].MissingColumns)
}

func TestCheckDatabase_MissingColumn(t *testing.T) {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, db.Exec(`CREATE TABLE activity_records (id INTEGER PRIMARY KEY, site_code TEXT, sku_code TEXT)`).Error)

	report, err := CheckDatabase(db, ledger.Record{})
	require.NoError(t, err)
	assert.False(t, report.Matched)
	assert.Equal(t, []string{"activity_name", "created_at"}, report.Tables["activity_records"].MissingColumns)
}

func TestCheckDatabase_QueryError(t *testing.T) {
	db, mock := setupMockDB(t)
	mock.ExpectQuery(regexp.QuoteMeta("SELECT DATABASE()")).
		WillReturnRows(sqlmock.NewRows([]string{"DATABASE()"}).AddRow("picklist"))
	mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM information_schema.tables")).
		WillReturnRows(sqlmock.NewRows([]string{"count"}).AddRow(1))
	mock.ExpectQuery(regexp.QuoteMeta("SHOW COLUMNS FROM `activity_records`")).
		WillReturnError(assert.AnError)

	report, err := CheckDatabase(db, ledger.Record{})
	require.NoError(t, err)
	assert.False(t, report.Matched)
	require.Len(t, report.Errors, 1)
	assert.Contains(t, report.Errors[0], "activity_records")
}
