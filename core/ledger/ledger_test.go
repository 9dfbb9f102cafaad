package ledger

import (
	"context"
	"regexp"
	"sync"
	"testing"

	"picklist/core/database"
	"picklist/core/reconcile"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"gorm.io/driver/mysql"
	"gorm.io/gorm"
)

var _ reconcile.Ledger = (*Store)(nil)

func setupTestDB(t *testing.T) *gorm.DB {
	db, err := database.Connect(database.Config{Driver: "sqlite", Name: ":memory:"})
	require.NoError(t, err)
	require.NoError(t, Migrate(db))
	return db
}

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

func TestStore(t *testing.T) {
	ctx := context.Background()
	store := NewStore(setupTestDB(t))

	exists, err := store.Exists(ctx, "N100", "S1")
	require.NoError(t, err)
	assert.False(t, exists)

	require.NoError(t, store.Insert(ctx, "N100", "S1", "auto picking distribution"))
	exists, err = store.Exists(ctx, "N100", "S1")
	require.NoError(t, err)
	assert.True(t, exists)

	t.Run("DuplicateInsertIsNoop", func(t *testing.T) {
		require.NoError(t, store.Insert(ctx, "N100", "S1", "second"))

		records, err := store.List(ctx, "N100")
		require.NoError(t, err)
		require.Len(t, records, 1)
		assert.Equal(t, "auto picking distribution", records[0].ActivityName)
	})

	t.Run("PairsAreIndependent", func(t *testing.T) {
		exists, err := store.Exists(ctx, "N100", "S2")
		require.NoError(t, err)
		assert.False(t, exists)

		exists, err = store.Exists(ctx, "N200", "S1")
		require.NoError(t, err)
		assert.False(t, exists)
	})
}

func TestStore_WithDistribute(t *testing.T) {
	ctx := context.Background()
	store := NewStore(setupTestDB(t))

	line := reconcile.Line{
		OrderLine: reconcile.OrderLine{SiteCode: "N100", SKUCode: "S1"},
		Warehouse: "WH-A",
	}

	first, err := reconcile.Distribute(ctx, store, []reconcile.Line{line}, "auto")
	require.NoError(t, err)
	assert.Equal(t, reconcile.LedgerSummary{Inserted: 1}, first)

	second, err := reconcile.Distribute(ctx, store, []reconcile.Line{line}, "auto")
	require.NoError(t, err)
	assert.Equal(t, reconcile.LedgerSummary{Skipped: 1}, second)
}

func TestStore_ConcurrentInserts(t *testing.T) {
	ctx := context.Background()
	store := NewStore(setupTestDB(t))

	var wg sync.WaitGroup
	for i := 0; i < 8; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := reconcile.RecordIfAbsent(ctx, store, "N100", "S1", "auto")
			assert.NoError(t, err)
		}()
	}
	wg.Wait()

	records, err := store.List(ctx, "N100")
	require.NoError(t, err)
	assert.Len(t, records, 1)
}

func TestStore_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("Exists", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectQuery(regexp.QuoteMeta("SELECT count(*) FROM `activity_records`")).
			WillReturnError(assert.AnError)

		_, err := NewStore(db).Exists(ctx, "N1", "S1")
		assert.ErrorContains(t, err, "failed to query activity_records")
		assert.NoError(t, mock.ExpectationsWereMet())
	})

	t.Run("Insert", func(t *testing.T) {
		db, mock := setupMockDB(t)
		mock.ExpectBegin()
		mock.ExpectExec(regexp.QuoteMeta("INSERT INTO `activity_records`")).
			WillReturnError(assert.AnError)
		mock.ExpectRollback()

		err := NewStore(db).Insert(ctx, "N1", "S1", "auto")
		assert.ErrorContains(t, err, "failed to insert activity record")
		assert.NoError(t, mock.ExpectationsWereMet())
	})
}
