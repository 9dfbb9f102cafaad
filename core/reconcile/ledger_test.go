package reconcile

import (
	"context"
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"
)

// memoryLedger is a map backed ledger.
type memoryLedger struct {
	records map[[2]string]string
	inserts int
}

func newMemoryLedger() *memoryLedger {
	return &memoryLedger{records: make(map[[2]string]string)}
}

func (m *memoryLedger) Exists(ctx context.Context, site, sku string) (bool, error) {
	_, ok := m.records[[2]string{site, sku}]
	return ok, nil
}

func (m *memoryLedger) Insert(ctx context.Context, site, sku, label string) error {
	m.inserts++
	m.records[[2]string{site, sku}] = label
	return nil
}

type mockLedger struct {
	mock.Mock
}

func (m *mockLedger) Exists(ctx context.Context, site, sku string) (bool, error) {
	args := m.Called(ctx, site, sku)
	return args.Bool(0), args.Error(1)
}

func (m *mockLedger) Insert(ctx context.Context, site, sku, label string) error {
	args := m.Called(ctx, site, sku, label)
	return args.Error(0)
}

func TestRecordIfAbsent(t *testing.T) {
	ctx := context.Background()
	ledger := newMemoryLedger()

	inserted, err := RecordIfAbsent(ctx, ledger, "N100", "S1", "auto")
	require.NoError(t, err)
	assert.True(t, inserted)

	inserted, err = RecordIfAbsent(ctx, ledger, "N100", "S1", "auto")
	require.NoError(t, err)
	assert.False(t, inserted)

	assert.Equal(t, 1, ledger.inserts)
	assert.Equal(t, "auto", ledger.records[[2]string{"N100", "S1"}])
}

func TestRecordIfAbsent_Errors(t *testing.T) {
	ctx := context.Background()

	t.Run("ExistsFails", func(t *testing.T) {
		ledger := new(mockLedger)
		ledger.On("Exists", ctx, "N1", "S1").Return(false, errors.New("timeout"))

		_, err := RecordIfAbsent(ctx, ledger, "N1", "S1", "auto")
		assert.ErrorContains(t, err, "check distribution N1/S1")
		ledger.AssertNotCalled(t, "Insert", mock.Anything, mock.Anything, mock.Anything, mock.Anything)
	})

	t.Run("InsertFails", func(t *testing.T) {
		ledger := new(mockLedger)
		ledger.On("Exists", ctx, "N1", "S1").Return(false, nil)
		ledger.On("Insert", ctx, "N1", "S1", "auto").Return(errors.New("read only"))

		inserted, err := RecordIfAbsent(ctx, ledger, "N1", "S1", "auto")
		assert.False(t, inserted)
		assert.ErrorContains(t, err, "read only")
		ledger.AssertExpectations(t)
	})
}

func TestDistribute(t *testing.T) {
	ctx := context.Background()
	ledger := newMemoryLedger()
	ledger.records[[2]string{"N2", "S1"}] = "earlier"

	valid := func(site, sku string) Line {
		return Line{OrderLine: OrderLine{SiteCode: site, SKUCode: sku}, Warehouse: "WH-A"}
	}
	lines := []Line{
		valid("N1", "S1"),
		valid("N1", "S1"),
		valid("N2", "S1"),
		{OrderLine: OrderLine{SiteCode: "N3", SKUCode: "S1"}, SiteInvalid: true},
		valid("N1", "S2"),
	}

	summary, err := Distribute(ctx, ledger, lines, "auto")
	require.NoError(t, err)
	assert.Equal(t, LedgerSummary{Inserted: 2, Skipped: 2}, summary)
	assert.Equal(t, 2, ledger.inserts)

	_, found := ledger.records[[2]string{"N3", "S1"}]
	assert.False(t, found)

	// A second run over the same lines inserts nothing.
	summary, err = Distribute(ctx, ledger, lines, "auto")
	require.NoError(t, err)
	assert.Equal(t, LedgerSummary{Inserted: 0, Skipped: 4}, summary)
}

func TestDistribute_StopsOnError(t *testing.T) {
	ctx := context.Background()
	ledger := new(mockLedger)
	ledger.On("Exists", ctx, "N1", "S1").Return(false, nil)
	ledger.On("Insert", ctx, "N1", "S1", "auto").Return(nil)
	ledger.On("Exists", ctx, "N2", "S1").Return(false, errors.New("gone"))

	lines := []Line{
		{OrderLine: OrderLine{SiteCode: "N1", SKUCode: "S1"}, Warehouse: "WH"},
		{OrderLine: OrderLine{SiteCode: "N2", SKUCode: "S1"}, Warehouse: "WH"},
		{OrderLine: OrderLine{SiteCode: "N3", SKUCode: "S1"}, Warehouse: "WH"},
	}
	summary, err := Distribute(ctx, ledger, lines, "auto")
	assert.Error(t, err)
	assert.Equal(t, 1, summary.Inserted)
	ledger.AssertNotCalled(t, "Exists", ctx, "N3", "S1")
}
