package sheet_test

import (
	"bytes"
	"strings"
	"testing"

	"picklist/core/sheet"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"github.com/xuri/excelize/v2"
)

func TestWriteThenReadXLSX(t *testing.T) {
	tbl := sheet.NewTable("site_code", "sku_code", "quantity")
	tbl.Numeric = map[string]bool{"quantity": true}
	tbl.Append([]string{"N100", "S1", "5"})
	tbl.Append([]string{"N200", "S2"})

	data, err := sheet.EncodeXLSX(tbl)
	require.NoError(t, err)

	got, err := sheet.ReadXLSX(bytes.NewReader(data))
	require.NoError(t, err)

	assert.Equal(t, []string{"site_code", "sku_code", "quantity"}, got.Header)
	require.Equal(t, 2, got.Len())
	assert.Equal(t, []string{"N100", "S1", "5"}, got.Rows[0])
	assert.Equal(t, []string{"N200", "S2", ""}, got.Rows[1])
}

func TestWriteXLSX_NumericCells(t *testing.T) {
	tbl := sheet.NewTable("quantity", "note")
	tbl.Numeric = map[string]bool{"quantity": true}
	tbl.Append([]string{"12.5", "7"})

	data, err := sheet.EncodeXLSX(tbl)
	require.NoError(t, err)

	f, err := excelize.OpenReader(bytes.NewReader(data))
	require.NoError(t, err)
	defer f.Close()

	qty, err := f.GetCellType("Sheet1", "A2")
	require.NoError(t, err)
	assert.NotEqual(t, excelize.CellTypeSharedString, qty)

	note, err := f.GetCellType("Sheet1", "B2")
	require.NoError(t, err)
	assert.Contains(t, []excelize.CellType{excelize.CellTypeSharedString, excelize.CellTypeInlineString}, note)
}

func TestWriteXLSX_EmptyTableKeepsHeader(t *testing.T) {
	data, err := sheet.EncodeXLSX(sheet.NewTable("origin", "site_code"))
	require.NoError(t, err)

	got, err := sheet.ReadXLSX(bytes.NewReader(data))
	require.NoError(t, err)
	assert.Equal(t, []string{"origin", "site_code"}, got.Header)
	assert.Zero(t, got.Len())
}

func TestReadCSV(t *testing.T) {
	in := "\ufeff商品编码 ,油站订货目录\nS1,油站可订\n,\nS2\n"

	got, err := sheet.Read("master.CSV", strings.NewReader(in))
	require.NoError(t, err)

	assert.Equal(t, []string{"商品编码", "油站订货目录"}, got.Header)
	require.Equal(t, 2, got.Len())
	assert.Equal(t, "油站可订", got.Value(0, "油站订货目录"))
	assert.Equal(t, "", got.Value(1, "油站订货目录"))
}

func TestRead_SourceRows(t *testing.T) {
	t.Run("CSVSkipsEmptyLines", func(t *testing.T) {
		in := "site,sku,qty\nN1,S1,1\n\n,,\nN2,S2,abc\n"
		got, err := sheet.Read("web.csv", strings.NewReader(in))
		require.NoError(t, err)

		require.Equal(t, 2, got.Len())
		assert.Equal(t, 2, got.RowNumber(0))
		assert.Equal(t, 5, got.RowNumber(1))
	})

	t.Run("XLSXBlankRow", func(t *testing.T) {
		f := excelize.NewFile()
		defer f.Close()
		sh := f.GetSheetName(0)
		require.NoError(t, f.SetSheetRow(sh, "A1", &[]any{"site", "sku", "qty"}))
		require.NoError(t, f.SetSheetRow(sh, "A2", &[]any{"N1", "S1", 1}))
		require.NoError(t, f.SetSheetRow(sh, "A4", &[]any{"N2", "S2", "abc"}))
		var buf bytes.Buffer
		require.NoError(t, f.Write(&buf))

		got, err := sheet.Read("web.xlsx", &buf)
		require.NoError(t, err)

		require.Equal(t, 2, got.Len())
		assert.Equal(t, 2, got.RowNumber(0))
		assert.Equal(t, 4, got.RowNumber(1))
	})

	t.Run("InMemoryTable", func(t *testing.T) {
		tbl := sheet.NewTable("a")
		tbl.Append([]string{"1"})
		assert.Equal(t, 2, tbl.RowNumber(0))
	})
}

func TestRead_Errors(t *testing.T) {
	t.Run("NotAWorkbook", func(t *testing.T) {
		_, err := sheet.Read("orders.xlsx", strings.NewReader("plain text"))
		assert.Error(t, err)
	})

	t.Run("EmptyCSV", func(t *testing.T) {
		_, err := sheet.Read("orders.csv", strings.NewReader(""))
		assert.ErrorIs(t, err, sheet.ErrEmpty)
	})
}

func TestTable_Value(t *testing.T) {
	tbl := sheet.NewTable("a", "b")
	tbl.Append([]string{"1", "2", "3"})

	assert.Equal(t, []string{"1", "2"}, tbl.Rows[0])
	assert.Equal(t, "2", tbl.Value(0, "b"))
	assert.Equal(t, "", tbl.Value(0, "c"))
	assert.Equal(t, "", tbl.Value(3, "a"))
	assert.True(t, tbl.Has("a"))
	assert.False(t, tbl.Has("z"))
}
