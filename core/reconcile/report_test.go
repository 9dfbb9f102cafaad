package reconcile

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestPickingListName(t *testing.T) {
	assert.Equal(t, "picking_WH-A.xlsx", PickingListName("WH-A"))
	assert.Equal(t, "picking_华东仓.xlsx", PickingListName("华东仓"))
	assert.Equal(t, "picking_North_East.xlsx", PickingListName("North/East"))
	assert.Equal(t, "picking_a_b.xlsx", PickingListName(`a\b`))
}

func TestResult_Reports(t *testing.T) {
	line := Line{
		OrderLine: OrderLine{
			Origin:   OriginWeb,
			SiteCode: "N100",
			SKUCode:  "S1",
			Quantity: decimal.NewFromInt(5),
			SiteName: "typed name",
			Extra:    map[string]string{"memo": "x"},
		},
		Warehouse:       "WH-A",
		ResolvedName:    "Station 100",
		OrderableStatus: marker,
	}
	bad := Line{
		OrderLine:   OrderLine{Origin: OriginManual, SiteCode: "ZZ", SKUCode: "S1", Quantity: decimal.NewFromInt(1), SiteName: "typed"},
		SiteInvalid: true,
	}
	res := &Result{
		Lines:        []Line{line, bad},
		Groups:       []WarehouseGroup{{Warehouse: "WH-A", Lines: []Line{line}}, {Warehouse: "WH-EMPTY"}},
		InvalidSite:  []Line{bad},
		ExtraColumns: []string{"memo"},
	}

	reports := res.Reports()
	require.Len(t, reports, 3)
	assert.Equal(t, "picking_WH-A.xlsx", reports[0].Name)
	assert.Equal(t, ReportInvalidSKU, reports[1].Name)
	assert.Equal(t, ReportInvalidSite, reports[2].Name)

	pick := reports[0].Table
	assert.Equal(t, append(append([]string(nil), reportColumns...), "memo"), pick.Header)
	require.Equal(t, 1, pick.Len())
	assert.Equal(t, "web", pick.Value(0, ColOrigin))
	assert.Equal(t, "5", pick.Value(0, ColQuantity))
	assert.Equal(t, "Station 100", pick.Value(0, ColSiteName))
	assert.Equal(t, "x", pick.Value(0, "memo"))
	assert.True(t, pick.Numeric[ColQuantity])

	assert.Equal(t, 0, reports[1].Table.Len())
	assert.Equal(t, "typed", reports[2].Table.Value(0, ColSiteName))
}
