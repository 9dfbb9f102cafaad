package reconcile

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestSiteIndex(t *testing.T) {
	idx := NewSiteIndex([]SiteRecord{
		{NewCode: "N100", LegacyCode: "O100", Warehouse: "WH-A"},
		{LegacyCode: "A1", Warehouse: "WH-B"},
		{NewCode: "N100", Warehouse: "WH-DUP"},
		{NewCode: "A1", Warehouse: "WH-C"},
	})

	assert.Equal(t, 4, idx.Len())
	assert.Equal(t, []string{"new:N100"}, idx.Duplicates)

	rec, ok := idx.ByNewCode("N100")
	require.True(t, ok)
	assert.Equal(t, "WH-A", rec.Warehouse)

	rec, ok = idx.ByLegacyCode("A1")
	require.True(t, ok)
	assert.Equal(t, "WH-B", rec.Warehouse)

	rec, ok = idx.ByCode("A1")
	require.True(t, ok)
	assert.Equal(t, "WH-C", rec.Warehouse)

	_, ok = idx.ByNewCode("")
	assert.False(t, ok)
}

func TestSiteIndex_Resolve(t *testing.T) {
	idx := NewSiteIndex([]SiteRecord{
		{NewCode: "N100", LegacyCode: "O100", Warehouse: "WH-A"},
		{LegacyCode: "A1", Warehouse: "WH-B"},
	})

	tests := []struct {
		name   string
		origin Origin
		code   string
		space  CodeSpace
		want   string
	}{
		{"WebByNew", OriginWeb, "N100", CodeSpaceScoped, "WH-A"},
		{"WebIgnoresLegacy", OriginWeb, "A1", CodeSpaceScoped, ""},
		{"ManualByLegacy", OriginManual, "O100", CodeSpaceScoped, "WH-A"},
		{"ManualIgnoresNew", OriginManual, "N100", CodeSpaceScoped, ""},
		{"EitherWebLegacy", OriginWeb, "A1", CodeSpaceEither, "WH-B"},
		{"EitherManualNew", OriginManual, "N100", CodeSpaceEither, "WH-A"},
		{"UnknownOrigin", Origin("fax"), "N100", CodeSpaceScoped, ""},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			rec, _ := idx.Resolve(tt.origin, tt.code, tt.space)
			assert.Equal(t, tt.want, rec.Warehouse)
		})
	}
}
