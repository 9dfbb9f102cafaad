package reconcile

import (
	"fmt"
	"os"

	"gopkg.in/yaml.v3"
)

// Canonical column names shared by every input channel.
const (
	ColSiteCode    = "site_code"
	ColSKUCode     = "sku_code"
	ColQuantity    = "quantity"
	ColProductName = "product_name"
	ColSiteName    = "site_name"
	ColOrderable   = "orderable_status"
	ColNewCode     = "new_code"
	ColLegacyCode  = "legacy_code"
	ColWarehouse   = "warehouse"
	ColName        = "name"
	ColCompany     = "company"
	ColOrigin      = "origin"
)

// Channel names used in errors and logs.
const (
	ChannelWeb    = "web"
	ChannelManual = "manual"
	ChannelMaster = "master"
	ChannelSites  = "sites"
)

// ColumnMap renames source headers to canonical names.
type ColumnMap map[string]string

// ColumnMaps holds one rename map per input channel.
type ColumnMaps struct {
	Web    ColumnMap `yaml:"web"`
	Manual ColumnMap `yaml:"manual"`
	Master ColumnMap `yaml:"master"`
	Sites  ColumnMap `yaml:"sites"`
}

// DefaultColumnMaps returns the headers produced by the storefront export,
// the partner-station template, the SKU master and the site table.
func DefaultColumnMaps() ColumnMaps {
	return ColumnMaps{
		Web: ColumnMap{
			"收货组织编码": ColSiteCode,
			"商品编码":   ColSKUCode,
			"商品名称":   ColProductName,
			"订货数量":   ColQuantity,
		},
		Manual: ColumnMap{
			"油站编码": ColSiteCode,
			"商品编码": ColSKUCode,
			"订货数量": ColQuantity,
		},
		Master: ColumnMap{
			"商品编码":   ColSKUCode,
			"油站订货目录": ColOrderable,
		},
		Sites: ColumnMap{
			"site_code": ColNewCode,
			"old_code":  ColLegacyCode,
			"新编码":       ColNewCode,
			"旧编码":       ColLegacyCode,
			"仓库":        ColWarehouse,
			"站点名称":      ColName,
			"公司":        ColCompany,
		},
	}
}

// LoadColumnMaps reads a YAML file of per-channel renames and layers it over
// the defaults. An empty path returns the defaults.
func LoadColumnMaps(path string) (ColumnMaps, error) {
	maps := DefaultColumnMaps()
	if path == "" {
		return maps, nil
	}

	data, err := os.ReadFile(path)
	if err != nil {
		return maps, fmt.Errorf("failed to read column map file: %w", err)
	}

	var override ColumnMaps
	if err := yaml.Unmarshal(data, &override); err != nil {
		return maps, fmt.Errorf("failed to parse column map file %s: %w", path, err)
	}

	merge(maps.Web, override.Web)
	merge(maps.Manual, override.Manual)
	merge(maps.Master, override.Master)
	merge(maps.Sites, override.Sites)
	return maps, nil
}

func merge(dst, src ColumnMap) {
	for k, v := range src {
		dst[k] = v
	}
}
