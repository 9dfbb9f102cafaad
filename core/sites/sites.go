package sites

import (
	"fmt"

	"picklist/core/reconcile"
	"picklist/core/storage"

	"gorm.io/gorm"
)

// New returns the hosted site store named by cfg.SiteSource. The upload
// source has no hosted store: New returns nil and each run brings its own
// site sheet.
func New(cfg reconcile.Config, db *gorm.DB, client storage.Client, bucket string, maps reconcile.ColumnMap) (reconcile.SiteStore, error) {
	var store reconcile.SiteStore
	switch cfg.SiteSource {
	case reconcile.SiteSourceUpload, "":
		return nil, nil
	case reconcile.SiteSourceDatabase:
		if db == nil {
			return nil, fmt.Errorf("site source %q requires a database connection", cfg.SiteSource)
		}
		store = NewDBStore(db)
	case reconcile.SiteSourceStorage:
		if client == nil {
			return nil, fmt.Errorf("site source %q requires a storage client", cfg.SiteSource)
		}
		store = NewObjectStore(client, bucket, cfg.SiteObject, maps)
	default:
		return nil, fmt.Errorf("unknown site source %q", cfg.SiteSource)
	}

	if ttl := cfg.CacheTTL(); ttl > 0 {
		store = NewCachedStore(store, ttl)
	}
	return store, nil
}
