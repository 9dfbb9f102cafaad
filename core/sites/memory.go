package sites

import (
	"context"

	"picklist/core/reconcile"
)

// MemoryStore serves a fixed set of records.
type MemoryStore struct {
	index *reconcile.SiteIndex
}

// NewMemoryStore indexes records.
func NewMemoryStore(records []reconcile.SiteRecord) *MemoryStore {
	return &MemoryStore{index: reconcile.NewSiteIndex(records)}
}

func (s *MemoryStore) FetchAll(ctx context.Context) ([]reconcile.SiteRecord, error) {
	return s.index.All(), nil
}

func (s *MemoryStore) FetchByNewCode(ctx context.Context, code string) (*reconcile.SiteRecord, error) {
	return found(s.index.ByNewCode(code))
}

func (s *MemoryStore) FetchByLegacyCode(ctx context.Context, code string) (*reconcile.SiteRecord, error) {
	return found(s.index.ByLegacyCode(code))
}

func (s *MemoryStore) FetchByCode(ctx context.Context, code string) (*reconcile.SiteRecord, error) {
	return found(s.index.ByCode(code))
}

func found(rec reconcile.SiteRecord, ok bool) (*reconcile.SiteRecord, error) {
	if !ok {
		return nil, nil
	}
	return &rec, nil
}
