package sites

import (
	"bytes"
	"context"

	"picklist/core/reconcile"
	"picklist/core/storage"
)

// ObjectStore reads the site table from a sheet in the storage bucket. Every
// FetchAll downloads the object again; wrap it in a CachedStore to reuse it.
type ObjectStore struct {
	client storage.Client
	bucket string
	object string
	maps   reconcile.ColumnMap
}

// NewObjectStore creates a store reading bucket/object.
func NewObjectStore(client storage.Client, bucket, object string, maps reconcile.ColumnMap) *ObjectStore {
	return &ObjectStore{client: client, bucket: bucket, object: object, maps: maps}
}

func (s *ObjectStore) FetchAll(ctx context.Context) ([]reconcile.SiteRecord, error) {
	data, err := storage.ReadAll(ctx, s.client, s.bucket, s.object)
	if err != nil {
		return nil, err
	}
	return ReadSheet(s.object, bytes.NewReader(data), s.maps)
}

func (s *ObjectStore) FetchByNewCode(ctx context.Context, code string) (*reconcile.SiteRecord, error) {
	return s.lookup(ctx, func(idx *reconcile.SiteIndex) (reconcile.SiteRecord, bool) { return idx.ByNewCode(code) })
}

func (s *ObjectStore) FetchByLegacyCode(ctx context.Context, code string) (*reconcile.SiteRecord, error) {
	return s.lookup(ctx, func(idx *reconcile.SiteIndex) (reconcile.SiteRecord, bool) { return idx.ByLegacyCode(code) })
}

func (s *ObjectStore) FetchByCode(ctx context.Context, code string) (*reconcile.SiteRecord, error) {
	return s.lookup(ctx, func(idx *reconcile.SiteIndex) (reconcile.SiteRecord, bool) { return idx.ByCode(code) })
}

func (s *ObjectStore) lookup(ctx context.Context, find func(*reconcile.SiteIndex) (reconcile.SiteRecord, bool)) (*reconcile.SiteRecord, error) {
	records, err := s.FetchAll(ctx)
	if err != nil {
		return nil, err
	}
	return found(find(reconcile.NewSiteIndex(records)))
}
