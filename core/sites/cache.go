package sites

import (
	"context"
	"sync"
	"time"

	"picklist/core/reconcile"

	"golang.org/x/sync/singleflight"
)

// loadTimeout bounds a shared fetch, which no single caller can cancel.
const loadTimeout = time.Minute

// CachedStore keeps an indexed copy of another store's table for a fixed
// time. Concurrent misses share one fetch.
type CachedStore struct {
	next reconcile.SiteStore
	ttl  time.Duration
	now  func() time.Time

	mu    sync.RWMutex
	index *reconcile.SiteIndex
	built time.Time
	sf    singleflight.Group
}

// NewCachedStore wraps next. A zero ttl disables caching.
func NewCachedStore(next reconcile.SiteStore, ttl time.Duration) *CachedStore {
	return &CachedStore{next: next, ttl: ttl, now: time.Now}
}

func (c *CachedStore) expired() bool {
	if c.ttl == 0 || c.index == nil {
		return true
	}
	return c.now().Sub(c.built) > c.ttl
}

func (c *CachedStore) load(ctx context.Context) (*reconcile.SiteIndex, error) {
	c.mu.RLock()
	if !c.expired() {
		idx := c.index
		c.mu.RUnlock()
		return idx, nil
	}
	c.mu.RUnlock()

	// The fetch outlives the caller that started it; every waiter gives up on
	// its own context instead.
	ch := c.sf.DoChan("sites", func() (interface{}, error) {
		c.mu.RLock()
		if !c.expired() {
			idx := c.index
			c.mu.RUnlock()
			return idx, nil
		}
		c.mu.RUnlock()

		fetchCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), loadTimeout)
		defer cancel()
		records, err := c.next.FetchAll(fetchCtx)
		if err != nil {
			return nil, err
		}
		idx := reconcile.NewSiteIndex(records)

		c.mu.Lock()
		c.index = idx
		c.built = c.now()
		c.mu.Unlock()
		return idx, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.(*reconcile.SiteIndex), nil
	}
}

// Invalidate drops the cached table.
func (c *CachedStore) Invalidate() {
	c.mu.Lock()
	c.index = nil
	c.mu.Unlock()
}

func (c *CachedStore) FetchAll(ctx context.Context) ([]reconcile.SiteRecord, error) {
	idx, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	return idx.All(), nil
}

func (c *CachedStore) FetchByNewCode(ctx context.Context, code string) (*reconcile.SiteRecord, error) {
	idx, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	return found(idx.ByNewCode(code))
}

func (c *CachedStore) FetchByLegacyCode(ctx context.Context, code string) (*reconcile.SiteRecord, error) {
	idx, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	return found(idx.ByLegacyCode(code))
}

func (c *CachedStore) FetchByCode(ctx context.Context, code string) (*reconcile.SiteRecord, error) {
	idx, err := c.load(ctx)
	if err != nil {
		return nil, err
	}
	return found(idx.ByCode(code))
}
