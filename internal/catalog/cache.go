package catalog

import (
	"context"
	"slices"
	"strconv"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// DefaultLoadTimeout bounds a shared fetch once it no longer follows any
// single caller's context.
const DefaultLoadTimeout = 30 * time.Second

// CachingLoader keeps the last successfully loaded catalog in memory for a
// fixed TTL. Concurrent loads while the cache is cold share one fetch.
// Failed loads are never cached.
type CachingLoader struct {
	next        Loader
	ttl         time.Duration
	loadTimeout time.Duration
	group       singleflight.Group
	now         func() time.Time

	mu         sync.RWMutex
	records    []VatRecord
	loadedAt   time.Time
	valid      bool
	generation uint64 // Bumped by Invalidate
}

// NewCachingLoader wraps next with a cache. A ttl of zero or less disables
// caching but still collapses concurrent loads.
func NewCachingLoader(next Loader, ttl time.Duration) *CachingLoader {
	return &CachingLoader{
		next:        next,
		ttl:         ttl,
		loadTimeout: DefaultLoadTimeout,
		now:         time.Now,
	}
}

// Load returns the cached catalog when fresh, otherwise loads it from the
// wrapped loader. Callers receive their own copy of the slice.
//
// A shared fetch is detached from the caller that started it: cancelling ctx
// abandons only this caller's wait.
func (c *CachingLoader) Load(ctx context.Context) ([]VatRecord, error) {
	records, gen, ok := c.cached()
	if ok {
		return records, nil
	}

	// Loads started after an Invalidate never join a flight from before it.
	ch := c.group.DoChan(strconv.FormatUint(gen, 10), func() (any, error) {
		loadCtx, cancel := context.WithTimeout(context.WithoutCancel(ctx), c.loadTimeout)
		defer cancel()

		records, err := c.next.Load(loadCtx)
		if err != nil {
			return nil, err
		}
		c.store(records, gen)
		return records, nil
	})

	select {
	case <-ctx.Done():
		return nil, ctx.Err()
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return slices.Clone(res.Val.([]VatRecord)), nil
	}
}

// Invalidate drops the cached catalog so the next Load re-fetches it.
// A load already in flight is not stored.
func (c *CachingLoader) Invalidate() {
	c.mu.Lock()
	c.records = nil
	c.valid = false
	c.generation++
	c.mu.Unlock()
}

// store caches records loaded during generation gen.
func (c *CachingLoader) store(records []VatRecord, gen uint64) {
	if c.ttl <= 0 {
		return
	}
	c.mu.Lock()
	defer c.mu.Unlock()
	if c.generation != gen {
		return
	}
	c.records = records
	c.loadedAt = c.now()
	c.valid = true
}

func (c *CachingLoader) cached() ([]VatRecord, uint64, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()
	if !c.valid || c.now().Sub(c.loadedAt) >= c.ttl {
		return nil, c.generation, false
	}
	return slices.Clone(c.records), c.generation, true
}
