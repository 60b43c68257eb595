// Package assets caches background template images that are fetched from
// an external source by asset ID.
package assets

import (
	"context"
	"log"
	"sync"

	"golang.org/x/sync/singleflight"
)

// Cache keeps fetched assets for the life of the process. Entries stay until
// they are invalidated explicitly.
type Cache struct {
	fetcher Fetcher

	mu      sync.RWMutex
	entries map[string][]byte
	// gens counts invalidations per requested asset. A fetch only stores
	// its result when the generation it started under is still current.
	gens  map[string]uint64
	epoch uint64
	group singleflight.Group
}

func NewCache(fetcher Fetcher) *Cache {
	return &Cache{
		fetcher: fetcher,
		entries: make(map[string][]byte),
		gens:    make(map[string]uint64),
	}
}

// Get returns the cached bytes of an asset, fetching them on first use.
// Concurrent misses for the same ID share one fetch, which is not cancelled
// when one of the waiting callers gives up. The returned slice must not be
// modified.
func (c *Cache) Get(ctx context.Context, assetID string) ([]byte, error) {
	c.mu.RLock()
	data, ok := c.entries[assetID]
	c.mu.RUnlock()
	if ok {
		return data, nil
	}
	c.mu.Lock()
	if _, seen := c.gens[assetID]; !seen {
		c.gens[assetID] = 0
	}
	c.mu.Unlock()

	fetchCtx := context.WithoutCancel(ctx)
	ch := c.group.DoChan(assetID, func() (interface{}, error) {
		c.mu.RLock()
		cached, ok := c.entries[assetID]
		gen := c.generation(assetID)
		c.mu.RUnlock()
		if ok {
			return cached, nil
		}

		log.Printf("Fetching background asset %s", assetID)
		fetched, err := c.fetcher.Fetch(fetchCtx, assetID)
		if err != nil {
			return nil, err
		}
		c.mu.Lock()
		if c.generation(assetID) == gen {
			c.entries[assetID] = fetched
		} else {
			log.Printf("Background asset %s was invalidated during fetch, not caching", assetID)
		}
		c.mu.Unlock()
		return fetched, nil
	})

	select {
	case res := <-ch:
		if res.Err != nil {
			return nil, res.Err
		}
		return res.Val.([]byte), nil
	case <-ctx.Done():
		return nil, ctx.Err()
	}
}

// generation must be called with mu held.
func (c *Cache) generation(assetID string) uint64 {
	return c.epoch + c.gens[assetID]
}

// Cached reports whether an asset is currently held.
func (c *Cache) Cached(assetID string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[assetID]
	return ok
}

// Invalidate drops one asset so the next Get fetches it again. A fetch
// already in flight for the ID still answers its callers but is not cached.
func (c *Cache) Invalidate(assetID string) {
	c.mu.Lock()
	delete(c.entries, assetID)
	if _, seen := c.gens[assetID]; seen {
		c.gens[assetID]++
	}
	c.mu.Unlock()
	c.group.Forget(assetID)
}

// InvalidateAll empties the cache, including assets still being fetched.
func (c *Cache) InvalidateAll() {
	c.mu.Lock()
	ids := make([]string, 0, len(c.gens))
	for id := range c.gens {
		ids = append(ids, id)
	}
	c.entries = make(map[string][]byte)
	c.epoch++
	c.mu.Unlock()

	for _, id := range ids {
		c.group.Forget(id)
	}
}
