package catalog

import (
	"context"
	"sync"
	"time"

	"golang.org/x/sync/singleflight"
)

// Cache holds built snapshots keyed by date window. Orders are read-only, so
// a stale snapshot is acceptable within the TTL; ledger counts are always
// queried live.
type Cache struct {
	loader *Loader
	ttl    time.Duration

	mu        sync.RWMutex
	snapshots map[string]*cachedSnapshot
	sf        singleflight.Group
}

type cachedSnapshot struct {
	snapshot *Snapshot
	built    time.Time
}

func (c *cachedSnapshot) expired(ttl time.Duration) bool {
	if ttl == 0 {
		return true
	}
	return time.Since(c.built) > ttl
}

// NewCache creates a snapshot cache around a loader. A zero TTL disables
// caching and every call hits the ERP database.
func NewCache(loader *Loader, ttl time.Duration) *Cache {
	return &Cache{
		loader:    loader,
		ttl:       ttl,
		snapshots: make(map[string]*cachedSnapshot),
	}
}

// SnapshotForDay returns the snapshot for a calendar day, building it at most
// once per TTL window even under concurrent callers.
func (c *Cache) SnapshotForDay(ctx context.Context, day time.Time) (*Snapshot, error) {
	key := day.Format("2006-01-02")

	c.mu.RLock()
	cached, ok := c.snapshots[key]
	c.mu.RUnlock()
	if ok && !cached.expired(c.ttl) {
		return cached.snapshot, nil
	}

	result, err, _ := c.sf.Do(key, func() (any, error) {
		// Re-check after winning the flight; a concurrent build may have
		// refreshed the entry while this caller waited.
		c.mu.RLock()
		cached, ok := c.snapshots[key]
		c.mu.RUnlock()
		if ok && !cached.expired(c.ttl) {
			return cached.snapshot, nil
		}

		orders, err := c.loader.LoadDay(ctx, day)
		if err != nil {
			return nil, err
		}
		snapshot := NewSnapshot(orders)

		if c.ttl > 0 {
			c.mu.Lock()
			c.snapshots[key] = &cachedSnapshot{snapshot: snapshot, built: time.Now()}
			c.mu.Unlock()
		}
		return snapshot, nil
	})
	if err != nil {
		return nil, err
	}
	return result.(*Snapshot), nil
}

// Invalidate drops the cached snapshot for a day.
func (c *Cache) Invalidate(day time.Time) {
	c.mu.Lock()
	delete(c.snapshots, day.Format("2006-01-02"))
	c.mu.Unlock()
}
