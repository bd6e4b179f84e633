package cache

import (
	"context"
	"fleet-ops-service/internal/domain"
	"sync"
	"time"
)

type memoryEntry struct {
	snap    domain.Snapshot
	expires time.Time
}

// Process-local snapshot cache, used when no Redis address is configured.
// Entries are copied on the way in and out so callers never share them.
type MemorySnapshotCache struct {
	mu      sync.Mutex
	entries map[string]memoryEntry
	now     func() time.Time
}

func NewMemorySnapshotCache() *MemorySnapshotCache {
	return &MemorySnapshotCache{entries: make(map[string]memoryEntry), now: time.Now}
}

func (c *MemorySnapshotCache) GetSnapshot(ctx context.Context, key string) (domain.Snapshot, bool, error) {
	c.mu.Lock()
	defer c.mu.Unlock()

	e, ok := c.entries[key]
	if !ok {
		return domain.Snapshot{}, false, nil
	}
	if !c.now().Before(e.expires) {
		delete(c.entries, key)
		return domain.Snapshot{}, false, nil
	}
	return e.snap.Clone(), true, nil
}

func (c *MemorySnapshotCache) PutSnapshot(ctx context.Context, key string, snap domain.Snapshot, ttl time.Duration) error {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	for k, e := range c.entries {
		if !now.Before(e.expires) {
			delete(c.entries, k)
		}
	}
	c.entries[key] = memoryEntry{snap: snap.Clone(), expires: now.Add(ttl)}
	return nil
}
