package repository

import (
	"context"
	"fmt"
	"time"

	"github.com/puzpuzpuz/xsync/v4"
	"github.com/robfig/cron/v3"
)

type cacheEntry struct {
	value     string
	expiresAt time.Time
}

// MemoryCache is a process-local CacheRepository. A zero ttl never expires.
type MemoryCache struct {
	data *xsync.Map[string, cacheEntry]
	ttl  time.Duration
	now  func() time.Time
}

func NewMemoryCache(ttl time.Duration) *MemoryCache {
	return &MemoryCache{
		data: xsync.NewMap[string, cacheEntry](),
		ttl:  ttl,
		now:  time.Now,
	}
}

func (m *MemoryCache) Get(_ context.Context, key string) (string, bool) {
	entry, ok := m.data.Load(key)
	if !ok {
		return "", false
	}
	if !entry.expiresAt.IsZero() && m.now().After(entry.expiresAt) {
		m.data.Delete(key)
		return "", false
	}
	return entry.value, true
}

func (m *MemoryCache) Set(_ context.Context, key string, value string) error {
	entry := cacheEntry{value: value}
	if m.ttl > 0 {
		entry.expiresAt = m.now().Add(m.ttl)
	}
	m.data.Store(key, entry)
	return nil
}

// ScheduleSweep registers periodic removal of expired entries on c.
func (m *MemoryCache) ScheduleSweep(c *cron.Cron, spec string) error {
	if _, err := c.AddFunc(spec, func() { m.Sweep() }); err != nil {
		return fmt.Errorf("register cache sweep: %w", err)
	}
	return nil
}

// Sweep deletes expired entries and returns how many were removed.
func (m *MemoryCache) Sweep() int {
	now := m.now()
	removed := 0
	m.data.Range(func(key string, _ cacheEntry) bool {
		m.data.Compute(key, func(old cacheEntry, loaded bool) (cacheEntry, xsync.ComputeOp) {
			if loaded && !old.expiresAt.IsZero() && now.After(old.expiresAt) {
				removed++
				return old, xsync.DeleteOp
			}
			return old, xsync.CancelOp
		})
		return true
	})
	return removed
}

// Size returns the number of stored entries, expired ones included.
func (m *MemoryCache) Size() int {
	return m.data.Size()
}
