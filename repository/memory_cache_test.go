package repository

import (
	"context"
	"fmt"
	"testing"
	"time"

	"github.com/robfig/cron/v3"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestMemoryCache_SetGet(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(0)

	_, ok := cache.Get(ctx, "missing")
	assert.False(t, ok)

	require.NoError(t, cache.Set(ctx, "k", "v"))
	got, ok := cache.Get(ctx, "k")
	assert.True(t, ok)
	assert.Equal(t, "v", got)
	assert.Equal(t, 1, cache.Size())
}

func TestMemoryCache_Expiry(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := NewMemoryCache(time.Minute)
	cache.now = func() time.Time { return now }

	require.NoError(t, cache.Set(ctx, "k", "v"))

	now = now.Add(30 * time.Second)
	_, ok := cache.Get(ctx, "k")
	assert.True(t, ok)

	now = now.Add(time.Minute)
	_, ok = cache.Get(ctx, "k")
	assert.False(t, ok)
	assert.Equal(t, 0, cache.Size())
}

func TestMemoryCache_SweepRemovesExpired(t *testing.T) {
	ctx := context.Background()
	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	cache := NewMemoryCache(time.Minute)
	cache.now = func() time.Time { return now }

	for i := 0; i < 1000; i++ {
		require.NoError(t, cache.Set(ctx, fmt.Sprintf("k%d", i), "v"))
	}
	assert.Equal(t, 0, cache.Sweep())
	assert.Equal(t, 1000, cache.Size())

	now = now.Add(30 * time.Second)
	require.NoError(t, cache.Set(ctx, "fresh", "v"))

	now = now.Add(45 * time.Second)
	assert.Equal(t, 1000, cache.Sweep())
	assert.Equal(t, 1, cache.Size())

	_, ok := cache.Get(ctx, "fresh")
	assert.True(t, ok)
}

func TestMemoryCache_SweepKeepsEntriesWithoutTTL(t *testing.T) {
	ctx := context.Background()
	cache := NewMemoryCache(0)
	require.NoError(t, cache.Set(ctx, "k", "v"))

	cache.now = func() time.Time { return time.Now().Add(24 * time.Hour) }
	assert.Equal(t, 0, cache.Sweep())
	assert.Equal(t, 1, cache.Size())
}

func TestMemoryCache_ScheduleSweep(t *testing.T) {
	cache := NewMemoryCache(time.Minute)
	assert.NoError(t, cache.ScheduleSweep(cron.New(), "@every 1m"))
	assert.Error(t, cache.ScheduleSweep(cron.New(), "not a schedule"))
}
