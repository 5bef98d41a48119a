package cache

import (
	"fmt"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestCache(t *testing.T, cfg Config, options ...Option) Cache {
	t.Helper()
	c, err := New(cfg, options...)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestMemoryCache_BasicOperations(t *testing.T) {
	c := newTestCache(t, Config{})

	// Miss on empty cache
	value, ok := c.Get("key1")
	assert.False(t, ok)
	assert.Nil(t, value)

	// Round-trip
	assert.True(t, c.Set("key1", "value1"))
	value, ok = c.Get("key1")
	require.True(t, ok)
	assert.Equal(t, "value1", value)

	// Unconditional overwrite
	assert.True(t, c.Set("key1", "value1_updated"))
	value, ok = c.Get("key1")
	require.True(t, ok)
	assert.Equal(t, "value1_updated", value)

	// Delete
	assert.True(t, c.Delete("key1"))
	assert.False(t, c.Delete("key1"), "second delete should report absence")

	_, ok = c.Get("key1")
	assert.False(t, ok)
}

func TestMemoryCache_Exists(t *testing.T) {
	c := newTestCache(t, Config{TrackStats: true})

	assert.False(t, c.Exists("missing"))

	c.Set("present", 1)
	assert.True(t, c.Exists("present"))

	// Exists is a peek: it never moves the hit/miss counters.
	stats := c.Stats()
	assert.Zero(t, stats.Hits)
	assert.Zero(t, stats.Misses)
}

func TestMemoryCache_Expiry(t *testing.T) {
	c := newTestCache(t, Config{})

	c.SetWithTTL("session", "data", 50*time.Millisecond)

	value, ok := c.Get("session")
	require.True(t, ok)
	assert.Equal(t, "data", value)

	time.Sleep(75 * time.Millisecond)

	_, ok = c.Get("session")
	assert.False(t, ok, "entry should be absent after its TTL elapses")
	assert.False(t, c.Exists("session"))
	assert.Equal(t, 0, c.Size())
}

func TestMemoryCache_DefaultTTL(t *testing.T) {
	c := newTestCache(t, Config{DefaultTTL: 50 * time.Millisecond})

	c.Set("implicit", 1)

	_, hasTTL := c.TTL("implicit")
	assert.True(t, hasTTL, "default TTL should apply when none is given")

	time.Sleep(75 * time.Millisecond)
	assert.False(t, c.Exists("implicit"))

	// An explicit TTL of zero or less overrides the default: no expiry.
	c.SetWithTTL("pinned", 1, 0)
	_, hasTTL = c.TTL("pinned")
	assert.False(t, hasTTL)
}

func TestMemoryCache_TTLAndExpire(t *testing.T) {
	c := newTestCache(t, Config{})

	// No expiry configured
	c.Set("forever", 1)
	_, ok := c.TTL("forever")
	assert.False(t, ok)

	// Missing key
	_, ok = c.TTL("missing")
	assert.False(t, ok)
	assert.False(t, c.Expire("missing", time.Minute))

	// Remaining TTL is reported in whole seconds
	c.SetWithTTL("timed", 1, 90*time.Second)
	remaining, ok := c.TTL("timed")
	require.True(t, ok)
	assert.Equal(t, 90*time.Second, remaining)

	// Expire replaces the deadline on a live entry
	assert.True(t, c.Expire("forever", 60*time.Second))
	remaining, ok = c.TTL("forever")
	require.True(t, ok)
	assert.Equal(t, 60*time.Second, remaining)
}

func TestMemoryCache_TTLRoundsToNearestSecond(t *testing.T) {
	c := newTestCache(t, Config{})

	// A remainder past the half-second mark rounds up, not down.
	c.SetWithTTL("up", 1, 10*time.Second+700*time.Millisecond)
	remaining, ok := c.TTL("up")
	require.True(t, ok)
	assert.Equal(t, 11*time.Second, remaining)

	// A remainder under the half-second mark rounds down.
	c.SetWithTTL("down", 1, 10*time.Second+300*time.Millisecond)
	remaining, ok = c.TTL("down")
	require.True(t, ok)
	assert.Equal(t, 10*time.Second, remaining)
}

func TestMemoryCache_BatchOperations(t *testing.T) {
	c := newTestCache(t, Config{})

	count := c.SetMany(map[string]any{"a": 1, "b": 2, "c": 3})
	assert.Equal(t, 3, count)

	result := c.GetMany([]string{"a", "b", "missing"})
	assert.Equal(t, map[string]any{"a": 1, "b": 2}, result, "absent keys are omitted, not nil-valued")

	removed := c.DeleteMany([]string{"a", "b", "missing"})
	assert.Equal(t, 2, removed)
	assert.Equal(t, 1, c.Size())
}

func TestMemoryCache_SetManyWithTTL(t *testing.T) {
	c := newTestCache(t, Config{})

	c.SetManyWithTTL(map[string]any{"x": 1, "y": 2}, 50*time.Millisecond)
	assert.Equal(t, 2, c.Size())

	time.Sleep(75 * time.Millisecond)

	assert.Empty(t, c.GetMany([]string{"x", "y"}))
}

func TestMemoryCache_LRUEviction(t *testing.T) {
	c := newTestCache(t, Config{MaxSize: 3})

	c.Set("k1", 1)
	c.Set("k2", 2)
	c.Set("k3", 3)

	// Reading k1 protects it: recency counts for reads, not just writes.
	_, ok := c.Get("k1")
	require.True(t, ok)

	c.Set("k4", 4)

	assert.False(t, c.Exists("k2"), "k2 is the least recently used and should be evicted")
	assert.True(t, c.Exists("k1"))
	assert.True(t, c.Exists("k3"))
	assert.True(t, c.Exists("k4"))
	assert.Equal(t, 3, c.Size())
}

func TestMemoryCache_EvictionPrefersExpired(t *testing.T) {
	c := newTestCache(t, Config{MaxSize: 2, TrackStats: true})

	c.SetWithTTL("stale", 1, 30*time.Millisecond)
	c.Set("fresh", 2)
	time.Sleep(50 * time.Millisecond)

	// Inserting over the bound should drop the expired entry, not evict a
	// live one.
	c.Set("new", 3)

	assert.True(t, c.Exists("fresh"))
	assert.True(t, c.Exists("new"))
	assert.Zero(t, c.Stats().Evictions)
}

func TestMemoryCache_UnboundedWhenNoMaxSize(t *testing.T) {
	c := newTestCache(t, Config{})

	for i := 0; i < 1000; i++ {
		c.Set(fmt.Sprintf("key%d", i), i)
	}
	assert.Equal(t, 1000, c.Size())
}

func TestMemoryCache_EvictionCallback(t *testing.T) {
	var evicted []string
	c := newTestCache(t, Config{MaxSize: 2}, WithEvictionCallback(func(key string, _ any) {
		evicted = append(evicted, key)
	}))

	c.Set("x", 1)
	c.Set("y", 2)
	c.Set("z", 3) // evicts x

	require.Len(t, evicted, 1)
	assert.Equal(t, "x", evicted[0])
}

func TestMemoryCache_FlushAll(t *testing.T) {
	c := newTestCache(t, Config{})

	c.Set("a", 1)
	c.Set("b", 2)
	c.SetWithTTL("stale", 3, 30*time.Millisecond)
	time.Sleep(50 * time.Millisecond)

	// Only live entries count toward the flush total.
	assert.Equal(t, 2, c.FlushAll())
	assert.Equal(t, 0, c.Size())

	_, ok := c.Get("a")
	assert.False(t, ok)

	assert.Equal(t, 0, c.FlushAll())
}

func TestMemoryCache_Keys(t *testing.T) {
	c := newTestCache(t, Config{})

	assert.Empty(t, c.Keys())

	c.Set("first", 1)
	c.Set("second", 2)

	// Keys are ordered most recently used first.
	assert.Equal(t, []string{"second", "first"}, c.Keys())

	_, _ = c.Get("first")
	assert.Equal(t, []string{"first", "second"}, c.Keys())
}

func TestMemoryCache_PingAndClose(t *testing.T) {
	c := newTestCache(t, Config{})

	assert.True(t, c.Ping())
	require.NoError(t, c.Close())
	assert.False(t, c.Ping())
}

func TestNoopCache(t *testing.T) {
	c := NewNoop()

	assert.True(t, c.Set("k", 1))
	_, ok := c.Get("k")
	assert.False(t, ok, "noop cache always misses")
	assert.Equal(t, 0, c.Size())
	assert.True(t, c.Ping())
	assert.Zero(t, c.Stats())

	ns, err := c.WithNamespace("ns")
	require.NoError(t, err)
	_, ok = ns.Get("k")
	assert.False(t, ok)
}
