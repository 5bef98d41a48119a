package health

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/cachekit/cache"
	"github.com/c360/cachekit/errors"
)

func newHealthTestCache(t *testing.T, cfg cache.Config) cache.Cache {
	t.Helper()
	c, err := cache.New(cfg)
	require.NoError(t, err)
	t.Cleanup(func() { _ = c.Close() })
	return c
}

func TestCheckCache_Healthy(t *testing.T) {
	c := newHealthTestCache(t, cache.Config{TrackStats: true})
	c.Set("k", 1)
	c.Get("k")

	status := CheckCache("sessions", c, Thresholds{})

	assert.True(t, status.IsHealthy())
	assert.Equal(t, "sessions", status.Component)
	require.NotNil(t, status.Metrics)
	assert.Equal(t, 1, status.Metrics.Size)
	assert.Equal(t, 1.0, status.Metrics.HitRate)
}

func TestCheckCache_NilCache(t *testing.T) {
	status := CheckCache("missing", nil, Thresholds{})
	assert.True(t, status.IsUnhealthy())
}

func TestCheckCache_ClosedCacheIsUnhealthy(t *testing.T) {
	c, err := cache.New(cache.Config{})
	require.NoError(t, err)
	require.NoError(t, c.Close())

	status := CheckCache("closed", c, Thresholds{})
	assert.True(t, status.IsUnhealthy())
}

func TestCheckCache_LowHitRateDegrades(t *testing.T) {
	c := newHealthTestCache(t, cache.Config{TrackStats: true})
	c.Set("k", 1)

	// 1 hit, 3 misses: hit rate 0.25
	c.Get("k")
	c.Get("a")
	c.Get("b")
	c.Get("c")

	thresholds := Thresholds{MinHitRate: 0.5, MinSamples: 4}
	status := CheckCache("cold", c, thresholds)

	assert.True(t, status.IsDegraded())
	assert.Contains(t, status.Message, "hit rate")
}

func TestCheckCache_HitRateNeedsSamples(t *testing.T) {
	c := newHealthTestCache(t, cache.Config{TrackStats: true})
	c.Get("absent") // one miss, hit rate 0

	// Below the sample floor, low hit rate must not degrade
	status := CheckCache("warming", c, Thresholds{MinHitRate: 0.5, MinSamples: 10})
	assert.True(t, status.IsHealthy())
}

func TestCheckCache_NearCapacityDegrades(t *testing.T) {
	c := newHealthTestCache(t, cache.Config{MaxSize: 10})
	for _, key := range []string{"a", "b", "c", "d", "e", "f", "g", "h", "i"} {
		c.Set(key, 1)
	}

	thresholds := Thresholds{CapacityRatio: 0.9, MaxSize: 10}
	status := CheckCache("full", c, thresholds)

	assert.True(t, status.IsDegraded())
	assert.Contains(t, status.Message, "capacity")
}

func TestChecker_WatchProbesImmediately(t *testing.T) {
	monitor := NewMonitor()
	checker := NewChecker(monitor, time.Minute)

	c := newHealthTestCache(t, cache.Config{})
	checker.Watch("sessions", c, Thresholds{})

	status, exists := monitor.Get("sessions")
	require.True(t, exists)
	assert.True(t, status.IsHealthy())
}

func TestChecker_CheckNow(t *testing.T) {
	monitor := NewMonitor()
	checker := NewChecker(monitor, time.Minute)

	c, err := cache.New(cache.Config{})
	require.NoError(t, err)
	checker.Watch("sessions", c, Thresholds{})

	require.NoError(t, c.Close())
	checker.CheckNow()

	status, exists := monitor.Get("sessions")
	require.True(t, exists)
	assert.True(t, status.IsUnhealthy())
}

func TestChecker_Unwatch(t *testing.T) {
	monitor := NewMonitor()
	checker := NewChecker(monitor, time.Minute)

	c := newHealthTestCache(t, cache.Config{})
	checker.Watch("sessions", c, Thresholds{})
	checker.Unwatch("sessions")

	_, exists := monitor.Get("sessions")
	assert.False(t, exists)
	assert.Equal(t, 0, monitor.Count())
}

func TestChecker_StartStop(t *testing.T) {
	monitor := NewMonitor()
	checker := NewChecker(monitor, 10*time.Millisecond)

	c := newHealthTestCache(t, cache.Config{})
	checker.Watch("sessions", c, Thresholds{})

	require.NoError(t, checker.Start(context.Background()))

	err := checker.Start(context.Background())
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))

	// Let at least one periodic probe run
	time.Sleep(30 * time.Millisecond)

	require.NoError(t, checker.Stop())

	err = checker.Stop()
	require.Error(t, err)
	assert.True(t, errors.IsInvalid(err))
}

func TestChecker_AggregateThroughMonitor(t *testing.T) {
	monitor := NewMonitor()
	checker := NewChecker(monitor, time.Minute)

	healthy := newHealthTestCache(t, cache.Config{})
	closed, err := cache.New(cache.Config{})
	require.NoError(t, err)
	require.NoError(t, closed.Close())

	checker.Watch("good", healthy, Thresholds{})
	checker.Watch("bad", closed, Thresholds{})

	system := monitor.AggregateHealth("platform")
	assert.True(t, system.IsUnhealthy())
	assert.Len(t, system.SubStatuses, 2)
}
