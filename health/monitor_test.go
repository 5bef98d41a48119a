package health

import (
	"sync"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/c360/cachekit/cache"
)

func TestMonitor_UpdateFromCacheCheck(t *testing.T) {
	monitor := NewMonitor()

	c := newHealthTestCache(t, cache.Config{TrackStats: true})
	c.Set("token", 1)
	c.Get("token")

	monitor.Update("sessions", CheckCache("sessions", c, Thresholds{}))

	status, exists := monitor.Get("sessions")
	require.True(t, exists)
	assert.True(t, status.IsHealthy())
	assert.Equal(t, "sessions", status.Component)
	assert.False(t, status.Timestamp.IsZero())
	require.NotNil(t, status.Metrics)
	assert.Equal(t, 1, status.Metrics.Size)
}

func TestMonitor_UpdateOverridesComponentName(t *testing.T) {
	monitor := NewMonitor()

	c := newHealthTestCache(t, cache.Config{})

	// The registered name wins over whatever the status carries, so a
	// cache probed under one name can be tracked under another.
	monitor.Update("profiles-replica", CheckCache("profiles", c, Thresholds{}))

	status, exists := monitor.Get("profiles-replica")
	require.True(t, exists)
	assert.Equal(t, "profiles-replica", status.Component)

	_, exists = monitor.Get("profiles")
	assert.False(t, exists)
}

func TestMonitor_ConvenienceUpdates(t *testing.T) {
	monitor := NewMonitor()

	monitor.UpdateHealthy("sessions", "cache responding")
	monitor.UpdateDegraded("profiles", "hit rate below threshold")
	monitor.UpdateUnhealthy("counters", "cache did not respond to ping")

	status, _ := monitor.Get("sessions")
	assert.True(t, status.IsHealthy())
	assert.Equal(t, "cache responding", status.Message)

	status, _ = monitor.Get("profiles")
	assert.True(t, status.IsDegraded())

	status, _ = monitor.Get("counters")
	assert.True(t, status.IsUnhealthy())
}

func TestMonitor_GetMissing(t *testing.T) {
	monitor := NewMonitor()

	_, exists := monitor.Get("sessions")
	assert.False(t, exists)
}

func TestMonitor_GetAllReturnsCopy(t *testing.T) {
	monitor := NewMonitor()

	assert.Empty(t, monitor.GetAll())

	monitor.UpdateHealthy("sessions", "ok")
	monitor.UpdateDegraded("profiles", "near capacity")

	all := monitor.GetAll()
	require.Len(t, all, 2)
	assert.Contains(t, all, "sessions")
	assert.Contains(t, all, "profiles")

	// Mutating the returned map must not leak into the monitor.
	all["sessions"] = Status{Component: "tampered"}
	status, _ := monitor.Get("sessions")
	assert.Equal(t, "sessions", status.Component)
}

func TestMonitor_Remove(t *testing.T) {
	monitor := NewMonitor()

	monitor.Remove("absent") // no-op

	monitor.UpdateHealthy("sessions", "ok")
	require.Equal(t, 1, monitor.Count())

	monitor.Remove("sessions")
	assert.Equal(t, 0, monitor.Count())
	_, exists := monitor.Get("sessions")
	assert.False(t, exists)
}

func TestMonitor_AggregateHealth(t *testing.T) {
	monitor := NewMonitor()

	// Nothing registered yet counts as healthy.
	aggregate := monitor.AggregateHealth("platform")
	assert.True(t, aggregate.IsHealthy())
	assert.Equal(t, "platform", aggregate.Component)

	live := newHealthTestCache(t, cache.Config{})
	monitor.Update("sessions", CheckCache("sessions", live, Thresholds{}))
	monitor.Update("profiles", CheckCache("profiles", live, Thresholds{}))

	aggregate = monitor.AggregateHealth("platform")
	assert.True(t, aggregate.IsHealthy())
	assert.Len(t, aggregate.SubStatuses, 2)

	// One closed cache drags the whole platform down.
	closed, err := cache.New(cache.Config{})
	require.NoError(t, err)
	require.NoError(t, closed.Close())
	monitor.Update("counters", CheckCache("counters", closed, Thresholds{}))

	aggregate = monitor.AggregateHealth("platform")
	assert.True(t, aggregate.IsUnhealthy())

	// Degraded without unhealthy aggregates as degraded.
	monitor.Remove("counters")
	monitor.UpdateDegraded("counters", "hit rate below threshold")

	aggregate = monitor.AggregateHealth("platform")
	assert.True(t, aggregate.IsDegraded())
}

func TestMonitor_ListComponents(t *testing.T) {
	monitor := NewMonitor()

	assert.Empty(t, monitor.ListComponents())

	monitor.UpdateHealthy("sessions", "ok")
	monitor.UpdateUnhealthy("counters", "ping failed")

	components := monitor.ListComponents()
	assert.ElementsMatch(t, []string{"sessions", "counters"}, components)
}

func TestMonitor_Clear(t *testing.T) {
	monitor := NewMonitor()

	monitor.UpdateHealthy("sessions", "ok")
	monitor.UpdateDegraded("profiles", "near capacity")
	monitor.UpdateUnhealthy("counters", "ping failed")
	require.Equal(t, 3, monitor.Count())

	monitor.Clear()

	assert.Equal(t, 0, monitor.Count())
	assert.Empty(t, monitor.GetAll())
}

func TestMonitor_ConcurrentProbesAndReads(t *testing.T) {
	monitor := NewMonitor()
	c := newHealthTestCache(t, cache.Config{TrackStats: true})

	var wg sync.WaitGroup
	for i := 0; i < 10; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			for j := 0; j < 100; j++ {
				switch j % 4 {
				case 0:
					monitor.Update("sessions", CheckCache("sessions", c, Thresholds{}))
				case 1:
					monitor.UpdateDegraded("sessions", "hit rate below threshold")
				case 2:
					_, _ = monitor.Get("sessions")
				case 3:
					_ = monitor.AggregateHealth("platform")
				}
			}
		}()
	}
	wg.Wait()

	monitor.Update("sessions", CheckCache("sessions", c, Thresholds{}))
	status, exists := monitor.Get("sessions")
	require.True(t, exists)
	assert.True(t, status.IsHealthy())
}
