package health

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/c360/cachekit/cache"
	"github.com/c360/cachekit/errors"
)

// Thresholds control when a responsive cache is reported as degraded.
// The zero value disables both checks, so only Ping matters.
type Thresholds struct {
	// MinHitRate marks the cache degraded when its hit rate falls below
	// this value. Ignored until MinSamples reads have been recorded, so a
	// cold cache is not flagged.
	MinHitRate float64 `json:"min_hit_rate"`

	// MinSamples is the number of reads (hits + misses) required before
	// MinHitRate applies. Defaults to 100 when MinHitRate is set.
	MinSamples int64 `json:"min_samples"`

	// CapacityRatio marks the cache degraded when live entries reach this
	// fraction of MaxSize. Only meaningful for bounded caches.
	CapacityRatio float64 `json:"capacity_ratio"`

	// MaxSize is the configured bound used for the capacity check.
	MaxSize int `json:"max_size"`
}

// CheckCache probes a cache and returns its health status. An unreachable
// cache (failed Ping) is unhealthy; a reachable one is degraded when it
// trips a threshold, healthy otherwise.
func CheckCache(name string, c cache.Cache, thresholds Thresholds) Status {
	if c == nil {
		return NewUnhealthy(name, "cache is not configured")
	}

	if !c.Ping() {
		return NewUnhealthy(name, "cache did not respond to ping")
	}

	stats := c.Stats()
	metrics := &Metrics{
		Size:      stats.Size,
		HitRate:   stats.HitRate,
		Evictions: stats.Evictions,
	}

	reads := stats.Hits + stats.Misses
	if thresholds.MinHitRate > 0 {
		minSamples := thresholds.MinSamples
		if minSamples <= 0 {
			minSamples = 100
		}
		if reads >= minSamples && stats.HitRate < thresholds.MinHitRate {
			message := fmt.Sprintf("hit rate %.2f below threshold %.2f",
				stats.HitRate, thresholds.MinHitRate)
			return NewDegraded(name, message).WithMetrics(metrics)
		}
	}

	if thresholds.CapacityRatio > 0 && thresholds.MaxSize > 0 {
		if float64(stats.Size) >= thresholds.CapacityRatio*float64(thresholds.MaxSize) {
			message := fmt.Sprintf("size %d at %.0f%% of capacity %d",
				stats.Size, 100*float64(stats.Size)/float64(thresholds.MaxSize), thresholds.MaxSize)
			return NewDegraded(name, message).WithMetrics(metrics)
		}
	}

	return NewHealthy(name, "cache responding").WithMetrics(metrics)
}

// target is a cache registered with a Checker.
type target struct {
	cache      cache.Cache
	thresholds Thresholds
}

// Checker periodically probes registered caches and publishes their status
// to a Monitor. Safe for concurrent use.
type Checker struct {
	monitor  *Monitor
	interval time.Duration

	mu      sync.Mutex
	targets map[string]target
	cancel  context.CancelFunc
	done    chan struct{}
}

// NewChecker creates a checker that refreshes statuses at the given interval.
// A non-positive interval defaults to 30 seconds.
func NewChecker(monitor *Monitor, interval time.Duration) *Checker {
	if interval <= 0 {
		interval = 30 * time.Second
	}
	return &Checker{
		monitor:  monitor,
		interval: interval,
		targets:  make(map[string]target),
	}
}

// Watch registers a cache under the given name. Re-registering a name
// replaces the previous target. The cache is probed immediately so the
// monitor never reports a watched cache as unknown.
func (c *Checker) Watch(name string, ch cache.Cache, thresholds Thresholds) {
	c.mu.Lock()
	c.targets[name] = target{cache: ch, thresholds: thresholds}
	c.mu.Unlock()

	c.monitor.Update(name, CheckCache(name, ch, thresholds))
}

// Unwatch removes a cache from probing and from the monitor.
func (c *Checker) Unwatch(name string) {
	c.mu.Lock()
	delete(c.targets, name)
	c.mu.Unlock()

	c.monitor.Remove(name)
}

// CheckNow probes every registered cache once and updates the monitor.
func (c *Checker) CheckNow() {
	c.mu.Lock()
	snapshot := make(map[string]target, len(c.targets))
	for name, tgt := range c.targets {
		snapshot[name] = tgt
	}
	c.mu.Unlock()

	for name, tgt := range snapshot {
		c.monitor.Update(name, CheckCache(name, tgt.cache, tgt.thresholds))
	}
}

// Start begins periodic probing. Fails if the checker is already running.
func (c *Checker) Start(ctx context.Context) error {
	c.mu.Lock()
	if c.cancel != nil {
		c.mu.Unlock()
		return errors.WrapInvalid(errors.ErrAlreadyStarted, "Checker", "Start",
			"periodic probing already running")
	}

	ctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	done := make(chan struct{})
	c.done = done
	c.mu.Unlock()

	go func() {
		defer close(done)
		ticker := time.NewTicker(c.interval)
		defer ticker.Stop()

		for {
			select {
			case <-ctx.Done():
				return
			case <-ticker.C:
				c.CheckNow()
			}
		}
	}()

	return nil
}

// Stop halts periodic probing and waits for the probe loop to exit.
// Fails if the checker was never started.
func (c *Checker) Stop() error {
	c.mu.Lock()
	cancel, done := c.cancel, c.done
	c.cancel, c.done = nil, nil
	c.mu.Unlock()

	if cancel == nil {
		return errors.WrapInvalid(errors.ErrNotStarted, "Checker", "Stop",
			"periodic probing not running")
	}

	cancel()
	<-done
	return nil
}
