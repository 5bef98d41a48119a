package cache

import (
	"github.com/c360/cachekit/metric"
)

// Option configures cache behavior using the functional options pattern.
type Option func(*cacheOptions)

// cacheOptions holds internal configuration for cache instances.
// Statistics collection is controlled by Config.TrackStats; Prometheus
// export is optional and enabled via WithMetrics().
type cacheOptions struct {
	// metricsReg is optional - if provided, cache activity is also exposed
	// as Prometheus metrics
	metricsReg *metric.MetricsRegistry

	// metricsComponent is used as the component label for Prometheus metrics
	metricsComponent string

	// evictCallback is called when items are evicted from the cache
	evictCallback EvictCallback
}

// WithMetrics enables Prometheus metrics export for cache activity,
// registered under the given component name. If registry is nil or component
// is empty, the option is ignored.
func WithMetrics(registry *metric.MetricsRegistry, component string) Option {
	return func(opts *cacheOptions) {
		if registry != nil && component != "" {
			opts.metricsReg = registry
			opts.metricsComponent = component
		}
	}
}

// WithEvictionCallback sets a callback invoked when entries are removed by
// LRU eviction or a flush. The callback runs outside the store lock.
func WithEvictionCallback(callback EvictCallback) Option {
	return func(opts *cacheOptions) {
		opts.evictCallback = callback
	}
}

// applyOptions applies functional options to create final cache configuration.
func applyOptions(options ...Option) *cacheOptions {
	opts := &cacheOptions{}

	for _, opt := range options {
		if opt != nil {
			opt(opts)
		}
	}

	return opts
}
