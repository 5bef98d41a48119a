// Package metric provides Prometheus-based metrics collection and an HTTP
// exposition server for cachekit observability.
//
// The package offers a centralized metrics registry with duplicate-
// registration protection, plus an HTTP server exposing metrics in
// Prometheus format for monitoring system integration.
//
// # Architecture
//
// The package follows a two-layer design:
//
//  1. Registry: extensible registration for cache-specific metrics
//     (MetricsRegistrar interface, MetricsRegistry type)
//  2. HTTP Server: metrics endpoint with a basic health check (Server type)
//
// Cache instances do not talk to Prometheus directly; the cache package's
// WithMetrics option registers hit/miss/set/delete/eviction counters and a
// size gauge through this registry, keyed by a component name so several
// caches can share one endpoint.
//
// # Basic Usage
//
// Setting up metrics collection and the HTTP server:
//
//	registry := metric.NewMetricsRegistry()
//	server := metric.NewServer(9090, "/metrics", registry)
//
//	go func() {
//	    if err := server.Start(); err != nil {
//	        log.Printf("Metrics server error: %v", err)
//	    }
//	}()
//
//	c, err := cache.New(cache.Config{MaxSize: 1000, TrackStats: true},
//	    cache.WithMetrics(registry, "session_cache"))
//
// Applications embedding cachekit in an existing HTTP server can mount
// Server.Handler() on their own mux instead of running the standalone
// server.
package metric
