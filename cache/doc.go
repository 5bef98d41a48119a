// Package cache provides a thread-safe, in-process key/value cache engine
// with lazy TTL expiry, bounded LRU eviction, atomic read-modify-write
// primitives, glob-pattern key operations, built-in statistics, and
// composable namespace/tenant views.
//
// # Quick Start
//
// Basic cache creation:
//
//	c, err := cache.New(cache.Config{MaxSize: 1000, TrackStats: true})
//	if err != nil {
//	    log.Fatal(err)
//	}
//	c.Set("user:42", profile)
//	value, ok := c.Get("user:42")
//
// Entries with expiry:
//
//	c.SetWithTTL("session:abc", session, 30*time.Minute)
//	remaining, ok := c.TTL("session:abc")
//
// Atomic counters for rate limiting:
//
//	count := c.Increment("ratelimit:10.0.0.1", 1)
//	if count > limit {
//	    // reject
//	}
//
// # Expiry and Eviction
//
// Expiry is resolved lazily at access time; an expired entry is logically
// absent from every operation the moment its deadline passes, and is
// physically dropped the next time it is touched. There is no background
// sweeper goroutine.
//
// When MaxSize is set, an insert that would leave more than MaxSize live
// entries synchronously evicts the globally least-recently-used live entry.
// Both reads and writes count toward recency, so a key protected by steady
// Get traffic survives eviction pressure from the write path. Expired
// entries are dropped before any live entry is evicted. MaxSize zero means
// the cache is unbounded.
//
// # Atomic Operations
//
// Increment, Decrement, SetIfAbsent and CompareAndSwap are serialized
// store-wide under the engine's write lock: each is a single indivisible
// read-modify-write, so concurrent increments never lose updates and two
// racing SetIfAbsent calls can never both succeed.
//
// # Namespaces and Tenants
//
// WithNamespace returns a view that prefixes every key with "{ns}:" before
// delegating; it has no storage or locking of its own. Views compose by
// delegation, and tenant caches are namespace views under the reserved
// "tenant:{id}:" prefix:
//
//	base, _ := cache.New(cache.Config{TrackStats: true})
//	tenantA, _ := cache.NewTenantCache(base, "acme")
//	sessions, _ := tenantA.WithNamespace("sessions")
//	sessions.Set("abc", s) // stored as "tenant:acme:sessions:abc"
//
// FlushAll on a view clears only that view's keyspace. Close on a view is a
// no-op; it never disables the underlying cache.
//
// # Statistics and Metrics
//
// Hit/miss statistics are collected when Config.TrackStats is set and read
// via Stats(); the Size field is always derived live from the entry store.
// Prometheus export is independent of statistics and enabled with the
// WithMetrics option:
//
//	registry := metric.NewMetricsRegistry()
//	c, err := cache.New(cfg, cache.WithMetrics(registry, "session_cache"))
//
// # Error Handling
//
// A missing, expired, or mismatched key is never an error; every operation
// is total over its return type. The only failures are construction-time:
// an invalid Config, an empty namespace/tenant identifier, or a Prometheus
// registration conflict.
package cache
