// Package cachekit provides an in-process, concurrency-safe key/value cache
// engine with time-based expiry, bounded LRU eviction, atomic counter and
// compare-and-swap primitives, glob-pattern key operations, and composable
// namespace and tenant decorators.
//
// # Architecture
//
// The engine and its decorators all satisfy one contract, cache.Cache.
// Callers depend only on the interface; namespace and tenant views wrap any
// implementation and transform keys before delegating:
//
//	┌─────────────────────────────────────┐
//	│          Tenant Cache               │  "tenant:{id}:" prefix,
//	│   (per-tenant isolated keyspace)    │  request extraction
//	└─────────────────────────────────────┘
//	           ↓ delegates
//	┌─────────────────────────────────────┐
//	│         Namespace View              │  "{ns}:" prefix,
//	│    (logical key-prefix scope)       │  stateless transform
//	└─────────────────────────────────────┘
//	           ↓ delegates
//	┌─────────────────────────────────────┐
//	│         Memory Engine               │  entry store, TTL expiry,
//	│  (store + LRU + atomics + stats)    │  LRU eviction, atomics,
//	└─────────────────────────────────────┘  pattern ops, statistics
//
// # Packages
//
//   - cache: the cache contract, in-memory engine, namespace/tenant views,
//     statistics, and Prometheus metrics bridge
//   - errors: classified error handling (transient, invalid, fatal)
//   - metric: Prometheus registry management and HTTP exposition
//   - health: health checks for cache instances
//
// # Semantics
//
// Expiry is resolved lazily at access time; there is no background sweeper.
// Eviction removes the globally least-recently-used live entry and is
// triggered synchronously when an insert exceeds the configured size bound.
// Reads and writes both count toward LRU recency. Atomic operations
// (Increment, Decrement, SetIfAbsent, CompareAndSwap) are serialized
// store-wide so concurrent read-modify-write sequences never lose updates.
//
// Cachekit deliberately does not persist to disk, coordinate across
// processes, or support eviction policies beyond LRU.
package cachekit
