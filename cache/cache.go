// Package cache provides a thread-safe, in-process key/value cache engine
// with lazy TTL expiry, bounded LRU eviction, atomic read-modify-write
// primitives, glob-pattern key operations, statistics, and composable
// namespace/tenant views.
package cache

import (
	"time"
)

// Cache is the public cache contract. The in-memory engine, the noop cache,
// and the namespace/tenant views all satisfy it; callers depend only on this
// interface.
//
// Absence is never an error: a missing or expired key is reported through
// the boolean, zero, or omitted-entry returns below. The only operation that
// can fail is WithNamespace, which rejects an empty namespace at
// construction time.
type Cache interface {
	// Get retrieves a value by key. Returns the value and true if a live
	// entry exists; records a hit or miss and promotes LRU recency.
	Get(key string) (any, bool)

	// Set stores a value unconditionally, applying the configured default
	// TTL when one is set. Always returns true.
	Set(key string, value any) bool

	// SetWithTTL stores a value with an explicit time-to-live. A ttl of
	// zero or less stores the entry without expiry. Always returns true.
	SetWithTTL(key string, value any, ttl time.Duration) bool

	// Delete removes an entry. Returns true if a live entry existed.
	Delete(key string) bool

	// Exists reports whether a live entry exists. It is a pure peek: it
	// does not count toward hit/miss statistics and does not promote LRU
	// recency.
	Exists(key string) bool

	// TTL returns the remaining time-to-live rounded to whole seconds.
	// The second return is false if the key does not exist or has no expiry.
	TTL(key string) (time.Duration, bool)

	// Expire sets or replaces the expiry of an existing live entry.
	// Returns false if the key does not exist.
	Expire(key string, ttl time.Duration) bool

	// GetMany retrieves several keys at once; absent or expired keys are
	// simply omitted from the result.
	GetMany(keys []string) map[string]any

	// SetMany stores every pair, applying the default TTL, and returns the
	// number of entries written.
	SetMany(pairs map[string]any) int

	// SetManyWithTTL stores every pair with an explicit TTL and returns the
	// number of entries written.
	SetManyWithTTL(pairs map[string]any, ttl time.Duration) int

	// DeleteMany removes the given keys and returns how many live entries
	// were removed.
	DeleteMany(keys []string) int

	// Increment atomically adds delta to the integer value stored at key,
	// (re)initializing an absent or expired entry to zero first, and
	// returns the resulting value.
	Increment(key string, delta int64) int64

	// Decrement is Increment with a negated delta.
	Decrement(key string, delta int64) int64

	// SetIfAbsent atomically stores the value only if no live entry exists.
	// Returns whether the set happened.
	SetIfAbsent(key string, value any) bool

	// CompareAndSwap atomically replaces the current value with newValue if
	// the current value equals expected (value equality, not identity).
	// A missing key matches only a nil expected value. Returns whether the
	// swap happened; a mismatch is a normal false, never an error.
	CompareAndSwap(key string, expected, newValue any) bool

	// KeysMatching returns the live keys matching a glob pattern, where '*'
	// matches zero or more characters. Keys are returned sorted.
	KeysMatching(pattern string) []string

	// CountMatching returns the number of live keys matching the pattern.
	CountMatching(pattern string) int

	// DeleteMatching removes every live entry whose key matches the
	// pattern and returns the count removed.
	DeleteMatching(pattern string) int

	// WithNamespace returns a view of this cache in which every key is
	// prefixed with "{ns}:" before delegation. The view has no storage of
	// its own. Fails if ns is empty.
	WithNamespace(ns string) (Cache, error)

	// ClearNamespace removes every entry under the "{ns}:" prefix and
	// returns the count removed.
	ClearNamespace(ns string) int

	// Keys returns all live keys, most recently used first.
	Keys() []string

	// Size returns the number of live entries.
	Size() int

	// FlushAll removes every live entry and returns how many were removed.
	FlushAll() int

	// Ping reports whether the cache is usable.
	Ping() bool

	// Close releases resources. Closing a namespace or tenant view never
	// closes the underlying cache.
	Close() error

	// Stats returns a snapshot of cache statistics. Hit/miss counters are
	// only collected when the cache was built with TrackStats.
	Stats() Summary

	// ClearStats resets hit/miss (and related) counters without touching
	// any entries.
	ClearStats()
}

// EvictCallback is called when an entry is removed by LRU eviction or a
// flush. It receives the key and value of the evicted entry and runs outside
// the store lock.
type EvictCallback func(key string, value any)
