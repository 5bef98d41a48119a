package cache

import (
	"time"
)

// noopCache is a cache implementation that stores nothing. Every read
// misses, every write reports success without effect. Used when caching is
// disabled via configuration so callers need no nil checks.
type noopCache struct{}

func (c *noopCache) Get(_ string) (any, bool) { return nil, false }

func (c *noopCache) Set(_ string, _ any) bool { return true }

func (c *noopCache) SetWithTTL(_ string, _ any, _ time.Duration) bool { return true }

func (c *noopCache) Delete(_ string) bool { return false }

func (c *noopCache) Exists(_ string) bool { return false }

func (c *noopCache) TTL(_ string) (time.Duration, bool) { return 0, false }

func (c *noopCache) Expire(_ string, _ time.Duration) bool { return false }

func (c *noopCache) GetMany(_ []string) map[string]any { return map[string]any{} }

func (c *noopCache) SetMany(pairs map[string]any) int { return len(pairs) }

func (c *noopCache) SetManyWithTTL(pairs map[string]any, _ time.Duration) int { return len(pairs) }

func (c *noopCache) DeleteMany(_ []string) int { return 0 }

func (c *noopCache) Increment(_ string, delta int64) int64 { return delta }

func (c *noopCache) Decrement(_ string, delta int64) int64 { return -delta }

func (c *noopCache) SetIfAbsent(_ string, _ any) bool { return true }

func (c *noopCache) CompareAndSwap(_ string, expected, _ any) bool { return expected == nil }

func (c *noopCache) KeysMatching(_ string) []string { return nil }

func (c *noopCache) CountMatching(_ string) int { return 0 }

func (c *noopCache) DeleteMatching(_ string) int { return 0 }

func (c *noopCache) WithNamespace(ns string) (Cache, error) { return newNamespaceView(c, ns) }

func (c *noopCache) ClearNamespace(_ string) int { return 0 }

func (c *noopCache) Keys() []string { return nil }

func (c *noopCache) Size() int { return 0 }

func (c *noopCache) FlushAll() int { return 0 }

func (c *noopCache) Ping() bool { return true }

func (c *noopCache) Close() error { return nil }

func (c *noopCache) Stats() Summary { return Summary{} }

func (c *noopCache) ClearStats() {}

// Interface compliance
var _ Cache = (*noopCache)(nil)
