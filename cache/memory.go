package cache

import (
	"container/list"
	"sync"
	"sync/atomic"
	"time"
)

// entry is the unit of storage owned by the engine. It is only ever read or
// mutated while holding the store lock.
type entry struct {
	key       string
	value     any
	expiresAt time.Time // zero means no expiry
}

// expired reports whether the entry is logically absent at the given time.
func (e *entry) expired(now time.Time) bool {
	return !e.expiresAt.IsZero() && !now.Before(e.expiresAt)
}

// entrySnapshot captures an evicted key/value pair so the eviction callback
// can run outside the store lock.
type entrySnapshot struct {
	key   string
	value any
}

// memoryCache is the in-memory cache engine. A map provides O(1) lookup and
// a doubly-linked list maintains LRU ordering: the front is the most
// recently used entry, the back is the eviction victim. One exclusive lock
// serializes every mutation, which also gives the atomic read-modify-write
// operations their store-wide total order.
type memoryCache struct {
	mu         sync.RWMutex
	maxSize    int
	defaultTTL time.Duration
	trackStats bool
	items      map[string]*list.Element // key -> list element holding *entry
	order      *list.List               // LRU ordering, front = most recent
	stats      *Statistics
	metrics    *cacheMetrics // optional, if WithMetrics was given
	evictFn    EvictCallback // optional
	closed     atomic.Bool
}

// newMemoryCache creates the engine from validated configuration.
// Returns an error only if Prometheus metrics registration fails.
func newMemoryCache(cfg Config, opts *cacheOptions) (*memoryCache, error) {
	var metrics *cacheMetrics
	if opts.metricsReg != nil && opts.metricsComponent != "" {
		var err error
		metrics, err = newCacheMetrics(opts.metricsReg, opts.metricsComponent)
		if err != nil {
			return nil, err
		}
	}

	return &memoryCache{
		maxSize:    cfg.MaxSize,
		defaultTTL: cfg.DefaultTTL,
		trackStats: cfg.TrackStats,
		items:      make(map[string]*list.Element),
		order:      list.New(),
		stats:      NewStatistics(),
		metrics:    metrics,
		evictFn:    opts.evictCallback,
	}, nil
}

// Get retrieves a value by key, removing the entry if it has expired and
// promoting LRU recency on a hit.
func (c *memoryCache) Get(key string) (any, bool) {
	c.mu.Lock()

	now := time.Now()
	if element, exists := c.items[key]; exists {
		e := element.Value.(*entry)
		if !e.expired(now) {
			c.order.MoveToFront(element)
			c.recordHit()
			value := e.value
			c.mu.Unlock()
			return value, true
		}
		// Lazy expiry: the entry is logically absent, drop it now.
		c.removeElement(element)
	}

	c.recordMiss()
	c.mu.Unlock()
	return nil, false
}

// Set stores a value unconditionally, applying the configured default TTL.
func (c *memoryCache) Set(key string, value any) bool {
	return c.put(key, value, c.defaultTTL)
}

// SetWithTTL stores a value with an explicit TTL. ttl <= 0 stores the entry
// without expiry.
func (c *memoryCache) SetWithTTL(key string, value any, ttl time.Duration) bool {
	return c.put(key, value, ttl)
}

// put is the shared write path for the set family.
func (c *memoryCache) put(key string, value any, ttl time.Duration) bool {
	c.mu.Lock()
	evicted := c.putLocked(key, value, ttl, time.Now())
	c.recordSet()
	c.mu.Unlock()

	c.notifyEvicted(evicted)
	return true
}

// putLocked inserts or overwrites an entry and enforces the size bound.
// Must be called with the write lock held.
func (c *memoryCache) putLocked(key string, value any, ttl time.Duration, now time.Time) []entrySnapshot {
	var expiresAt time.Time
	if ttl > 0 {
		expiresAt = now.Add(ttl)
	}

	if element, exists := c.items[key]; exists {
		e := element.Value.(*entry)
		e.value = value
		e.expiresAt = expiresAt
		c.order.MoveToFront(element)
		return nil
	}

	element := c.order.PushFront(&entry{key: key, value: value, expiresAt: expiresAt})
	c.items[key] = element
	return c.enforceBound(now)
}

// enforceBound restores the size invariant after an insert. Expired entries
// are removed first since they are not live and do not count against the
// bound; only then is a live LRU victim evicted. Must be called with the
// write lock held. Returns snapshots for the eviction callback.
func (c *memoryCache) enforceBound(now time.Time) []entrySnapshot {
	if c.maxSize <= 0 || len(c.items) <= c.maxSize {
		return nil
	}

	for element := c.order.Back(); element != nil && len(c.items) > c.maxSize; {
		prev := element.Prev()
		if element.Value.(*entry).expired(now) {
			c.removeElement(element)
		}
		element = prev
	}

	var evicted []entrySnapshot
	for len(c.items) > c.maxSize {
		element := c.order.Back()
		if element == nil {
			break
		}
		e := element.Value.(*entry)
		c.removeElement(element)
		if c.trackStats {
			c.stats.Eviction()
		}
		if c.metrics != nil {
			c.metrics.recordEviction()
		}
		if c.evictFn != nil {
			evicted = append(evicted, entrySnapshot{key: e.key, value: e.value})
		}
	}
	return evicted
}

// Delete removes an entry. Returns true only if a live entry existed.
func (c *memoryCache) Delete(key string) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	element, exists := c.items[key]
	if !exists {
		return false
	}

	e := element.Value.(*entry)
	wasLive := !e.expired(time.Now())
	c.removeElement(element)
	if wasLive {
		c.recordDelete()
	}
	return wasLive
}

// Exists reports whether a live entry exists. A pure peek: no hit/miss
// accounting, no LRU promotion, no lazy removal.
func (c *memoryCache) Exists(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()

	element, exists := c.items[key]
	return exists && !element.Value.(*entry).expired(time.Now())
}

// TTL returns the remaining time-to-live rounded to whole seconds.
func (c *memoryCache) TTL(key string) (time.Duration, bool) {
	c.mu.RLock()
	defer c.mu.RUnlock()

	element, exists := c.items[key]
	if !exists {
		return 0, false
	}
	e := element.Value.(*entry)
	now := time.Now()
	if e.expiresAt.IsZero() || e.expired(now) {
		return 0, false
	}
	return e.expiresAt.Sub(now).Round(time.Second), true
}

// Expire sets or replaces the expiry of an existing live entry. The update
// counts as an access for LRU purposes.
func (c *memoryCache) Expire(key string, ttl time.Duration) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	element, exists := c.items[key]
	if !exists || element.Value.(*entry).expired(now) {
		return false
	}

	element.Value.(*entry).expiresAt = now.Add(ttl)
	c.order.MoveToFront(element)
	return true
}

// GetMany retrieves several keys under one lock acquisition. Each key counts
// toward hit/miss statistics exactly as an individual Get would.
func (c *memoryCache) GetMany(keys []string) map[string]any {
	result := make(map[string]any, len(keys))

	c.mu.Lock()
	now := time.Now()
	for _, key := range keys {
		element, exists := c.items[key]
		if !exists {
			c.recordMiss()
			continue
		}
		e := element.Value.(*entry)
		if e.expired(now) {
			c.removeElement(element)
			c.recordMiss()
			continue
		}
		c.order.MoveToFront(element)
		c.recordHit()
		result[key] = e.value
	}
	c.mu.Unlock()

	return result
}

// SetMany stores every pair with the default TTL.
func (c *memoryCache) SetMany(pairs map[string]any) int {
	return c.putMany(pairs, c.defaultTTL)
}

// SetManyWithTTL stores every pair with an explicit TTL.
func (c *memoryCache) SetManyWithTTL(pairs map[string]any, ttl time.Duration) int {
	return c.putMany(pairs, ttl)
}

func (c *memoryCache) putMany(pairs map[string]any, ttl time.Duration) int {
	var evicted []entrySnapshot

	c.mu.Lock()
	now := time.Now()
	for key, value := range pairs {
		evicted = append(evicted, c.putLocked(key, value, ttl, now)...)
		c.recordSet()
	}
	c.mu.Unlock()

	c.notifyEvicted(evicted)
	return len(pairs)
}

// DeleteMany removes the given keys and returns how many live entries were
// removed.
func (c *memoryCache) DeleteMany(keys []string) int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := time.Now()
	count := 0
	for _, key := range keys {
		element, exists := c.items[key]
		if !exists {
			continue
		}
		wasLive := !element.Value.(*entry).expired(now)
		c.removeElement(element)
		if wasLive {
			c.recordDelete()
			count++
		}
	}
	return count
}

// Keys returns all live keys, most recently used first.
func (c *memoryCache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	now := time.Now()
	keys := make([]string, 0, len(c.items))
	for element := c.order.Front(); element != nil; element = element.Next() {
		e := element.Value.(*entry)
		if !e.expired(now) {
			keys = append(keys, e.key)
		}
	}
	return keys
}

// Size returns the number of live entries. Entries that have expired but not
// yet been lazily removed are not counted.
func (c *memoryCache) Size() int {
	c.mu.RLock()
	defer c.mu.RUnlock()
	return c.liveLen(time.Now())
}

// liveLen counts non-expired entries. Must be called with at least the read
// lock held.
func (c *memoryCache) liveLen(now time.Time) int {
	count := 0
	for element := c.order.Front(); element != nil; element = element.Next() {
		if !element.Value.(*entry).expired(now) {
			count++
		}
	}
	return count
}

// FlushAll removes every entry and returns how many live entries were
// removed.
func (c *memoryCache) FlushAll() int {
	var flushed []entrySnapshot

	c.mu.Lock()
	now := time.Now()
	count := 0
	for element := c.order.Front(); element != nil; element = element.Next() {
		e := element.Value.(*entry)
		if !e.expired(now) {
			count++
			if c.evictFn != nil {
				flushed = append(flushed, entrySnapshot{key: e.key, value: e.value})
			}
		}
	}
	c.items = make(map[string]*list.Element)
	c.order.Init()
	if c.metrics != nil {
		c.metrics.updateSize(0)
	}
	c.mu.Unlock()

	c.notifyEvicted(flushed)
	return count
}

// WithNamespace returns a key-prefixing view of this cache.
func (c *memoryCache) WithNamespace(ns string) (Cache, error) {
	return newNamespaceView(c, ns)
}

// ClearNamespace removes every entry under the "{ns}:" prefix.
func (c *memoryCache) ClearNamespace(ns string) int {
	return c.DeleteMatching(ns + ":*")
}

// Ping reports whether the cache is usable.
func (c *memoryCache) Ping() bool {
	return !c.closed.Load()
}

// Close marks the cache closed. The engine has no background goroutines, so
// this only flips the Ping signal.
func (c *memoryCache) Close() error {
	c.closed.Store(true)
	return nil
}

// Stats returns a snapshot of statistics with the size derived live from the
// entry store.
func (c *memoryCache) Stats() Summary {
	return summarize(c.stats, c.Size())
}

// ClearStats resets all counters without touching any entries.
func (c *memoryCache) ClearStats() {
	c.stats.Reset()
}

// removeElement removes an element from both the list and map.
// Must be called with the write lock held.
func (c *memoryCache) removeElement(element *list.Element) {
	e := element.Value.(*entry)
	delete(c.items, e.key)
	c.order.Remove(element)
	if c.metrics != nil {
		c.metrics.updateSize(len(c.items))
	}
}

// notifyEvicted invokes the eviction callback outside the store lock.
func (c *memoryCache) notifyEvicted(evicted []entrySnapshot) {
	if c.evictFn == nil {
		return
	}
	for _, s := range evicted {
		c.evictFn(s.key, s.value)
	}
}

// recordHit tracks a hit in statistics (when enabled) and metrics.
// Safe to call with either lock held since Statistics is atomic.
func (c *memoryCache) recordHit() {
	if c.trackStats {
		c.stats.Hit()
	}
	if c.metrics != nil {
		c.metrics.recordHit()
	}
}

func (c *memoryCache) recordMiss() {
	if c.trackStats {
		c.stats.Miss()
	}
	if c.metrics != nil {
		c.metrics.recordMiss()
	}
}

func (c *memoryCache) recordSet() {
	if c.trackStats {
		c.stats.Set()
	}
	if c.metrics != nil {
		c.metrics.recordSet()
		c.metrics.updateSize(len(c.items))
	}
}

func (c *memoryCache) recordDelete() {
	if c.trackStats {
		c.stats.Delete()
	}
	if c.metrics != nil {
		c.metrics.recordDelete()
	}
}

// Interface compliance
var _ Cache = (*memoryCache)(nil)
