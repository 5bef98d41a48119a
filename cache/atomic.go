package cache

import (
	"reflect"
	"time"
)

// The operations in this file are the only ones whose correctness requires
// indivisibility broader than a single map access: each reads the current
// entry and conditionally writes. They run entirely under the store's write
// lock, which serializes them store-wide and makes concurrent
// read-modify-write sequences linearizable.

// Increment atomically adds delta to the integer value stored at key. An
// absent or expired key is (re)initialized to zero before adding, so N
// concurrent increments of a fresh key always yield N. New entries receive
// the configured default TTL; existing entries keep their expiry.
func (c *memoryCache) Increment(key string, delta int64) int64 {
	var evicted []entrySnapshot

	c.mu.Lock()
	now := time.Now()

	var current int64
	if element, exists := c.items[key]; exists {
		e := element.Value.(*entry)
		if !e.expired(now) {
			current, _ = toInt64(e.value)
			result := current + delta
			e.value = result
			c.order.MoveToFront(element)
			c.recordSet()
			c.mu.Unlock()
			return result
		}
		c.removeElement(element)
	}

	result := delta // 0 + delta
	evicted = c.putLocked(key, result, c.defaultTTL, now)
	c.recordSet()
	c.mu.Unlock()

	c.notifyEvicted(evicted)
	return result
}

// Decrement is Increment with a negated delta.
func (c *memoryCache) Decrement(key string, delta int64) int64 {
	return c.Increment(key, -delta)
}

// SetIfAbsent atomically stores the value only if no live entry exists.
// Indivisible with respect to concurrent SetIfAbsent/Set/Delete on the same
// key: two racing SetIfAbsent calls can never both succeed.
func (c *memoryCache) SetIfAbsent(key string, value any) bool {
	c.mu.Lock()
	now := time.Now()

	if element, exists := c.items[key]; exists {
		if !element.Value.(*entry).expired(now) {
			c.mu.Unlock()
			return false
		}
		c.removeElement(element)
	}

	evicted := c.putLocked(key, value, c.defaultTTL, now)
	c.recordSet()
	c.mu.Unlock()

	c.notifyEvicted(evicted)
	return true
}

// CompareAndSwap atomically replaces the current value with newValue if the
// current value equals expected, using value equality rather than identity.
// A missing or expired key matches only a nil expected value; in that case
// the entry is created. A mismatch leaves the entry untouched and returns
// false.
func (c *memoryCache) CompareAndSwap(key string, expected, newValue any) bool {
	var evicted []entrySnapshot

	c.mu.Lock()
	now := time.Now()

	if element, exists := c.items[key]; exists {
		e := element.Value.(*entry)
		if !e.expired(now) {
			if !reflect.DeepEqual(e.value, expected) {
				c.mu.Unlock()
				return false
			}
			e.value = newValue
			c.order.MoveToFront(element)
			c.recordSet()
			c.mu.Unlock()
			return true
		}
		c.removeElement(element)
	}

	// Key is absent: only a nil expectation matches.
	if expected != nil {
		c.mu.Unlock()
		return false
	}

	evicted = c.putLocked(key, newValue, c.defaultTTL, now)
	c.recordSet()
	c.mu.Unlock()

	c.notifyEvicted(evicted)
	return true
}

// toInt64 coerces the integer kinds a caller might plausibly have stored.
// Anything else counts as zero, keeping Increment a total function.
func toInt64(v any) (int64, bool) {
	switch n := v.(type) {
	case int64:
		return n, true
	case int:
		return int64(n), true
	case int32:
		return int64(n), true
	case int16:
		return int64(n), true
	case int8:
		return int64(n), true
	case uint32:
		return int64(n), true
	case uint16:
		return int64(n), true
	case uint8:
		return int64(n), true
	default:
		return 0, false
	}
}
