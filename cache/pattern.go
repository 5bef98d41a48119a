package cache

import (
	"container/list"
	"sort"
	"time"

	"github.com/gobwas/glob"
)

// Pattern operations match glob patterns against the full stored key; '*'
// matches zero or more characters with no separator special-casing. Any
// namespace or tenant prefixing has already been applied by an outer view
// before a pattern reaches the engine.

// KeysMatching returns the live keys matching the pattern, sorted for
// deterministic iteration. An unparseable pattern matches nothing.
func (c *memoryCache) KeysMatching(pattern string) []string {
	matcher, err := glob.Compile(pattern)
	if err != nil {
		return nil
	}

	c.mu.RLock()
	now := time.Now()
	var keys []string
	for element := c.order.Front(); element != nil; element = element.Next() {
		e := element.Value.(*entry)
		if !e.expired(now) && matcher.Match(e.key) {
			keys = append(keys, e.key)
		}
	}
	c.mu.RUnlock()

	sort.Strings(keys)
	return keys
}

// CountMatching returns the number of live keys matching the pattern.
func (c *memoryCache) CountMatching(pattern string) int {
	matcher, err := glob.Compile(pattern)
	if err != nil {
		return 0
	}

	c.mu.RLock()
	defer c.mu.RUnlock()

	now := time.Now()
	count := 0
	for element := c.order.Front(); element != nil; element = element.Next() {
		e := element.Value.(*entry)
		if !e.expired(now) && matcher.Match(e.key) {
			count++
		}
	}
	return count
}

// DeleteMatching removes every live entry whose key matches the pattern and
// returns the count removed. Matching entries that had already expired are
// dropped too but do not count. Removal uses normal delete accounting; it
// never records an eviction or a hit/miss.
func (c *memoryCache) DeleteMatching(pattern string) int {
	matcher, err := glob.Compile(pattern)
	if err != nil {
		return 0
	}

	c.mu.Lock()
	now := time.Now()
	count := 0
	var matched []*list.Element
	for element := c.order.Front(); element != nil; element = element.Next() {
		if matcher.Match(element.Value.(*entry).key) {
			matched = append(matched, element)
		}
	}
	for _, element := range matched {
		wasLive := !element.Value.(*entry).expired(now)
		c.removeElement(element)
		if wasLive {
			c.recordDelete()
			count++
		}
	}
	c.mu.Unlock()

	return count
}
