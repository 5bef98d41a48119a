package cache

import (
	"sync/atomic"
)

// Statistics tracks cache performance counters using atomic operations so
// recording never contends with the store lock.
type Statistics struct {
	hits      atomic.Int64
	misses    atomic.Int64
	sets      atomic.Int64
	deletes   atomic.Int64
	evictions atomic.Int64
}

// NewStatistics creates a new statistics tracker.
func NewStatistics() *Statistics {
	return &Statistics{}
}

// Hit records a cache hit.
func (s *Statistics) Hit() { s.hits.Add(1) }

// Miss records a cache miss.
func (s *Statistics) Miss() { s.misses.Add(1) }

// Set records a write operation.
func (s *Statistics) Set() { s.sets.Add(1) }

// Delete records a delete operation.
func (s *Statistics) Delete() { s.deletes.Add(1) }

// Eviction records an LRU eviction.
func (s *Statistics) Eviction() { s.evictions.Add(1) }

// Hits returns the total number of cache hits.
func (s *Statistics) Hits() int64 { return s.hits.Load() }

// Misses returns the total number of cache misses.
func (s *Statistics) Misses() int64 { return s.misses.Load() }

// Sets returns the total number of write operations.
func (s *Statistics) Sets() int64 { return s.sets.Load() }

// Deletes returns the total number of delete operations.
func (s *Statistics) Deletes() int64 { return s.deletes.Load() }

// Evictions returns the total number of LRU evictions.
func (s *Statistics) Evictions() int64 { return s.evictions.Load() }

// HitRate returns hits / (hits + misses), or 0 when no reads have happened.
func (s *Statistics) HitRate() float64 {
	hits := s.Hits()
	total := hits + s.Misses()
	if total == 0 {
		return 0.0
	}
	return float64(hits) / float64(total)
}

// Reset resets all counters to zero. Entries are unaffected.
func (s *Statistics) Reset() {
	s.hits.Store(0)
	s.misses.Store(0)
	s.sets.Store(0)
	s.deletes.Store(0)
	s.evictions.Store(0)
}

// Summary is a point-in-time snapshot of cache statistics. Size is always
// derived live from the entry store; the counters are zero unless the cache
// was constructed with TrackStats.
type Summary struct {
	Size      int     `json:"size"`
	Hits      int64   `json:"hits"`
	Misses    int64   `json:"misses"`
	Sets      int64   `json:"sets"`
	Deletes   int64   `json:"deletes"`
	Evictions int64   `json:"evictions"`
	HitRate   float64 `json:"hit_rate"`
}

// summarize builds a Summary from a Statistics tracker and a live size.
func summarize(s *Statistics, size int) Summary {
	return Summary{
		Size:      size,
		Hits:      s.Hits(),
		Misses:    s.Misses(),
		Sets:      s.Sets(),
		Deletes:   s.Deletes(),
		Evictions: s.Evictions(),
		HitRate:   s.HitRate(),
	}
}
