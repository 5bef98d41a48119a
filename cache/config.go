package cache

import (
	"encoding/json"
	"fmt"
	"time"

	"github.com/c360/cachekit/errors"
)

// Config contains construction-time configuration for the in-memory engine.
// The zero value is a valid configuration: an unbounded cache with no
// default expiry and no hit/miss tracking.
type Config struct {
	// MaxSize is the maximum number of live entries before LRU eviction
	// triggers. Zero means unbounded.
	MaxSize int `json:"max_size"`

	// DefaultTTL is applied to entries written without an explicit TTL.
	// Zero means such entries never expire.
	DefaultTTL time.Duration `json:"default_ttl"`

	// TrackStats enables hit/miss statistics collection.
	TrackStats bool `json:"track_stats"`
}

// DefaultConfig returns a production-leaning configuration.
func DefaultConfig() Config {
	return Config{
		MaxSize:    1000,
		DefaultTTL: 0,
		TrackStats: true,
	}
}

// Validate checks if the configuration is valid.
func (c Config) Validate() error {
	if c.MaxSize < 0 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "cache", "Validate",
			fmt.Sprintf("max_size must not be negative, got %d", c.MaxSize))
	}
	if c.DefaultTTL < 0 {
		return errors.WrapInvalid(errors.ErrInvalidConfig, "cache", "Validate",
			fmt.Sprintf("default_ttl must not be negative, got %v", c.DefaultTTL))
	}
	return nil
}

// New creates an in-memory cache engine from the provided configuration.
// It fails only on an invalid configuration or a Prometheus registration
// conflict when WithMetrics is used.
func New(cfg Config, options ...Option) (Cache, error) {
	if err := cfg.Validate(); err != nil {
		return nil, errors.WrapInvalid(err, "cache", "New", "config validation")
	}

	opts := applyOptions(options...)
	return newMemoryCache(cfg, opts)
}

// NewNoop creates a cache that stores nothing and always misses. Useful when
// caching is disabled via configuration.
func NewNoop() Cache {
	return &noopCache{}
}

// UnmarshalJSON implements custom JSON unmarshaling for Config to support
// duration strings (e.g., "1h", "5m", "30s") in addition to nanosecond
// integers for default_ttl.
func (c *Config) UnmarshalJSON(data []byte) error {
	// Use an alias to avoid infinite recursion
	type Alias Config

	aux := &struct {
		DefaultTTL json.RawMessage `json:"default_ttl,omitempty"`
		*Alias
	}{
		Alias: (*Alias)(c),
	}

	if err := json.Unmarshal(data, &aux); err != nil {
		return err
	}

	if len(aux.DefaultTTL) > 0 {
		ttl, err := parseDurationField(aux.DefaultTTL, "default_ttl")
		if err != nil {
			return err
		}
		c.DefaultTTL = ttl
	}

	return nil
}

// parseDurationField parses a JSON duration field that can be either:
// - An integer (nanoseconds) for backward compatibility
// - A string (duration like "1h", "5m", "30s")
func parseDurationField(data json.RawMessage, fieldName string) (time.Duration, error) {
	// Try parsing as string first (most common case)
	var str string
	if err := json.Unmarshal(data, &str); err == nil {
		duration, err := time.ParseDuration(str)
		if err != nil {
			return 0, fmt.Errorf("invalid duration string for %s: %w", fieldName, err)
		}
		return duration, nil
	}

	// Fall back to integer (nanoseconds)
	var nsec int64
	if err := json.Unmarshal(data, &nsec); err != nil {
		return 0, fmt.Errorf("field %s must be either a duration string (e.g., '1h') or integer nanoseconds", fieldName)
	}
	return time.Duration(nsec), nil
}
