package main

import (
	"encoding/json"
	"fmt"
	"os"
	"time"

	"github.com/c360/cachekit/cache"
	"github.com/c360/cachekit/health"
)

// CacheSpec describes one named cache: its engine configuration plus the
// thresholds the health checker applies to it.
type CacheSpec struct {
	Cache      cache.Config      `json:"cache"`
	Thresholds health.Thresholds `json:"thresholds"`
}

// DaemonConfig is the on-disk configuration for cachekitd.
type DaemonConfig struct {
	// MetricsPort is the port the Prometheus exposition server listens on.
	// Zero selects the default (9090).
	MetricsPort int `json:"metrics_port"`

	// CheckInterval is how often the health checker probes each cache.
	// Accepts duration strings ("30s", "1m"). Zero selects the default.
	CheckInterval string `json:"check_interval"`

	// Caches maps cache names to their specs.
	Caches map[string]CacheSpec `json:"caches"`

	checkInterval time.Duration
}

// Validate checks the daemon configuration, resolving the check interval.
func (c *DaemonConfig) Validate() error {
	if c.MetricsPort < 0 || c.MetricsPort > 65535 {
		return fmt.Errorf("invalid metrics port: %d", c.MetricsPort)
	}

	if len(c.Caches) == 0 {
		return fmt.Errorf("no caches configured")
	}

	for name, spec := range c.Caches {
		if name == "" {
			return fmt.Errorf("cache with empty name")
		}
		if err := spec.Cache.Validate(); err != nil {
			return fmt.Errorf("cache %s: %w", name, err)
		}
	}

	if c.CheckInterval != "" {
		interval, err := time.ParseDuration(c.CheckInterval)
		if err != nil {
			return fmt.Errorf("invalid check_interval: %w", err)
		}
		if interval <= 0 {
			return fmt.Errorf("check_interval must be positive, got %v", interval)
		}
		c.checkInterval = interval
	}

	return nil
}

// loadConfig reads and parses the daemon configuration file.
func loadConfig(path string) (*DaemonConfig, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		return nil, fmt.Errorf("read config file: %w", err)
	}

	var cfg DaemonConfig
	if err := json.Unmarshal(data, &cfg); err != nil {
		return nil, fmt.Errorf("parse config file: %w", err)
	}

	return &cfg, nil
}
