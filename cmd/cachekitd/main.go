// Package main implements cachekitd, a small standalone daemon that hosts a
// set of named caches and exposes their Prometheus metrics and health status
// over HTTP. It doubles as a reference for wiring the library's pieces
// together in a service.
package main

import (
	"context"
	"encoding/json"
	"fmt"
	"log/slog"
	"net/http"
	"os"
	"os/signal"
	"runtime"
	"syscall"
	"time"

	"github.com/c360/cachekit/cache"
	"github.com/c360/cachekit/health"
	"github.com/c360/cachekit/metric"
)

// Build information constants
const (
	Version   = "0.1.0"
	BuildTime = "dev"
	appName   = "cachekitd"
)

func main() {
	// Add panic recovery
	defer func() {
		if r := recover(); r != nil {
			buf := make([]byte, 4096)
			n := runtime.Stack(buf, false)
			_, _ = fmt.Fprintf(os.Stderr, "PANIC: %v\nStack trace:\n%s\n", r, string(buf[:n]))
			os.Exit(2)
		}
	}()

	if err := run(); err != nil {
		slog.Error("Application failed", "error", err, "exit_code", 1)
		os.Exit(1)
	}
}

func run() error {
	cliCfg, shouldExit, err := initializeCLI()
	if shouldExit || err != nil {
		return err
	}

	cfg, err := loadConfig(cliCfg.ConfigPath)
	if err != nil {
		return fmt.Errorf("load config: %w", err)
	}

	if err := cfg.Validate(); err != nil {
		return fmt.Errorf("invalid configuration: %w", err)
	}

	if cliCfg.Validate {
		slog.Info("Configuration is valid")
		return nil
	}

	registry := metric.NewMetricsRegistry()
	monitor := health.NewMonitor()
	checker := health.NewChecker(monitor, cfg.checkInterval)

	caches, err := buildCaches(cfg, registry, checker)
	if err != nil {
		return err
	}
	defer func() {
		for name, c := range caches {
			if err := c.Close(); err != nil {
				slog.Warn("Error closing cache", "name", name, "error", err)
			}
		}
	}()

	metricsServer := metric.NewServer(cfg.MetricsPort, "/metrics", registry)
	go func() {
		slog.Info("Starting metrics server", "address", metricsServer.Address())
		if err := metricsServer.Start(); err != nil {
			slog.Error("Metrics server failed", "error", err)
		}
	}()
	defer func() {
		if err := metricsServer.Stop(); err != nil {
			slog.Warn("Error stopping metrics server", "error", err)
		}
	}()

	healthServer := startHealthServer(cliCfg.HealthPort, monitor)
	if healthServer != nil {
		defer func() { _ = healthServer.Close() }()
	}

	return runWithSignalHandling(checker, cliCfg.ShutdownTimeout)
}

func initializeCLI() (*CLIConfig, bool, error) {
	cliCfg := parseFlags()
	if err := validateFlags(cliCfg); err != nil {
		return nil, false, fmt.Errorf("invalid flags: %w", err)
	}

	if cliCfg.ShowVersion {
		fmt.Printf("%s version %s\n", appName, Version)
		return nil, true, nil
	}

	if cliCfg.ShowHelp {
		printDetailedHelp()
		return nil, true, nil
	}

	logger := setupLogger(cliCfg.LogLevel, cliCfg.LogFormat)
	slog.SetDefault(logger)

	slog.Info("Starting cachekitd",
		"version", Version,
		"build_time", BuildTime,
		"config_path", cliCfg.ConfigPath)

	return cliCfg, false, nil
}

// buildCaches constructs every configured cache, wires its Prometheus
// metrics, and registers it with the health checker.
func buildCaches(
	cfg *DaemonConfig,
	registry *metric.MetricsRegistry,
	checker *health.Checker,
) (map[string]cache.Cache, error) {
	caches := make(map[string]cache.Cache, len(cfg.Caches))

	for name, spec := range cfg.Caches {
		c, err := cache.New(spec.Cache, cache.WithMetrics(registry, name))
		if err != nil {
			for _, built := range caches {
				_ = built.Close()
			}
			return nil, fmt.Errorf("create cache %s: %w", name, err)
		}

		thresholds := spec.Thresholds
		if thresholds.MaxSize == 0 {
			thresholds.MaxSize = spec.Cache.MaxSize
		}
		checker.Watch(name, c, thresholds)

		caches[name] = c
		slog.Info("Created cache",
			"name", name,
			"max_size", spec.Cache.MaxSize,
			"default_ttl", spec.Cache.DefaultTTL,
			"track_stats", spec.Cache.TrackStats)
	}

	return caches, nil
}

// startHealthServer serves the monitor's aggregate status as JSON on /health.
// Returns nil when the port is 0 (disabled).
func startHealthServer(port int, monitor *health.Monitor) *http.Server {
	if port == 0 {
		return nil
	}

	mux := http.NewServeMux()
	mux.HandleFunc("/health", func(w http.ResponseWriter, _ *http.Request) {
		system := monitor.AggregateHealth(appName)

		statusCode := http.StatusOK
		if system.IsUnhealthy() {
			statusCode = http.StatusServiceUnavailable
		}

		w.Header().Set("Content-Type", "application/json")
		w.WriteHeader(statusCode)
		if err := json.NewEncoder(w).Encode(system); err != nil {
			slog.Warn("Error encoding health response", "error", err)
		}
	})

	server := &http.Server{
		Addr:    fmt.Sprintf(":%d", port),
		Handler: mux,
	}

	go func() {
		slog.Info("Starting health server", "port", port)
		if err := server.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			slog.Error("Health server failed", "error", err)
		}
	}()

	return server
}

// runWithSignalHandling starts the health checker and blocks until shutdown
func runWithSignalHandling(checker *health.Checker, shutdownTimeout time.Duration) error {
	signalCtx, signalCancel := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer signalCancel()

	if err := checker.Start(signalCtx); err != nil {
		return fmt.Errorf("start health checker: %w", err)
	}
	slog.Info("cachekitd started successfully")

	<-signalCtx.Done()
	slog.Info("Received shutdown signal", "timeout", shutdownTimeout)

	done := make(chan error, 1)
	go func() { done <- checker.Stop() }()

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("graceful shutdown failed: %w", err)
		}
	case <-time.After(shutdownTimeout):
		return fmt.Errorf("shutdown timed out after %v", shutdownTimeout)
	}

	slog.Info("cachekitd shutdown complete")
	return nil
}
