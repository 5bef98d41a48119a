// Package health provides health monitoring for cache instances with
// thread-safe status tracking and aggregation.
//
// The package probes caches, tracks the status of each named instance, and
// aggregates system-wide health for dashboards, alerting, and /health
// endpoints.
//
// # Health States
//
// The package supports three health states:
//   - Healthy: cache responding and operating normally
//   - Degraded: cache responding but tripping a threshold (low hit rate, near capacity)
//   - Unhealthy: cache not responding to ping
//
// The three-state model enables nuanced operational responses: a degraded
// cache might trigger a capacity bump or TTL review, while an unhealthy one
// means the instance was closed or never wired up.
//
// # Core Components
//
// Status: the health state of one cache - status level, descriptive message,
// timestamp, optional metrics, and hierarchical sub-statuses.
//
// Monitor: thread-safe tracking of multiple named cache statuses with
// concurrent read/write access.
//
// Checker: periodic prober that runs CheckCache against registered caches
// and publishes the results to a Monitor.
//
// # Basic Usage
//
// Probing a cache directly:
//
//	status := health.CheckCache("sessions", sessionCache, health.Thresholds{
//	    MinHitRate:    0.5,
//	    MinSamples:    1000,
//	    CapacityRatio: 0.9,
//	    MaxSize:       10000,
//	})
//	if status.IsDegraded() {
//	    log.Printf("sessions cache degraded: %s", status.Message)
//	}
//
// Continuous monitoring:
//
//	monitor := health.NewMonitor()
//	checker := health.NewChecker(monitor, 30*time.Second)
//	checker.Watch("sessions", sessionCache, health.Thresholds{MinHitRate: 0.5})
//	checker.Watch("profiles", profileCache, health.Thresholds{})
//
//	if err := checker.Start(ctx); err != nil {
//	    return err
//	}
//	defer checker.Stop()
//
//	systemHealth := monitor.AggregateHealth("platform")
//
// # Aggregation
//
// AggregateHealth combines all monitored statuses using worst-case rules:
// any unhealthy cache marks the system unhealthy; any degraded cache (with
// none unhealthy) marks it degraded; otherwise the system is healthy.
//
// # Security
//
// Error messages passed through NewUnhealthyError are sanitized before
// exposure: URLs, file paths, IP addresses, ports, and credential-looking
// fragments are redacted. Health payloads often end up on dashboards and in
// logs, so sanitization is not optional.
//
// # Thread Safety
//
// All Monitor and Checker operations are safe for concurrent use. Status is
// a value type; WithMetrics and WithSubStatus return copies rather than
// mutating in place.
package health
