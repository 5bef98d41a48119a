// Package errors provides standardized error handling patterns for cachekit.
//
// # Overview
//
// The errors package implements a three-class error classification system:
// Transient (temporary, retryable), Invalid (bad input, non-retryable), and
// Fatal (unrecoverable, stop processing).
//
// In a cache library the dominant "failure" path - a missing or expired key -
// is not an error at all; the cache contract reports absence through boolean
// and zero-value returns. This package covers the remaining, genuinely
// exceptional paths: construction with an invalid configuration or an empty
// namespace/tenant identifier (Invalid), Prometheus registration conflicts
// (Invalid), and exposition server faults (Transient or Fatal).
//
// # Quick Start
//
// Use standard error variables for known conditions:
//
//	if tenantID == "" {
//	    return nil, errors.WrapInvalid(errors.ErrEmptyTenantID,
//	        "TenantCache", "New", "tenant id validation")
//	}
//
// Check classification when deciding how to react:
//
//	if err := metricServer.Start(); err != nil {
//	    if errors.IsFatal(err) {
//	        log.Fatalf("cannot expose metrics: %v", err)
//	    }
//	}
//
// # Error Wrapping Pattern
//
// All error wrapping follows the standardized format
// "component.method: action failed: <cause>", preserving the cause for
// errors.Is and errors.As through the wrapping chain.
package errors
