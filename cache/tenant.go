package cache

import (
	"context"
	"fmt"
	"strings"

	"github.com/c360/cachekit/errors"
)

// Tenant caches are namespace views keyed by tenant identifier. Two tenant
// caches built over the same base with different ids can never observe each
// other's keys through any operation, because every key - including pattern
// and flush operations - is scoped under "tenant:{id}:".

// tenantKeyPrefix is the reserved prefix for tenant-scoped keys.
const tenantKeyPrefix = "tenant:"

// TenantKey returns the storage key a tenant cache uses for a logical key:
// "tenant:{tenantID}:{key}".
func TenantKey(tenantID, key string) string {
	return tenantKeyPrefix + tenantID + ":" + key
}

// NewTenantCache returns a view of base isolated to the given tenant.
// Fails if tenantID is empty or contains pattern metacharacters, which
// would break the view's scoped pattern operations.
func NewTenantCache(base Cache, tenantID string) (Cache, error) {
	if tenantID == "" {
		return nil, errors.WrapInvalid(errors.ErrEmptyTenantID,
			"TenantCache", "New", "tenant id validation")
	}
	if strings.ContainsAny(tenantID, globMeta) {
		return nil, errors.WrapInvalid(
			fmt.Errorf("tenant id %q contains pattern metacharacters", tenantID),
			"TenantCache", "New", "tenant id validation")
	}
	return &namespaceView{prefix: tenantKeyPrefix + tenantID + ":", inner: base}, nil
}

// TenantIdentifier is implemented by request types that know their tenant.
type TenantIdentifier interface {
	TenantID() string
}

// ExtractTenantCache inspects a request-like value for a tenant identity and
// returns a tenant cache bound to it. Recognized shapes:
//
//   - any value implementing TenantIdentifier
//   - map[string]any{"tenant": map[string]any{"id": ...}}
//   - map[string]any{"tenant_id": ...}
//
// When no tenant identity is present (or it is empty), base itself is
// returned - an explicit fallback, not an error.
func ExtractTenantCache(base Cache, req any) Cache {
	id := extractTenantID(req)
	if id == "" {
		return base
	}
	tc, err := NewTenantCache(base, id)
	if err != nil {
		return base
	}
	return tc
}

func extractTenantID(req any) string {
	switch r := req.(type) {
	case TenantIdentifier:
		return r.TenantID()
	case map[string]any:
		if tenant, ok := r["tenant"].(map[string]any); ok {
			if id, ok := tenant["id"].(string); ok {
				return id
			}
		}
		if id, ok := r["tenant_id"].(string); ok {
			return id
		}
	}
	return ""
}

// contextKey is used for context values in this package.
type contextKey string

const contextKeyTenantID contextKey = "cachekit-tenant-id"

// WithTenantID returns a context carrying the tenant identity, the Go-native
// request shape for middleware that resolves the tenant upstream.
func WithTenantID(ctx context.Context, tenantID string) context.Context {
	return context.WithValue(ctx, contextKeyTenantID, tenantID)
}

// TenantIDFromContext retrieves the tenant identity from the context.
func TenantIDFromContext(ctx context.Context) (string, bool) {
	id, ok := ctx.Value(contextKeyTenantID).(string)
	return id, ok && id != ""
}

// TenantCacheFromContext returns a tenant cache bound to the context's
// tenant identity, or base itself when the context carries none.
func TenantCacheFromContext(ctx context.Context, base Cache) Cache {
	id, ok := TenantIDFromContext(ctx)
	if !ok {
		return base
	}
	tc, err := NewTenantCache(base, id)
	if err != nil {
		return base
	}
	return tc
}
