package cache

import (
	"context"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	cachekiterrors "github.com/c360/cachekit/errors"
)

func TestTenantKey(t *testing.T) {
	assert.Equal(t, "tenant:acme:settings", TenantKey("acme", "settings"))
}

func TestNewTenantCache_Validation(t *testing.T) {
	base := newTestCache(t, Config{})

	_, err := NewTenantCache(base, "")
	require.Error(t, err)
	assert.True(t, cachekiterrors.IsInvalid(err))

	// Tenant ids feed straight into scoped patterns, so glob syntax is refused.
	for _, id := range []string{"acme*", "org[1]", "t?", "a{b}"} {
		_, err := NewTenantCache(base, id)
		require.Error(t, err, "tenant id %q", id)
		assert.True(t, cachekiterrors.IsInvalid(err), "tenant id %q", id)
	}
}

func TestTenantCache_Isolation(t *testing.T) {
	base := newTestCache(t, Config{})

	idA, idB := uuid.NewString(), uuid.NewString()
	tenantA, err := NewTenantCache(base, idA)
	require.NoError(t, err)
	tenantB, err := NewTenantCache(base, idB)
	require.NoError(t, err)

	tenantA.Set("config", "A")
	tenantB.Set("config", "B")

	value, ok := tenantA.Get("config")
	require.True(t, ok)
	assert.Equal(t, "A", value)

	value, ok = tenantB.Get("config")
	require.True(t, ok)
	assert.Equal(t, "B", value)

	// Pattern ops cannot cross the tenant boundary
	assert.Equal(t, []string{"config"}, tenantA.KeysMatching("*"))
	assert.Equal(t, 1, tenantA.CountMatching("*"))

	// Neither can deletes
	tenantA.Delete("config")
	_, ok = tenantB.Get("config")
	assert.True(t, ok)
}

func TestTenantCache_FlushAllIsScoped(t *testing.T) {
	base := newTestCache(t, Config{})

	tenantA, err := NewTenantCache(base, "a")
	require.NoError(t, err)
	tenantB, err := NewTenantCache(base, "b")
	require.NoError(t, err)

	tenantA.Set("k", "A")
	tenantB.Set("k", "B")

	assert.Equal(t, 1, tenantA.FlushAll())

	_, ok := tenantA.Get("k")
	assert.False(t, ok)

	value, ok := tenantB.Get("k")
	require.True(t, ok, "flushing tenant A must leave tenant B untouched")
	assert.Equal(t, "B", value)
}

func TestTenantCache_NamespaceComposition(t *testing.T) {
	base := newTestCache(t, Config{})

	tenant, err := NewTenantCache(base, "acme")
	require.NoError(t, err)

	sessions, err := tenant.WithNamespace("sessions")
	require.NoError(t, err)

	sessions.Set("abc", 1)

	// Nesting a namespace inside a tenant yields tenant:{id}:{ns}:{key}
	assert.True(t, base.Exists("tenant:acme:sessions:abc"))
}

func TestTenantCache_PingAndClose(t *testing.T) {
	base := newTestCache(t, Config{})

	tenant, err := NewTenantCache(base, "acme")
	require.NoError(t, err)

	assert.True(t, tenant.Ping())
	require.NoError(t, tenant.Close())
	assert.True(t, base.Ping(), "closing a tenant view must not disable the base")

	_ = base.Close()
	assert.False(t, tenant.Ping(), "ping delegates to the base")
}

type tenantedRequest struct {
	id string
}

func (r tenantedRequest) TenantID() string { return r.id }

func TestExtractTenantCache(t *testing.T) {
	base := newTestCache(t, Config{})

	t.Run("TenantIdentifier", func(t *testing.T) {
		c := ExtractTenantCache(base, tenantedRequest{id: "iface"})
		c.Set("k", 1)
		assert.True(t, base.Exists("tenant:iface:k"))
	})

	t.Run("NestedTenantObject", func(t *testing.T) {
		req := map[string]any{"tenant": map[string]any{"id": "nested"}}
		c := ExtractTenantCache(base, req)
		c.Set("k", 1)
		assert.True(t, base.Exists("tenant:nested:k"))
	})

	t.Run("FlatTenantID", func(t *testing.T) {
		req := map[string]any{"tenant_id": "flat"}
		c := ExtractTenantCache(base, req)
		c.Set("k", 1)
		assert.True(t, base.Exists("tenant:flat:k"))
	})

	t.Run("NoTenantFallsBackToBase", func(t *testing.T) {
		req := map[string]any{"path": "/health"}
		c := ExtractTenantCache(base, req)
		assert.Same(t, base, c, "absent tenant returns base itself, unwrapped")
	})

	t.Run("EmptyTenantFallsBackToBase", func(t *testing.T) {
		c := ExtractTenantCache(base, map[string]any{"tenant_id": ""})
		assert.Same(t, base, c)
	})

	t.Run("NestedShapeTakesPrecedence", func(t *testing.T) {
		req := map[string]any{
			"tenant":    map[string]any{"id": "nested"},
			"tenant_id": "flat",
		}
		c := ExtractTenantCache(base, req)
		c.Set("precedence", 1)
		assert.True(t, base.Exists("tenant:nested:precedence"))
	})
}

func TestTenantContextHelpers(t *testing.T) {
	base := newTestCache(t, Config{})

	ctx := WithTenantID(context.Background(), "ctx-tenant")

	id, ok := TenantIDFromContext(ctx)
	require.True(t, ok)
	assert.Equal(t, "ctx-tenant", id)

	c := TenantCacheFromContext(ctx, base)
	c.Set("k", 1)
	assert.True(t, base.Exists("tenant:ctx-tenant:k"))

	// A bare context falls back to base
	plain := TenantCacheFromContext(context.Background(), base)
	assert.Same(t, base, plain)

	_, ok = TenantIDFromContext(context.Background())
	assert.False(t, ok)
}
