package cache

import (
	"fmt"
	"strings"
	"time"

	"github.com/c360/cachekit/errors"
)

// globMeta are the pattern metacharacters recognized by the glob engine.
// An identifier containing one would corrupt every scoped pattern the view
// builds ("{prefix}*" and friends), so such identifiers are rejected at
// construction time.
const globMeta = `*?[]{}\!`

// namespaceView is a key-prefixing decorator. It owns only a prefix and a
// reference to the wrapped cache - it is a view, not a copy - and introduces
// no synchronization of its own: every operation transforms the key (or
// pattern) and delegates, inheriting the wrapped cache's concurrency
// guarantees. Views compose: wrapping a view prepends the outer prefix
// closest to the storage key.
type namespaceView struct {
	prefix string // always ends with ':'
	inner  Cache
}

// newNamespaceView validates the namespace and builds the view.
func newNamespaceView(inner Cache, ns string) (Cache, error) {
	if ns == "" {
		return nil, errors.WrapInvalid(errors.ErrEmptyNamespace,
			"NamespaceView", "New", "namespace validation")
	}
	if strings.ContainsAny(ns, globMeta) {
		return nil, errors.WrapInvalid(
			fmt.Errorf("namespace %q contains pattern metacharacters", ns),
			"NamespaceView", "New", "namespace validation")
	}
	return &namespaceView{prefix: ns + ":", inner: inner}, nil
}

func (v *namespaceView) key(key string) string {
	return v.prefix + key
}

// strip removes the view's prefix from a stored key so results stay in the
// caller's coordinate system.
func (v *namespaceView) strip(key string) string {
	return strings.TrimPrefix(key, v.prefix)
}

func (v *namespaceView) Get(key string) (any, bool) {
	return v.inner.Get(v.key(key))
}

func (v *namespaceView) Set(key string, value any) bool {
	return v.inner.Set(v.key(key), value)
}

func (v *namespaceView) SetWithTTL(key string, value any, ttl time.Duration) bool {
	return v.inner.SetWithTTL(v.key(key), value, ttl)
}

func (v *namespaceView) Delete(key string) bool {
	return v.inner.Delete(v.key(key))
}

func (v *namespaceView) Exists(key string) bool {
	return v.inner.Exists(v.key(key))
}

func (v *namespaceView) TTL(key string) (time.Duration, bool) {
	return v.inner.TTL(v.key(key))
}

func (v *namespaceView) Expire(key string, ttl time.Duration) bool {
	return v.inner.Expire(v.key(key), ttl)
}

func (v *namespaceView) GetMany(keys []string) map[string]any {
	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = v.key(key)
	}

	inner := v.inner.GetMany(prefixed)
	result := make(map[string]any, len(inner))
	for key, value := range inner {
		result[v.strip(key)] = value
	}
	return result
}

func (v *namespaceView) SetMany(pairs map[string]any) int {
	return v.inner.SetMany(v.prefixPairs(pairs))
}

func (v *namespaceView) SetManyWithTTL(pairs map[string]any, ttl time.Duration) int {
	return v.inner.SetManyWithTTL(v.prefixPairs(pairs), ttl)
}

func (v *namespaceView) prefixPairs(pairs map[string]any) map[string]any {
	prefixed := make(map[string]any, len(pairs))
	for key, value := range pairs {
		prefixed[v.key(key)] = value
	}
	return prefixed
}

func (v *namespaceView) DeleteMany(keys []string) int {
	prefixed := make([]string, len(keys))
	for i, key := range keys {
		prefixed[i] = v.key(key)
	}
	return v.inner.DeleteMany(prefixed)
}

func (v *namespaceView) Increment(key string, delta int64) int64 {
	return v.inner.Increment(v.key(key), delta)
}

func (v *namespaceView) Decrement(key string, delta int64) int64 {
	return v.inner.Decrement(v.key(key), delta)
}

func (v *namespaceView) SetIfAbsent(key string, value any) bool {
	return v.inner.SetIfAbsent(v.key(key), value)
}

func (v *namespaceView) CompareAndSwap(key string, expected, newValue any) bool {
	return v.inner.CompareAndSwap(v.key(key), expected, newValue)
}

// KeysMatching scopes the pattern to this namespace and reports matches in
// the caller's coordinate system, prefix stripped.
func (v *namespaceView) KeysMatching(pattern string) []string {
	matched := v.inner.KeysMatching(v.prefix + pattern)
	keys := make([]string, len(matched))
	for i, key := range matched {
		keys[i] = v.strip(key)
	}
	return keys
}

func (v *namespaceView) CountMatching(pattern string) int {
	return v.inner.CountMatching(v.prefix + pattern)
}

func (v *namespaceView) DeleteMatching(pattern string) int {
	return v.inner.DeleteMatching(v.prefix + pattern)
}

// WithNamespace nests a further namespace inside this view. The inner
// namespace sits closest to the logical key: wrapping "ns" around a view
// with prefix "tenant:a:" yields stored keys "tenant:a:ns:{key}".
func (v *namespaceView) WithNamespace(ns string) (Cache, error) {
	return newNamespaceView(v, ns)
}

// ClearNamespace clears a nested namespace within this view's scope.
func (v *namespaceView) ClearNamespace(ns string) int {
	return v.DeleteMatching(ns + ":*")
}

func (v *namespaceView) Keys() []string {
	return v.KeysMatching("*")
}

// Size reports the number of live entries within this namespace, not the
// size of the whole underlying store.
func (v *namespaceView) Size() int {
	return v.inner.CountMatching(v.prefix + "*")
}

// FlushAll removes every entry in this namespace only; the rest of the
// underlying cache is untouched.
func (v *namespaceView) FlushAll() int {
	return v.inner.DeleteMatching(v.prefix + "*")
}

// Ping delegates to the wrapped cache.
func (v *namespaceView) Ping() bool {
	return v.inner.Ping()
}

// Close is a no-op: closing a view must not close or disable the wrapped
// cache, which other views may still be using.
func (v *namespaceView) Close() error {
	return nil
}

// Stats reports the wrapped cache's counters with the size scoped to this
// namespace.
func (v *namespaceView) Stats() Summary {
	summary := v.inner.Stats()
	summary.Size = v.Size()
	return summary
}

func (v *namespaceView) ClearStats() {
	v.inner.ClearStats()
}

// Interface compliance
var _ Cache = (*namespaceView)(nil)
