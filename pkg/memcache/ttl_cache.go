// pkg/memcache/ttl_cache.go
package mem

import (
	"strings"
	"time"

	gocache "github.com/patrickmn/go-cache"
)

type Cache[V any] interface {
	// Get returns the value for key if present and not expired.
	Get(key string) (V, bool)

	Set(key string, value V, ttl time.Duration)
}

// TTLCache is a process-lifetime cache with per-entry expiry and no size bound.
type TTLCache[V any] struct {
	store *gocache.Cache
}

func NewTTLCache[V any](cleanupInterval time.Duration) *TTLCache[V] {
	if cleanupInterval <= 0 {
		cleanupInterval = 10 * time.Minute
	}
	return &TTLCache[V]{
		store: gocache.New(gocache.NoExpiration, cleanupInterval),
	}
}

func (c *TTLCache[V]) Get(key string) (V, bool) {
	var zero V
	raw, ok := c.store.Get(key)
	if !ok {
		return zero, false
	}
	v, ok := raw.(V)
	if !ok {
		return zero, false
	}
	return v, true
}

func (c *TTLCache[V]) Set(key string, value V, ttl time.Duration) {
	if ttl <= 0 {
		c.store.Set(key, value, gocache.NoExpiration)
		return
	}
	c.store.Set(key, value, ttl)
}

func (c *TTLCache[V]) Len() int {
	return c.store.ItemCount()
}

// Key joins parts into a cache key, lowercasing and trimming each one so that
// "Jaipur " and "jaipur" share an entry.
func Key(parts ...string) string {
	norm := make([]string, len(parts))
	for i, p := range parts {
		norm[i] = strings.ToLower(strings.TrimSpace(p))
	}
	return strings.Join(norm, "::")
}
