package cachemanager

import (
	"sort"
	"time"

	gocache "github.com/patrickmn/go-cache"

	"github.com/zjrosen/adaptive/internal/log"
)

const (
	// NoExpiration keeps entries until they are deleted explicitly.
	NoExpiration = gocache.NoExpiration
	// DefaultExpiration uses the expiration the cache was created with.
	DefaultExpiration = gocache.DefaultExpiration
	// NoCleanup disables the background janitor.
	NoCleanup time.Duration = 0
)

// InMemoryCacheManager is the go-cache implementation of CacheManager.
type InMemoryCacheManager[K ~string, V any] struct {
	useCase string
	cache   *gocache.Cache
}

// NewInMemoryCacheManager creates a cache. Pass NoExpiration and NoCleanup for a
// cache whose entries live until removed.
func NewInMemoryCacheManager[K ~string, V any](useCase string, defaultExpiration, cleanupInterval time.Duration) *InMemoryCacheManager[K, V] {
	return &InMemoryCacheManager[K, V]{
		useCase: useCase,
		cache:   gocache.New(defaultExpiration, cleanupInterval),
	}
}

// Get retrieves an item without removing it.
func (c *InMemoryCacheManager[K, V]) Get(key K) (V, bool) {
	var zero V

	value, found := c.cache.Get(string(key))
	if !found {
		return zero, false
	}
	v, ok := value.(V)
	if !ok {
		log.Error(log.CatCache, "wrong type assertion when getting value", "cache", c.useCase, "key", key)
		return zero, false
	}
	log.Debug(log.CatCache, "cache hit", "cache", c.useCase, "key", key)
	return v, true
}

// Set stores value under key, replacing any existing entry.
func (c *InMemoryCacheManager[K, V]) Set(key K, value V, ttl time.Duration) {
	c.cache.Set(string(key), value, ttl)
}

// Take removes and returns the entry for key.
func (c *InMemoryCacheManager[K, V]) Take(key K) (V, bool) {
	v, ok := c.Get(key)
	if ok {
		c.cache.Delete(string(key))
	}
	return v, ok
}

// Delete removes the given keys. Missing keys are ignored.
func (c *InMemoryCacheManager[K, V]) Delete(keys ...K) {
	for _, key := range keys {
		c.cache.Delete(string(key))
	}
}

// Flush removes every entry.
func (c *InMemoryCacheManager[K, V]) Flush() {
	if n := c.cache.ItemCount(); n > 0 {
		log.Debug(log.CatCache, "cache flushed", "cache", c.useCase, "entries", n)
	}
	c.cache.Flush()
}

// Keys returns the live keys in sorted order.
func (c *InMemoryCacheManager[K, V]) Keys() []K {
	items := c.cache.Items()
	keys := make([]K, 0, len(items))
	for k := range items {
		keys = append(keys, K(k))
	}
	sort.Slice(keys, func(i, j int) bool { return keys[i] < keys[j] })
	return keys
}

// Len returns the number of entries, including expired ones not yet cleaned up.
func (c *InMemoryCacheManager[K, V]) Len() int {
	return c.cache.ItemCount()
}

var _ CacheManager[string, int] = (*InMemoryCacheManager[string, int])(nil)
