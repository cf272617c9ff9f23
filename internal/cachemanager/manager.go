// Package cachemanager provides typed in-memory caches backed by go-cache.
package cachemanager

import "time"

// CacheManager is a typed key/value cache.
// Callers run on the UI goroutine, so methods take no context.
type CacheManager[K ~string, V any] interface {
	Get(key K) (V, bool)
	Set(key K, value V, ttl time.Duration)
	Take(key K) (V, bool)
	Delete(keys ...K)
	Flush()
	Keys() []K
	Len() int
}
