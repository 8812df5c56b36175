package querycache

import "github.com/Thiagolino8/simple-svelte-query/deferred"

// HydrateFunc lets a host environment substitute how a key's FIRST value is
// produced. It receives the canonical key as a tag plus a start function that
// runs the descriptor's compute, and returns the deferred to install; a
// typical implementation replays a server-produced result recorded under the
// same tag instead of calling start. The cache consults the hook only when a
// key is first populated, never when refreshing a stale entry.
type HydrateFunc[T any] func(tag string, start func() *deferred.Deferred[T]) *deferred.Deferred[T]

// CacheOption configures optional cache behavior.
type CacheOption[T any] func(*Cache[T])

// WithHydrator installs a hydration hook on the cache.
func WithHydrator[T any](h HydrateFunc[T]) CacheOption[T] {
	return func(c *Cache[T]) {
		c.hydrate = h
	}
}
