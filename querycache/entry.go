package querycache

import (
	"sync/atomic"

	"github.com/Thiagolino8/simple-svelte-query/deferred"
)

// entry is the cache slot for one canonical key. The held deferred never
// changes identity after creation; slots are replaced wholesale on refresh,
// and only the timestamp mutates in place (invalidation marks it
// StaleForever).
type entry[T any] struct {
	value     *deferred.Deferred[T]
	createdAt atomic.Int64 // Unix milliseconds, or StaleForever
}

func newEntry[T any](value *deferred.Deferred[T], createdAt int64) *entry[T] {
	e := &entry[T]{value: value}
	e.createdAt.Store(createdAt)
	return e
}
