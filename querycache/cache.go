package querycache

import (
	"context"
	"time"

	"github.com/puzpuzpuz/xsync/v3"
	"github.com/rs/zerolog"

	"github.com/Thiagolino8/simple-svelte-query/deferred"
	"github.com/Thiagolino8/simple-svelte-query/keycodec"
)

// Cache maps canonical keys to deferred computations. It stores the deferred
// value itself, not its eventual result, so concurrent callers requesting the
// same key share one in-flight computation and callers can compose on the
// handle directly.
type Cache[T any] struct {
	entries *xsync.MapOf[string, *entry[T]]
	cfg     Config
	hydrate HydrateFunc[T]
	log     zerolog.Logger
}

// New constructs a cache from the given configuration.
func New[T any](cfg Config, opts ...CacheOption[T]) (*Cache[T], error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	if cfg.Clock == nil {
		cfg.Clock = time.Now
	}

	c := &Cache[T]{
		entries: xsync.NewMapOf[string, *entry[T]](),
		cfg:     cfg,
		log:     cfg.Logger,
	}
	for _, opt := range opts {
		opt(c)
	}
	return c, nil
}

// FetchOrRefresh is the staleness-respecting read path. An absent key is
// populated (through the hydration hook, when installed); a stale entry is
// replaced by a fresh invocation that bypasses the hook; a fresh entry is
// returned unchanged without invoking compute. The entry is installed in the
// map before the computation settles, so a second caller arriving while the
// first computation is still pending observes the same deferred rather than
// starting a duplicate.
func (c *Cache[T]) FetchOrRefresh(ctx context.Context, d *Descriptor[T]) *deferred.Deferred[T] {
	key := d.CanonicalKey()
	window := c.staleWindow(d)

	var value *deferred.Deferred[T]
	c.entries.Compute(key, func(old *entry[T], loaded bool) (*entry[T], bool) {
		if loaded && !staleAt(c.cfg.Clock(), old.createdAt.Load(), window) {
			value = old.value
			return old, false
		}
		if loaded {
			// Live refetch of a stale entry; hydration only covers first
			// population.
			value = d.Invoke(ctx)
			c.log.Debug().Str("key", key).Msg("refreshing stale entry")
		} else {
			value = c.populate(ctx, key, d)
			c.log.Debug().Str("key", key).Msg("populating entry")
		}
		return newEntry(value, c.cfg.Clock().UnixMilli()), false
	})
	return value
}

// Ensure is the staleness-ignoring read path: an existing entry is returned
// unchanged no matter its age, and compute is never invoked for it. An absent
// key is populated exactly as FetchOrRefresh would on first load.
func (c *Cache[T]) Ensure(ctx context.Context, d *Descriptor[T]) *deferred.Deferred[T] {
	key := d.CanonicalKey()

	var value *deferred.Deferred[T]
	c.entries.Compute(key, func(old *entry[T], loaded bool) (*entry[T], bool) {
		if loaded {
			value = old.value
			return old, false
		}
		value = c.populate(ctx, key, d)
		c.log.Debug().Str("key", key).Msg("populating entry")
		return newEntry(value, c.cfg.Clock().UnixMilli()), false
	})
	return value
}

// Set installs an already-resolved value for the key, unconditionally
// replacing any existing entry regardless of staleness.
func (c *Cache[T]) Set(key keycodec.Key, value T) error {
	canonical, err := keycodec.Encode(key)
	if err != nil {
		return err
	}
	c.entries.Store(canonical, newEntry(deferred.Resolved(value), c.cfg.Clock().UnixMilli()))
	return nil
}

// Get returns the held deferred for the key, or ok=false when no entry
// exists. It never triggers computation; the returned deferred may still be
// pending. The only possible error is an unserializable key.
func (c *Cache[T]) Get(key keycodec.Key) (*deferred.Deferred[T], bool, error) {
	canonical, err := keycodec.Encode(key)
	if err != nil {
		return nil, false, err
	}
	e, ok := c.entries.Load(canonical)
	if !ok {
		return nil, false, nil
	}
	return e.value, true, nil
}

// Remove deletes the entry for the key if present. Removing an absent key is
// a no-op.
func (c *Cache[T]) Remove(key keycodec.Key) error {
	canonical, err := keycodec.Encode(key)
	if err != nil {
		return err
	}
	c.entries.Delete(canonical)
	return nil
}

// RemoveDescriptor deletes the entry for the descriptor's canonical key.
// Unlike Remove(d.OriginalKey()), this targets the exact slot the descriptor
// addresses even for struct-valued fragments, whose decoded form does not
// re-encode to the same canonical string.
func (c *Cache[T]) RemoveDescriptor(d *Descriptor[T]) {
	c.entries.Delete(d.CanonicalKey())
}

// Clear removes all entries unconditionally.
func (c *Cache[T]) Clear() {
	c.entries.Clear()
}

// Invalidate marks the single entry for the key maximally stale, leaving its
// held value untouched. The next FetchOrRefresh for the key recomputes, while
// Ensure keeps returning the existing value. Absent keys are a no-op.
func (c *Cache[T]) Invalidate(key keycodec.Key) error {
	canonical, err := keycodec.Encode(key)
	if err != nil {
		return err
	}
	if e, ok := c.entries.Load(canonical); ok {
		e.createdAt.Store(StaleForever)
		c.log.Debug().Str("key", canonical).Msg("invalidated entry")
	}
	return nil
}

// InvalidateByPrefix marks every entry whose key sequence begins with the
// given fragment sequence maximally stale. Matching is on whole fragments:
// the prefix ["user"] does not touch the key ["userset"]. A nil or empty
// prefix invalidates every entry.
func (c *Cache[T]) InvalidateByPrefix(prefix keycodec.Key) error {
	encoded, err := keycodec.EncodePrefix(prefix)
	if err != nil {
		return err
	}
	c.entries.Range(func(key string, e *entry[T]) bool {
		if keycodec.MatchesPrefix(key, encoded) {
			e.createdAt.Store(StaleForever)
			c.log.Debug().Str("key", key).Msg("invalidated entry")
		}
		return true
	})
	return nil
}

// Len reports the number of stored entries.
func (c *Cache[T]) Len() int {
	return c.entries.Size()
}

// staleWindow resolves the effective staleness window for a descriptor: its
// explicit window when set, else the cache default.
func (c *Cache[T]) staleWindow(d *Descriptor[T]) time.Duration {
	if window, ok := d.StaleAfter(); ok {
		return window
	}
	return c.cfg.DefaultStaleAfter
}

// populate produces a key's first value, routing through the hydration hook
// when one is installed.
func (c *Cache[T]) populate(ctx context.Context, tag string, d *Descriptor[T]) *deferred.Deferred[T] {
	if c.hydrate != nil {
		return c.hydrate(tag, func() *deferred.Deferred[T] {
			return d.Invoke(ctx)
		})
	}
	return d.Invoke(ctx)
}
