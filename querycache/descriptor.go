package querycache

import (
	"context"
	"math"
	"time"

	"github.com/Thiagolino8/simple-svelte-query/deferred"
	"github.com/Thiagolino8/simple-svelte-query/keycodec"
)

// StaleForever is the timestamp of an invalidated entry. It is treated as
// infinitely far in the past, so any staleness window considers it expired.
const StaleForever = math.MinInt64

// ComputeFn produces the value for one query. The cache never inspects or
// mutates the result; whatever the function returns, value or error, is what
// callers observe. The key passed in is a fresh structural reconstruction of
// the descriptor's key.
type ComputeFn[T any] func(ctx context.Context, key keycodec.Key) (T, error)

// Descriptor is an immutable description of one query: its hierarchical key,
// the function that computes its value, and an optional staleness window.
// Descriptors are cheap to build and are not retained by the cache; only the
// canonical key and compute function survive inside a cache slot.
type Descriptor[T any] struct {
	canonical  string
	compute    ComputeFn[T]
	staleAfter time.Duration
	hasWindow  bool
	clock      func() time.Time
}

type descriptorOptions struct {
	staleAfter time.Duration
	hasWindow  bool
	clock      func() time.Time
}

// DescriptorOption configures optional descriptor behavior.
type DescriptorOption func(*descriptorOptions)

// WithStaleAfter sets an explicit, non-negative staleness window. Descriptors
// without one inherit the owning cache's DefaultStaleAfter.
func WithStaleAfter(window time.Duration) DescriptorOption {
	return func(o *descriptorOptions) {
		o.staleAfter = window
		o.hasWindow = true
	}
}

// WithClock overrides the time source used by IsStale. Intended for tests.
func WithClock(clock func() time.Time) DescriptorOption {
	return func(o *descriptorOptions) {
		o.clock = clock
	}
}

// NewDescriptor canonicalizes the key eagerly and returns a descriptor for
// it. The only failure mode is a key that cannot be serialized, surfaced as a
// *keycodec.KeyEncodingError.
func NewDescriptor[T any](key keycodec.Key, compute ComputeFn[T], opts ...DescriptorOption) (*Descriptor[T], error) {
	canonical, err := keycodec.Encode(key)
	if err != nil {
		return nil, err
	}

	o := descriptorOptions{clock: time.Now}
	for _, opt := range opts {
		opt(&o)
	}

	return &Descriptor[T]{
		canonical:  canonical,
		compute:    compute,
		staleAfter: o.staleAfter,
		hasWindow:  o.hasWindow,
		clock:      o.clock,
	}, nil
}

// CanonicalKey returns the key's canonical string form, computed once at
// construction.
func (d *Descriptor[T]) CanonicalKey() string {
	return d.canonical
}

// OriginalKey reconstructs the key from its canonical form. The result
// round-trips structurally, never by identity: every call returns fresh
// values, with numbers as float64 and objects as map[string]any.
func (d *Descriptor[T]) OriginalKey() keycodec.Key {
	// The canonical form was produced by Encode at construction, so decoding
	// cannot fail.
	key, _ := keycodec.Decode(d.canonical)
	return key
}

// StaleAfter returns the explicit staleness window, if one was set.
func (d *Descriptor[T]) StaleAfter() (time.Duration, bool) {
	return d.staleAfter, d.hasWindow
}

// IsStale reports whether a value installed at lastUpdated (Unix
// milliseconds) has outlived the staleness window. The comparison is strict:
// a value aged exactly the window is not yet stale. A StaleForever timestamp
// is always stale. Descriptors without an explicit window evaluate against
// the zero window here; when used through a Cache, the cache substitutes its
// configured default instead.
func (d *Descriptor[T]) IsStale(lastUpdated int64) bool {
	return staleAt(d.clock(), lastUpdated, d.staleAfter)
}

// Invoke runs the compute function with the given context and a fresh copy of
// the original key, returning its deferred result unmodified.
func (d *Descriptor[T]) Invoke(ctx context.Context) *deferred.Deferred[T] {
	key := d.OriginalKey()
	return deferred.Run(ctx, func(ctx context.Context) (T, error) {
		return d.compute(ctx, key)
	})
}

func staleAt(now time.Time, lastUpdated int64, window time.Duration) bool {
	if lastUpdated == StaleForever {
		return true
	}
	return now.UnixMilli()-lastUpdated > window.Milliseconds()
}
