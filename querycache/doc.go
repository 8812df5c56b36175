// Package querycache caches asynchronous computations keyed by hierarchical,
// structurally-comparable identifiers.
//
// # Overview
//
// The cache stores the in-flight deferred computation itself, not merely its
// eventually-resolved result. Callers compose directly on the deferred value
// (await it, chain on Done, race it), and concurrent callers requesting the
// same key transparently share one in-flight computation.
//
// Two components, strictly layered:
//
//   - Descriptor: an immutable description of one query. Its key, the compute
//     function, and an optional staleness window. Built fresh on every call
//     into the cache; only the canonical key and compute survive.
//   - Cache: the mapping from canonical key to entry, with the read paths
//     (FetchOrRefresh, Ensure), direct access (Set, Get, Remove, Clear), and
//     exact plus prefix invalidation.
//
// # Basic Usage
//
//	c, err := querycache.New[User](querycache.DefaultConfig())
//	if err != nil {
//		return err
//	}
//
//	d, err := querycache.NewDescriptor(
//		keycodec.Key{"users", 10},
//		func(ctx context.Context, key keycodec.Key) (User, error) {
//			return client.FetchUser(ctx, key)
//		},
//		querycache.WithStaleAfter(30*time.Second),
//	)
//	if err != nil {
//		return err
//	}
//
//	user, err := c.FetchOrRefresh(ctx, d).Wait(ctx)
//
// # Read Paths
//
// FetchOrRefresh respects staleness: absent keys are computed, stale entries
// are replaced by a fresh computation, and fresh entries are returned without
// invoking compute. Ensure ignores staleness entirely: once a key is
// populated it is returned as-is forever, which guarantees presence without
// recompute churn.
//
// # De-duplication
//
// The entry is installed in the map synchronously, before its computation
// settles. A second caller arriving while the first computation is pending
// receives a handle to the SAME deferred and settles together with the first.
// That sharing is the de-duplication mechanism; there is no lock held across
// the computation.
//
// # Staleness and Invalidation
//
// Staleness is logical and evaluated lazily on read; nothing is proactively
// evicted by a timer. Invalidate marks one entry maximally stale and
// InvalidateByPrefix marks every entry whose key sequence begins with the
// given fragments. An invalidated entry keeps serving Ensure reads and is
// only recomputed by the next FetchOrRefresh.
//
// # Failure Semantics
//
// Nothing retries. A compute error settles the deferred as rejected, and the
// rejected entry is valid cached state: non-stale reads keep returning it
// until it is invalidated, naturally expires, or is overwritten by Set or a
// fresh FetchOrRefresh. Cancellation is forwarded to compute through the
// context and has no special cache-level handling.
//
// # Key Identity
//
// Keys are compared by their canonical serialized form; see the keycodec
// package for the structural, order-preserving encoding and its documented
// departure from field-order-normalizing schemes.
//
// # Hydration
//
// A HydrateFunc installed with WithHydrator wraps how a key's first value is
// produced, letting a host replay a server-started computation under the
// canonical key as tag instead of recomputing. Stale refreshes never consult
// the hook.
package querycache
