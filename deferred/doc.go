// Package deferred provides a minimal promise type: a shareable handle to an
// asynchronous computation in whatever state it is in, pending, resolved, or
// rejected.
//
// A cache that stores deferreds rather than resolved results lets concurrent
// readers of the same key share one in-flight computation and compose on the
// handle directly:
//
//	d := deferred.Run(ctx, func(ctx context.Context) (User, error) {
//		return client.FetchUser(ctx, id)
//	})
//
//	user, err := d.Wait(ctx)
//
// A deferred settles exactly once. Wait can be abandoned via the caller's
// context without disturbing the computation or other waiters.
package deferred
