package deferred

import "context"

// Deferred is a handle to a computation that may still be pending. It settles
// exactly once, into either a value or an error, and every holder of the
// handle observes the same outcome.
type Deferred[T any] struct {
	done  chan struct{}
	value T
	err   error
}

// Run starts fn in its own goroutine and returns immediately with a handle to
// its eventual outcome. The context is forwarded to fn unmodified; a fn that
// honors cancellation settles the deferred with whatever error it returns.
func Run[T any](ctx context.Context, fn func(context.Context) (T, error)) *Deferred[T] {
	d := &Deferred[T]{done: make(chan struct{})}
	go func() {
		defer close(d.done)
		d.value, d.err = fn(ctx)
	}()
	return d
}

// Resolved returns an already-settled deferred holding value.
func Resolved[T any](value T) *Deferred[T] {
	d := &Deferred[T]{done: make(chan struct{}), value: value}
	close(d.done)
	return d
}

// Rejected returns an already-settled deferred holding err.
func Rejected[T any](err error) *Deferred[T] {
	d := &Deferred[T]{done: make(chan struct{}), err: err}
	close(d.done)
	return d
}

// Wait blocks until the deferred settles or ctx is done, whichever comes
// first. Giving up does not settle the deferred: the underlying computation
// keeps running and other waiters are unaffected.
func (d *Deferred[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-d.done:
		return d.value, d.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// Done returns a channel closed when the deferred settles. Useful for select
// loops and for racing several deferreds.
func (d *Deferred[T]) Done() <-chan struct{} {
	return d.done
}

// Settled reports whether the deferred has an outcome, without blocking.
func (d *Deferred[T]) Settled() bool {
	select {
	case <-d.done:
		return true
	default:
		return false
	}
}
