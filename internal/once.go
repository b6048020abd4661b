package internal

import (
	"context"
	"sync"
)

// Once memoizes the first successful result of a call. Concurrent callers
// share a single in-flight attempt; a failed attempt is not kept, so the next
// caller runs fn again.
type Once[T any] struct {
	mu       sync.Mutex
	done     bool
	val      T
	inflight chan struct{}
}

// NewOnce creates a new Once instance ready for use.
func NewOnce[T any]() *Once[T] {
	return &Once[T]{}
}

// Do returns the memoized value, running fn with the caller's ctx when no
// attempt has succeeded yet and none is running.
//
// A caller that finds another attempt in flight waits for it until its own
// ctx is done. If that attempt fails, the waiter makes its own.
func (o *Once[T]) Do(ctx context.Context, fn func(context.Context) (T, error)) (T, error) {
	for {
		o.mu.Lock()
		if o.done {
			val := o.val
			o.mu.Unlock()
			return val, nil
		}
		if o.inflight == nil {
			ch := make(chan struct{})
			o.inflight = ch
			o.mu.Unlock()
			return o.run(ctx, ch, fn)
		}
		ch := o.inflight
		o.mu.Unlock()

		select {
		case <-ch:
		case <-ctx.Done():
			var zero T
			return zero, ctx.Err()
		}
	}
}

func (o *Once[T]) run(ctx context.Context, ch chan struct{}, fn func(context.Context) (T, error)) (val T, err error) {
	returned := false
	defer func() {
		o.mu.Lock()
		if returned && err == nil {
			o.val = val
			o.done = true
		}
		o.inflight = nil
		o.mu.Unlock()
		close(ch)
	}()
	val, err = fn(ctx)
	returned = true
	return val, err
}

// Done returns true once a call has succeeded.
func (o *Once[T]) Done() bool {
	o.mu.Lock()
	defer o.mu.Unlock()
	return o.done
}
