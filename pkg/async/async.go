package async

import (
	"context"
	"fmt"
	"sync"
)

// Future represents the result of a computation that may still be running.
type Future[U any] struct {
	result U
	err    error
	once   sync.Once
	done   chan struct{}
}

func newFuture[U any]() *Future[U] {
	return &Future[U]{done: make(chan struct{})}
}

// settle stores the outcome exactly once and releases waiters.
func (f *Future[U]) settle(res U, err error) {
	f.once.Do(func() {
		f.result = res
		f.err = err
		close(f.done)
	})
}

// Resolve returns a future that is already complete with value.
// Synchronous producers use it to satisfy APIs that expect a Future without
// spawning a goroutine.
func Resolve[U any](value U) *Future[U] {
	f := newFuture[U]()
	f.settle(value, nil)
	return f
}

// Reject returns a future that is already complete with err.
func Reject[U any](err error) *Future[U] {
	f := newFuture[U]()
	var zero U
	f.settle(zero, err)
	return f
}

// Go runs fn in its own goroutine and returns a Future for its result.
// A panic inside fn completes the future with an error wrapping ErrPanic.
// If ctx is already cancelled fn is not started.
func Go[U any](ctx context.Context, fn func(context.Context) (U, error)) *Future[U] {
	f := newFuture[U]()

	go func() {
		var zero U
		defer func() {
			if r := recover(); r != nil {
				f.settle(zero, fmt.Errorf("%w: %v", ErrPanic, r))
			}
		}()

		if err := ctx.Err(); err != nil {
			f.settle(zero, err)
			return
		}

		res, err := fn(ctx)
		f.settle(res, err)
	}()

	return f
}

// Await blocks until the future completes.
func (f *Future[U]) Await() (U, error) {
	<-f.done
	return f.result, f.err
}

// AwaitContext blocks until the future completes or ctx is done, whichever
// happens first. The computation itself is not interrupted by ctx.
func (f *Future[U]) AwaitContext(ctx context.Context) (U, error) {
	select {
	case <-f.done:
		return f.result, f.err
	case <-ctx.Done():
		var zero U
		return zero, ctx.Err()
	}
}

// IsComplete reports whether the future has finished, without blocking.
func (f *Future[U]) IsComplete() bool {
	select {
	case <-f.done:
		return true
	default:
		return false
	}
}

// WaitAll waits for every future and returns their results in argument order.
// The first error encountered in that order is returned after all futures
// have completed.
func WaitAll[U any](futures ...*Future[U]) ([]U, error) {
	results := make([]U, len(futures))
	var firstErr error

	for i, future := range futures {
		res, err := future.Await()
		results[i] = res
		if err != nil && firstErr == nil {
			firstErr = err
		}
	}

	return results, firstErr
}
