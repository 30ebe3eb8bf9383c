package promises

import (
	"context"
	"sync"
)

// Deferred is a one-shot future. The first Resolve or Reject wins and later
// calls are ignored.
type Deferred[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

// NewDeferred creates an unsettled Deferred
func NewDeferred[T any]() *Deferred[T] {
	return &Deferred[T]{done: make(chan struct{})}
}

// Resolve settles the deferred with v. It reports whether this call settled it.
func (d *Deferred[T]) Resolve(v T) bool {
	return d.settle(v, nil)
}

// Reject settles the deferred with err. It reports whether this call settled it.
func (d *Deferred[T]) Reject(err error) bool {
	var zero T
	return d.settle(zero, err)
}

func (d *Deferred[T]) settle(v T, err error) bool {
	settled := false
	d.once.Do(func() {
		d.value = v
		d.err = err
		settled = true
		close(d.done)
	})
	return settled
}

// Done is closed once the deferred settles
func (d *Deferred[T]) Done() <-chan struct{} {
	return d.done
}

// Wait blocks until the deferred settles or ctx is done
func (d *Deferred[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-d.done:
		return d.value, d.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
