package provisioning

import (
	"context"
	"sync"
)

// Pending is a suspended caller awaiting the outcome of an operation.
// Exactly one of Resolve or Reject is called, at most once.
type Pending[T any] interface {
	Resolve(value T)
	Reject(err error)
}

// Promise is a channel-backed Pending. Only the first settlement counts.
type Promise[T any] struct {
	once  sync.Once
	done  chan struct{}
	value T
	err   error
}

// NewPromise creates an unsettled Promise.
func NewPromise[T any]() *Promise[T] {
	return &Promise[T]{done: make(chan struct{})}
}

// Resolve settles the promise with value.
func (p *Promise[T]) Resolve(value T) {
	p.once.Do(func() {
		p.value = value
		close(p.done)
	})
}

// Reject settles the promise with err.
func (p *Promise[T]) Reject(err error) {
	p.once.Do(func() {
		p.err = err
		close(p.done)
	})
}

// Done is closed once the promise is settled.
func (p *Promise[T]) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the promise settles or ctx is done.
func (p *Promise[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.value, p.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}

// PendingFuncs adapts a pair of functions to Pending.
type PendingFuncs[T any] struct {
	OnResolve func(T)
	OnReject  func(error)
}

// Resolve calls OnResolve if set.
func (f PendingFuncs[T]) Resolve(value T) {
	if f.OnResolve != nil {
		f.OnResolve(value)
	}
}

// Reject calls OnReject if set.
func (f PendingFuncs[T]) Reject(err error) {
	if f.OnReject != nil {
		f.OnReject(err)
	}
}

var (
	_ Pending[Exchange] = (*Promise[Exchange])(nil)
	_ Pending[struct{}] = PendingFuncs[struct{}]{}
)
