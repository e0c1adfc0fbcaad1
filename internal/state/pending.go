package state

import "context"

// Pending is the outcome of a mutation that has been applied locally and is
// being persisted in the background. It resolves exactly once.
type Pending[T any] struct {
	optimistic T
	done       chan struct{}
	value      T
	err        error
}

func newPending[T any](optimistic T) *Pending[T] {
	return &Pending[T]{optimistic: optimistic, done: make(chan struct{})}
}

// resolved returns a Pending that has already completed.
func resolved[T any](value T, err error) *Pending[T] {
	p := newPending(value)
	p.resolve(value, err)
	return p
}

func (p *Pending[T]) resolve(value T, err error) {
	p.value, p.err = value, err
	close(p.done)
}

// Optimistic returns the value as it was applied locally.
func (p *Pending[T]) Optimistic() T {
	return p.optimistic
}

// Done is closed once the mutation has been confirmed or reverted.
func (p *Pending[T]) Done() <-chan struct{} {
	return p.done
}

// Wait blocks until the mutation resolves or ctx ends. On success it returns
// the confirmed value. A non-nil error other than ctx.Err() means the local
// change was reverted.
func (p *Pending[T]) Wait(ctx context.Context) (T, error) {
	select {
	case <-p.done:
		return p.value, p.err
	case <-ctx.Done():
		var zero T
		return zero, ctx.Err()
	}
}
