package pipeline

import (
	"context"
	"errors"
)

// ErrStopped is returned by Configure once Run has returned.
var ErrStopped = errors.New("pipeline actor stopped")

// ConfigureFunc changes a Pipeline and reports a Delta to publish, if any.
type ConfigureFunc func(*Pipeline) (Delta, bool, error)

type request struct {
	fn   ConfigureFunc
	done chan error
}

// Actor owns a Pipeline inside the goroutine running Run. Chunks arrive on a
// channel, deltas leave on another, and configuration changes are executed
// between chunks.
type Actor struct {
	p        *Pipeline
	deltas   chan Delta
	requests chan request
	stopped  chan struct{}
}

// NewActor wraps p. p must not be used directly once Run has started.
func NewActor(p *Pipeline) *Actor {
	return &Actor{
		p:        p,
		deltas:   make(chan Delta, 64),
		requests: make(chan request),
		stopped:  make(chan struct{}),
	}
}

// Deltas returns the output channel. It is closed when Run returns.
func (a *Actor) Deltas() <-chan Delta {
	return a.deltas
}

// Run pushes every chunk from in through the pipeline until in is closed,
// then flushes. It returns ctx.Err() on cancellation and the first stage
// error otherwise.
func (a *Actor) Run(ctx context.Context, in <-chan string) error {
	defer close(a.deltas)
	defer close(a.stopped)
	for {
		select {
		case <-ctx.Done():
			return ctx.Err()
		case chunk, ok := <-in:
			if !ok {
				d, err := a.p.Flush()
				if err != nil {
					return err
				}
				return a.publish(ctx, d)
			}
			d, err := a.p.Push(chunk)
			if err != nil {
				return err
			}
			if err := a.publish(ctx, d); err != nil {
				return err
			}
		case req := <-a.requests:
			d, ok, err := req.fn(a.p)
			req.done <- err
			if ok {
				if err := a.publish(ctx, d); err != nil {
					return err
				}
			}
		}
	}
}

func (a *Actor) publish(ctx context.Context, d Delta) error {
	if d.Empty() {
		return nil
	}
	select {
	case a.deltas <- d:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Configure runs fn on the actor goroutine between chunks and returns its
// error. A Delta reported by fn is published before later chunks.
func (a *Actor) Configure(ctx context.Context, fn ConfigureFunc) error {
	req := request{fn: fn, done: make(chan error, 1)}
	select {
	case a.requests <- req:
	case <-a.stopped:
		return ErrStopped
	case <-ctx.Done():
		return ctx.Err()
	}
	select {
	case err := <-req.done:
		return err
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Empty reports whether d carries nothing for a consumer.
func (d Delta) Empty() bool {
	return d.Raw == "" && !d.Cleared && d.Text.Len() == 0 && len(d.Text.NewLines()) == 0
}
