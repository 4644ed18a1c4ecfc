// Package fetch coordinates asynchronous loads for a single screen resource.
// A refresh supersedes any in-flight fetch for the same resource: the screen
// binds only to the latest-issued request, and results that arrive out of
// order are discarded instead of clobbering newer data.
package fetch

import (
	"context"
	"sync"
)

// Result carries one fetch outcome.
type Result[T any] struct {
	Value T
	Err   error
}

// Coordinator runs fetches for one resource with last-write-wins delivery.
// The zero value is not usable; call NewCoordinator.
type Coordinator[T any] struct {
	mu     sync.Mutex
	gen    uint64
	cancel context.CancelFunc
	ch     chan Result[T]
}

// NewCoordinator returns a Coordinator ready for use.
func NewCoordinator[T any]() *Coordinator[T] {
	return &Coordinator[T]{ch: make(chan Result[T], 1)}
}

// Go issues a fetch. Any in-flight fetch is cancelled and its result, should
// it still arrive, is discarded. The result of the newest fetch is published
// to Updates.
func (c *Coordinator[T]) Go(ctx context.Context, fn func(context.Context) (T, error)) {
	c.mu.Lock()
	c.gen++
	gen := c.gen
	if c.cancel != nil {
		c.cancel()
	}
	fctx, cancel := context.WithCancel(ctx)
	c.cancel = cancel
	c.mu.Unlock()

	go func() {
		defer cancel()
		value, err := fn(fctx)

		c.mu.Lock()
		stale := gen != c.gen
		c.mu.Unlock()
		if stale {
			return
		}
		c.publish(Result[T]{Value: value, Err: err})
	}()
}

// publish is last-write-wins: an unread older result is replaced rather than
// blocking the fetch goroutine.
func (c *Coordinator[T]) publish(r Result[T]) {
	for {
		select {
		case c.ch <- r:
			return
		default:
			select {
			case <-c.ch:
			default:
			}
		}
	}
}

// Updates delivers the newest result. The channel holds at most one entry.
func (c *Coordinator[T]) Updates() <-chan Result[T] {
	return c.ch
}

// Stop cancels any in-flight fetch. Called when the screen unmounts so a late
// response cannot touch a dead view.
func (c *Coordinator[T]) Stop() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.gen++
	if c.cancel != nil {
		c.cancel()
		c.cancel = nil
	}
}
