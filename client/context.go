package client

import "sync"

// CancellationContext is shared between a dispatcher and the work it
// executes. Work consults IsCancelled at safe points; cancellation is
// purely cooperative and never interrupts a step already in flight. The
// context also chains cancellation into sub-operations: work registers the
// cancel handle of each sub-request through ExecuteOrCancelled, and a
// later CancelOperation forwards to the currently registered handle.
type CancellationContext struct {
	mu        sync.Mutex
	cancelled bool
	subToken  CancellationToken
}

// NewCancellationContext returns a fresh, uncancelled context.
func NewCancellationContext() *CancellationContext {
	return &CancellationContext{}
}

// IsCancelled reports whether cancellation has been requested. Cheap and
// safe from any goroutine.
func (c *CancellationContext) IsCancelled() bool {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.cancelled
}

// ExecuteOrCancelled atomically checks for cancellation and, if none was
// requested, runs execute and retains the returned token as the current
// sub-operation cancel handle. If cancellation was already requested,
// onCancel (may be nil) runs instead and the result is false.
//
// execute runs under the context's lock so that a concurrent
// CancelOperation either observes the registered sub-token or the
// cancelled flag, never neither. It must be cheap and must not call back
// into this context.
func (c *CancellationContext) ExecuteOrCancelled(execute func() CancellationToken, onCancel func()) bool {
	c.mu.Lock()
	if c.cancelled {
		c.mu.Unlock()
		if onCancel != nil {
			onCancel()
		}
		return false
	}
	c.subToken = execute()
	c.mu.Unlock()
	return true
}

// CancelOperation requests cooperative cancellation: it marks the context
// cancelled and cancels the current sub-operation, if any. Idempotent.
// The sub-token is cancelled outside the lock; a sub-cancel that
// re-enters the context cannot deadlock.
func (c *CancellationContext) CancelOperation() {
	c.mu.Lock()
	if c.cancelled {
		c.mu.Unlock()
		return
	}
	c.cancelled = true
	sub := c.subToken
	c.subToken = CancellationToken{}
	c.mu.Unlock()

	sub.Cancel()
}

// Token returns a cancellation token bound to this context.
func (c *CancellationContext) Token() CancellationToken {
	return NewCancellationToken(c.CancelOperation)
}
