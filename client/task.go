package client

import (
	"sync"

	"github.com/minff/geodata"
)

// Task bundles one work function with a single-fire completion callback.
// Lifecycle: Created → Executing → Completed or Cancelled. The callback
// fires exactly once across the task's lifetime, with either the true
// result or a Cancelled failure; cancellation is reported, never silently
// dropped.
type Task[T any] struct {
	work     func(*CancellationContext) Response[T]
	callback Callback[T]
	cctx     *CancellationContext
	once     sync.Once
}

// NewTask creates a task from a work function and a completion callback.
// A nil callback is allowed for fire-and-forget work.
func NewTask[T any](work func(*CancellationContext) Response[T], callback Callback[T]) *Task[T] {
	return &Task[T]{
		work:     work,
		callback: callback,
		cctx:     NewCancellationContext(),
	}
}

// Execute runs the work function synchronously on the calling goroutine
// and then delivers the completion. If the bound context was cancelled
// before the work started, the work is skipped and a Cancelled response is
// delivered; if the context was cancelled while the work ran, the
// response is replaced with Cancelled — completion and cancellation are
// mutually exclusive at the point of delivery.
func (t *Task[T]) Execute() {
	resp := Fail[T](geodata.ErrCancelled)
	if !t.cctx.IsCancelled() {
		resp = t.work(t.cctx)
		if t.cctx.IsCancelled() {
			resp = Fail[T](geodata.ErrCancelled)
		}
	}
	t.deliver(resp)
}

// CancelToken returns a token wired to this task's cancellation context.
func (t *Task[T]) CancelToken() CancellationToken {
	return t.cctx.Token()
}

// Context returns the task's cancellation context, for callers that need
// to share it with sub-requests.
func (t *Task[T]) Context() *CancellationContext { return t.cctx }

func (t *Task[T]) deliver(resp Response[T]) {
	t.once.Do(func() {
		if t.callback != nil {
			t.callback(resp)
		}
	})
}
