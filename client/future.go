package client

import "context"

// CancellableFuture adapts a callback-form operation into a blocking,
// cancellable handle. The completion is buffered in a single-slot channel,
// so a callback firing before anyone waits can never deadlock or be lost.
type CancellableFuture[T any] struct {
	slot  chan Response[T]
	token CancellationToken
}

// AsFuture dispatches request through the callback-form operation op and
// returns a future over its completion. The future's Cancel forwards to
// the token op returned.
func AsFuture[R any, T any](request R, op func(R, Callback[T]) CancellationToken) *CancellableFuture[T] {
	f := &CancellableFuture[T]{slot: make(chan Response[T], 1)}
	f.token = op(request, func(resp Response[T]) {
		f.slot <- resp
	})
	return f
}

// GetResponse blocks until the operation completes and returns its
// response. Call it once per future.
func (f *CancellableFuture[T]) GetResponse() Response[T] {
	return <-f.slot
}

// GetResponseContext is like GetResponse but gives up when ctx is done,
// returning the context error. The operation itself keeps running; cancel
// it explicitly if the result is no longer wanted.
func (f *CancellableFuture[T]) GetResponseContext(ctx context.Context) (Response[T], error) {
	select {
	case resp := <-f.slot:
		return resp, nil
	case <-ctx.Done():
		var zero Response[T]
		return zero, ctx.Err()
	}
}

// Cancel requests cancellation of the underlying operation. The future
// still completes: the blocked GetResponse observes a Cancelled response
// (or the true result if completion won the race).
func (f *CancellableFuture[T]) Cancel() {
	f.token.Cancel()
}

// CancelToken returns the captured cancellation token.
func (f *CancellableFuture[T]) CancelToken() CancellationToken {
	return f.token
}
