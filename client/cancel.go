package client

import "sync"

// CancellationToken is a capability to cancel one in-flight operation. The
// zero value is a valid no-op token. Cancel is safe to call from any
// goroutine, any number of times, before or after the bound work
// completes; it never blocks on the work itself and repeated invocations
// have no observable effect.
type CancellationToken struct {
	once   *sync.Once
	cancel func()
}

// NewCancellationToken wraps a cancel function in a token. The function is
// invoked at most once, no matter how many times Cancel is called.
func NewCancellationToken(cancel func()) CancellationToken {
	return CancellationToken{once: new(sync.Once), cancel: cancel}
}

// Compose builds a composite token that fans out Cancel to every given
// sub-token. Every sub-token is attempted; cancel functions never panic by
// contract, so one sub-cancel cannot prevent the rest.
func Compose(tokens ...CancellationToken) CancellationToken {
	return NewCancellationToken(func() {
		for _, t := range tokens {
			t.Cancel()
		}
	})
}

// Cancel requests cancellation of the bound operation. No-op on the zero
// token and on every invocation after the first.
func (t CancellationToken) Cancel() {
	if t.once == nil || t.cancel == nil {
		return
	}
	t.once.Do(t.cancel)
}

// isZero reports whether the token is an unpopulated placeholder.
func (t CancellationToken) isZero() bool { return t.once == nil }
