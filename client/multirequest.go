package client

import (
	"sync"

	"github.com/minff/geodata"
)

// MultiRequest merges identical concurrent in-flight requests: the first
// caller for a key starts the underlying work, later callers for the same
// key attach their callbacks to the running execution. Every associated
// caller receives exactly one completion. Each caller gets its own detach
// token: cancelling it delivers Cancelled to that caller only, and the
// underlying work is cancelled once the last caller has detached.
type MultiRequest[T any] struct {
	mu       sync.Mutex
	inflight map[string]*mergedCall[T]
}

type mergedCall[T any] struct {
	callbacks map[int64]Callback[T]
	nextID    int64
	token     CancellationToken
}

// NewMultiRequest returns an empty merger.
func NewMultiRequest[T any]() *MultiRequest[T] {
	return &MultiRequest[T]{inflight: make(map[string]*mergedCall[T])}
}

// ExecuteOrAssociate attaches callback to the in-flight execution for key,
// starting one via execute if none is running. execute receives the
// fan-out completion callback and must return the cancel token of the
// work it started; it may complete synchronously. The returned token
// detaches this caller only.
func (m *MultiRequest[T]) ExecuteOrAssociate(
	key string,
	callback Callback[T],
	execute func(Callback[T]) CancellationToken,
) CancellationToken {
	m.mu.Lock()
	if call, ok := m.inflight[key]; ok {
		call.nextID++
		id := call.nextID
		call.callbacks[id] = callback
		m.mu.Unlock()
		return m.detachToken(key, id)
	}

	call := &mergedCall[T]{callbacks: map[int64]Callback[T]{0: callback}}
	m.inflight[key] = call
	m.mu.Unlock()

	// The underlying execution starts outside the lock: a synchronous
	// completion re-enters through the fan-out callback.
	token := execute(func(resp Response[T]) {
		m.complete(key, resp)
	})

	// A synchronous completion may have consumed this call and a new
	// merged call may already occupy the key; the token belongs to THIS
	// call only, never to a successor.
	m.mu.Lock()
	if cur, ok := m.inflight[key]; ok && cur == call {
		cur.token = token
	}
	m.mu.Unlock()

	return m.detachToken(key, 0)
}

// InFlight returns the number of distinct executions currently running.
func (m *MultiRequest[T]) InFlight() int {
	m.mu.Lock()
	defer m.mu.Unlock()
	return len(m.inflight)
}

// complete consumes the entry for key and fans the response out to every
// still-attached caller. Consuming under the lock makes delivery and
// detachment mutually exclusive per caller.
func (m *MultiRequest[T]) complete(key string, resp Response[T]) {
	m.mu.Lock()
	call, ok := m.inflight[key]
	if ok {
		delete(m.inflight, key)
	}
	m.mu.Unlock()
	if !ok {
		return
	}

	for _, cb := range call.callbacks {
		if cb != nil {
			cb(resp)
		}
	}
}

func (m *MultiRequest[T]) detachToken(key string, id int64) CancellationToken {
	return NewCancellationToken(func() {
		m.mu.Lock()
		call, ok := m.inflight[key]
		if !ok {
			// Already completed; the caller got its result.
			m.mu.Unlock()
			return
		}
		cb, attached := call.callbacks[id]
		if attached {
			delete(call.callbacks, id)
		}
		last := len(call.callbacks) == 0
		if last {
			delete(m.inflight, key)
		}
		token := call.token
		m.mu.Unlock()

		if attached && cb != nil {
			cb(Fail[T](geodata.ErrCancelled))
		}
		if last {
			token.Cancel()
		}
	})
}
