package client

import (
	"fmt"
	"sync"
	"sync/atomic"
)

// PendingRequests tracks every in-flight request of one client handle so
// the whole set can be bulk-cancelled. Keys are generated before the task
// or token exists: GenerateKey reserves a slot with a placeholder token,
// closing the race between "task created" and "task already finished" —
// a completion that arrives before the real token is inserted still finds
// its reservation and wins the Remove.
//
// Remove is the exactly-once linchpin: every guarded completion path must
// gate callback delivery on Remove returning true.
type PendingRequests struct {
	nextKey atomic.Int64

	mu     sync.Mutex
	tokens map[int64]CancellationToken
}

// NewPendingRequests returns an empty registry.
func NewPendingRequests() *PendingRequests {
	return &PendingRequests{tokens: make(map[int64]CancellationToken)}
}

// GenerateKey reserves a fresh registry slot and returns its key. Keys are
// strictly increasing and unique per registry instance, safe under
// concurrent callers.
func (p *PendingRequests) GenerateKey() int64 {
	key := p.nextKey.Add(1)
	p.mu.Lock()
	p.tokens[key] = CancellationToken{}
	p.mu.Unlock()
	return key
}

// Insert populates a reserved slot with the real cancellation token. If
// the slot was already removed (the request completed before its token
// existed), the token is dropped rather than resurrecting the entry.
// Populating a slot that already holds a real token is a programming
// error and panics: it would mean two tasks share one reservation.
func (p *PendingRequests) Insert(token CancellationToken, key int64) {
	p.mu.Lock()
	defer p.mu.Unlock()
	existing, ok := p.tokens[key]
	if !ok {
		return
	}
	if !existing.isZero() {
		panic(fmt.Sprintf("client: registry key %d populated twice", key))
	}
	p.tokens[key] = token
}

// InsertToken reserves a slot, populates it with token, and returns the
// new key. Convenience form for callers that hold the token up front.
func (p *PendingRequests) InsertToken(token CancellationToken) int64 {
	key := p.nextKey.Add(1)
	p.mu.Lock()
	p.tokens[key] = token
	p.mu.Unlock()
	return key
}

// Remove atomically removes the entry if present and reports whether it
// was. A key, once removed, is never reinserted for the same request.
func (p *PendingRequests) Remove(key int64) bool {
	p.mu.Lock()
	defer p.mu.Unlock()
	if _, ok := p.tokens[key]; !ok {
		return false
	}
	delete(p.tokens, key)
	return true
}

// CancelAll cancels every currently registered token and reports whether
// any were present. Tokens are snapshotted under the lock and cancelled
// outside it: a cancellation that completes synchronously re-enters the
// registry through its guarded callback, which must not deadlock.
//
// Entries are not cleared eagerly. Each cancelled request still delivers
// exactly one (possibly Cancelled) completion, and that completion path
// removes its own key — so the registry drains to empty once all
// callbacks have fired, and no request is ever silently dropped.
func (p *PendingRequests) CancelAll() bool {
	p.mu.Lock()
	snapshot := make([]CancellationToken, 0, len(p.tokens))
	for _, token := range p.tokens {
		snapshot = append(snapshot, token)
	}
	p.mu.Unlock()

	for _, token := range snapshot {
		token.Cancel()
	}
	return len(snapshot) > 0
}

// Size returns the number of registered entries. Intended for tests and
// teardown diagnostics.
func (p *PendingRequests) Size() int {
	p.mu.Lock()
	defer p.mu.Unlock()
	return len(p.tokens)
}
