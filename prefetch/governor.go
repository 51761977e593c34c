package prefetch

import (
	"context"

	"golang.org/x/time/rate"
)

// Governor bounds a prefetch run: a semaphore caps concurrent tile
// fetches and an optional rate limiter caps sustained fetch starts per
// second. One governor may be shared across runs to bound a whole
// process.
type Governor struct {
	limiter *rate.Limiter
	slots   chan struct{}
}

// NewGovernor creates a governor allowing maxConcurrent simultaneous
// fetches. rps caps fetch starts per second; zero disables rate
// limiting.
func NewGovernor(maxConcurrent int, rps float64) *Governor {
	if maxConcurrent <= 0 {
		maxConcurrent = 8
	}
	g := &Governor{slots: make(chan struct{}, maxConcurrent)}
	if rps > 0 {
		g.limiter = rate.NewLimiter(rate.Limit(rps), 1)
	}
	return g
}

// Acquire blocks until a fetch may start or ctx is done.
func (g *Governor) Acquire(ctx context.Context) error {
	if g.limiter != nil {
		if err := g.limiter.Wait(ctx); err != nil {
			return err
		}
	}
	select {
	case g.slots <- struct{}{}:
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

// Release returns the slot taken by Acquire.
func (g *Governor) Release() {
	<-g.slots
}
