// Package scheduler provides a fixed-size goroutine pool implementing
// geodata.TaskScheduler. Dispatched work is queued and executed by
// worker goroutines; Stop drains the queue gracefully so no accepted
// task is dropped.
//
// The orchestration layer is scheduler-agnostic: the same dispatch code
// runs synchronously with no scheduler and asynchronously with this one.
package scheduler

import (
	"context"
	"log/slog"
	"sync"

	"github.com/minff/geodata"
)

var _ geodata.TaskScheduler = (*Pool)(nil)

// Option configures a Pool.
type Option func(*Pool)

// WithConcurrency sets the number of worker goroutines.
func WithConcurrency(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.concurrency = n
		}
	}
}

// WithQueueDepth sets the task queue capacity. ScheduleTask spills onto a
// fresh goroutine when the queue is full, so depth bounds memory, not
// admission.
func WithQueueDepth(n int) Option {
	return func(p *Pool) {
		if n > 0 {
			p.queueDepth = n
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Pool) { p.logger = l }
}

// Pool runs scheduled tasks on a fixed set of worker goroutines.
type Pool struct {
	concurrency int
	queueDepth  int
	logger      *slog.Logger

	queue chan func()
	wg    sync.WaitGroup

	mu      sync.Mutex
	running bool
	stopped bool
}

// NewPool creates a pool. Call Start before scheduling.
func NewPool(opts ...Option) *Pool {
	p := &Pool{
		concurrency: 4,
		queueDepth:  1024,
		logger:      slog.Default(),
	}
	for _, opt := range opts {
		opt(p)
	}
	return p
}

// Start launches the worker goroutines. It returns immediately and is a
// no-op if the pool is already running.
func (p *Pool) Start() {
	p.mu.Lock()
	defer p.mu.Unlock()
	if p.running || p.stopped {
		return
	}
	p.running = true
	p.queue = make(chan func(), p.queueDepth)

	for i := 0; i < p.concurrency; i++ {
		p.wg.Add(1)
		go p.worker(i)
	}
	p.logger.Debug("scheduler started", slog.Int("concurrency", p.concurrency))
}

// ScheduleTask enqueues fn for execution on a worker goroutine. It never
// blocks: when the queue is full, or the pool is not running, fn runs on
// a goroutine of its own instead.
//
// The non-blocking send happens under the mutex. Stop closes the queue
// under the same mutex after clearing running, so no sender can ever hit
// a closed channel, even when scheduling races teardown.
func (p *Pool) ScheduleTask(fn func()) {
	if fn == nil {
		return
	}
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		go fn()
		return
	}
	select {
	case p.queue <- fn:
		p.mu.Unlock()
	default:
		p.mu.Unlock()
		p.logger.Warn("task queue full, spilling to goroutine")
		go fn()
	}
}

// Stop drains the queue and waits for in-flight tasks, up to the
// context's deadline. Tasks scheduled after Stop spill to goroutines.
func (p *Pool) Stop(ctx context.Context) error {
	p.mu.Lock()
	if !p.running {
		p.mu.Unlock()
		return nil
	}
	p.running = false
	p.stopped = true
	close(p.queue)
	p.mu.Unlock()

	done := make(chan struct{})
	go func() {
		p.wg.Wait()
		close(done)
	}()

	select {
	case <-done:
		p.logger.Debug("scheduler stopped")
		return nil
	case <-ctx.Done():
		return ctx.Err()
	}
}

func (p *Pool) worker(n int) {
	defer p.wg.Done()
	for fn := range p.queue {
		p.run(n, fn)
	}
}

// run isolates one task so a panicking task cannot take down its worker.
func (p *Pool) run(n int, fn func()) {
	defer func() {
		if r := recover(); r != nil {
			p.logger.Error("task panicked",
				slog.Int("worker", n),
				slog.Any("panic", r),
			)
		}
	}()
	fn()
}
