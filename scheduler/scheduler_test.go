package scheduler

import (
	"context"
	"sync"
	"sync/atomic"
	"testing"
	"time"
)

func TestPool_ExecutesScheduledTasks(t *testing.T) {
	p := NewPool(WithConcurrency(2))
	p.Start()

	var count atomic.Int64
	var wg sync.WaitGroup
	for i := 0; i < 50; i++ {
		wg.Add(1)
		p.ScheduleTask(func() {
			count.Add(1)
			wg.Done()
		})
	}
	wg.Wait()

	if got := count.Load(); got != 50 {
		t.Fatalf("executed %d tasks, want 50", got)
	}
	if err := p.Stop(context.Background()); err != nil {
		t.Fatalf("unexpected stop error: %v", err)
	}
}

func TestPool_StopDrainsQueue(t *testing.T) {
	p := NewPool(WithConcurrency(1))
	p.Start()

	var count atomic.Int64
	for i := 0; i < 20; i++ {
		p.ScheduleTask(func() {
			time.Sleep(time.Millisecond)
			count.Add(1)
		})
	}

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()
	if err := p.Stop(ctx); err != nil {
		t.Fatalf("unexpected stop error: %v", err)
	}
	if got := count.Load(); got != 20 {
		t.Fatalf("drained %d tasks, want 20", got)
	}
}

func TestPool_StopTimeout(t *testing.T) {
	p := NewPool(WithConcurrency(1))
	p.Start()

	release := make(chan struct{})
	p.ScheduleTask(func() { <-release })

	ctx, cancel := context.WithTimeout(context.Background(), 20*time.Millisecond)
	defer cancel()
	if err := p.Stop(ctx); err == nil {
		t.Fatal("expected deadline error from Stop")
	}
	close(release)
}

func TestPool_ScheduleWithoutStart(t *testing.T) {
	p := NewPool()

	done := make(chan struct{})
	p.ScheduleTask(func() { close(done) })

	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("task never ran without Start")
	}
}

func TestPool_TaskPanicDoesNotKillWorker(t *testing.T) {
	p := NewPool(WithConcurrency(1))
	p.Start()

	p.ScheduleTask(func() { panic("boom") })

	done := make(chan struct{})
	p.ScheduleTask(func() { close(done) })
	select {
	case <-done:
	case <-time.After(time.Second):
		t.Fatal("worker died after task panic")
	}
	p.Stop(context.Background())
}

func TestPool_ScheduleDuringStop(t *testing.T) {
	// Scheduling must stay safe while the pool is being torn down: a
	// task racing Stop either lands in the queue before it closes or
	// spills to its own goroutine. Either way, nothing panics and every
	// task runs.
	for i := 0; i < 200; i++ {
		p := NewPool(WithConcurrency(2), WithQueueDepth(1))
		p.Start()

		const tasks = 4 * 25
		var count atomic.Int64
		var wg sync.WaitGroup
		for w := 0; w < 4; w++ {
			wg.Add(1)
			go func() {
				defer wg.Done()
				for j := 0; j < 25; j++ {
					p.ScheduleTask(func() { count.Add(1) })
				}
			}()
		}

		if err := p.Stop(context.Background()); err != nil {
			t.Fatalf("unexpected stop error: %v", err)
		}
		wg.Wait()
		deadline := time.Now().Add(5 * time.Second)
		for count.Load() != tasks {
			if time.Now().After(deadline) {
				t.Fatalf("ran %d tasks, want %d", count.Load(), tasks)
			}
			time.Sleep(time.Millisecond)
		}
	}
}
