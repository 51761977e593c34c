package client

import "github.com/minff/geodata"

// ExecuteOrSchedule runs fn on the scheduler when one is configured, or
// synchronously on the calling goroutine when scheduler is nil. Exactly
// one execution of fn occurs either way, and the choice is transparent to
// every other component: with a scheduler the call returns before fn has
// run, without one it returns after fn has completed.
func ExecuteOrSchedule(scheduler geodata.TaskScheduler, fn func()) {
	if scheduler == nil {
		fn()
		return
	}
	scheduler.ScheduleTask(fn)
}
