package read

import (
	"github.com/minff/geodata"
	"github.com/minff/geodata/client"
)

// The two dispatch shapes shared by all client operations. Both guard
// the user callback on PendingRequests.Remove, which is what makes
// completion and bulk cancellation deliver exactly one callback per
// request: whichever path wins the Remove delivers, the other does
// nothing.

// dispatch is the inline shape: the operation's work function is wrapped
// in a task here, registered, and scheduled.
func dispatch[T any](
	pending *client.PendingRequests,
	scheduler geodata.TaskScheduler,
	work func(*client.CancellationContext) client.Response[T],
	callback client.Callback[T],
) client.CancellationToken {
	key := pending.GenerateKey()
	task := client.NewTask(work, func(resp client.Response[T]) {
		if pending.Remove(key) && callback != nil {
			callback(resp)
		}
	})
	token := task.CancelToken()
	pending.Insert(token, key)
	client.ExecuteOrSchedule(scheduler, task.Execute)
	return token
}

// delegate is the delegated shape: a collaborator dispatches the work
// itself and hands back its cancel token, which is registered under a
// key reserved before the collaborator runs — a completion arriving
// before Insert still finds its reservation.
func delegate[T any](
	pending *client.PendingRequests,
	callback client.Callback[T],
	start func(client.Callback[T]) client.CancellationToken,
) client.CancellationToken {
	key := pending.GenerateKey()
	token := start(func(resp client.Response[T]) {
		if pending.Remove(key) && callback != nil {
			callback(resp)
		}
	})
	pending.Insert(token, key)
	return token
}
