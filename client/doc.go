// Package client is the request-orchestration core of the SDK. It turns
// every public operation into a cancellable, exactly-once-completing unit
// of work, tracks in-flight requests so they can be bulk-cancelled, and
// adapts callback-style completion into blocking future-style completion.
//
// The building blocks, leaves first:
//
//   - CancellationToken / CancellationContext: a cancel capability and the
//     cooperative check-point context shared with executing work.
//   - PendingRequests: the concurrency-safe registry of in-flight work.
//     Its atomic Remove is the sole arbiter between completion and
//     cancellation; every guarded completion path gates delivery on it.
//   - Task: one work function bundled with a single-fire callback.
//   - ExecuteOrSchedule: runs a closure on a TaskScheduler, or
//     synchronously on the caller when no scheduler is configured.
//   - CancellableFuture / AsFuture: blocking adapters over the callback
//     form.
//   - MultiRequest: merges identical concurrent in-flight requests so the
//     underlying fetch runs once.
//
// Correctness does not depend on which goroutine runs what: work may
// execute on the calling goroutine (no scheduler) or on arbitrary worker
// goroutines, and completion, single cancellation, and bulk cancellation
// may race freely.
package client
