// Package read provides the public client surface of the SDK:
// CatalogClient for catalog metadata and VersionedLayerClient for layer
// partitions, payloads, and bulk prefetch.
//
// Every operation comes in two forms. The callback form dispatches the
// request, returns a CancellationToken immediately, and invokes the
// callback exactly once with either the result or a typed failure —
// cancellation included. The future form wraps the same dispatch in a
// blocking, cancellable handle.
//
// Each client tracks its own in-flight requests; CancelPendingRequests
// (or Close) cancels them all, and every cancelled request still
// delivers its single completion. Dispatched work holds on to the
// client's collaborators only, so a client may be dropped while its
// requests drain.
package read
