// Package repository implements the fetch logic behind each client
// operation: the cache/online policy switch, cache read-through and
// write-through, and the bridge from cooperative cancellation into
// context-based HTTP cancellation.
//
// Repositories come in two forms. The pure form (Catalog, LatestVersion,
// Partitions, Data) runs on the calling goroutine inside a dispatched
// task and consults the shared CancellationContext at safe points. The
// delegated form (GetLatestVersion, GetPartitions, GetData) dispatches
// itself on the configured scheduler and returns a cancellation token,
// for callers that hand off whole operations.
//
// Service access goes through the CatalogAPI, PartitionsAPI, and DataAPI
// interfaces; network.Client satisfies all three, and tests substitute
// fakes.
package repository
