// Package geodata provides a client SDK for a networked geospatial data
// service. It fetches catalog metadata, partition listings, and tile data,
// supports bulk tile prefetching, and treats a local key-value cache as a
// first-class data source alongside the network.
//
// Geodata is designed as a library, not a service. Configure a Settings
// with a cache and an optional task scheduler, create a client for a
// catalog, and every operation is available in two forms: a callback form
// that returns a cancellation token immediately, and a future form that
// blocks until the result is ready.
//
// # Quick Start
//
//	hrn, err := geodata.ParseHRN("hrn:here:data::acme:roads")
//
//	pool := scheduler.NewPool(scheduler.WithConcurrency(8))
//	pool.Start()
//
//	c := read.NewCatalogClient(hrn, geodata.Settings{
//	    Cache:     memory.New(),
//	    Scheduler: pool,
//	    Endpoint:  "https://data.example.com",
//	})
//	defer c.Close()
//
//	future := c.GetCatalogFuture(geodata.CatalogRequest{})
//	resp := future.GetResponse()
//
// # Architecture
//
// The root package defines shared types (resource names, requests, fetch
// options, settings) imported by every subsystem. The client package is the
// orchestration core: cancellation tokens and contexts, the pending-request
// registry, task units, and cancellable futures. The repository packages
// implement the cache/online fetch policy, and the read package exposes the
// public catalog and layer clients.
package geodata
