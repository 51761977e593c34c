// Package middleware provides composable middleware for fetch execution.
// Middleware wraps the fetch step of a dispatched operation synchronously
// and can modify execution (recover from panics, log, add tracing and
// metrics). It sees the operation descriptor and the error outcome; the
// typed response stays with the repository that produced it.
package middleware

import "context"

// Operation describes the dispatched operation for logs, spans, and
// metric attributes.
type Operation struct {
	// Name is the operation identifier, e.g. "catalog.get" or
	// "layer.data.get".
	Name string

	// Catalog is the target catalog HRN.
	Catalog string

	// Layer is the target layer ID; empty for catalog-level operations.
	Layer string

	// FetchOption is the effective fetch option name.
	FetchOption string
}

// Handler is the terminal function that executes the fetch logic.
type Handler func(ctx context.Context) error

// Middleware wraps a Handler with cross-cutting logic. It receives the
// current context, the operation being executed, and the next handler to
// call. Middleware MUST call next to continue the chain (unless
// short-circuiting on error).
type Middleware func(ctx context.Context, op Operation, next Handler) error

// Chain composes multiple middleware into a single Middleware.
// Middleware are applied right-to-left: the first middleware in the list
// is the outermost wrapper.
//
// Example: Chain(recover, tracing, logging) executes as:
//
//	recover → tracing → logging → handler
func Chain(mws ...Middleware) Middleware {
	return func(ctx context.Context, op Operation, next Handler) error {
		h := next
		for i := len(mws) - 1; i >= 0; i-- {
			mw := mws[i]
			prev := h
			h = func(ctx context.Context) error {
				return mw(ctx, op, prev)
			}
		}
		return h(ctx)
	}
}
