package middleware

import (
	"context"
	"fmt"
	"log/slog"
	"runtime/debug"
)

// Recover returns middleware that recovers from panics in the fetch chain.
// Panics are converted to errors and logged with a stack trace, so a
// faulty collaborator can never unwind across the dispatch boundary.
func Recover(logger *slog.Logger) Middleware {
	return func(ctx context.Context, op Operation, next Handler) (retErr error) {
		defer func() {
			if r := recover(); r != nil {
				stack := string(debug.Stack())
				logger.Error("fetch panicked",
					slog.String("operation", op.Name),
					slog.String("catalog", op.Catalog),
					slog.Any("panic", r),
					slog.String("stack", stack),
				)
				retErr = fmt.Errorf("panic in %s: %v", op.Name, r)
			}
		}()
		return next(ctx)
	}
}
