package middleware

import (
	"context"
	"log/slog"
	"time"
)

// Logging returns middleware that logs fetch start and completion.
func Logging(logger *slog.Logger) Middleware {
	return func(ctx context.Context, op Operation, next Handler) error {
		logger.Debug("fetch started",
			slog.String("operation", op.Name),
			slog.String("catalog", op.Catalog),
			slog.String("layer", op.Layer),
			slog.String("fetch_option", op.FetchOption),
		)

		start := time.Now()
		err := next(ctx)
		elapsed := time.Since(start)

		if err != nil {
			logger.Warn("fetch failed",
				slog.String("operation", op.Name),
				slog.String("catalog", op.Catalog),
				slog.Duration("elapsed", elapsed),
				slog.String("error", err.Error()),
			)
		} else {
			logger.Debug("fetch completed",
				slog.String("operation", op.Name),
				slog.String("catalog", op.Catalog),
				slog.Duration("elapsed", elapsed),
			)
		}

		return err
	}
}
