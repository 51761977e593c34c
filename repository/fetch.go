package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/minff/geodata"
	"github.com/minff/geodata/cache"
	"github.com/minff/geodata/client"
	"github.com/minff/geodata/middleware"
)

// Config carries the collaborators shared by all repositories of one
// client handle.
type Config struct {
	// Catalog is the catalog every operation of this repository targets.
	Catalog geodata.HRN

	// Cache is the local key-value cache. Optional; nil disables cache
	// reads and write-through.
	Cache geodata.KeyValueCache

	// Codec serializes models into the cache. Defaults to JSON.
	Codec cache.Codec

	// Chain wraps the online fetch step. Optional.
	Chain middleware.Middleware

	// Scheduler runs delegated operations. Optional; nil means
	// synchronous execution on the caller.
	Scheduler geodata.TaskScheduler

	// Logger is the structured logger. Optional.
	Logger *slog.Logger
}

func (c Config) normalized() Config {
	if c.Codec == nil {
		c.Codec = cache.GetCodec("")
	}
	if c.Chain == nil {
		c.Chain = func(ctx context.Context, _ middleware.Operation, next middleware.Handler) error {
			return next(ctx)
		}
	}
	if c.Logger == nil {
		c.Logger = slog.Default()
	}
	return c
}

// fetchWithPolicy runs one fetch under the given option. CacheOnly never
// touches the service; OnlineOnly never touches the cache on the read
// side; OnlineIfNotFound reads through. CacheWithUpdate is rejected here:
// the dispatcher splits it into two branches before any repository runs.
//
// The online step bridges cooperative cancellation into context
// cancellation: the HTTP context's cancel func is registered as the
// current sub-operation of cctx, so CancelOperation aborts the transfer.
func fetchWithPolicy[T any](
	cfg Config,
	cctx *client.CancellationContext,
	op middleware.Operation,
	opt geodata.FetchOption,
	readCache func() (T, bool),
	writeCache func(T),
	load func(context.Context) (T, error),
) client.Response[T] {
	switch opt {
	case geodata.CacheWithUpdate:
		return client.Fail[T](fmt.Errorf("%w: cache_with_update must be split by the dispatcher", geodata.ErrInvalidArgument))
	case geodata.CacheOnly:
		if v, ok := readCache(); ok {
			return client.Ok(v)
		}
		return client.Fail[T](geodata.ErrNotFound)
	case geodata.OnlineIfNotFound:
		if v, ok := readCache(); ok {
			return client.Ok(v)
		}
	}

	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()
	if !cctx.ExecuteOrCancelled(func() client.CancellationToken {
		return client.NewCancellationToken(cancel)
	}, nil) {
		return client.Fail[T](geodata.ErrCancelled)
	}

	var value T
	err := cfg.Chain(ctx, op, func(ctx context.Context) error {
		v, err := load(ctx)
		if err != nil {
			return err
		}
		value = v
		return nil
	})
	if err != nil {
		// A transfer aborted by cancellation surfaces as a transport
		// error; report the cancellation instead.
		if cctx.IsCancelled() {
			return client.Fail[T](geodata.ErrCancelled)
		}
		return client.Fail[T](err)
	}

	writeCache(value)
	return client.Ok(value)
}

// codecRead returns the decoded cache entry for key, if present. A
// corrupt entry is evicted and treated as a miss.
func codecRead[T any](cfg Config, key string) (T, bool) {
	var zero T
	if cfg.Cache == nil {
		return zero, false
	}
	data, ok := cfg.Cache.Get(key)
	if !ok {
		return zero, false
	}
	var v T
	if err := cfg.Codec.Decode(data, &v); err != nil {
		cfg.Logger.Warn("evicting corrupt cache entry",
			slog.String("key", key),
			slog.String("error", err.Error()),
		)
		cfg.Cache.Remove(key)
		return zero, false
	}
	return v, true
}

// codecWrite stores v under key. Cache write failures are logged, never
// surfaced: the fetched value is still delivered to the caller.
func codecWrite[T any](cfg Config, key string, v T) {
	if cfg.Cache == nil {
		return
	}
	data, err := cfg.Codec.Encode(v)
	if err != nil {
		cfg.Logger.Warn("cache encode failed", slog.String("key", key), slog.String("error", err.Error()))
		return
	}
	if err := cfg.Cache.Put(key, data); err != nil {
		cfg.Logger.Warn("cache write failed", slog.String("key", key), slog.String("error", err.Error()))
	}
}
