// Package prefetch warms the local cache for a set of tiles in bulk.
// Tiles are fetched concurrently under a Governor that bounds
// concurrency and request rate; per-tile failures are collected, not
// fatal, so one missing tile never aborts the run. A single cancel
// reaches the whole fan-out.
package prefetch

import (
	"context"
	"fmt"
	"log/slog"
	"sync"

	"github.com/minff/geodata"
	"github.com/minff/geodata/client"
	"github.com/minff/geodata/id"
	"github.com/minff/geodata/repository"
)

// TileResult reports the outcome for one requested tile.
type TileResult struct {
	// TileKey is the tile this result belongs to.
	TileKey string

	// Size is the payload size in bytes; zero on failure.
	Size int

	// Err is nil when the tile was fetched (or already cached).
	Err error
}

// Option configures the Provider.
type Option func(*Provider)

// WithGovernor sets the concurrency/rate governor. Defaults to 8
// concurrent fetches, unlimited rate.
func WithGovernor(g *Governor) Option {
	return func(p *Provider) {
		if g != nil {
			p.governor = g
		}
	}
}

// WithLogger sets a custom logger.
func WithLogger(l *slog.Logger) Option {
	return func(p *Provider) { p.logger = l }
}

// Provider runs bulk tile prefetches against one layer's data
// repository.
type Provider struct {
	data      *repository.DataRepository
	scheduler geodata.TaskScheduler
	governor  *Governor
	logger    *slog.Logger
}

// NewProvider creates a prefetch provider over the given data
// repository. The scheduler dispatches the run itself; tile fan-out uses
// dedicated goroutines bounded by the governor.
func NewProvider(data *repository.DataRepository, scheduler geodata.TaskScheduler, opts ...Option) *Provider {
	p := &Provider{
		data:      data,
		scheduler: scheduler,
		governor:  NewGovernor(8, 0),
		logger:    slog.Default(),
	}
	for _, o := range opts {
		o(p)
	}
	return p
}

// PrefetchTiles fetches every tile of the request, writing payloads
// through to the cache. The callback receives one result per requested
// tile, in request order; cancelling the returned token stops tiles not
// yet started and delivers a Cancelled response.
func (p *Provider) PrefetchTiles(req geodata.PrefetchRequest, callback client.Callback[[]TileResult]) client.CancellationToken {
	task := client.NewTask(func(cctx *client.CancellationContext) client.Response[[]TileResult] {
		return p.run(cctx, req)
	}, callback)
	client.ExecuteOrSchedule(p.scheduler, task.Execute)
	return task.CancelToken()
}

func (p *Provider) run(cctx *client.CancellationContext, req geodata.PrefetchRequest) client.Response[[]TileResult] {
	if req.LayerID == "" {
		return client.Fail[[]TileResult](fmt.Errorf("%w: layer ID is required", geodata.ErrInvalidArgument))
	}
	if len(req.TileKeys) == 0 {
		return client.Fail[[]TileResult](fmt.Errorf("%w: no tiles requested", geodata.ErrInvalidArgument))
	}

	runID := id.NewPrefetchID()
	p.logger.Debug("prefetch started",
		slog.String("run", runID.String()),
		slog.String("layer", req.LayerID),
		slog.Int("tiles", len(req.TileKeys)),
	)

	// Each tile gets its own cancellation context; the parent registers
	// one composite sub-token fanning a cancel out to every tile plus
	// the governor's wait context.
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	children := make([]*client.CancellationContext, len(req.TileKeys))
	tokens := make([]client.CancellationToken, 0, len(req.TileKeys)+1)
	for i := range children {
		children[i] = client.NewCancellationContext()
		tokens = append(tokens, children[i].Token())
	}
	tokens = append(tokens, client.NewCancellationToken(cancel))

	if !cctx.ExecuteOrCancelled(func() client.CancellationToken {
		return client.Compose(tokens...)
	}, nil) {
		return client.Fail[[]TileResult](geodata.ErrCancelled)
	}

	results := make([]TileResult, len(req.TileKeys))
	var wg sync.WaitGroup
	for i, key := range req.TileKeys {
		results[i].TileKey = key

		if err := p.governor.Acquire(ctx); err != nil {
			results[i].Err = geodata.ErrCancelled
			continue
		}

		wg.Add(1)
		go func(i int, key string) {
			defer wg.Done()
			defer p.governor.Release()

			resp := p.data.Data(children[i], geodata.DataRequest{
				LayerID:     req.LayerID,
				PartitionID: key,
				Version:     req.Version,
				BillingTag:  req.BillingTag,
			})
			if !resp.IsSuccessful() {
				results[i].Err = resp.Err()
				return
			}
			results[i].Size = len(resp.Value())
		}(i, key)
	}
	wg.Wait()

	failed := 0
	for i := range results {
		if results[i].Err != nil {
			failed++
		}
	}
	p.logger.Debug("prefetch completed",
		slog.String("run", runID.String()),
		slog.Int("tiles", len(results)),
		slog.Int("failed", failed),
	)
	return client.Ok(results)
}
