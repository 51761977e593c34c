package repository

import (
	"context"
	"fmt"
	"log/slog"

	"github.com/minff/geodata"
	"github.com/minff/geodata/client"
	"github.com/minff/geodata/middleware"
)

// DataRepository fetches raw partition payloads. A request addressing a
// partition ID first resolves the data handle through the partition
// listing, sharing the caller's cancellation context so a single cancel
// reaches whichever step is in flight.
type DataRepository struct {
	cfg        Config
	api        DataAPI
	partitions *PartitionsRepository
}

// NewDataRepository creates a repository over the given service API. The
// partitions repository is used for partition-ID resolution.
func NewDataRepository(cfg Config, api DataAPI, partitions *PartitionsRepository) *DataRepository {
	return &DataRepository{cfg: cfg.normalized(), api: api, partitions: partitions}
}

// Data fetches the payload addressed by the request under its fetch
// option. Pure form.
func (r *DataRepository) Data(cctx *client.CancellationContext, req geodata.DataRequest) client.Response[[]byte] {
	if req.LayerID == "" {
		return client.Fail[[]byte](fmt.Errorf("%w: layer ID is required", geodata.ErrInvalidArgument))
	}
	if req.DataHandle == "" && req.PartitionID == "" {
		return client.Fail[[]byte](fmt.Errorf("%w: either data handle or partition ID is required", geodata.ErrInvalidArgument))
	}

	handle := req.DataHandle
	if handle == "" {
		resolved := r.resolveHandle(cctx, req)
		if !resolved.IsSuccessful() {
			return client.Fail[[]byte](resolved.Err())
		}
		handle = resolved.Value()
	}

	key := dataKey(r.cfg.Catalog, req.LayerID, handle)
	op := middleware.Operation{
		Name:        "layer.data.get",
		Catalog:     r.cfg.Catalog.String(),
		Layer:       req.LayerID,
		FetchOption: req.FetchOption.String(),
	}
	// Payloads are opaque blobs; they bypass the codec and are cached raw.
	return fetchWithPolicy(r.cfg, cctx, op, req.FetchOption,
		func() ([]byte, bool) {
			if r.cfg.Cache == nil {
				return nil, false
			}
			return r.cfg.Cache.Get(key)
		},
		func(v []byte) {
			if r.cfg.Cache == nil {
				return
			}
			if err := r.cfg.Cache.Put(key, v); err != nil {
				r.cfg.Logger.Warn("cache write failed", slog.String("key", key), slog.String("error", err.Error()))
			}
		},
		func(ctx context.Context) ([]byte, error) {
			return r.api.GetData(ctx, r.cfg.Catalog, req.LayerID, handle)
		},
	)
}

// GetData is the delegated form: the fetch is dispatched on the
// configured scheduler and the returned token cancels it.
func (r *DataRepository) GetData(req geodata.DataRequest, callback client.Callback[[]byte]) client.CancellationToken {
	task := client.NewTask(func(cctx *client.CancellationContext) client.Response[[]byte] {
		return r.Data(cctx, req)
	}, callback)
	client.ExecuteOrSchedule(r.cfg.Scheduler, task.Execute)
	return task.CancelToken()
}

// resolveHandle maps a partition ID to its data handle via the partition
// listing, under the same fetch option as the data request.
func (r *DataRepository) resolveHandle(cctx *client.CancellationContext, req geodata.DataRequest) client.Response[string] {
	listing := r.partitions.Partitions(cctx, geodata.PartitionsRequest{
		LayerID:     req.LayerID,
		Version:     req.Version,
		BillingTag:  req.BillingTag,
		FetchOption: req.FetchOption,
	})
	if !listing.IsSuccessful() {
		return client.Fail[string](listing.Err())
	}
	for _, p := range listing.Value() {
		if p.ID == req.PartitionID {
			return client.Ok(p.DataHandle)
		}
	}
	return client.Fail[string](fmt.Errorf("partition %q: %w", req.PartitionID, geodata.ErrNotFound))
}
