package repository

import (
	"context"
	"fmt"

	"github.com/minff/geodata"
	"github.com/minff/geodata/client"
	"github.com/minff/geodata/middleware"
	"github.com/minff/geodata/model"
)

// PartitionsRepository fetches partition listings of versioned layers.
type PartitionsRepository struct {
	cfg Config
	api PartitionsAPI
}

// NewPartitionsRepository creates a repository over the given service API.
func NewPartitionsRepository(cfg Config, api PartitionsAPI) *PartitionsRepository {
	return &PartitionsRepository{cfg: cfg.normalized(), api: api}
}

// Partitions fetches the partition listing of one layer under the
// request's fetch option. Pure form.
func (r *PartitionsRepository) Partitions(cctx *client.CancellationContext, req geodata.PartitionsRequest) client.Response[[]model.Partition] {
	if req.LayerID == "" {
		return client.Fail[[]model.Partition](fmt.Errorf("%w: layer ID is required", geodata.ErrInvalidArgument))
	}

	key := partitionsKey(r.cfg.Catalog, req.LayerID, req.Version)
	op := middleware.Operation{
		Name:        "layer.partitions.get",
		Catalog:     r.cfg.Catalog.String(),
		Layer:       req.LayerID,
		FetchOption: req.FetchOption.String(),
	}
	return fetchWithPolicy(r.cfg, cctx, op, req.FetchOption,
		func() ([]model.Partition, bool) {
			page, ok := codecRead[model.PartitionsPage](r.cfg, key)
			return page.Partitions, ok
		},
		func(v []model.Partition) { codecWrite(r.cfg, key, model.PartitionsPage{Partitions: v}) },
		func(ctx context.Context) ([]model.Partition, error) {
			return r.api.GetPartitions(ctx, r.cfg.Catalog, req.LayerID, req.Version)
		},
	)
}

// GetPartitions is the delegated form: the fetch is dispatched on the
// configured scheduler and the returned token cancels it.
func (r *PartitionsRepository) GetPartitions(req geodata.PartitionsRequest, callback client.Callback[[]model.Partition]) client.CancellationToken {
	task := client.NewTask(func(cctx *client.CancellationContext) client.Response[[]model.Partition] {
		return r.Partitions(cctx, req)
	}, callback)
	client.ExecuteOrSchedule(r.cfg.Scheduler, task.Execute)
	return task.CancelToken()
}
