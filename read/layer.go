package read

import (
	"log/slog"

	"github.com/minff/geodata"
	"github.com/minff/geodata/client"
	"github.com/minff/geodata/id"
	"github.com/minff/geodata/model"
	"github.com/minff/geodata/prefetch"
	"github.com/minff/geodata/repository"
)

// VersionedLayerClient reads one versioned layer of a catalog: partition
// listings, partition payloads, and bulk tile prefetch. The client pins a
// catalog version at construction; requests with a zero version inherit
// it.
type VersionedLayerClient struct {
	hrn     geodata.HRN
	layerID string
	version int64
	logger  *slog.Logger

	pending    *client.PendingRequests
	partitions *repository.PartitionsRepository
	data       *repository.DataRepository
	prefetcher *prefetch.Provider
}

// NewVersionedLayerClient creates a client for one layer at the given
// catalog version.
func NewVersionedLayerClient(hrn geodata.HRN, layerID string, version int64, settings geodata.Settings, opts ...Option) *VersionedLayerClient {
	cfg := newConfig(opts...)
	handle := id.NewClientID()
	logger := settings.LoggerOrDefault().With(
		slog.String("client", handle.String()),
		slog.String("catalog", hrn.String()),
		slog.String("layer", layerID),
	)

	api := networkClient(settings, logger)
	repoCfg := cfg.repoConfig(hrn, settings, logger)

	partitions := repository.NewPartitionsRepository(repoCfg, api)
	data := repository.NewDataRepository(repoCfg, api, partitions)

	return &VersionedLayerClient{
		hrn:        hrn,
		layerID:    layerID,
		version:    version,
		logger:     logger,
		pending:    client.NewPendingRequests(),
		partitions: partitions,
		data:       data,
		prefetcher: prefetch.NewProvider(data, settings.Scheduler, prefetch.WithLogger(logger)),
	}
}

// GetData fetches one partition payload, addressed by data handle or
// partition ID.
func (c *VersionedLayerClient) GetData(req geodata.DataRequest, callback client.Callback[[]byte]) client.CancellationToken {
	req = c.scopeData(req)
	if req.FetchOption == geodata.CacheWithUpdate {
		return client.Compose(
			c.getData(req.WithFetchOption(geodata.CacheOnly), callback),
			c.getData(req.WithFetchOption(geodata.OnlineIfNotFound), nil),
		)
	}
	return c.getData(req, callback)
}

func (c *VersionedLayerClient) getData(req geodata.DataRequest, callback client.Callback[[]byte]) client.CancellationToken {
	return delegate(c.pending, callback, func(cb client.Callback[[]byte]) client.CancellationToken {
		return c.data.GetData(req, cb)
	})
}

// GetDataFuture is the future form of GetData.
func (c *VersionedLayerClient) GetDataFuture(req geodata.DataRequest) *client.CancellableFuture[[]byte] {
	return client.AsFuture(req, c.GetData)
}

// GetPartitions fetches the layer's partition listing.
func (c *VersionedLayerClient) GetPartitions(req geodata.PartitionsRequest, callback client.Callback[[]model.Partition]) client.CancellationToken {
	req = c.scopePartitions(req)
	if req.FetchOption == geodata.CacheWithUpdate {
		return client.Compose(
			c.getPartitions(req.WithFetchOption(geodata.CacheOnly), callback),
			c.getPartitions(req.WithFetchOption(geodata.OnlineIfNotFound), nil),
		)
	}
	return c.getPartitions(req, callback)
}

func (c *VersionedLayerClient) getPartitions(req geodata.PartitionsRequest, callback client.Callback[[]model.Partition]) client.CancellationToken {
	return delegate(c.pending, callback, func(cb client.Callback[[]model.Partition]) client.CancellationToken {
		return c.partitions.GetPartitions(req, cb)
	})
}

// GetPartitionsFuture is the future form of GetPartitions.
func (c *VersionedLayerClient) GetPartitionsFuture(req geodata.PartitionsRequest) *client.CancellableFuture[[]model.Partition] {
	return client.AsFuture(req, c.GetPartitions)
}

// PrefetchTiles warms the cache for the requested tiles. The callback
// receives one result per tile; per-tile failures do not abort the run.
func (c *VersionedLayerClient) PrefetchTiles(req geodata.PrefetchRequest, callback client.Callback[[]prefetch.TileResult]) client.CancellationToken {
	req = req.WithLayerID(c.layerID)
	if req.Version == 0 {
		req.Version = c.version
	}
	return delegate(c.pending, callback, func(cb client.Callback[[]prefetch.TileResult]) client.CancellationToken {
		return c.prefetcher.PrefetchTiles(req, cb)
	})
}

// PrefetchTilesFuture is the future form of PrefetchTiles.
func (c *VersionedLayerClient) PrefetchTilesFuture(req geodata.PrefetchRequest) *client.CancellableFuture[[]prefetch.TileResult] {
	return client.AsFuture(req, c.PrefetchTiles)
}

// CancelPendingRequests cancels every in-flight request of this client
// and reports whether any were pending.
func (c *VersionedLayerClient) CancelPendingRequests() bool {
	c.logger.Debug("cancelling pending requests", slog.Int("pending", c.pending.Size()))
	return c.pending.CancelAll()
}

// Close cancels all pending requests. The client must not be used after
// Close.
func (c *VersionedLayerClient) Close() error {
	c.CancelPendingRequests()
	return nil
}

func (c *VersionedLayerClient) scopeData(req geodata.DataRequest) geodata.DataRequest {
	req = req.WithLayerID(c.layerID)
	if req.Version == 0 {
		req.Version = c.version
	}
	return req
}

func (c *VersionedLayerClient) scopePartitions(req geodata.PartitionsRequest) geodata.PartitionsRequest {
	req = req.WithLayerID(c.layerID)
	if req.Version == 0 {
		req.Version = c.version
	}
	return req
}
