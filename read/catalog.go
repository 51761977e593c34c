package read

import (
	"log/slog"

	"github.com/minff/geodata"
	"github.com/minff/geodata/client"
	"github.com/minff/geodata/id"
	"github.com/minff/geodata/model"
	"github.com/minff/geodata/repository"
)

// CatalogClient reads catalog-level metadata: the catalog configuration,
// the latest version, and per-layer partition listings.
type CatalogClient struct {
	hrn       geodata.HRN
	scheduler geodata.TaskScheduler
	logger    *slog.Logger

	pending    *client.PendingRequests
	catalogs   *repository.CatalogRepository
	partitions *repository.PartitionsRepository
}

// NewCatalogClient creates a client for one catalog.
func NewCatalogClient(hrn geodata.HRN, settings geodata.Settings, opts ...Option) *CatalogClient {
	cfg := newConfig(opts...)
	handle := id.NewClientID()
	logger := settings.LoggerOrDefault().With(
		slog.String("client", handle.String()),
		slog.String("catalog", hrn.String()),
	)

	api := networkClient(settings, logger)
	repoCfg := cfg.repoConfig(hrn, settings, logger)

	return &CatalogClient{
		hrn:        hrn,
		scheduler:  settings.Scheduler,
		logger:     logger,
		pending:    client.NewPendingRequests(),
		catalogs:   repository.NewCatalogRepository(repoCfg, api),
		partitions: repository.NewPartitionsRepository(repoCfg, api),
	}
}

// GetCatalog fetches the catalog configuration. The callback fires
// exactly once; the returned token cancels this request only.
func (c *CatalogClient) GetCatalog(req geodata.CatalogRequest, callback client.Callback[model.Catalog]) client.CancellationToken {
	if req.FetchOption == geodata.CacheWithUpdate {
		return client.Compose(
			c.getCatalog(req.WithFetchOption(geodata.CacheOnly), callback),
			c.getCatalog(req.WithFetchOption(geodata.OnlineIfNotFound), nil),
		)
	}
	return c.getCatalog(req, callback)
}

func (c *CatalogClient) getCatalog(req geodata.CatalogRequest, callback client.Callback[model.Catalog]) client.CancellationToken {
	return dispatch(c.pending, c.scheduler, func(cctx *client.CancellationContext) client.Response[model.Catalog] {
		return c.catalogs.Catalog(cctx, req)
	}, callback)
}

// GetCatalogFuture is the future form of GetCatalog.
func (c *CatalogClient) GetCatalogFuture(req geodata.CatalogRequest) *client.CancellableFuture[model.Catalog] {
	return client.AsFuture(req, c.GetCatalog)
}

// GetLatestVersion fetches the latest catalog version. Identical
// concurrent lookups are merged into one service call.
func (c *CatalogClient) GetLatestVersion(req geodata.CatalogVersionRequest, callback client.Callback[model.VersionInfo]) client.CancellationToken {
	if req.FetchOption == geodata.CacheWithUpdate {
		return client.Compose(
			c.getLatestVersion(req.WithFetchOption(geodata.CacheOnly), callback),
			c.getLatestVersion(req.WithFetchOption(geodata.OnlineIfNotFound), nil),
		)
	}
	return c.getLatestVersion(req, callback)
}

func (c *CatalogClient) getLatestVersion(req geodata.CatalogVersionRequest, callback client.Callback[model.VersionInfo]) client.CancellationToken {
	return delegate(c.pending, callback, func(cb client.Callback[model.VersionInfo]) client.CancellationToken {
		return c.catalogs.GetLatestVersion(req, cb)
	})
}

// GetLatestVersionFuture is the future form of GetLatestVersion.
func (c *CatalogClient) GetLatestVersionFuture(req geodata.CatalogVersionRequest) *client.CancellableFuture[model.VersionInfo] {
	return client.AsFuture(req, c.GetLatestVersion)
}

// GetPartitions fetches the partition listing of the layer named in the
// request.
func (c *CatalogClient) GetPartitions(req geodata.PartitionsRequest, callback client.Callback[[]model.Partition]) client.CancellationToken {
	if req.FetchOption == geodata.CacheWithUpdate {
		return client.Compose(
			c.getPartitions(req.WithFetchOption(geodata.CacheOnly), callback),
			c.getPartitions(req.WithFetchOption(geodata.OnlineIfNotFound), nil),
		)
	}
	return c.getPartitions(req, callback)
}

func (c *CatalogClient) getPartitions(req geodata.PartitionsRequest, callback client.Callback[[]model.Partition]) client.CancellationToken {
	return delegate(c.pending, callback, func(cb client.Callback[[]model.Partition]) client.CancellationToken {
		return c.partitions.GetPartitions(req, cb)
	})
}

// GetPartitionsFuture is the future form of GetPartitions.
func (c *CatalogClient) GetPartitionsFuture(req geodata.PartitionsRequest) *client.CancellableFuture[[]model.Partition] {
	return client.AsFuture(req, c.GetPartitions)
}

// CancelPendingRequests cancels every in-flight request of this client
// and reports whether any were pending. Each cancelled request still
// delivers its single (Cancelled) completion.
func (c *CatalogClient) CancelPendingRequests() bool {
	c.logger.Debug("cancelling pending requests", slog.Int("pending", c.pending.Size()))
	return c.pending.CancelAll()
}

// Close cancels all pending requests. The client must not be used after
// Close.
func (c *CatalogClient) Close() error {
	c.CancelPendingRequests()
	return nil
}
