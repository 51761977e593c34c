package repository

import (
	"context"
	"strconv"

	"github.com/minff/geodata"
	"github.com/minff/geodata/client"
	"github.com/minff/geodata/middleware"
	"github.com/minff/geodata/model"
)

// CatalogRepository fetches catalog configuration and version metadata.
type CatalogRepository struct {
	cfg      Config
	api      CatalogAPI
	versions *client.MultiRequest[model.VersionInfo]
}

// NewCatalogRepository creates a repository over the given service API.
func NewCatalogRepository(cfg Config, api CatalogAPI) *CatalogRepository {
	return &CatalogRepository{
		cfg:      cfg.normalized(),
		api:      api,
		versions: client.NewMultiRequest[model.VersionInfo](),
	}
}

// Catalog fetches the catalog configuration under the request's fetch
// option. Pure form: runs on the calling goroutine.
func (r *CatalogRepository) Catalog(cctx *client.CancellationContext, req geodata.CatalogRequest) client.Response[model.Catalog] {
	key := catalogKey(r.cfg.Catalog)
	op := middleware.Operation{
		Name:        "catalog.get",
		Catalog:     r.cfg.Catalog.String(),
		FetchOption: req.FetchOption.String(),
	}
	return fetchWithPolicy(r.cfg, cctx, op, req.FetchOption,
		func() (model.Catalog, bool) { return codecRead[model.Catalog](r.cfg, key) },
		func(v model.Catalog) { codecWrite(r.cfg, key, v) },
		func(ctx context.Context) (model.Catalog, error) {
			return r.api.GetCatalog(ctx, r.cfg.Catalog)
		},
	)
}

// LatestVersion fetches the latest catalog version under the request's
// fetch option. Pure form.
func (r *CatalogRepository) LatestVersion(cctx *client.CancellationContext, req geodata.CatalogVersionRequest) client.Response[model.VersionInfo] {
	key := versionKey(r.cfg.Catalog)
	op := middleware.Operation{
		Name:        "catalog.version.get",
		Catalog:     r.cfg.Catalog.String(),
		FetchOption: req.FetchOption.String(),
	}
	return fetchWithPolicy(r.cfg, cctx, op, req.FetchOption,
		func() (model.VersionInfo, bool) { return codecRead[model.VersionInfo](r.cfg, key) },
		func(v model.VersionInfo) { codecWrite(r.cfg, key, v) },
		func(ctx context.Context) (model.VersionInfo, error) {
			return r.api.GetLatestVersion(ctx, r.cfg.Catalog, req.StartVersion)
		},
	)
}

// GetLatestVersion is the delegated form: identical concurrent lookups
// merge into one execution, the fetch is dispatched on the configured
// scheduler, and the returned token detaches this caller only.
func (r *CatalogRepository) GetLatestVersion(req geodata.CatalogVersionRequest, callback client.Callback[model.VersionInfo]) client.CancellationToken {
	mergeKey := versionKey(r.cfg.Catalog) +
		"@" + strconv.FormatInt(req.StartVersion, 10) +
		"@" + req.FetchOption.String()
	return r.versions.ExecuteOrAssociate(mergeKey, callback,
		func(cb client.Callback[model.VersionInfo]) client.CancellationToken {
			task := client.NewTask(func(cctx *client.CancellationContext) client.Response[model.VersionInfo] {
				return r.LatestVersion(cctx, req)
			}, cb)
			client.ExecuteOrSchedule(r.cfg.Scheduler, task.Execute)
			return task.CancelToken()
		},
	)
}
