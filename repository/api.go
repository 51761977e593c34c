package repository

import (
	"context"

	"github.com/minff/geodata"
	"github.com/minff/geodata/model"
)

// CatalogAPI is the catalog-level service surface a repository needs.
type CatalogAPI interface {
	GetCatalog(ctx context.Context, hrn geodata.HRN) (model.Catalog, error)
	GetLatestVersion(ctx context.Context, hrn geodata.HRN, startVersion int64) (model.VersionInfo, error)
}

// PartitionsAPI is the partition-listing service surface.
type PartitionsAPI interface {
	GetPartitions(ctx context.Context, hrn geodata.HRN, layerID string, version int64) ([]model.Partition, error)
}

// DataAPI is the blob-retrieval service surface.
type DataAPI interface {
	GetData(ctx context.Context, hrn geodata.HRN, layerID, dataHandle string) ([]byte, error)
}
