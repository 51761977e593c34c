package geodata

// Request types are immutable once dispatched. The With* methods derive a
// copy with one field changed and never mutate the original; all request
// types are plain values for that reason.

// CatalogRequest parameterizes a catalog configuration fetch.
type CatalogRequest struct {
	// BillingTag is an optional free-form tag forwarded to the service
	// for usage grouping.
	BillingTag string

	FetchOption FetchOption
}

// WithFetchOption derives a copy of the request with the given option.
func (r CatalogRequest) WithFetchOption(o FetchOption) CatalogRequest {
	r.FetchOption = o
	return r
}

// CatalogVersionRequest parameterizes a latest-catalog-version lookup.
type CatalogVersionRequest struct {
	// StartVersion is the version the client already knows about; -1
	// requests the very latest.
	StartVersion int64

	BillingTag  string
	FetchOption FetchOption
}

// WithFetchOption derives a copy of the request with the given option.
func (r CatalogVersionRequest) WithFetchOption(o FetchOption) CatalogVersionRequest {
	r.FetchOption = o
	return r
}

// PartitionsRequest parameterizes a partition listing for one layer.
type PartitionsRequest struct {
	// LayerID selects the layer. Required when dispatched through the
	// catalog client; the layer client fills it in itself.
	LayerID string

	// Version pins the catalog version; 0 means the latest known version.
	Version int64

	BillingTag  string
	FetchOption FetchOption
}

// WithFetchOption derives a copy of the request with the given option.
func (r PartitionsRequest) WithFetchOption(o FetchOption) PartitionsRequest {
	r.FetchOption = o
	return r
}

// WithLayerID derives a copy of the request scoped to the given layer.
func (r PartitionsRequest) WithLayerID(layerID string) PartitionsRequest {
	r.LayerID = layerID
	return r
}

// DataRequest parameterizes a tile/partition data fetch. Either DataHandle
// or PartitionID must be set; when only PartitionID is given, the handle is
// resolved through the partition listing first.
type DataRequest struct {
	LayerID     string
	DataHandle  string
	PartitionID string
	Version     int64
	BillingTag  string
	FetchOption FetchOption
}

// WithFetchOption derives a copy of the request with the given option.
func (r DataRequest) WithFetchOption(o FetchOption) DataRequest {
	r.FetchOption = o
	return r
}

// WithLayerID derives a copy of the request scoped to the given layer.
func (r DataRequest) WithLayerID(layerID string) DataRequest {
	r.LayerID = layerID
	return r
}

// PrefetchRequest parameterizes a bulk tile prefetch. Tile-tree expansion
// is the caller's concern; TileKeys lists the exact tiles to warm.
type PrefetchRequest struct {
	LayerID    string
	TileKeys   []string
	Version    int64
	BillingTag string
}

// WithLayerID derives a copy of the request scoped to the given layer.
func (r PrefetchRequest) WithLayerID(layerID string) PrefetchRequest {
	r.LayerID = layerID
	return r
}
