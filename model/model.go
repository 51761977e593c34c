// Package model defines the wire and cache representations of catalog
// metadata, versions, and partition listings.
package model

// Catalog is the configuration of one catalog: its identity and layers.
type Catalog struct {
	HRN         string  `json:"hrn" msgpack:"hrn"`
	Name        string  `json:"name" msgpack:"name"`
	Description string  `json:"description,omitempty" msgpack:"description,omitempty"`
	Version     int64   `json:"version" msgpack:"version"`
	Layers      []Layer `json:"layers" msgpack:"layers"`
}

// Layer describes one layer of a catalog.
type Layer struct {
	ID          string `json:"id" msgpack:"id"`
	Name        string `json:"name,omitempty" msgpack:"name,omitempty"`
	ContentType string `json:"contentType,omitempty" msgpack:"contentType,omitempty"`
	LayerType   string `json:"layerType,omitempty" msgpack:"layerType,omitempty"`
}

// VersionInfo is the latest-version metadata of a catalog.
type VersionInfo struct {
	Version int64 `json:"version" msgpack:"version"`
}

// Partition is one entry of a layer's partition listing. DataHandle is
// the opaque key under which the partition's payload is stored.
type Partition struct {
	ID         string `json:"partition" msgpack:"partition"`
	DataHandle string `json:"dataHandle" msgpack:"dataHandle"`
	Version    int64  `json:"version,omitempty" msgpack:"version,omitempty"`
	Checksum   string `json:"checksum,omitempty" msgpack:"checksum,omitempty"`
	DataSize   int64  `json:"dataSize,omitempty" msgpack:"dataSize,omitempty"`
}

// PartitionsPage is the wire envelope of a partition listing.
type PartitionsPage struct {
	Partitions []Partition `json:"partitions" msgpack:"partitions"`
}
