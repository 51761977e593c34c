// Package id defines TypeID-based identity for client handles and
// prefetch operations. IDs are K-sortable (UUIDv7-based), globally
// unique, and URL-safe in the format "prefix_suffix"; they appear in
// structured log records and trace attributes to correlate everything a
// single client handle or prefetch run did.
package id

import (
	"fmt"

	"go.jetify.com/typeid/v2"
)

// Prefix identifies the entity type encoded in a TypeID.
type Prefix string

const (
	// PrefixClient tags one client handle lifetime.
	PrefixClient Prefix = "gdc"

	// PrefixPrefetch tags one bulk prefetch run.
	PrefixPrefetch Prefix = "gdpf"
)

// ID is a prefix-qualified, globally unique, sortable identifier.
type ID struct {
	inner typeid.TypeID
	valid bool
}

// Nil is the zero-value ID.
var Nil ID

// New generates a new globally unique ID with the given prefix. It
// panics if prefix is not a valid TypeID prefix (programming error).
func New(prefix Prefix) ID {
	tid, err := typeid.Generate(string(prefix))
	if err != nil {
		panic(fmt.Sprintf("id: invalid prefix %q: %v", prefix, err))
	}
	return ID{inner: tid, valid: true}
}

// NewClientID generates a new unique client handle ID.
func NewClientID() ID { return New(PrefixClient) }

// NewPrefetchID generates a new unique prefetch run ID.
func NewPrefetchID() ID { return New(PrefixPrefetch) }

// Parse parses a TypeID string into an ID.
func Parse(s string) (ID, error) {
	if s == "" {
		return Nil, fmt.Errorf("id: parse %q: empty string", s)
	}
	tid, err := typeid.Parse(s)
	if err != nil {
		return Nil, fmt.Errorf("id: parse %q: %w", s, err)
	}
	return ID{inner: tid, valid: true}, nil
}

// String returns the full TypeID string (prefix_suffix); empty for Nil.
func (i ID) String() string {
	if !i.valid {
		return ""
	}
	return i.inner.String()
}

// Prefix returns the prefix component of this ID.
func (i ID) Prefix() Prefix {
	if !i.valid {
		return ""
	}
	return Prefix(i.inner.Prefix())
}

// IsNil reports whether this ID is the zero value.
func (i ID) IsNil() bool { return !i.valid }
