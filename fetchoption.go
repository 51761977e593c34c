package geodata

// FetchOption selects where a single logical request reads its data from:
// the local cache, the network, or a combination of both. It governs the
// dispatch shape of an operation, not transport details.
type FetchOption int

const (
	// OnlineIfNotFound consults the cache first and fetches over the
	// network on a miss. This is the default.
	OnlineIfNotFound FetchOption = iota

	// CacheOnly reads from the cache only. A miss is reported as
	// ErrNotFound; no network I/O is ever initiated.
	CacheOnly

	// OnlineOnly always fetches over the network. The cache is not
	// consulted for reads, but a successful fetch still writes through.
	OnlineOnly

	// CacheWithUpdate delivers the cached value (or ErrNotFound) to the
	// caller immediately and refreshes the cache from the network in the
	// background. The background result never reaches the caller.
	CacheWithUpdate
)

// String returns the option name for logs and trace attributes.
func (o FetchOption) String() string {
	switch o {
	case OnlineIfNotFound:
		return "online_if_not_found"
	case CacheOnly:
		return "cache_only"
	case OnlineOnly:
		return "online_only"
	case CacheWithUpdate:
		return "cache_with_update"
	default:
		return "unknown"
	}
}
