package geodata

import (
	"log/slog"
	"net/http"
)

// KeyValueCache is the minimal cache interface held by Settings. Backends
// live under cache/ (memory, badger, redis); any implementation safe for
// concurrent use works. A nil cache disables local reads: CacheOnly
// requests always miss and write-through is skipped.
type KeyValueCache interface {
	// Get returns the stored value and whether the key was present.
	Get(key string) ([]byte, bool)

	// Put stores a value under key, overwriting any previous value.
	Put(key string, value []byte) error

	// Remove deletes the key and reports whether it was present.
	Remove(key string) bool

	// Close releases backend resources. Safe to call once.
	Close() error
}

// TaskScheduler runs closures on worker goroutines. A nil scheduler makes
// every dispatch synchronous on the calling goroutine; all other behavior
// is identical in both modes.
type TaskScheduler interface {
	// ScheduleTask enqueues fn for execution. It must not block on the
	// execution of fn itself.
	ScheduleTask(fn func())
}

// Settings carries the immutable collaborators a client is constructed
// with. Clients copy what they need at construction time; scheduled tasks
// retain only these collaborators, never the client itself.
type Settings struct {
	// Cache is the local key-value cache. Optional.
	Cache KeyValueCache

	// Scheduler runs dispatched work asynchronously. Optional; nil means
	// work runs synchronously on the caller.
	Scheduler TaskScheduler

	// Endpoint is the base URL of the data service.
	Endpoint string

	// HTTPClient overrides the transport client. Optional; a default
	// client with a sane timeout is used when nil.
	HTTPClient *http.Client

	// RateLimit caps sustained outbound requests per second. Zero
	// disables rate limiting. RateBurst defaults to 1 when RateLimit is
	// set.
	RateLimit float64
	RateBurst int

	// Logger is the structured logger. Optional; slog.Default() when nil.
	Logger *slog.Logger
}

// LoggerOrDefault returns the configured logger or slog.Default().
func (s Settings) LoggerOrDefault() *slog.Logger {
	if s.Logger != nil {
		return s.Logger
	}
	return slog.Default()
}
