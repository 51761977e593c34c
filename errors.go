package geodata

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound is returned when a CacheOnly read misses the cache, or
	// when the service reports that the requested resource does not exist.
	ErrNotFound = errors.New("geodata: not found")

	// ErrCancelled is returned when an operation observed a cooperative
	// cancellation request before or during execution.
	ErrCancelled = errors.New("geodata: operation cancelled")

	// ErrInvalidArgument is returned for malformed request parameters.
	ErrInvalidArgument = errors.New("geodata: invalid argument")

	// ErrNetwork is returned when the transport failed before a service
	// response was received (connection refused, DNS failure, timeout).
	ErrNetwork = errors.New("geodata: network failure")
)

// StatusError is a failure reported by the remote service, carrying the
// HTTP status and the response message.
type StatusError struct {
	Status  int
	Message string
}

func (e *StatusError) Error() string {
	return fmt.Sprintf("geodata: service error: status %d: %s", e.Status, e.Message)
}

// IsNotFound reports whether err represents a missing resource, either the
// ErrNotFound sentinel or a 404 from the service.
func IsNotFound(err error) bool {
	if errors.Is(err, ErrNotFound) {
		return true
	}
	var se *StatusError
	return errors.As(err, &se) && se.Status == 404
}
