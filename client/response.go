package client

// Response is the discriminated result of an operation: either a value or
// an error, never both and never neither.
type Response[T any] struct {
	value T
	err   error
}

// Ok returns a successful response carrying value.
func Ok[T any](value T) Response[T] {
	return Response[T]{value: value}
}

// Fail returns a failed response carrying err. A nil err is a programming
// error and panics: every failure must be typed.
func Fail[T any](err error) Response[T] {
	if err == nil {
		panic("client: Fail called with nil error")
	}
	return Response[T]{err: err}
}

// IsSuccessful reports whether the response carries a value.
func (r Response[T]) IsSuccessful() bool { return r.err == nil }

// Value returns the carried value; the zero value on failure.
func (r Response[T]) Value() T { return r.value }

// Err returns the carried error; nil on success.
func (r Response[T]) Err() error { return r.err }

// Get unpacks the response into Go's conventional pair form.
func (r Response[T]) Get() (T, error) { return r.value, r.err }

// Callback receives the single completion of an operation. The
// orchestration layer guarantees it is invoked exactly once per dispatched
// request, from an unspecified goroutine.
type Callback[T any] func(Response[T])
