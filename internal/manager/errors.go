package manager

import "fmt"

// tooBusyError signals load-queue timeout/overflow for 429 mapping.
type tooBusyError struct{ name string }

func (e tooBusyError) Error() string { return "too busy: " + e.name }

// ErrTooBusy constructs a tooBusyError.
func ErrTooBusy(name string) error { return tooBusyError{name: name} }

// IsTooBusy reports whether err indicates backpressure (return 429).
func IsTooBusy(err error) bool {
	_, ok := err.(tooBusyError)
	return ok
}

// adapterNotFoundError indicates a numeric adapter id with no cached entry.
type adapterNotFoundError struct{ id int64 }

func (e adapterNotFoundError) Error() string { return fmt.Sprintf("adapter not found: %d", e.id) }

// ErrAdapterNotFound returns an error for a missing adapter id.
func ErrAdapterNotFound(id int64) error { return adapterNotFoundError{id: id} }

// IsAdapterNotFound reports whether the error indicates a missing adapter id.
func IsAdapterNotFound(err error) bool {
	_, ok := err.(adapterNotFoundError)
	return ok
}

// dependencyUnavailableError signals a missing external dependency (e.g., the
// llama backend) so the HTTP layer can return 503 Service Unavailable instead
// of 500.
type dependencyUnavailableError struct{ msg string }

func (e dependencyUnavailableError) Error() string { return e.msg }

// ErrDependencyUnavailable constructs a dependencyUnavailableError.
func ErrDependencyUnavailable(msg string) error { return dependencyUnavailableError{msg: msg} }

// IsDependencyUnavailable reports whether err indicates a missing/failed
// backend dependency.
func IsDependencyUnavailable(err error) bool {
	_, ok := err.(dependencyUnavailableError)
	return ok
}
