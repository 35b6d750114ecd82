package irrigation

import "errors"

// Sentinel errors returned by the service and its store.
//
// NotFound, Conflict and Validation are deterministic outcomes and must not be
// retried. Unavailable is the only retryable class; the service never retries it
// itself and leaves backoff to the caller.
var (
	// ErrNotFound is returned for an unknown plant or board, or a board that is
	// not currently bound to any plant.
	ErrNotFound = errors.New("not found")

	// ErrConflict is returned for a duplicate unique key or a board already
	// bound to another plant.
	ErrConflict = errors.New("conflict")

	// ErrValidation is returned for out-of-range or mistyped input.
	ErrValidation = errors.New("validation failed")

	// ErrUnavailable is returned when the record store cannot be reached or a
	// store call exceeds its timeout.
	ErrUnavailable = errors.New("store unavailable")
)

// IsRetryable reports whether err may succeed if the same call is repeated.
func IsRetryable(err error) bool {
	return errors.Is(err, ErrUnavailable)
}

func isNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}
