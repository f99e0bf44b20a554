package domain

import "errors"

// Sentinel errors shared across layers. Repositories and services wrap these
// with operation context; controllers translate them with errors.Is.
var (
	// ErrNotFound indicates a lookup that matched nothing. It is an expected
	// outcome, not a failure.
	ErrNotFound = errors.New("not found")

	// ErrValidation indicates client input rejected before any write.
	ErrValidation = errors.New("validation failed")

	// ErrSlugTaken indicates a write that would duplicate an event slug.
	ErrSlugTaken = errors.New("slug already in use")

	// ErrEventNotFound indicates a booking that references a nonexistent
	// event. Distinct from ErrNotFound so it surfaces as bad input rather
	// than a missing resource.
	ErrEventNotFound = errors.New("referenced event does not exist")

	// ErrUnavailable indicates the store could not be reached. Retryable.
	ErrUnavailable = errors.New("database unavailable")
)
