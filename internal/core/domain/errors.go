package domain

import "errors"

// Domain errors represent business logic failures.
// These are distinct from infrastructure errors.
var (
	// ErrNotFound indicates a requested record does not exist.
	// Only used where "not found" must be distinguished from an empty
	// result; list and get operations that find nothing return an empty
	// slice or nil instead.
	ErrNotFound = errors.New("not found")

	// ErrAlreadyExists indicates a record with the same id, or one that
	// violates a uniqueness constraint (owner+slug for notes, one row per
	// user for settings), is already stored.
	ErrAlreadyExists = errors.New("already exists")

	// ErrInvalidInput indicates malformed or missing input.
	ErrInvalidInput = errors.New("invalid input")

	// ErrValidation indicates a caller-supplied value violates an
	// entity-specific constraint, e.g. an unknown enum value.
	ErrValidation = errors.New("validation failed")

	// ErrSerialization indicates a structured field payload could not be
	// encoded or decoded.
	ErrSerialization = errors.New("serialization failed")

	// ErrPath indicates the store's directory could not be resolved or
	// created. Fatal at startup.
	ErrPath = errors.New("store path unavailable")

	// ErrLocked indicates exclusive access to the store could not be
	// acquired. Retryable by the caller; never retried internally.
	ErrLocked = errors.New("store locked")
)
