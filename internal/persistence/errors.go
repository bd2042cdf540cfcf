package persistence

import "errors"

var (
	// ErrNotFound is returned when the requested record does not exist.
	ErrNotFound = errors.New("persistence: not found")
	// ErrDuplicate is returned when a write violates a uniqueness index.
	ErrDuplicate = errors.New("persistence: duplicate record")
	// ErrConstraintViolation is returned when a write violates a column constraint.
	ErrConstraintViolation = errors.New("persistence: constraint violation")
	// ErrInvalidRecord is returned when a stored record cannot be decoded.
	ErrInvalidRecord = errors.New("persistence: invalid record")
)
