package storage

import "errors"

var (
	// ErrNotFound indicates that the target record does not exist.
	// Get-style lookups return (nil, nil) instead; updates return this.
	ErrNotFound = errors.New("record not found")

	// ErrDuplicateKey indicates a unique-constraint violation (user email).
	ErrDuplicateKey = errors.New("duplicate key")

	// ErrUnknownField indicates a filter or sort referencing a field the
	// entity does not have.
	ErrUnknownField = errors.New("unknown field")

	// ErrBadConfig indicates missing or inconsistent storage configuration.
	ErrBadConfig = errors.New("invalid storage configuration")
)
