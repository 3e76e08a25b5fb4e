package utils

import "github.com/google/uuid"

// NewID returns a random identifier for a newly created entity.
// Both storage backends use it so ids look the same regardless of mode.
func NewID() string { return uuid.NewString() }
