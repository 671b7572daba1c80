package lever

import "errors"

var (
	// ErrInvalidConfig marks a configuration rejected by Validate.
	ErrInvalidConfig = errors.New("invalid lever configuration")

	// ErrNoSuchStep marks a step index outside the configured range.
	ErrNoSuchStep = errors.New("no such step")
)
