package planner

import "errors"

var (
	// ErrInvalidConstraints is returned when a bay dimension or the weight limit
	// is missing or non-positive. No partial result is produced.
	ErrInvalidConstraints = errors.New("bay constraints must be positive values")
)
