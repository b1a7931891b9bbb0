package types

import "errors"

// Sentinel errors for condition storage operations.
var (
	// ErrConditionNotFound indicates no stored condition matches the name.
	ErrConditionNotFound = errors.New("condition not found")

	// ErrConditionExists indicates a create collided with an existing name.
	ErrConditionExists = errors.New("condition already exists")
)
