package models

import (
	"errors"
	"fmt"
)

// Sentinel errors for request validation.
var (
	ErrInvalidSpace     = errors.New("invalid space name")
	ErrNoLayers         = errors.New("at least one layer is required")
	ErrNoStartVertices  = errors.New("start vertices are required")
	ErrInvalidLayer     = errors.New("invalid layer")
	ErrInvalidDirection = errors.New("invalid direction")
	ErrInvalidAttribute = errors.New("invalid attribute name")
)

// Sentinel errors raised while talking to the graph store.
var (
	// ErrExecutionFailure means the store answered a statement with a non-success status.
	ErrExecutionFailure = errors.New("execution failure")

	// ErrInvalidSession means the pool could not hand out a usable session.
	ErrInvalidSession = errors.New("invalid session")

	// ErrTypeMismatch means a result cell was not of the kind the caller required.
	ErrTypeMismatch = errors.New("type mismatch")
)

// ErrIncompleteAttributes indicates the store returned attributes for fewer
// (or more) vertices than were sampled.
var ErrIncompleteAttributes = errors.New("attribute count does not match sampled vertices")

// ErrLayerField returns an ErrInvalidLayer error naming the offending layer and field.
func ErrLayerField(layer int, field, reason string) error {
	return fmt.Errorf("%w %d: %s %s", ErrInvalidLayer, layer, field, reason)
}

// Kind maps an error to a short label for metrics and logs.
func Kind(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrExecutionFailure):
		return "execution_failure"
	case errors.Is(err, ErrInvalidSession):
		return "invalid_session"
	case errors.Is(err, ErrTypeMismatch):
		return "type_mismatch"
	case errors.Is(err, ErrIncompleteAttributes):
		return "incomplete_attributes"
	case errors.Is(err, ErrInvalidSpace),
		errors.Is(err, ErrNoLayers),
		errors.Is(err, ErrNoStartVertices),
		errors.Is(err, ErrInvalidLayer),
		errors.Is(err, ErrInvalidDirection),
		errors.Is(err, ErrInvalidAttribute):
		return "validation"
	default:
		return "other"
	}
}
