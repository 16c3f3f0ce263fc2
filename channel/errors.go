package channel

import (
	"errors"

	"github.com/persistorai/graphloader/internal/models"
)

// Errors returned by Channel calls. Match them with errors.Is.
var (
	ErrExecutionFailure     = models.ErrExecutionFailure
	ErrInvalidSession       = models.ErrInvalidSession
	ErrTypeMismatch         = models.ErrTypeMismatch
	ErrIncompleteAttributes = models.ErrIncompleteAttributes
	ErrNoLayers             = models.ErrNoLayers
	ErrNoStartVertices      = models.ErrNoStartVertices
	ErrInvalidSpace         = models.ErrInvalidSpace
	ErrInvalidLayer         = models.ErrInvalidLayer
	ErrInvalidDirection     = models.ErrInvalidDirection
	ErrInvalidAttribute     = models.ErrInvalidAttribute
)

// IsExecutionFailure returns true if the store rejected a statement.
func IsExecutionFailure(err error) bool {
	return errors.Is(err, ErrExecutionFailure)
}

// IsInvalidSession returns true if no usable session could be leased.
func IsInvalidSession(err error) bool {
	return errors.Is(err, ErrInvalidSession)
}

// IsTypeMismatch returns true if a result cell had an unexpected type.
func IsTypeMismatch(err error) bool {
	return errors.Is(err, ErrTypeMismatch)
}

// IsValidation returns true if the request was rejected before reaching the store.
func IsValidation(err error) bool {
	return models.Kind(err) == "validation"
}
