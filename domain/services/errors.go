package services

import (
	"errors"
	"fmt"
)

// Sentinel errors shared across the service layer. Handlers map these to
// response statuses; services wrap them with context using %w.
var (
	ErrMemberNotFound    = errors.New("member not found")
	ErrEntryNotFound     = errors.New("ledger entry not found")
	ErrOrderNotFound     = errors.New("order not found")
	ErrGameNotFound      = errors.New("game not found")
	ErrInsufficientFunds = errors.New("insufficient funds")
	ErrAlreadyFinalized  = errors.New("ledger entry already finalized")
	ErrAlreadySettled    = errors.New("game already settled")
	ErrPermissionDenied  = errors.New("permission denied")
)

// ValidationError reports malformed or missing input
type ValidationError struct {
	Field   string
	Message string
}

// Error implements the error interface
func (e *ValidationError) Error() string {
	return fmt.Sprintf("invalid %s: %s", e.Field, e.Message)
}

// NewValidationError creates a validation error for a field
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}

// IsValidationError checks whether an error is a validation error
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
