package utils

import "errors"

// Common application errors used across services.
var (
	ErrInvalidToken      = errors.New("INVALID_TOKEN")
	ErrProductNotFound   = errors.New("PRODUCT_NOT_FOUND")
	ErrMasterNotFound    = errors.New("MASTER_NOT_FOUND")
	ErrDuplicateTelegram = errors.New("DUPLICATE_TELEGRAM")
)

// ValidationError is a field-level input failure. It never reaches the
// store: the workflow returns to an editable state and the caller corrects
// the field. Message is user-facing (shown verbatim on the form).
type ValidationError struct {
	Field   string
	Message string
}

func (e *ValidationError) Error() string {
	return e.Message
}

// NewValidationError builds a ValidationError for a single form field.
func NewValidationError(field, message string) *ValidationError {
	return &ValidationError{Field: field, Message: message}
}
