package models

import "errors"

// Sentinel errors returned by the service layer. Callers match them with errors.Is.
var (
	// ErrNotFound means the referenced entity id does not exist
	ErrNotFound = errors.New("not found")
	// ErrValidation covers bad input as well as store constraint violations on write
	ErrValidation = errors.New("validation failed")
)

// Fixed messages used in API error bodies
const (
	MsgRestaurantNotFound = "Restaurant not found"
	MsgPizzaNotFound      = "Pizza not found"
	MsgValidationErrors   = "validation errors"
)

// APIError is the body returned for not-found and unexpected failures
type APIError struct {
	Error string `json:"error"`
}

// ValidationErrors is the body returned when a write is rejected
type ValidationErrors struct {
	Errors []string `json:"errors"`
}

// NewAPIError creates a new API error with the given message
func NewAPIError(message string) APIError {
	return APIError{Error: message}
}

// NewValidationErrors creates the collapsed validation body. With no messages
// it falls back to the generic one.
func NewValidationErrors(messages ...string) ValidationErrors {
	if len(messages) == 0 {
		messages = []string{MsgValidationErrors}
	}
	return ValidationErrors{Errors: messages}
}
