// Package error defines domain-specific errors for the SpendSync application.
package error

import "errors"

// Recurring expense domain errors.
var (
	// ErrRecurringNotFound is returned when a recurring template is not found.
	ErrRecurringNotFound = errors.New("recurring expense not found")

	// ErrInvalidDayOfMonth is returned when the day of month is outside 1..31.
	ErrInvalidDayOfMonth = errors.New("day of month must be between 1 and 31")

	// ErrMissingRecurringTitle is returned when a template has no title.
	ErrMissingRecurringTitle = errors.New("recurring expense title is required")

	// ErrUnauthorizedRecurringAccess is returned when a user deletes another user's template.
	ErrUnauthorizedRecurringAccess = errors.New("unauthorized access to recurring expense")
)

// RecurringErrorCode defines error codes for recurring expense errors.
// Format: REC-XXYYYY where XX is category and YYYY is specific error.
type RecurringErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidDayOfMonth      RecurringErrorCode = "REC-010001"
	ErrCodeInvalidRecurringAmount RecurringErrorCode = "REC-010002"
	ErrCodeInvalidRecurringCat    RecurringErrorCode = "REC-010003"
	ErrCodeMissingRecurringFields RecurringErrorCode = "REC-010004"

	// Access errors (02XXXX)
	ErrCodeRecurringNotFound           RecurringErrorCode = "REC-020001"
	ErrCodeUnauthorizedRecurringAccess RecurringErrorCode = "REC-020002"
)

// RecurringError represents a recurring expense error with code and message.
type RecurringError struct {
	Code    RecurringErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *RecurringError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *RecurringError) Unwrap() error {
	return e.Err
}

// NewRecurringError creates a new RecurringError with the given code and message.
func NewRecurringError(code RecurringErrorCode, message string, err error) *RecurringError {
	return &RecurringError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
