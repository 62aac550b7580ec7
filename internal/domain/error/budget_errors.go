// Package error defines domain-specific errors for the SpendSync application.
package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a user has no budget record.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrInvalidBudgetAmount is returned when a budget amount is negative or not a number.
	ErrInvalidBudgetAmount = errors.New("invalid budget amount")

	// ErrInvalidMonth is returned when a month is not in YYYY-MM form.
	ErrInvalidMonth = errors.New("invalid month")

	// ErrAdminRequired is returned when a non-admin requests group or cross-user data.
	ErrAdminRequired = errors.New("admin access required")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BUD-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidBudgetAmount BudgetErrorCode = "BUD-010001"
	ErrCodeInvalidMonth        BudgetErrorCode = "BUD-010002"
	ErrCodeMissingBudgetFields BudgetErrorCode = "BUD-010003"

	// Access errors (02XXXX). A missing budget record is not an error: the
	// ledger treats it as a zero budget.
	ErrCodeAdminRequired BudgetErrorCode = "BUD-020002"
)

// BudgetError represents a budget error with code and message.
type BudgetError struct {
	Code    BudgetErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *BudgetError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *BudgetError) Unwrap() error {
	return e.Err
}

// NewBudgetError creates a new BudgetError with the given code and message.
func NewBudgetError(code BudgetErrorCode, message string, err error) *BudgetError {
	return &BudgetError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
