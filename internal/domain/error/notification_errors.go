// Package error defines domain-specific errors for the SpendSync application.
package error

import "errors"

// Notification errors.
var (
	// ErrNotificationNotDelivered is returned when a direct message could not be delivered.
	ErrNotificationNotDelivered = errors.New("notification not delivered")

	// ErrNotifierUnavailable is returned when no bot session is configured.
	ErrNotifierUnavailable = errors.New("notifier unavailable")
)

// NotificationErrorCode defines error codes for notification errors.
// Format: NTF-XXYYYY where XX is category and YYYY is specific error.
type NotificationErrorCode string

const (
	// Delivery errors (01XXXX)
	ErrCodeChannelOpenFailed NotificationErrorCode = "NTF-010001"
	ErrCodeMessageSendFailed NotificationErrorCode = "NTF-010002"
	ErrCodeNotifierDisabled  NotificationErrorCode = "NTF-010003"
)

// NotificationError represents a notification error with code and message.
type NotificationError struct {
	Code    NotificationErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *NotificationError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *NotificationError) Unwrap() error {
	return e.Err
}

// NewNotificationError creates a new NotificationError with the given code and message.
func NewNotificationError(code NotificationErrorCode, message string, err error) *NotificationError {
	return &NotificationError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
