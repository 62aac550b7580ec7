// Package error defines domain-specific errors for the SpendSync application.
package error

import "errors"

// Operator report delivery errors.
var (
	// ErrNoOpsRecipient is returned when a job report is queued without a recipient configured.
	ErrNoOpsRecipient = errors.New("no operations recipient configured")

	// ErrUnknownTemplate is returned when a queued email names a template the renderer lacks.
	ErrUnknownTemplate = errors.New("unknown email template")

	// ErrDeliveryRejected marks provider answers that will not change on retry.
	ErrDeliveryRejected = errors.New("email rejected by provider")

	// ErrDeliveryUnavailable marks provider failures worth retrying.
	ErrDeliveryUnavailable = errors.New("email provider unavailable")
)

// EmailErrorCode identifies where in the report pipeline an email failed.
type EmailErrorCode string

const (
	ErrCodeNoOpsRecipient   EmailErrorCode = "REPORT-QUEUE-RECIPIENT"
	ErrCodeEmailQueueFailed EmailErrorCode = "REPORT-QUEUE-STORE"
	ErrCodeInvalidTemplate  EmailErrorCode = "REPORT-RENDER-TEMPLATE"
	ErrCodeDeliveryRejected EmailErrorCode = "REPORT-SEND-REJECTED"
	ErrCodeDeliveryFailed   EmailErrorCode = "REPORT-SEND-RETRY"
)

// EmailError carries a pipeline code alongside the underlying cause.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

func (e *EmailError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *EmailError) Unwrap() error {
	return e.Err
}

// NewEmailError creates a new EmailError with the given code and message.
func NewEmailError(code EmailErrorCode, message string, err error) *EmailError {
	return &EmailError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// IsPermanentEmailFailure reports whether retrying err cannot succeed:
// provider rejections and rendering problems.
func IsPermanentEmailFailure(err error) bool {
	var emailErr *EmailError
	if !errors.As(err, &emailErr) {
		return false
	}
	return emailErr.Code == ErrCodeDeliveryRejected || emailErr.Code == ErrCodeInvalidTemplate
}
