package error

import "errors"

// Bearer token and access errors.
var (
	ErrInvalidToken = errors.New("invalid token")
	ErrExpiredToken = errors.New("token has expired")

	// ErrMissingUserID is returned when a token or request carries no Discord user ID.
	ErrMissingUserID = errors.New("token has no user id")
)

// AuthErrorCode is the machine-readable code of a rejected request. Token
// codes answer 401, ErrCodeForbidden 403 and ErrCodeRateLimited 429.
type AuthErrorCode string

const (
	ErrCodeMissingToken AuthErrorCode = "AUTH-TOKEN-MISSING"
	ErrCodeInvalidToken AuthErrorCode = "AUTH-TOKEN-INVALID"
	ErrCodeExpiredToken AuthErrorCode = "AUTH-TOKEN-EXPIRED"
	ErrCodeForbidden    AuthErrorCode = "AUTH-ADMIN-REQUIRED"
	ErrCodeRateLimited  AuthErrorCode = "AUTH-RATE-LIMITED"
)

// AuthError is a rejected credential with the code the API reports.
type AuthError struct {
	Code    AuthErrorCode
	Message string
	Err     error
}

func (e *AuthError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AuthError) Unwrap() error {
	return e.Err
}

func NewAuthError(code AuthErrorCode, message string, err error) *AuthError {
	return &AuthError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
