package error

import "errors"

// Exchange rate errors.
var (
	// ErrExchangeRateUnavailable is returned when the rate provider has no usable rate.
	ErrExchangeRateUnavailable = errors.New("exchange rate unavailable")

	// ErrUnsupportedCurrency is returned when a currency code is not supported.
	ErrUnsupportedCurrency = errors.New("unsupported currency")
)

// CurrencyErrorCode defines error codes for exchange rate errors.
// Format: CUR-XXYYYY where XX is category and YYYY is specific error.
type CurrencyErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeUnsupportedCurrency CurrencyErrorCode = "CUR-010001"

	// Upstream errors (03XXXX)
	ErrCodeRateFetchFailed CurrencyErrorCode = "CUR-030001"
)

// CurrencyError is a failed rate lookup with the code the API reports.
type CurrencyError struct {
	Code    CurrencyErrorCode
	Message string
	Err     error
}

func (e *CurrencyError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *CurrencyError) Unwrap() error {
	return e.Err
}

func NewCurrencyError(code CurrencyErrorCode, message string, err error) *CurrencyError {
	return &CurrencyError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
