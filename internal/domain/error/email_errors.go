// Package error defines domain-specific errors for the application.
package error

// EmailErrorCode defines error codes for email delivery errors.
// Format: EML-XXYYYY where XX is category and YYYY is specific error.
type EmailErrorCode string

const (
	// ErrCodeTemporaryEmailFailure marks a delivery failure worth retrying.
	ErrCodeTemporaryEmailFailure EmailErrorCode = "EML-010001"
	// ErrCodePermanentEmailFailure marks a delivery failure that must not be retried.
	ErrCodePermanentEmailFailure EmailErrorCode = "EML-010002"
	// ErrCodeInvalidTemplate marks a job whose template type cannot be rendered.
	ErrCodeInvalidTemplate EmailErrorCode = "EML-020001"
)

// EmailError represents an email delivery error with code and message.
type EmailError struct {
	Code    EmailErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *EmailError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
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
