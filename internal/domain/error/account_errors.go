// Package error defines domain-specific errors for the application.
package error

import (
	"errors"
	"fmt"

	"github.com/shopspring/decimal"
)

// Account domain errors.
var (
	// ErrAccountNotFound is returned when an account is not found in the system.
	ErrAccountNotFound = errors.New("account not found")

	// ErrNotAuthorizedToModifyAccount is returned when the account does not belong to the user.
	ErrNotAuthorizedToModifyAccount = errors.New("not authorized to modify account")

	// ErrInvalidAccountType is returned when the account type is invalid.
	ErrInvalidAccountType = errors.New("invalid account type")

	// ErrAccountInactive is returned when an operation targets a deactivated account.
	ErrAccountInactive = errors.New("account is inactive")

	// ErrAccountHasTransactions is returned when physically deleting an account
	// still referenced by transactions.
	ErrAccountHasTransactions = errors.New("account has transactions")

	// ErrCreditLimitOnNonCredit is returned when a credit limit is set on a non-credit account.
	ErrCreditLimitOnNonCredit = errors.New("credit limit only applies to credit accounts")
)

// AccountErrorCode defines error codes for account errors.
// Format: ACC-XXYYYY where XX is category and YYYY is specific error.
type AccountErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidAccountType     AccountErrorCode = "ACC-010001"
	ErrCodeAccountNotFound        AccountErrorCode = "ACC-010002"
	ErrCodeNotAuthorizedAccount   AccountErrorCode = "ACC-010003"
	ErrCodeAccountInactive        AccountErrorCode = "ACC-010004"
	ErrCodeAccountHasTransactions AccountErrorCode = "ACC-010005"
	ErrCodeMissingAccountFields   AccountErrorCode = "ACC-010006"
	ErrCodeCreditLimitOnNonCredit AccountErrorCode = "ACC-010007"

	// Admission errors (02XXXX)
	ErrCodeCreditLimitExceeded AccountErrorCode = "ACC-020001"
	ErrCodeInsufficientBalance AccountErrorCode = "ACC-020002"
)

// AccountError represents an account error with code and message.
type AccountError struct {
	Code    AccountErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *AccountError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *AccountError) Unwrap() error {
	return e.Err
}

// NewAccountError creates a new AccountError with the given code and message.
func NewAccountError(code AccountErrorCode, message string, err error) *AccountError {
	return &AccountError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// AdmissionError is returned by the balance authority when a balance
// mutation is rejected before being applied: a credit account would exceed
// its limit, or a non-credit debit lacks funds. Available carries the amount
// the account could still cover, Attempted the amount the caller asked for.
type AdmissionError struct {
	Code      AccountErrorCode
	Available decimal.Decimal
	Attempted decimal.Decimal
}

// Error implements the error interface.
func (e *AdmissionError) Error() string {
	if e.Code == ErrCodeInsufficientBalance {
		return fmt.Sprintf("insufficient balance: available %s, attempted %s",
			e.Available.StringFixed(2), e.Attempted.StringFixed(2))
	}
	return fmt.Sprintf("credit limit exceeded: available credit %s, attempted %s",
		e.Available.StringFixed(2), e.Attempted.StringFixed(2))
}

// NewAdmissionError creates a new AdmissionError.
func NewAdmissionError(code AccountErrorCode, available, attempted decimal.Decimal) *AdmissionError {
	return &AdmissionError{
		Code:      code,
		Available: available,
		Attempted: attempted,
	}
}
