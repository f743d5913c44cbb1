// Package error defines domain-specific errors for the application.
package error

import "errors"

// Transaction domain errors.
var (
	// ErrTransactionNotFound is returned when a transaction is not found in the system.
	ErrTransactionNotFound = errors.New("transaction not found")

	// ErrNotAuthorizedToModifyTransaction is returned when user is not authorized to modify a transaction.
	ErrNotAuthorizedToModifyTransaction = errors.New("not authorized to modify transaction")

	// ErrInvalidTransactionType is returned when the transaction type is invalid.
	ErrInvalidTransactionType = errors.New("invalid transaction type")

	// ErrInvalidTransactionAmount is returned when the transaction amount is not positive.
	ErrInvalidTransactionAmount = errors.New("invalid transaction amount")

	// ErrCategoryRequired is returned when an income or expense transaction has no category.
	ErrCategoryRequired = errors.New("category is required for income and expense transactions")

	// ErrCategoryNotAllowed is returned when a transfer carries a category.
	ErrCategoryNotAllowed = errors.New("transfers do not carry a category")

	// ErrDestinationRequired is returned when a transfer has no destination account.
	ErrDestinationRequired = errors.New("destination account is required for transfers")

	// ErrSameTransferAccounts is returned when a transfer's source and destination match.
	ErrSameTransferAccounts = errors.New("cannot transfer to the same account")

	// ErrCategoryNotFoundForTransaction is returned when the specified category is not found.
	ErrCategoryNotFoundForTransaction = errors.New("category not found")

	// ErrCategoryTypeMismatch is returned when the category type does not match the transaction type.
	ErrCategoryTypeMismatch = errors.New("category type does not match transaction type")

	// ErrDescriptionTooLong is returned when the transaction description exceeds the maximum length.
	ErrDescriptionTooLong = errors.New("description too long")

	// ErrNotesTooLong is returned when the transaction notes exceed the maximum length.
	ErrNotesTooLong = errors.New("notes too long")
)

// TransactionErrorCode defines error codes for transaction errors.
// Format: TXN-XXYYYY where XX is category and YYYY is specific error.
type TransactionErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeInvalidTransactionType   TransactionErrorCode = "TXN-010001"
	ErrCodeInvalidTransactionDate   TransactionErrorCode = "TXN-010002"
	ErrCodeInvalidTransactionAmount TransactionErrorCode = "TXN-010003"
	ErrCodeTransactionNotFound      TransactionErrorCode = "TXN-010004"
	ErrCodeNotAuthorizedTransaction TransactionErrorCode = "TXN-010005"
	ErrCodeTxnCategoryNotFound      TransactionErrorCode = "TXN-010006"
	ErrCodeCategoryRequired         TransactionErrorCode = "TXN-010007"
	ErrCodeCategoryNotAllowed       TransactionErrorCode = "TXN-010008"
	ErrCodeDestinationRequired      TransactionErrorCode = "TXN-010009"
	ErrCodeSameTransferAccounts     TransactionErrorCode = "TXN-010010"
	ErrCodeCategoryTypeMismatch     TransactionErrorCode = "TXN-010011"
	ErrCodeDescriptionTooLong       TransactionErrorCode = "TXN-010012"
	ErrCodeNotesTooLong             TransactionErrorCode = "TXN-010013"
	ErrCodeMissingTransactionFields TransactionErrorCode = "TXN-010014"
)

// TransactionError represents a transaction error with code and message.
type TransactionError struct {
	Code    TransactionErrorCode
	Message string
	Err     error
}

// Error implements the error interface.
func (e *TransactionError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

// Unwrap returns the underlying error.
func (e *TransactionError) Unwrap() error {
	return e.Err
}

// NewTransactionError creates a new TransactionError with the given code and message.
func NewTransactionError(code TransactionErrorCode, message string, err error) *TransactionError {
	return &TransactionError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}
