// Package error defines domain-specific errors for the application.
package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a budget is not found in the system.
	ErrBudgetNotFound = errors.New("budget not found")

	// ErrBudgetAlreadyExists is returned when an active budget already covers the
	// same category and period.
	ErrBudgetAlreadyExists = errors.New("active budget already exists for this category and period")

	// ErrInvalidBudgetAmount is returned when the budget ceiling is not positive.
	ErrInvalidBudgetAmount = errors.New("invalid budget amount")

	// ErrInvalidBudgetPeriod is returned when the budget period is invalid.
	ErrInvalidBudgetPeriod = errors.New("invalid budget period")

	// ErrBudgetCategoryNotFound is returned when the category for a budget is not found.
	ErrBudgetCategoryNotFound = errors.New("category not found")

	// ErrBudgetCategoryNotExpense is returned when a budget targets an income category.
	ErrBudgetCategoryNotExpense = errors.New("budgets require an expense category")

	// ErrNotAuthorizedToModifyBudget is returned when the budget does not belong to the user.
	ErrNotAuthorizedToModifyBudget = errors.New("not authorized to modify budget")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BDG-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeBudgetNotFound           BudgetErrorCode = "BDG-010001"
	ErrCodeBudgetAlreadyExists      BudgetErrorCode = "BDG-010002"
	ErrCodeInvalidBudgetAmount      BudgetErrorCode = "BDG-010003"
	ErrCodeInvalidBudgetPeriod      BudgetErrorCode = "BDG-010004"
	ErrCodeBudgetCategoryNotFound   BudgetErrorCode = "BDG-010005"
	ErrCodeBudgetCategoryNotExpense BudgetErrorCode = "BDG-010006"
	ErrCodeNotAuthorizedBudget      BudgetErrorCode = "BDG-010007"
	ErrCodeMissingBudgetFields      BudgetErrorCode = "BDG-010008"
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
