// Package error defines domain-specific errors for the Budget Tracker application.
package error

import "errors"

// Budget domain errors.
var (
	// ErrBudgetNotFound is returned when a user has no stored budget document.
	ErrBudgetNotFound = errors.New("budget document not found")

	// ErrCategoryNotFound is returned when a category id is unknown.
	ErrCategoryNotFound = errors.New("category not found")

	// ErrPresetNotFound is returned when a preset label is unknown.
	ErrPresetNotFound = errors.New("preset not found")

	// ErrCategoryNameRequired is returned when the category name is empty after trimming.
	ErrCategoryNameRequired = errors.New("category name is required")

	// ErrCategoryNameTooLong is returned when the category name exceeds the maximum length.
	ErrCategoryNameTooLong = errors.New("category name too long")

	// ErrCategoryNameExists is returned when another category already uses the name.
	ErrCategoryNameExists = errors.New("category name already exists")

	// ErrUnknownGroup is returned when a category references a label that is not a preset.
	ErrUnknownGroup = errors.New("group label is not a preset")

	// ErrInvalidMonthIndex is returned for month indexes outside 0..11.
	ErrInvalidMonthIndex = errors.New("invalid month index")

	// ErrPresetInUse is returned when deleting a preset still referenced by a category.
	ErrPresetInUse = errors.New("preset is in use by a category")

	// ErrCategoryQuotaExceeded is returned when a free account hits the category limit.
	ErrCategoryQuotaExceeded = errors.New("category quota exceeded")

	// ErrBudgetPersistence is returned when the storage collaborator fails.
	// The in-memory document remains the source of truth; the next successful
	// save catches up.
	ErrBudgetPersistence = errors.New("budget persistence failure")
)

// BudgetErrorCode defines error codes for budget errors.
// Format: BGT-XXYYYY where XX is category and YYYY is specific error.
type BudgetErrorCode string

const (
	// Validation errors (01XXXX)
	ErrCodeCategoryNameRequired BudgetErrorCode = "BGT-010001"
	ErrCodeCategoryNameTooLong  BudgetErrorCode = "BGT-010002"
	ErrCodeCategoryNameExists   BudgetErrorCode = "BGT-010003"
	ErrCodeInvalidMonthIndex    BudgetErrorCode = "BGT-010004"
	ErrCodeUnknownGroup         BudgetErrorCode = "BGT-010005"
	ErrCodeMissingBudgetFields  BudgetErrorCode = "BGT-010006"

	// Lookup errors (02XXXX)
	ErrCodeCategoryNotFound BudgetErrorCode = "BGT-020001"
	ErrCodePresetNotFound   BudgetErrorCode = "BGT-020002"

	// Policy errors (03XXXX)
	ErrCodePresetInUse           BudgetErrorCode = "BGT-030001"
	ErrCodeCategoryQuotaExceeded BudgetErrorCode = "BGT-030002"

	// Persistence errors (04XXXX)
	ErrCodeBudgetPersistence BudgetErrorCode = "BGT-040001"
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
