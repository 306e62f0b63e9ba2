package apperrors

import (
	"errors"
	"fmt"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrDuplicateCategory indicates the user already has an active vault of a non-custom category.
var ErrDuplicateCategory = errors.New("an active vault of this category already exists")

// ErrConflict indicates the stored state changed between read and write.
var ErrConflict = errors.New("resource state conflict")

// ErrUnauthorized indicates missing or invalid credentials.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates the caller may not act on the resource.
var ErrForbidden = errors.New("forbidden")

// ErrInternal is returned to callers in place of errors that must not leak details.
var ErrInternal = errors.New("internal error")

// ErrInsufficientBalance indicates a vault could not fund a debit at write time.
var ErrInsufficientBalance = errors.New("insufficient vault balance")

// ErrVaultLimitReached indicates the user already owns the maximum number of active vaults.
var ErrVaultLimitReached = errors.New("maximum number of vaults reached")

// ErrEmergencyVaultProtected indicates an operation that emergency vaults do not allow (e.g. deletion).
var ErrEmergencyVaultProtected = errors.New("emergency vault cannot be deleted")

// ErrAccountLocked indicates too many failed PIN attempts.
var ErrAccountLocked = errors.New("account temporarily locked")

// AppError carries an HTTP-ish status code alongside a wrapped cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

// NewAppError creates a new AppError.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func (e *AppError) Error() string {
	if e.Err == nil {
		return e.Message
	}
	return fmt.Sprintf("%s: %v", e.Message, e.Err)
}

// Unwrap exposes the cause so errors.Is/As see through AppError.
func (e *AppError) Unwrap() error {
	return e.Err
}
