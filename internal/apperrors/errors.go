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

// ErrUnauthorized indicates the caller could not be authenticated.
var ErrUnauthorized = errors.New("unauthorized")

// ErrForbidden indicates an authenticated principal is not allowed to act on a resource.
var ErrForbidden = errors.New("forbidden")

// ErrScopeNotFound indicates a region code or category name did not resolve.
var ErrScopeNotFound = errors.New("scope not found")

// ErrInvalidScope is returned by record creation when the scope does not resolve.
var ErrInvalidScope = errors.New("invalid region or category")

// ErrInvalidAmount indicates a non-numeric or negative monetary amount.
var ErrInvalidAmount = errors.New("invalid amount")

// ErrTransactionConflict indicates a concurrent writer forced the transaction to abort.
var ErrTransactionConflict = errors.New("transaction conflict")

// ErrStoreUnavailable indicates the persistence layer could not be reached.
var ErrStoreUnavailable = errors.New("store unavailable")

// ScopePart names which half of a scope failed to resolve.
type ScopePart string

const (
	ScopePartRegion   ScopePart = "region"
	ScopePartCategory ScopePart = "category"
)

// ScopeNotFoundError carries the half of the scope that failed and the key that was looked up.
type ScopeNotFoundError struct {
	Part ScopePart
	Key  string
}

func (e *ScopeNotFoundError) Error() string {
	return fmt.Sprintf("%s %q not found", e.Part, e.Key)
}

func (e *ScopeNotFoundError) Unwrap() error {
	return ErrScopeNotFound
}

// NewRegionNotFound builds a ScopeNotFoundError for a region code.
func NewRegionNotFound(code int) *ScopeNotFoundError {
	return &ScopeNotFoundError{Part: ScopePartRegion, Key: fmt.Sprint(code)}
}

// NewCategoryNotFound builds a ScopeNotFoundError for a category name.
func NewCategoryNotFound(name string) *ScopeNotFoundError {
	return &ScopeNotFoundError{Part: ScopePartCategory, Key: name}
}

// AppError is a repository-level failure with an HTTP-ish code and a cause.
type AppError struct {
	Code    int
	Message string
	Err     error
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError wraps err with a code and message.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

// NewValidationFailedError returns an error that matches ErrValidation.
func NewValidationFailedError(message string) error {
	return fmt.Errorf("%w: %s", ErrValidation, message)
}

// NewConflictError returns an error that matches ErrDuplicate.
func NewConflictError(message string) error {
	return fmt.Errorf("%w: %s", ErrDuplicate, message)
}
