package domain

import (
	"errors"
	"fmt"
)

// DomainError represents a domain-specific error with a code and message
type DomainError struct {
	Code    string
	Message string
	Err     error
}

func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *DomainError) Unwrap() error {
	return e.Err
}

// Error codes
const (
	ErrCodeNotFound       = "NOT_FOUND"
	ErrCodeValidation     = "VALIDATION_ERROR"
	ErrCodeUnauthorized   = "UNAUTHORIZED"
	ErrCodeSessionExpired = "SESSION_EXPIRED"
	ErrCodeFetchFailed    = "FETCH_FAILED"
	ErrCodeSeedFailed     = "SEED_FAILED"
	ErrCodeInternal       = "INTERNAL_ERROR"
	ErrCodeConflict       = "CONFLICT"
	ErrCodeBadRequest     = "BAD_REQUEST"
)

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string) error {
	return &DomainError{
		Code:    ErrCodeNotFound,
		Message: fmt.Sprintf("%s not found", resource),
	}
}

// NewValidationError creates a new validation error
func NewValidationError(msg string) error {
	return &DomainError{
		Code:    ErrCodeValidation,
		Message: msg,
	}
}

// NewUnauthorizedError creates a new unauthorized error
func NewUnauthorizedError() error {
	return &DomainError{
		Code:    ErrCodeUnauthorized,
		Message: "Authentication required",
	}
}

// NewSessionExpiredError creates an error for a stored session whose token has expired
func NewSessionExpiredError() error {
	return &DomainError{
		Code:    ErrCodeSessionExpired,
		Message: "Session expired, please log in again",
	}
}

// NewFetchFailedError wraps a failed lead list query
func NewFetchFailedError(err error) error {
	return &DomainError{
		Code:    ErrCodeFetchFailed,
		Message: "Failed to fetch leads",
		Err:     err,
	}
}

// NewSeedFailedError wraps a failed reseed call
func NewSeedFailedError(err error) error {
	return &DomainError{
		Code:    ErrCodeSeedFailed,
		Message: "Failed to seed data",
		Err:     err,
	}
}

// NewInternalError creates a new internal error
func NewInternalError(err error) error {
	return &DomainError{
		Code:    ErrCodeInternal,
		Message: "An internal error occurred",
		Err:     err,
	}
}

// NewConflictError creates a new conflict error
func NewConflictError(msg string) error {
	return &DomainError{
		Code:    ErrCodeConflict,
		Message: msg,
	}
}

// NewBadRequestError creates a new bad request error
func NewBadRequestError(msg string) error {
	return &DomainError{
		Code:    ErrCodeBadRequest,
		Message: msg,
	}
}

func hasCode(err error, code string) bool {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code == code
	}
	return false
}

// IsNotFound checks if the error is a not found error
func IsNotFound(err error) bool { return hasCode(err, ErrCodeNotFound) }

// IsValidation checks if the error is a validation error
func IsValidation(err error) bool { return hasCode(err, ErrCodeValidation) }

// IsUnauthorized checks if the error is an unauthorized error
func IsUnauthorized(err error) bool { return hasCode(err, ErrCodeUnauthorized) }

// IsSessionExpired checks if the error is a session expired error
func IsSessionExpired(err error) bool { return hasCode(err, ErrCodeSessionExpired) }

// IsFetchFailed checks if the error is a failed lead list query
func IsFetchFailed(err error) bool { return hasCode(err, ErrCodeFetchFailed) }

// IsSeedFailed checks if the error is a failed reseed
func IsSeedFailed(err error) bool { return hasCode(err, ErrCodeSeedFailed) }

// IsInternal checks if the error is an internal error
func IsInternal(err error) bool { return hasCode(err, ErrCodeInternal) }

// IsConflict checks if the error is a conflict error
func IsConflict(err error) bool { return hasCode(err, ErrCodeConflict) }

// IsBadRequest checks if the error is a bad request error
func IsBadRequest(err error) bool { return hasCode(err, ErrCodeBadRequest) }

// GetErrorCode extracts the error code from a domain error
func GetErrorCode(err error) string {
	var de *DomainError
	if errors.As(err, &de) {
		return de.Code
	}
	return ErrCodeInternal
}

// Message returns the user-facing message of a domain error, or fallback
func Message(err error, fallback string) string {
	var de *DomainError
	if errors.As(err, &de) && de.Message != "" {
		return de.Message
	}
	return fallback
}
