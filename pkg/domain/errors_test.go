package domain

import (
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestDomainError_Error(t *testing.T) {
	err := NewNotFoundError("lead")
	assert.Equal(t, "NOT_FOUND: lead not found", err.Error())

	wrapped := NewFetchFailedError(errors.New("connection refused"))
	assert.Equal(t, "FETCH_FAILED: Failed to fetch leads: connection refused", wrapped.Error())
}

func TestDomainError_Unwrap(t *testing.T) {
	cause := errors.New("timeout")
	err := NewSeedFailedError(cause)
	assert.ErrorIs(t, err, cause)
}

func TestIsHelpers(t *testing.T) {
	tests := []struct {
		name  string
		err   error
		check func(error) bool
	}{
		{"Not found", NewNotFoundError("lead"), IsNotFound},
		{"Validation", NewValidationError("bad"), IsValidation},
		{"Unauthorized", NewUnauthorizedError(), IsUnauthorized},
		{"Session expired", NewSessionExpiredError(), IsSessionExpired},
		{"Fetch failed", NewFetchFailedError(nil), IsFetchFailed},
		{"Seed failed", NewSeedFailedError(nil), IsSeedFailed},
		{"Internal", NewInternalError(nil), IsInternal},
		{"Conflict", NewConflictError("exists"), IsConflict},
		{"Bad request", NewBadRequestError("bad"), IsBadRequest},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.True(t, tt.check(tt.err))
			assert.True(t, tt.check(fmt.Errorf("context: %w", tt.err)), "wrapped errors should match")
			assert.False(t, tt.check(errors.New("plain")))
		})
	}
}

func TestGetErrorCode(t *testing.T) {
	assert.Equal(t, ErrCodeFetchFailed, GetErrorCode(NewFetchFailedError(nil)))
	assert.Equal(t, ErrCodeInternal, GetErrorCode(errors.New("plain")))
}

func TestMessage(t *testing.T) {
	assert.Equal(t, "Failed to seed data", Message(NewSeedFailedError(nil), "fallback"))
	assert.Equal(t, "fallback", Message(errors.New("plain"), "fallback"))
}
