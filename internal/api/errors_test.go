package api

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestBackendError_Error(t *testing.T) {
	err := NewBackendError(500, "internal error")
	assert.Equal(t, "backend error 500: internal error", err.Error())

	err = NewBackendError(404, "")
	assert.Equal(t, "backend error 404", err.Error())
}

func TestBackendError_Is(t *testing.T) {
	tests := []struct {
		statusCode int
		target     error
	}{
		{401, ErrUnauthorized},
		{403, ErrUnauthorized},
		{404, ErrNotFound},
		{409, ErrConflict},
		{429, ErrRateLimited},
		{400, ErrBadRequest},
		{500, ErrServerError},
		{503, ErrServerError},
	}

	for _, tt := range tests {
		err := NewBackendError(tt.statusCode, "test")
		assert.ErrorIs(t, err, tt.target, "status %d", tt.statusCode)
	}

	// 200-range codes never produce errors, but Is must not match either.
	assert.False(t, errors.Is(NewBackendError(302, "test"), ErrServerError))
}

func TestDataAccessError_SeparatesUserMessageFromCause(t *testing.T) {
	cause := NewBackendError(500, "relation parking_spots does not exist")
	err := &DataAccessError{UserMessage: "could not create the parking spot", Cause: cause}

	assert.Contains(t, err.Error(), "relation parking_spots")
	assert.NotContains(t, err.UserMessage, "relation")
	assert.ErrorIs(t, err, ErrServerError)
}

func TestStorageError_Unwrap(t *testing.T) {
	cause := NewBackendError(409, "duplicate")
	err := &StorageError{UserMessage: "could not upload the image", Cause: cause}

	assert.ErrorIs(t, err, ErrConflict)

	var backendErr *BackendError
	assert.ErrorAs(t, err, &backendErr)
}
