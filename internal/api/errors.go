package api

import (
	"errors"
	"fmt"
)

// Common backend errors.
var (
	ErrUnauthorized = errors.New("unauthorized")
	ErrNotFound     = errors.New("resource not found")
	ErrConflict     = errors.New("resource already exists")
	ErrRateLimited  = errors.New("rate limited")
	ErrServerError  = errors.New("server error")
	ErrBadRequest   = errors.New("bad request")
)

// BackendError represents an error response from the backend REST API.
type BackendError struct {
	StatusCode int
	Message    string
	Code       string
}

func (e *BackendError) Error() string {
	if e.Message != "" {
		return fmt.Sprintf("backend error %d: %s", e.StatusCode, e.Message)
	}
	return fmt.Sprintf("backend error %d", e.StatusCode)
}

// Is implements error matching for BackendError.
func (e *BackendError) Is(target error) bool {
	switch e.StatusCode {
	case 401, 403:
		return errors.Is(target, ErrUnauthorized)
	case 404:
		return errors.Is(target, ErrNotFound)
	case 409:
		return errors.Is(target, ErrConflict)
	case 429:
		return errors.Is(target, ErrRateLimited)
	case 400:
		return errors.Is(target, ErrBadRequest)
	}
	if e.StatusCode >= 500 {
		return errors.Is(target, ErrServerError)
	}
	return false
}

// NewBackendError creates a BackendError from an HTTP status code.
func NewBackendError(statusCode int, message string) *BackendError {
	return &BackendError{
		StatusCode: statusCode,
		Message:    message,
	}
}

// DataAccessError is returned when a write to the spot table fails. The
// UserMessage is safe to show in the UI; the cause carries the diagnostic
// detail for the log.
type DataAccessError struct {
	UserMessage string
	Cause       error
}

func (e *DataAccessError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Cause)
	}
	return e.UserMessage
}

func (e *DataAccessError) Unwrap() error { return e.Cause }

// StorageError is returned when an image blob upload fails.
type StorageError struct {
	UserMessage string
	Cause       error
}

func (e *StorageError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %v", e.UserMessage, e.Cause)
	}
	return e.UserMessage
}

func (e *StorageError) Unwrap() error { return e.Cause }
