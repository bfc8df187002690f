// Package errors provides standardized error handling for the activities API.
package errors

import (
	"fmt"
	"net/http"
	"time"
)

// ==========================
// 1. Standard Error Types
// ==========================

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	ErrCodeActivityNotFound ErrorCode = "ACTIVITY_NOT_FOUND"
	ErrCodeAlreadySignedUp  ErrorCode = "ALREADY_SIGNED_UP"
	ErrCodeNotSignedUp      ErrorCode = "NOT_SIGNED_UP"
	ErrCodeActivityFull     ErrorCode = "ACTIVITY_FULL"
	ErrCodeInvalidEmail     ErrorCode = "INVALID_EMAIL"
	ErrCodeInternal         ErrorCode = "INTERNAL_ERROR"
)

// APIError represents a structured application error whose Detail is safe
// to return to the caller.
type APIError struct {
	Code      ErrorCode `json:"code"`
	Status    int       `json:"status"`
	Detail    string    `json:"detail"`
	Timestamp time.Time `json:"timestamp"`
}

func (e *APIError) Error() string {
	return fmt.Sprintf("APIError[%s]: %s", e.Code, e.Detail)
}

// ==========================
// 2. Error Constructors
// ==========================

// NewActivityNotFoundError reports a lookup of an unknown activity.
func NewActivityNotFoundError(activityName string) *APIError {
	return &APIError{
		Code:      ErrCodeActivityNotFound,
		Status:    http.StatusNotFound,
		Detail:    "Activity not found",
		Timestamp: time.Now().UTC(),
	}
}

// NewAlreadySignedUpError reports a duplicate signup attempt.
func NewAlreadySignedUpError(email string) *APIError {
	return &APIError{
		Code:      ErrCodeAlreadySignedUp,
		Status:    http.StatusBadRequest,
		Detail:    "Student is already signed up",
		Timestamp: time.Now().UTC(),
	}
}

// NewNotSignedUpError reports an unregister of a student who never signed up.
func NewNotSignedUpError(email string) *APIError {
	return &APIError{
		Code:      ErrCodeNotSignedUp,
		Status:    http.StatusBadRequest,
		Detail:    "Student is not signed up for this activity",
		Timestamp: time.Now().UTC(),
	}
}

// NewActivityFullError reports a signup against an activity at capacity.
func NewActivityFullError(activityName string) *APIError {
	return &APIError{
		Code:      ErrCodeActivityFull,
		Status:    http.StatusBadRequest,
		Detail:    "Activity is full",
		Timestamp: time.Now().UTC(),
	}
}

// NewInvalidEmailError reports a missing or malformed email parameter.
func NewInvalidEmailError(email string) *APIError {
	return &APIError{
		Code:      ErrCodeInvalidEmail,
		Status:    http.StatusBadRequest,
		Detail:    "A valid email address is required",
		Timestamp: time.Now().UTC(),
	}
}

// NewInternalError wraps an unexpected failure without leaking its cause.
func NewInternalError(err error) *APIError {
	return &APIError{
		Code:      ErrCodeInternal,
		Status:    http.StatusInternalServerError,
		Detail:    "Internal server error",
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// 3. Utility Functions
// ==========================

// StatusFor returns the HTTP status for any error, defaulting to 500.
func StatusFor(err error) int {
	if apiErr, ok := err.(*APIError); ok {
		return apiErr.Status
	}
	return http.StatusInternalServerError
}
