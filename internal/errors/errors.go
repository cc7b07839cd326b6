// Package errors defines the service error taxonomy and its HTTP mapping.
package errors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrorCode identifies a category of failure.
type ErrorCode string

const (
	CodeInvalidToken        ErrorCode = "INVALID_TOKEN"
	CodeUnauthorized        ErrorCode = "UNAUTHORIZED"
	CodeInvalidInput        ErrorCode = "INVALID_INPUT"
	CodeUnsupportedGameType ErrorCode = "UNSUPPORTED_GAME_TYPE"
	CodeUnsupportedRole     ErrorCode = "UNSUPPORTED_ROLE"
	CodeNotFound            ErrorCode = "NOT_FOUND"
	CodePermissionDenied    ErrorCode = "PERMISSION_DENIED"
	CodeStorageUnavailable  ErrorCode = "STORAGE_UNAVAILABLE"
	CodeRateLimitExceeded   ErrorCode = "RATE_LIMIT_EXCEEDED"
	CodeInternal            ErrorCode = "INTERNAL"
)

// ServiceError carries an error code, a user-visible message, and the HTTP
// status it maps to. Details are optional diagnostic key/values.
type ServiceError struct {
	Code       ErrorCode              `json:"code"`
	Message    string                 `json:"message"`
	HTTPStatus int                    `json:"-"`
	Details    map[string]interface{} `json:"details,omitempty"`
	Err        error                  `json:"-"`
}

func (e *ServiceError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Code, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *ServiceError) Unwrap() error { return e.Err }

// WithDetails attaches a diagnostic key/value pair and returns the error.
func (e *ServiceError) WithDetails(key string, value interface{}) *ServiceError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

func newError(code ErrorCode, message string, status int, err error) *ServiceError {
	return &ServiceError{Code: code, Message: message, HTTPStatus: status, Err: err}
}

// InvalidToken reports a malformed, expired, or unverifiable identity token.
func InvalidToken(err error) *ServiceError {
	return newError(CodeInvalidToken, "Invalid identity token", http.StatusUnauthorized, err)
}

// Unauthorized reports a missing or malformed Authorization header.
func Unauthorized(message string) *ServiceError {
	if message == "" {
		message = "Authentication required"
	}
	return newError(CodeUnauthorized, message, http.StatusUnauthorized, nil)
}

// InvalidInput reports a schema or constraint violation in a request body.
func InvalidInput(message string) *ServiceError {
	return newError(CodeInvalidInput, message, http.StatusBadRequest, nil)
}

// UnsupportedGameType reports an unknown game type tag.
func UnsupportedGameType(gameType string) *ServiceError {
	return newError(CodeUnsupportedGameType, fmt.Sprintf("unsupported game type %q", gameType), http.StatusBadRequest, nil)
}

// UnsupportedRole reports an unknown trust game role tag.
func UnsupportedRole(role string) *ServiceError {
	return newError(CodeUnsupportedRole, fmt.Sprintf("unsupported role %q", role), http.StatusBadRequest, nil)
}

// NotFound reports an absent record.
func NotFound(what string) *ServiceError {
	return newError(CodeNotFound, fmt.Sprintf("%s not found", what), http.StatusNotFound, nil)
}

// PermissionDenied reports a record owner mismatch.
func PermissionDenied(message string) *ServiceError {
	if message == "" {
		message = "Permission denied"
	}
	return newError(CodePermissionDenied, message, http.StatusForbidden, nil)
}

// StorageUnavailable wraps a persistence collaborator failure.
func StorageUnavailable(err error) *ServiceError {
	return newError(CodeStorageUnavailable, "Storage unavailable", http.StatusInternalServerError, err)
}

// RateLimitExceeded reports that the caller exhausted its request budget.
func RateLimitExceeded(limit int, window string) *ServiceError {
	e := newError(CodeRateLimitExceeded, "Rate limit exceeded", http.StatusTooManyRequests, nil)
	return e.WithDetails("limit", limit).WithDetails("window", window)
}

// Internal wraps an unexpected failure. The wrapped error text is appended to
// the message for diagnostics, which is acceptable for an internal tool.
func Internal(message string, err error) *ServiceError {
	if err != nil {
		message = fmt.Sprintf("%s: %v", message, err)
	}
	return newError(CodeInternal, message, http.StatusInternalServerError, err)
}

// GetServiceError unwraps a *ServiceError from an error chain, or nil.
func GetServiceError(err error) *ServiceError {
	var svcErr *ServiceError
	if errors.As(err, &svcErr) {
		return svcErr
	}
	return nil
}
