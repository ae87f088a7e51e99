package common

import (
	"context"
	"errors"
	"fmt"
	"net"
	"net/http"
)

// ErrorResponse API error body
type ErrorResponse struct {
	Success bool   `json:"success"`
	Code    string `json:"code"`              // error code
	Message string `json:"message"`           // error message
	Details string `json:"details,omitempty"` // only shown in debug mode
}

// CustomError carries an error code and the HTTP status it maps to
type CustomError struct {
	Code    string // error code
	Message string // error message
	Err     error  // wrapped cause
	Status  int    // HTTP status
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap exposes the cause to errors.Is / errors.As
func (e *CustomError) Unwrap() error {
	return e.Err
}

// Is matches two CustomErrors by code so the predefined errors work as sentinels
func (e *CustomError) Is(target error) bool {
	t, ok := target.(*CustomError)
	if !ok {
		return false
	}
	return e.Code == t.Code
}

// NewError creates a CustomError
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// Error codes
const (
	// client errors (4xx)
	ErrCodeInvalidRequest   = "INVALID_REQUEST"    // 400
	ErrCodeNotFound         = "NOT_FOUND"          // 404
	ErrCodeMethodNotAllowed = "METHOD_NOT_ALLOWED" // 405
	ErrCodeConflict         = "CONFLICT"           // 409
	ErrCodeTooManyRequests  = "TOO_MANY_REQUESTS"  // 429

	// server errors (5xx)
	ErrCodeInternalError  = "INTERNAL_ERROR"   // 500
	ErrCodeStoreError     = "STORE_ERROR"      // 500
	ErrCodeAIServiceError = "AI_SERVICE_ERROR" // 502
	ErrCodeOracleTimeout  = "ORACLE_TIMEOUT"   // 504
	ErrCodeRequestTimeout = "REQUEST_TIMEOUT"  // 504
)

// Predefined errors, usable as errors.Is targets
var (
	ErrInvalidRequest = NewError(ErrCodeInvalidRequest, "invalid request", http.StatusBadRequest, nil)
	ErrNotFound       = NewError(ErrCodeNotFound, "recipe not found", http.StatusNotFound, nil)
	ErrConflict       = NewError(ErrCodeConflict, "recipe name already exists", http.StatusConflict, nil)

	ErrStoreError     = NewError(ErrCodeStoreError, "store error", http.StatusInternalServerError, nil)
	ErrAIServiceError = NewError(ErrCodeAIServiceError, "AI service error", http.StatusBadGateway, nil)
	ErrOracleTimeout  = NewError(ErrCodeOracleTimeout, "AI service timed out", http.StatusGatewayTimeout, nil)
)

// NewValidationError reports a request that failed validation; nothing was persisted
func NewValidationError(message string) error {
	return NewError(ErrCodeInvalidRequest, message, http.StatusBadRequest, nil)
}

// IsValidationError reports whether err is a validation error
func IsValidationError(err error) bool {
	return errors.Is(err, ErrInvalidRequest)
}

// NewNotFoundError reports an update/delete/lookup that matched no row
func NewNotFoundError(message string) error {
	return NewError(ErrCodeNotFound, message, http.StatusNotFound, nil)
}

// IsNotFound reports whether err is a not-found error
func IsNotFound(err error) bool {
	return errors.Is(err, ErrNotFound)
}

// NewConflictError reports a save that collides with another recipe's name
func NewConflictError(message string) error {
	return NewError(ErrCodeConflict, message, http.StatusConflict, nil)
}

// NewStoreError wraps a persistence failure; the cause is surfaced verbatim
func NewStoreError(err error) error {
	if err == nil {
		return nil
	}
	return NewError(ErrCodeStoreError, "store error", http.StatusInternalServerError, err)
}

// NewOracleError wraps an AI failure. Deadline errors become ORACLE_TIMEOUT.
func NewOracleError(message string, err error) error {
	if IsTimeout(err) {
		return NewError(ErrCodeOracleTimeout, "AI service timed out", http.StatusGatewayTimeout, err)
	}
	return NewError(ErrCodeAIServiceError, message, http.StatusBadGateway, err)
}

// IsTimeout reports whether err is a deadline or network timeout
func IsTimeout(err error) bool {
	if err == nil {
		return false
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return true
	}
	var ne net.Error
	return errors.As(err, &ne) && ne.Timeout()
}

// IsOracleError reports whether err came from the AI oracle, including timeouts
func IsOracleError(err error) bool {
	return errors.Is(err, ErrAIServiceError) || errors.Is(err, ErrOracleTimeout)
}

// AsCustomError extracts the CustomError from err; unknown errors map to INTERNAL_ERROR
func AsCustomError(err error) *CustomError {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return NewError(ErrCodeRequestTimeout, "request timed out", http.StatusGatewayTimeout, err)
	}
	return NewError(ErrCodeInternalError, "internal server error", http.StatusInternalServerError, err)
}
