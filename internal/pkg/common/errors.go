package common

import (
	"errors"
	"net/http"
)

// ErrorResponse is the JSON error envelope returned by the API.
type ErrorResponse struct {
	Code    string `json:"code"`
	Message string `json:"message"`
	Details string `json:"details,omitempty"` // only populated outside production
}

// CustomError carries an API error code and HTTP status alongside the cause.
type CustomError struct {
	Code    string
	Message string
	Err     error
	Status  int
}

func (e *CustomError) Error() string {
	if e.Err != nil {
		return e.Err.Error()
	}
	return e.Message
}

func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewError creates a new CustomError.
func NewError(code string, message string, status int, err error) *CustomError {
	return &CustomError{
		Code:    code,
		Message: message,
		Status:  status,
		Err:     err,
	}
}

// WrapError attaches a cause to a predefined error without mutating it.
func WrapError(base *CustomError, err error) *CustomError {
	return &CustomError{
		Code:    base.Code,
		Message: base.Message,
		Status:  base.Status,
		Err:     err,
	}
}

// AsCustomError extracts a CustomError from an error chain.
func AsCustomError(err error) (*CustomError, bool) {
	var ce *CustomError
	if errors.As(err, &ce) {
		return ce, true
	}
	return nil, false
}

// Predefined error codes
const (
	// Client errors (4xx)
	ErrCodeValidation      = "VALIDATION_ERROR"  // 400
	ErrCodeUnauthorized    = "UNAUTHORIZED"      // 401
	ErrCodeTokenExpired    = "TOKEN_EXPIRED"     // 401
	ErrCodeInvalidToken    = "INVALID_TOKEN"     // 403
	ErrCodeForbidden       = "FORBIDDEN"         // 403
	ErrCodeNotFound        = "NOT_FOUND"         // 404
	ErrCodeConflict        = "CONFLICT"          // 409
	ErrCodeTooManyRequests = "TOO_MANY_REQUESTS" // 429

	// Server errors (5xx)
	ErrCodeInternalError = "INTERNAL_ERROR"    // 500
	ErrCodeUpstream      = "UPSTREAM_ERROR"    // 500
	ErrCodeTransaction   = "TRANSACTION_ERROR" // 500
	ErrCodeTimeout       = "GATEWAY_TIMEOUT"   // 504
)

// Predefined errors
var (
	// Client errors
	ErrValidation      = NewError(ErrCodeValidation, "invalid request", http.StatusBadRequest, nil)
	ErrUnauthorized    = NewError(ErrCodeUnauthorized, "unauthorized", http.StatusUnauthorized, nil)
	ErrTokenExpired    = NewError(ErrCodeTokenExpired, "token expired", http.StatusUnauthorized, nil)
	ErrInvalidToken    = NewError(ErrCodeInvalidToken, "invalid token", http.StatusForbidden, nil)
	ErrForbidden       = NewError(ErrCodeForbidden, "forbidden", http.StatusForbidden, nil)
	ErrNotFound        = NewError(ErrCodeNotFound, "resource not found", http.StatusNotFound, nil)
	ErrConflict        = NewError(ErrCodeConflict, "resource conflict", http.StatusConflict, nil)
	ErrTooManyRequests = NewError(ErrCodeTooManyRequests, "too many requests", http.StatusTooManyRequests, nil)

	// Server errors
	ErrInternalError = NewError(ErrCodeInternalError, "internal server error", http.StatusInternalServerError, nil)
	ErrTransaction   = NewError(ErrCodeTransaction, "transaction failed", http.StatusInternalServerError, nil)
	ErrTimeout       = NewError(ErrCodeTimeout, "request timeout", http.StatusGatewayTimeout, nil)

	// Domain errors
	ErrEmailTaken        = NewError(ErrCodeConflict, "user with this email already exists", http.StatusConflict, nil)
	ErrUsernameTaken     = NewError(ErrCodeConflict, "username already taken", http.StatusConflict, nil)
	ErrBadCredentials    = NewError(ErrCodeUnauthorized, "invalid email or password", http.StatusUnauthorized, nil)
	ErrRecipeNotFound    = NewError(ErrCodeNotFound, "recipe not found", http.StatusNotFound, nil)
	ErrUserNotFound      = NewError(ErrCodeNotFound, "user not found", http.StatusNotFound, nil)
	ErrSavedNotFound     = NewError(ErrCodeNotFound, "saved recipe not found", http.StatusNotFound, nil)
	ErrSourceUnavailable = NewError(ErrCodeUpstream, "external recipe source unavailable", http.StatusInternalServerError, nil)
)

// ValidationError represents a request validation failure with a
// caller-facing message.
type ValidationError struct {
	message string
}

func (e *ValidationError) Error() string {
	return e.message
}

// NewValidationError creates a new validation error.
func NewValidationError(message string) error {
	return &ValidationError{message: message}
}

// IsValidationError checks whether err is a validation error.
func IsValidationError(err error) bool {
	var ve *ValidationError
	return errors.As(err, &ve)
}
