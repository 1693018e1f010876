// Package errors defines the application-level error taxonomy shared by the
// stores, the REST gateway, and the delivery layer.
package errors

import (
	"net/http"

	"storefront/internal/errors"
)

// AppError defines the interface for application-specific errors
type AppError interface {
	error
	HTTPCode() int     // HTTP status code of the failure, 0 for purely local failures
	ErrorCode() string // Business error code
	Message() string   // User-friendly error message
	Details() string   // Detailed error information (optional)
}

// BaseError is a basic error structure that implements the AppError interface
type BaseError struct {
	httpCode  int
	errorCode string
	message   string
	details   string
}

// NewBaseError creates a new base error
func NewBaseError(httpCode int, errorCode, message, details string) *BaseError {
	return &BaseError{
		httpCode:  httpCode,
		errorCode: errorCode,
		message:   message,
		details:   details,
	}
}

// Error implements the error interface
func (e *BaseError) Error() string {
	return e.message
}

// WrapMessage wraps the error with additional context message
func (e *BaseError) WrapMessage(message string) error {
	return errors.Wrap(e, message)
}

// HTTPCode returns the HTTP status code
func (e *BaseError) HTTPCode() int {
	return e.httpCode
}

// ErrorCode returns the business error code
func (e *BaseError) ErrorCode() string {
	return e.errorCode
}

// Message returns the user-friendly error message
func (e *BaseError) Message() string {
	return e.message
}

// Details returns detailed error information
func (e *BaseError) Details() string {
	return e.details
}

// WithDetails adds detailed error information
func (e *BaseError) WithDetails(details string) *BaseError {
	return &BaseError{
		httpCode:  e.httpCode,
		errorCode: e.errorCode,
		message:   e.message,
		details:   details,
	}
}

// Predefined error types
var (
	// Authentication-related errors
	ErrInvalidCredentials = NewBaseError(
		http.StatusUnauthorized,
		"INVALID_CREDENTIALS",
		"Invalid credentials",
		"",
	)

	ErrUnauthorized = NewBaseError(
		http.StatusUnauthorized,
		"UNAUTHORIZED",
		"Session Expired kindly login",
		"",
	)

	ErrEmailExists = NewBaseError(
		http.StatusConflict,
		"EMAIL_EXISTS",
		"This email exists already",
		"",
	)

	// Request/response errors
	ErrNotFound = NewBaseError(
		http.StatusNotFound,
		"NOT_FOUND",
		"Resource not found",
		"",
	)

	ErrValidationFailed = NewBaseError(
		http.StatusBadRequest,
		"VALIDATION_FAILED",
		"Please fill in all required fields",
		"",
	)

	ErrServer = NewBaseError(
		http.StatusInternalServerError,
		"SERVER_ERROR",
		"Internal server error. Please try again later.",
		"",
	)

	// Local precondition failures, detected before any request is issued.
	ErrEmptyCart = NewBaseError(
		0,
		"EMPTY_CART",
		"Your cart is empty",
		"",
	)

	ErrNotAuthenticated = NewBaseError(
		0,
		"NOT_AUTHENTICATED",
		"Kindly login to continue",
		"",
	)
)

// TransportError represents a network-level failure where no HTTP response
// arrived at all. It implements the AppError interface.
type TransportError struct {
	err error
}

// NewTransportError wraps a transport-level failure
func NewTransportError(err error) AppError {
	return &TransportError{err: err}
}

// Error implements the error interface
func (e *TransportError) Error() string {
	return errors.Wrap(e.err, "request failed").Error()
}

// Unwrap exposes the underlying transport failure for errors.Is checks.
func (e *TransportError) Unwrap() error {
	return e.err
}

// HTTPCode returns 0: no response was received.
func (e *TransportError) HTTPCode() int {
	return 0
}

// ErrorCode returns the business error code
func (e *TransportError) ErrorCode() string {
	return "TRANSPORT_FAILURE"
}

// Message returns the user-friendly error message
func (e *TransportError) Message() string {
	return "Unable to connect to the server. Please check your internet connection."
}

// Details returns detailed error information
func (e *TransportError) Details() string {
	return e.err.Error()
}
