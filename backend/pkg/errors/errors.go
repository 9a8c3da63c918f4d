package errors

import (
	stderrors "errors"
	"fmt"
	"time"
)

// ErrorType represents the category of error
type ErrorType string

const (
	// ErrorTypeIdentity represents registration errors
	ErrorTypeIdentity ErrorType = "identity"
	// ErrorTypeAuth represents credential and session errors
	ErrorTypeAuth ErrorType = "auth"
	// ErrorTypeValidation represents rejected input
	ErrorTypeValidation ErrorType = "validation"
	// ErrorTypeStore represents graph database errors
	ErrorTypeStore ErrorType = "store"
	// ErrorTypeConfig represents configuration errors
	ErrorTypeConfig ErrorType = "config"
)

// BaseError is the base error type with common fields
type BaseError struct {
	Type      ErrorType
	Message   string
	Timestamp time.Time
	Err       error // Wrapped error
}

// Error implements the error interface
func (e *BaseError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap returns the wrapped error for error unwrapping
func (e *BaseError) Unwrap() error {
	return e.Err
}

// Kind returns the error category
func (e *BaseError) Kind() ErrorType {
	return e.Type
}

// NewBaseError creates a new base error
func NewBaseError(errType ErrorType, message string, err error) *BaseError {
	return &BaseError{
		Type:      errType,
		Message:   message,
		Timestamp: time.Now(),
		Err:       err,
	}
}

// Identity Errors

// ErrDuplicateEmail is returned when registering an email that is already on file.
// The message literal is what clients match on.
var ErrDuplicateEmail = NewBaseError(ErrorTypeIdentity, "EmailExists", nil)

// Auth Errors

// ErrInvalidCredentials is the failure reason reported when authentication finds
// no match. Unknown email and wrong password report the same reason.
var ErrInvalidCredentials = NewBaseError(ErrorTypeAuth, "CredentialsSignin", nil)

// ErrSessionInvalid is returned when a session token is missing, expired or forged
var ErrSessionInvalid = NewBaseError(ErrorTypeAuth, "session is not valid", nil)

// Validation Errors

var (
	ErrEmailRequired    = NewBaseError(ErrorTypeValidation, "email is required", nil)
	ErrPasswordRequired = NewBaseError(ErrorTypeValidation, "password is required", nil)
	ErrContentRequired  = NewBaseError(ErrorTypeValidation, "content must not be empty", nil)
)

// Store Errors

// StoreError is returned when communicating with or querying the graph store fails
type StoreError struct {
	*BaseError
	Op string
}

// NewStoreError wraps a driver error with an operation-specific message
func NewStoreError(op string, err error) *StoreError {
	return &StoreError{
		BaseError: NewBaseError(ErrorTypeStore, op, err),
		Op:        op,
	}
}

// Config Errors

// ErrConfigMissingRequired is returned when a required config value is missing
type ErrConfigMissingRequired struct {
	*BaseError
	Field string
}

func NewConfigMissingRequired(field string) *ErrConfigMissingRequired {
	return &ErrConfigMissingRequired{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("missing required config: %s", field), nil),
		Field:     field,
	}
}

// ErrConfigValidationFailed is returned when a config value cannot be parsed
type ErrConfigValidationFailed struct {
	*BaseError
	Field  string
	Reason string
}

func NewConfigValidationFailed(field, reason string) *ErrConfigValidationFailed {
	return &ErrConfigValidationFailed{
		BaseError: NewBaseError(ErrorTypeConfig, fmt.Sprintf("config validation failed: %s - %s", field, reason), nil),
		Field:     field,
		Reason:    reason,
	}
}

// Helper functions

type kinded interface {
	Kind() ErrorType
}

// IsErrorType checks if an error, or any error it wraps, is of a specific type
func IsErrorType(err error, errType ErrorType) bool {
	for err != nil {
		if k, ok := err.(kinded); ok && k.Kind() == errType {
			return true
		}
		err = stderrors.Unwrap(err)
	}
	return false
}

// IsStoreError reports whether err is, or wraps, a StoreError
func IsStoreError(err error) bool {
	var storeErr *StoreError
	return stderrors.As(err, &storeErr)
}
