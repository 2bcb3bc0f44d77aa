// Package errors defines the application error taxonomy and the HTTP
// problem-details rendering for it. Fatal errors halt a transformation and
// return no partial output; everything non-fatal travels as warnings on the
// result instead of through this package.
package errors

import (
	"fmt"
)

// ErrorType classifies an application error.
type ErrorType string

const (
	ErrTypeUnreadableInput ErrorType = "UNREADABLE_INPUT"
	ErrTypeMissingColumns  ErrorType = "MISSING_COLUMNS"
	ErrTypeValidation      ErrorType = "VALIDATION"
	ErrTypeStorage         ErrorType = "STORAGE"
	ErrTypeConfig          ErrorType = "CONFIG"
	ErrTypeInternal        ErrorType = "INTERNAL"
)

// AppError is the structured error carried through the service layer.
type AppError struct {
	Type    ErrorType
	Message string
	Cause   error
	Context map[string]interface{}
}

// Error implements the error interface.
func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Type, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Type, e.Message)
}

// Unwrap allows errors.Is and errors.As to reach the cause.
func (e *AppError) Unwrap() error {
	return e.Cause
}

// WithContext attaches a key/value pair to the error for logging.
func (e *AppError) WithContext(key string, value interface{}) *AppError {
	if e.Context == nil {
		e.Context = make(map[string]interface{})
	}
	e.Context[key] = value
	return e
}

// NewAppError creates a new application error.
func NewAppError(errType ErrorType, message string, cause error) *AppError {
	return &AppError{
		Type:    errType,
		Message: message,
		Cause:   cause,
	}
}

// NewUnreadableInputError flags input that is not a well-formed spreadsheet.
func NewUnreadableInputError(message string, cause error) *AppError {
	return NewAppError(ErrTypeUnreadableInput, message, cause)
}

// NewValidationError creates a validation error.
func NewValidationError(message string) *AppError {
	return NewAppError(ErrTypeValidation, message, nil)
}

// NewStorageError creates a filesystem/IO error.
func NewStorageError(message string, cause error) *AppError {
	return NewAppError(ErrTypeStorage, message, cause)
}

// NewConfigError creates a configuration error.
func NewConfigError(message string, cause error) *AppError {
	return NewAppError(ErrTypeConfig, message, cause)
}

// NewInternalError wraps an unexpected fault so it can be reported without
// crashing the host process.
func NewInternalError(message string, cause error) *AppError {
	return NewAppError(ErrTypeInternal, message, cause)
}
