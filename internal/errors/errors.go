package errors

import (
	"errors"
	"fmt"
)

// Operation error codes. There is one per kind of backend call; the message
// is what the user sees in the error banner.
const (
	CodeFetchFailed  = "FETCH_FAILED"
	CodeCreateFailed = "CREATE_FAILED"
	CodeUpdateFailed = "UPDATE_FAILED"
	CodeDeleteFailed = "DELETE_FAILED"
)

// Sentinels for errors.Is comparisons against operation failures.
var (
	ErrFetchFailed  = &AppError{Type: ErrorTypeOperation, Code: CodeFetchFailed}
	ErrCreateFailed = &AppError{Type: ErrorTypeOperation, Code: CodeCreateFailed}
	ErrUpdateFailed = &AppError{Type: ErrorTypeOperation, Code: CodeUpdateFailed}
	ErrDeleteFailed = &AppError{Type: ErrorTypeOperation, Code: CodeDeleteFailed}
)

// NewValidationError creates a new validation error
func NewValidationError(message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeValidation,
		Message: message,
		Code:    "VALIDATION_FAILED",
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewNotFoundError creates a new not found error
func NewNotFoundError(resource string, identifier string) *AppError {
	return &AppError{
		Type:    ErrorTypeNotFound,
		Message: fmt.Sprintf("%s not found: %s", resource, identifier),
		Code:    "NOT_FOUND",
		Context: map[string]interface{}{
			"resource":   resource,
			"identifier": identifier,
		},
	}
}

// NewDatabaseError creates a new database error
func NewDatabaseError(operation string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeDatabase,
		Message: fmt.Sprintf("database operation failed: %s", operation),
		Code:    "DATABASE_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"operation": operation,
		},
	}
}

// NewInvalidInputError creates a new invalid input error
func NewInvalidInputError(field string, value interface{}, reason string) *AppError {
	return &AppError{
		Type:    ErrorTypeInvalidInput,
		Message: fmt.Sprintf("invalid input for %s: %s", field, reason),
		Code:    "INVALID_INPUT",
		Context: map[string]interface{}{
			"field":  field,
			"value":  value,
			"reason": reason,
		},
	}
}

// NewTimeoutError creates a new timeout error
func NewTimeoutError(operation string, timeout interface{}) *AppError {
	return &AppError{
		Type:    ErrorTypeTimeout,
		Message: fmt.Sprintf("operation timed out: %s", operation),
		Code:    "TIMEOUT",
		Context: map[string]interface{}{
			"operation": operation,
			"timeout":   timeout,
		},
	}
}

// NewNetworkError creates an error for a request that never produced a response
func NewNetworkError(method string, url string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeNetwork,
		Message: fmt.Sprintf("request failed: %s %s", method, url),
		Code:    "NETWORK_ERROR",
		Cause:   cause,
		Context: map[string]interface{}{
			"method": method,
			"url":    url,
		},
	}
}

// NewRemoteError creates an error for a non-2xx backend response
func NewRemoteError(method string, url string, status int) *AppError {
	return &AppError{
		Type:    ErrorTypeRemote,
		Message: fmt.Sprintf("unexpected response status %d: %s %s", status, method, url),
		Code:    "REMOTE_ERROR",
		Context: map[string]interface{}{
			"method": method,
			"url":    url,
			"status": status,
		},
	}
}

func newOperationError(code string, message string, cause error) *AppError {
	return &AppError{
		Type:    ErrorTypeOperation,
		Message: message,
		Code:    code,
		Cause:   cause,
		Context: make(map[string]interface{}),
	}
}

// NewFetchFailedError reports a failed initial load of the task collection
func NewFetchFailedError(cause error) *AppError {
	return newOperationError(CodeFetchFailed, "Failed to fetch tasks", cause)
}

// NewCreateFailedError reports a failed task creation
func NewCreateFailedError(cause error) *AppError {
	return newOperationError(CodeCreateFailed, "Failed to create task", cause)
}

// NewUpdateFailedError reports a failed task update or toggle
func NewUpdateFailedError(cause error) *AppError {
	return newOperationError(CodeUpdateFailed, "Failed to update task", cause)
}

// NewDeleteFailedError reports a failed task deletion
func NewDeleteFailedError(cause error) *AppError {
	return newOperationError(CodeDeleteFailed, "Failed to delete task", cause)
}

// WrapError wraps an existing error with additional context
func WrapError(err error, errorType ErrorType, message string) *AppError {
	return &AppError{
		Type:    errorType,
		Message: message,
		Code:    errorType.String(),
		Cause:   err,
		Context: make(map[string]interface{}),
	}
}

// IsAppError checks if the error is an AppError
func IsAppError(err error) bool {
	var appErr *AppError
	return errors.As(err, &appErr)
}

// AsAppError converts an error to an AppError if possible
func AsAppError(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsErrorType checks if the error is of the specified type
func IsErrorType(err error, errorType ErrorType) bool {
	if appErr, ok := AsAppError(err); ok {
		return appErr.IsType(errorType)
	}
	return false
}

// GetUserMessage returns a user-friendly error message
func GetUserMessage(err error) string {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation:
			return appErr.Message
		case ErrorTypeNotFound:
			return appErr.Message
		case ErrorTypeInvalidInput:
			return appErr.Message
		case ErrorTypeOperation:
			return appErr.Message
		case ErrorTypeDatabase:
			return "A database error occurred. Please try again."
		case ErrorTypeTimeout:
			return "The operation timed out. Please try again."
		case ErrorTypeNetwork, ErrorTypeRemote:
			return "The task server could not be reached. Please try again."
		default:
			return "An unexpected error occurred. Please try again."
		}
	}
	return err.Error()
}

// GetErrorCode returns the error code for the error
func GetErrorCode(err error) string {
	if appErr, ok := AsAppError(err); ok {
		return appErr.Code
	}
	return "UNKNOWN_ERROR"
}

// ShouldLogError determines if an error should be logged based on its type
func ShouldLogError(err error) bool {
	if appErr, ok := AsAppError(err); ok {
		switch appErr.Type {
		case ErrorTypeValidation, ErrorTypeNotFound, ErrorTypeInvalidInput:
			return false // These are user errors, not system errors
		default:
			return true
		}
	}
	return true // Unknown errors should be logged
}
