package errors

import (
	"errors"
	"testing"
)

func TestErrorType_String(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		expected  string
	}{
		{ErrorTypeValidation, "validation"},
		{ErrorTypeNotFound, "not_found"},
		{ErrorTypeDatabase, "database"},
		{ErrorTypeInvalidInput, "invalid_input"},
		{ErrorTypeTimeout, "timeout"},
		{ErrorTypeNetwork, "network"},
		{ErrorTypeRemote, "remote"},
		{ErrorTypeOperation, "operation"},
		{ErrorType(99), "unknown"},
	}

	for _, tt := range tests {
		if got := tt.errorType.String(); got != tt.expected {
			t.Errorf("ErrorType(%d).String() = %v, want %v", tt.errorType, got, tt.expected)
		}
	}
}

func TestAppError_Error(t *testing.T) {
	plain := &AppError{Type: ErrorTypeOperation, Message: "Failed to fetch tasks"}
	if got := plain.Error(); got != "operation: Failed to fetch tasks" {
		t.Errorf("Error() = %v", got)
	}

	caused := &AppError{Type: ErrorTypeOperation, Message: "Failed to fetch tasks", Cause: errors.New("EOF")}
	if got := caused.Error(); got != "operation: Failed to fetch tasks (caused by: EOF)" {
		t.Errorf("Error() = %v", got)
	}
}

func TestAppError_Is(t *testing.T) {
	err := NewUpdateFailedError(errors.New("503"))

	if !err.Is(ErrUpdateFailed) {
		t.Errorf("Is() should match same type and code")
	}
	if err.Is(ErrFetchFailed) {
		t.Errorf("Is() should not match a different code")
	}
	if err.Is(errors.New("other")) {
		t.Errorf("Is() should not match a non-AppError")
	}
}

func TestAppError_WithContext(t *testing.T) {
	err := &AppError{Type: ErrorTypeRemote}
	err.WithContext("task_id", "abc").WithContext("attempt", 1)

	if v, ok := err.GetContext("task_id"); !ok || v != "abc" {
		t.Errorf("GetContext(task_id) = %v, %v", v, ok)
	}
	if _, ok := err.GetContext("missing"); ok {
		t.Errorf("GetContext(missing) should report absence")
	}
}

func TestErrorType_HTTPStatus(t *testing.T) {
	tests := []struct {
		errorType ErrorType
		expected  int
	}{
		{ErrorTypeValidation, 400},
		{ErrorTypeInvalidInput, 400},
		{ErrorTypeNotFound, 404},
		{ErrorTypeTimeout, 504},
		{ErrorTypeDatabase, 500},
		{ErrorTypeOperation, 500},
	}

	for _, tt := range tests {
		if got := tt.errorType.HTTPStatus(); got != tt.expected {
			t.Errorf("%s.HTTPStatus() = %d, want %d", tt.errorType, got, tt.expected)
		}
	}
}
