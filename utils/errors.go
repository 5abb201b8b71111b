package utils

import (
	"fmt"
	"net/http"
)

// AppError represents an application error
type AppError struct {
	Code    int    `json:"code"`
	Message string `json:"message"`
	Err     error  `json:"-"`
}

// Error implements the error interface
func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

// Unwrap implements the unwrap interface
func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates a new AppError
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{
		Code:    code,
		Message: message,
		Err:     err,
	}
}

// ValidationError creates a 400 error for missing or malformed input
func ValidationError(message string, err error) *AppError {
	return NewAppError(http.StatusBadRequest, message, err)
}

// PaymentProviderError creates a 502 error for a gateway rejection or timeout.
// The provider's reason, when present, belongs in message so the caller can
// see why checkout failed; unlike internal errors it is surfaced verbatim.
func PaymentProviderError(message string, err error) *AppError {
	return NewAppError(http.StatusBadGateway, message, err)
}

// PersistenceError creates a 500 error for a failed data-store operation
func PersistenceError(message string, err error) *AppError {
	return NewAppError(http.StatusInternalServerError, message, err)
}

// NotFoundError creates a 404 Not Found error
func NotFoundError(message string) *AppError {
	return NewAppError(http.StatusNotFound, message, nil)
}

// IsAppError checks if an error is an AppError
func IsAppError(err error) bool {
	_, ok := err.(*AppError)
	return ok
}

// GetAppError returns the AppError if the error is an AppError
func GetAppError(err error) *AppError {
	if appErr, ok := err.(*AppError); ok {
		return appErr
	}
	return nil
}

// IsNotFoundError checks if an error is a "not found" error
func IsNotFoundError(err error) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code == http.StatusNotFound
	}
	return false
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	if appErr := GetAppError(err); appErr != nil {
		return appErr.Code == http.StatusBadRequest
	}
	return false
}
