package services

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/supplykz/supplier-console/client"
	"github.com/supplykz/supplier-console/utils"
)

// ErrorType represents the type/category of error
type ErrorType string

const (
	ErrorTypeNotFound     ErrorType = "not_found"
	ErrorTypeValidation   ErrorType = "validation"
	ErrorTypeUnauthorized ErrorType = "unauthorized"
	ErrorTypeForbidden    ErrorType = "forbidden"
	ErrorTypeConflict     ErrorType = "conflict"
	ErrorTypeInternal     ErrorType = "internal"
	ErrorTypeExternal     ErrorType = "external"
	ErrorTypeUnsupported  ErrorType = "unsupported"
)

// DomainError represents a structured error with additional context
type DomainError struct {
	Type    ErrorType
	Message string
	Err     error
	Details map[string]interface{}
}

// Error implements the error interface
func (e *DomainError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s (%v)", e.Type, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Type, e.Message)
}

// Unwrap implements errors.Unwrap
func (e *DomainError) Unwrap() error {
	return e.Err
}

// Is implements errors.Is
func (e *DomainError) Is(target error) bool {
	t, ok := target.(*DomainError)
	if !ok {
		return false
	}
	return e.Type == t.Type
}

// WithDetail adds a detail to the error
func (e *DomainError) WithDetail(key string, value interface{}) *DomainError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// NewDomainError creates a new domain error
func NewDomainError(errType ErrorType, message string, err error) *DomainError {
	return &DomainError{
		Type:    errType,
		Message: message,
		Err:     err,
		Details: make(map[string]interface{}),
	}
}

// Domain error variables

var (
	// Validation Errors
	ErrInvalidInput       = NewDomainError(ErrorTypeValidation, "invalid input", nil)
	ErrResolutionRequired = NewDomainError(ErrorTypeValidation, "resolution text is required", nil)
	ErrEmptyMessage       = NewDomainError(ErrorTypeValidation, "message cannot be empty", nil)
	ErrInvalidTransition  = NewDomainError(ErrorTypeValidation, "status change not allowed", nil)

	// Authorization Errors
	ErrNotAuthenticated = NewDomainError(ErrorTypeUnauthorized, "not signed in", nil)
	ErrSessionExpired   = NewDomainError(ErrorTypeUnauthorized, "Session expired. Please login again.", nil)

	// Permission Errors
	ErrInsufficientPermissions = NewDomainError(ErrorTypeForbidden, "insufficient permissions", nil)
	ErrStaffOnly               = NewDomainError(ErrorTypeForbidden, "This application is for supplier staff only.", nil)

	// Unsupported operations
	ErrUnsupported = NewDomainError(ErrorTypeUnsupported, "operation not supported by the backend", nil)
)

// Error type checking helper functions

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	return ClassifyError(err) == ErrorTypeNotFound
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return ClassifyError(err) == ErrorTypeValidation
}

// IsUnauthorizedError checks if an error is an unauthorized error
func IsUnauthorizedError(err error) bool {
	return ClassifyError(err) == ErrorTypeUnauthorized
}

// IsForbiddenError checks if an error is a forbidden error
func IsForbiddenError(err error) bool {
	return ClassifyError(err) == ErrorTypeForbidden
}

// IsConflictError checks if an error is a conflict error
func IsConflictError(err error) bool {
	return ClassifyError(err) == ErrorTypeConflict
}

// GetErrorType returns the ErrorType of a domain error, or empty string if not a domain error
func GetErrorType(err error) ErrorType {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Type
	}
	return ""
}

// GetErrorDetails returns the details map of a domain error, or nil if not a domain error
func GetErrorDetails(err error) map[string]interface{} {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Details
	}
	return nil
}

// ClassifyError maps domain, validation and backend errors onto an ErrorType.
// Unrecognised errors are internal.
func ClassifyError(err error) ErrorType {
	if err == nil {
		return ""
	}
	if t := GetErrorType(err); t != "" {
		return t
	}
	if utils.IsValidationError(err) {
		return ErrorTypeValidation
	}
	if errors.Is(err, client.ErrSessionExpired) {
		return ErrorTypeUnauthorized
	}

	switch status := client.StatusCode(err); {
	case status == http.StatusUnauthorized:
		return ErrorTypeUnauthorized
	case status == http.StatusForbidden:
		return ErrorTypeForbidden
	case status == http.StatusNotFound:
		return ErrorTypeNotFound
	case status == http.StatusConflict:
		return ErrorTypeConflict
	case status == http.StatusBadRequest || status == http.StatusUnprocessableEntity:
		return ErrorTypeValidation
	case status != 0:
		return ErrorTypeExternal
	}
	return ErrorTypeInternal
}

// UserMessage returns the text shown to the user for err
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	if errors.Is(err, client.ErrSessionExpired) {
		return ErrSessionExpired.Message
	}
	var validationErr *utils.ValidationError
	if errors.As(err, &validationErr) {
		return validationErr.Error()
	}
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	var apiErr *client.APIError
	if errors.As(err, &apiErr) {
		return apiErr.Message()
	}
	return err.Error()
}

// WrapError wraps an error with additional context
func WrapError(errType ErrorType, message string, err error) error {
	return NewDomainError(errType, message, err)
}

// WrapInternal wraps an error as an internal error
func WrapInternal(message string, err error) error {
	return NewDomainError(ErrorTypeInternal, message, err)
}
