package services

import (
	"errors"
	"fmt"
)

// ErrorType represents the type/category of error
type ErrorType string

const (
	ErrorTypeNotFound         ErrorType = "not_found"
	ErrorTypeValidation       ErrorType = "validation"
	ErrorTypeUnsupportedMedia ErrorType = "unsupported_media"
	ErrorTypePayloadTooLarge  ErrorType = "payload_too_large"
	ErrorTypeUnprocessable    ErrorType = "unprocessable"
	ErrorTypeInternal         ErrorType = "internal"
	ErrorTypeExternal         ErrorType = "external"
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

// Domain error variables. Do not attach details to these; wrap them instead.

var (
	// Not Found Errors
	ErrLeadNotFound = NewDomainError(ErrorTypeNotFound, "lead not found", nil)
	ErrNoLeads      = NewDomainError(ErrorTypeNotFound, "No leads to export", nil)
	ErrNoAuditTrail = NewDomainError(ErrorTypeNotFound, "No audit trail to export", nil)

	// Validation Errors
	ErrInvalidInput    = NewDomainError(ErrorTypeValidation, "invalid input", nil)
	ErrInvalidFileName = NewDomainError(ErrorTypeValidation, "File must have a .pdf extension.", nil)
	ErrFileTooSmall    = NewDomainError(ErrorTypeValidation, "File appears to be empty or corrupted.", nil)
	ErrMissingFile     = NewDomainError(ErrorTypeValidation, "multipart field 'file' is required", nil)

	// Media Errors
	ErrUnsupportedMediaType = NewDomainError(ErrorTypeUnsupportedMedia, "Invalid file type. Only PDF allowed.", nil)
	ErrFileTooLarge         = NewDomainError(ErrorTypePayloadTooLarge, "File too large. Max 10MB.", nil)

	// Unprocessable Errors
	ErrNoPages          = NewDomainError(ErrorTypeUnprocessable, "PDF has no readable pages.", nil)
	ErrInsufficientText = NewDomainError(ErrorTypeUnprocessable, "PDF has no extractable text (scanned image?).", nil)

	// Internal Errors
	ErrInternal         = NewDomainError(ErrorTypeInternal, "internal server error", nil)
	ErrDatabaseError    = NewDomainError(ErrorTypeInternal, "database error", nil)
	ErrSnapshotFailed   = NewDomainError(ErrorTypeInternal, "snapshot persistence failed", nil)
	ErrExtractionFailed = NewDomainError(ErrorTypeInternal, "Failed to process PDF", nil)

	// External Provider Errors
	ErrProviderUnavailable = NewDomainError(ErrorTypeExternal, "completion provider unavailable", nil)
	ErrProviderTimeout     = NewDomainError(ErrorTypeExternal, "completion provider timeout", nil)
	ErrProviderError       = NewDomainError(ErrorTypeExternal, "completion provider error", nil)
)

// Error type checking helper functions

// IsNotFoundError checks if an error is a not found error
func IsNotFoundError(err error) bool {
	return GetErrorType(err) == ErrorTypeNotFound
}

// IsValidationError checks if an error is a validation error
func IsValidationError(err error) bool {
	return GetErrorType(err) == ErrorTypeValidation
}

// IsUnsupportedMediaError checks if an error is an unsupported media type error
func IsUnsupportedMediaError(err error) bool {
	return GetErrorType(err) == ErrorTypeUnsupportedMedia
}

// IsPayloadTooLargeError checks if an error is a payload too large error
func IsPayloadTooLargeError(err error) bool {
	return GetErrorType(err) == ErrorTypePayloadTooLarge
}

// IsUnprocessableError checks if an error is an unprocessable content error
func IsUnprocessableError(err error) bool {
	return GetErrorType(err) == ErrorTypeUnprocessable
}

// IsInternalError checks if an error is an internal error
func IsInternalError(err error) bool {
	return GetErrorType(err) == ErrorTypeInternal
}

// IsExternalError checks if an error is an external provider error
func IsExternalError(err error) bool {
	return GetErrorType(err) == ErrorTypeExternal
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

// GetErrorMessage returns the message of the outermost domain error, or err.Error()
func GetErrorMessage(err error) string {
	var domainErr *DomainError
	if errors.As(err, &domainErr) {
		return domainErr.Message
	}
	if err == nil {
		return ""
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

// WrapExternal wraps an error as an external provider error
func WrapExternal(message string, err error) error {
	return NewDomainError(ErrorTypeExternal, message, err)
}
