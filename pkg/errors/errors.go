package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown       ErrorCode = "UNKNOWN"
	ErrInternal      ErrorCode = "INTERNAL"
	ErrInvalidInput  ErrorCode = "INVALID_INPUT"
	ErrNotFound      ErrorCode = "NOT_FOUND"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Value bag errors
	ErrValuesLoad  ErrorCode = "VALUES_LOAD"
	ErrValuesParse ErrorCode = "VALUES_PARSE"

	// Placeholder table errors
	ErrAliasCollision ErrorCode = "ALIAS_COLLISION"

	// Path resolution errors
	ErrNoRoot          ErrorCode = "NO_ROOT"
	ErrPathTraversal   ErrorCode = "PATH_TRAVERSAL"
	ErrFileNotFound    ErrorCode = "FILE_NOT_FOUND"
	ErrPermission      ErrorCode = "PERMISSION"
	ErrUnsupportedType ErrorCode = "UNSUPPORTED_TYPE"
	ErrFileAccess      ErrorCode = "FILE_ACCESS"

	// Output errors
	ErrFileWrite ErrorCode = "FILE_WRITE"
	ErrDirCreate ErrorCode = "DIR_CREATE"
)

// PromptfillError represents a structured error with code and details
type PromptfillError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PromptfillError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *PromptfillError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *PromptfillError) Is(target error) bool {
	var targetErr *PromptfillError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PromptfillError with the given code and message
func New(code ErrorCode, message string) *PromptfillError {
	return &PromptfillError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PromptfillError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PromptfillError {
	return &PromptfillError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PromptfillError
func Wrap(err error, code ErrorCode, message string) *PromptfillError {
	if err == nil {
		return nil
	}
	return &PromptfillError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PromptfillError {
	if err == nil {
		return nil
	}
	return &PromptfillError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *PromptfillError) WithDetail(key string, value interface{}) *PromptfillError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *PromptfillError) WithDetails(details map[string]interface{}) *PromptfillError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	for k, v := range details {
		e.Details[k] = v
	}
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var pfErr *PromptfillError
	if errors.As(err, &pfErr) {
		return pfErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PromptfillError
func GetErrorCode(err error) ErrorCode {
	var pfErr *PromptfillError
	if errors.As(err, &pfErr) {
		return pfErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a PromptfillError
func GetErrorDetails(err error) map[string]interface{} {
	var pfErr *PromptfillError
	if errors.As(err, &pfErr) {
		return pfErr.Details
	}
	return nil
}
