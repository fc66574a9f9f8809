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
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"
	ErrConfigValid ErrorCode = "CONFIG_INVALID"

	// Organizer errors
	ErrNotADirectory     ErrorCode = "NOT_A_DIRECTORY"
	ErrDirRead           ErrorCode = "DIR_READ"
	ErrDirCreate         ErrorCode = "DIR_CREATE"
	ErrFileStat          ErrorCode = "FILE_STAT"
	ErrFileMove          ErrorCode = "FILE_MOVE"
	ErrDestinationExists ErrorCode = "DESTINATION_EXISTS"
)

// DirsortError represents a structured error with code and details
type DirsortError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *DirsortError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *DirsortError) Unwrap() error {
	return e.Wrapped
}

// Is reports whether target is a DirsortError carrying the same code
func (e *DirsortError) Is(target error) bool {
	var targetErr *DirsortError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new DirsortError with the given code and message
func New(code ErrorCode, message string) *DirsortError {
	return &DirsortError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new DirsortError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *DirsortError {
	return &DirsortError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a DirsortError
func Wrap(err error, code ErrorCode, message string) *DirsortError {
	if err == nil {
		return nil
	}
	return &DirsortError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *DirsortError {
	if err == nil {
		return nil
	}
	return &DirsortError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *DirsortError) WithDetail(key string, value interface{}) *DirsortError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var dsErr *DirsortError
	if errors.As(err, &dsErr) {
		return dsErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a DirsortError
func GetErrorCode(err error) ErrorCode {
	var dsErr *DirsortError
	if errors.As(err, &dsErr) {
		return dsErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a DirsortError
func GetErrorDetails(err error) map[string]interface{} {
	var dsErr *DirsortError
	if errors.As(err, &dsErr) {
		return dsErr.Details
	}
	return nil
}
