package errors

import (
	"errors"
	"fmt"
	"io/fs"
	"syscall"
)

// ErrorCode represents a unique error code for stable testing
type ErrorCode string

// Error codes for different error categories
const (
	// General errors
	ErrUnknown      ErrorCode = "UNKNOWN"
	ErrInternal     ErrorCode = "INTERNAL"
	ErrInvalidInput ErrorCode = "INVALID_INPUT"

	// Path errors
	ErrPathNotFound  ErrorCode = "PATH_NOT_FOUND"
	ErrNotADirectory ErrorCode = "NOT_A_DIRECTORY"
	ErrAlreadyExists ErrorCode = "ALREADY_EXISTS"
	ErrPermission    ErrorCode = "PERMISSION"
	ErrIO            ErrorCode = "IO"

	// Precondition errors
	ErrNotInitialized ErrorCode = "NOT_INITIALIZED"

	// Store errors
	ErrStoreOpen    ErrorCode = "STORE_OPEN"
	ErrStoreCorrupt ErrorCode = "STORE_CORRUPT"

	// Configuration errors
	ErrConfigLoad ErrorCode = "CONFIG_LOAD"
)

// PunktError represents a structured error with code and details.
// Path is set for path errors and names the offending path.
type PunktError struct {
	Code    ErrorCode
	Path    string
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *PunktError) Error() string {
	msg := e.Message
	if e.Path != "" {
		msg = fmt.Sprintf("%s: %s", msg, e.Path)
	}
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, msg, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, msg)
}

// Unwrap implements the errors.Unwrap interface
func (e *PunktError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *PunktError) Is(target error) bool {
	var targetErr *PunktError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new PunktError with the given code and message
func New(code ErrorCode, message string) *PunktError {
	return &PunktError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new PunktError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *PunktError {
	return &PunktError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a PunktError
func Wrap(err error, code ErrorCode, message string) *PunktError {
	if err == nil {
		return nil
	}
	return &PunktError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *PunktError {
	if err == nil {
		return nil
	}
	return &PunktError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// PathError creates a path error for path. cause may be nil.
func PathError(code ErrorCode, path string, cause error) *PunktError {
	return &PunktError{
		Code:    code,
		Path:    path,
		Message: pathMessages[code],
		Details: make(map[string]interface{}),
		Wrapped: cause,
	}
}

var pathMessages = map[ErrorCode]string{
	ErrNotInitialized: "local tree not initialized",
	ErrInvalidInput:   "invalid path",
	ErrPathNotFound:   "path not found",
	ErrNotADirectory:  "not a directory",
	ErrAlreadyExists:  "path already exists",
	ErrPermission:     "permission denied",
	ErrIO:             "i/o failure",
}

// FromOS classifies a filesystem error into a path error for path.
// A nil err returns nil; an error that already is a PunktError is returned as-is.
func FromOS(path string, err error) error {
	if err == nil {
		return nil
	}
	var punktErr *PunktError
	if errors.As(err, &punktErr) {
		return err
	}
	switch {
	case errors.Is(err, fs.ErrNotExist):
		return PathError(ErrPathNotFound, path, err)
	case errors.Is(err, fs.ErrPermission):
		return PathError(ErrPermission, path, err)
	case errors.Is(err, fs.ErrExist):
		return PathError(ErrAlreadyExists, path, err)
	case errors.Is(err, syscall.ENOTDIR):
		return PathError(ErrNotADirectory, path, err)
	default:
		return PathError(ErrIO, path, err)
	}
}

// WithDetail adds a detail to the error
func (e *PunktError) WithDetail(key string, value interface{}) *PunktError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// WithDetails adds multiple details to the error
func (e *PunktError) WithDetails(details map[string]interface{}) *PunktError {
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
	var punktErr *PunktError
	if errors.As(err, &punktErr) {
		return punktErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a PunktError
func GetErrorCode(err error) ErrorCode {
	var punktErr *PunktError
	if errors.As(err, &punktErr) {
		return punktErr.Code
	}
	return ErrUnknown
}

// GetErrorPath returns the offending path of a path error, or "" if none
func GetErrorPath(err error) string {
	var punktErr *PunktError
	if errors.As(err, &punktErr) {
		return punktErr.Path
	}
	return ""
}

// GetErrorDetails returns the details from an error, or nil if not a PunktError
func GetErrorDetails(err error) map[string]interface{} {
	var punktErr *PunktError
	if errors.As(err, &punktErr) {
		return punktErr.Details
	}
	return nil
}

// Is reports whether any error in err's chain matches target
func Is(err, target error) bool {
	return errors.Is(err, target)
}

// As finds the first error in err's chain that matches target
func As(err error, target interface{}) bool {
	return errors.As(err, target)
}
