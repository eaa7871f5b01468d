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
	ErrNotFound     ErrorCode = "NOT_FOUND"
	ErrPermission   ErrorCode = "PERMISSION"

	// Configuration errors
	ErrConfigLoad  ErrorCode = "CONFIG_LOAD"
	ErrConfigParse ErrorCode = "CONFIG_PARSE"

	// Container engine errors
	ErrEngineMissing     ErrorCode = "ENGINE_MISSING"
	ErrEngineInstall     ErrorCode = "ENGINE_INSTALL"
	ErrDaemonUnreachable ErrorCode = "DAEMON_UNREACHABLE"
	ErrComposeMissing    ErrorCode = "COMPOSE_MISSING"
	ErrComposeExec       ErrorCode = "COMPOSE_EXEC"

	// Privilege escalation errors
	ErrEscalation      ErrorCode = "ESCALATION"
	ErrGroupActivation ErrorCode = "GROUP_ACTIVATION"

	// Version derivation errors
	ErrMetadataFetch ErrorCode = "METADATA_FETCH"
	ErrVersionParse  ErrorCode = "VERSION_PARSE"
	ErrDownloadFailed ErrorCode = "DOWNLOAD_FAILED"

	// FileSystem errors
	ErrEnvFileRead  ErrorCode = "ENVFILE_READ"
	ErrEnvFileWrite ErrorCode = "ENVFILE_WRITE"
	ErrDirCreate    ErrorCode = "DIR_CREATE"
	ErrOwnership    ErrorCode = "OWNERSHIP"

	// Addon scaffolding errors
	ErrAddonExists  ErrorCode = "ADDON_EXISTS"
	ErrAddonInvalid ErrorCode = "ADDON_INVALID"
)

// OdevError represents a structured error with code and details
type OdevError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *OdevError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *OdevError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *OdevError) Is(target error) bool {
	var targetErr *OdevError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new OdevError with the given code and message
func New(code ErrorCode, message string) *OdevError {
	return &OdevError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new OdevError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *OdevError {
	return &OdevError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a code and message
func Wrap(err error, code ErrorCode, message string) *OdevError {
	return &OdevError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a code and formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *OdevError {
	return &OdevError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail key-value pair to the error
func (e *OdevError) WithDetail(key string, value interface{}) *OdevError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// GetCode extracts the error code from an error, returning ErrUnknown
// for errors that are not OdevErrors
func GetCode(err error) ErrorCode {
	var odevErr *OdevError
	if errors.As(err, &odevErr) {
		return odevErr.Code
	}
	return ErrUnknown
}

// IsCode reports whether err carries the given code
func IsCode(err error, code ErrorCode) bool {
	var odevErr *OdevError
	if errors.As(err, &odevErr) {
		return odevErr.Code == code
	}
	return false
}
