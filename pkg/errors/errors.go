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
	ErrInterrupted   ErrorCode = "INTERRUPTED"
	ErrFileAccess    ErrorCode = "FILE_ACCESS"
	ErrConfigLoad    ErrorCode = "CONFIG_LOAD"
	ErrConfigInvalid ErrorCode = "CONFIG_INVALID"

	// Argument errors
	ErrMissingArgument ErrorCode = "MISSING_ARGUMENT"
	ErrSourceNotFound  ErrorCode = "SOURCE_NOT_FOUND"
	ErrDestInvalid     ErrorCode = "DEST_INVALID"
	ErrInvalidFilter   ErrorCode = "INVALID_FILTER"

	// Validation errors (sequence tokens and overrides)
	ErrInvalidToken   ErrorCode = "INVALID_TOKEN"
	ErrSeasonMismatch ErrorCode = "SEASON_MISMATCH"
	ErrEmptyRange     ErrorCode = "EMPTY_RANGE"
	ErrSeasonLocked   ErrorCode = "SEASON_LOCKED"
	ErrBeyondRange    ErrorCode = "BEYOND_RANGE"

	// State errors
	ErrNoPriorRun ErrorCode = "NO_PRIOR_RUN"

	// Link errors (fatal for one item only)
	ErrLinkFailed  ErrorCode = "LINK_FAILED"
	ErrCrossDevice ErrorCode = "CROSS_DEVICE"
	ErrDirCreate   ErrorCode = "DIR_CREATE"
	ErrRemove      ErrorCode = "REMOVE"
)

// Exit statuses reported by the medialink binary
const (
	ExitOK              = 0
	ExitFailure         = 1
	ExitMissingArgument = 2
	ExitSourceNotFound  = 3
	ExitDestInvalid     = 4
	ExitInvalidSequence = 5
	ExitNoPriorRun      = 6
	ExitInterrupted     = 130
)

// MedialinkError represents a structured error with code and details
type MedialinkError struct {
	Code    ErrorCode
	Message string
	Details map[string]interface{}
	Wrapped error
}

// Error implements the error interface
func (e *MedialinkError) Error() string {
	if e.Wrapped != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Wrapped)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap implements the errors.Unwrap interface
func (e *MedialinkError) Unwrap() error {
	return e.Wrapped
}

// Is implements errors.Is interface
func (e *MedialinkError) Is(target error) bool {
	var targetErr *MedialinkError
	if errors.As(target, &targetErr) {
		return e.Code == targetErr.Code
	}
	return false
}

// New creates a new MedialinkError with the given code and message
func New(code ErrorCode, message string) *MedialinkError {
	return &MedialinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
	}
}

// Newf creates a new MedialinkError with a formatted message
func Newf(code ErrorCode, format string, args ...interface{}) *MedialinkError {
	return &MedialinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
	}
}

// Wrap wraps an existing error with a MedialinkError
func Wrap(err error, code ErrorCode, message string) *MedialinkError {
	if err == nil {
		return nil
	}
	return &MedialinkError{
		Code:    code,
		Message: message,
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// Wrapf wraps an existing error with a formatted message
func Wrapf(err error, code ErrorCode, format string, args ...interface{}) *MedialinkError {
	if err == nil {
		return nil
	}
	return &MedialinkError{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
		Details: make(map[string]interface{}),
		Wrapped: err,
	}
}

// WithDetail adds a detail to the error
func (e *MedialinkError) WithDetail(key string, value interface{}) *MedialinkError {
	if e.Details == nil {
		e.Details = make(map[string]interface{})
	}
	e.Details[key] = value
	return e
}

// IsErrorCode checks if an error has a specific error code
func IsErrorCode(err error, code ErrorCode) bool {
	var mlErr *MedialinkError
	if errors.As(err, &mlErr) {
		return mlErr.Code == code
	}
	return false
}

// GetErrorCode returns the error code from an error, or ErrUnknown if not a MedialinkError
func GetErrorCode(err error) ErrorCode {
	var mlErr *MedialinkError
	if errors.As(err, &mlErr) {
		return mlErr.Code
	}
	return ErrUnknown
}

// GetErrorDetails returns the details from an error, or nil if not a MedialinkError
func GetErrorDetails(err error) map[string]interface{} {
	var mlErr *MedialinkError
	if errors.As(err, &mlErr) {
		return mlErr.Details
	}
	return nil
}

// IsValidation reports whether err is a sequence validation error. These
// always surface before any filesystem mutation.
func IsValidation(err error) bool {
	switch GetErrorCode(err) {
	case ErrInvalidToken, ErrSeasonMismatch, ErrEmptyRange, ErrSeasonLocked, ErrBeyondRange:
		return true
	}
	return false
}

// IsLinkError reports whether err is a per-item creation failure.
func IsLinkError(err error) bool {
	switch GetErrorCode(err) {
	case ErrLinkFailed, ErrCrossDevice, ErrDirCreate:
		return true
	}
	return false
}

// ExitCode maps an error returned by a command to the process exit status.
func ExitCode(err error) int {
	if err == nil {
		return ExitOK
	}
	if IsValidation(err) {
		return ExitInvalidSequence
	}
	switch GetErrorCode(err) {
	case ErrMissingArgument:
		return ExitMissingArgument
	case ErrSourceNotFound:
		return ExitSourceNotFound
	case ErrDestInvalid:
		return ExitDestInvalid
	case ErrNoPriorRun:
		return ExitNoPriorRun
	case ErrInterrupted:
		return ExitInterrupted
	}
	return ExitFailure
}
