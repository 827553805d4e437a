package errors

import (
	"errors"
	"fmt"
)

// ErrorCode represents a specific error type for study pipeline operations.
type ErrorCode string

const (
	// ErrCodeInputTooShort indicates the source text is too short for the
	// requested generation and must be lengthened by the caller. No fallback.
	ErrCodeInputTooShort ErrorCode = "INPUT_TOO_SHORT"
	// ErrCodeRemoteUnavailable indicates a remote AI call failed
	// (network, timeout, non-2xx or empty response). Recoverable locally.
	ErrCodeRemoteUnavailable ErrorCode = "REMOTE_UNAVAILABLE"
	// ErrCodeInvalidPayload indicates a remote response violated the expected
	// shape and was discarded as a whole.
	ErrCodeInvalidPayload ErrorCode = "INVALID_PAYLOAD"
	// ErrCodePersistenceFailed indicates the key-value store rejected a read
	// or write. The enclosing operation aborts without partial writes.
	ErrCodePersistenceFailed ErrorCode = "PERSISTENCE_FAILED"
	// ErrCodeInvalidArgument indicates invalid input parameters.
	ErrCodeInvalidArgument ErrorCode = "INVALID_ARGUMENT"
)

// StudyError represents a structured error for study pipeline operations.
type StudyError struct {
	Code    ErrorCode
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *StudyError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("[%s] %s: %v", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("[%s] %s", e.Code, e.Message)
}

// Unwrap returns the underlying cause.
func (e *StudyError) Unwrap() error {
	return e.Cause
}

// GetCode returns the error code.
func (e *StudyError) GetCode() ErrorCode {
	return e.Code
}

// Convenience constructors for common error types.

// InputTooShort creates an input-too-short error.
func InputTooShort(msg string) *StudyError {
	return &StudyError{Code: ErrCodeInputTooShort, Message: msg}
}

// RemoteUnavailable creates a remote unavailable error.
func RemoteUnavailable(msg string, cause error) *StudyError {
	return &StudyError{Code: ErrCodeRemoteUnavailable, Message: msg, Cause: cause}
}

// InvalidPayload creates an invalid payload error.
func InvalidPayload(msg string, cause error) *StudyError {
	return &StudyError{Code: ErrCodeInvalidPayload, Message: msg, Cause: cause}
}

// PersistenceFailed creates a persistence failed error.
func PersistenceFailed(msg string, cause error) *StudyError {
	return &StudyError{Code: ErrCodePersistenceFailed, Message: msg, Cause: cause}
}

// InvalidArgument creates an invalid argument error.
func InvalidArgument(msg string) *StudyError {
	return &StudyError{Code: ErrCodeInvalidArgument, Message: msg}
}

// Wrap wraps an existing error with a code and message.
func Wrap(cause error, code ErrorCode, msg string) *StudyError {
	return &StudyError{Code: code, Message: msg, Cause: cause}
}

// IsCode checks if an error carries a specific code anywhere in its chain.
func IsCode(err error, code ErrorCode) bool {
	var studyErr *StudyError
	if errors.As(err, &studyErr) {
		return studyErr.Code == code
	}
	return false
}

// GetCodeFromError extracts the error code from any error.
// Returns the provided default code if the error is not a StudyError.
func GetCodeFromError(err error, defaultCode ErrorCode) ErrorCode {
	var studyErr *StudyError
	if errors.As(err, &studyErr) {
		return studyErr.Code
	}
	return defaultCode
}
