package apperrors

import (
	"errors"
	"fmt"
)

// Error codes shared with the HTTP response envelope.
const (
	CodeNotFound         = "NOT_FOUND"
	CodePermissionDenied = "FORBIDDEN"
	CodeValidation       = "VALIDATION_ERROR"
	CodeConflict         = "CONFLICT"
)

// Error is the caller-visible outcome of a failed operation. Services return
// these; the HTTP layer maps the code to a status. Anything else bubbling up
// is an internal error.
type Error struct {
	Code    string
	Message string
}

func (e *Error) Error() string {
	return e.Message
}

func NotFound(format string, args ...any) *Error {
	return &Error{Code: CodeNotFound, Message: fmt.Sprintf(format, args...)}
}

func PermissionDenied(format string, args ...any) *Error {
	return &Error{Code: CodePermissionDenied, Message: fmt.Sprintf(format, args...)}
}

func Validation(format string, args ...any) *Error {
	return &Error{Code: CodeValidation, Message: fmt.Sprintf(format, args...)}
}

func Conflict(format string, args ...any) *Error {
	return &Error{Code: CodeConflict, Message: fmt.Sprintf(format, args...)}
}

// As unwraps err to an *Error if it is one.
func As(err error) (*Error, bool) {
	var appErr *Error
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

// IsCode reports whether err is an *Error carrying the given code.
func IsCode(err error, code string) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == code
}
