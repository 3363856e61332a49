package gigarip

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are propagated to the per-session boundary and mapped to user
// facing messages; transport and library errors are wrapped as EINTERNAL.
const (
	EINVALID     = "invalid"     // source URL or argument is not valid
	ENOTFOUND    = "not_found"   // image or required page tokens absent
	EUNAVAILABLE = "unavailable" // missing prerequisite, fatal to the run
	EINTERNAL    = "internal"    // unexpected failure, e.g. a non-404 fetch error
)

// Error represents an application error with a machine-readable code
// and a human-readable message.
type Error struct {
	// Code is one of the E* constants above.
	Code string

	// Message is a human-readable description of the error.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("gigarip error: code=%s message=%s", e.Code, e.Message)
}

// Errorf returns a new Error with the given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors return EINTERNAL; nil returns the empty string.
func ErrorCode(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors return a generic message; nil returns the
// empty string.
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}
