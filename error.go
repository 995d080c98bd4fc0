package docmirror

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	ECONFLICT    = "conflict"
	EINTERNAL    = "internal"
	EINVALID     = "invalid"
	ENOTFOUND    = "not_found"
	EFETCH       = "fetch"
	ENOCONTENT   = "no_content"
	EUNSUPPORTED = "unsupported"
)

// Error represents an application-specific error.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable error message.
	Message string
}

// Error implements the error interface. Not used by the application otherwise.
func (e *Error) Error() string {
	return fmt.Sprintf("docmirror error: code=%s message=%s", e.Code, e.Message)
}

// Errorf is a helper function to return an Error with a given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
func ErrorCode(err error) string {
	var e *Error
	var tagErr *UnrecognizedTagError
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Code
	} else if errors.As(err, &tagErr) {
		return EUNSUPPORTED
	}
	return EINTERNAL
}

// ErrorMessage unwraps an application error and returns its message.
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	var tagErr *UnrecognizedTagError
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	} else if errors.As(err, &tagErr) {
		return tagErr.Error()
	}
	return "Internal error."
}

// UnrecognizedTagError is returned by a Converter that meets an element it
// has no rendering rule for. Conversion of the page stops at that element.
type UnrecognizedTagError struct {
	Tag string
}

func (e *UnrecognizedTagError) Error() string {
	return fmt.Sprintf("unrecognized tag <%s>", e.Tag)
}
