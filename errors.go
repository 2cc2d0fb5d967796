package earmark

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// ECONFIG and ESELECTOR are surfaced at catalog load wherever possible;
// everything else can occur per extraction call. "A well-formed selector
// that matched nothing" is never an error and has no code.
const (
	ECONFIG      = "config"      // rule catalog failed validation
	EINTERNAL    = "internal"    // broken invariant, a bug
	EINVALID     = "invalid"     // validation failed
	EMALFORMED   = "malformed"   // document could not be parsed at all
	ENORESULTS   = "no_results"  // search yielded zero stubs
	ENOTFOUND    = "not_found"   // entity does not exist
	ESELECTOR    = "selector"    // malformed selector expression
	EUNAVAILABLE = "unavailable" // upstream fetch failed
)

// Error represents an application-specific error. Errors carry a
// machine-readable code and a human-readable message.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable message.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("earmark error: code=%s message=%s", e.Code, e.Message)
}

// ErrorCode unwraps an application error and returns its code.
// Non-application errors always return EINTERNAL.
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
// Non-application errors always return "Internal error.".
func ErrorMessage(err error) string {
	var e *Error
	if err == nil {
		return ""
	} else if errors.As(err, &e) {
		return e.Message
	}
	return "Internal error."
}

// Errorf returns an Error with the given code and formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
