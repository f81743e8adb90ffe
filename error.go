package capdata

import (
	"errors"
	"fmt"
)

// Application error codes.
const (
	EINVALID   = "invalid"
	EINTERNAL  = "internal"
	ESTRUCTURE = "structure_not_found"
	ESCHEMA    = "schema_mismatch"
	ENOLINKS   = "link_discovery_empty"
	ENUMERIC   = "numeric_parse_failure"
)

// Error represents an application-specific error.
type Error struct {
	Code    string
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("capdata error: code=%s message=%s", e.Code, e.Message)
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

// PageError records where in a run a failure happened.
type PageError struct {
	Team   string
	Season Season
	Kind   PageKind
	URL    string
	Err    error
}

// Error returns the team, season and page kind followed by the underlying
// error.
func (e *PageError) Error() string {
	if e.Kind == "" {
		return fmt.Sprintf("%s %d (%s): %v", e.Team, e.Season, e.URL, e.Err)
	}
	return fmt.Sprintf("%s %d %s (%s): %v", e.Team, e.Season, e.Kind, e.URL, e.Err)
}

// Unwrap returns the underlying error.
func (e *PageError) Unwrap() error {
	return e.Err
}
