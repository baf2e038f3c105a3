package scraper

import (
	"errors"
	"fmt"
)

// Application error codes.
//
// These are meant to be generic enough for machine handling by callers
// (retry decisions, manifest reporting, exit codes) while the message
// carries the human-readable detail.
const (
	ECONFIG   = "config"    // invalid crawl/export configuration, rejected before any work
	ECONFLICT = "conflict"  // an operation that requires exclusivity is already running
	EEXPORT   = "export"    // a writer failed to persist one export format
	EINTERNAL = "internal"  // unexpected internal error
	EINVALID  = "invalid"   // malformed input (e.g. a URL that cannot be parsed)
	ENETWORK  = "network"   // fetch failure: timeout, refused, DNS, non-2xx status
	ENOTFOUND = "not_found" // entity does not exist
	EPARSE    = "parse"     // page body could not be parsed as HTML
)

// Error represents an application-specific error. Errors can be unwrapped
// to find the deepest Code and Message in a chain.
type Error struct {
	// Machine-readable error code.
	Code string

	// Human-readable message.
	Message string
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("scraper error: code=%s message=%s", e.Code, e.Message)
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

// Errorf is a helper function to return an Error with a given code and
// formatted message.
func Errorf(code string, format string, args ...any) *Error {
	return &Error{
		Code:    code,
		Message: fmt.Sprintf(format, args...),
	}
}
