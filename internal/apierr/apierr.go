package apierr

import (
	"errors"
	"fmt"
	"net/http"
)

// Error codes mirror the callable-function error taxonomy the mobile client
// already understands.
const (
	CodeUnauthenticated  = "unauthenticated"
	CodeInvalidArgument  = "invalid-argument"
	CodeNotFound         = "not-found"
	CodePermissionDenied = "permission-denied"
	CodeInternal         = "internal"
)

type Error struct {
	Status int
	Code   string
	Err    error
}

func (e *Error) Error() string {
	if e == nil {
		return ""
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	if e.Code != "" {
		return e.Code
	}
	if e.Status != 0 {
		return fmt.Sprintf("api error (%d)", e.Status)
	}
	return "api error"
}

func (e *Error) Unwrap() error { return e.Err }

func New(status int, code string, err error) *Error {
	return &Error{Status: status, Code: code, Err: err}
}

func Unauthenticated(format string, args ...interface{}) *Error {
	return New(http.StatusUnauthorized, CodeUnauthenticated, fmt.Errorf(format, args...))
}

func InvalidArgument(format string, args ...interface{}) *Error {
	return New(http.StatusBadRequest, CodeInvalidArgument, fmt.Errorf(format, args...))
}

func NotFound(format string, args ...interface{}) *Error {
	return New(http.StatusNotFound, CodeNotFound, fmt.Errorf(format, args...))
}

func PermissionDenied(format string, args ...interface{}) *Error {
	return New(http.StatusForbidden, CodePermissionDenied, fmt.Errorf(format, args...))
}

func Internal(err error, context string) *Error {
	return New(http.StatusInternalServerError, CodeInternal, fmt.Errorf("%s: %w", context, err))
}

// From extracts an *Error from an error chain. The second return is false when
// the chain carries no tagged error, in which case callers should treat it as
// internal.
func From(err error) (*Error, bool) {
	var ae *Error
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
