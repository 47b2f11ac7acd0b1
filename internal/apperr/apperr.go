// Package apperr defines the error taxonomy shared by all services. Every
// failure surfaced to a caller carries a stable Kind plus a human-readable
// message, so callers can distinguish permanent validation failures from
// transient storage failures.
package apperr

import (
	"context"
	"errors"
	"fmt"
	"strings"
)

// Kind is the stable machine-readable error classification.
type Kind string

const (
	KindBadRequest   Kind = "BAD_REQUEST"
	KindNotFound     Kind = "NOT_FOUND"
	KindInvalidState Kind = "INVALID_STATE"
	KindUnavailable  Kind = "UNAVAILABLE"
	KindTimeout      Kind = "TIMEOUT"
	KindInternal     Kind = "INTERNAL"
)

// Error is a kinded error. Details carries optional field-level validation
// detail for BadRequest errors.
type Error struct {
	Kind    Kind
	Message string
	Details map[string]string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Message + ": " + e.Err.Error()
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New builds an error with the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// BadRequest builds a validation error with optional field-level details.
func BadRequest(message string, details map[string]string) *Error {
	return &Error{Kind: KindBadRequest, Message: message, Details: details}
}

func BadRequestf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindBadRequest, Message: fmt.Sprintf(format, args...)}
}

func NotFoundf(format string, args ...interface{}) *Error {
	return &Error{Kind: KindNotFound, Message: fmt.Sprintf(format, args...)}
}

func InvalidStatef(format string, args ...interface{}) *Error {
	return &Error{Kind: KindInvalidState, Message: fmt.Sprintf(format, args...)}
}

// Internal wraps an unexpected error.
func Internal(err error) *Error {
	return &Error{Kind: KindInternal, Message: "Internal error", Err: err}
}

// KindOf extracts the kind from err, defaulting to Internal.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return KindTimeout
	}
	return KindInternal
}

// IsTransient reports whether err is a transient storage failure worth
// retrying (exhausted pool, timeout, refused connection). Validation and
// state errors are never transient.
func IsTransient(err error) bool {
	if err == nil {
		return false
	}
	switch KindOf(err) {
	case KindUnavailable, KindTimeout:
		return true
	case KindBadRequest, KindNotFound, KindInvalidState:
		return false
	}
	return looksTransient(err)
}

// FromStorage classifies a storage-layer error: context deadlines map to
// Timeout, connectivity failures to Unavailable, anything else to Internal.
// Kinded errors pass through untouched.
func FromStorage(err error) error {
	if err == nil {
		return nil
	}
	var e *Error
	if errors.As(err, &e) {
		return err
	}
	if errors.Is(err, context.DeadlineExceeded) {
		return &Error{Kind: KindTimeout, Message: "Storage operation timed out", Err: err}
	}
	if looksTransient(err) {
		return &Error{Kind: KindUnavailable, Message: "Storage temporarily unavailable", Err: err}
	}
	return Internal(err)
}

func looksTransient(err error) bool {
	msg := strings.ToLower(err.Error())
	for _, s := range []string{
		"connection refused",
		"connection reset",
		"too many connections",
		"too many clients",
		"i/o timeout",
		"broken pipe",
		"pool exhausted",
	} {
		if strings.Contains(msg, s) {
			return true
		}
	}
	return false
}
