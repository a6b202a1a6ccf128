// Package apperr defines the error kinds reported by the wallet core.
//
// Business-rule rejections (validation, not found, conflict, forbidden,
// invalid state, duplicate vote) are never retried. Infrastructure failures
// are reported as Unavailable so callers never confuse them with bad input.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies an error.
type Kind string

const (
	KindValidation    Kind = "validation"
	KindNotFound      Kind = "not_found"
	KindConflict      Kind = "conflict"
	KindForbidden     Kind = "forbidden"
	KindInvalidState  Kind = "invalid_state"
	KindDuplicateVote Kind = "duplicate_vote"
	KindUnavailable   Kind = "unavailable"
)

// Error is a classified error with a human readable message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Validation reports malformed or out-of-range input.
func Validation(format string, args ...any) *Error {
	return newf(KindValidation, format, args...)
}

// NotFound reports an unknown group, transaction or join code.
func NotFound(format string, args ...any) *Error {
	return newf(KindNotFound, format, args...)
}

// Conflict reports a uniqueness violation (group code, member phone).
func Conflict(format string, args ...any) *Error {
	return newf(KindConflict, format, args...)
}

// Forbidden reports a caller that lacks the identity required for the action.
func Forbidden(format string, args ...any) *Error {
	return newf(KindForbidden, format, args...)
}

// InvalidState reports an operation that is not legal for the current status.
func InvalidState(format string, args ...any) *Error {
	return newf(KindInvalidState, format, args...)
}

// DuplicateVote reports a member repeating the vote they already cast.
func DuplicateVote(format string, args ...any) *Error {
	return newf(KindDuplicateVote, format, args...)
}

// Unavailable wraps an infrastructure failure.
func Unavailable(err error, format string, args ...any) *Error {
	e := newf(KindUnavailable, format, args...)
	e.Err = err
	return e
}

// KindOf returns the kind of err, or "" if err carries no classification.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return ""
}

// Is reports whether err is classified as kind.
func Is(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// MessageOf returns the message of a classified error, or err.Error() otherwise.
func MessageOf(err error) string {
	var e *Error
	if errors.As(err, &e) {
		return e.Message
	}
	return err.Error()
}
