package domain

import (
	"errors"
	"fmt"
)

// Error kinds. Match with errors.Is(err, domain.ErrConflict).
var (
	ErrValidation   = errors.New("invalid input")
	ErrConflict     = errors.New("reservation dates conflict")
	ErrUnauthorized = errors.New("invalid session")
	ErrNotFound     = errors.New("not found")
	ErrBackend      = errors.New("backend failure")
)

// Error carries a kind, a user-facing message and the underlying cause
type Error struct {
	Kind    error
	Field   string
	Message string
	Err     error
}

func (e *Error) Error() string {
	msg := e.Message
	if msg == "" {
		msg = e.Kind.Error()
	}
	if e.Field != "" {
		msg = fmt.Sprintf("%s: %s", e.Field, msg)
	}
	return msg
}

func (e *Error) Is(target error) bool {
	return target == e.Kind
}

func (e *Error) Unwrap() error {
	return e.Err
}

func NewValidationError(field, message string) *Error {
	return &Error{Kind: ErrValidation, Field: field, Message: message}
}

func NewConflictError(message string) *Error {
	return &Error{Kind: ErrConflict, Message: message}
}

func NewUnauthorizedError(err error) *Error {
	return &Error{Kind: ErrUnauthorized, Message: "invalid session", Err: err}
}

func NewNotFoundError(what string) *Error {
	return &Error{Kind: ErrNotFound, Message: fmt.Sprintf("%s not found", what)}
}

// NewBackendError hides the repository failure behind a generic message
func NewBackendError(message string, err error) *Error {
	return &Error{Kind: ErrBackend, Message: message, Err: err}
}

// KindOf returns the kind of err, or ErrBackend for unclassified errors
func KindOf(err error) error {
	var de *Error
	if errors.As(err, &de) {
		return de.Kind
	}
	return ErrBackend
}

// IsExpected reports whether err is caused by the caller rather than the system
func IsExpected(err error) bool {
	switch KindOf(err) {
	case ErrValidation, ErrConflict, ErrUnauthorized, ErrNotFound:
		return true
	}
	return false
}
