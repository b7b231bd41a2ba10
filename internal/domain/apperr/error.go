package apperr

import (
	"errors"
)

// Kind classifies a failure so callers can branch without parsing messages.
type Kind string

const (
	KindNotFound      Kind = "NotFound"
	KindInvalidAction Kind = "InvalidAction"
	KindValidation    Kind = "ValidationError"
	KindStorageFault  Kind = "StorageFault"
)

// Error is a domain error carrying a kind and a user-facing message.
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

func (e *Error) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return string(e.Kind)
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind Kind, err error, message string) *Error {
	return &Error{Kind: kind, Err: err, Message: message}
}

func NotFound(err error, message string) *Error {
	return New(KindNotFound, err, message)
}

func Validation(err error, message string) *Error {
	return New(KindValidation, err, message)
}

// KindOf returns the kind of the first *Error in the chain.
// Untagged errors are storage faults.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorageFault
}
