// Package common defines shared constants, sentinel errors and the classified
// error type used by the client core. Callers should use errors.Is / errors.As
// (or KindOf) to match these values.
package common

import (
	"errors"
	"fmt"
)

var (
	// Repository-level errors.
	ErrorNotFound = errors.New("not found")

	// Store lifecycle errors.
	ErrStoreNotInitialized = errors.New("store not initialized")

	// Draft lifecycle errors.
	ErrInvalidTransition = errors.New("invalid sync state transition")

	// Auth errors.
	ErrNoToken      = errors.New("no access token")
	ErrTokenExpired = errors.New("token expired")
)

// Kind is the machine-readable class of a failure. The presentation layer
// chooses its treatment from Kind and shows Message to the user.
type Kind string

const (
	KindValidation         Kind = "ValidationError"
	KindAuth               Kind = "AuthError"
	KindNetworkUnavailable Kind = "NetworkUnavailable"
	KindServer             Kind = "ServerError"
	KindStorage            Kind = "StorageError"
	KindBusy               Kind = "Busy"
	KindInternal           Kind = "Internal"
)

// Transient reports whether a later retry of the same operation may succeed.
func (k Kind) Transient() bool {
	return k == KindNetworkUnavailable || k == KindServer || k == KindBusy
}

// Error is a classified failure: a Kind, a human-readable message and the
// underlying cause (may be nil).
type Error struct {
	Kind    Kind
	Message string
	Err     error
}

// NewError builds a classified error.
func NewError(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

func (e *Error) Error() string {
	if e.Err == nil {
		return fmt.Sprintf("%s: %s", e.Kind, e.Message)
	}
	return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
}

func (e *Error) Unwrap() error { return e.Err }

// KindOf extracts the Kind of err. Unclassified non-nil errors are Internal;
// nil yields the empty Kind.
func KindOf(err error) Kind {
	if err == nil {
		return ""
	}
	var ce *Error
	if errors.As(err, &ce) {
		return ce.Kind
	}
	return KindInternal
}

// MessageOf returns the user-facing message of a classified error, or the
// plain error text otherwise.
func MessageOf(err error) string {
	if err == nil {
		return ""
	}
	var ce *Error
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	return err.Error()
}
