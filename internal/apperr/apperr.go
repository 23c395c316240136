// Package apperr defines the domain error taxonomy shared by all services.
// Every write-path failure carries a machine-readable Kind; the handler layer
// maps kinds to HTTP status codes, services never do.
package apperr

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure. Callers can recover from every kind
// except StorageFailure by correcting their input and retrying.
type Kind int

const (
	// MissingData - required payload absent or incomplete.
	MissingData Kind = iota + 1
	// AlreadyPersisted - create attempted on an entity that already has an identity.
	AlreadyPersisted
	// NotExistent - modify/delete target does not exist.
	NotExistent
	// DuplicateCode - natural-key uniqueness violated (codigo de compra/producto, cedula).
	DuplicateCode
	// ReferenceNotFound - a foreign reference (cliente, producto, compra) does not resolve.
	ReferenceNotFound
	// InvalidValue - a quantity or monetary value fails its domain constraint.
	InvalidValue
	// ConcurrencyConflict - optimistic version token mismatch on modify.
	ConcurrencyConflict
	// HasDependents - delete refused because dependent rows exist.
	HasDependents
	// StorageFailure - the store rejected the operation for an unclassified reason.
	StorageFailure
)

func (k Kind) String() string {
	switch k {
	case MissingData:
		return "missing_data"
	case AlreadyPersisted:
		return "already_persisted"
	case NotExistent:
		return "not_existent"
	case DuplicateCode:
		return "duplicate_code"
	case ReferenceNotFound:
		return "reference_not_found"
	case InvalidValue:
		return "invalid_value"
	case ConcurrencyConflict:
		return "concurrency_conflict"
	case HasDependents:
		return "has_dependents"
	case StorageFailure:
		return "storage_failure"
	}
	return "unknown"
}

// Error is the concrete error type returned by every service operation.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return e.Msg + ": " + e.Err.Error()
	}
	return e.Msg
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, msg string) *Error {
	return &Error{Kind: kind, Msg: msg}
}

func Newf(kind Kind, format string, args ...interface{}) *Error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and message to an underlying storage error so the
// original cause stays visible in logs.
func Wrap(kind Kind, msg string, err error) *Error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// KindOf extracts the Kind from err. Unclassified non-nil errors report
// StorageFailure so nothing is ever silently swallowed.
func KindOf(err error) Kind {
	if err == nil {
		return 0
	}
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return StorageFailure
}

// Is reports whether err carries the given kind.
func Is(err error, kind Kind) bool {
	return KindOf(err) == kind
}
