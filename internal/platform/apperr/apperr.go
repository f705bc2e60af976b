package apperr

import (
	"errors"
	"fmt"
	"net/http"
)

// Kind classifies an error for callers and for the HTTP layer.
type Kind int

const (
	// KindUnknown is the zero value; treated as a storage failure.
	KindUnknown Kind = iota
	// KindValidation marks bad input rejected before touching storage.
	KindValidation
	// KindNotFound marks a lookup that matched no row.
	KindNotFound
	// KindInvalidState marks an operation illegal for the entity's current
	// lifecycle state (e.g. discharging an already-discharged patient).
	KindInvalidState
	// KindResourceUnavailable marks a contended resource with no free unit.
	KindResourceUnavailable
	// KindResourceInUse marks a delete blocked by live references.
	KindResourceInUse
	// KindStorage marks a connectivity or transaction failure. The cause is
	// always preserved for diagnostics.
	KindStorage
)

func (k Kind) String() string {
	switch k {
	case KindValidation:
		return "validation"
	case KindNotFound:
		return "not_found"
	case KindInvalidState:
		return "invalid_state"
	case KindResourceUnavailable:
		return "resource_unavailable"
	case KindResourceInUse:
		return "resource_in_use"
	case KindStorage:
		return "storage"
	default:
		return "unknown"
	}
}

// Error is a kinded error with an optional wrapped cause.
type Error struct {
	Kind Kind
	Msg  string
	Err  error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Msg, e.Err)
	}
	return e.Msg
}

func (e *Error) Unwrap() error {
	return e.Err
}

// New creates a kinded error without a cause.
func New(kind Kind, msg string) error {
	return &Error{Kind: kind, Msg: msg}
}

// Newf creates a kinded error with a formatted message.
func Newf(kind Kind, format string, args ...interface{}) error {
	return &Error{Kind: kind, Msg: fmt.Sprintf(format, args...)}
}

// Wrap creates a kinded error preserving the underlying cause.
func Wrap(kind Kind, msg string, err error) error {
	return &Error{Kind: kind, Msg: msg, Err: err}
}

// Validation creates a validation error.
func Validation(format string, args ...interface{}) error {
	return Newf(KindValidation, format, args...)
}

// NotFound creates a not-found error.
func NotFound(format string, args ...interface{}) error {
	return Newf(KindNotFound, format, args...)
}

// InvalidState creates an invalid-state error.
func InvalidState(format string, args ...interface{}) error {
	return Newf(KindInvalidState, format, args...)
}

// ResourceInUse creates a resource-in-use error.
func ResourceInUse(format string, args ...interface{}) error {
	return Newf(KindResourceInUse, format, args...)
}

// Storage wraps a storage-layer failure.
func Storage(msg string, err error) error {
	return Wrap(KindStorage, msg, err)
}

// KindOf extracts the Kind from an error chain. Non-kinded errors report
// KindStorage so that unexpected failures are never mistaken for user error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindStorage
}

// IsKind reports whether the error chain carries the given kind.
func IsKind(err error, kind Kind) bool {
	return err != nil && KindOf(err) == kind
}

// HTTPStatus maps an error to the HTTP status handlers should return.
func HTTPStatus(err error) int {
	switch KindOf(err) {
	case KindValidation:
		return http.StatusBadRequest
	case KindNotFound:
		return http.StatusNotFound
	case KindInvalidState:
		return http.StatusConflict
	case KindResourceUnavailable:
		return http.StatusConflict
	case KindResourceInUse:
		return http.StatusConflict
	default:
		return http.StatusInternalServerError
	}
}
