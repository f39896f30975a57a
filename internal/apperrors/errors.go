// Package apperrors defines the typed error taxonomy shared by the WorkSafe
// service layer. Services signal failures as machine-readable kinds plus a
// descriptive message; the HTTP layer owns the translation to status codes
// and user-facing text.
package apperrors

import (
	"errors"
	"fmt"
)

// Kind classifies a domain failure. The set is closed: handlers map each
// kind to exactly one transport status code.
type Kind int

const (
	// KindUnknown covers internal failures (database errors and the like)
	// that carry no domain meaning.
	KindUnknown Kind = iota

	// KindMissingField indicates a required input is absent or empty.
	KindMissingField

	// KindInvalidValue indicates an input is present but fails a domain
	// constraint (status outside the enumerated set, unrecognized role).
	KindInvalidValue

	// KindForbidden indicates the authenticated caller lacks rights for the
	// requested target.
	KindForbidden

	// KindNotFound indicates a referenced entity does not exist, including
	// the case where an ownership predicate excludes an existing row.
	KindNotFound

	// KindConflict is reserved for stricter state-machine ordering; the
	// baseline workflows never raise it.
	KindConflict
)

// String returns the kind's stable identifier, used in logs and responses.
func (k Kind) String() string {
	switch k {
	case KindMissingField:
		return "MISSING_FIELD"
	case KindInvalidValue:
		return "INVALID_VALUE"
	case KindForbidden:
		return "FORBIDDEN"
	case KindNotFound:
		return "NOT_FOUND"
	case KindConflict:
		return "CONFLICT"
	default:
		return "INTERNAL"
	}
}

// Error is a typed domain error. Field is set for validation failures so the
// caller can name the offending input.
type Error struct {
	Kind    Kind
	Field   string
	Message string
}

func (e *Error) Error() string {
	if e.Field != "" {
		return fmt.Sprintf("%s: %s: %s", e.Kind, e.Field, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// MissingField reports an absent or empty required input.
func MissingField(field string) *Error {
	return &Error{Kind: KindMissingField, Field: field, Message: "required field is missing or empty"}
}

// InvalidValue reports an input that fails a domain constraint.
func InvalidValue(field, message string) *Error {
	return &Error{Kind: KindInvalidValue, Field: field, Message: message}
}

// Forbidden reports an authorization failure for the requested target.
func Forbidden(message string) *Error {
	return &Error{Kind: KindForbidden, Message: message}
}

// NotFound reports a missing entity or an ownership-predicate miss.
func NotFound(message string) *Error {
	return &Error{Kind: KindNotFound, Message: message}
}

// Conflict reports a state-machine ordering violation. Reserved.
func Conflict(message string) *Error {
	return &Error{Kind: KindConflict, Message: message}
}

// KindOf extracts the Kind from err, or KindUnknown when err is not a typed
// domain error.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindUnknown
}
