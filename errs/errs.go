package errs

import (
	"errors"
	"fmt"
)

// Kind classifies a failure. The set is closed: handlers map each kind to
// exactly one HTTP status and clients can switch on it.
type Kind string

const (
	KindUnauthenticated Kind = "UNAUTHENTICATED"
	KindForbidden       Kind = "FORBIDDEN"
	KindValidation      Kind = "VALIDATION_FAILED"
	KindNotFound        Kind = "NOT_FOUND"
	KindDuplicateEmail  Kind = "DUPLICATE_EMAIL"
	KindConflict        Kind = "CONFLICT"
	KindNotYourIntern   Kind = "NOT_YOUR_INTERN"
	KindTooEarly        Kind = "TOO_EARLY"
	KindNoValidFields   Kind = "NO_VALID_FIELDS"
	KindPersistence     Kind = "PERSISTENCE_FAILED"
)

// Reason refines KindForbidden.
type Reason string

const (
	ReasonCrossCompany Reason = "CROSS_COMPANY"
	ReasonWrongRole    Reason = "WRONG_ROLE"
	ReasonNotOwner     Reason = "NOT_OWNER"
	ReasonSelfDelete   Reason = "SELF_DELETE"
)

// Error is the single error type crossing the orchestrator boundary.
type Error struct {
	Kind    Kind
	Reason  Reason // set only for KindForbidden
	Message string
}

func (e *Error) Error() string {
	if e.Reason != "" {
		return fmt.Sprintf("%s (%s): %s", e.Kind, e.Reason, e.Message)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

func Forbidden(reason Reason, message string) *Error {
	return &Error{Kind: KindForbidden, Reason: reason, Message: message}
}

// KindOf extracts the kind from err, or KindPersistence when err is not a
// taxonomy error. A nil err has no kind.
func KindOf(err error) Kind {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return KindPersistence
}

// ReasonOf extracts the forbidden reason, empty when absent.
func ReasonOf(err error) Reason {
	var e *Error
	if errors.As(err, &e) {
		return e.Reason
	}
	return ""
}
