// Package apperr defines the failure taxonomy shared by the transport, the
// mirrored stores and the orchestrator. Every store operation fails with an
// *Error whose Kind matches one of the sentinels below via errors.Is.
package apperr

import (
	"errors"
	"strings"

	"movie-catalog/pkg/utils"
)

var (
	// ErrValidation is client-detectable bad input; the request is never sent.
	ErrValidation = errors.New("validation failed")
	// ErrTransport covers unreachable servers, timeouts, 5xx and malformed responses.
	ErrTransport = errors.New("transport failed")
	// ErrConflict means the server rejected a request against stale state.
	ErrConflict = errors.New("conflict")
	// ErrNotFound means the identifier no longer exists server-side.
	ErrNotFound = errors.New("not found")
	// ErrForbidden is an ownership or role violation.
	ErrForbidden = errors.New("forbidden")
	// ErrUnauthenticated is returned when an operation needs a session and none is established.
	ErrUnauthenticated = errors.New("unauthenticated")
	// ErrMutationInFlight is returned by a store guarded with the reject policy.
	ErrMutationInFlight = errors.New("mutation already in flight")
	// ErrUnsupported marks operations a resource family does not expose.
	ErrUnsupported = errors.New("unsupported operation")
)

// Error carries the failing operation, a user-facing message and, for
// validation failures, a per-field breakdown.
type Error struct {
	Kind    error
	Op      string
	Message string
	Fields  map[string]string
	Err     error
}

func (e *Error) Error() string {
	var sb strings.Builder
	if e.Op != "" {
		sb.WriteString(e.Op)
		sb.WriteString(": ")
	}
	sb.WriteString(e.Kind.Error())
	if e.Message != "" {
		sb.WriteString(": ")
		sb.WriteString(e.Message)
	}
	if e.Err != nil {
		sb.WriteString(": ")
		sb.WriteString(e.Err.Error())
	}
	return sb.String()
}

func (e *Error) Is(target error) bool {
	return e.Kind == target
}

func (e *Error) Unwrap() error {
	return e.Err
}

func New(kind error, op, message string) *Error {
	return &Error{Kind: kind, Op: op, Message: message}
}

func Wrap(kind error, op string, err error) *Error {
	return &Error{Kind: kind, Op: op, Err: err}
}

// Validation builds a validation failure from a field -> message map.
func Validation(op string, fields map[string]string) *Error {
	return &Error{Kind: ErrValidation, Op: op, Message: utils.FormatValidationErrors(fields), Fields: fields}
}

// Forbidden is a local ownership/role rejection.
func Forbidden(op, message string) *Error {
	return New(ErrForbidden, op, message)
}

// Message returns the user-facing part of err, falling back to err.Error().
func Message(err error) string {
	var e *Error
	if errors.As(err, &e) && e.Message != "" {
		return e.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// KindOf reports which sentinel err belongs to, or nil when it is outside the taxonomy.
func KindOf(err error) error {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind
	}
	return nil
}
