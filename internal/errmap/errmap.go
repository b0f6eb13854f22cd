// Package errmap classifies failed upstream calls into a small error
// taxonomy and renders each class as a uniform HTTP error response.
//
// # Error Conventions
//
// This project follows a standardized error pattern across all packages:
//
//   - Sentinel errors (errors.New) for well-known, stable conditions
//     that callers check with errors.Is().
//   - Structured error types for context-rich errors that carry
//     additional fields. Each type implements Error(), Unwrap() (if
//     wrapping), and Is().
//   - fmt.Errorf with %w for ad-hoc wrapping that adds context to an
//     existing error without introducing a new type.
//
// Classification is derived purely from the transport status and message;
// upstream response bodies are absent on failure and never inspected.
package errmap

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"strings"

	"google.golang.org/grpc/codes"
	"google.golang.org/grpc/status"
)

// Kind is the classification of a failed upstream call.
type Kind string

// The full taxonomy. Every failed upstream call resolves to exactly one
// of these.
const (
	KindNotFound            Kind = "not_found"
	KindConflict            Kind = "conflict"
	KindAlreadyExists       Kind = "already_exists"
	KindForeignKeyViolation Kind = "foreign_key_violation"
	KindValidation          Kind = "validation"
	KindUnauthorized        Kind = "unauthorized"
	KindTokenExpired        Kind = "token_expired"
	KindInvalidTokenType    Kind = "invalid_token_type"
	KindInternal            Kind = "internal"
	KindUnhandled           Kind = "unhandled"
)

// genericInternalMessage replaces upstream internals in user-visible
// messages so transport details never leak through the HTTP boundary.
const genericInternalMessage = "an internal error occurred"

// Error is a classified upstream failure. Once a transport error crosses
// this package it only travels as an *Error; callers never see the raw
// status again.
type Error struct {
	Kind    Kind
	Message string
	Cause   error
}

// Error implements the error interface.
func (e *Error) Error() string {
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

// Unwrap returns the underlying transport error.
func (e *Error) Unwrap() error {
	return e.Cause
}

// Is matches other *Error values of the same kind.
func (e *Error) Is(target error) bool {
	var other *Error
	if errors.As(target, &other) {
		return e.Kind == other.Kind
	}
	return false
}

// New creates a classified error.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates a classified error with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Internal creates an internal error wrapping a cause. The message shown
// to users stays generic; the cause survives for logging via Unwrap.
func Internal(cause error) *Error {
	return &Error{Kind: KindInternal, Message: genericInternalMessage, Cause: cause}
}

// Validation creates a validation error. Field-level details are folded
// into the message, sorted by field name for stable output.
func Validation(message string, fields map[string]string) *Error {
	if len(fields) == 0 {
		return &Error{Kind: KindValidation, Message: message}
	}

	names := make([]string, 0, len(fields))
	for name := range fields {
		names = append(names, name)
	}
	sort.Strings(names)

	parts := make([]string, 0, len(names))
	for _, name := range names {
		parts = append(parts, name+": "+fields[name])
	}

	return &Error{
		Kind:    KindValidation,
		Message: message + " (" + strings.Join(parts, "; ") + ")",
	}
}

// FromRPC classifies a failed upstream gRPC call. The mapping uses only
// the transport status code and message.
func FromRPC(err error) *Error {
	if err == nil {
		return nil
	}

	var classified *Error
	if errors.As(err, &classified) {
		return classified
	}

	if errors.Is(err, context.DeadlineExceeded) || errors.Is(err, context.Canceled) {
		return &Error{Kind: KindUnhandled, Message: "upstream call aborted", Cause: err}
	}

	st, ok := status.FromError(err)
	if !ok {
		return &Error{Kind: KindUnhandled, Message: "upstream call failed", Cause: err}
	}

	switch st.Code() {
	case codes.NotFound:
		return &Error{Kind: KindNotFound, Message: st.Message(), Cause: err}
	case codes.AlreadyExists:
		return &Error{Kind: KindAlreadyExists, Message: st.Message(), Cause: err}
	case codes.Aborted:
		return &Error{Kind: KindConflict, Message: st.Message(), Cause: err}
	case codes.FailedPrecondition:
		return &Error{Kind: KindForeignKeyViolation, Message: st.Message(), Cause: err}
	case codes.InvalidArgument:
		return &Error{Kind: KindValidation, Message: st.Message(), Cause: err}
	case codes.Unauthenticated:
		return &Error{Kind: classifyUnauthenticated(st.Message()), Message: st.Message(), Cause: err}
	case codes.PermissionDenied:
		return &Error{Kind: KindUnauthorized, Message: st.Message(), Cause: err}
	case codes.Internal:
		return &Error{Kind: KindInternal, Message: genericInternalMessage, Cause: err}
	default:
		return &Error{Kind: KindUnhandled, Message: "upstream call failed", Cause: err}
	}
}

// classifyUnauthenticated distinguishes token failures from plain
// authorization failures using the status message, the only signal the
// transport carries for Unauthenticated.
func classifyUnauthenticated(message string) Kind {
	lower := strings.ToLower(message)
	switch {
	case strings.Contains(lower, "expired"):
		return KindTokenExpired
	case strings.Contains(lower, "token type"):
		return KindInvalidTokenType
	default:
		return KindUnauthorized
	}
}

// HTTPStatus maps a classification to its HTTP status code.
func (k Kind) HTTPStatus() int {
	switch k {
	case KindNotFound:
		return http.StatusNotFound
	case KindConflict, KindAlreadyExists:
		return http.StatusConflict
	case KindForeignKeyViolation, KindValidation:
		return http.StatusBadRequest
	case KindUnauthorized, KindTokenExpired, KindInvalidTokenType:
		return http.StatusUnauthorized
	default:
		return http.StatusInternalServerError
	}
}

// KindOf returns the classification of err, or KindUnhandled when err was
// never classified.
func KindOf(err error) Kind {
	var classified *Error
	if errors.As(err, &classified) {
		return classified.Kind
	}
	return KindUnhandled
}
