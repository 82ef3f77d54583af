// Package apierror is the shared failure vocabulary. Every service returns an
// *Error; controllers never branch on internals, they hand the error to Write
// which owns the only kind→status mapping in the codebase.
package apierror

import (
	"errors"
	"fmt"
	"net/http"
)

type Kind int

const (
	Unknown Kind = iota
	Validation
	NotFound
	Duplicate
	AuthFailure
	TokenInvalid
	TokenExpired
	OutOfStock
	InsufficientStock
	RateLimited
	MalformedIdentifier
	UploadFailure
)

func (k Kind) String() string {
	switch k {
	case Validation:
		return "validation"
	case NotFound:
		return "not_found"
	case Duplicate:
		return "duplicate"
	case AuthFailure:
		return "auth_failure"
	case TokenInvalid:
		return "token_invalid"
	case TokenExpired:
		return "token_expired"
	case OutOfStock:
		return "out_of_stock"
	case InsufficientStock:
		return "insufficient_stock"
	case RateLimited:
		return "rate_limited"
	case MalformedIdentifier:
		return "malformed_identifier"
	case UploadFailure:
		return "upload_failure"
	default:
		return "unknown"
	}
}

// Status returns the fixed HTTP status for the kind.
func (k Kind) Status() int {
	switch k {
	case Validation, Duplicate, MalformedIdentifier:
		return http.StatusBadRequest
	case AuthFailure, TokenInvalid, TokenExpired:
		return http.StatusUnauthorized
	case NotFound:
		return http.StatusNotFound
	case OutOfStock, InsufficientStock:
		return http.StatusConflict
	case RateLimited:
		return http.StatusTooManyRequests
	case UploadFailure:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// FieldError is one entry in the per-field detail list of a Validation failure.
type FieldError struct {
	Field   string `json:"field"`
	Message string `json:"message"`
}

type Error struct {
	Kind    Kind
	Message string
	Fields  []FieldError
	// Err keeps the underlying cause for logging; it is never serialized.
	Err error
}

func (e *Error) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %s: %v", e.Kind, e.Message, e.Err)
	}
	return fmt.Sprintf("%s: %s", e.Kind, e.Message)
}

func (e *Error) Unwrap() error { return e.Err }

func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a cause to a taxonomy failure so boundaries can log it.
func Wrap(kind Kind, message string, err error) *Error {
	return &Error{Kind: kind, Message: message, Err: err}
}

// WithFields returns a Validation failure carrying the exhaustive field list.
func WithFields(message string, fields []FieldError) *Error {
	return &Error{Kind: Validation, Message: message, Fields: fields}
}

// From coerces any error into a taxonomy error. Unrecognized errors degrade to
// Unknown so internals never leak past the boundary.
func From(err error) *Error {
	var ae *Error
	if errors.As(err, &ae) {
		return ae
	}
	return &Error{Kind: Unknown, Message: "Internal server error", Err: err}
}

// IsKind reports whether err carries the given taxonomy kind.
func IsKind(err error, kind Kind) bool {
	var ae *Error
	return errors.As(err, &ae) && ae.Kind == kind
}
