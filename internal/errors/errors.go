package errors

import (
	"errors"
	"fmt"
)

// Kind classifies an error for callers that branch on failure mode.
type Kind int

const (
	// KindConfiguration covers unsupported versions and store selectors.
	KindConfiguration Kind = iota
	// KindValidation covers unknown feeds and unsupported output formats.
	KindValidation
	// KindAuthentication covers missing or unsupported credentials.
	KindAuthentication
	// KindTransport covers non-200/304 HTTP responses.
	KindTransport
	// KindStorage covers fatal local filesystem failures.
	KindStorage
	// KindStorageUnavailable covers absorbed object-storage faults. These
	// never cross the store boundary; the kind exists so the internal
	// result can be logged and tested before it is swallowed.
	KindStorageUnavailable
	// KindCodec covers unrecognized payload formats.
	KindCodec
)

func (k Kind) String() string {
	switch k {
	case KindConfiguration:
		return "configuration"
	case KindValidation:
		return "validation"
	case KindAuthentication:
		return "authentication"
	case KindTransport:
		return "transport"
	case KindStorage:
		return "storage"
	case KindStorageUnavailable:
		return "storage_unavailable"
	case KindCodec:
		return "codec"
	}
	return "unknown"
}

// Error is the error type returned across package boundaries.
type Error struct {
	Kind    Kind
	Message string
	// StatusCode holds the HTTP status for KindTransport errors, 0 otherwise.
	StatusCode int
	underlying error
}

func (e *Error) Error() string {
	if e.underlying != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.underlying)
	}
	return e.Message
}

func (e *Error) Unwrap() error {
	return e.underlying
}

// New creates an Error of the given kind.
func New(kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message}
}

// Newf creates an Error of the given kind with a formatted message.
func Newf(kind Kind, format string, args ...any) *Error {
	return &Error{Kind: kind, Message: fmt.Sprintf(format, args...)}
}

// Wrap attaches a kind and context message to an underlying error.
func Wrap(err error, kind Kind, message string) *Error {
	return &Error{Kind: kind, Message: message, underlying: err}
}

// Transport creates a KindTransport error carrying the HTTP status code.
func Transport(statusCode int, message string) *Error {
	return &Error{Kind: KindTransport, Message: message, StatusCode: statusCode}
}

// Is reports whether err is an *Error of the given kind anywhere in its chain.
func Is(err error, kind Kind) bool {
	var e *Error
	if errors.As(err, &e) {
		return e.Kind == kind
	}
	return false
}

// StatusCode returns the HTTP status carried by a transport error, or 0.
func StatusCode(err error) int {
	var e *Error
	if errors.As(err, &e) {
		return e.StatusCode
	}
	return 0
}
