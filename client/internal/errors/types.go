// Package errors provides error classification for the client SDK.
// Every failed request maps to exactly one Kind so callers can decide how to
// surface it without parsing strings.
package errors

import (
	stderrors "errors"
	"fmt"
)

// Kind identifies which branch of the error taxonomy a failure belongs to.
type Kind int

const (
	// KindRejected is a non-2xx response from the API.
	KindRejected Kind = iota

	// KindNotFound is a 404 response. Callers may treat it as a branch
	// rather than a failure (e.g. a missing medical profile).
	KindNotFound

	// KindTransport is a network-level failure; no response was received.
	KindTransport
)

// String returns a human-readable representation of the kind.
func (k Kind) String() string {
	switch k {
	case KindRejected:
		return "Rejected"
	case KindNotFound:
		return "NotFound"
	case KindTransport:
		return "Transport"
	default:
		return fmt.Sprintf("Unknown(%d)", int(k))
	}
}

// GenericMessage is shown when the server gives no message of its own.
const GenericMessage = "the server could not complete the request"

// APIError wraps a failed call with the metadata needed to surface it.
type APIError struct {
	Kind       Kind
	Operation  string
	StatusCode int    // HTTP status code (0 for transport errors)
	Message    string // user-facing message from the body, or GenericMessage
	Body       string // raw response body for debugging
	Underlying error
}

// Error implements the error interface.
func (e *APIError) Error() string {
	if e.StatusCode > 0 {
		return fmt.Sprintf("%s: HTTP %d: %s", e.Operation, e.StatusCode, e.Message)
	}
	return fmt.Sprintf("%s: %v", e.Operation, e.Underlying)
}

// Unwrap returns the underlying error for error chain compatibility.
func (e *APIError) Unwrap() error {
	return e.Underlying
}

// IsTransport reports whether err is a network-level failure.
func IsTransport(err error) bool {
	var apiErr *APIError
	if stderrors.As(err, &apiErr) {
		return apiErr.Kind == KindTransport
	}
	return false
}
