package client

import (
	"errors"

	apierrors "github.com/asodi/tracker/client/internal/errors"
	"github.com/asodi/tracker/client/internal/types"
)

// Re-export shared SDK errors so callers compare against a single symbol.
var (
	ErrNotFound   = types.ErrNotFound
	ErrValidation = types.ErrValidation
)

// APIError is the typed failure returned for transport errors and non-2xx
// responses.
type APIError = apierrors.APIError

// ErrorKind classifies an APIError.
type ErrorKind = apierrors.Kind

const (
	KindRejected  = apierrors.KindRejected
	KindNotFound  = apierrors.KindNotFound
	KindTransport = apierrors.KindTransport
)

// GenericErrorMessage is shown when the server gave no usable message.
const GenericErrorMessage = apierrors.GenericMessage

// IsNotFound reports whether err is a 404 from the API.
func IsNotFound(err error) bool { return errors.Is(err, ErrNotFound) }

// IsTransport reports whether err happened before any response arrived.
func IsTransport(err error) bool { return apierrors.IsTransport(err) }

// UserMessage returns the text a surface should show for err: the server's
// message for API errors, the error string otherwise.
func UserMessage(err error) string {
	if err == nil {
		return ""
	}
	var apiErr *APIError
	if errors.As(err, &apiErr) && apiErr.Message != "" {
		return apiErr.Message
	}
	return err.Error()
}
