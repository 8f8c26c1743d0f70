package errors

import (
	"encoding/json"
	"fmt"
	"net/http"
	"strings"

	"github.com/asodi/tracker/client/internal/types"
)

// NewHTTPError builds an APIError for a non-2xx response. The user-facing
// message is taken from the body's "message" field, then "detail", then
// "error"; when none is present GenericMessage is used.
func NewHTTPError(statusCode int, body string, operation string) *APIError {
	e := &APIError{
		Kind:       KindRejected,
		Operation:  operation,
		StatusCode: statusCode,
		Message:    messageFromBody(body),
		Body:       body,
		Underlying: fmt.Errorf("%s failed: HTTP %d", operation, statusCode),
	}
	if statusCode == http.StatusNotFound {
		e.Kind = KindNotFound
		e.Underlying = fmt.Errorf("%s: %w", operation, types.ErrNotFound)
	}
	return e
}

// NewNetworkError creates an APIError for failures where no response arrived.
func NewNetworkError(operation string, err error) *APIError {
	return &APIError{
		Kind:       KindTransport,
		Operation:  operation,
		Message:    GenericMessage,
		Underlying: fmt.Errorf("%s network error: %w", operation, err),
	}
}

func messageFromBody(body string) string {
	var fields map[string]any
	if err := json.Unmarshal([]byte(body), &fields); err == nil {
		for _, key := range []string{"message", "detail", "error"} {
			if s, ok := fields[key].(string); ok && strings.TrimSpace(s) != "" {
				return s
			}
		}
	}
	return GenericMessage
}
