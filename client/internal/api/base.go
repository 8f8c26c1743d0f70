package api

import (
	"bytes"
	"context"
	"encoding/json"
	"fmt"
	"io"
	"net/http"

	apierrors "github.com/asodi/tracker/client/internal/errors"
)

// apiPrefix is the versioned root of every ASODI resource.
const apiPrefix = "/asodi/v1"

// maxErrorBody bounds how much of a failed response is kept for diagnostics.
const maxErrorBody = 64 << 10

// HTTPClient interface for dependency injection
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// newRequest builds a request with the JSON content type the API expects on
// every call, including bodiless ones.
func newRequest(ctx context.Context, method, url string, payload any) (*http.Request, error) {
	var body io.Reader
	if payload != nil {
		b, err := json.Marshal(payload)
		if err != nil {
			return nil, err
		}
		body = bytes.NewBuffer(b)
	}
	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}
	req.Header.Set("Content-Type", "application/json")
	return req, nil
}

// do executes req once and decodes a 2xx body into out (when out is non-nil).
// There is no retry: a transport failure or non-2xx status is terminal.
func do(httpClient HTTPClient, req *http.Request, operation string, out any) error {
	resp, err := httpClient.Do(req)
	if err != nil {
		return apierrors.NewNetworkError(operation, err)
	}
	defer func() { _ = resp.Body.Close() }()

	if resp.StatusCode < 200 || resp.StatusCode > 299 {
		b, _ := io.ReadAll(io.LimitReader(resp.Body, maxErrorBody))
		return apierrors.NewHTTPError(resp.StatusCode, string(b), operation)
	}
	if out == nil {
		return nil
	}
	if err := json.NewDecoder(resp.Body).Decode(out); err != nil {
		return fmt.Errorf("%s: decode response: %w", operation, err)
	}
	return nil
}
