package types

import (
	"errors"
	"fmt"
	"net/http"
	"strings"
)

// ------------------------------
// Shared Interfaces
// ------------------------------

// HTTPClient interface for dependency injection
type HTTPClient interface {
	Do(req *http.Request) (*http.Response, error)
}

// ------------------------------
// Shared Errors
// ------------------------------

// ErrNotFound is returned when the requested resource does not exist.
var ErrNotFound = errors.New("resource not found")

// ErrValidation is returned when a request is rejected before reaching the network.
var ErrValidation = errors.New("validation error")

// ValidateRUT checks that a user identifier is present. The format is owned
// by the API and not checked here.
func ValidateRUT(rut string) error {
	if strings.TrimSpace(rut) == "" {
		return fmt.Errorf("%w: rut is required", ErrValidation)
	}
	if strings.ContainsAny(rut, "/?#") {
		return fmt.Errorf("%w: rut contains path characters", ErrValidation)
	}
	return nil
}
