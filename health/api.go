package health

import (
	"context"
	"fmt"
	"net/http"
	"time"

	"github.com/go-resty/resty/v2"
	"github.com/rs/zerolog"
)

// healthPath is a cheap public endpoint that needs no user.
const healthPath = "/asodi/v1/anuncios/"

// APIChecker checks the REST API with a GET on the announcements list.
type APIChecker struct {
	checkLoop
	client *resty.Client
}

// NewAPIChecker builds a checker for the API at baseURL.
func NewAPIChecker(baseURL string, log zerolog.Logger, checkTimeout time.Duration) *APIChecker {
	c := resty.New().
		SetBaseURL(baseURL).
		SetHeader("Content-Type", "application/json").
		SetTimeout(checkTimeout)

	a := &APIChecker{client: c}
	a.name, a.log, a.checkTimeout = "api", log, checkTimeout
	a.pinger = a
	return a
}

// HealthPing returns nil when the API answers 200.
func (a *APIChecker) HealthPing(ctx context.Context) error {
	resp, err := a.client.R().SetContext(ctx).Get(healthPath)
	if err != nil {
		return fmt.Errorf("api check: %w", err)
	}
	if resp.StatusCode() != http.StatusOK {
		return fmt.Errorf("api check: status %d", resp.StatusCode())
	}
	return nil
}
