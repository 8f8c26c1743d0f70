package client

import (
	"context"
	"errors"
	"net/http"
	"strings"
	"sync/atomic"
	"time"

	"github.com/asodi/tracker/client/internal/api"
)

// Client is a thin SDK over the ASODI REST API. Every method issues exactly
// one HTTP call; there is no queue and no retry.
type Client struct {
	baseURL string
	http    *http.Client

	closedOnce uint32 // ensures Close is idempotent
}

// New constructs a Client for baseURL. Options are applied in order; the
// request-id and metrics transports are installed on top of whatever
// transport the options leave behind.
func New(baseURL string, opts ...Option) (*Client, error) {
	if strings.TrimSpace(baseURL) == "" {
		return nil, errors.New("baseURL cannot be empty")
	}

	c := &Client{
		baseURL: strings.TrimRight(baseURL, "/"),
		http:    &http.Client{Timeout: 30 * time.Second},
	}

	// Auto-enable debug via env variable without changing code.
	if debugLoggingRequested() {
		opts = append(opts, WithDebugLogging(true))
	}

	for _, opt := range opts {
		if err := opt(c); err != nil {
			return nil, err
		}
	}

	c.wrapTransport()
	return c, nil
}

// wrapTransport layers metrics and request ids over the configured transport.
func (c *Client) wrapTransport() {
	base := c.http.Transport
	if base == nil {
		base = http.DefaultTransport
	}
	c.http.Transport = &requestIDTransport{base: &metricsTransport{base: base}}
}

// BaseURL returns the API root this client talks to.
func (c *Client) BaseURL() string { return c.baseURL }

// Close releases idle connections. Safe to call multiple times.
func (c *Client) Close() error {
	if !atomic.CompareAndSwapUint32(&c.closedOnce, 0, 1) {
		return nil
	}
	c.http.CloseIdleConnections()
	return nil
}

// --------------------------------------------------------------------
// Users
// --------------------------------------------------------------------

// ListUsers returns every registered user.
func (c *Client) ListUsers(ctx context.Context) ([]User, error) {
	return api.ListUsers(ctx, c.http, c.baseURL)
}

// ListCredentials returns rut, correo and password of every user, for the
// login check.
func (c *Client) ListCredentials(ctx context.Context) ([]Credential, error) {
	return api.ListCredentials(ctx, c.http, c.baseURL)
}

// GetUser retrieves a user by RUT.
func (c *Client) GetUser(ctx context.Context, rut string) (*User, error) {
	return api.GetUser(ctx, c.http, c.baseURL, rut)
}

// CreateUser registers a new account.
func (c *Client) CreateUser(ctx context.Context, req CreateUserRequest) (*User, error) {
	return api.CreateUser(ctx, c.http, c.baseURL, req)
}

// RequestPasswordReset asks the API to mail a reset link to email.
func (c *Client) RequestPasswordReset(ctx context.Context, email string) error {
	return api.RequestPasswordReset(ctx, c.http, c.baseURL, email)
}

// --------------------------------------------------------------------
// Medical profile
// --------------------------------------------------------------------

// GetProfile fetches the medical profile of rut. A missing profile yields an
// error matching ErrNotFound.
func (c *Client) GetProfile(ctx context.Context, rut string) (*MedicalProfile, error) {
	return api.GetProfile(ctx, c.http, c.baseURL, rut)
}

// CreateProfile stores the first profile of a user.
func (c *Client) CreateProfile(ctx context.Context, p MedicalProfile) (*MedicalProfile, error) {
	return api.CreateProfile(ctx, c.http, c.baseURL, p)
}

// UpdateProfile replaces the profile of rut in full.
func (c *Client) UpdateProfile(ctx context.Context, rut string, p MedicalProfile) (*MedicalProfile, error) {
	return api.UpdateProfile(ctx, c.http, c.baseURL, rut, p)
}

// --------------------------------------------------------------------
// Tracked records
// --------------------------------------------------------------------

func (c *Client) ListWeights(ctx context.Context, rut string) ([]Weight, error) {
	return api.ListWeights(ctx, c.http, c.baseURL, rut)
}

func (c *Client) CreateWeight(ctx context.Context, req CreateWeightRequest) (*Weight, error) {
	return api.CreateWeight(ctx, c.http, c.baseURL, req)
}

func (c *Client) DeleteWeight(ctx context.Context, rut string, id int64) error {
	return api.DeleteWeight(ctx, c.http, c.baseURL, rut, id)
}

func (c *Client) ListPressures(ctx context.Context, rut string) ([]Pressure, error) {
	return api.ListPressures(ctx, c.http, c.baseURL, rut)
}

func (c *Client) CreatePressure(ctx context.Context, req CreatePressureRequest) (*Pressure, error) {
	return api.CreatePressure(ctx, c.http, c.baseURL, req)
}

func (c *Client) DeletePressure(ctx context.Context, rut string, id int64) error {
	return api.DeletePressure(ctx, c.http, c.baseURL, rut, id)
}

func (c *Client) ListAppointments(ctx context.Context, rut string) ([]Appointment, error) {
	return api.ListAppointments(ctx, c.http, c.baseURL, rut)
}

func (c *Client) CreateAppointment(ctx context.Context, req CreateAppointmentRequest) (*Appointment, error) {
	return api.CreateAppointment(ctx, c.http, c.baseURL, req)
}

func (c *Client) DeleteAppointment(ctx context.Context, rut string, id int64) error {
	return api.DeleteAppointment(ctx, c.http, c.baseURL, rut, id)
}

// ListAnnouncements returns the public notice board.
func (c *Client) ListAnnouncements(ctx context.Context) ([]Announcement, error) {
	return api.ListAnnouncements(ctx, c.http, c.baseURL)
}
