package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/asodi/tracker/client/internal/types"
)

// ListUsers returns the full user collection.
func ListUsers(ctx context.Context, httpClient HTTPClient, baseURL string) ([]types.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s%s/usuarios/", baseURL, apiPrefix)
	httpReq, err := newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	var users []types.User
	if err := do(httpClient, httpReq, "list users", &users); err != nil {
		return nil, err
	}
	return users, nil
}

// ListCredentials reads the user collection keeping only rut, correo and
// password.
func ListCredentials(ctx context.Context, httpClient HTTPClient, baseURL string) ([]types.Credential, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s%s/usuarios/", baseURL, apiPrefix)
	httpReq, err := newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	var creds []types.Credential
	if err := do(httpClient, httpReq, "list credentials", &creds); err != nil {
		return nil, err
	}
	return creds, nil
}

// GetUser retrieves a single user by RUT.
func GetUser(ctx context.Context, httpClient HTTPClient, baseURL, rut string) (*types.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateRUT(rut); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s%s/usuarios/%s", baseURL, apiPrefix, url.PathEscape(rut))
	httpReq, err := newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	var user types.User
	if err := do(httpClient, httpReq, "get user", &user); err != nil {
		return nil, err
	}
	return &user, nil
}

// CreateUser registers a new account.
func CreateUser(ctx context.Context, httpClient HTTPClient, baseURL string, req types.CreateUserRequest) (*types.User, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateRUT(req.RUT); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s%s/usuarios/", baseURL, apiPrefix)
	httpReq, err := newRequest(ctx, http.MethodPost, u, req)
	if err != nil {
		return nil, err
	}
	var user types.User
	if err := do(httpClient, httpReq, "create user", &user); err != nil {
		return nil, err
	}
	return &user, nil
}
