package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/asodi/tracker/client/internal/types"
)

// GetProfile fetches the medical profile for rut. A missing profile yields an
// error matching types.ErrNotFound.
func GetProfile(ctx context.Context, httpClient HTTPClient, baseURL, rut string) (*types.MedicalProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateRUT(rut); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s%s/fichas/%s/", baseURL, apiPrefix, url.PathEscape(rut))
	httpReq, err := newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	var p types.MedicalProfile
	if err := do(httpClient, httpReq, "get profile", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// CreateProfile stores the first medical profile of a user.
func CreateProfile(ctx context.Context, httpClient HTTPClient, baseURL string, profile types.MedicalProfile) (*types.MedicalProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateRUT(profile.Usuario); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s%s/fichas/", baseURL, apiPrefix)
	httpReq, err := newRequest(ctx, http.MethodPost, u, profile)
	if err != nil {
		return nil, err
	}
	var created types.MedicalProfile
	if err := do(httpClient, httpReq, "create profile", &created); err != nil {
		return nil, err
	}
	return &created, nil
}

// UpdateProfile replaces the whole profile of rut. It is not a partial patch.
func UpdateProfile(ctx context.Context, httpClient HTTPClient, baseURL, rut string, profile types.MedicalProfile) (*types.MedicalProfile, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateRUT(rut); err != nil {
		return nil, err
	}
	profile.Usuario = rut
	u := fmt.Sprintf("%s%s/fichas/%s/", baseURL, apiPrefix, url.PathEscape(rut))
	httpReq, err := newRequest(ctx, http.MethodPut, u, profile)
	if err != nil {
		return nil, err
	}
	var updated types.MedicalProfile
	if err := do(httpClient, httpReq, "update profile", &updated); err != nil {
		return nil, err
	}
	return &updated, nil
}
