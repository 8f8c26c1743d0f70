package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/asodi/tracker/client/internal/types"
)

// ListWeights returns every weight entry owned by rut.
func ListWeights(ctx context.Context, httpClient HTTPClient, baseURL, rut string) ([]types.Weight, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateRUT(rut); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s%s/pesos/%s/", baseURL, apiPrefix, url.PathEscape(rut))
	httpReq, err := newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	var out []types.Weight
	if err := do(httpClient, httpReq, "list weights", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateWeight posts a new entry and returns the server's copy, which carries id_peso.
func CreateWeight(ctx context.Context, httpClient HTTPClient, baseURL string, req types.CreateWeightRequest) (*types.Weight, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateRUT(req.Usuario); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s%s/pesos/", baseURL, apiPrefix)
	httpReq, err := newRequest(ctx, http.MethodPost, u, req)
	if err != nil {
		return nil, err
	}
	var w types.Weight
	if err := do(httpClient, httpReq, "create weight", &w); err != nil {
		return nil, err
	}
	return &w, nil
}

// DeleteWeight removes entry id owned by rut.
func DeleteWeight(ctx context.Context, httpClient HTTPClient, baseURL, rut string, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateRUT(rut); err != nil {
		return err
	}
	u := fmt.Sprintf("%s%s/pesos/%s/%d/", baseURL, apiPrefix, url.PathEscape(rut), id)
	httpReq, err := newRequest(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}
	return do(httpClient, httpReq, "delete weight", nil)
}
