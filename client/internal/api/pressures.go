package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/asodi/tracker/client/internal/types"
)

// ListPressures returns every blood pressure reading owned by rut.
func ListPressures(ctx context.Context, httpClient HTTPClient, baseURL, rut string) ([]types.Pressure, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateRUT(rut); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s%s/presiones/%s/", baseURL, apiPrefix, url.PathEscape(rut))
	httpReq, err := newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	var out []types.Pressure
	if err := do(httpClient, httpReq, "list pressures", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreatePressure posts a new reading and returns the server's copy, which carries id_presion.
func CreatePressure(ctx context.Context, httpClient HTTPClient, baseURL string, req types.CreatePressureRequest) (*types.Pressure, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateRUT(req.Usuario); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s%s/presiones/", baseURL, apiPrefix)
	httpReq, err := newRequest(ctx, http.MethodPost, u, req)
	if err != nil {
		return nil, err
	}
	var p types.Pressure
	if err := do(httpClient, httpReq, "create pressure", &p); err != nil {
		return nil, err
	}
	return &p, nil
}

// DeletePressure removes reading id owned by rut.
func DeletePressure(ctx context.Context, httpClient HTTPClient, baseURL, rut string, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateRUT(rut); err != nil {
		return err
	}
	u := fmt.Sprintf("%s%s/presiones/%s/%d/", baseURL, apiPrefix, url.PathEscape(rut), id)
	httpReq, err := newRequest(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}
	return do(httpClient, httpReq, "delete pressure", nil)
}
