package api

import (
	"context"
	"fmt"
	"net/http"
	"net/url"

	"github.com/asodi/tracker/client/internal/types"
)

// ListAppointments returns every appointment owned by rut.
func ListAppointments(ctx context.Context, httpClient HTTPClient, baseURL, rut string) ([]types.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateRUT(rut); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s%s/citas/%s/", baseURL, apiPrefix, url.PathEscape(rut))
	httpReq, err := newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	var out []types.Appointment
	if err := do(httpClient, httpReq, "list appointments", &out); err != nil {
		return nil, err
	}
	return out, nil
}

// CreateAppointment posts a new appointment and returns the server's copy, which carries id_cita_medica.
func CreateAppointment(ctx context.Context, httpClient HTTPClient, baseURL string, req types.CreateAppointmentRequest) (*types.Appointment, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	if err := types.ValidateRUT(req.Usuario); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s%s/citas/", baseURL, apiPrefix)
	httpReq, err := newRequest(ctx, http.MethodPost, u, req)
	if err != nil {
		return nil, err
	}
	var a types.Appointment
	if err := do(httpClient, httpReq, "create appointment", &a); err != nil {
		return nil, err
	}
	return &a, nil
}

// DeleteAppointment removes appointment id owned by rut.
func DeleteAppointment(ctx context.Context, httpClient HTTPClient, baseURL, rut string, id int64) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if err := types.ValidateRUT(rut); err != nil {
		return err
	}
	u := fmt.Sprintf("%s%s/citas/%s/%d/", baseURL, apiPrefix, url.PathEscape(rut), id)
	httpReq, err := newRequest(ctx, http.MethodDelete, u, nil)
	if err != nil {
		return err
	}
	return do(httpClient, httpReq, "delete appointment", nil)
}
