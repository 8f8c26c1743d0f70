package api

import (
	"context"
	"fmt"
	"net/http"
	"strings"

	"github.com/asodi/tracker/client/internal/types"
)

// RequestPasswordReset asks the API to send a reset link to email. The
// endpoint lives outside the versioned resource prefix.
func RequestPasswordReset(ctx context.Context, httpClient HTTPClient, baseURL, email string) error {
	if err := ctx.Err(); err != nil {
		return err
	}
	if strings.TrimSpace(email) == "" {
		return fmt.Errorf("%w: email is required", types.ErrValidation)
	}
	u := fmt.Sprintf("%s/api/password_reset/", baseURL)
	httpReq, err := newRequest(ctx, http.MethodPost, u, types.PasswordResetRequest{Email: email})
	if err != nil {
		return err
	}
	return do(httpClient, httpReq, "password reset", nil)
}
