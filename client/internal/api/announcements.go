package api

import (
	"context"
	"fmt"
	"net/http"

	"github.com/asodi/tracker/client/internal/types"
)

// ListAnnouncements returns all published announcements.
func ListAnnouncements(ctx context.Context, httpClient HTTPClient, baseURL string) ([]types.Announcement, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}
	u := fmt.Sprintf("%s%s/anuncios/", baseURL, apiPrefix)
	httpReq, err := newRequest(ctx, http.MethodGet, u, nil)
	if err != nil {
		return nil, err
	}
	var out []types.Announcement
	if err := do(httpClient, httpReq, "list announcements", &out); err != nil {
		return nil, err
	}
	return out, nil
}
