package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/asodi/tracker/client"
)

// ProfileReader fetches a medical profile.
type ProfileReader interface {
	GetProfile(ctx context.Context, rut string) (*client.MedicalProfile, error)
}

// ProfileHandler exposes get_profile for the signed-in user.
type ProfileHandler struct {
	api   ProfileReader
	owner string
}

// NewProfileHandler returns a handler reading owner's profile.
func NewProfileHandler(api ProfileReader, owner string) *ProfileHandler {
	return &ProfileHandler{api: api, owner: owner}
}

// RegisterTools registers get_profile.
func (ph *ProfileHandler) RegisterTools(s *server.MCPServer) error {
	s.AddTool(mcp.NewTool("get_profile",
		mcp.WithDescription("Get the medical profile (ficha) of the signed-in user"),
	), ph.handleGetProfile)
	return nil
}

func (ph *ProfileHandler) handleGetProfile(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	p, err := ph.api.GetProfile(ctx, ph.owner)
	if err != nil {
		log.Error().Err(err).Str("rut", ph.owner).Dur("elapsed", time.Since(start)).Msg("get_profile failed")
		if client.IsNotFound(err) {
			return mcp.NewToolResultError("no medical profile yet, complete it with `asodi profile complete`"), nil
		}
		return mcp.NewToolResultError(fmt.Sprintf("failed to get profile: %s", client.UserMessage(err))), nil
	}
	log.Debug().Str("rut", ph.owner).Dur("elapsed", time.Since(start)).Msg("get_profile completed")
	return jsonResult(p)
}
