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

// AnnouncementLister lists public announcements.
type AnnouncementLister interface {
	ListAnnouncements(ctx context.Context) ([]client.Announcement, error)
}

// AnnouncementHandler exposes list_announcements.
type AnnouncementHandler struct {
	api AnnouncementLister
}

func NewAnnouncementHandler(api AnnouncementLister) *AnnouncementHandler {
	return &AnnouncementHandler{api: api}
}

// RegisterTools registers list_announcements.
func (ah *AnnouncementHandler) RegisterTools(s *server.MCPServer) error {
	s.AddTool(mcp.NewTool("list_announcements",
		mcp.WithDescription("List the announcements published by the association"),
	), ah.handleListAnnouncements)
	return nil
}

func (ah *AnnouncementHandler) handleListAnnouncements(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	list, err := ah.api.ListAnnouncements(ctx)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("list_announcements failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to list announcements: %s", client.UserMessage(err))), nil
	}
	if list == nil {
		list = []client.Announcement{}
	}
	log.Debug().Int("count", len(list)).Dur("elapsed", time.Since(start)).Msg("list_announcements completed")
	return jsonResult(list)
}
