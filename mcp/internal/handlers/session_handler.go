package handlers

import (
	"context"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"

	"github.com/asodi/tracker/session"
)

// HealthReporter reports cached component health.
type HealthReporter interface {
	IsHealthy() bool
	Components() map[string]bool
}

// SessionHandler exposes session_status.
type SessionHandler struct {
	sess   *session.Context
	health HealthReporter // optional
}

func NewSessionHandler(sess *session.Context, health HealthReporter) *SessionHandler {
	return &SessionHandler{sess: sess, health: health}
}

// RegisterTools registers session_status.
func (sh *SessionHandler) RegisterTools(s *server.MCPServer) error {
	s.AddTool(mcp.NewTool("session_status",
		mcp.WithDescription("Show the signed-in user, the active flow and the health of the API and local store"),
	), sh.handleSessionStatus)
	return nil
}

type sessionStatus struct {
	UserID        string          `json:"user_id"`
	Authenticated bool            `json:"authenticated"`
	Root          session.Root    `json:"root"`
	Healthy       *bool           `json:"healthy,omitempty"`
	Components    map[string]bool `json:"components,omitempty"`
}

func (sh *SessionHandler) handleSessionStatus(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	snap := sh.sess.Snapshot()
	out := sessionStatus{
		UserID:        snap.UserID,
		Authenticated: snap.Authenticated,
		Root:          sh.sess.Gate().Root(),
	}
	if sh.health != nil {
		ok := sh.health.IsHealthy()
		out.Healthy = &ok
		out.Components = sh.health.Components()
	}
	return jsonResult(out)
}
