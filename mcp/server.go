// Package mcp serves the signed-in user's tracker over the Model Context
// Protocol.
package mcp

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"

	"github.com/asodi/tracker/health"
	"github.com/asodi/tracker/internal/app"
	"github.com/asodi/tracker/internal/config"
	"github.com/asodi/tracker/mcp/internal/handlers"
	"github.com/asodi/tracker/session"
	"github.com/asodi/tracker/tracker"
)

const (
	ServerName    = "asodi-mcp"
	ServerVersion = "0.1.0"

	shutdownTimeout = 10 * time.Second
	httpReadTimeout = 5 * time.Second
	httpIdleTimeout = 120 * time.Second
	heartbeatPeriod = 30 * time.Second
	streamableRoute = "/mcp"
)

// ErrProfileIncomplete means the stored user has no medical profile, so the
// main flow cannot be entered.
var ErrProfileIncomplete = errors.New("medical profile missing, run `asodi profile complete` first")

type toolRegisterer interface {
	RegisterTools(s *server.MCPServer) error
}

// NewServer builds the MCP server with every tool of the session registered.
// h may be nil.
func NewServer(a *app.App, set *tracker.Set, h *health.Service) (*server.MCPServer, error) {
	s := server.NewMCPServer(
		ServerName,
		ServerVersion,
		server.WithToolCapabilities(true),
	)

	owner := a.Session.Snapshot().UserID
	var reporter handlers.HealthReporter
	if h != nil {
		reporter = h
	}

	if err := registerHandler(s, handlers.NewRecordsHandler(set), "records"); err != nil {
		return nil, err
	}
	if err := registerHandler(s, handlers.NewProfileHandler(a.Client, owner), "profile"); err != nil {
		return nil, err
	}
	if err := registerHandler(s, handlers.NewAnnouncementHandler(a.Client), "announcement"); err != nil {
		return nil, err
	}
	if err := registerHandler(s, handlers.NewSummaryHandler(set), "summary"); err != nil {
		return nil, err
	}
	if err := registerHandler(s, handlers.NewSessionHandler(a.Session, reporter), "session"); err != nil {
		return nil, err
	}
	return s, nil
}

func registerHandler(s *server.MCPServer, handler toolRegisterer, name string) error {
	if err := handler.RegisterTools(s); err != nil {
		return fmt.Errorf("register %s tools: %w", name, err)
	}
	return nil
}

// Run resumes the stored session and serves tools until ctx ends (HTTP) or
// stdin closes (stdio). It refuses to start without an authenticated user.
func Run(ctx context.Context, cfg *config.Config, logger zerolog.Logger) error {
	a, err := app.Open(ctx, cfg, logger, nil)
	if err != nil {
		return err
	}
	defer func() {
		if err := a.Close(); err != nil {
			logger.Error().Err(err).Msg("close app")
		}
	}()

	outcome, err := a.Flow.Resume(ctx)
	if err != nil {
		return fmt.Errorf("resume session: %w", err)
	}
	if outcome != session.OutcomeAuthenticated {
		return ErrProfileIncomplete
	}
	owner := a.Session.Snapshot().UserID
	logger.Info().Str("user", owner).Msg("session resumed")

	set := tracker.NewSet(a.Client, owner)
	if err := set.Refresh(ctx); err != nil {
		// The lists refresh again on every list tool call.
		logger.Warn().Err(err).Msg("initial refresh failed")
	}

	hctx, cancel := context.WithCancel(ctx)
	defer cancel()
	hs := health.NewService(logger, a.Checkers()...)
	go hs.Start(hctx, cfg.HealthInterval)

	s, err := NewServer(a, set, hs)
	if err != nil {
		return err
	}

	if cfg.MCPAddr == "" {
		logger.Info().Msg("Starting ASODI MCP server (stdio transport)")
		return server.ServeStdio(s)
	}
	return serveHTTP(ctx, s, cfg.MCPAddr, logger)
}

func serveHTTP(ctx context.Context, s *server.MCPServer, addr string, logger zerolog.Logger) error {
	streamSrv := server.NewStreamableHTTPServer(
		s,
		server.WithEndpointPath(streamableRoute),
		server.WithHeartbeatInterval(heartbeatPeriod),
	)
	srv := &http.Server{
		Addr:         addr,
		Handler:      streamSrv,
		ReadTimeout:  httpReadTimeout,
		WriteTimeout: 0, // streaming responses stay open
		IdleTimeout:  httpIdleTimeout,
	}

	shutdownComplete := make(chan struct{})
	go func() {
		defer close(shutdownComplete)
		<-ctx.Done()
		logger.Info().Msg("Shutting down MCP HTTP server")

		shutdownCtx, cancel := context.WithTimeout(context.Background(), shutdownTimeout)
		defer cancel()
		if err := srv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("Error during HTTP server shutdown")
		}
		if err := streamSrv.Shutdown(shutdownCtx); err != nil {
			logger.Error().Err(err).Msg("Error during MCP server shutdown")
		}
	}()

	logger.Info().Str("addr", addr).Str("path", streamableRoute).Msg("Starting ASODI MCP server (Streamable HTTP)")
	if err := srv.ListenAndServe(); err != nil && !errors.Is(err, http.ErrServerClosed) {
		return fmt.Errorf("mcp http server: %w", err)
	}
	<-shutdownComplete
	logger.Info().Msg("MCP server shutdown complete")
	return nil
}
