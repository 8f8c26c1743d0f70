// Package app wires the SDK, the local state store and the session for the
// CLI and the MCP server.
package app

import (
	"context"
	"fmt"
	"time"

	"github.com/rs/zerolog"

	"github.com/asodi/tracker/client"
	"github.com/asodi/tracker/health"
	"github.com/asodi/tracker/internal/config"
	"github.com/asodi/tracker/localstate"
	"github.com/asodi/tracker/session"
)

// checkTimeout bounds a single health check.
const checkTimeout = 2 * time.Second

// App is one process's view of the tracker: the API client, the persisted
// session and the login flow that drives its gate.
type App struct {
	Config  *config.Config
	Client  *client.Client
	Store   *localstate.SQLiteStore
	Session *session.Context
	Flow    *session.LoginFlow

	log zerolog.Logger
}

// Open builds the client, opens the state database and restores the
// session. The gate starts unauthenticated; call Flow.Resume to re-enter.
func Open(ctx context.Context, cfg *config.Config, log zerolog.Logger, nav session.Navigator) (*App, error) {
	c, err := client.New(cfg.BaseURL,
		client.WithHTTPTimeout(cfg.HTTPTimeout),
		client.WithDebugLogging(cfg.Debug),
	)
	if err != nil {
		return nil, fmt.Errorf("create client: %w", err)
	}

	path, err := localstate.DBPath(cfg.StateDir)
	if err != nil {
		_ = c.Close()
		return nil, err
	}
	store, err := localstate.OpenSQLite(path)
	if err != nil {
		_ = c.Close()
		return nil, err
	}

	sess, err := session.Open(ctx, store, session.NewGate())
	if err != nil {
		_ = store.Close()
		_ = c.Close()
		return nil, err
	}

	log.Debug().Str("state_db", path).Str("user", sess.Snapshot().UserID).Msg("session restored")

	return &App{
		Config:  cfg,
		Client:  c,
		Store:   store,
		Session: sess,
		Flow: &session.LoginFlow{
			Session:   sess,
			Verifier:  session.UserListVerifier{Users: c},
			Profiles:  c,
			Navigator: nav,
		},
		log: log,
	}, nil
}

// Checkers returns the API and local store checks.
func (a *App) Checkers() []health.Checker {
	return []health.Checker{
		health.NewAPIChecker(a.Config.BaseURL, a.log, checkTimeout),
		health.NewStoreChecker(a.Store, a.log, checkTimeout),
	}
}

// Close releases the database and idle connections.
func (a *App) Close() error {
	_ = a.Client.Close()
	return a.Store.Close()
}
