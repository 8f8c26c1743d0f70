// Package config loads runtime settings from ASODI_* environment variables.
package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/kelseyhightower/envconfig"
	"github.com/rs/zerolog/log"
)

// Platform is the runtime the API base URL is derived for.
type Platform string

const (
	PlatformWeb     Platform = "web"
	PlatformAndroid Platform = "android"
	PlatformIOS     Platform = "ios"
)

// defaultBaseURLs maps each platform to where the API is reachable from it.
// The Android emulator sees the host loopback as 10.0.2.2.
var defaultBaseURLs = map[Platform]string{
	PlatformWeb:     "http://127.0.0.1:8000",
	PlatformAndroid: "http://10.0.2.2:8000",
	PlatformIOS:     "http://localhost:8000",
}

// Config holds client, CLI and MCP server settings.
// Environment variables are parsed with the ASODI_ prefix.
type Config struct {
	Platform    Platform      `envconfig:"PLATFORM" default:"web"`
	BaseURL     string        `envconfig:"BASE_URL" default:""`
	HTTPTimeout time.Duration `envconfig:"HTTP_TIMEOUT" default:"30s"`

	// Local state; empty means ~/.asodi
	StateDir string `envconfig:"STATE_DIR" default:""`

	LogLevel string `envconfig:"LOG_LEVEL" default:"info"`
	Debug    bool   `envconfig:"DEBUG" default:"false"`

	// Dev API listen address
	DevAddr string `envconfig:"DEV_ADDR" default:"127.0.0.1:8000"`

	// MCP streamable HTTP address; empty serves over stdio
	MCPAddr        string        `envconfig:"MCP_ADDR" default:""`
	HealthInterval time.Duration `envconfig:"HEALTH_INTERVAL" default:"30s"`
}

// ResolveDefaults validates Platform and derives BaseURL when it is empty.
func (c *Config) ResolveDefaults() error {
	c.Platform = Platform(strings.ToLower(string(c.Platform)))
	def, ok := defaultBaseURLs[c.Platform]
	if !ok {
		return fmt.Errorf("unsupported PLATFORM: %s", c.Platform)
	}
	if c.BaseURL == "" {
		c.BaseURL = def
	}
	c.BaseURL = strings.TrimRight(c.BaseURL, "/")
	if c.HTTPTimeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be > 0, got %s", c.HTTPTimeout)
	}
	if c.HealthInterval <= 0 {
		return fmt.Errorf("HEALTH_INTERVAL must be > 0, got %s", c.HealthInterval)
	}
	return nil
}

// New creates a Config by parsing environment variables prefixed with ASODI_,
// e.g. ASODI_PLATFORM, ASODI_BASE_URL.
func New() (*Config, error) {
	var cfg Config

	if err := envconfig.Process("ASODI", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process environment variables: %w", err)
	}

	if err := cfg.ResolveDefaults(); err != nil {
		return nil, err
	}

	log.Debug().
		Str("platform", string(cfg.Platform)).
		Str("base_url", cfg.BaseURL).
		Dur("http_timeout", cfg.HTTPTimeout).
		Str("state_dir", cfg.StateDir).
		Str("log_level", cfg.LogLevel).
		Bool("debug", cfg.Debug).
		Str("mcp_addr", cfg.MCPAddr).
		Msg("Configuration loaded")

	return &cfg, nil
}
