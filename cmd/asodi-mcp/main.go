package main

import (
	"context"
	"os"
	"os/signal"
	"syscall"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"

	"github.com/asodi/tracker/internal/config"
	"github.com/asodi/tracker/internal/logger"
	"github.com/asodi/tracker/mcp"
)

func main() {
	cfg, err := config.New()
	if err != nil {
		log.Fatal().Err(err).Msg("Failed to load configuration")
	}

	lg := logger.New(mcp.ServerName)
	level := logger.ParseLevel(cfg.LogLevel)
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Logger = lg

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := mcp.Run(ctx, cfg, lg); err != nil {
		log.Error().Stack().Err(err).Msg("MCP server exited with error")
		os.Exit(1)
	}
}
