package main

import (
	"context"
	"errors"
	"fmt"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/rs/zerolog"
	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/asodi/tracker/client"
	"github.com/asodi/tracker/internal/app"
	"github.com/asodi/tracker/internal/config"
	"github.com/asodi/tracker/session"
)

// commandTimeout bounds the network work of a single command.
const commandTimeout = 15 * time.Second

var errNeedsProfile = errors.New("medical profile missing, run `asodi profile complete`")

func main() {
	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := NewRootCmd().ExecuteContext(ctx); err != nil {
		log.Error().Err(err).Msg("command failed")
		fmt.Fprintln(os.Stderr, client.UserMessage(err))
		os.Exit(1)
	}
}

// cli holds the resolved configuration shared by every subcommand.
type cli struct {
	cfg *config.Config

	debug    bool
	baseURL  string
	platform string
	stateDir string
}

// NewRootCmd constructs the root CLI command; exposed for unit testing.
func NewRootCmd() *cobra.Command {
	c := &cli{}

	rootCmd := &cobra.Command{
		Use:           "asodi",
		Short:         "ASODI health tracker: session, medical profile and daily records",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			zerolog.TimeFieldFormat = zerolog.TimeFormatUnix
			log.Logger = log.Output(zerolog.ConsoleWriter{
				Out:        cmd.ErrOrStderr(),
				TimeFormat: "2006-01-02 15:04:05",
				NoColor:    true,
			})
			return c.load(cmd)
		},
	}

	rootCmd.PersistentFlags().BoolVarP(&c.debug, "debug", "d", false, "Enable verbose debug output")
	rootCmd.PersistentFlags().StringVar(&c.baseURL, "base-url", "", "ASODI API base URL (overrides ASODI_BASE_URL)")
	rootCmd.PersistentFlags().StringVar(&c.platform, "platform", "", "web, android or ios; picks the default base URL")
	rootCmd.PersistentFlags().StringVar(&c.stateDir, "state-dir", "", "Directory holding the local session database")

	rootCmd.AddCommand(c.newLoginCmd())
	rootCmd.AddCommand(c.newLogoutCmd())
	rootCmd.AddCommand(c.newStatusCmd())
	rootCmd.AddCommand(c.newRegisterCmd())
	rootCmd.AddCommand(c.newPasswordResetCmd())
	rootCmd.AddCommand(c.newProfileCmd())
	rootCmd.AddCommand(c.newWeightCmd())
	rootCmd.AddCommand(c.newPressureCmd())
	rootCmd.AddCommand(c.newAppointmentCmd())
	rootCmd.AddCommand(c.newAnnouncementsCmd())
	rootCmd.AddCommand(c.newSummaryCmd())
	rootCmd.AddCommand(c.newPingCmd())
	rootCmd.AddCommand(c.newDevServerCmd())

	return rootCmd
}

// load reads ASODI_* variables, then lets flags that were set win.
func (c *cli) load(cmd *cobra.Command) error {
	cfg, err := config.New()
	if err != nil {
		return err
	}
	flags := cmd.Flags()
	if flags.Changed("platform") {
		cfg.Platform = config.Platform(c.platform)
		if !flags.Changed("base-url") {
			cfg.BaseURL = ""
		}
	}
	if flags.Changed("base-url") {
		cfg.BaseURL = c.baseURL
	}
	if flags.Changed("state-dir") {
		cfg.StateDir = c.stateDir
	}
	if c.debug {
		cfg.Debug = true
	}
	if err := cfg.ResolveDefaults(); err != nil {
		return err
	}

	level := zerolog.InfoLevel
	if cfg.Debug {
		level = zerolog.DebugLevel
	}
	zerolog.SetGlobalLevel(level)
	log.Debug().Str("base_url", cfg.BaseURL).Str("platform", string(cfg.Platform)).Msg("debug logging enabled")

	c.cfg = cfg
	return nil
}

// open builds the app for one command. The navigator tells the user where
// to go when login stops at profile completion.
func (c *cli) open(cmd *cobra.Command) (*app.App, error) {
	nav := session.NavigatorFunc(func(rut string) {
		fmt.Fprintf(cmd.ErrOrStderr(), "No medical profile for %s yet; run `asodi profile complete`\n", rut)
	})
	return app.Open(cmd.Context(), c.cfg, log.Logger, nav)
}

// withTimeout derives the per-command network deadline.
func withTimeout(cmd *cobra.Command) (context.Context, context.CancelFunc) {
	return context.WithTimeout(cmd.Context(), commandTimeout)
}

// signedIn opens the app and resumes the stored session. Commands on the
// tracking screens only run once the gate is in the main flow.
func (c *cli) signedIn(cmd *cobra.Command) (*app.App, string, error) {
	a, err := c.open(cmd)
	if err != nil {
		return nil, "", err
	}
	ctx, cancel := withTimeout(cmd)
	defer cancel()

	a.Flow.Navigator = nil // errNeedsProfile already says where to go
	out, err := a.Flow.Resume(ctx)
	if err != nil {
		_ = a.Close()
		return nil, "", err
	}
	if out != session.OutcomeAuthenticated {
		_ = a.Close()
		return nil, "", errNeedsProfile
	}
	return a, a.Session.Snapshot().UserID, nil
}
