package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"sort"
	"text/tabwriter"
	"time"

	"github.com/rs/zerolog/log"
	"github.com/spf13/cobra"

	"github.com/asodi/tracker/client"
	"github.com/asodi/tracker/health"
	"github.com/asodi/tracker/internal/devapi"
	"github.com/asodi/tracker/summary"
	"github.com/asodi/tracker/tracker"
)

func (c *cli) newAnnouncementsCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "announcements",
		Short: "List the association's announcements",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := withTimeout(cmd)
			defer cancel()
			list, err := a.Client.ListAnnouncements(ctx)
			if err != nil {
				return err
			}
			return table(cmd.OutOrStdout(), "DESDE\tHASTA\tTITULO", func(tw *tabwriter.Writer) {
				for _, an := range list {
					fmt.Fprintf(tw, "%s\t%s\t%s\n", day(an.FechaInicio), day(an.FechaTermino), an.Titulo)
				}
			})
		},
	}
}

func (c *cli) newSummaryCmd() *cobra.Command {
	var kind string
	var month, year int

	cmd := &cobra.Command{
		Use:   "summary",
		Short: "Print the monthly chart series and min/max/average as JSON",
		RunE: func(cmd *cobra.Command, args []string) error {
			now := time.Now()
			if month == 0 {
				month = int(now.Month())
			}
			if year == 0 {
				year = now.Year()
			}
			if month < 1 || month > 12 {
				return fmt.Errorf("%w: month must be between 1 and 12", client.ErrValidation)
			}
			if kind != "weight" && kind != "pressure" {
				return fmt.Errorf("%w: kind must be weight or pressure", client.ErrValidation)
			}

			a, rut, err := c.signedIn(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := withTimeout(cmd)
			defer cancel()
			if kind == "weight" {
				ws := tracker.NewWeights(a.Client, rut)
				if err := ws.Refresh(ctx); err != nil {
					return err
				}
				return printJSON(cmd, summary.Weights(ws.Records(), time.Month(month), year))
			}
			ps := tracker.NewPressures(a.Client, rut)
			if err := ps.Refresh(ctx); err != nil {
				return err
			}
			return printJSON(cmd, summary.Pressures(ps.Records(), time.Month(month), year))
		},
	}

	cmd.Flags().StringVar(&kind, "kind", "weight", "weight or pressure")
	cmd.Flags().IntVar(&month, "month", 0, "Month 1-12, defaults to the current month")
	cmd.Flags().IntVar(&year, "year", 0, "Year, defaults to the current year")
	return cmd
}

func (c *cli) newPingCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "ping",
		Short: "Check that the API and the local state store answer",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := withTimeout(cmd)
			defer cancel()
			results := health.PingAll(ctx, a.Checkers()...)

			names := make([]string, 0, len(results))
			for name := range results {
				names = append(names, name)
			}
			sort.Strings(names)

			var failed []string
			w := cmd.OutOrStdout()
			for _, name := range names {
				if err := results[name]; err != nil {
					fmt.Fprintf(w, "%s: DOWN (%v)\n", name, err)
					failed = append(failed, name)
					continue
				}
				fmt.Fprintf(w, "%s: UP\n", name)
			}
			if len(failed) > 0 {
				return fmt.Errorf("unhealthy: %v", failed)
			}
			return nil
		},
	}
}

func (c *cli) newDevServerCmd() *cobra.Command {
	var addr string
	var seed bool

	cmd := &cobra.Command{
		Use:   "devserver",
		Short: "Run an in-memory ASODI API for local development",
		RunE: func(cmd *cobra.Command, args []string) error {
			if !cmd.Flags().Changed("addr") {
				addr = c.cfg.DevAddr
			}
			store := devapi.NewStore()
			if seed {
				if err := devapi.SeedDemo(store, time.Now()); err != nil {
					return err
				}
				log.Info().Str("email", devapi.DemoEmail).Str("password", devapi.DemoPassword).Msg("demo account seeded")
			}

			srv := &http.Server{
				Addr:              addr,
				Handler:           devapi.New(store, log.Logger).Handler(),
				ReadHeaderTimeout: 5 * time.Second,
			}
			errCh := make(chan error, 1)
			go func() {
				log.Info().Str("addr", addr).Msg("dev API listening")
				errCh <- srv.ListenAndServe()
			}()

			select {
			case err := <-errCh:
				if errors.Is(err, http.ErrServerClosed) {
					return nil
				}
				return err
			case <-cmd.Context().Done():
			}

			shutdownCtx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
			defer cancel()
			log.Info().Msg("shutting down dev API")
			return srv.Shutdown(shutdownCtx)
		},
	}

	cmd.Flags().StringVar(&addr, "addr", "", "Listen address (defaults to ASODI_DEV_ADDR)")
	cmd.Flags().BoolVar(&seed, "seed", true, "Load the demo account and announcements")
	return cmd
}
