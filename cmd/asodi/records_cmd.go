package main

import (
	"fmt"
	"io"
	"strconv"
	"text/tabwriter"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/spf13/cobra"

	"github.com/asodi/tracker/forms"
	"github.com/asodi/tracker/tracker"
)

func day(d strfmt.Date) string { return time.Time(d).Format(strfmt.RFC3339FullDate) }

func parseID(arg string) (int64, error) {
	id, err := strconv.ParseInt(arg, 10, 64)
	if err != nil || id <= 0 {
		return 0, fmt.Errorf("%w: id must be a positive whole number", forms.ErrValidation)
	}
	return id, nil
}

func table(w io.Writer, header string, rows func(tw *tabwriter.Writer)) error {
	tw := tabwriter.NewWriter(w, 0, 0, 2, ' ', 0)
	fmt.Fprintln(tw, header)
	rows(tw)
	return tw.Flush()
}

// --------------------------------------------------------------------
// Weights
// --------------------------------------------------------------------

func (c *cli) newWeightCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "weight", Short: "Track body weight"}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List weight entries",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, rut, err := c.signedIn(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := withTimeout(cmd)
			defer cancel()
			ws := tracker.NewWeights(a.Client, rut)
			if err := ws.Refresh(ctx); err != nil {
				return err
			}
			return table(cmd.OutOrStdout(), "ID\tFECHA\tPESO", func(tw *tabwriter.Writer) {
				for _, w := range ws.Records() {
					fmt.Fprintf(tw, "%d\t%s\t%d\n", w.ID, day(w.FechaRegistro), w.Peso)
				}
			})
		},
	})

	var form forms.WeightForm
	add := &cobra.Command{
		Use:   "add",
		Short: "Record a weight in whole kilograms",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := form.Build(""); err != nil {
				return err
			}
			a, rut, err := c.signedIn(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := withTimeout(cmd)
			defer cancel()
			w, err := tracker.NewWeights(a.Client, rut).Create(ctx, &form)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Weight %d saved: %d kg on %s\n", w.ID, w.Peso, day(w.FechaRegistro))
			return nil
		},
	}
	add.Flags().StringVar(&form.Peso, "peso", "", "Weight in kilograms")
	add.Flags().StringVar(&form.FechaRegistro, "fecha", "", "Date YYYY-MM-DD, defaults to today")
	cmd.AddCommand(add)

	cmd.AddCommand(c.newDeleteCmd("weight", func(a tracker.API, rut string) func(*cobra.Command, int64) error {
		return func(cmd *cobra.Command, id int64) error {
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			return tracker.NewWeights(a, rut).Delete(ctx, id)
		}
	}))

	return cmd
}

// --------------------------------------------------------------------
// Blood pressure
// --------------------------------------------------------------------

func (c *cli) newPressureCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "pressure", Short: "Track blood pressure"}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List blood pressure readings",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, rut, err := c.signedIn(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := withTimeout(cmd)
			defer cancel()
			ps := tracker.NewPressures(a.Client, rut)
			if err := ps.Refresh(ctx); err != nil {
				return err
			}
			return table(cmd.OutOrStdout(), "ID\tFECHA\tSISTOLICA\tDIASTOLICA\tPULSO", func(tw *tabwriter.Writer) {
				for _, p := range ps.Records() {
					fmt.Fprintf(tw, "%d\t%s\t%d\t%d\t%d\n", p.ID, day(p.FechaRegistro),
						p.PresionSistolica, p.PresionDiastolica, p.FrecuenciaCardiaca)
				}
			})
		},
	})

	var form forms.PressureForm
	add := &cobra.Command{
		Use:   "add",
		Short: "Record a blood pressure reading",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := form.Build(""); err != nil {
				return err
			}
			a, rut, err := c.signedIn(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := withTimeout(cmd)
			defer cancel()
			p, err := tracker.NewPressures(a.Client, rut).Create(ctx, &form)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Pressure %d saved: %d/%d, pulse %d on %s\n",
				p.ID, p.PresionSistolica, p.PresionDiastolica, p.FrecuenciaCardiaca, day(p.FechaRegistro))
			return nil
		},
	}
	add.Flags().StringVar(&form.Sistolica, "sistolica", "", "Systolic pressure")
	add.Flags().StringVar(&form.Diastolica, "diastolica", "", "Diastolic pressure")
	add.Flags().StringVar(&form.FrecuenciaCardiaca, "pulso", "", "Heart rate")
	add.Flags().StringVar(&form.FechaRegistro, "fecha", "", "Date YYYY-MM-DD, defaults to today")
	cmd.AddCommand(add)

	cmd.AddCommand(c.newDeleteCmd("pressure", func(a tracker.API, rut string) func(*cobra.Command, int64) error {
		return func(cmd *cobra.Command, id int64) error {
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			return tracker.NewPressures(a, rut).Delete(ctx, id)
		}
	}))

	return cmd
}

// --------------------------------------------------------------------
// Appointments
// --------------------------------------------------------------------

func (c *cli) newAppointmentCmd() *cobra.Command {
	cmd := &cobra.Command{Use: "appointment", Short: "Track medical appointments"}

	cmd.AddCommand(&cobra.Command{
		Use:   "list",
		Short: "List medical appointments",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, rut, err := c.signedIn(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := withTimeout(cmd)
			defer cancel()
			as := tracker.NewAppointments(a.Client, rut)
			if err := as.Refresh(ctx); err != nil {
				return err
			}
			return table(cmd.OutOrStdout(), "ID\tFECHA\tHORA\tMEDICO\tMOTIVO", func(tw *tabwriter.Writer) {
				for _, ap := range as.Records() {
					fmt.Fprintf(tw, "%d\t%s\t%s\t%s\t%s\n", ap.ID, day(ap.Fecha), ap.Hora, ap.NombreMedico, ap.MotivoConsulta)
				}
			})
		},
	})

	var form forms.AppointmentForm
	add := &cobra.Command{
		Use:   "add",
		Short: "Schedule a medical appointment",
		RunE: func(cmd *cobra.Command, args []string) error {
			if _, err := form.Build(""); err != nil {
				return err
			}
			a, rut, err := c.signedIn(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := withTimeout(cmd)
			defer cancel()
			ap, err := tracker.NewAppointments(a.Client, rut).Create(ctx, &form)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Appointment %d saved: %s %s with %s\n", ap.ID, day(ap.Fecha), ap.Hora, ap.NombreMedico)
			return nil
		},
	}
	add.Flags().StringVar(&form.Fecha, "fecha", "", "Date YYYY-MM-DD, defaults to today")
	add.Flags().StringVar(&form.Hora, "hora", "", "Time HH:MM")
	add.Flags().StringVar(&form.NombreMedico, "medico", "", "Doctor's name")
	add.Flags().StringVar(&form.MotivoConsulta, "motivo", "", "Reason for the visit")
	cmd.AddCommand(add)

	cmd.AddCommand(c.newDeleteCmd("appointment", func(a tracker.API, rut string) func(*cobra.Command, int64) error {
		return func(cmd *cobra.Command, id int64) error {
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			return tracker.NewAppointments(a, rut).Delete(ctx, id)
		}
	}))

	return cmd
}

// newDeleteCmd builds "<kind> delete ID". bind returns the delete call for
// the signed-in user.
func (c *cli) newDeleteCmd(kind string, bind func(a tracker.API, rut string) func(*cobra.Command, int64) error) *cobra.Command {
	return &cobra.Command{
		Use:   "delete ID",
		Short: fmt.Sprintf("Delete a %s by id", kind),
		Args:  cobra.ExactArgs(1),
		RunE: func(cmd *cobra.Command, args []string) error {
			id, err := parseID(args[0])
			if err != nil {
				return err
			}
			a, rut, err := c.signedIn(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := bind(a.Client, rut)(cmd, id); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Deleted %s %d\n", kind, id)
			return nil
		},
	}
}
