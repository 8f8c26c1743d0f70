package main

import (
	"fmt"
	"strings"

	"github.com/spf13/cobra"

	"github.com/asodi/tracker/forms"
	"github.com/asodi/tracker/session"
)

func (c *cli) newLoginCmd() *cobra.Command {
	var email, password string

	cmd := &cobra.Command{
		Use:   "login",
		Short: "Log in with email and password",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := withTimeout(cmd)
			defer cancel()
			out, err := a.Flow.Login(ctx, email, password)
			if err != nil {
				return err
			}
			rut := a.Session.Snapshot().UserID
			switch out {
			case session.OutcomeAuthenticated:
				fmt.Fprintf(cmd.OutOrStdout(), "Logged in as %s\n", rut)
			case session.OutcomeNeedsProfile:
				fmt.Fprintf(cmd.OutOrStdout(), "Credentials accepted for %s; medical profile pending\n", rut)
			}
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (required)")
	cmd.Flags().StringVar(&password, "password", "", "Account password (required)")
	_ = cmd.MarkFlagRequired("email")
	_ = cmd.MarkFlagRequired("password")

	return cmd
}

func (c *cli) newLogoutCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "logout",
		Short: "Forget the stored session",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			if err := a.Session.Logout(cmd.Context()); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Logged out")
			return nil
		},
	}
}

func (c *cli) newStatusCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "status",
		Short: "Show the stored user and whether the main flow can be entered",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			w := cmd.OutOrStdout()
			rut := a.Session.Snapshot().UserID
			if rut == "" {
				fmt.Fprintln(w, "Not logged in")
				return nil
			}

			ctx, cancel := withTimeout(cmd)
			defer cancel()
			a.Flow.Navigator = nil
			out, err := a.Flow.Resume(ctx)
			if err != nil {
				return err
			}
			fmt.Fprintf(w, "user: %s\nstate: %s\nroot: %s\n", rut, out, a.Session.Gate().Root())
			return nil
		},
	}
}

func (c *cli) newRegisterCmd() *cobra.Command {
	var form forms.RegisterForm

	cmd := &cobra.Command{
		Use:   "register",
		Short: "Create a new account",
		RunE: func(cmd *cobra.Command, args []string) error {
			req, err := form.Build()
			if err != nil {
				return err
			}
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := withTimeout(cmd)
			defer cancel()
			u, err := a.Client.CreateUser(ctx, req)
			if err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Account created for %s %s (%s)\n", u.Nombre, u.Apellido, u.RUT)
			return nil
		},
	}

	cmd.Flags().StringVar(&form.RUT, "rut", "", "RUT, e.g. 12.345.678-9")
	cmd.Flags().StringVar(&form.Nombre, "nombre", "", "First name")
	cmd.Flags().StringVar(&form.Apellido, "apellido", "", "Last name")
	cmd.Flags().StringVar(&form.FechaNacimiento, "fecha-nacimiento", "", "Birth date YYYY-MM-DD")
	cmd.Flags().StringVar(&form.Correo, "correo", "", "Email")
	cmd.Flags().StringVar(&form.Password, "password", "", "Password")

	return cmd
}

func (c *cli) newPasswordResetCmd() *cobra.Command {
	var email string

	cmd := &cobra.Command{
		Use:   "password-reset",
		Short: "Ask the association to mail a password reset link",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := withTimeout(cmd)
			defer cancel()
			if err := a.Client.RequestPasswordReset(ctx, strings.TrimSpace(email)); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "If %s has an account, a reset link is on its way\n", email)
			return nil
		},
	}

	cmd.Flags().StringVar(&email, "email", "", "Account email (required)")
	_ = cmd.MarkFlagRequired("email")

	return cmd
}
