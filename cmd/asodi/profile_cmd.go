package main

import (
	"encoding/json"
	"fmt"

	"github.com/spf13/cobra"
	"github.com/spf13/pflag"

	"github.com/asodi/tracker/client"
	"github.com/asodi/tracker/forms"
	"github.com/asodi/tracker/session"
)

func (c *cli) newProfileCmd() *cobra.Command {
	cmd := &cobra.Command{
		Use:   "profile",
		Short: "Show, complete or update the medical profile",
	}
	cmd.AddCommand(c.newProfileShowCmd())
	cmd.AddCommand(c.newProfileCompleteCmd())
	cmd.AddCommand(c.newProfileUpdateCmd())
	return cmd
}

// profileFlags binds every profile field to flags on fs.
func profileFlags(fs *pflag.FlagSet, f *forms.ProfileForm) {
	fs.StringVar(&f.Edad, "edad", "", "Age in years")
	fs.StringVar(&f.Estatura, "estatura", "", "Height in metres, e.g. 1.72")
	fs.StringVar(&f.Sexo, "sexo", "", "M or F")
	fs.StringVar(&f.Hospital, "hospital", "", "Hospital the patient belongs to")
	fs.StringVar(&f.NumeroContacto, "contacto", "", "Contact phone number")
	fs.BoolVar(&f.Conditions.Diabetes, "diabetes", false, "Has diabetes")
	fs.BoolVar(&f.Conditions.Hipertension, "hipertension", false, "Has hypertension")
	fs.BoolVar(&f.Conditions.EnfermedadCorazon, "enfermedad-corazon", false, "Has heart disease")
	fs.BoolVar(&f.Conditions.AccidenteVascular, "accidente-vascular", false, "Had a stroke")
	fs.BoolVar(&f.Conditions.Trombosis, "trombosis", false, "Had thrombosis")
	fs.BoolVar(&f.Conditions.Epilepsia, "epilepsia", false, "Has epilepsy")
	fs.BoolVar(&f.Conditions.Alergias, "alergias", false, "Has allergies")
}

func printJSON(cmd *cobra.Command, v any) error {
	enc := json.NewEncoder(cmd.OutOrStdout())
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func (c *cli) newProfileShowCmd() *cobra.Command {
	return &cobra.Command{
		Use:   "show",
		Short: "Print the medical profile of the stored user",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			rut := a.Session.Snapshot().UserID
			if rut == "" {
				return session.ErrNoSession
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			p, err := a.Client.GetProfile(ctx, rut)
			if err != nil {
				if client.IsNotFound(err) {
					return errNeedsProfile
				}
				return err
			}
			return printJSON(cmd, p)
		},
	}
}

func (c *cli) newProfileCompleteCmd() *cobra.Command {
	var form forms.ProfileForm

	cmd := &cobra.Command{
		Use:   "complete",
		Short: "Create the first medical profile and enter the main flow",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, err := c.open(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			rut := a.Session.Snapshot().UserID
			if rut == "" {
				return session.ErrNoSession
			}
			ctx, cancel := withTimeout(cmd)
			defer cancel()
			if _, err := a.Flow.CompleteProfile(ctx, rut, &form); err != nil {
				return err
			}
			fmt.Fprintf(cmd.OutOrStdout(), "Medical profile saved; logged in as %s\n", rut)
			return nil
		},
	}

	profileFlags(cmd.Flags(), &form)
	return cmd
}

func (c *cli) newProfileUpdateCmd() *cobra.Command {
	var input forms.ProfileForm

	cmd := &cobra.Command{
		Use:   "update",
		Short: "Change fields of the existing medical profile",
		Long:  "Only the flags given are changed; every other field keeps its stored value.",
		RunE: func(cmd *cobra.Command, args []string) error {
			a, rut, err := c.signedIn(cmd)
			if err != nil {
				return err
			}
			defer a.Close()

			ctx, cancel := withTimeout(cmd)
			defer cancel()
			current, err := a.Client.GetProfile(ctx, rut)
			if err != nil {
				return err
			}
			form := forms.FromProfile(*current)
			mergeProfile(cmd.Flags(), &form, &input)

			p, err := form.Build(rut)
			if err != nil {
				return err
			}
			if _, err := a.Client.UpdateProfile(ctx, rut, p); err != nil {
				return err
			}
			fmt.Fprintln(cmd.OutOrStdout(), "Medical profile updated")
			return nil
		},
	}

	profileFlags(cmd.Flags(), &input)
	return cmd
}

// mergeProfile copies the fields whose flags were set from in to dst.
func mergeProfile(fs *pflag.FlagSet, dst, in *forms.ProfileForm) {
	set := func(name string, d *string, v string) {
		if fs.Changed(name) {
			*d = v
		}
	}
	set("edad", &dst.Edad, in.Edad)
	set("estatura", &dst.Estatura, in.Estatura)
	set("sexo", &dst.Sexo, in.Sexo)
	set("hospital", &dst.Hospital, in.Hospital)
	set("contacto", &dst.NumeroContacto, in.NumeroContacto)

	flag := func(name string, d *bool, v bool) {
		if fs.Changed(name) {
			*d = v
		}
	}
	flag("diabetes", &dst.Conditions.Diabetes, in.Conditions.Diabetes)
	flag("hipertension", &dst.Conditions.Hipertension, in.Conditions.Hipertension)
	flag("enfermedad-corazon", &dst.Conditions.EnfermedadCorazon, in.Conditions.EnfermedadCorazon)
	flag("accidente-vascular", &dst.Conditions.AccidenteVascular, in.Conditions.AccidenteVascular)
	flag("trombosis", &dst.Conditions.Trombosis, in.Conditions.Trombosis)
	flag("epilepsia", &dst.Conditions.Epilepsia, in.Conditions.Epilepsia)
	flag("alergias", &dst.Conditions.Alergias, in.Conditions.Alergias)
}
