// Package forms turns raw text input into API requests. Each form validates
// every field locally so a bad entry never reaches the network.
package forms

import (
	"fmt"
	"regexp"
	"strconv"
	"strings"
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/asodi/tracker/client"
)

// ErrValidation is the sentinel wrapped by every form error. It is the same
// value as client.ErrValidation.
var ErrValidation = client.ErrValidation

// now is the clock used for date fields left blank (they default to today).
var now = time.Now

// FieldError names the input that failed validation.
type FieldError struct {
	Field  string
	Reason string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s %s", ErrValidation, e.Field, e.Reason)
}

func (e *FieldError) Unwrap() error { return ErrValidation }

func invalid(field, reason string) error {
	return &FieldError{Field: field, Reason: reason}
}

func required(field, value string) (string, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		return "", invalid(field, "is required")
	}
	return v, nil
}

func positiveInt(field, value string) (int, error) {
	v, err := required(field, value)
	if err != nil {
		return 0, err
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return 0, invalid(field, "must be a whole number")
	}
	if n <= 0 {
		return 0, invalid(field, "must be greater than zero")
	}
	return n, nil
}

// date parses YYYY-MM-DD. Blank input means today when defaultToday is set.
func date(field, value string, defaultToday bool) (strfmt.Date, error) {
	v := strings.TrimSpace(value)
	if v == "" {
		if defaultToday {
			t := now()
			return strfmt.Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)), nil
		}
		return strfmt.Date{}, invalid(field, "is required")
	}
	t, err := time.Parse(strfmt.RFC3339FullDate, v)
	if err != nil {
		return strfmt.Date{}, invalid(field, "must be a date in YYYY-MM-DD form")
	}
	return strfmt.Date(t), nil
}

// ------------------------------
// Tracked records
// ------------------------------

// WeightForm is the weight entry screen.
type WeightForm struct {
	Peso          string
	FechaRegistro string // blank means today
}

func (f *WeightForm) Build(owner string) (client.CreateWeightRequest, error) {
	peso, err := positiveInt("peso", f.Peso)
	if err != nil {
		return client.CreateWeightRequest{}, err
	}
	fecha, err := date("fecha_registro", f.FechaRegistro, true)
	if err != nil {
		return client.CreateWeightRequest{}, err
	}
	return client.CreateWeightRequest{Peso: peso, FechaRegistro: fecha, Usuario: owner}, nil
}

func (f *WeightForm) Reset() { *f = WeightForm{} }

// PressureForm is the blood pressure entry screen.
type PressureForm struct {
	Sistolica          string
	Diastolica         string
	FrecuenciaCardiaca string
	FechaRegistro      string // blank means today
}

func (f *PressureForm) Build(owner string) (client.CreatePressureRequest, error) {
	var req client.CreatePressureRequest
	var err error
	if req.PresionSistolica, err = positiveInt("presion_sistolica", f.Sistolica); err != nil {
		return client.CreatePressureRequest{}, err
	}
	if req.PresionDiastolica, err = positiveInt("presion_diastolica", f.Diastolica); err != nil {
		return client.CreatePressureRequest{}, err
	}
	if req.FrecuenciaCardiaca, err = positiveInt("frecuenciacardiaca", f.FrecuenciaCardiaca); err != nil {
		return client.CreatePressureRequest{}, err
	}
	if req.FechaRegistro, err = date("fecha_registro", f.FechaRegistro, true); err != nil {
		return client.CreatePressureRequest{}, err
	}
	req.Usuario = owner
	return req, nil
}

func (f *PressureForm) Reset() { *f = PressureForm{} }

var horaPattern = regexp.MustCompile(`^([01]\d|2[0-3]):([0-5]\d)(:([0-5]\d))?$`)

// AppointmentForm is the medical appointment screen. Hora accepts HH:MM or
// HH:MM:SS and is sent as HH:MM:SS.
type AppointmentForm struct {
	Fecha          string // blank means today
	Hora           string
	NombreMedico   string
	MotivoConsulta string
}

func (f *AppointmentForm) Build(owner string) (client.CreateAppointmentRequest, error) {
	fecha, err := date("fecha", f.Fecha, true)
	if err != nil {
		return client.CreateAppointmentRequest{}, err
	}
	hora, err := normaliseHora(f.Hora)
	if err != nil {
		return client.CreateAppointmentRequest{}, err
	}
	medico, err := required("nombre_medico", f.NombreMedico)
	if err != nil {
		return client.CreateAppointmentRequest{}, err
	}
	motivo, err := required("motivo_consulta", f.MotivoConsulta)
	if err != nil {
		return client.CreateAppointmentRequest{}, err
	}
	return client.CreateAppointmentRequest{
		Fecha:          fecha,
		Hora:           hora,
		NombreMedico:   medico,
		MotivoConsulta: motivo,
		Usuario:        owner,
	}, nil
}

func (f *AppointmentForm) Reset() { *f = AppointmentForm{} }

func normaliseHora(value string) (string, error) {
	v, err := required("hora", value)
	if err != nil {
		return "", err
	}
	m := horaPattern.FindStringSubmatch(v)
	if m == nil {
		return "", invalid("hora", "must be HH:MM or HH:MM:SS")
	}
	sec := m[4]
	if sec == "" {
		sec = "00"
	}
	return m[1] + ":" + m[2] + ":" + sec, nil
}
