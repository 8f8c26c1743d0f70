package devapi

import (
	"time"

	"github.com/go-openapi/strfmt"

	"github.com/asodi/tracker/client"
)

// Demo account created by SeedDemo.
const (
	DemoRUT      = "11.111.111-1"
	DemoEmail    = "demo@asodi.cl"
	DemoPassword = "demo1234"
)

func day(t time.Time) strfmt.Date {
	return strfmt.Date(time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC))
}

// SeedDemo loads a demo user without a medical profile plus a couple of
// announcements running around today.
func SeedDemo(s *Store, today time.Time) error {
	if _, err := s.AddUser(client.User{
		RUT:             DemoRUT,
		Nombre:          "Demo",
		Apellido:        "ASODI",
		FechaNacimiento: day(time.Date(1970, 1, 1, 0, 0, 0, 0, time.UTC)),
		Correo:          DemoEmail,
		Password:        DemoPassword,
	}); err != nil {
		return err
	}
	s.AddAnnouncement(client.Announcement{
		Titulo:       "Operativo de toma de presión",
		Descripcion:  "Control gratuito en la sede de la asociación.",
		FechaInicio:  day(today.AddDate(0, 0, -7)),
		FechaTermino: day(today.AddDate(0, 0, 7)),
	})
	s.AddAnnouncement(client.Announcement{
		Titulo:       "Charla de alimentación",
		Descripcion:  "Nutricionista invitada, cupos limitados.",
		FechaInicio:  day(today),
		FechaTermino: day(today.AddDate(0, 1, 0)),
	})
	return nil
}
