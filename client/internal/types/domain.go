package types

import "github.com/go-openapi/strfmt"

// ------------------------------
// Core Domain Entities
// ------------------------------

// User is an account as returned by the usuarios collection.
type User struct {
	RUT             string      `json:"rut"`
	Nombre          string      `json:"nombre"`
	Apellido        string      `json:"apellido"`
	FechaNacimiento strfmt.Date `json:"fecha_nacimiento"`
	Correo          string      `json:"correo"`
	Password        string      `json:"password,omitempty"`
}

// Credential is the part of a User the login check reads. Decoding only
// these fields keeps one malformed account from breaking every login.
type Credential struct {
	RUT      string `json:"rut"`
	Correo   string `json:"correo"`
	Password string `json:"password"`
}

// Sex is the enumerated sex recorded on a medical profile.
type Sex string

const (
	SexMale   Sex = "M"
	SexFemale Sex = "F"
)

// Valid reports whether s is one of the accepted values.
func (s Sex) Valid() bool { return s == SexMale || s == SexFemale }

// Conditions is the closed set of condition flags on a medical profile.
type Conditions struct {
	Diabetes          bool `json:"diabetes"`
	Hipertension      bool `json:"hipertension"`
	EnfermedadCorazon bool `json:"enfermedad_corazon"`
	AccidenteVascular bool `json:"accidente_vascular"`
	Trombosis         bool `json:"trombosis"`
	Epilepsia         bool `json:"epilepsia"`
	Alergias          bool `json:"alergias"`
}

// MedicalProfile is the one-per-user intake record ("ficha").
type MedicalProfile struct {
	Usuario               string  `json:"usuario"`
	Edad                  int     `json:"edad"`
	Estatura              float64 `json:"estatura"`
	Sexo                  Sex     `json:"sexo"`
	HospitalPerteneciente string  `json:"hospital_perteneciente"`
	Conditions
	NumeroContacto int64 `json:"numero_contacto"`
}

// Weight is a body weight entry in whole kilograms.
type Weight struct {
	ID            int64       `json:"id_peso"`
	Peso          int         `json:"peso"`
	FechaRegistro strfmt.Date `json:"fecha_registro"`
	Usuario       string      `json:"usuario"`
}

// RecordID returns the server-assigned identifier.
func (w Weight) RecordID() int64 { return w.ID }

// RecordDate is the day the weight was taken.
func (w Weight) RecordDate() strfmt.Date { return w.FechaRegistro }

// Pressure is a blood pressure reading.
type Pressure struct {
	ID                 int64       `json:"id_presion"`
	PresionSistolica   int         `json:"presion_sistolica"`
	PresionDiastolica  int         `json:"presion_diastolica"`
	FrecuenciaCardiaca int         `json:"frecuenciacardiaca"`
	FechaRegistro      strfmt.Date `json:"fecha_registro"`
	Usuario            string      `json:"usuario"`
}

// RecordID returns the server-assigned identifier.
func (p Pressure) RecordID() int64 { return p.ID }

// RecordDate is the day the reading was taken.
func (p Pressure) RecordDate() strfmt.Date { return p.FechaRegistro }

// Appointment is a scheduled medical appointment. Hora is HH:MM:SS.
type Appointment struct {
	ID             int64       `json:"id_cita_medica"`
	Fecha          strfmt.Date `json:"fecha"`
	Hora           string      `json:"hora"`
	NombreMedico   string      `json:"nombre_medico"`
	MotivoConsulta string      `json:"motivo_consulta"`
	Usuario        string      `json:"usuario"`
}

// RecordID returns the server-assigned identifier.
func (a Appointment) RecordID() int64 { return a.ID }

// RecordDate is the day of the appointment.
func (a Appointment) RecordDate() strfmt.Date { return a.Fecha }

// Announcement is a public notice published by the association.
type Announcement struct {
	ID           int64       `json:"id_anuncio"`
	Titulo       string      `json:"titulo"`
	Descripcion  string      `json:"descripcion"`
	FechaInicio  strfmt.Date `json:"fecha_inicio"`
	FechaTermino strfmt.Date `json:"fecha_termino"`
	Imagen       string      `json:"imagen,omitempty"`
}
