package types

import "github.com/go-openapi/strfmt"

// ------------------------------
// Request Types
// ------------------------------

// CreateUserRequest holds parameters for a new account.
type CreateUserRequest struct {
	RUT             string      `json:"rut"`
	Nombre          string      `json:"nombre"`
	Apellido        string      `json:"apellido"`
	FechaNacimiento strfmt.Date `json:"fecha_nacimiento"`
	Correo          string      `json:"correo"`
	Password        string      `json:"password"`
}

// CreateWeightRequest holds a new weight entry. ID is assigned by the server.
type CreateWeightRequest struct {
	Peso          int         `json:"peso"`
	FechaRegistro strfmt.Date `json:"fecha_registro"`
	Usuario       string      `json:"usuario"`
}

// CreatePressureRequest holds a new blood pressure reading.
type CreatePressureRequest struct {
	PresionSistolica   int         `json:"presion_sistolica"`
	PresionDiastolica  int         `json:"presion_diastolica"`
	FrecuenciaCardiaca int         `json:"frecuenciacardiaca"`
	FechaRegistro      strfmt.Date `json:"fecha_registro"`
	Usuario            string      `json:"usuario"`
}

// CreateAppointmentRequest holds a new appointment.
type CreateAppointmentRequest struct {
	Fecha          strfmt.Date `json:"fecha"`
	Hora           string      `json:"hora"`
	NombreMedico   string      `json:"nombre_medico"`
	MotivoConsulta string      `json:"motivo_consulta"`
	Usuario        string      `json:"usuario"`
}

// PasswordResetRequest asks the API to mail a reset link.
type PasswordResetRequest struct {
	Email string `json:"email"`
}
