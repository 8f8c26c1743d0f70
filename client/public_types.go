package client

import "github.com/asodi/tracker/client/internal/types"

// Public type aliases so SDK consumers can import only the client package.
type (
	// Requests
	CreateUserRequest        = types.CreateUserRequest
	CreateWeightRequest      = types.CreateWeightRequest
	CreatePressureRequest    = types.CreatePressureRequest
	CreateAppointmentRequest = types.CreateAppointmentRequest

	// Domain entities
	User           = types.User
	Credential     = types.Credential
	Sex            = types.Sex
	Conditions     = types.Conditions
	MedicalProfile = types.MedicalProfile
	Weight         = types.Weight
	Pressure       = types.Pressure
	Appointment    = types.Appointment
	Announcement   = types.Announcement
)

const (
	SexMale   = types.SexMale
	SexFemale = types.SexFemale
)
