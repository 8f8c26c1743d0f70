package forms

import (
	"strconv"
	"strings"

	"github.com/go-openapi/strfmt"

	"github.com/asodi/tracker/client"
)

// ProfileForm is the medical profile screen. Every field is required.
type ProfileForm struct {
	Edad           string
	Estatura       string // metres, "1.72" or "1,72"
	Sexo           string
	Hospital       string
	NumeroContacto string
	Conditions     client.Conditions
}

// Build validates the form into a profile owned by owner.
func (f *ProfileForm) Build(owner string) (client.MedicalProfile, error) {
	edad, err := positiveInt("edad", f.Edad)
	if err != nil {
		return client.MedicalProfile{}, err
	}

	est, err := required("estatura", f.Estatura)
	if err != nil {
		return client.MedicalProfile{}, err
	}
	estatura, err := strconv.ParseFloat(strings.Replace(est, ",", ".", 1), 64)
	if err != nil || estatura <= 0 {
		return client.MedicalProfile{}, invalid("estatura", "must be a positive number")
	}

	sexo := client.Sex(strings.ToUpper(strings.TrimSpace(f.Sexo)))
	if !sexo.Valid() {
		return client.MedicalProfile{}, invalid("sexo", "must be M or F")
	}

	hospital, err := required("hospital_perteneciente", f.Hospital)
	if err != nil {
		return client.MedicalProfile{}, err
	}

	num, err := required("numero_contacto", f.NumeroContacto)
	if err != nil {
		return client.MedicalProfile{}, err
	}
	contacto, err := strconv.ParseInt(strings.TrimPrefix(num, "+"), 10, 64)
	if err != nil || contacto <= 0 {
		return client.MedicalProfile{}, invalid("numero_contacto", "must be a phone number")
	}

	return client.MedicalProfile{
		Usuario:               owner,
		Edad:                  edad,
		Estatura:              estatura,
		Sexo:                  sexo,
		HospitalPerteneciente: hospital,
		Conditions:            f.Conditions,
		NumeroContacto:        contacto,
	}, nil
}

// FromProfile fills the form from an existing profile, for editing.
func FromProfile(p client.MedicalProfile) ProfileForm {
	return ProfileForm{
		Edad:           strconv.Itoa(p.Edad),
		Estatura:       strconv.FormatFloat(p.Estatura, 'f', -1, 64),
		Sexo:           string(p.Sexo),
		Hospital:       p.HospitalPerteneciente,
		NumeroContacto: strconv.FormatInt(p.NumeroContacto, 10),
		Conditions:     p.Conditions,
	}
}

// RegisterForm is the account creation screen.
type RegisterForm struct {
	RUT             string
	Nombre          string
	Apellido        string
	FechaNacimiento string
	Correo          string
	Password        string
}

// Build validates the form into a create-user request.
func (f *RegisterForm) Build() (client.CreateUserRequest, error) {
	var req client.CreateUserRequest
	var err error
	if req.RUT, err = required("rut", f.RUT); err != nil {
		return client.CreateUserRequest{}, err
	}
	if req.Nombre, err = required("nombre", f.Nombre); err != nil {
		return client.CreateUserRequest{}, err
	}
	if req.Apellido, err = required("apellido", f.Apellido); err != nil {
		return client.CreateUserRequest{}, err
	}
	if req.FechaNacimiento, err = date("fecha_nacimiento", f.FechaNacimiento, false); err != nil {
		return client.CreateUserRequest{}, err
	}
	if req.Correo, err = required("correo", f.Correo); err != nil {
		return client.CreateUserRequest{}, err
	}
	if !strfmt.IsEmail(req.Correo) {
		return client.CreateUserRequest{}, invalid("correo", "is not a valid email address")
	}
	// Passwords are compared byte for byte at login, so no trimming.
	if f.Password == "" {
		return client.CreateUserRequest{}, invalid("password", "is required")
	}
	req.Password = f.Password
	return req, nil
}
