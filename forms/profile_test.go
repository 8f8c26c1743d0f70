package forms

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asodi/tracker/client"
)

func validProfile() ProfileForm {
	return ProfileForm{Edad: "40", Estatura: "1,65", Sexo: "f", Hospital: "Hospital del Salvador", NumeroContacto: "+56912345678"}
}

func TestProfileForm_Build(t *testing.T) {
	f := validProfile()
	f.Conditions.Hipertension = true
	p, err := f.Build("1-9")
	require.NoError(t, err)
	assert.Equal(t, "1-9", p.Usuario)
	assert.Equal(t, 40, p.Edad)
	assert.InDelta(t, 1.65, p.Estatura, 1e-9)
	assert.Equal(t, client.SexFemale, p.Sexo)
	assert.Equal(t, int64(56912345678), p.NumeroContacto)
	assert.True(t, p.Hipertension)
	assert.False(t, p.Diabetes)
}

func TestProfileForm_Invalid(t *testing.T) {
	mutate := map[string]func(*ProfileForm){
		"edad":            func(f *ProfileForm) { f.Edad = "" },
		"estatura":        func(f *ProfileForm) { f.Estatura = "alto" },
		"sexo":            func(f *ProfileForm) { f.Sexo = "X" },
		"hospital":        func(f *ProfileForm) { f.Hospital = " " },
		"numero_contacto": func(f *ProfileForm) { f.NumeroContacto = "abc" },
	}
	for name, m := range mutate {
		t.Run(name, func(t *testing.T) {
			f := validProfile()
			m(&f)
			_, err := f.Build("1-9")
			assert.ErrorIs(t, err, ErrValidation)
		})
	}
}

func TestFromProfile_RoundTrips(t *testing.T) {
	orig := client.MedicalProfile{Usuario: "1-9", Edad: 33, Estatura: 1.8, Sexo: client.SexMale, HospitalPerteneciente: "H", NumeroContacto: 123}
	orig.Alergias = true
	f := FromProfile(orig)
	got, err := f.Build("1-9")
	require.NoError(t, err)
	assert.Equal(t, orig, got)
}

func TestRegisterForm_Build(t *testing.T) {
	f := RegisterForm{RUT: "11.111.111-1", Nombre: "Ana", Apellido: "Soto", FechaNacimiento: "1990-02-03", Correo: "ana@example.com", Password: " secret "}
	req, err := f.Build()
	require.NoError(t, err)
	assert.Equal(t, "1990-02-03", req.FechaNacimiento.String())
	assert.Equal(t, " secret ", req.Password)

	f.Correo = "not-an-email"
	_, err = f.Build()
	var fe *FieldError
	require.ErrorAs(t, err, &fe)
	assert.Equal(t, "correo", fe.Field)

	f.Correo = "ana@example.com"
	f.FechaNacimiento = ""
	_, err = f.Build()
	assert.ErrorIs(t, err, ErrValidation)
}
