package summary

import (
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asodi/tracker/client"
)

func d(y int, m time.Month, day int) strfmt.Date {
	return strfmt.Date(time.Date(y, m, day, 0, 0, 0, 0, time.UTC))
}

func TestFilterMonth(t *testing.T) {
	ws := []client.Weight{
		{ID: 1, Peso: 80, FechaRegistro: d(2024, 3, 20)},
		{ID: 2, Peso: 81, FechaRegistro: d(2024, 4, 1)},
		{ID: 3, Peso: 79, FechaRegistro: d(2024, 3, 2)},
		{ID: 4, Peso: 78, FechaRegistro: d(2023, 3, 2)},
		{ID: 5, Peso: 77}, // no date
	}
	got := FilterMonth(ws, time.March, 2024)
	require.Len(t, got, 2)
	assert.Equal(t, int64(3), got[0].ID)
	assert.Equal(t, int64(1), got[1].ID)

	assert.Empty(t, FilterMonth(ws, time.May, 2024))
}

func TestWeights(t *testing.T) {
	ws := []client.Weight{
		{Peso: 80, FechaRegistro: d(2024, 3, 20)},
		{Peso: 70, FechaRegistro: d(2024, 3, 2)},
		{Peso: 75, FechaRegistro: d(2024, 3, 10)},
	}
	s := Weights(ws, time.March, 2024)
	assert.Equal(t, []Point{{"02/03", 70}, {"10/03", 75}, {"20/03", 80}}, s.Peso.Points)
	assert.Equal(t, Stats{Count: 3, Min: 70, Max: 80, Avg: 75}, s.Peso.Stats)
}

func TestWeights_EmptyMonth(t *testing.T) {
	s := Weights(nil, time.January, 2024)
	assert.Empty(t, s.Peso.Points)
	assert.Equal(t, Stats{}, s.Peso.Stats)
}

func TestPressures(t *testing.T) {
	ps := []client.Pressure{
		{PresionSistolica: 120, PresionDiastolica: 80, FrecuenciaCardiaca: 70, FechaRegistro: d(2024, 6, 1)},
		{PresionSistolica: 131, PresionDiastolica: 85, FrecuenciaCardiaca: 75, FechaRegistro: d(2024, 6, 2)},
	}
	s := Pressures(ps, time.June, 2024)
	assert.Equal(t, 125.5, s.Sistolica.Stats.Avg)
	assert.Equal(t, float64(85), s.Diastolica.Stats.Max)
	assert.Equal(t, float64(70), s.FrecuenciaCardiaca.Stats.Min)
	assert.Len(t, s.FrecuenciaCardiaca.Points, 2)
}

func TestFilterMonth_Appointments(t *testing.T) {
	as := []client.Appointment{{ID: 1, Fecha: d(2024, 2, 29)}, {ID: 2, Fecha: d(2024, 3, 1)}}
	got := FilterMonth(as, time.February, 2024)
	require.Len(t, got, 1)
	assert.Equal(t, int64(1), got[0].ID)
}
