package tracker

import (
	"context"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asodi/tracker/client"
	"github.com/asodi/tracker/forms"
	"github.com/asodi/tracker/internal/devapi"
	"github.com/asodi/tracker/reconcile"
)

const owner = devapi.DemoRUT

func newDevClient(t *testing.T) (*client.Client, *devapi.Store) {
	t.Helper()
	store := devapi.NewStore()
	require.NoError(t, devapi.SeedDemo(store, time.Now()))
	srv := httptest.NewServer(devapi.New(store, zerolog.Nop()).Handler())
	t.Cleanup(srv.Close)
	c, err := client.New(srv.URL)
	require.NoError(t, err)
	return c, store
}

// Create a weight whose server answer differs from the typed form; the list
// must hold the server's record.
func TestWeights_CreateAppendsServerRecord(t *testing.T) {
	var posted string
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.Method {
		case http.MethodGet:
			_, _ = w.Write([]byte(`[{"id_peso":1,"peso":80,"fecha_registro":"2023-12-01","usuario":"` + owner + `"}]`))
		case http.MethodPost:
			b, _ := io.ReadAll(r.Body)
			posted = string(b)
			w.WriteHeader(http.StatusCreated)
			_, _ = w.Write([]byte(`{"id_peso":5,"peso":70,"fecha_registro":"2024-01-01","usuario":"` + owner + `"}`))
		case http.MethodDelete:
			assert.Equal(t, "/asodi/v1/pesos/"+owner+"/5/", r.URL.Path)
			w.WriteHeader(http.StatusOK)
		}
	}))
	defer srv.Close()
	c, err := client.New(srv.URL)
	require.NoError(t, err)

	ctx := context.Background()
	ws := NewWeights(c, owner)
	require.NoError(t, ws.Refresh(ctx))
	n := ws.Len()

	form := &forms.WeightForm{Peso: "70", FechaRegistro: "2024-01-01"}
	_, err = ws.Create(ctx, form)
	require.NoError(t, err)
	assert.Contains(t, posted, `"usuario":"`+owner+`"`)

	recs := ws.Records()
	require.Len(t, recs, n+1)
	assert.Equal(t, int64(5), recs[len(recs)-1].ID)
	assert.Equal(t, forms.WeightForm{}, *form)

	require.NoError(t, ws.Delete(ctx, 5))
	assert.Equal(t, n, ws.Len())
	for _, r := range ws.Records() {
		assert.NotEqual(t, int64(5), r.ID)
	}
}

func TestPressures_RejectedCreateKeepsState(t *testing.T) {
	c, _ := newDevClient(t)
	ctx := context.Background()
	ps := NewPressures(c, "not-registered")

	form := &forms.PressureForm{Sistolica: "120", Diastolica: "80", FrecuenciaCardiaca: "70"}
	_, err := ps.Create(ctx, form)
	require.Error(t, err)
	assert.Equal(t, 0, ps.Len())
	assert.Equal(t, "120", form.Sistolica)

	var apiErr *client.APIError
	require.ErrorAs(t, err, &apiErr)
	assert.Equal(t, http.StatusBadRequest, apiErr.StatusCode)
}

func TestAppointments_RefreshDropsUnknownRecords(t *testing.T) {
	c, store := newDevClient(t)
	ctx := context.Background()
	as := NewAppointments(c, owner)

	_, err := as.Create(ctx, &forms.AppointmentForm{Fecha: "2024-05-01", Hora: "10:00", NombreMedico: "Dr. Paz", MotivoConsulta: "control"})
	require.NoError(t, err)
	require.Equal(t, 1, as.Len())

	// Removed behind the list's back, e.g. from another device.
	require.NoError(t, store.DeleteAppointment(owner, as.Records()[0].ID))
	require.NoError(t, as.Refresh(ctx))
	assert.Equal(t, 0, as.Len())
}

func TestSet_RefreshLoadsAll(t *testing.T) {
	c, _ := newDevClient(t)
	ctx := context.Background()
	seed := NewSet(c, owner)
	_, err := seed.Weights.Create(ctx, &forms.WeightForm{Peso: "70"})
	require.NoError(t, err)
	_, err = seed.Pressures.Create(ctx, &forms.PressureForm{Sistolica: "120", Diastolica: "80", FrecuenciaCardiaca: "60"})
	require.NoError(t, err)

	set := NewSet(c, owner)
	require.NoError(t, set.Refresh(ctx))
	assert.Equal(t, 1, set.Weights.Len())
	assert.Equal(t, 1, set.Pressures.Len())
	assert.Equal(t, 0, set.Appointments.Len())
}

func TestSet_RefreshReportsEachFailure(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		if strings.HasPrefix(r.URL.Path, "/asodi/v1/presiones/") {
			w.WriteHeader(http.StatusInternalServerError)
			return
		}
		_, _ = w.Write([]byte(`[]`))
	}))
	defer srv.Close()
	c, err := client.New(srv.URL)
	require.NoError(t, err)

	err = NewSet(c, owner).Refresh(context.Background())
	require.Error(t, err)
	assert.Contains(t, err.Error(), "pressures")
	assert.NotContains(t, err.Error(), "weights")
}

func TestWeights_CreatedWithoutIDNotKept(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		w.WriteHeader(http.StatusCreated)
		_, _ = w.Write([]byte(`{"peso":70,"fecha_registro":"2024-01-01","usuario":"` + owner + `"}`))
	}))
	defer srv.Close()
	c, err := client.New(srv.URL)
	require.NoError(t, err)

	ws := NewWeights(c, owner)
	form := &forms.WeightForm{Peso: "70", FechaRegistro: "2024-01-01"}
	_, err = ws.Create(context.Background(), form)
	require.ErrorIs(t, err, reconcile.ErrMissingID)
	assert.Zero(t, ws.Len())
	assert.Equal(t, "70", form.Peso)
}
