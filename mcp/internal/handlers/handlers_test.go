package handlers

import (
	"context"
	"encoding/json"
	"net/http"
	"net/http/httptest"
	"testing"
	"time"

	"github.com/go-openapi/strfmt"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asodi/tracker/client"
	"github.com/asodi/tracker/internal/devapi"
	"github.com/asodi/tracker/localstate"
	"github.com/asodi/tracker/session"
	"github.com/asodi/tracker/tracker"
)

const owner = devapi.DemoRUT

func newDevAPI(t *testing.T) (*client.Client, *devapi.Store) {
	t.Helper()
	store := devapi.NewStore()
	require.NoError(t, devapi.SeedDemo(store, time.Now()))
	srv := httptest.NewServer(devapi.New(store, zerolog.Nop()).Handler())
	t.Cleanup(srv.Close)
	c, err := client.New(srv.URL)
	require.NoError(t, err)
	return c, store
}

func call(args map[string]any) mcp.CallToolRequest {
	return mcp.CallToolRequest{Params: mcp.CallToolParams{Arguments: args}}
}

func text(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotNil(t, res)
	require.NotEmpty(t, res.Content)
	tc, ok := res.Content[0].(mcp.TextContent)
	require.True(t, ok, "expected text content")
	return tc.Text
}

func date(y int, m time.Month, d int) strfmt.Date {
	return strfmt.Date(time.Date(y, m, d, 0, 0, 0, 0, time.UTC))
}

func TestRegisterTools(t *testing.T) {
	c, _ := newDevAPI(t)
	set := tracker.NewSet(c, owner)
	sess, err := session.Open(context.Background(), localstate.NewMemoryStore(), session.NewGate())
	require.NoError(t, err)

	s := server.NewMCPServer("test", "0", server.WithToolCapabilities(true))
	for _, h := range []interface{ RegisterTools(*server.MCPServer) error }{
		NewRecordsHandler(set),
		NewProfileHandler(c, owner),
		NewAnnouncementHandler(c),
		NewSummaryHandler(set),
		NewSessionHandler(sess, nil),
	} {
		require.NoError(t, h.RegisterTools(s))
	}
}

func TestRecords_WeightLifecycle(t *testing.T) {
	c, store := newDevAPI(t)
	rh := NewRecordsHandler(tracker.NewSet(c, owner))
	ctx := context.Background()

	res, err := rh.handleAddWeight(ctx, call(map[string]any{"peso": float64(72), "fecha_registro": "2024-03-02"}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))

	var w client.Weight
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &w))
	assert.Equal(t, 72, w.Peso)
	assert.Equal(t, owner, w.Usuario)
	assert.NotZero(t, w.ID)

	res, err = rh.handleListWeights(ctx, call(nil))
	require.NoError(t, err)
	var list []client.Weight
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &list))
	require.Len(t, list, 1)
	assert.Equal(t, w.ID, list[0].ID)

	res, err = rh.handleDeleteWeight(ctx, call(map[string]any{"id": float64(w.ID)}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))
	assert.Empty(t, store.Weights(owner))
}

func TestRecords_ValidationErrorSkipsNetwork(t *testing.T) {
	var hits int
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) { hits++ }))
	defer srv.Close()
	c, err := client.New(srv.URL)
	require.NoError(t, err)
	rh := NewRecordsHandler(tracker.NewSet(c, owner))

	res, err := rh.handleAddPressure(context.Background(), call(map[string]any{
		"presion_sistolica":  "120",
		"presion_diastolica": "",
		"frecuenciacardiaca": "70",
	}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "presion_diastolica")
	assert.Zero(t, hits)
}

func TestRecords_AppointmentHoraNormalised(t *testing.T) {
	c, store := newDevAPI(t)
	rh := NewRecordsHandler(tracker.NewSet(c, owner))

	res, err := rh.handleAddAppointment(context.Background(), call(map[string]any{
		"fecha":           "2024-05-10",
		"hora":            "09:30",
		"nombre_medico":   "Dra. Soto",
		"motivo_consulta": "Control",
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))

	got := store.Appointments(owner)
	require.Len(t, got, 1)
	assert.Equal(t, "09:30:00", got[0].Hora)
}

func TestRecords_DeleteRequiresID(t *testing.T) {
	c, _ := newDevAPI(t)
	rh := NewRecordsHandler(tracker.NewSet(c, owner))

	for _, args := range []map[string]any{nil, {"id": float64(-1)}, {"id": 1.5}, {"id": "x"}} {
		res, err := rh.handleDeleteAppointment(context.Background(), call(args))
		require.NoError(t, err)
		assert.True(t, res.IsError, "args %v", args)
	}
}

func TestRecords_RejectedDeleteKeepsList(t *testing.T) {
	c, _ := newDevAPI(t)
	set := tracker.NewSet(c, owner)
	rh := NewRecordsHandler(set)

	res, err := rh.handleDeletePressure(context.Background(), call(map[string]any{"id": "999"}))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "failed to delete pressure")
}

func TestProfile_MissingAndPresent(t *testing.T) {
	c, store := newDevAPI(t)
	ph := NewProfileHandler(c, owner)
	ctx := context.Background()

	res, err := ph.handleGetProfile(ctx, call(nil))
	require.NoError(t, err)
	assert.True(t, res.IsError)
	assert.Contains(t, text(t, res), "no medical profile")

	_, err = store.CreateProfile(client.MedicalProfile{
		Usuario: owner, Edad: 54, Estatura: 1.7, Sexo: client.SexFemale,
		HospitalPerteneciente: "Hospital Regional", NumeroContacto: 56911112222,
	})
	require.NoError(t, err)

	res, err = ph.handleGetProfile(ctx, call(nil))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))
	var p client.MedicalProfile
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &p))
	assert.Equal(t, 54, p.Edad)
}

func TestAnnouncements(t *testing.T) {
	c, _ := newDevAPI(t)
	res, err := NewAnnouncementHandler(c).handleListAnnouncements(context.Background(), call(nil))
	require.NoError(t, err)
	var list []client.Announcement
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &list))
	assert.Len(t, list, 2)
}

func TestMonthlySummary(t *testing.T) {
	c, store := newDevAPI(t)
	for _, w := range []client.Weight{
		{Peso: 80, FechaRegistro: date(2024, 3, 20), Usuario: owner},
		{Peso: 78, FechaRegistro: date(2024, 3, 5), Usuario: owner},
		{Peso: 90, FechaRegistro: date(2024, 4, 1), Usuario: owner},
	} {
		_, err := store.AddWeight(w)
		require.NoError(t, err)
	}
	sh := NewSummaryHandler(tracker.NewSet(c, owner))

	res, err := sh.handleMonthlySummary(context.Background(), call(map[string]any{
		"kind": "weight", "month": float64(3), "year": float64(2024),
	}))
	require.NoError(t, err)
	require.False(t, res.IsError, text(t, res))

	var got struct {
		Peso struct {
			Points []struct {
				Label string  `json:"label"`
				Value float64 `json:"value"`
			} `json:"points"`
			Stats struct {
				Count int     `json:"count"`
				Avg   float64 `json:"avg"`
			} `json:"stats"`
		} `json:"peso"`
	}
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &got))
	require.Len(t, got.Peso.Points, 2)
	assert.Equal(t, "05/03", got.Peso.Points[0].Label)
	assert.Equal(t, 2, got.Peso.Stats.Count)
	assert.Equal(t, 79.0, got.Peso.Stats.Avg)
}

func TestMonthlySummary_BadArgs(t *testing.T) {
	c, _ := newDevAPI(t)
	sh := NewSummaryHandler(tracker.NewSet(c, owner))
	for _, args := range []map[string]any{
		{},
		{"kind": "glucose"},
		{"kind": "weight", "month": float64(13)},
		{"kind": "pressure", "year": 2024.5},
	} {
		res, err := sh.handleMonthlySummary(context.Background(), call(args))
		require.NoError(t, err)
		assert.True(t, res.IsError, "args %v", args)
	}
}

type fakeHealth struct{}

func (fakeHealth) IsHealthy() bool { return true }
func (fakeHealth) Components() map[string]bool {
	return map[string]bool{"api": true, "store": true}
}

func TestSessionStatus(t *testing.T) {
	ctx := context.Background()
	store := localstate.NewMemoryStore()
	require.NoError(t, store.Set(ctx, localstate.KeyUserRUT, owner))
	sess, err := session.Open(ctx, store, session.NewGate())
	require.NoError(t, err)
	sess.Gate().Login()

	res, err := NewSessionHandler(sess, fakeHealth{}).handleSessionStatus(ctx, call(nil))
	require.NoError(t, err)

	var got map[string]any
	require.NoError(t, json.Unmarshal([]byte(text(t, res)), &got))
	assert.Equal(t, owner, got["user_id"])
	assert.Equal(t, true, got["authenticated"])
	assert.Equal(t, string(session.MainFlow), got["root"])
	assert.Equal(t, true, got["healthy"])
}
