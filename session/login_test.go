package session

import (
	"context"
	"errors"
	"io"
	"net/http"
	"net/http/httptest"
	"strings"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/asodi/tracker/client"
	"github.com/asodi/tracker/forms"
	"github.com/asodi/tracker/internal/devapi"
	"github.com/asodi/tracker/localstate"
)

const (
	rut   = "11.111.111-1"
	users = `[{"rut":"22.222.222-2","correo":"z@b.com","password":"y"},{"rut":"11.111.111-1","correo":"a@b.com","password":"x"}]`
)

type recorder struct{ ruts []string }

func (r *recorder) ToProfileCompletion(rut string) { r.ruts = append(r.ruts, rut) }

// stubAPI serves the user list and answers the profile endpoint with status.
func stubAPI(t *testing.T, profileStatus int) (*client.Client, *int32) {
	t.Helper()
	var calls int32
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		atomic.AddInt32(&calls, 1)
		switch r.URL.Path {
		case "/asodi/v1/usuarios/":
			_, _ = w.Write([]byte(users))
		case "/asodi/v1/fichas/" + rut + "/":
			w.WriteHeader(profileStatus)
			if profileStatus == http.StatusOK {
				_, _ = w.Write([]byte(`{"usuario":"` + rut + `","edad":40,"estatura":1.7,"sexo":"M","hospital_perteneciente":"H","numero_contacto":1}`))
			}
		default:
			t.Fatalf("unexpected path %s", r.URL.Path)
		}
	}))
	t.Cleanup(srv.Close)
	c, err := client.New(srv.URL)
	require.NoError(t, err)
	return c, &calls
}

func newFlow(t *testing.T, c *client.Client, store localstate.Store) (*LoginFlow, *recorder) {
	t.Helper()
	sess, err := Open(context.Background(), store, NewGate())
	require.NoError(t, err)
	nav := &recorder{}
	return &LoginFlow{Session: sess, Verifier: UserListVerifier{Users: c}, Profiles: c, Navigator: nav}, nav
}

func TestLogin_MissingProfileNavigatesToCompletion(t *testing.T) {
	c, _ := stubAPI(t, http.StatusNotFound)
	store := localstate.NewMemoryStore()
	flow, nav := newFlow(t, c, store)

	out, err := flow.Login(context.Background(), "a@b.com", "x")
	require.NoError(t, err)
	assert.Equal(t, OutcomeNeedsProfile, out)
	assert.Equal(t, []string{rut}, nav.ruts)
	assert.Equal(t, Unauthenticated, flow.Session.Gate().State())
	assert.Equal(t, AuthFlow, flow.Session.Gate().Root())

	stored, ok, _ := store.Get(context.Background(), localstate.KeyUserRUT)
	assert.True(t, ok)
	assert.Equal(t, rut, stored)
}

func TestLogin_ExistingProfileOpensGate(t *testing.T) {
	c, _ := stubAPI(t, http.StatusOK)
	flow, nav := newFlow(t, c, localstate.NewMemoryStore())

	out, err := flow.Login(context.Background(), "a@b.com", "x")
	require.NoError(t, err)
	assert.Equal(t, OutcomeAuthenticated, out)
	assert.Empty(t, nav.ruts)
	assert.Equal(t, MainFlow, flow.Session.Gate().Root())
	assert.Equal(t, Snapshot{UserID: rut, Authenticated: true}, flow.Session.Snapshot())
}

func TestLogin_OtherRejectionAlsoCountsAsMissingProfile(t *testing.T) {
	c, _ := stubAPI(t, http.StatusInternalServerError)
	flow, nav := newFlow(t, c, localstate.NewMemoryStore())
	out, err := flow.Login(context.Background(), "a@b.com", "x")
	require.NoError(t, err)
	assert.Equal(t, OutcomeNeedsProfile, out)
	assert.Equal(t, []string{rut}, nav.ruts)
}

func TestLogin_NoMatchLeavesStateUntouched(t *testing.T) {
	c, _ := stubAPI(t, http.StatusOK)
	store := localstate.NewMemoryStore()
	flow, nav := newFlow(t, c, store)

	for _, creds := range [][2]string{{"a@b.com", "wrong"}, {"A@b.com", "x"}, {"nobody@b.com", "x"}} {
		_, err := flow.Login(context.Background(), creds[0], creds[1])
		assert.ErrorIs(t, err, ErrInvalidCredentials)
	}
	assert.Empty(t, nav.ruts)
	assert.Equal(t, Unauthenticated, flow.Session.Gate().State())
	_, ok, _ := store.Get(context.Background(), localstate.KeyUserRUT)
	assert.False(t, ok)
}

func TestLogin_MissingFieldsSkipNetwork(t *testing.T) {
	c, calls := stubAPI(t, http.StatusOK)
	flow, _ := newFlow(t, c, localstate.NewMemoryStore())

	_, err := flow.Login(context.Background(), " ", "x")
	assert.ErrorIs(t, err, forms.ErrValidation)
	_, err = flow.Login(context.Background(), "a@b.com", "")
	assert.ErrorIs(t, err, forms.ErrValidation)
	assert.Zero(t, atomic.LoadInt32(calls))
}

func TestLogin_TransportFailure(t *testing.T) {
	c, err := client.New("http://127.0.0.1:1", client.WithTransport(roundTripFunc(func(*http.Request) (*http.Response, error) {
		return nil, errors.New("connection refused")
	})))
	require.NoError(t, err)
	store := localstate.NewMemoryStore()
	flow, nav := newFlow(t, c, store)

	_, err = flow.Login(context.Background(), "a@b.com", "x")
	require.Error(t, err)
	assert.True(t, client.IsTransport(err))
	assert.Empty(t, nav.ruts)
	assert.Equal(t, Unauthenticated, flow.Session.Gate().State())
	_, ok, _ := store.Get(context.Background(), localstate.KeyUserRUT)
	assert.False(t, ok)
}

// A user without a profile logging in after one with a profile must not
// inherit the open gate.
func TestLogin_SecondUserWithoutProfileClosesGate(t *testing.T) {
	const other = "22.222.222-2"
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/asodi/v1/usuarios/":
			_, _ = w.Write([]byte(users))
		case "/asodi/v1/fichas/" + rut + "/":
			_, _ = w.Write([]byte(`{"usuario":"` + rut + `","edad":40,"estatura":1.7,"sexo":"M","hospital_perteneciente":"H","numero_contacto":1}`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()
	c, err := client.New(srv.URL)
	require.NoError(t, err)
	flow, nav := newFlow(t, c, localstate.NewMemoryStore())
	ctx := context.Background()

	out, err := flow.Login(ctx, "a@b.com", "x")
	require.NoError(t, err)
	require.Equal(t, OutcomeAuthenticated, out)

	out, err = flow.Login(ctx, "z@b.com", "y")
	require.NoError(t, err)
	assert.Equal(t, OutcomeNeedsProfile, out)
	assert.Equal(t, []string{other}, nav.ruts)
	assert.Equal(t, Snapshot{UserID: other, Authenticated: false}, flow.Session.Snapshot())
	assert.Equal(t, AuthFlow, flow.Session.Gate().Root())
}

// usersOnlyTransport answers the user list and fails every other request.
func usersOnlyTransport() roundTripFunc {
	return func(r *http.Request) (*http.Response, error) {
		if r.URL.Path != "/asodi/v1/usuarios/" {
			return nil, errors.New("connection reset")
		}
		return &http.Response{
			StatusCode: http.StatusOK,
			Header:     http.Header{"Content-Type": []string{"application/json"}},
			Body:       io.NopCloser(strings.NewReader(users)),
			Request:    r,
		}, nil
	}
}

func TestLogin_ProfileTransportFailureLeavesSessionUnchanged(t *testing.T) {
	c, err := client.New("http://asodi.test", client.WithTransport(usersOnlyTransport()))
	require.NoError(t, err)
	ctx := context.Background()

	t.Run("no previous user", func(t *testing.T) {
		store := localstate.NewMemoryStore()
		flow, nav := newFlow(t, c, store)

		_, err := flow.Login(ctx, "a@b.com", "x")
		require.Error(t, err)
		assert.True(t, client.IsTransport(err))
		assert.Empty(t, nav.ruts)
		assert.Equal(t, Snapshot{}, flow.Session.Snapshot())
		_, ok, _ := store.Get(ctx, localstate.KeyUserRUT)
		assert.False(t, ok)
	})

	t.Run("previous user kept", func(t *testing.T) {
		store := localstate.NewMemoryStore()
		require.NoError(t, store.Set(ctx, localstate.KeyUserRUT, "22.222.222-2"))
		flow, _ := newFlow(t, c, store)

		_, err := flow.Login(ctx, "a@b.com", "x")
		require.Error(t, err)
		assert.Equal(t, "22.222.222-2", flow.Session.Snapshot().UserID)
		stored, ok, _ := store.Get(ctx, localstate.KeyUserRUT)
		assert.True(t, ok)
		assert.Equal(t, "22.222.222-2", stored)
	})
}

// Accounts with fields the login check does not read may be malformed.
func TestLogin_IgnoresMalformedOtherAccounts(t *testing.T) {
	srv := httptest.NewServer(http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		switch r.URL.Path {
		case "/asodi/v1/usuarios/":
			_, _ = w.Write([]byte(`[{"rut":"1-9","correo":"b@b.com","password":"y","fecha_nacimiento":""},` +
				`{"rut":"` + rut + `","correo":"a@b.com","password":"x","fecha_nacimiento":"1990-01-01"}]`))
		default:
			w.WriteHeader(http.StatusNotFound)
		}
	}))
	defer srv.Close()
	c, err := client.New(srv.URL)
	require.NoError(t, err)
	flow, _ := newFlow(t, c, localstate.NewMemoryStore())

	out, err := flow.Login(context.Background(), "a@b.com", "x")
	require.NoError(t, err)
	assert.Equal(t, OutcomeNeedsProfile, out)
	assert.Equal(t, rut, flow.Session.Snapshot().UserID)
}

type roundTripFunc func(*http.Request) (*http.Response, error)

func (f roundTripFunc) RoundTrip(r *http.Request) (*http.Response, error) { return f(r) }

func TestOpen_RestoresUserButNotAuthentication(t *testing.T) {
	store := localstate.NewMemoryStore()
	require.NoError(t, store.Set(context.Background(), localstate.KeyUserRUT, rut))
	g := NewGate()
	g.Login()

	sess, err := Open(context.Background(), store, g)
	require.NoError(t, err)
	assert.Equal(t, Snapshot{UserID: rut}, sess.Snapshot())
	assert.Equal(t, AuthFlow, g.Root())
}

func TestLogout_ClearsStoredUser(t *testing.T) {
	c, _ := stubAPI(t, http.StatusOK)
	store := localstate.NewMemoryStore()
	flow, _ := newFlow(t, c, store)
	_, err := flow.Login(context.Background(), "a@b.com", "x")
	require.NoError(t, err)

	require.NoError(t, flow.Session.Logout(context.Background()))
	assert.Equal(t, Snapshot{}, flow.Session.Snapshot())
	assert.Equal(t, AuthFlow, flow.Session.Gate().Root())
	_, ok, _ := store.Get(context.Background(), localstate.KeyUserRUT)
	assert.False(t, ok)
}

func TestResume(t *testing.T) {
	c, _ := stubAPI(t, http.StatusOK)
	store := localstate.NewMemoryStore()
	flow, _ := newFlow(t, c, store)
	_, err := flow.Resume(context.Background())
	assert.ErrorIs(t, err, ErrNoSession)

	require.NoError(t, store.Set(context.Background(), localstate.KeyUserRUT, rut))
	flow, _ = newFlow(t, c, store)
	out, err := flow.Resume(context.Background())
	require.NoError(t, err)
	assert.Equal(t, OutcomeAuthenticated, out)
	assert.True(t, flow.Session.Snapshot().Authenticated)
}

// End to end against the dev API: login without profile, complete it, log
// in again straight into the main flow.
func TestCompleteProfile_ThenLogin(t *testing.T) {
	store := devapi.NewStore()
	require.NoError(t, devapi.SeedDemo(store, time.Now()))
	srv := httptest.NewServer(devapi.New(store, zerolog.Nop()).Handler())
	defer srv.Close()
	c, err := client.New(srv.URL)
	require.NoError(t, err)

	flow, nav := newFlow(t, c, localstate.NewMemoryStore())
	ctx := context.Background()

	out, err := flow.Login(ctx, devapi.DemoEmail, devapi.DemoPassword)
	require.NoError(t, err)
	require.Equal(t, OutcomeNeedsProfile, out)
	require.Equal(t, []string{devapi.DemoRUT}, nav.ruts)

	bad := &forms.ProfileForm{Edad: "x"}
	_, err = flow.CompleteProfile(ctx, devapi.DemoRUT, bad)
	assert.ErrorIs(t, err, forms.ErrValidation)
	assert.Equal(t, AuthFlow, flow.Session.Gate().Root())

	form := &forms.ProfileForm{Edad: "54", Estatura: "1.62", Sexo: "F", Hospital: "Hospital Barros Luco", NumeroContacto: "987654321"}
	form.Conditions.Diabetes = true
	p, err := flow.CompleteProfile(ctx, devapi.DemoRUT, form)
	require.NoError(t, err)
	assert.True(t, p.Diabetes)
	assert.Equal(t, MainFlow, flow.Session.Gate().Root())

	require.NoError(t, flow.Session.Logout(ctx))
	out, err = flow.Login(ctx, devapi.DemoEmail, devapi.DemoPassword)
	require.NoError(t, err)
	assert.Equal(t, OutcomeAuthenticated, out)
}
