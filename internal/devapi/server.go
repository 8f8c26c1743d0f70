// Package devapi is an in-memory stand-in for the ASODI REST API, used by
// `asodi devserver` and by end-to-end tests.
package devapi

import (
	"net/http"
	"time"

	"github.com/google/uuid"
	"github.com/gorilla/mux"
	"github.com/rs/zerolog"

	"github.com/asodi/tracker/internal/devapi/recovery"
)

const requestIDHeader = "X-Request-ID"

// Server routes the REST contract onto a Store.
type Server struct {
	store *Store
	log   zerolog.Logger
}

// New returns a server over store.
func New(store *Store, logger zerolog.Logger) *Server {
	return &Server{store: store, log: logger}
}

// Store exposes the backing state, mainly for tests.
func (s *Server) Store() *Store { return s.store }

// Handler builds the router with all API routes.
func (s *Server) Handler() http.Handler {
	router := mux.NewRouter()
	router.Use(s.requestID, s.accessLog, recovery.Middleware(s.log))

	v1 := router.PathPrefix("/asodi/v1").Subrouter()

	v1.HandleFunc("/usuarios/", s.listUsers).Methods("GET")
	v1.HandleFunc("/usuarios/", s.createUser).Methods("POST")
	v1.HandleFunc("/usuarios/{rut}", s.getUser).Methods("GET")

	v1.HandleFunc("/fichas/", s.createProfile).Methods("POST")
	v1.HandleFunc("/fichas/{rut}/", s.getProfile).Methods("GET")
	v1.HandleFunc("/fichas/{rut}/", s.updateProfile).Methods("PUT")

	v1.HandleFunc("/pesos/", s.createWeight).Methods("POST")
	v1.HandleFunc("/pesos/{rut}/", s.listWeights).Methods("GET")
	v1.HandleFunc("/pesos/{rut}/{id:[0-9]+}/", s.deleteWeight).Methods("DELETE")

	v1.HandleFunc("/presiones/", s.createPressure).Methods("POST")
	v1.HandleFunc("/presiones/{rut}/", s.listPressures).Methods("GET")
	v1.HandleFunc("/presiones/{rut}/{id:[0-9]+}/", s.deletePressure).Methods("DELETE")

	v1.HandleFunc("/citas/", s.createAppointment).Methods("POST")
	v1.HandleFunc("/citas/{rut}/", s.listAppointments).Methods("GET")
	v1.HandleFunc("/citas/{rut}/{id:[0-9]+}/", s.deleteAppointment).Methods("DELETE")

	v1.HandleFunc("/anuncios/", s.listAnnouncements).Methods("GET")

	router.HandleFunc("/api/password_reset/", s.passwordReset).Methods("POST")

	return router
}

// requestID echoes the caller's X-Request-ID, or assigns one.
func (s *Server) requestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(requestIDHeader)
		if id == "" {
			id = uuid.NewString()
			r.Header.Set(requestIDHeader, id)
		}
		w.Header().Set(requestIDHeader, id)
		next.ServeHTTP(w, r)
	})
}

type statusRecorder struct {
	http.ResponseWriter
	status int
}

func (r *statusRecorder) WriteHeader(code int) {
	r.status = code
	r.ResponseWriter.WriteHeader(code)
}

func (s *Server) accessLog(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		start := time.Now()
		rec := &statusRecorder{ResponseWriter: w, status: http.StatusOK}
		next.ServeHTTP(rec, r)
		s.log.Debug().
			Str("method", r.Method).
			Str("path", r.URL.Path).
			Int("status", rec.status).
			Str("request_id", r.Header.Get(requestIDHeader)).
			Dur("elapsed", time.Since(start)).
			Msg("request")
	})
}
