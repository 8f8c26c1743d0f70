package devapi

import (
	"encoding/json"
	"errors"
	"net/http"
	"strconv"
	"strings"

	"github.com/gorilla/mux"

	"github.com/asodi/tracker/client"
	"github.com/asodi/tracker/internal/devapi/respond"
)

func decode(w http.ResponseWriter, r *http.Request, v any) bool {
	if err := json.NewDecoder(r.Body).Decode(v); err != nil {
		respond.WriteBadRequest(w, "Invalid JSON")
		return false
	}
	return true
}

// writeStoreError maps store errors to statuses.
func writeStoreError(w http.ResponseWriter, err error) {
	switch {
	case errors.Is(err, errNotFound):
		respond.WriteNotFound(w, "")
	case errors.Is(err, errConflict), errors.Is(err, errNoOwner):
		respond.WriteBadRequest(w, err.Error())
	default:
		respond.WriteError(w, http.StatusInternalServerError, err.Error())
	}
}

func pathID(r *http.Request) int64 {
	id, _ := strconv.ParseInt(mux.Vars(r)["id"], 10, 64)
	return id
}

// ------------------------------
// Users
// ------------------------------

func (s *Server) listUsers(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, s.store.Users())
}

func (s *Server) getUser(w http.ResponseWriter, r *http.Request) {
	u, err := s.store.User(mux.Vars(r)["rut"])
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, u)
}

func (s *Server) createUser(w http.ResponseWriter, r *http.Request) {
	var req client.CreateUserRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.RUT) == "" || strings.TrimSpace(req.Correo) == "" || req.Password == "" {
		respond.WriteBadRequest(w, "rut, correo and password are required")
		return
	}
	u, err := s.store.AddUser(client.User{
		RUT:             req.RUT,
		Nombre:          req.Nombre,
		Apellido:        req.Apellido,
		FechaNacimiento: req.FechaNacimiento,
		Correo:          req.Correo,
		Password:        req.Password,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, u)
}

func (s *Server) passwordReset(w http.ResponseWriter, r *http.Request) {
	var req struct {
		Email string `json:"email"`
	}
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Email) == "" {
		respond.WriteBadRequest(w, "email is required")
		return
	}
	s.store.recordReset(req.Email)
	respond.WriteJSON(w, http.StatusOK, map[string]string{"status": "OK"})
}

// ------------------------------
// Medical profiles
// ------------------------------

func validProfile(p client.MedicalProfile) error {
	switch {
	case p.Edad <= 0:
		return errors.New("edad must be positive")
	case p.Estatura <= 0:
		return errors.New("estatura must be positive")
	case !p.Sexo.Valid():
		return errors.New("sexo must be M or F")
	case strings.TrimSpace(p.HospitalPerteneciente) == "":
		return errors.New("hospital_perteneciente is required")
	}
	return nil
}

func (s *Server) getProfile(w http.ResponseWriter, r *http.Request) {
	p, err := s.store.Profile(mux.Vars(r)["rut"])
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, p)
}

func (s *Server) createProfile(w http.ResponseWriter, r *http.Request) {
	var p client.MedicalProfile
	if !decode(w, r, &p) {
		return
	}
	if err := validProfile(p); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	out, err := s.store.CreateProfile(p)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

func (s *Server) updateProfile(w http.ResponseWriter, r *http.Request) {
	var p client.MedicalProfile
	if !decode(w, r, &p) {
		return
	}
	if err := validProfile(p); err != nil {
		respond.WriteBadRequest(w, err.Error())
		return
	}
	out, err := s.store.ReplaceProfile(mux.Vars(r)["rut"], p)
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusOK, out)
}

// ------------------------------
// Tracked records
// ------------------------------

func (s *Server) listWeights(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, s.store.Weights(mux.Vars(r)["rut"]))
}

func (s *Server) createWeight(w http.ResponseWriter, r *http.Request) {
	var req client.CreateWeightRequest
	if !decode(w, r, &req) {
		return
	}
	if req.Peso <= 0 {
		respond.WriteBadRequest(w, "peso must be positive")
		return
	}
	out, err := s.store.AddWeight(client.Weight{Peso: req.Peso, FechaRegistro: req.FechaRegistro, Usuario: req.Usuario})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

func (s *Server) deleteWeight(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteWeight(mux.Vars(r)["rut"], pathID(r)); err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteNoContent(w)
}

func (s *Server) listPressures(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, s.store.Pressures(mux.Vars(r)["rut"]))
}

func (s *Server) createPressure(w http.ResponseWriter, r *http.Request) {
	var req client.CreatePressureRequest
	if !decode(w, r, &req) {
		return
	}
	if req.PresionSistolica <= 0 || req.PresionDiastolica <= 0 || req.FrecuenciaCardiaca <= 0 {
		respond.WriteBadRequest(w, "pressure and heart rate must be positive")
		return
	}
	out, err := s.store.AddPressure(client.Pressure{
		PresionSistolica:   req.PresionSistolica,
		PresionDiastolica:  req.PresionDiastolica,
		FrecuenciaCardiaca: req.FrecuenciaCardiaca,
		FechaRegistro:      req.FechaRegistro,
		Usuario:            req.Usuario,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

func (s *Server) deletePressure(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeletePressure(mux.Vars(r)["rut"], pathID(r)); err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteNoContent(w)
}

func (s *Server) listAppointments(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, s.store.Appointments(mux.Vars(r)["rut"]))
}

func (s *Server) createAppointment(w http.ResponseWriter, r *http.Request) {
	var req client.CreateAppointmentRequest
	if !decode(w, r, &req) {
		return
	}
	if strings.TrimSpace(req.Hora) == "" || strings.TrimSpace(req.NombreMedico) == "" || strings.TrimSpace(req.MotivoConsulta) == "" {
		respond.WriteBadRequest(w, "hora, nombre_medico and motivo_consulta are required")
		return
	}
	out, err := s.store.AddAppointment(client.Appointment{
		Fecha:          req.Fecha,
		Hora:           req.Hora,
		NombreMedico:   req.NombreMedico,
		MotivoConsulta: req.MotivoConsulta,
		Usuario:        req.Usuario,
	})
	if err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteJSON(w, http.StatusCreated, out)
}

func (s *Server) deleteAppointment(w http.ResponseWriter, r *http.Request) {
	if err := s.store.DeleteAppointment(mux.Vars(r)["rut"], pathID(r)); err != nil {
		writeStoreError(w, err)
		return
	}
	respond.WriteNoContent(w)
}

func (s *Server) listAnnouncements(w http.ResponseWriter, r *http.Request) {
	respond.WriteJSON(w, http.StatusOK, s.store.Announcements())
}
