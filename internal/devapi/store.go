package devapi

import (
	"errors"
	"sync"

	"github.com/asodi/tracker/client"
)

var (
	errNotFound = errors.New("not found")
	errConflict = errors.New("already exists")
	errNoOwner  = errors.New("usuario does not exist")
)

// Store is the in-memory state behind the dev API. Records keep insertion
// order; ids are assigned per resource starting at 1.
type Store struct {
	mu sync.Mutex

	users         []client.User
	profiles      map[string]client.MedicalProfile
	weights       []client.Weight
	pressures     []client.Pressure
	appointments  []client.Appointment
	announcements []client.Announcement
	resets        []string

	nextWeight, nextPressure, nextAppointment int64
}

// NewStore returns an empty store.
func NewStore() *Store {
	return &Store{profiles: make(map[string]client.MedicalProfile)}
}

func (s *Store) userIndex(rut string) int {
	for i, u := range s.users {
		if u.RUT == rut {
			return i
		}
	}
	return -1
}

func (s *Store) Users() []client.User {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]client.User{}, s.users...)
}

func (s *Store) User(rut string) (client.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	i := s.userIndex(rut)
	if i < 0 {
		return client.User{}, errNotFound
	}
	return s.users[i], nil
}

// AddUser registers u. RUT and email must be unique.
func (s *Store) AddUser(u client.User) (client.User, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	for _, existing := range s.users {
		if existing.RUT == u.RUT || existing.Correo == u.Correo {
			return client.User{}, errConflict
		}
	}
	s.users = append(s.users, u)
	return u, nil
}

func (s *Store) Profile(rut string) (client.MedicalProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	p, ok := s.profiles[rut]
	if !ok {
		return client.MedicalProfile{}, errNotFound
	}
	return p, nil
}

// CreateProfile stores the first profile of p.Usuario.
func (s *Store) CreateProfile(p client.MedicalProfile) (client.MedicalProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userIndex(p.Usuario) < 0 {
		return client.MedicalProfile{}, errNoOwner
	}
	if _, ok := s.profiles[p.Usuario]; ok {
		return client.MedicalProfile{}, errConflict
	}
	s.profiles[p.Usuario] = p
	return p, nil
}

// ReplaceProfile overwrites an existing profile in full.
func (s *Store) ReplaceProfile(rut string, p client.MedicalProfile) (client.MedicalProfile, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if _, ok := s.profiles[rut]; !ok {
		return client.MedicalProfile{}, errNotFound
	}
	p.Usuario = rut
	s.profiles[rut] = p
	return p, nil
}

func (s *Store) Weights(rut string) []client.Weight {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []client.Weight{}
	for _, w := range s.weights {
		if w.Usuario == rut {
			out = append(out, w)
		}
	}
	return out
}

func (s *Store) AddWeight(w client.Weight) (client.Weight, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userIndex(w.Usuario) < 0 {
		return client.Weight{}, errNoOwner
	}
	s.nextWeight++
	w.ID = s.nextWeight
	s.weights = append(s.weights, w)
	return w, nil
}

func (s *Store) DeleteWeight(rut string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, w := range s.weights {
		if w.ID == id && w.Usuario == rut {
			s.weights = append(s.weights[:i], s.weights[i+1:]...)
			return nil
		}
	}
	return errNotFound
}

func (s *Store) Pressures(rut string) []client.Pressure {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []client.Pressure{}
	for _, p := range s.pressures {
		if p.Usuario == rut {
			out = append(out, p)
		}
	}
	return out
}

func (s *Store) AddPressure(p client.Pressure) (client.Pressure, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userIndex(p.Usuario) < 0 {
		return client.Pressure{}, errNoOwner
	}
	s.nextPressure++
	p.ID = s.nextPressure
	s.pressures = append(s.pressures, p)
	return p, nil
}

func (s *Store) DeletePressure(rut string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, p := range s.pressures {
		if p.ID == id && p.Usuario == rut {
			s.pressures = append(s.pressures[:i], s.pressures[i+1:]...)
			return nil
		}
	}
	return errNotFound
}

func (s *Store) Appointments(rut string) []client.Appointment {
	s.mu.Lock()
	defer s.mu.Unlock()
	out := []client.Appointment{}
	for _, a := range s.appointments {
		if a.Usuario == rut {
			out = append(out, a)
		}
	}
	return out
}

func (s *Store) AddAppointment(a client.Appointment) (client.Appointment, error) {
	s.mu.Lock()
	defer s.mu.Unlock()
	if s.userIndex(a.Usuario) < 0 {
		return client.Appointment{}, errNoOwner
	}
	s.nextAppointment++
	a.ID = s.nextAppointment
	s.appointments = append(s.appointments, a)
	return a, nil
}

func (s *Store) DeleteAppointment(rut string, id int64) error {
	s.mu.Lock()
	defer s.mu.Unlock()
	for i, a := range s.appointments {
		if a.ID == id && a.Usuario == rut {
			s.appointments = append(s.appointments[:i], s.appointments[i+1:]...)
			return nil
		}
	}
	return errNotFound
}

func (s *Store) Announcements() []client.Announcement {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]client.Announcement{}, s.announcements...)
}

// AddAnnouncement publishes a notice; ids follow insertion order.
func (s *Store) AddAnnouncement(a client.Announcement) client.Announcement {
	s.mu.Lock()
	defer s.mu.Unlock()
	a.ID = int64(len(s.announcements) + 1)
	s.announcements = append(s.announcements, a)
	return a
}

// recordReset notes a password reset request. Unknown addresses are accepted
// silently, as the real endpoint does not disclose which emails exist.
func (s *Store) recordReset(email string) {
	s.mu.Lock()
	defer s.mu.Unlock()
	s.resets = append(s.resets, email)
}

// ResetRequests lists the emails a reset was requested for.
func (s *Store) ResetRequests() []string {
	s.mu.Lock()
	defer s.mu.Unlock()
	return append([]string{}, s.resets...)
}
