// Package tracker binds the SDK to the record reconciler for the three
// tracked resources of a signed-in user.
package tracker

import (
	"context"
	"errors"
	"fmt"

	"github.com/asodi/tracker/client"
	"github.com/asodi/tracker/reconcile"
)

// API is the slice of *client.Client the tracking surfaces need.
type API interface {
	ListWeights(ctx context.Context, rut string) ([]client.Weight, error)
	CreateWeight(ctx context.Context, req client.CreateWeightRequest) (*client.Weight, error)
	DeleteWeight(ctx context.Context, rut string, id int64) error

	ListPressures(ctx context.Context, rut string) ([]client.Pressure, error)
	CreatePressure(ctx context.Context, req client.CreatePressureRequest) (*client.Pressure, error)
	DeletePressure(ctx context.Context, rut string, id int64) error

	ListAppointments(ctx context.Context, rut string) ([]client.Appointment, error)
	CreateAppointment(ctx context.Context, req client.CreateAppointmentRequest) (*client.Appointment, error)
	DeleteAppointment(ctx context.Context, rut string, id int64) error
}

type (
	Weights      = reconcile.List[client.Weight, client.CreateWeightRequest]
	Pressures    = reconcile.List[client.Pressure, client.CreatePressureRequest]
	Appointments = reconcile.List[client.Appointment, client.CreateAppointmentRequest]
)

// NewWeights returns the weight list of owner.
func NewWeights(c API, owner string) *Weights {
	return reconcile.New[client.Weight, client.CreateWeightRequest]("weights", owner, weightSource{c})
}

// NewPressures returns the blood pressure list of owner.
func NewPressures(c API, owner string) *Pressures {
	return reconcile.New[client.Pressure, client.CreatePressureRequest]("pressures", owner, pressureSource{c})
}

// NewAppointments returns the appointment list of owner.
func NewAppointments(c API, owner string) *Appointments {
	return reconcile.New[client.Appointment, client.CreateAppointmentRequest]("appointments", owner, appointmentSource{c})
}

// Set is the tracking screens of one session.
type Set struct {
	Weights      *Weights
	Pressures    *Pressures
	Appointments *Appointments
}

// NewSet builds the three lists for owner.
func NewSet(c API, owner string) *Set {
	return &Set{
		Weights:      NewWeights(c, owner),
		Pressures:    NewPressures(c, owner),
		Appointments: NewAppointments(c, owner),
	}
}

// Refresh reloads every list, as when the main flow gains focus. A failing
// list keeps its previous records; the others still refresh.
func (s *Set) Refresh(ctx context.Context) error {
	var errs []error
	if err := s.Weights.Refresh(ctx); err != nil {
		errs = append(errs, fmt.Errorf("weights: %w", err))
	}
	if err := s.Pressures.Refresh(ctx); err != nil {
		errs = append(errs, fmt.Errorf("pressures: %w", err))
	}
	if err := s.Appointments.Refresh(ctx); err != nil {
		errs = append(errs, fmt.Errorf("appointments: %w", err))
	}
	return errors.Join(errs...)
}

type weightSource struct{ c API }

func (s weightSource) List(ctx context.Context, owner string) ([]client.Weight, error) {
	return s.c.ListWeights(ctx, owner)
}

func (s weightSource) Create(ctx context.Context, req client.CreateWeightRequest) (client.Weight, error) {
	w, err := s.c.CreateWeight(ctx, req)
	if err != nil {
		return client.Weight{}, err
	}
	return *w, nil
}

func (s weightSource) Delete(ctx context.Context, owner string, id int64) error {
	return s.c.DeleteWeight(ctx, owner, id)
}

type pressureSource struct{ c API }

func (s pressureSource) List(ctx context.Context, owner string) ([]client.Pressure, error) {
	return s.c.ListPressures(ctx, owner)
}

func (s pressureSource) Create(ctx context.Context, req client.CreatePressureRequest) (client.Pressure, error) {
	p, err := s.c.CreatePressure(ctx, req)
	if err != nil {
		return client.Pressure{}, err
	}
	return *p, nil
}

func (s pressureSource) Delete(ctx context.Context, owner string, id int64) error {
	return s.c.DeletePressure(ctx, owner, id)
}

type appointmentSource struct{ c API }

func (s appointmentSource) List(ctx context.Context, owner string) ([]client.Appointment, error) {
	return s.c.ListAppointments(ctx, owner)
}

func (s appointmentSource) Create(ctx context.Context, req client.CreateAppointmentRequest) (client.Appointment, error) {
	a, err := s.c.CreateAppointment(ctx, req)
	if err != nil {
		return client.Appointment{}, err
	}
	return *a, nil
}

func (s appointmentSource) Delete(ctx context.Context, owner string, id int64) error {
	return s.c.DeleteAppointment(ctx, owner, id)
}
