package handlers

import (
	"context"
	"fmt"
	"time"

	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
	"github.com/rs/zerolog/log"

	"github.com/asodi/tracker/client"
	"github.com/asodi/tracker/forms"
	"github.com/asodi/tracker/tracker"
)

// RecordsHandler exposes list, add and delete tools for weights, blood
// pressure readings and appointments of the signed-in user.
type RecordsHandler struct {
	set *tracker.Set
}

// NewRecordsHandler returns a handler bound to the lists of one session.
func NewRecordsHandler(set *tracker.Set) *RecordsHandler {
	return &RecordsHandler{set: set}
}

// RegisterTools registers the nine record tools.
func (rh *RecordsHandler) RegisterTools(s *server.MCPServer) error {
	s.AddTool(mcp.NewTool("list_weights",
		mcp.WithDescription("List the body weight entries of the signed-in user, refreshed from the server"),
	), rh.handleListWeights)

	s.AddTool(mcp.NewTool("add_weight",
		mcp.WithDescription("Record a body weight in whole kilograms"),
		mcp.WithString("peso", mcp.Required(), mcp.Description("Weight in whole kilograms")),
		mcp.WithString("fecha_registro", mcp.Description("Date as YYYY-MM-DD, defaults to today")),
	), rh.handleAddWeight)

	s.AddTool(mcp.NewTool("delete_weight",
		mcp.WithDescription("Delete a body weight entry by id"),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("The id_peso of the entry")),
	), rh.handleDeleteWeight)

	s.AddTool(mcp.NewTool("list_pressures",
		mcp.WithDescription("List the blood pressure readings of the signed-in user, refreshed from the server"),
	), rh.handleListPressures)

	s.AddTool(mcp.NewTool("add_pressure",
		mcp.WithDescription("Record a blood pressure reading"),
		mcp.WithString("presion_sistolica", mcp.Required(), mcp.Description("Systolic pressure")),
		mcp.WithString("presion_diastolica", mcp.Required(), mcp.Description("Diastolic pressure")),
		mcp.WithString("frecuenciacardiaca", mcp.Required(), mcp.Description("Heart rate")),
		mcp.WithString("fecha_registro", mcp.Description("Date as YYYY-MM-DD, defaults to today")),
	), rh.handleAddPressure)

	s.AddTool(mcp.NewTool("delete_pressure",
		mcp.WithDescription("Delete a blood pressure reading by id"),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("The id_presion of the reading")),
	), rh.handleDeletePressure)

	s.AddTool(mcp.NewTool("list_appointments",
		mcp.WithDescription("List the medical appointments of the signed-in user, refreshed from the server"),
	), rh.handleListAppointments)

	s.AddTool(mcp.NewTool("add_appointment",
		mcp.WithDescription("Schedule a medical appointment"),
		mcp.WithString("fecha", mcp.Description("Date as YYYY-MM-DD, defaults to today")),
		mcp.WithString("hora", mcp.Required(), mcp.Description("Time as HH:MM or HH:MM:SS")),
		mcp.WithString("nombre_medico", mcp.Required(), mcp.Description("Name of the doctor")),
		mcp.WithString("motivo_consulta", mcp.Required(), mcp.Description("Reason for the visit")),
	), rh.handleAddAppointment)

	s.AddTool(mcp.NewTool("delete_appointment",
		mcp.WithDescription("Delete a medical appointment by id"),
		mcp.WithNumber("id", mcp.Required(), mcp.Description("The id_cita_medica of the appointment")),
	), rh.handleDeleteAppointment)

	return nil
}

func (rh *RecordsHandler) handleListWeights(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	if err := rh.set.Weights.Refresh(ctx); err != nil {
		log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("list_weights failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to list weights: %s", client.UserMessage(err))), nil
	}
	log.Debug().Int("count", rh.set.Weights.Len()).Dur("elapsed", time.Since(start)).Msg("list_weights completed")
	return jsonResult(rh.set.Weights.Records())
}

func (rh *RecordsHandler) handleAddWeight(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	form := &forms.WeightForm{
		Peso:          argString(req, "peso"),
		FechaRegistro: argString(req, "fecha_registro"),
	}
	start := time.Now()
	w, err := rh.set.Weights.Create(ctx, form)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("add_weight failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to add weight: %s", client.UserMessage(err))), nil
	}
	log.Debug().Int64("id", w.ID).Dur("elapsed", time.Since(start)).Msg("add_weight completed")
	return jsonResult(w)
}

func (rh *RecordsHandler) handleDeleteWeight(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return rh.deleteRecord(ctx, req, "weight", rh.set.Weights.Delete)
}

func (rh *RecordsHandler) handleListPressures(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	if err := rh.set.Pressures.Refresh(ctx); err != nil {
		log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("list_pressures failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to list pressures: %s", client.UserMessage(err))), nil
	}
	log.Debug().Int("count", rh.set.Pressures.Len()).Dur("elapsed", time.Since(start)).Msg("list_pressures completed")
	return jsonResult(rh.set.Pressures.Records())
}

func (rh *RecordsHandler) handleAddPressure(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	form := &forms.PressureForm{
		Sistolica:          argString(req, "presion_sistolica"),
		Diastolica:         argString(req, "presion_diastolica"),
		FrecuenciaCardiaca: argString(req, "frecuenciacardiaca"),
		FechaRegistro:      argString(req, "fecha_registro"),
	}
	start := time.Now()
	p, err := rh.set.Pressures.Create(ctx, form)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("add_pressure failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to add pressure: %s", client.UserMessage(err))), nil
	}
	log.Debug().Int64("id", p.ID).Dur("elapsed", time.Since(start)).Msg("add_pressure completed")
	return jsonResult(p)
}

func (rh *RecordsHandler) handleDeletePressure(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return rh.deleteRecord(ctx, req, "pressure", rh.set.Pressures.Delete)
}

func (rh *RecordsHandler) handleListAppointments(ctx context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	if err := rh.set.Appointments.Refresh(ctx); err != nil {
		log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("list_appointments failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to list appointments: %s", client.UserMessage(err))), nil
	}
	log.Debug().Int("count", rh.set.Appointments.Len()).Dur("elapsed", time.Since(start)).Msg("list_appointments completed")
	return jsonResult(rh.set.Appointments.Records())
}

func (rh *RecordsHandler) handleAddAppointment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	form := &forms.AppointmentForm{
		Fecha:          argString(req, "fecha"),
		Hora:           argString(req, "hora"),
		NombreMedico:   argString(req, "nombre_medico"),
		MotivoConsulta: argString(req, "motivo_consulta"),
	}
	start := time.Now()
	a, err := rh.set.Appointments.Create(ctx, form)
	if err != nil {
		log.Error().Err(err).Dur("elapsed", time.Since(start)).Msg("add_appointment failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to add appointment: %s", client.UserMessage(err))), nil
	}
	log.Debug().Int64("id", a.ID).Dur("elapsed", time.Since(start)).Msg("add_appointment completed")
	return jsonResult(a)
}

func (rh *RecordsHandler) handleDeleteAppointment(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return rh.deleteRecord(ctx, req, "appointment", rh.set.Appointments.Delete)
}

func (rh *RecordsHandler) deleteRecord(ctx context.Context, req mcp.CallToolRequest, kind string, del func(context.Context, int64) error) (*mcp.CallToolResult, error) {
	id, err := argID(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	start := time.Now()
	if err := del(ctx, id); err != nil {
		log.Error().Err(err).Str("kind", kind).Int64("id", id).Dur("elapsed", time.Since(start)).Msg("delete failed")
		return mcp.NewToolResultError(fmt.Sprintf("failed to delete %s: %s", kind, client.UserMessage(err))), nil
	}
	log.Debug().Str("kind", kind).Int64("id", id).Dur("elapsed", time.Since(start)).Msg("delete completed")
	return mcp.NewToolResultText(fmt.Sprintf("Deleted %s %d", kind, id)), nil
}
