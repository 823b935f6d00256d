package join_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AgendaService/internal/api/handlers"
	joinAppointment "github.com/m04kA/SMC-AgendaService/internal/usecase/join_appointment"
)

const (
	msgInvalidAppointmentID = "invalid appointment id"
	msgNotFound             = "appointment not found"
	msgNotJoinable          = "appointment is not joinable"
	msgWindowClosed         = "join window is closed"
)

type Handler struct {
	useCase UseCase
	logger  Logger
}

func NewHandler(useCase UseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/appointments/{appointmentId}/join
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathUUID(r, "appointmentId")
	if err != nil {
		h.logger.Warn("GET /appointments/{id}/join - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	resp, err := h.useCase.Execute(r.Context(), appointmentID)
	if err != nil {
		var closed *joinAppointment.WindowClosedError
		switch {
		case errors.As(err, &closed):
			h.logger.Info("GET /appointments/{id}/join - Window closed: appointment_id=%s, opens_at=%s, closes_at=%s",
				appointmentID, closed.OpensAt, closed.ClosesAt)
			handlers.RespondJSON(w, http.StatusForbidden, WindowClosedResponse{
				Error:    msgWindowClosed,
				OpensAt:  closed.OpensAt,
				ClosesAt: closed.ClosesAt,
			})

		case errors.Is(err, joinAppointment.ErrAppointmentNotFound):
			h.logger.Warn("GET /appointments/{id}/join - Appointment not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, joinAppointment.ErrNotJoinable):
			h.logger.Warn("GET /appointments/{id}/join - Not joinable: appointment_id=%s", appointmentID)
			handlers.RespondConflict(w, msgNotJoinable)

		default:
			h.logger.Error("GET /appointments/{id}/join - Failed to resolve join: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/{id}/join - Join resolved: appointment_id=%s, kind=%s", appointmentID, resp.Action.Kind)
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(resp))
}
