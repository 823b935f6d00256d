package issue_join_token

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AgendaService/internal/api/handlers"
	"github.com/m04kA/SMC-AgendaService/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "invalid appointment id"
	msgNotFound             = "appointment not found"
	msgNotJoinable          = "appointment is not joinable"
)

type Handler struct {
	service AppointmentService
	logger  Logger
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle POST /api/v1/appointments/{appointmentId}/join-token
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathUUID(r, "appointmentId")
	if err != nil {
		h.logger.Warn("POST /appointments/{id}/join-token - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	token, err := h.service.IssueJoinToken(r.Context(), appointmentID)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("POST /appointments/{id}/join-token - Appointment not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrNotJoinable):
			h.logger.Warn("POST /appointments/{id}/join-token - Not joinable: appointment_id=%s", appointmentID)
			handlers.RespondConflict(w, msgNotJoinable)

		default:
			h.logger.Error("POST /appointments/{id}/join-token - Failed to issue token: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments/{id}/join-token - Token issued: appointment_id=%s", appointmentID)
	handlers.RespondJSON(w, http.StatusOK, token)
}
