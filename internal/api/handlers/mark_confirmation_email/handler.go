package mark_confirmation_email

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AgendaService/internal/api/handlers"
	"github.com/m04kA/SMC-AgendaService/internal/service/appointments"
)

const (
	msgInvalidAppointmentID = "invalid appointment id"
	msgNotFound             = "appointment not found"
	msgNotConfirmed         = "appointment is not confirmed"
	msgAlreadySent          = "confirmation email already sent"
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

// Handle POST /internal/appointments/{appointmentId}/confirmation-email-sent
// Вызывается сервисом рассылки перед отправкой письма; 409 означает, что письмо уже отправлено
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathUUID(r, "appointmentId")
	if err != nil {
		h.logger.Warn("POST /internal/appointments/{id}/confirmation-email-sent - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	if err := h.service.MarkConfirmationEmailSent(r.Context(), appointmentID); err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("POST /internal/appointments/{id}/confirmation-email-sent - Appointment not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrNotConfirmed):
			h.logger.Warn("POST /internal/appointments/{id}/confirmation-email-sent - Not confirmed: appointment_id=%s", appointmentID)
			handlers.RespondConflict(w, msgNotConfirmed)

		case errors.Is(err, appointments.ErrConfirmationEmailAlreadySent):
			h.logger.Info("POST /internal/appointments/{id}/confirmation-email-sent - Already sent: appointment_id=%s", appointmentID)
			handlers.RespondConflict(w, msgAlreadySent)

		default:
			h.logger.Error("POST /internal/appointments/{id}/confirmation-email-sent - Failed to mark email: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /internal/appointments/{id}/confirmation-email-sent - Marked: appointment_id=%s", appointmentID)
	handlers.RespondNoContent(w)
}
