package confirm_appointment

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AgendaService/internal/api/handlers"
	"github.com/m04kA/SMC-AgendaService/internal/service/appointments"
	"github.com/m04kA/SMC-AgendaService/internal/service/appointments/models"
)

const (
	msgInvalidAppointmentID = "invalid appointment id"
	msgInvalidBody          = "invalid request body"
	msgNotFound             = "appointment not found"
	msgCannotConfirm        = "appointment cannot be confirmed in its current status"
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

// Handle POST /internal/appointments/{appointmentId}/confirm
// Вызывается сервисом оплаты после успешного платежа
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	appointmentID, err := handlers.PathUUID(r, "appointmentId")
	if err != nil {
		h.logger.Warn("POST /internal/appointments/{id}/confirm - Invalid appointment ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidAppointmentID)
		return
	}

	var req models.ConfirmAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil && !errors.Is(err, handlers.ErrEmptyBody) {
		h.logger.Warn("POST /internal/appointments/{id}/confirm - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}

	if err := h.service.Confirm(r.Context(), appointmentID, &req); err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("POST /internal/appointments/{id}/confirm - Appointment not found: appointment_id=%s", appointmentID)
			handlers.RespondNotFound(w, msgNotFound)

		case errors.Is(err, appointments.ErrCannotConfirm):
			h.logger.Warn("POST /internal/appointments/{id}/confirm - Cannot confirm: appointment_id=%s", appointmentID)
			handlers.RespondConflict(w, msgCannotConfirm)

		default:
			h.logger.Error("POST /internal/appointments/{id}/confirm - Failed to confirm appointment: appointment_id=%s, error=%v",
				appointmentID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /internal/appointments/{id}/confirm - Appointment confirmed: appointment_id=%s", appointmentID)
	handlers.RespondNoContent(w)
}
