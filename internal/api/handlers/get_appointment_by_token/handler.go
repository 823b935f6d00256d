package get_appointment_by_token

import (
	"errors"
	"fmt"
	"net/http"

	"github.com/go-playground/validator/v10"
	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AgendaService/internal/api/handlers"
	"github.com/m04kA/SMC-AgendaService/internal/domain"
	"github.com/m04kA/SMC-AgendaService/internal/service/appointments"
)

const (
	msgInvalidToken = "invalid join token"
	msgNotFound     = "appointment not found"
)

var tokenRule = fmt.Sprintf("required,len=%d,alphanum", domain.JoinTokenLength)

type Handler struct {
	service  AppointmentService
	logger   Logger
	validate *validator.Validate
}

func NewHandler(service AppointmentService, logger Logger) *Handler {
	return &Handler{
		service:  service,
		logger:   logger,
		validate: validator.New(),
	}
}

// Handle GET /api/v1/appointments/by-token/{token}
// Публичный просмотр записи по ссылке клиента, без контактных данных
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	token := mux.Vars(r)["token"]
	if err := h.validate.Var(token, tokenRule); err != nil {
		h.logger.Warn("GET /appointments/by-token/{token} - Invalid token: %v", err)
		handlers.RespondBadRequest(w, msgInvalidToken)
		return
	}

	resp, err := h.service.GetByJoinToken(r.Context(), token)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrAppointmentNotFound):
			h.logger.Warn("GET /appointments/by-token/{token} - Appointment not found")
			handlers.RespondNotFound(w, msgNotFound)

		default:
			h.logger.Error("GET /appointments/by-token/{token} - Failed to resolve token: %v", err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /appointments/by-token/{token} - Appointment resolved: appointment_id=%s", resp.ID)
	handlers.RespondJSON(w, http.StatusOK, resp)
}
