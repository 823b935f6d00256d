package list_appointments

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AgendaService/internal/api/handlers"
	"github.com/m04kA/SMC-AgendaService/internal/api/middleware"
	"github.com/m04kA/SMC-AgendaService/internal/service/appointments"
)

const (
	msgInvalidProviderID = "invalid provider id"
	msgMissingProviderID = "missing provider id"
	msgForbidden         = "access denied"
	msgInvalidFilter     = "invalid filter, expected from/to in RFC 3339, a known status and includeInactive=true|false"
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

// Handle GET /api/v1/providers/{providerId}/appointments
// Query params: from, to (RFC 3339), status, includeInactive
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathUUID(r, "providerId")
	if err != nil {
		h.logger.Warn("GET /providers/{id}/appointments - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	callerID, ok := middleware.GetProviderID(r.Context())
	if !ok {
		h.logger.Warn("GET /providers/{id}/appointments - Missing provider ID")
		handlers.RespondUnauthorized(w, msgMissingProviderID)
		return
	}

	if callerID != providerID {
		h.logger.Warn("GET /providers/{id}/appointments - Access denied: provider_id=%s, caller_id=%s", providerID, callerID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	query := r.URL.Query()
	req, err := ToServiceRequest(providerID, query.Get("from"), query.Get("to"), query.Get("status"), query.Get("includeInactive"))
	if err != nil {
		h.logger.Warn("GET /providers/{id}/appointments - Invalid query: %v", err)
		handlers.RespondBadRequest(w, msgInvalidFilter)
		return
	}

	result, err := h.service.ListForProvider(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, appointments.ErrInvalidInput):
			h.logger.Warn("GET /providers/{id}/appointments - Invalid filter: %v", err)
			handlers.RespondBadRequest(w, msgInvalidFilter)

		default:
			h.logger.Error("GET /providers/{id}/appointments - Failed to list appointments: provider_id=%s, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{id}/appointments - Appointments retrieved: provider_id=%s, count=%d",
		providerID, len(result.Appointments))
	handlers.RespondJSON(w, http.StatusOK, result)
}
