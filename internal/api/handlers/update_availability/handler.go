package update_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AgendaService/internal/api/handlers"
	"github.com/m04kA/SMC-AgendaService/internal/api/middleware"
	"github.com/m04kA/SMC-AgendaService/internal/service/availability"
)

const (
	msgInvalidProviderID = "invalid provider id"
	msgMissingProviderID = "missing provider id"
	msgForbidden         = "access denied"
	msgEmptyBody         = "request body is empty"
	msgProviderNotFound  = "provider not found"
)

type Handler struct {
	service AvailabilityService
	logger  Logger
}

func NewHandler(service AvailabilityService, logger Logger) *Handler {
	return &Handler{
		service: service,
		logger:  logger,
	}
}

// Handle PUT /api/v1/providers/{providerId}/availability
// Принимает документ v2 и устаревший формат v1
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathUUID(r, "providerId")
	if err != nil {
		h.logger.Warn("PUT /providers/{id}/availability - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	callerID, ok := middleware.GetProviderID(r.Context())
	if !ok {
		h.logger.Warn("PUT /providers/{id}/availability - Missing provider ID")
		handlers.RespondUnauthorized(w, msgMissingProviderID)
		return
	}

	if callerID != providerID {
		h.logger.Warn("PUT /providers/{id}/availability - Access denied: provider_id=%s, caller_id=%s", providerID, callerID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	raw, err := handlers.ReadBody(r)
	if err != nil {
		h.logger.Warn("PUT /providers/{id}/availability - Failed to read body: %v", err)
		handlers.RespondBadRequest(w, msgEmptyBody)
		return
	}

	result, err := h.service.Update(r.Context(), providerID, raw)
	if err != nil {
		switch {
		case errors.Is(err, availability.ErrInvalidInput):
			h.logger.Warn("PUT /providers/{id}/availability - Invalid availability: %v", err)
			handlers.RespondBadRequest(w, err.Error())

		case errors.Is(err, availability.ErrProviderNotFound):
			h.logger.Warn("PUT /providers/{id}/availability - Provider not found: provider_id=%s", providerID)
			handlers.RespondNotFound(w, msgProviderNotFound)

		default:
			h.logger.Error("PUT /providers/{id}/availability - Failed to update availability: provider_id=%s, error=%v",
				providerID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("PUT /providers/{id}/availability - Availability updated: provider_id=%s", providerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
