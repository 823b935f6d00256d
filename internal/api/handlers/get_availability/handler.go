package get_availability

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AgendaService/internal/api/handlers"
	"github.com/m04kA/SMC-AgendaService/internal/service/availability"
)

const (
	msgInvalidProviderID = "invalid provider id"
	msgNotConfigured     = "availability not configured"
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

// Handle GET /api/v1/providers/{providerId}/availability
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathUUID(r, "providerId")
	if err != nil {
		h.logger.Warn("GET /providers/{id}/availability - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	result, err := h.service.Get(r.Context(), providerID)
	if err != nil {
		if errors.Is(err, availability.ErrAvailabilityNotFound) {
			h.logger.Warn("GET /providers/{id}/availability - Not configured: provider_id=%s", providerID)
			handlers.RespondNotFound(w, msgNotConfigured)
			return
		}
		h.logger.Error("GET /providers/{id}/availability - Failed to get availability: provider_id=%s, error=%v",
			providerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /providers/{id}/availability - Availability retrieved: provider_id=%s", providerID)
	handlers.RespondJSON(w, http.StatusOK, result)
}
