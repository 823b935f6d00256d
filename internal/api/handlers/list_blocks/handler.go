package list_blocks

import (
	"net/http"

	"github.com/m04kA/SMC-AgendaService/internal/api/handlers"
	"github.com/m04kA/SMC-AgendaService/internal/api/middleware"
)

const (
	msgInvalidProviderID = "invalid provider id"
	msgMissingProviderID = "missing provider id"
	msgForbidden         = "access denied"
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

// Handle GET /api/v1/providers/{providerId}/blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathUUID(r, "providerId")
	if err != nil {
		h.logger.Warn("GET /providers/{id}/blocks - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	callerID, ok := middleware.GetProviderID(r.Context())
	if !ok {
		h.logger.Warn("GET /providers/{id}/blocks - Missing provider ID")
		handlers.RespondUnauthorized(w, msgMissingProviderID)
		return
	}

	if callerID != providerID {
		h.logger.Warn("GET /providers/{id}/blocks - Access denied: provider_id=%s, caller_id=%s", providerID, callerID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	result, err := h.service.ListBlocks(r.Context(), providerID)
	if err != nil {
		h.logger.Error("GET /providers/{id}/blocks - Failed to list blocks: provider_id=%s, error=%v", providerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("GET /providers/{id}/blocks - Blocks retrieved: provider_id=%s, count=%d", providerID, len(result.Blocks))
	handlers.RespondJSON(w, http.StatusOK, result)
}
