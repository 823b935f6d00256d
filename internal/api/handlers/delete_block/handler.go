package delete_block

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AgendaService/internal/api/handlers"
	"github.com/m04kA/SMC-AgendaService/internal/api/middleware"
	"github.com/m04kA/SMC-AgendaService/internal/service/availability"
)

const (
	msgInvalidProviderID = "invalid provider id"
	msgInvalidBlockID    = "invalid block id"
	msgMissingProviderID = "missing provider id"
	msgForbidden         = "access denied"
	msgNotFound          = "block not found"
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

// Handle DELETE /api/v1/providers/{providerId}/blocks/{blockId}
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathUUID(r, "providerId")
	if err != nil {
		h.logger.Warn("DELETE /providers/{id}/blocks/{blockId} - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	blockID, err := handlers.PathUUID(r, "blockId")
	if err != nil {
		h.logger.Warn("DELETE /providers/{id}/blocks/{blockId} - Invalid block ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBlockID)
		return
	}

	callerID, ok := middleware.GetProviderID(r.Context())
	if !ok {
		h.logger.Warn("DELETE /providers/{id}/blocks/{blockId} - Missing provider ID")
		handlers.RespondUnauthorized(w, msgMissingProviderID)
		return
	}

	if callerID != providerID {
		h.logger.Warn("DELETE /providers/{id}/blocks/{blockId} - Access denied: provider_id=%s, caller_id=%s",
			providerID, callerID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	if err := h.service.DeleteBlock(r.Context(), providerID, blockID); err != nil {
		if errors.Is(err, availability.ErrBlockNotFound) {
			h.logger.Warn("DELETE /providers/{id}/blocks/{blockId} - Block not found: block_id=%s", blockID)
			handlers.RespondNotFound(w, msgNotFound)
			return
		}
		h.logger.Error("DELETE /providers/{id}/blocks/{blockId} - Failed to delete block: block_id=%s, error=%v",
			blockID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("DELETE /providers/{id}/blocks/{blockId} - Block deleted: block_id=%s", blockID)
	handlers.RespondNoContent(w)
}
