package create_block

import (
	"errors"
	"net/http"

	"github.com/m04kA/SMC-AgendaService/internal/api/handlers"
	"github.com/m04kA/SMC-AgendaService/internal/api/middleware"
	"github.com/m04kA/SMC-AgendaService/internal/service/availability"
	"github.com/m04kA/SMC-AgendaService/internal/service/availability/models"
)

const (
	msgInvalidProviderID = "invalid provider id"
	msgMissingProviderID = "missing provider id"
	msgForbidden         = "access denied"
	msgInvalidBody       = "invalid request body"
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

// Handle POST /api/v1/providers/{providerId}/blocks
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	providerID, err := handlers.PathUUID(r, "providerId")
	if err != nil {
		h.logger.Warn("POST /providers/{id}/blocks - Invalid provider ID: %v", err)
		handlers.RespondBadRequest(w, msgInvalidProviderID)
		return
	}

	callerID, ok := middleware.GetProviderID(r.Context())
	if !ok {
		h.logger.Warn("POST /providers/{id}/blocks - Missing provider ID")
		handlers.RespondUnauthorized(w, msgMissingProviderID)
		return
	}

	if callerID != providerID {
		h.logger.Warn("POST /providers/{id}/blocks - Access denied: provider_id=%s, caller_id=%s", providerID, callerID)
		handlers.RespondForbidden(w, msgForbidden)
		return
	}

	var req models.CreateBlockRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /providers/{id}/blocks - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidBody)
		return
	}
	req.ProviderID = providerID

	block, err := h.service.CreateBlock(r.Context(), &req)
	if err != nil {
		if errors.Is(err, availability.ErrInvalidInput) {
			h.logger.Warn("POST /providers/{id}/blocks - Invalid input: %v", err)
			handlers.RespondBadRequest(w, err.Error())
			return
		}
		h.logger.Error("POST /providers/{id}/blocks - Failed to create block: provider_id=%s, error=%v", providerID, err)
		handlers.RespondInternalError(w)
		return
	}

	h.logger.Info("POST /providers/{id}/blocks - Block created: provider_id=%s, block_id=%s", providerID, block.ID)
	handlers.RespondJSON(w, http.StatusCreated, block)
}
