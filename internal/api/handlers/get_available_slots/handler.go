package get_available_slots

import (
	"errors"
	"net/http"

	"github.com/gorilla/mux"

	"github.com/m04kA/SMC-AgendaService/internal/api/handlers"
	getAvailableSlots "github.com/m04kA/SMC-AgendaService/internal/usecase/get_available_slots"
)

const (
	msgMissingParams       = "providerId, serviceId and date are required"
	msgInvalidInput        = "invalid providerId, serviceId or date"
	msgDateInPast          = "date is in the past"
	msgServiceNotAvailable = "service not available"
)

type Handler struct {
	useCase GetAvailableSlotsUseCase
	logger  Logger
}

func NewHandler(useCase GetAvailableSlotsUseCase, logger Logger) *Handler {
	return &Handler{
		useCase: useCase,
		logger:  logger,
	}
}

// Handle GET /api/v1/providers/{providerId}/slots
// Query params: serviceId (required, UUID), date (required, YYYY-MM-DD)
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	req := &getAvailableSlots.Request{
		ProviderID: mux.Vars(r)["providerId"],
		ServiceID:  r.URL.Query().Get("serviceId"),
		Date:       r.URL.Query().Get("date"),
	}

	if req.ProviderID == "" || req.ServiceID == "" || req.Date == "" {
		h.logger.Warn("GET /providers/{id}/slots - Missing params")
		handlers.RespondBadRequest(w, msgMissingParams)
		return
	}

	result, err := h.useCase.Execute(r.Context(), req)
	if err != nil {
		switch {
		case errors.Is(err, getAvailableSlots.ErrInvalidInput):
			h.logger.Warn("GET /providers/{id}/slots - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgInvalidInput)

		case errors.Is(err, getAvailableSlots.ErrDateInPast):
			h.logger.Warn("GET /providers/{id}/slots - Date in past: date=%s", req.Date)
			handlers.RespondBadRequest(w, msgDateInPast)

		case errors.Is(err, getAvailableSlots.ErrServiceNotAvailable):
			h.logger.Warn("GET /providers/{id}/slots - Service not available: provider_id=%s, service_id=%s",
				req.ProviderID, req.ServiceID)
			handlers.RespondNotFound(w, msgServiceNotAvailable)

		default:
			h.logger.Error("GET /providers/{id}/slots - Failed to get slots: provider_id=%s, service_id=%s, error=%v",
				req.ProviderID, req.ServiceID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("GET /providers/{id}/slots - Slots retrieved: provider_id=%s, date=%s, slots_count=%d",
		req.ProviderID, req.Date, len(result.Slots))
	handlers.RespondJSON(w, http.StatusOK, FromUseCaseResponse(result))
}
