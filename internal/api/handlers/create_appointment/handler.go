package create_appointment

import (
	"errors"
	"net/http"

	"github.com/go-playground/validator/v10"

	"github.com/m04kA/SMC-AgendaService/internal/api/handlers"
	createAppointment "github.com/m04kA/SMC-AgendaService/internal/usecase/create_appointment"
)

const (
	msgInvalidRequestBody  = "invalid request body"
	msgMissingFields       = "missing or invalid fields, expected providerId, serviceId, start, end (RFC 3339), clientEmail, clientPhone"
	msgServiceNotAvailable = "service invalid or inactive"
	msgInvalidDuration     = "slot length does not match the service duration"
	msgSlotInPast          = "slot is in the past"
	msgSlotNotOffered      = "slot is not offered by the provider"
	msgSlotTaken           = "slot no longer available"
)

type Handler struct {
	useCase  CreateAppointmentUseCase
	validate *validator.Validate
	logger   Logger
}

func NewHandler(useCase CreateAppointmentUseCase, logger Logger) *Handler {
	return &Handler{
		useCase:  useCase,
		validate: validator.New(),
		logger:   logger,
	}
}

// Handle POST /api/v1/appointments
func (h *Handler) Handle(w http.ResponseWriter, r *http.Request) {
	var req CreateAppointmentRequest
	if err := handlers.DecodeJSON(r, &req); err != nil {
		h.logger.Warn("POST /appointments - Invalid request body: %v", err)
		handlers.RespondBadRequest(w, msgInvalidRequestBody)
		return
	}
	req.normalize()

	if err := h.validate.Struct(&req); err != nil {
		h.logger.Warn("POST /appointments - Validation failed: %v", err)
		handlers.RespondBadRequest(w, msgMissingFields)
		return
	}

	useCaseReq, err := req.ToUseCaseRequest()
	if err != nil {
		h.logger.Warn("POST /appointments - Failed to parse request: %v", err)
		handlers.RespondBadRequest(w, msgMissingFields)
		return
	}

	result, err := h.useCase.Execute(r.Context(), useCaseReq)
	if err != nil {
		switch {
		case errors.Is(err, createAppointment.ErrSlotTaken):
			h.logger.Warn("POST /appointments - Slot taken: provider_id=%s, start=%s", req.ProviderID, req.Start)
			handlers.RespondConflict(w, msgSlotTaken)

		case errors.Is(err, createAppointment.ErrInvalidInput):
			h.logger.Warn("POST /appointments - Invalid input: %v", err)
			handlers.RespondBadRequest(w, msgMissingFields)

		case errors.Is(err, createAppointment.ErrServiceNotAvailable):
			h.logger.Warn("POST /appointments - Service not available: service_id=%s", req.ServiceID)
			handlers.RespondBadRequest(w, msgServiceNotAvailable)

		case errors.Is(err, createAppointment.ErrInvalidDuration):
			h.logger.Warn("POST /appointments - Invalid duration: service_id=%s", req.ServiceID)
			handlers.RespondBadRequest(w, msgInvalidDuration)

		case errors.Is(err, createAppointment.ErrSlotInPast):
			h.logger.Warn("POST /appointments - Slot in past: start=%s", req.Start)
			handlers.RespondBadRequest(w, msgSlotInPast)

		case errors.Is(err, createAppointment.ErrSlotNotOffered):
			h.logger.Warn("POST /appointments - Slot not offered: provider_id=%s, start=%s", req.ProviderID, req.Start)
			handlers.RespondBadRequest(w, msgSlotNotOffered)

		default:
			h.logger.Error("POST /appointments - Failed to create appointment: provider_id=%s, error=%v",
				req.ProviderID, err)
			handlers.RespondInternalError(w)
		}
		return
	}

	h.logger.Info("POST /appointments - Appointment created: id=%s, provider_id=%s", result.ID, req.ProviderID)
	handlers.RespondJSON(w, http.StatusCreated, FromUseCaseResponse(result))
}
