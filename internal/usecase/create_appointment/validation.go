package create_appointment

import (
	"fmt"
	"strings"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AgendaService/internal/domain"
	"github.com/m04kA/SMC-AgendaService/internal/scheduling"
)

var validate = validator.New()

// validateRequest валидирует входные данные запроса
func validateRequest(req *Request) error {
	if req.ProviderID == uuid.Nil {
		return fmt.Errorf("%w: providerId is required", ErrInvalidInput)
	}

	if req.ServiceID == uuid.Nil {
		return fmt.Errorf("%w: serviceId is required", ErrInvalidInput)
	}

	if req.StartAt.IsZero() || req.EndAt.IsZero() {
		return fmt.Errorf("%w: start and end are required", ErrInvalidInput)
	}

	if !req.StartAt.Before(req.EndAt) {
		return fmt.Errorf("%w: end must be after start", ErrInvalidInput)
	}

	if err := validate.Var(strings.TrimSpace(req.ClientEmail), "required,email"); err != nil {
		return fmt.Errorf("%w: clientEmail must be a valid email", ErrInvalidInput)
	}

	if strings.TrimSpace(req.ClientPhone) == "" {
		return fmt.Errorf("%w: clientPhone is required", ErrInvalidInput)
	}

	return nil
}

// validateService проверяет, что услугу можно забронировать у провайдера
func validateService(service *domain.Service, providerID uuid.UUID) error {
	if !service.BelongsTo(providerID) {
		return fmt.Errorf("%w: service belongs to another provider", ErrServiceNotAvailable)
	}
	if !service.Active {
		return fmt.Errorf("%w: service is inactive", ErrServiceNotAvailable)
	}
	if !service.HasPrice() {
		return fmt.Errorf("%w: service has no price", ErrServiceNotAvailable)
	}
	return nil
}

// validateSlot проверяет длительность, время до начала и совпадение со слотом расписания
func validateSlot(
	req *Request,
	availability *domain.WeeklyAvailability,
	durationMinutes int,
	now time.Time,
	minNoticeMinutes int,
) error {
	requested := domain.Slot{Start: req.StartAt, End: req.EndAt}

	if requested.Duration() != time.Duration(durationMinutes)*time.Minute {
		return fmt.Errorf("%w: expected %d minutes, got %s", ErrInvalidDuration, durationMinutes, requested.Duration())
	}

	cutoff := now.Add(time.Duration(minNoticeMinutes) * time.Minute)
	if requested.Start.Before(cutoff) {
		return ErrSlotInPast
	}

	loc, err := availability.Location()
	if err != nil {
		return fmt.Errorf("%w: %v", ErrInternal, err)
	}

	local := requested.Start.In(loc)
	date := scheduling.StartOfDay(local, loc)
	offered := scheduling.GenerateSlots(availability, local.Weekday(), date, durationMinutes)

	if !scheduling.ContainsSlot(offered, requested) {
		return ErrSlotNotOffered
	}

	return nil
}
