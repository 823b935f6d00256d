package get_available_slots

import (
	"fmt"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AgendaService/internal/scheduling"
)

// validateRequest валидирует входные данные запроса, не обращаясь к хранилищу
func validateRequest(req *Request, now time.Time, loc *time.Location) (*parsedRequest, error) {
	if req.ProviderID == "" || req.ServiceID == "" || req.Date == "" {
		return nil, fmt.Errorf("%w: providerId, serviceId and date are required", ErrInvalidInput)
	}

	providerID, err := uuid.Parse(req.ProviderID)
	if err != nil {
		return nil, fmt.Errorf("%w: providerId must be a UUID", ErrInvalidInput)
	}

	serviceID, err := uuid.Parse(req.ServiceID)
	if err != nil {
		return nil, fmt.Errorf("%w: serviceId must be a UUID", ErrInvalidInput)
	}

	date, err := scheduling.ParseCivilDate(req.Date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// Проверяем, что дата не в прошлом по системной зоне
	if scheduling.IsDateInPast(date, now, loc) {
		return nil, fmt.Errorf("%w: %s", ErrDateInPast, req.Date)
	}

	return &parsedRequest{
		providerID: providerID,
		serviceID:  serviceID,
		date:       date,
	}, nil
}
