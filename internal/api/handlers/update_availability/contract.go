package update_availability

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AgendaService/internal/service/availability/models"
)

type AvailabilityService interface {
	Update(ctx context.Context, providerID uuid.UUID, raw []byte) (*models.AvailabilityResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
