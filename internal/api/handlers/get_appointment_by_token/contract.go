package get_appointment_by_token

import (
	"context"

	"github.com/m04kA/SMC-AgendaService/internal/service/appointments/models"
)

type AppointmentService interface {
	GetByJoinToken(ctx context.Context, token string) (*models.PublicAppointmentResponse, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
