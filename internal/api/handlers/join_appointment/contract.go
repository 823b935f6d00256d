package join_appointment

import (
	"context"

	"github.com/google/uuid"

	joinAppointment "github.com/m04kA/SMC-AgendaService/internal/usecase/join_appointment"
)

type UseCase interface {
	Execute(ctx context.Context, appointmentID uuid.UUID) (*joinAppointment.Response, error)
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
