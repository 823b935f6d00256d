package mark_confirmation_email

import (
	"context"

	"github.com/google/uuid"
)

type AppointmentService interface {
	MarkConfirmationEmailSent(ctx context.Context, id uuid.UUID) error
}

type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
