package appointments

import (
	"context"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AgendaService/internal/domain"
)

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Appointment, error)
	GetByJoinToken(ctx context.Context, token string) (*domain.Appointment, error)
	ListWithFilter(ctx context.Context, filter domain.AppointmentsFilter) ([]*domain.Appointment, error)
	Confirm(ctx context.Context, id uuid.UUID, settlementRef *string) error
	Cancel(ctx context.Context, id uuid.UUID, reason *string) error
	SetJoinTokenIfEmpty(ctx context.Context, id uuid.UUID, token string) (bool, error)
	MarkConfirmationEmailSent(ctx context.Context, id uuid.UUID) (bool, error)
}

// TransactionManager интерфейс для управления транзакциями
type TransactionManager interface {
	Do(ctx context.Context, fn func(ctx context.Context) error) error
	DoSerializable(ctx context.Context, fn func(ctx context.Context) error) error
	DoReadOnly(ctx context.Context, fn func(ctx context.Context) error) error
}

// TokenGenerator генерирует токен подключения к видеосессии
type TokenGenerator func() (string, error)

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}
