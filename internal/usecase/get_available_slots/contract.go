package get_available_slots

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AgendaService/internal/domain"
)

// ServiceRepository интерфейс каталога услуг
type ServiceRepository interface {
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Service, error)
}

// AvailabilityRepository интерфейс хранилища недельного расписания (репозиторий или кэш)
type AvailabilityRepository interface {
	Get(ctx context.Context, providerID uuid.UUID) (*domain.WeeklyAvailability, error)
}

// AppointmentRepository интерфейс репозитория записей
type AppointmentRepository interface {
	// ListOccupying получает активные записи провайдера, пересекающиеся с [from, to)
	ListOccupying(ctx context.Context, providerID uuid.UUID, from, to time.Time) ([]*domain.Appointment, error)
}

// BlockRepository интерфейс репозитория блокировок
type BlockRepository interface {
	List(ctx context.Context, filter domain.BlocksFilter) ([]*domain.Block, error)
}

// TimeProvider интерфейс для получения текущего времени (для тестирования)
type TimeProvider interface {
	Now() time.Time
}

// Logger интерфейс для логирования
type Logger interface {
	Info(format string, v ...interface{})
	Warn(format string, v ...interface{})
	Error(format string, v ...interface{})
}

// RealTimeProvider реальный провайдер времени для production
type RealTimeProvider struct{}

// Now возвращает текущее время
func (p *RealTimeProvider) Now() time.Time {
	return time.Now()
}
