package availability

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AgendaService/internal/domain"
)

// AvailabilityReader источник расписания (кэш поверх репозитория или сам репозиторий)
type AvailabilityReader interface {
	Get(ctx context.Context, providerID uuid.UUID) (*domain.WeeklyAvailability, error)
}

// AvailabilityWriter запись расписания в профиль провайдера
type AvailabilityWriter interface {
	Update(ctx context.Context, providerID uuid.UUID, availability *domain.WeeklyAvailability) error
}

// CacheInvalidator сброс кэша расписания после изменения
type CacheInvalidator interface {
	Invalidate(ctx context.Context, providerID uuid.UUID) error
}

// BlockRepository интерфейс репозитория блокировок
type BlockRepository interface {
	Create(ctx context.Context, block *domain.Block) (*domain.Block, error)
	Delete(ctx context.Context, providerID, blockID uuid.UUID) error
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
