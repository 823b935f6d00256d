package get_available_slots

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AgendaService/internal/domain"
)

// Request модель запроса на получение доступных слотов.
// Идентификаторы и дата приходят строками и разбираются при валидации.
type Request struct {
	ProviderID string // UUID провайдера
	ServiceID  string // UUID услуги
	Date       string // Календарная дата YYYY-MM-DD
}

// Response модель ответа со списком доступных слотов
type Response struct {
	ProviderID      uuid.UUID
	ServiceID       uuid.UUID
	Date            string
	Timezone        string
	DurationMinutes int
	Slots           []domain.Slot
}

// Settings параметры расчета
type Settings struct {
	Location                *time.Location // Системная зона для проверки "дата в прошлом"
	MinBookingNoticeMinutes int            // Минимальное время до начала слота
}

// parsedRequest провалидированный запрос
type parsedRequest struct {
	providerID uuid.UUID
	serviceID  uuid.UUID
	date       time.Time
}
