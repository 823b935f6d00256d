package create_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AgendaService/internal/domain"
)

// Request модель запроса на создание записи
type Request struct {
	ProviderID  uuid.UUID
	ServiceID   uuid.UUID
	StartAt     time.Time
	EndAt       time.Time
	ClientName  *string
	ClientEmail string
	ClientPhone string
}

// Response модель созданной записи
type Response struct {
	ID         uuid.UUID
	ProviderID uuid.UUID
	ServiceID  uuid.UUID
	StartAt    time.Time
	EndAt      time.Time
	Status     domain.AppointmentStatus
	CreatedAt  time.Time
}

// Settings параметры бронирования
type Settings struct {
	MinBookingNoticeMinutes int
}
