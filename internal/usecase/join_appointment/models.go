package join_appointment

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AgendaService/internal/domain"
)

// Response решение о переходе в видеосессию
type Response struct {
	AppointmentID uuid.UUID
	Action        domain.JoinAction
	OpensAt       time.Time
	ClosesAt      time.Time
}
