package join_appointment

import (
	"time"

	"github.com/google/uuid"

	joinAppointment "github.com/m04kA/SMC-AgendaService/internal/usecase/join_appointment"
)

// ActionResponse куда направить участника
type ActionResponse struct {
	Kind string `json:"kind"`
	URL  string `json:"url,omitempty"`
	Path string `json:"path,omitempty"`
}

// JoinResponse ответ при открытом окне подключения
type JoinResponse struct {
	AppointmentID uuid.UUID      `json:"appointmentId"`
	Action        ActionResponse `json:"action"`
	OpensAt       string         `json:"opensAt"`
	ClosesAt      string         `json:"closesAt"`
}

// WindowClosedResponse ответ при закрытом окне
type WindowClosedResponse struct {
	Error    string `json:"error"`
	OpensAt  string `json:"opensAt"`
	ClosesAt string `json:"closesAt"`
}

// FromUseCaseResponse конвертирует ответ usecase в DTO
func FromUseCaseResponse(resp *joinAppointment.Response) *JoinResponse {
	return &JoinResponse{
		AppointmentID: resp.AppointmentID,
		Action: ActionResponse{
			Kind: string(resp.Action.Kind),
			URL:  resp.Action.URL,
			Path: resp.Action.Path,
		},
		OpensAt:  resp.OpensAt.Format(time.RFC3339),
		ClosesAt: resp.ClosesAt.Format(time.RFC3339),
	}
}
