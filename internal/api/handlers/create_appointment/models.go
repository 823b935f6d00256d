package create_appointment

import (
	"time"

	"github.com/google/uuid"

	createAppointment "github.com/m04kA/SMC-AgendaService/internal/usecase/create_appointment"
)

// CreateAppointmentRequest HTTP request model
type CreateAppointmentRequest struct {
	ProviderID  string  `json:"providerId" validate:"required,uuid"`
	ServiceID   string  `json:"serviceId" validate:"required,uuid"`
	ProductID   string  `json:"productId,omitempty"` // устаревшее имя serviceId
	Start       string  `json:"start" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	End         string  `json:"end" validate:"required,datetime=2006-01-02T15:04:05Z07:00"`
	ClientName  *string `json:"clientName,omitempty" validate:"omitempty,max=200"`
	ClientEmail string  `json:"clientEmail" validate:"required,email"`
	ClientPhone string  `json:"clientPhone" validate:"required,max=40"`
}

// normalize подставляет productId, если serviceId не передан
func (r *CreateAppointmentRequest) normalize() {
	if r.ServiceID == "" {
		r.ServiceID = r.ProductID
	}
}

// ToUseCaseRequest конвертирует HTTP request в модель use case.
// Вызывается после валидации, поэтому ошибки разбора не ожидаются.
func (r *CreateAppointmentRequest) ToUseCaseRequest() (*createAppointment.Request, error) {
	providerID, err := uuid.Parse(r.ProviderID)
	if err != nil {
		return nil, err
	}
	serviceID, err := uuid.Parse(r.ServiceID)
	if err != nil {
		return nil, err
	}
	start, err := time.Parse(time.RFC3339, r.Start)
	if err != nil {
		return nil, err
	}
	end, err := time.Parse(time.RFC3339, r.End)
	if err != nil {
		return nil, err
	}

	return &createAppointment.Request{
		ProviderID:  providerID,
		ServiceID:   serviceID,
		StartAt:     start,
		EndAt:       end,
		ClientName:  r.ClientName,
		ClientEmail: r.ClientEmail,
		ClientPhone: r.ClientPhone,
	}, nil
}

// CreateAppointmentResponse HTTP response model
type CreateAppointmentResponse struct {
	ID        uuid.UUID `json:"id"`
	Status    string    `json:"status"`
	Start     string    `json:"start"`
	End       string    `json:"end"`
	CreatedAt time.Time `json:"createdAt"`
}

// FromUseCaseResponse конвертирует ответ use case в HTTP response
func FromUseCaseResponse(resp *createAppointment.Response) *CreateAppointmentResponse {
	return &CreateAppointmentResponse{
		ID:        resp.ID,
		Status:    string(resp.Status),
		Start:     resp.StartAt.Format(time.RFC3339),
		End:       resp.EndAt.Format(time.RFC3339),
		CreatedAt: resp.CreatedAt,
	}
}
