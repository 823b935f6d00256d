package models

import (
	"errors"
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AgendaService/internal/domain"
)

var (
	// ErrInvalidStatus возвращается при некорректном статусе
	ErrInvalidStatus = errors.New("invalid appointment status")
)

// Request модели

// ListAppointmentsRequest запрос на получение записей провайдера
type ListAppointmentsRequest struct {
	ProviderID      uuid.UUID
	From            *time.Time
	To              *time.Time
	Status          *string
	IncludeInactive bool
}

// ToDomainFilter конвертирует request в domain фильтр
func (r *ListAppointmentsRequest) ToDomainFilter() (domain.AppointmentsFilter, error) {
	filter := domain.AppointmentsFilter{
		ProviderID:      r.ProviderID,
		From:            r.From,
		To:              r.To,
		IncludeInactive: r.IncludeInactive,
	}

	if r.Status != nil {
		status, err := ToDomainAppointmentStatus(*r.Status)
		if err != nil {
			return filter, err
		}
		filter.Status = &status
	}

	return filter, nil
}

// CancelAppointmentRequest запрос на отмену записи провайдером
type CancelAppointmentRequest struct {
	ProviderID         uuid.UUID
	CancellationReason *string `json:"cancellationReason,omitempty"`
}

// ConfirmAppointmentRequest событие об успешной оплате
type ConfirmAppointmentRequest struct {
	SettlementRef *string `json:"settlementRef,omitempty"`
}

// Response модели

// AppointmentResponse ответ с данными записи
type AppointmentResponse struct {
	ID            uuid.UUID `json:"id"`
	ProviderID    uuid.UUID `json:"providerId"`
	ServiceID     uuid.UUID `json:"serviceId"`
	Start         string    `json:"start"` // RFC 3339
	End           string    `json:"end"`
	Status        string    `json:"status"`
	ClientName    *string   `json:"clientName,omitempty"`
	ClientEmail   string    `json:"clientEmail"`
	ClientPhone   string    `json:"clientPhone"`
	VideoProvider string    `json:"videoProvider"`
	SettlementRef *string   `json:"settlementRef,omitempty"`

	CancellationReason *string `json:"cancellationReason,omitempty"`
	CancelledAt        *string `json:"cancelledAt,omitempty"`

	CreatedAt time.Time `json:"createdAt"`
	UpdatedAt time.Time `json:"updatedAt"`
}

// PublicAppointmentResponse данные записи для клиента, открывшего ссылку с токеном.
// Контакты клиента не отдаются.
type PublicAppointmentResponse struct {
	ID            uuid.UUID `json:"id"`
	ProviderID    uuid.UUID `json:"providerId"`
	ServiceID     uuid.UUID `json:"serviceId"`
	Start         string    `json:"start"`
	End           string    `json:"end"`
	Status        string    `json:"status"`
	VideoProvider string    `json:"videoProvider"`
}

// AppointmentListResponse ответ со списком записей
type AppointmentListResponse struct {
	Appointments []AppointmentResponse `json:"appointments"`
}

// JoinTokenResponse ответ с токеном подключения
type JoinTokenResponse struct {
	AppointmentID uuid.UUID `json:"appointmentId"`
	JoinToken     string    `json:"joinToken"`
}

// Методы конвертации

// FromDomainAppointment конвертирует domain модель в DTO
func FromDomainAppointment(a *domain.Appointment) *AppointmentResponse {
	if a == nil {
		return nil
	}

	resp := &AppointmentResponse{
		ID:                 a.ID,
		ProviderID:         a.ProviderID,
		ServiceID:          a.ServiceID,
		Start:              a.StartAt.Format(time.RFC3339),
		End:                a.EndAt.Format(time.RFC3339),
		Status:             string(a.Status),
		ClientName:         a.ClientName,
		ClientEmail:        a.ClientEmail,
		ClientPhone:        a.ClientPhone,
		VideoProvider:      string(a.VideoProvider),
		SettlementRef:      a.SettlementRef,
		CancellationReason: a.CancellationReason,
		CreatedAt:          a.CreatedAt,
		UpdatedAt:          a.UpdatedAt,
	}

	if a.CancelledAt != nil {
		cancelledStr := a.CancelledAt.Format(time.RFC3339)
		resp.CancelledAt = &cancelledStr
	}

	return resp
}

// FromDomainAppointmentPublic конвертирует domain модель в публичный DTO
func FromDomainAppointmentPublic(a *domain.Appointment) *PublicAppointmentResponse {
	if a == nil {
		return nil
	}

	return &PublicAppointmentResponse{
		ID:            a.ID,
		ProviderID:    a.ProviderID,
		ServiceID:     a.ServiceID,
		Start:         a.StartAt.Format(time.RFC3339),
		End:           a.EndAt.Format(time.RFC3339),
		Status:        string(a.Status),
		VideoProvider: string(a.VideoProvider),
	}
}

// FromDomainAppointmentList конвертирует список domain моделей в DTO
func FromDomainAppointmentList(appointments []*domain.Appointment) *AppointmentListResponse {
	resp := &AppointmentListResponse{
		Appointments: make([]AppointmentResponse, 0, len(appointments)),
	}

	for _, a := range appointments {
		resp.Appointments = append(resp.Appointments, *FromDomainAppointment(a))
	}

	return resp
}

// ToDomainAppointmentStatus конвертирует строку в domain статус
func ToDomainAppointmentStatus(status string) (domain.AppointmentStatus, error) {
	s := domain.AppointmentStatus(status)
	if !s.IsKnown() {
		return "", ErrInvalidStatus
	}
	return s, nil
}
