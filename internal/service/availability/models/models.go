package models

import (
	"time"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AgendaService/internal/domain"
)

// Request модели

// CreateBlockRequest запрос на создание блокировки.
// Дата и время задаются в часовом поясе провайдера.
type CreateBlockRequest struct {
	ProviderID uuid.UUID `json:"-"`
	Date       string    `json:"date" validate:"required,datetime=2006-01-02"`
	StartTime  string    `json:"startTime" validate:"required"`
	EndTime    string    `json:"endTime" validate:"required"`
	Reason     *string   `json:"reason,omitempty" validate:"omitempty,max=200"`
}

// Response модели

// TimeRangeResponse рабочий интервал дня
type TimeRangeResponse struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// AvailabilityResponse недельное расписание провайдера
type AvailabilityResponse struct {
	ProviderID  uuid.UUID                      `json:"providerId"`
	Version     int                            `json:"version"`
	Timezone    string                         `json:"timezone"`
	SlotMinutes int                            `json:"slotMinutes"`
	Week        map[string][]TimeRangeResponse `json:"week"`
}

// BlockResponse ответ с данными блокировки
type BlockResponse struct {
	ID         uuid.UUID `json:"id"`
	ProviderID uuid.UUID `json:"providerId"`
	Start      string    `json:"start"`
	End        string    `json:"end"`
	Reason     *string   `json:"reason,omitempty"`
	CreatedAt  time.Time `json:"createdAt"`
}

// BlockListResponse ответ со списком блокировок
type BlockListResponse struct {
	Blocks []BlockResponse `json:"blocks"`
}

// Методы конвертации

// FromDomainAvailability конвертирует domain модель в DTO.
// Закрытые дни отдаются пустым списком.
func FromDomainAvailability(providerID uuid.UUID, a *domain.WeeklyAvailability) *AvailabilityResponse {
	resp := &AvailabilityResponse{
		ProviderID:  providerID,
		Version:     a.Version,
		Timezone:    a.Timezone,
		SlotMinutes: a.SlotMinutes,
		Week:        make(map[string][]TimeRangeResponse, len(domain.DayKeys)),
	}

	for _, day := range domain.DayKeys {
		ranges := make([]TimeRangeResponse, 0, len(a.Week[day]))
		for _, r := range a.Week[day] {
			ranges = append(ranges, TimeRangeResponse{Start: r.Start.String(), End: r.End.String()})
		}
		resp.Week[string(day)] = ranges
	}

	return resp
}

// FromDomainBlock конвертирует domain модель в DTO
func FromDomainBlock(b *domain.Block) *BlockResponse {
	if b == nil {
		return nil
	}
	return &BlockResponse{
		ID:         b.ID,
		ProviderID: b.ProviderID,
		Start:      b.StartAt.Format(time.RFC3339),
		End:        b.EndAt.Format(time.RFC3339),
		Reason:     b.Reason,
		CreatedAt:  b.CreatedAt,
	}
}

// FromDomainBlockList конвертирует список domain моделей в DTO
func FromDomainBlockList(blocks []*domain.Block) *BlockListResponse {
	resp := &BlockListResponse{Blocks: make([]BlockResponse, 0, len(blocks))}
	for _, b := range blocks {
		resp.Blocks = append(resp.Blocks, *FromDomainBlock(b))
	}
	return resp
}
