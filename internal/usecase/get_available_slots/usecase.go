package get_available_slots

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/m04kA/SMC-AgendaService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-AgendaService/internal/infra/storage/availability"
	productRepo "github.com/m04kA/SMC-AgendaService/internal/infra/storage/product"
	"github.com/m04kA/SMC-AgendaService/internal/scheduling"
	"github.com/m04kA/SMC-AgendaService/pkg/metrics"
)

// UseCase use case для получения доступных слотов
type UseCase struct {
	serviceRepo      ServiceRepository
	availabilityRepo AvailabilityRepository
	appointmentRepo  AppointmentRepository
	blockRepo        BlockRepository
	settings         Settings
	metrics          *metrics.Metrics
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	serviceRepo ServiceRepository,
	availabilityRepo AvailabilityRepository,
	appointmentRepo AppointmentRepository,
	blockRepo BlockRepository,
	settings Settings,
	m *metrics.Metrics,
	logger Logger,
) *UseCase {
	if settings.Location == nil {
		settings.Location = time.UTC
	}
	return &UseCase{
		serviceRepo:      serviceRepo,
		availabilityRepo: availabilityRepo,
		appointmentRepo:  appointmentRepo,
		blockRepo:        blockRepo,
		settings:         settings,
		metrics:          m,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case получения доступных слотов
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("GetAvailableSlots: provider=%s, service=%s, date=%s", req.ProviderID, req.ServiceID, req.Date)

	// 1. Получаем текущее время
	now := uc.timeProvider.Now()

	// 2. Валидация входных данных (до обращения к хранилищу)
	parsed, err := validateRequest(req, now, uc.settings.Location)
	if err != nil {
		uc.logger.Warn("GetAvailableSlots: validation failed: %v", err)
		return nil, err
	}

	// 3. Получаем услугу и проверяем, что ее можно бронировать у этого провайдера
	service, err := uc.serviceRepo.GetByID(ctx, parsed.serviceID)
	if err != nil {
		if errors.Is(err, productRepo.ErrServiceNotFound) {
			uc.logger.Warn("GetAvailableSlots: service id=%s not found", parsed.serviceID)
			return nil, ErrServiceNotAvailable
		}
		uc.logger.Error("GetAvailableSlots: failed to get service id=%s: %v", parsed.serviceID, err)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if !service.IsBookable(parsed.providerID) {
		uc.logger.Warn("GetAvailableSlots: service id=%s is inactive or belongs to another provider", service.ID)
		return nil, ErrServiceNotAvailable
	}

	response := &Response{
		ProviderID: parsed.providerID,
		ServiceID:  parsed.serviceID,
		Date:       req.Date,
		Slots:      []domain.Slot{},
	}

	// 4. Получаем недельное расписание провайдера; его отсутствие - не ошибка
	availability, err := uc.availabilityRepo.Get(ctx, parsed.providerID)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			uc.logger.Info("GetAvailableSlots: provider=%s has no availability configured", parsed.providerID)
			return response, nil
		}
		uc.logger.Error("GetAvailableSlots: failed to get availability: %v", err)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	loc, err := availability.Location()
	if err != nil {
		uc.logger.Error("GetAvailableSlots: provider=%s: %v", parsed.providerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInternal, err)
	}

	// 5. Дата в зоне провайдера и длительность слота
	year, month, day := parsed.date.Date()
	date := time.Date(year, month, day, 0, 0, 0, 0, loc)
	duration := service.Duration(availability.SlotMinutes)

	response.Timezone = availability.Timezone
	response.DurationMinutes = duration

	// 6. Генерируем кандидатов
	candidates := scheduling.GenerateSlots(availability, date.Weekday(), date, duration)
	if len(candidates) == 0 {
		uc.logger.Info("GetAvailableSlots: provider=%s is closed on %s", parsed.providerID, req.Date)
		return response, nil
	}

	// 7. Занятое время за календарный день: активные записи и блокировки
	dayStart, dayEnd := scheduling.DayBounds(date, loc)

	appointments, err := uc.appointmentRepo.ListOccupying(ctx, parsed.providerID, dayStart, dayEnd)
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get appointments: %v", err)
		return nil, fmt.Errorf("%w: failed to get appointments: %v", ErrInternal, err)
	}

	blocks, err := uc.blockRepo.List(ctx, domain.BlocksFilter{
		ProviderID: parsed.providerID,
		From:       &dayStart,
		To:         &dayEnd,
	})
	if err != nil {
		uc.logger.Error("GetAvailableSlots: failed to get blocks: %v", err)
		return nil, fmt.Errorf("%w: failed to get blocks: %v", ErrInternal, err)
	}

	// 8. Убираем занятые слоты и слоты, начинающиеся раньше минимального уведомления
	free := scheduling.RemoveBusy(candidates, scheduling.BusyIntervals(appointments, blocks))
	cutoff := now.Add(time.Duration(uc.settings.MinBookingNoticeMinutes) * time.Minute)
	free = scheduling.DropStartingBefore(free, cutoff)

	uc.metrics.AddSlotsServed(len(free))
	uc.logger.Info("GetAvailableSlots: %d of %d slots free for provider=%s, service=%s, date=%s",
		len(free), len(candidates), parsed.providerID, parsed.serviceID, req.Date)

	response.Slots = free
	return response, nil
}
