package create_appointment

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"github.com/m04kA/SMC-AgendaService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AgendaService/internal/infra/storage/appointment"
	availabilityRepo "github.com/m04kA/SMC-AgendaService/internal/infra/storage/availability"
	productRepo "github.com/m04kA/SMC-AgendaService/internal/infra/storage/product"
	"github.com/m04kA/SMC-AgendaService/pkg/metrics"
)

// UseCase use case для создания записи на прием в статусе pending
type UseCase struct {
	appointmentRepo  AppointmentRepository
	serviceRepo      ServiceRepository
	availabilityRepo AvailabilityRepository
	settings         Settings
	metrics          *metrics.Metrics
	timeProvider     TimeProvider
	logger           Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(
	appointmentRepo AppointmentRepository,
	serviceRepo ServiceRepository,
	availabilityRepo AvailabilityRepository,
	settings Settings,
	m *metrics.Metrics,
	logger Logger,
) *UseCase {
	return &UseCase{
		appointmentRepo:  appointmentRepo,
		serviceRepo:      serviceRepo,
		availabilityRepo: availabilityRepo,
		settings:         settings,
		metrics:          m,
		timeProvider:     &RealTimeProvider{},
		logger:           logger,
	}
}

// Execute выполняет use case создания записи.
// Свободность слота проверяется самой вставкой: отдельного чтения перед записью нет,
// поэтому ErrSlotTaken означает "перезапросите слоты", повторов не делаем.
func (uc *UseCase) Execute(ctx context.Context, req *Request) (*Response, error) {
	uc.logger.Info("CreateAppointment: provider=%s, service=%s, start=%s, end=%s",
		req.ProviderID, req.ServiceID, req.StartAt.Format(timeLayout), req.EndAt.Format(timeLayout))

	// 1. Валидация входных данных
	if err := validateRequest(req); err != nil {
		uc.logger.Warn("CreateAppointment: validation failed: %v", err)
		uc.metrics.IncAppointment(metrics.ResultRejected)
		return nil, err
	}

	// 2. Получаем текущее время
	now := uc.timeProvider.Now()

	// 3. Перепроверяем услугу
	service, err := uc.serviceRepo.GetByID(ctx, req.ServiceID)
	if err != nil {
		if errors.Is(err, productRepo.ErrServiceNotFound) {
			uc.logger.Warn("CreateAppointment: service id=%s not found", req.ServiceID)
			uc.metrics.IncAppointment(metrics.ResultRejected)
			return nil, fmt.Errorf("%w: service not found", ErrServiceNotAvailable)
		}
		uc.logger.Error("CreateAppointment: failed to get service id=%s: %v", req.ServiceID, err)
		uc.metrics.IncAppointment(metrics.ResultError)
		return nil, fmt.Errorf("%w: failed to get service: %v", ErrInternal, err)
	}

	if err := validateService(service, req.ProviderID); err != nil {
		uc.logger.Warn("CreateAppointment: %v", err)
		uc.metrics.IncAppointment(metrics.ResultRejected)
		return nil, err
	}

	// 4. Получаем расписание провайдера
	availability, err := uc.availabilityRepo.Get(ctx, req.ProviderID)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			uc.logger.Warn("CreateAppointment: provider=%s has no availability", req.ProviderID)
			uc.metrics.IncAppointment(metrics.ResultRejected)
			return nil, ErrSlotNotOffered
		}
		uc.logger.Error("CreateAppointment: failed to get availability: %v", err)
		uc.metrics.IncAppointment(metrics.ResultError)
		return nil, fmt.Errorf("%w: failed to get availability: %v", ErrInternal, err)
	}

	// 5. Проверяем длительность, время до начала и совпадение со слотом расписания
	duration := service.Duration(availability.SlotMinutes)
	if err := validateSlot(req, availability, duration, now, uc.settings.MinBookingNoticeMinutes); err != nil {
		if errors.Is(err, ErrInternal) {
			uc.logger.Error("CreateAppointment: slot validation failed: %v", err)
			uc.metrics.IncAppointment(metrics.ResultError)
			return nil, err
		}
		uc.logger.Warn("CreateAppointment: slot validation failed: %v", err)
		uc.metrics.IncAppointment(metrics.ResultRejected)
		return nil, err
	}

	// 6. Атомарная вставка: запись создается, только если интервал свободен
	appointment := &domain.Appointment{
		ProviderID:  req.ProviderID,
		ServiceID:   req.ServiceID,
		StartAt:     req.StartAt.UTC(),
		EndAt:       req.EndAt.UTC(),
		ClientName:  req.ClientName,
		ClientEmail: strings.TrimSpace(req.ClientEmail),
		ClientPhone: strings.TrimSpace(req.ClientPhone),
	}

	created, err := uc.appointmentRepo.CreatePendingIfFree(ctx, appointment)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrSlotTaken) {
			uc.logger.Warn("CreateAppointment: slot %s already taken for provider=%s",
				req.StartAt.Format(timeLayout), req.ProviderID)
			uc.metrics.IncAppointment(metrics.ResultConflict)
			return nil, ErrSlotTaken
		}
		uc.logger.Error("CreateAppointment: failed to create appointment: %v", err)
		uc.metrics.IncAppointment(metrics.ResultError)
		return nil, fmt.Errorf("%w: failed to create appointment: %v", ErrInternal, err)
	}

	uc.metrics.IncAppointment(metrics.ResultCreated)
	uc.logger.Info("CreateAppointment: created pending appointment id=%s", created.ID)

	return &Response{
		ID:         created.ID,
		ProviderID: created.ProviderID,
		ServiceID:  created.ServiceID,
		StartAt:    created.StartAt,
		EndAt:      created.EndAt,
		Status:     created.Status,
		CreatedAt:  created.CreatedAt,
	}, nil
}

const timeLayout = "2006-01-02T15:04:05Z07:00"
