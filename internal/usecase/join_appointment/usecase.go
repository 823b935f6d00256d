package join_appointment

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"

	appointmentRepo "github.com/m04kA/SMC-AgendaService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AgendaService/internal/scheduling"
)

// UseCase use case для перехода клиента в видеосессию
type UseCase struct {
	appointmentRepo AppointmentRepository
	window          scheduling.JoinWindow
	timeProvider    TimeProvider
	logger          Logger
}

// NewUseCase создает новый экземпляр use case
func NewUseCase(appointmentRepo AppointmentRepository, window scheduling.JoinWindow, logger Logger) *UseCase {
	return &UseCase{
		appointmentRepo: appointmentRepo,
		window:          window,
		timeProvider:    &RealTimeProvider{},
		logger:          logger,
	}
}

// Execute выполняет use case перехода в видеосессию
func (uc *UseCase) Execute(ctx context.Context, appointmentID uuid.UUID) (*Response, error) {
	// 1. Загружаем запись
	appointment, err := uc.appointmentRepo.GetByID(ctx, appointmentID)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			uc.logger.Warn("JoinAppointment: appointment id=%s not found", appointmentID)
			return nil, ErrAppointmentNotFound
		}
		uc.logger.Error("JoinAppointment: failed to get appointment id=%s: %v", appointmentID, err)
		return nil, fmt.Errorf("%w: failed to get appointment: %v", ErrInternal, err)
	}

	// 2. Отмененные и истекшие записи не открываются никогда
	if !appointment.IsJoinable() {
		uc.logger.Warn("JoinAppointment: appointment id=%s has status %s", appointmentID, appointment.Status)
		return nil, ErrNotJoinable
	}

	// 3. Проверяем окно подключения
	now := uc.timeProvider.Now()
	opensAt, closesAt := uc.window.Bounds(appointment.StartAt, appointment.EndAt)

	if !scheduling.IsJoinWindowOpen(appointment.StartAt, appointment.EndAt, now, uc.window) {
		uc.logger.Info("JoinAppointment: window closed for id=%s", appointmentID)
		return nil, &WindowClosedError{
			OpensAt:  opensAt.Format(time.RFC3339),
			ClosesAt: closesAt.Format(time.RFC3339),
		}
	}

	// 4. Выбираем способ подключения
	action := scheduling.ResolveJoinAction(appointment)
	uc.logger.Info("JoinAppointment: id=%s action=%s", appointmentID, action.Kind)

	return &Response{
		AppointmentID: appointment.ID,
		Action:        action,
		OpensAt:       opensAt,
		ClosesAt:      closesAt,
	}, nil
}
