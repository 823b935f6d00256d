package appointments

import (
	"context"
	"errors"
	"fmt"
	"unicode/utf8"

	"github.com/google/uuid"

	"github.com/m04kA/SMC-AgendaService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AgendaService/internal/infra/storage/appointment"
	"github.com/m04kA/SMC-AgendaService/internal/service/appointments/models"
)

// Service сервис жизненного цикла записей
type Service struct {
	appointmentRepo AppointmentRepository
	txManager       TransactionManager
	generateToken   TokenGenerator
	logger          Logger
}

// NewService создает новый экземпляр сервиса записей
func NewService(
	appointmentRepo AppointmentRepository,
	txManager TransactionManager,
	logger Logger,
) *Service {
	return &Service{
		appointmentRepo: appointmentRepo,
		txManager:       txManager,
		generateToken:   GenerateJoinToken,
		logger:          logger,
	}
}

// GetByID получает запись по ID.
// Провайдер видит только свои записи.
func (s *Service) GetByID(ctx context.Context, id, providerID uuid.UUID) (*models.AppointmentResponse, error) {
	s.logger.Info("GetByID: fetching appointment id=%s for provider=%s", id, providerID)

	appointment, err := s.getAppointment(ctx, "GetByID", id)
	if err != nil {
		return nil, err
	}

	if appointment.ProviderID != providerID {
		s.logger.Warn("GetByID: access denied for provider=%s to appointment id=%s", providerID, id)
		return nil, ErrAccessDenied
	}

	return models.FromDomainAppointment(appointment), nil
}

// GetByJoinToken получает запись по токену подключения из ссылки клиента
func (s *Service) GetByJoinToken(ctx context.Context, token string) (*models.PublicAppointmentResponse, error) {
	appointment, err := s.appointmentRepo.GetByJoinToken(ctx, token)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("GetByJoinToken: no appointment for the given token")
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("GetByJoinToken: repository error: %v", err)
		return nil, fmt.Errorf("%w: GetByJoinToken - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("GetByJoinToken: resolved appointment id=%s", appointment.ID)
	return models.FromDomainAppointmentPublic(appointment), nil
}

// ListForProvider получает записи провайдера с фильтрацией по периоду и статусу
func (s *Service) ListForProvider(ctx context.Context, req *models.ListAppointmentsRequest) (*models.AppointmentListResponse, error) {
	s.logger.Info("ListForProvider: fetching appointments for provider=%s, includeInactive=%t",
		req.ProviderID, req.IncludeInactive)

	if req.From != nil && req.To != nil && !req.From.Before(*req.To) {
		s.logger.Warn("ListForProvider: invalid period for provider=%s", req.ProviderID)
		return nil, fmt.Errorf("%w: from must be before to", ErrInvalidInput)
	}

	filter, err := req.ToDomainFilter()
	if err != nil {
		s.logger.Warn("ListForProvider: invalid filter for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: invalid status", ErrInvalidInput)
	}

	appointments, err := s.appointmentRepo.ListWithFilter(ctx, filter)
	if err != nil {
		s.logger.Error("ListForProvider: repository error for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: ListForProvider - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("ListForProvider: fetched %d appointments for provider=%s", len(appointments), req.ProviderID)
	return models.FromDomainAppointmentList(appointments), nil
}

// Cancel отменяет запись со стороны провайдера.
// Строка блокируется на время проверки статуса, слот освобождается сразу.
func (s *Service) Cancel(ctx context.Context, id uuid.UUID, req *models.CancelAppointmentRequest) error {
	s.logger.Info("Cancel: cancelling appointment id=%s by provider=%s", id, req.ProviderID)

	if req.CancellationReason != nil && utf8.RuneCountInString(*req.CancellationReason) > domain.MaxCancellationReasonLength {
		return fmt.Errorf("%w: cancellation reason is too long", ErrInvalidInput)
	}

	return s.txManager.Do(ctx, func(ctx context.Context) error {
		appointment, err := s.getAppointment(ctx, "Cancel", id)
		if err != nil {
			return err
		}

		if appointment.ProviderID != req.ProviderID {
			s.logger.Warn("Cancel: access denied for provider=%s to appointment id=%s", req.ProviderID, id)
			return ErrAccessDenied
		}

		if !appointment.CanBeCancelled() {
			s.logger.Warn("Cancel: appointment id=%s cannot be cancelled, status=%s", id, appointment.Status)
			return ErrCannotCancel
		}

		if err := s.appointmentRepo.Cancel(ctx, id, req.CancellationReason); err != nil {
			if errors.Is(err, appointmentRepo.ErrStatusConflict) {
				return ErrCannotCancel
			}
			s.logger.Error("Cancel: repository error for appointment id=%s: %v", id, err)
			return fmt.Errorf("%w: Cancel - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("Cancel: appointment id=%s cancelled by provider", id)
		return nil
	})
}

// Confirm переводит запись в confirmed по событию оплаты.
// Повторное подтверждение уже подтвержденной записи ничего не меняет.
func (s *Service) Confirm(ctx context.Context, id uuid.UUID, req *models.ConfirmAppointmentRequest) error {
	s.logger.Info("Confirm: confirming appointment id=%s", id)

	return s.txManager.Do(ctx, func(ctx context.Context) error {
		appointment, err := s.getAppointment(ctx, "Confirm", id)
		if err != nil {
			return err
		}

		if appointment.Status == domain.StatusConfirmed {
			s.logger.Info("Confirm: appointment id=%s already confirmed", id)
			return nil
		}

		if !appointment.CanBeConfirmed() {
			s.logger.Warn("Confirm: appointment id=%s cannot be confirmed, status=%s", id, appointment.Status)
			return ErrCannotConfirm
		}

		if err := s.appointmentRepo.Confirm(ctx, id, req.SettlementRef); err != nil {
			if errors.Is(err, appointmentRepo.ErrStatusConflict) {
				return ErrCannotConfirm
			}
			s.logger.Error("Confirm: repository error for appointment id=%s: %v", id, err)
			return fmt.Errorf("%w: Confirm - repository error: %v", ErrInternal, err)
		}

		s.logger.Info("Confirm: appointment id=%s confirmed", id)
		return nil
	})
}

// IssueJoinToken возвращает токен подключения, выдавая новый при первом обращении.
// Токен устанавливается условным UPDATE, поэтому параллельные вызовы получают один и тот же токен.
func (s *Service) IssueJoinToken(ctx context.Context, id uuid.UUID) (*models.JoinTokenResponse, error) {
	s.logger.Info("IssueJoinToken: appointment id=%s", id)

	appointment, err := s.getAppointment(ctx, "IssueJoinToken", id)
	if err != nil {
		return nil, err
	}

	if !appointment.IsJoinable() {
		s.logger.Warn("IssueJoinToken: appointment id=%s has status %s", id, appointment.Status)
		return nil, ErrNotJoinable
	}

	if appointment.JoinToken != nil && *appointment.JoinToken != "" {
		return &models.JoinTokenResponse{AppointmentID: id, JoinToken: *appointment.JoinToken}, nil
	}

	for attempt := 1; attempt <= domain.JoinTokenAttempts; attempt++ {
		token, err := s.generateToken()
		if err != nil {
			s.logger.Error("IssueJoinToken: failed to generate token: %v", err)
			return nil, fmt.Errorf("%w: IssueJoinToken - generate token: %v", ErrInternal, err)
		}

		stored, err := s.appointmentRepo.SetJoinTokenIfEmpty(ctx, id, token)
		if errors.Is(err, appointmentRepo.ErrJoinTokenCollision) {
			s.logger.Warn("IssueJoinToken: token collision for appointment id=%s, attempt %d", id, attempt)
			continue
		}
		if err != nil {
			s.logger.Error("IssueJoinToken: repository error for appointment id=%s: %v", id, err)
			return nil, fmt.Errorf("%w: IssueJoinToken - repository error: %v", ErrInternal, err)
		}

		if stored {
			s.logger.Info("IssueJoinToken: issued token for appointment id=%s", id)
			return &models.JoinTokenResponse{AppointmentID: id, JoinToken: token}, nil
		}

		// Токен выдан параллельным запросом
		current, err := s.getAppointment(ctx, "IssueJoinToken", id)
		if err != nil {
			return nil, err
		}
		if current.JoinToken != nil && *current.JoinToken != "" {
			return &models.JoinTokenResponse{AppointmentID: id, JoinToken: *current.JoinToken}, nil
		}
	}

	s.logger.Error("IssueJoinToken: no unique token after %d attempts for appointment id=%s", domain.JoinTokenAttempts, id)
	return nil, fmt.Errorf("%w: IssueJoinToken - attempts exhausted", ErrInternal)
}

// MarkConfirmationEmailSent отмечает отправку письма-подтверждения.
// Отметка ставится один раз, поэтому повторный вызов получает ErrConfirmationEmailAlreadySent и письмо не дублируется.
func (s *Service) MarkConfirmationEmailSent(ctx context.Context, id uuid.UUID) error {
	s.logger.Info("MarkConfirmationEmailSent: appointment id=%s", id)

	appointment, err := s.getAppointment(ctx, "MarkConfirmationEmailSent", id)
	if err != nil {
		return err
	}

	if appointment.Status != domain.StatusConfirmed {
		s.logger.Warn("MarkConfirmationEmailSent: appointment id=%s has status %s", id, appointment.Status)
		return ErrNotConfirmed
	}

	marked, err := s.appointmentRepo.MarkConfirmationEmailSent(ctx, id)
	if err != nil {
		s.logger.Error("MarkConfirmationEmailSent: repository error for appointment id=%s: %v", id, err)
		return fmt.Errorf("%w: MarkConfirmationEmailSent - repository error: %v", ErrInternal, err)
	}

	if !marked {
		s.logger.Warn("MarkConfirmationEmailSent: already marked for appointment id=%s", id)
		return ErrConfirmationEmailAlreadySent
	}

	return nil
}

func (s *Service) getAppointment(ctx context.Context, op string, id uuid.UUID) (*domain.Appointment, error) {
	appointment, err := s.appointmentRepo.GetByID(ctx, id)
	if err != nil {
		if errors.Is(err, appointmentRepo.ErrAppointmentNotFound) {
			s.logger.Warn("%s: appointment id=%s not found", op, id)
			return nil, ErrAppointmentNotFound
		}
		s.logger.Error("%s: repository error for appointment id=%s: %v", op, id, err)
		return nil, fmt.Errorf("%w: %s - repository error: %v", ErrInternal, op, err)
	}
	return appointment, nil
}
