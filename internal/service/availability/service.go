package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/go-playground/validator/v10"
	"github.com/google/uuid"

	"github.com/m04kA/SMC-AgendaService/internal/domain"
	availabilityRepo "github.com/m04kA/SMC-AgendaService/internal/infra/storage/availability"
	blockRepo "github.com/m04kA/SMC-AgendaService/internal/infra/storage/block"
	"github.com/m04kA/SMC-AgendaService/internal/scheduling"
	"github.com/m04kA/SMC-AgendaService/internal/service/availability/models"
	"github.com/m04kA/SMC-AgendaService/pkg/types"
)

// upcomingBlocksLimit сколько ближайших блокировок отдается в списке
const upcomingBlocksLimit = 50

// Service сервис недельного расписания и блокировок провайдера
type Service struct {
	reader       AvailabilityReader
	writer       AvailabilityWriter
	cache        CacheInvalidator
	blockRepo    BlockRepository
	location     *time.Location
	validate     *validator.Validate
	timeProvider TimeProvider
	logger       Logger
}

// NewService создает новый экземпляр сервиса расписания.
// cache может быть nil, если кэш выключен.
// location используется для блокировок провайдера без настроенного расписания.
func NewService(
	reader AvailabilityReader,
	writer AvailabilityWriter,
	cache CacheInvalidator,
	blockRepo BlockRepository,
	location *time.Location,
	logger Logger,
) *Service {
	if location == nil {
		location = time.UTC
	}
	return &Service{
		reader:       reader,
		writer:       writer,
		cache:        cache,
		blockRepo:    blockRepo,
		location:     location,
		validate:     validator.New(),
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// Get возвращает недельное расписание провайдера
func (s *Service) Get(ctx context.Context, providerID uuid.UUID) (*models.AvailabilityResponse, error) {
	s.logger.Info("Get: fetching availability for provider=%s", providerID)

	availability, err := s.reader.Get(ctx, providerID)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			s.logger.Warn("Get: availability not configured for provider=%s", providerID)
			return nil, ErrAvailabilityNotFound
		}
		s.logger.Error("Get: failed to get availability for provider=%s: %v", providerID, err)
		return nil, fmt.Errorf("%w: Get - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainAvailability(providerID, availability), nil
}

// Update разбирает, валидирует и сохраняет расписание.
// Принимаются версия 2 и устаревший формат с одним интервалом на день.
func (s *Service) Update(ctx context.Context, providerID uuid.UUID, raw []byte) (*models.AvailabilityResponse, error) {
	s.logger.Info("Update: updating availability for provider=%s", providerID)

	// 1. Разбираем документ
	availability, err := domain.ParseWeeklyAvailability(raw)
	if err != nil {
		s.logger.Warn("Update: failed to parse availability: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 2. Валидируем
	if err := availability.Validate(); err != nil {
		s.logger.Warn("Update: invalid availability for provider=%s: %v", providerID, err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	// 3. Сохраняем
	if err := s.writer.Update(ctx, providerID, availability); err != nil {
		if errors.Is(err, availabilityRepo.ErrProfileNotFound) {
			s.logger.Warn("Update: profile not found for provider=%s", providerID)
			return nil, ErrProviderNotFound
		}
		s.logger.Error("Update: failed to save availability for provider=%s: %v", providerID, err)
		return nil, fmt.Errorf("%w: Update - repository error: %v", ErrInternal, err)
	}

	// 4. Сбрасываем кэш; устаревшая запись доживет не дольше TTL
	if s.cache != nil {
		if err := s.cache.Invalidate(ctx, providerID); err != nil {
			s.logger.Warn("Update: failed to invalidate cache for provider=%s: %v", providerID, err)
		}
	}

	s.logger.Info("Update: availability saved for provider=%s", providerID)
	return models.FromDomainAvailability(providerID, availability), nil
}

// CreateBlock создает блокировку на дату в часовом поясе провайдера
func (s *Service) CreateBlock(ctx context.Context, req *models.CreateBlockRequest) (*models.BlockResponse, error) {
	s.logger.Info("CreateBlock: provider=%s, date=%s, %s-%s", req.ProviderID, req.Date, req.StartTime, req.EndTime)

	// 1. Валидация полей
	if err := s.validate.Struct(req); err != nil {
		s.logger.Warn("CreateBlock: validation failed: %v", err)
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}

	startTime, err := types.NewTimeStringFromString(req.StartTime)
	if err != nil {
		return nil, fmt.Errorf("%w: startTime: %v", ErrInvalidInput, err)
	}
	endTime, err := types.NewTimeStringFromString(req.EndTime)
	if err != nil {
		return nil, fmt.Errorf("%w: endTime: %v", ErrInvalidInput, err)
	}
	if !startTime.IsBefore(endTime) {
		return nil, fmt.Errorf("%w: startTime must be before endTime", ErrInvalidInput)
	}

	// 2. Часовой пояс провайдера
	loc, err := s.providerLocation(ctx, req.ProviderID)
	if err != nil {
		return nil, err
	}

	// 3. Дата не раньше сегодняшней
	date, err := scheduling.ParseCivilDate(req.Date, loc)
	if err != nil {
		return nil, fmt.Errorf("%w: %v", ErrInvalidInput, err)
	}
	if scheduling.IsDateInPast(date, s.timeProvider.Now(), loc) {
		s.logger.Warn("CreateBlock: date %s is in the past", req.Date)
		return nil, fmt.Errorf("%w: date is in the past", ErrInvalidInput)
	}

	// 4. Сохраняем абсолютные моменты
	block, err := s.blockRepo.Create(ctx, &domain.Block{
		ProviderID: req.ProviderID,
		StartAt:    startTime.On(date, loc).UTC(),
		EndAt:      endTime.On(date, loc).UTC(),
		Reason:     req.Reason,
	})
	if err != nil {
		s.logger.Error("CreateBlock: failed to create block for provider=%s: %v", req.ProviderID, err)
		return nil, fmt.Errorf("%w: CreateBlock - repository error: %v", ErrInternal, err)
	}

	s.logger.Info("CreateBlock: created block id=%s for provider=%s", block.ID, req.ProviderID)
	return models.FromDomainBlock(block), nil
}

// ListBlocks возвращает ближайшие еще не закончившиеся блокировки
func (s *Service) ListBlocks(ctx context.Context, providerID uuid.UUID) (*models.BlockListResponse, error) {
	s.logger.Info("ListBlocks: provider=%s", providerID)

	now := s.timeProvider.Now()
	blocks, err := s.blockRepo.List(ctx, domain.BlocksFilter{
		ProviderID: providerID,
		From:       &now,
		Limit:      upcomingBlocksLimit,
	})
	if err != nil {
		s.logger.Error("ListBlocks: repository error for provider=%s: %v", providerID, err)
		return nil, fmt.Errorf("%w: ListBlocks - repository error: %v", ErrInternal, err)
	}

	return models.FromDomainBlockList(blocks), nil
}

// DeleteBlock удаляет блокировку провайдера. Записи на этот интервал не затрагиваются.
func (s *Service) DeleteBlock(ctx context.Context, providerID, blockID uuid.UUID) error {
	s.logger.Info("DeleteBlock: provider=%s, block=%s", providerID, blockID)

	if err := s.blockRepo.Delete(ctx, providerID, blockID); err != nil {
		if errors.Is(err, blockRepo.ErrBlockNotFound) {
			s.logger.Warn("DeleteBlock: block id=%s not found for provider=%s", blockID, providerID)
			return ErrBlockNotFound
		}
		s.logger.Error("DeleteBlock: repository error: %v", err)
		return fmt.Errorf("%w: DeleteBlock - repository error: %v", ErrInternal, err)
	}

	return nil
}

// providerLocation возвращает зону из расписания провайдера или системную зону
func (s *Service) providerLocation(ctx context.Context, providerID uuid.UUID) (*time.Location, error) {
	availability, err := s.reader.Get(ctx, providerID)
	if err != nil {
		if errors.Is(err, availabilityRepo.ErrAvailabilityNotFound) {
			return s.location, nil
		}
		s.logger.Error("providerLocation: failed to get availability for provider=%s: %v", providerID, err)
		return nil, fmt.Errorf("%w: providerLocation - repository error: %v", ErrInternal, err)
	}

	loc, err := availability.Location()
	if err != nil {
		s.logger.Warn("providerLocation: bad timezone %q for provider=%s, using default", availability.Timezone, providerID)
		return s.location, nil
	}
	return loc, nil
}
