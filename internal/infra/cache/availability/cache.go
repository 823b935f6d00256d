package availability

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/redis/go-redis/v9"

	"github.com/m04kA/SMC-AgendaService/internal/domain"
	"github.com/m04kA/SMC-AgendaService/pkg/metrics"
)

const keyPrefix = "agenda:availability:"

// Результаты обращения к кэшу для метрик
const (
	OutcomeHit   = "hit"
	OutcomeMiss  = "miss"
	OutcomeError = "error"
)

// Cache read-through кэш недельных расписаний поверх Source.
// Недоступность Redis не ломает чтение: запрос уходит в Source.
type Cache struct {
	client  RedisClient
	source  Source
	ttl     time.Duration
	metrics *metrics.Metrics
	logger  Logger
}

// NewCache создает кэш расписаний
func NewCache(client RedisClient, source Source, ttl time.Duration, m *metrics.Metrics, logger Logger) *Cache {
	return &Cache{
		client:  client,
		source:  source,
		ttl:     ttl,
		metrics: m,
		logger:  logger,
	}
}

func key(providerID uuid.UUID) string {
	return keyPrefix + providerID.String()
}

// Get возвращает расписание из кэша или из источника, сохраняя его в кэш.
// Ошибки источника (в т.ч. not found) возвращаются как есть и не кэшируются.
func (c *Cache) Get(ctx context.Context, providerID uuid.UUID) (*domain.WeeklyAvailability, error) {
	raw, err := c.client.Get(ctx, key(providerID)).Bytes()
	switch {
	case err == nil:
		availability, parseErr := domain.ParseWeeklyAvailability(raw)
		if parseErr == nil {
			c.metrics.IncCacheLookup(OutcomeHit)
			return availability, nil
		}
		c.logger.Warn("AvailabilityCache: dropping unreadable entry for provider=%s: %v", providerID, parseErr)
		c.metrics.IncCacheLookup(OutcomeError)
	case errors.Is(err, redis.Nil):
		c.metrics.IncCacheLookup(OutcomeMiss)
	default:
		c.logger.Warn("AvailabilityCache: get failed for provider=%s: %v", providerID, err)
		c.metrics.IncCacheLookup(OutcomeError)
	}

	availability, err := c.source.Get(ctx, providerID)
	if err != nil {
		return nil, err
	}

	document, err := availability.Marshal()
	if err != nil {
		c.logger.Warn("AvailabilityCache: marshal failed for provider=%s: %v", providerID, err)
		return availability, nil
	}

	if err := c.client.Set(ctx, key(providerID), document, c.ttl).Err(); err != nil {
		c.logger.Warn("AvailabilityCache: set failed for provider=%s: %v", providerID, err)
	}

	return availability, nil
}

// Invalidate удаляет расписание провайдера из кэша
func (c *Cache) Invalidate(ctx context.Context, providerID uuid.UUID) error {
	if err := c.client.Del(ctx, key(providerID)).Err(); err != nil {
		return fmt.Errorf("availability.cache: invalidate provider %s: %w", providerID, err)
	}
	return nil
}
