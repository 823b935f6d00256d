package pendingreaper

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/robfig/cron/v3"

	"github.com/m04kA/SMC-AgendaService/pkg/metrics"
)

// ErrInvalidSchedule возвращается при некорректном cron-выражении
var ErrInvalidSchedule = errors.New("pendingreaper: invalid schedule")

// runTimeout ограничение на один проход
const runTimeout = 30 * time.Second

// Reaper освобождает слоты неоплаченных записей: pending старше ttl переводятся в expired
type Reaper struct {
	repo         AppointmentRepository
	ttl          time.Duration
	metrics      *metrics.Metrics
	timeProvider TimeProvider
	logger       Logger
	cron         *cron.Cron
}

// NewReaper создает новый экземпляр воркера
func NewReaper(repo AppointmentRepository, ttl time.Duration, m *metrics.Metrics, logger Logger) *Reaper {
	return &Reaper{
		repo:         repo,
		ttl:          ttl,
		metrics:      m,
		timeProvider: &RealTimeProvider{},
		logger:       logger,
	}
}

// RunOnce выполняет один проход и возвращает количество истекших записей
func (r *Reaper) RunOnce(ctx context.Context) (int64, error) {
	cutoff := r.timeProvider.Now().Add(-r.ttl)

	expired, err := r.repo.ExpirePending(ctx, cutoff)
	if err != nil {
		r.logger.Error("PendingReaper: failed to expire pending appointments: %v", err)
		return 0, err
	}

	if expired > 0 {
		r.metrics.AddPendingExpired(expired)
		r.logger.Info("PendingReaper: expired %d pending appointments created before %s",
			expired, cutoff.UTC().Format(time.RFC3339))
	}

	return expired, nil
}

// Start запускает воркер по расписанию (например, "@every 1m")
func (r *Reaper) Start(schedule string) error {
	c := cron.New()

	_, err := c.AddFunc(schedule, func() {
		ctx, cancel := context.WithTimeout(context.Background(), runTimeout)
		defer cancel()
		_, _ = r.RunOnce(ctx)
	})
	if err != nil {
		return fmt.Errorf("%w: %q: %v", ErrInvalidSchedule, schedule, err)
	}

	r.cron = c
	c.Start()
	r.logger.Info("PendingReaper: started with schedule %q, ttl %s", schedule, r.ttl)
	return nil
}

// Stop останавливает планировщик и ждет завершения текущего прохода или отмены ctx
func (r *Reaper) Stop(ctx context.Context) {
	if r.cron == nil {
		return
	}

	select {
	case <-r.cron.Stop().Done():
		r.logger.Info("PendingReaper: stopped")
	case <-ctx.Done():
		r.logger.Warn("PendingReaper: stop timed out: %v", ctx.Err())
	}
}
