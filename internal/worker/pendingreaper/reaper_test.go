package pendingreaper

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AgendaService/pkg/logger"
	"github.com/m04kA/SMC-AgendaService/pkg/metrics"
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

type fakeRepo struct {
	cutoff  time.Time
	expired int64
	err     error
	calls   int
}

func (f *fakeRepo) ExpirePending(_ context.Context, createdBefore time.Time) (int64, error) {
	f.calls++
	f.cutoff = createdBefore
	return f.expired, f.err
}

func newReaper(repo *fakeRepo) (*Reaper, *metrics.Metrics) {
	m := metrics.NewWithRegistry("agenda", prometheus.NewRegistry())
	r := NewReaper(repo, 30*time.Minute, m, logger.NewNop())
	r.timeProvider = fixedTime{now: time.Date(2026, 10, 19, 12, 0, 0, 0, time.UTC)}
	return r, m
}

func TestRunOnce(t *testing.T) {
	repo := &fakeRepo{expired: 3}
	r, m := newReaper(repo)

	n, err := r.RunOnce(context.Background())
	require.NoError(t, err)
	assert.Equal(t, int64(3), n)
	assert.True(t, repo.cutoff.Equal(time.Date(2026, 10, 19, 11, 30, 0, 0, time.UTC)))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.PendingExpiredTotal))
}

func TestRunOnce_Error(t *testing.T) {
	repo := &fakeRepo{err: errors.New("db down")}
	r, m := newReaper(repo)

	_, err := r.RunOnce(context.Background())
	assert.Error(t, err)
	assert.Equal(t, 0.0, testutil.ToFloat64(m.PendingExpiredTotal))
}

func TestStart_InvalidSchedule(t *testing.T) {
	r, _ := newReaper(&fakeRepo{})

	err := r.Start("every minute please")
	assert.ErrorIs(t, err, ErrInvalidSchedule)
}

func TestStartStop(t *testing.T) {
	r, _ := newReaper(&fakeRepo{})

	require.NoError(t, r.Start("@every 1h"))

	ctx, cancel := context.WithTimeout(context.Background(), time.Second)
	defer cancel()
	r.Stop(ctx)
}

func TestStop_NotStarted(t *testing.T) {
	r, _ := newReaper(&fakeRepo{})
	r.Stop(context.Background())
}
