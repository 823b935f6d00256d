package create_appointment

import (
	"context"
	"errors"
	"sync"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AgendaService/internal/domain"
	appointmentRepo "github.com/m04kA/SMC-AgendaService/internal/infra/storage/appointment"
	availabilityRepo "github.com/m04kA/SMC-AgendaService/internal/infra/storage/availability"
	productRepo "github.com/m04kA/SMC-AgendaService/internal/infra/storage/product"
	"github.com/m04kA/SMC-AgendaService/pkg/logger"
	"github.com/m04kA/SMC-AgendaService/pkg/metrics"
	"github.com/m04kA/SMC-AgendaService/pkg/ptr"
)

var (
	providerID = uuid.MustParse("0b8d7c6e-5f4a-4b3c-9d2e-1f0a9b8c7d6e")
	serviceID  = uuid.MustParse("a1b2c3d4-e5f6-4a5b-8c7d-9e0f1a2b3c4d")
)

type fixedTime struct{ now time.Time }

func (f fixedTime) Now() time.Time { return f.now }

// fakeAppointments эмулирует атомарную вставку: пересекающийся интервал отклоняется
type fakeAppointments struct {
	mu       sync.Mutex
	stored   []*domain.Appointment
	err      error
	inserted int
}

func (f *fakeAppointments) CreatePendingIfFree(_ context.Context, a *domain.Appointment) (*domain.Appointment, error) {
	f.mu.Lock()
	defer f.mu.Unlock()

	if f.err != nil {
		return nil, f.err
	}
	for _, existing := range f.stored {
		if existing.IsOccupying() && existing.Interval().Overlaps(a.Interval()) {
			return nil, appointmentRepo.ErrSlotTaken
		}
	}

	created := *a
	created.ID = uuid.New()
	created.Status = domain.StatusPending
	created.CreatedAt = time.Now()
	f.stored = append(f.stored, &created)
	f.inserted++
	return &created, nil
}

type fakeServices struct {
	service *domain.Service
	err     error
}

func (f *fakeServices) GetByID(_ context.Context, _ uuid.UUID) (*domain.Service, error) {
	return f.service, f.err
}

type fakeAvailability struct {
	availability *domain.WeeklyAvailability
	err          error
}

func (f *fakeAvailability) Get(_ context.Context, _ uuid.UUID) (*domain.WeeklyAvailability, error) {
	return f.availability, f.err
}

type fixture struct {
	appointments *fakeAppointments
	services     *fakeServices
	availability *fakeAvailability
	metrics      *metrics.Metrics
	uc           *UseCase
	loc          *time.Location
}

func newFixture(t *testing.T) *fixture {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	f := &fixture{
		appointments: &fakeAppointments{},
		services: &fakeServices{service: &domain.Service{
			ID:              serviceID,
			ProviderID:      providerID,
			DurationMinutes: ptr.Ptr(60),
			PriceCents:      ptr.Ptr(int64(5000)),
			Active:          true,
		}},
		availability: &fakeAvailability{availability: &domain.WeeklyAvailability{
			Version:     domain.AvailabilitySchemaVersion,
			Timezone:    "Europe/Paris",
			SlotMinutes: 30,
			Week: map[domain.DayKey][]domain.TimeRange{
				domain.Monday: {{Start: "09:00", End: "18:00"}},
			},
		}},
		metrics: metrics.NewWithRegistry("agenda", prometheus.NewRegistry()),
		loc:     loc,
	}

	f.uc = NewUseCase(f.appointments, f.services, f.availability, Settings{}, f.metrics, logger.NewNop())
	// Воскресенье перед запрашиваемым понедельником
	f.uc.timeProvider = fixedTime{now: time.Date(2026, 10, 18, 8, 0, 0, 0, loc)}
	return f
}

func (f *fixture) request(hour int) *Request {
	start := time.Date(2026, 10, 19, hour, 0, 0, 0, f.loc)
	return &Request{
		ProviderID:  providerID,
		ServiceID:   serviceID,
		StartAt:     start,
		EndAt:       start.Add(time.Hour),
		ClientName:  ptr.Ptr("Alice"),
		ClientEmail: "alice@example.com",
		ClientPhone: "+33 6 00 00 00 00",
	}
}

func (f *fixture) results(result string) float64 {
	return testutil.ToFloat64(f.metrics.AppointmentsTotal.WithLabelValues(result))
}

func TestExecute_Success(t *testing.T) {
	f := newFixture(t)

	resp, err := f.uc.Execute(context.Background(), f.request(10))
	require.NoError(t, err)

	assert.NotEqual(t, uuid.Nil, resp.ID)
	assert.Equal(t, domain.StatusPending, resp.Status)
	assert.True(t, resp.StartAt.Equal(time.Date(2026, 10, 19, 10, 0, 0, 0, f.loc)))
	assert.Equal(t, time.UTC, resp.StartAt.Location())
	assert.Equal(t, 1, f.appointments.inserted)
	assert.Equal(t, 1.0, f.results(metrics.ResultCreated))
}

func TestExecute_ConcurrentBookingOfSameSlot(t *testing.T) {
	f := newFixture(t)

	const clients = 8
	var (
		wg      sync.WaitGroup
		mu      sync.Mutex
		success int
		taken   int
	)

	for i := 0; i < clients; i++ {
		wg.Add(1)
		go func() {
			defer wg.Done()
			_, err := f.uc.Execute(context.Background(), f.request(10))

			mu.Lock()
			defer mu.Unlock()
			switch {
			case err == nil:
				success++
			case errors.Is(err, ErrSlotTaken):
				taken++
			}
		}()
	}
	wg.Wait()

	assert.Equal(t, 1, success)
	assert.Equal(t, clients-1, taken)
	assert.Equal(t, 1, f.appointments.inserted)
	assert.Equal(t, float64(clients-1), f.results(metrics.ResultConflict))
}

func TestExecute_SlotFreedAfterCancellation(t *testing.T) {
	f := newFixture(t)
	start := time.Date(2026, 10, 19, 10, 0, 0, 0, f.loc)
	f.appointments.stored = []*domain.Appointment{{
		ProviderID: providerID,
		StartAt:    start,
		EndAt:      start.Add(time.Hour),
		Status:     domain.StatusCancelledByProvider,
	}}

	_, err := f.uc.Execute(context.Background(), f.request(10))
	require.NoError(t, err)
}

func TestExecute_Validation(t *testing.T) {
	tests := []struct {
		name   string
		mutate func(r *Request)
	}{
		{name: "nil provider", mutate: func(r *Request) { r.ProviderID = uuid.Nil }},
		{name: "nil service", mutate: func(r *Request) { r.ServiceID = uuid.Nil }},
		{name: "zero start", mutate: func(r *Request) { r.StartAt = time.Time{} }},
		{name: "end before start", mutate: func(r *Request) { r.EndAt = r.StartAt.Add(-time.Hour) }},
		{name: "bad email", mutate: func(r *Request) { r.ClientEmail = "not-an-email" }},
		{name: "empty phone", mutate: func(r *Request) { r.ClientPhone = "  " }},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			req := f.request(10)
			tt.mutate(req)

			_, err := f.uc.Execute(context.Background(), req)
			assert.ErrorIs(t, err, ErrInvalidInput)
			assert.Equal(t, 0, f.appointments.inserted)
		})
	}
}

func TestExecute_ServiceChecks(t *testing.T) {
	tests := []struct {
		name    string
		service *domain.Service
		err     error
		want    error
	}{
		{name: "not found", err: productRepo.ErrServiceNotFound, want: ErrServiceNotAvailable},
		{name: "storage failure", err: errors.New("db down"), want: ErrInternal},
		{
			name:    "other provider",
			service: &domain.Service{ProviderID: uuid.New(), PriceCents: ptr.Ptr(int64(100)), Active: true},
			want:    ErrServiceNotAvailable,
		},
		{
			name:    "inactive",
			service: &domain.Service{ProviderID: providerID, PriceCents: ptr.Ptr(int64(100))},
			want:    ErrServiceNotAvailable,
		},
		{
			name:    "no price",
			service: &domain.Service{ProviderID: providerID, Active: true},
			want:    ErrServiceNotAvailable,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t)
			f.services.service, f.services.err = tt.service, tt.err

			_, err := f.uc.Execute(context.Background(), f.request(10))
			assert.ErrorIs(t, err, tt.want)
			assert.Equal(t, 0, f.appointments.inserted)
		})
	}
}

func TestExecute_SlotChecks(t *testing.T) {
	t.Run("wrong duration", func(t *testing.T) {
		f := newFixture(t)
		req := f.request(10)
		req.EndAt = req.StartAt.Add(30 * time.Minute)

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrInvalidDuration)
	})

	t.Run("misaligned start", func(t *testing.T) {
		f := newFixture(t)
		req := f.request(10)
		req.StartAt = req.StartAt.Add(15 * time.Minute)
		req.EndAt = req.EndAt.Add(15 * time.Minute)

		_, err := f.uc.Execute(context.Background(), req)
		assert.ErrorIs(t, err, ErrSlotNotOffered)
	})

	t.Run("outside opening hours", func(t *testing.T) {
		f := newFixture(t)

		_, err := f.uc.Execute(context.Background(), f.request(18))
		assert.ErrorIs(t, err, ErrSlotNotOffered)
	})

	t.Run("no availability", func(t *testing.T) {
		f := newFixture(t)
		f.availability.availability, f.availability.err = nil, availabilityRepo.ErrAvailabilityNotFound

		_, err := f.uc.Execute(context.Background(), f.request(10))
		assert.ErrorIs(t, err, ErrSlotNotOffered)
	})

	t.Run("already started", func(t *testing.T) {
		f := newFixture(t)
		f.uc.timeProvider = fixedTime{now: time.Date(2026, 10, 19, 10, 30, 0, 0, f.loc)}

		_, err := f.uc.Execute(context.Background(), f.request(10))
		assert.ErrorIs(t, err, ErrSlotInPast)
	})

	t.Run("inside booking notice", func(t *testing.T) {
		f := newFixture(t)
		f.uc.settings.MinBookingNoticeMinutes = 120
		f.uc.timeProvider = fixedTime{now: time.Date(2026, 10, 19, 9, 0, 0, 0, f.loc)}

		_, err := f.uc.Execute(context.Background(), f.request(10))
		assert.ErrorIs(t, err, ErrSlotInPast)

		_, err = f.uc.Execute(context.Background(), f.request(11))
		assert.NoError(t, err)
	})
}

func TestExecute_RepositoryFailure(t *testing.T) {
	f := newFixture(t)
	f.appointments.err = errors.New("connection reset")

	_, err := f.uc.Execute(context.Background(), f.request(10))
	assert.ErrorIs(t, err, ErrInternal)
	assert.Equal(t, 1.0, f.results(metrics.ResultError))
}
