package get_available_slots

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/google/uuid"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/m04kA/SMC-AgendaService/internal/domain"
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

type fakeServices struct {
	service *domain.Service
	err     error
	calls   int
}

func (f *fakeServices) GetByID(_ context.Context, _ uuid.UUID) (*domain.Service, error) {
	f.calls++
	return f.service, f.err
}

type fakeAvailability struct {
	availability *domain.WeeklyAvailability
	err          error
}

func (f *fakeAvailability) Get(_ context.Context, _ uuid.UUID) (*domain.WeeklyAvailability, error) {
	return f.availability, f.err
}

type fakeAppointments struct {
	appointments []*domain.Appointment
	err          error
	from, to     time.Time
}

func (f *fakeAppointments) ListOccupying(_ context.Context, _ uuid.UUID, from, to time.Time) ([]*domain.Appointment, error) {
	f.from, f.to = from, to
	// Хранилище отдает только активные записи
	result := make([]*domain.Appointment, 0)
	for _, a := range f.appointments {
		if a.IsOccupying() {
			result = append(result, a)
		}
	}
	return result, f.err
}

type fakeBlocks struct {
	blocks []*domain.Block
	err    error
}

func (f *fakeBlocks) List(_ context.Context, _ domain.BlocksFilter) ([]*domain.Block, error) {
	return f.blocks, f.err
}

type fixture struct {
	services     *fakeServices
	availability *fakeAvailability
	appointments *fakeAppointments
	blocks       *fakeBlocks
	metrics      *metrics.Metrics
	uc           *UseCase
	loc          *time.Location
}

func newFixture(t *testing.T, now time.Time) *fixture {
	t.Helper()
	loc, err := time.LoadLocation("Europe/Paris")
	require.NoError(t, err)

	f := &fixture{
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
		appointments: &fakeAppointments{},
		blocks:       &fakeBlocks{},
		metrics:      metrics.NewWithRegistry("agenda", prometheus.NewRegistry()),
		loc:          loc,
	}

	f.uc = NewUseCase(f.services, f.availability, f.appointments, f.blocks,
		Settings{Location: loc}, f.metrics, logger.NewNop())
	f.uc.timeProvider = fixedTime{now: now.In(loc)}
	return f
}

func (f *fixture) at(hour, minute int) time.Time {
	return time.Date(2026, 10, 19, hour, minute, 0, 0, f.loc)
}

// Sunday morning before the requested Monday
var sundayMorning = time.Date(2026, 10, 18, 8, 0, 0, 0, time.UTC)

func request() *Request {
	return &Request{ProviderID: providerID.String(), ServiceID: serviceID.String(), Date: "2026-10-19"}
}

func TestExecute_FullDay(t *testing.T) {
	f := newFixture(t, sundayMorning)

	resp, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)

	require.Len(t, resp.Slots, 9)
	for i, s := range resp.Slots {
		assert.True(t, f.at(9+i, 0).Equal(s.Start))
		assert.True(t, f.at(10+i, 0).Equal(s.End))
	}
	assert.Equal(t, 60, resp.DurationMinutes)
	assert.Equal(t, "Europe/Paris", resp.Timezone)
	assert.Equal(t, 9.0, testutil.ToFloat64(f.metrics.SlotsServedTotal))

	dayStart := time.Date(2026, 10, 19, 0, 0, 0, 0, f.loc)
	assert.True(t, dayStart.Equal(f.appointments.from))
	assert.True(t, dayStart.AddDate(0, 0, 1).Equal(f.appointments.to))
}

func TestExecute_ConfirmedAppointmentRemovesSlot(t *testing.T) {
	f := newFixture(t, sundayMorning)
	f.appointments.appointments = []*domain.Appointment{
		{StartAt: f.at(13, 0), EndAt: f.at(14, 0), Status: domain.StatusConfirmed},
	}

	resp, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)

	require.Len(t, resp.Slots, 8)
	for _, s := range resp.Slots {
		assert.False(t, f.at(13, 0).Equal(s.Start))
	}
}

func TestExecute_CancelledAppointmentKeepsSlot(t *testing.T) {
	f := newFixture(t, sundayMorning)
	f.appointments.appointments = []*domain.Appointment{
		{StartAt: f.at(10, 0), EndAt: f.at(11, 0), Status: domain.StatusCancelledByProvider},
	}

	resp, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 9)
}

func TestExecute_BlocksRemoveSlots(t *testing.T) {
	f := newFixture(t, sundayMorning)
	f.blocks.blocks = []*domain.Block{
		{StartAt: f.at(12, 0), EndAt: f.at(14, 0), Reason: ptr.Ptr("lunch")},
	}

	resp, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)
	assert.Len(t, resp.Slots, 7)
}

func TestExecute_TodayDropsStartedSlots(t *testing.T) {
	f := newFixture(t, time.Date(2026, 10, 19, 10, 20, 0, 0, time.UTC)) // 12:20 in Paris
	f.uc.settings.MinBookingNoticeMinutes = 60

	resp, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)

	require.Len(t, resp.Slots, 4)
	assert.True(t, f.at(14, 0).Equal(resp.Slots[0].Start))
}

func TestExecute_ClosedDay(t *testing.T) {
	f := newFixture(t, sundayMorning)
	req := request()
	req.Date = "2026-10-20"

	resp, err := f.uc.Execute(context.Background(), req)
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_NoAvailabilityConfigured(t *testing.T) {
	f := newFixture(t, sundayMorning)
	f.availability.err = availabilityRepo.ErrAvailabilityNotFound

	resp, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)
	assert.Empty(t, resp.Slots)
}

func TestExecute_ServiceDurationFallsBackToSlotMinutes(t *testing.T) {
	f := newFixture(t, sundayMorning)
	f.services.service.DurationMinutes = nil

	resp, err := f.uc.Execute(context.Background(), request())
	require.NoError(t, err)
	assert.Equal(t, 30, resp.DurationMinutes)
	assert.Len(t, resp.Slots, 18)
}

func TestExecute_ValidationBeforeStorage(t *testing.T) {
	tests := []struct {
		name string
		req  *Request
		want error
	}{
		{"missing date", &Request{ProviderID: providerID.String(), ServiceID: serviceID.String()}, ErrInvalidInput},
		{"bad provider", &Request{ProviderID: "42", ServiceID: serviceID.String(), Date: "2026-10-19"}, ErrInvalidInput},
		{"bad service", &Request{ProviderID: providerID.String(), ServiceID: "x", Date: "2026-10-19"}, ErrInvalidInput},
		{"bad date", &Request{ProviderID: providerID.String(), ServiceID: serviceID.String(), Date: "19/10/2026"}, ErrInvalidInput},
		{"past date", &Request{ProviderID: providerID.String(), ServiceID: serviceID.String(), Date: "2026-10-17"}, ErrDateInPast},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			f := newFixture(t, sundayMorning)

			_, err := f.uc.Execute(context.Background(), tt.req)
			assert.ErrorIs(t, err, tt.want)
			assert.Zero(t, f.services.calls, "storage must not be touched")
		})
	}
}

func TestExecute_ServiceNotAvailable(t *testing.T) {
	t.Run("missing", func(t *testing.T) {
		f := newFixture(t, sundayMorning)
		f.services.service = nil
		f.services.err = productRepo.ErrServiceNotFound

		_, err := f.uc.Execute(context.Background(), request())
		assert.ErrorIs(t, err, ErrServiceNotAvailable)
	})

	t.Run("inactive", func(t *testing.T) {
		f := newFixture(t, sundayMorning)
		f.services.service.Active = false

		_, err := f.uc.Execute(context.Background(), request())
		assert.ErrorIs(t, err, ErrServiceNotAvailable)
	})

	t.Run("another provider", func(t *testing.T) {
		f := newFixture(t, sundayMorning)
		f.services.service.ProviderID = uuid.New()

		_, err := f.uc.Execute(context.Background(), request())
		assert.ErrorIs(t, err, ErrServiceNotAvailable)
	})
}

func TestExecute_StorageErrors(t *testing.T) {
	t.Run("appointments", func(t *testing.T) {
		f := newFixture(t, sundayMorning)
		f.appointments.err = errors.New("connection refused")

		_, err := f.uc.Execute(context.Background(), request())
		assert.ErrorIs(t, err, ErrInternal)
	})

	t.Run("availability", func(t *testing.T) {
		f := newFixture(t, sundayMorning)
		f.availability.err = errors.New("connection refused")

		_, err := f.uc.Execute(context.Background(), request())
		assert.ErrorIs(t, err, ErrInternal)
	})
}
