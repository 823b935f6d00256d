package metrics

import (
	"errors"
	"testing"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/stretchr/testify/assert"
)

func TestMetricsCounters(t *testing.T) {
	m := NewWithRegistry("agenda", prometheus.NewRegistry())

	m.ObserveHTTPRequest("GET", "/api/v1/providers/{providerId}/slots", 200, 10*time.Millisecond)
	m.IncAppointment(ResultCreated)
	m.IncAppointment(ResultConflict)
	m.IncAppointment(ResultConflict)
	m.AddSlotsServed(9)
	m.AddPendingExpired(3)
	m.ObserveQuery("exec", errors.New("boom"), time.Millisecond)

	assert.Equal(t, 1.0, testutil.ToFloat64(m.HTTPRequestsTotal.WithLabelValues("GET", "/api/v1/providers/{providerId}/slots", "200")))
	assert.Equal(t, 2.0, testutil.ToFloat64(m.AppointmentsTotal.WithLabelValues(ResultConflict)))
	assert.Equal(t, 9.0, testutil.ToFloat64(m.SlotsServedTotal))
	assert.Equal(t, 3.0, testutil.ToFloat64(m.PendingExpiredTotal))
}

func TestNilMetricsAreNoop(t *testing.T) {
	var m *Metrics
	assert.NotPanics(t, func() {
		m.ObserveHTTPRequest("GET", "/", 200, time.Second)
		m.IncAppointment(ResultCreated)
		m.AddSlotsServed(1)
		m.AddPendingExpired(1)
		m.IncCacheLookup("hit")
		m.ObserveQuery("query", nil, time.Second)
	})
}
