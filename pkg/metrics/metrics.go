package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
)

// Результаты создания записи
const (
	ResultCreated  = "created"
	ResultConflict = "conflict"
	ResultRejected = "rejected"
	ResultError    = "error"
)

// Metrics набор prometheus-метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBOpenConnections  *prometheus.GaugeVec
	DBInUseConnections *prometheus.GaugeVec
	DBIdleConnections  *prometheus.GaugeVec
	DBWaitCount        *prometheus.GaugeVec
	DBQueryDuration    *prometheus.HistogramVec

	SlotsServedTotal        prometheus.Counter
	AppointmentsTotal       *prometheus.CounterVec
	PendingExpiredTotal     prometheus.Counter
	AvailabilityCacheLookup *prometheus.CounterVec
}

// New создает метрики и регистрирует их в глобальном registry
func New(serviceName string) *Metrics {
	return NewWithRegistry(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegistry создает метрики в переданном registry
func NewWithRegistry(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "path", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			Buckets:     prometheus.DefBuckets,
			ConstLabels: constLabels,
		}, []string{"method", "path"}),

		DBOpenConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Number of established connections",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBInUseConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Number of connections currently in use",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBIdleConnections: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Number of idle connections",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBWaitCount: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}, []string{"db"}),
		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
			ConstLabels: constLabels,
		}, []string{"operation", "status"}),

		SlotsServedTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "slots_served_total",
			Help:        "Number of free slots returned to clients",
			ConstLabels: constLabels,
		}),
		AppointmentsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointments_created_total",
			Help:        "Appointment creation attempts by result",
			ConstLabels: constLabels,
		}, []string{"result"}),
		PendingExpiredTotal: prometheus.NewCounter(prometheus.CounterOpts{
			Name:        "pending_appointments_expired_total",
			Help:        "Pending appointments released by the reaper",
			ConstLabels: constLabels,
		}),
		AvailabilityCacheLookup: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "availability_cache_lookups_total",
			Help:        "Availability cache lookups by outcome",
			ConstLabels: constLabels,
		}, []string{"outcome"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBOpenConnections,
		m.DBInUseConnections,
		m.DBIdleConnections,
		m.DBWaitCount,
		m.DBQueryDuration,
		m.SlotsServedTotal,
		m.AppointmentsTotal,
		m.PendingExpiredTotal,
		m.AvailabilityCacheLookup,
	)

	return m
}

// ObserveHTTPRequest фиксирует завершенный HTTP запрос
func (m *Metrics) ObserveHTTPRequest(method, path string, status int, duration time.Duration) {
	if m == nil {
		return
	}
	m.HTTPRequestsTotal.WithLabelValues(method, path, strconv.Itoa(status)).Inc()
	m.HTTPRequestDuration.WithLabelValues(method, path).Observe(duration.Seconds())
}

// ObserveQuery фиксирует длительность SQL операции
func (m *Metrics) ObserveQuery(operation string, err error, duration time.Duration) {
	if m == nil {
		return
	}
	status := "ok"
	if err != nil {
		status = "error"
	}
	m.DBQueryDuration.WithLabelValues(operation, status).Observe(duration.Seconds())
}

// AddSlotsServed увеличивает счетчик отданных слотов
func (m *Metrics) AddSlotsServed(n int) {
	if m == nil {
		return
	}
	m.SlotsServedTotal.Add(float64(n))
}

// IncAppointment фиксирует результат попытки записи
func (m *Metrics) IncAppointment(result string) {
	if m == nil {
		return
	}
	m.AppointmentsTotal.WithLabelValues(result).Inc()
}

// AddPendingExpired увеличивает счетчик освобожденных pending-записей
func (m *Metrics) AddPendingExpired(n int64) {
	if m == nil {
		return
	}
	m.PendingExpiredTotal.Add(float64(n))
}

// IncCacheLookup фиксирует попадание/промах кэша доступности
func (m *Metrics) IncCacheLookup(outcome string) {
	if m == nil {
		return
	}
	m.AvailabilityCacheLookup.WithLabelValues(outcome).Inc()
}
