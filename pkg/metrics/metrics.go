package metrics

import (
	"github.com/prometheus/client_golang/prometheus"
)

// Metrics набор метрик сервиса
type Metrics struct {
	HTTPRequestsTotal   *prometheus.CounterVec
	HTTPRequestDuration *prometheus.HistogramVec

	DBQueryDuration   *prometheus.HistogramVec
	DBQueryErrors     *prometheus.CounterVec
	DBOpenConnections prometheus.Gauge
	DBInUse           prometheus.Gauge
	DBIdle            prometheus.Gauge
	DBWaitCount       prometheus.Gauge

	RemindersClaimed  *prometheus.CounterVec
	ReminderTickFails *prometheus.CounterVec

	NotificationsSent    *prometheus.CounterVec
	NotificationsFailed  *prometheus.CounterVec
	NotificationsDropped *prometheus.CounterVec

	BookingsCreated  *prometheus.CounterVec
	BookingsRejected *prometheus.CounterVec
}

// New регистрирует метрики в default registry
func New(serviceName string) *Metrics {
	return NewWithRegisterer(serviceName, prometheus.DefaultRegisterer)
}

// NewWithRegisterer регистрирует метрики в переданном registry (удобно для тестов)
func NewWithRegisterer(serviceName string, reg prometheus.Registerer) *Metrics {
	constLabels := prometheus.Labels{"service": serviceName}

	m := &Metrics{
		HTTPRequestsTotal: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "http_requests_total",
			Help:        "Total number of HTTP requests",
			ConstLabels: constLabels,
		}, []string{"method", "route", "status"}),
		HTTPRequestDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "http_request_duration_seconds",
			Help:        "HTTP request latency",
			ConstLabels: constLabels,
			Buckets:     prometheus.DefBuckets,
		}, []string{"method", "route"}),

		DBQueryDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Name:        "db_query_duration_seconds",
			Help:        "Database query latency",
			ConstLabels: constLabels,
			Buckets:     []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1},
		}, []string{"operation"}),
		DBQueryErrors: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "db_query_errors_total",
			Help:        "Database query errors",
			ConstLabels: constLabels,
		}, []string{"operation"}),
		DBOpenConnections: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_open_connections",
			Help:        "Open connections in the pool",
			ConstLabels: constLabels,
		}),
		DBInUse: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_in_use_connections",
			Help:        "Connections currently in use",
			ConstLabels: constLabels,
		}),
		DBIdle: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_idle_connections",
			Help:        "Idle connections in the pool",
			ConstLabels: constLabels,
		}),
		DBWaitCount: prometheus.NewGauge(prometheus.GaugeOpts{
			Name:        "db_wait_count",
			Help:        "Total number of connections waited for",
			ConstLabels: constLabels,
		}),

		RemindersClaimed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "reminders_claimed_total",
			Help:        "Appointments claimed for a reminder bucket",
			ConstLabels: constLabels,
		}, []string{"bucket"}),
		ReminderTickFails: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "reminder_claim_errors_total",
			Help:        "Failed claim statements per bucket",
			ConstLabels: constLabels,
		}, []string{"bucket"}),

		NotificationsSent: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_sent_total",
			Help:        "Delivered notifications",
			ConstLabels: constLabels,
		}, []string{"kind"}),
		NotificationsFailed: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_failed_total",
			Help:        "Notifications the gateway failed to deliver",
			ConstLabels: constLabels,
		}, []string{"kind"}),
		NotificationsDropped: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "notifications_dropped_total",
			Help:        "Notifications dropped because the outbox queue was full",
			ConstLabels: constLabels,
		}, []string{"kind"}),

		BookingsCreated: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointments_created_total",
			Help:        "Created appointments",
			ConstLabels: constLabels,
		}, []string{"type"}),
		BookingsRejected: prometheus.NewCounterVec(prometheus.CounterOpts{
			Name:        "appointments_rejected_total",
			Help:        "Rejected appointment requests by error kind",
			ConstLabels: constLabels,
		}, []string{"type", "kind"}),
	}

	reg.MustRegister(
		m.HTTPRequestsTotal,
		m.HTTPRequestDuration,
		m.DBQueryDuration,
		m.DBQueryErrors,
		m.DBOpenConnections,
		m.DBInUse,
		m.DBIdle,
		m.DBWaitCount,
		m.RemindersClaimed,
		m.ReminderTickFails,
		m.NotificationsSent,
		m.NotificationsFailed,
		m.NotificationsDropped,
		m.BookingsCreated,
		m.BookingsRejected,
	)

	return m
}

// Методы ниже безопасны для nil-получателя: при выключенных метриках компоненты получают nil.

func (m *Metrics) ObserveRemindersClaimed(bucket string, n int) {
	if m == nil || n == 0 {
		return
	}
	m.RemindersClaimed.WithLabelValues(bucket).Add(float64(n))
}

func (m *Metrics) IncReminderClaimError(bucket string) {
	if m == nil {
		return
	}
	m.ReminderTickFails.WithLabelValues(bucket).Inc()
}

func (m *Metrics) IncNotificationSent(kind string) {
	if m == nil {
		return
	}
	m.NotificationsSent.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncNotificationFailed(kind string) {
	if m == nil {
		return
	}
	m.NotificationsFailed.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncNotificationDropped(kind string) {
	if m == nil {
		return
	}
	m.NotificationsDropped.WithLabelValues(kind).Inc()
}

func (m *Metrics) IncBookingCreated(typeCode string) {
	if m == nil {
		return
	}
	m.BookingsCreated.WithLabelValues(typeCode).Inc()
}

func (m *Metrics) IncBookingRejected(typeCode, kind string) {
	if m == nil {
		return
	}
	m.BookingsRejected.WithLabelValues(typeCode, kind).Inc()
}
