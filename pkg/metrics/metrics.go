// Package metrics holds the prometheus collectors for the service.
package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Metrics bundles every collector the service exposes.
type Metrics struct {
	service string

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	dbQueryDuration *prometheus.HistogramVec
	dbConnsOpen     *prometheus.GaugeVec
	dbConnsIdle     *prometheus.GaugeVec
	dbConnsInUse    *prometheus.GaugeVec

	notificationFailures *prometheus.CounterVec
	availabilityFailOpen *prometheus.CounterVec
	slotLockContention   *prometheus.CounterVec
	blastMessages        *prometheus.CounterVec
}

// New registers and returns the service collectors.
func New(serviceName string) *Metrics {
	return &Metrics{
		service: serviceName,
		httpRequestsTotal: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "http_requests_total",
			Help: "Total HTTP requests by method, route and status code",
		}, []string{"service", "method", "route", "status"}),
		httpRequestDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "http_request_duration_seconds",
			Help:    "HTTP request latency by method and route",
			Buckets: prometheus.DefBuckets,
		}, []string{"service", "method", "route"}),
		dbQueryDuration: promauto.NewHistogramVec(prometheus.HistogramOpts{
			Name:    "db_query_duration_seconds",
			Help:    "Database query latency by operation kind",
			Buckets: []float64{.001, .005, .01, .025, .05, .1, .25, .5, 1, 2.5},
		}, []string{"service", "operation"}),
		dbConnsOpen: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_open",
			Help: "Open connections in the pool",
		}, []string{"service"}),
		dbConnsIdle: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_idle",
			Help: "Idle connections in the pool",
		}, []string{"service"}),
		dbConnsInUse: promauto.NewGaugeVec(prometheus.GaugeOpts{
			Name: "db_connections_in_use",
			Help: "Connections currently in use",
		}, []string{"service"}),
		notificationFailures: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "booking_notification_failures_total",
			Help: "Best-effort post-booking notifications that failed, by channel",
		}, []string{"service", "channel"}),
		availabilityFailOpen: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "availability_fail_open_total",
			Help: "Availability reads that degraded to an empty booked set",
		}, []string{"service"}),
		slotLockContention: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "slot_lock_contention_total",
			Help: "Booking attempts rejected by the distributed slot lock",
		}, []string{"service"}),
		blastMessages: promauto.NewCounterVec(prometheus.CounterOpts{
			Name: "whatsapp_blast_messages_total",
			Help: "WhatsApp blast messages by delivery result",
		}, []string{"service", "result"}),
	}
}

// ObserveHTTPRequest records one finished HTTP request.
func (m *Metrics) ObserveHTTPRequest(method, route, status string, duration time.Duration) {
	m.httpRequestsTotal.WithLabelValues(m.service, method, route, status).Inc()
	m.httpRequestDuration.WithLabelValues(m.service, method, route).Observe(duration.Seconds())
}

// ObserveDBQuery records one database query.
func (m *Metrics) ObserveDBQuery(operation string, duration time.Duration) {
	m.dbQueryDuration.WithLabelValues(m.service, operation).Observe(duration.Seconds())
}

// SetDBPoolStats publishes connection pool gauges.
func (m *Metrics) SetDBPoolStats(open, idle, inUse int) {
	m.dbConnsOpen.WithLabelValues(m.service).Set(float64(open))
	m.dbConnsIdle.WithLabelValues(m.service).Set(float64(idle))
	m.dbConnsInUse.WithLabelValues(m.service).Set(float64(inUse))
}

// IncNotificationFailure counts a failed best-effort notification.
func (m *Metrics) IncNotificationFailure(channel string) {
	m.notificationFailures.WithLabelValues(m.service, channel).Inc()
}

// IncAvailabilityFailOpen counts one fail-open degradation.
func (m *Metrics) IncAvailabilityFailOpen() {
	m.availabilityFailOpen.WithLabelValues(m.service).Inc()
}

// IncSlotLockContention counts one lock-rejected booking attempt.
func (m *Metrics) IncSlotLockContention() {
	m.slotLockContention.WithLabelValues(m.service).Inc()
}

// IncBlastMessage counts one blast delivery attempt by result.
func (m *Metrics) IncBlastMessage(result string) {
	m.blastMessages.WithLabelValues(m.service, result).Inc()
}
