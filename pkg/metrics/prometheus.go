// Package metrics provides Prometheus metrics for the pizza restaurants API.
package metrics

import (
	"net/http"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Manager owns a registry and the metrics registered on it.
type Manager struct {
	namespace        string
	subsystem        string
	histogramBuckets []float64
	registry         *prometheus.Registry

	// HTTP
	httpRequests        *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	// Domain
	restaurantPizzasCreated  prometheus.Counter
	validationFailures       prometheus.Counter
	restaurantsDeleted       prometheus.Counter
	restaurantPizzasCascaded prometheus.Counter
}

var globalManager = NewManager(WithRegistry(newProcessRegistry())) //nolint:gochecknoglobals // process wide metrics

// newProcessRegistry includes Go runtime and process collectors alongside the service metrics.
func newProcessRegistry() *prometheus.Registry {
	registry := prometheus.NewRegistry()
	registry.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	return registry
}

// NewManager creates a metrics manager. Without WithRegistry it registers on a fresh registry.
func NewManager(opts ...Option) *Manager {
	m := &Manager{
		namespace:        "pizzeria",
		subsystem:        "api",
		histogramBuckets: []float64{1, 5, 10, 25, 50, 100, 250, 500, 1000},
	}
	for _, opt := range opts {
		opt(m)
	}
	if m.registry == nil {
		m.registry = prometheus.NewRegistry()
	}
	m.initializeMetrics()
	return m
}

func (m *Manager) initializeMetrics() {
	auto := promauto.With(m.registry)

	m.httpRequests = auto.NewCounterVec(
		prometheus.CounterOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_requests_total",
			Help:      "Total number of HTTP requests by endpoint, method and status code",
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.httpRequestDuration = auto.NewHistogramVec(
		prometheus.HistogramOpts{
			Namespace: m.namespace,
			Subsystem: m.subsystem,
			Name:      "http_request_duration_milliseconds",
			Help:      "HTTP request duration in milliseconds",
			Buckets:   m.histogramBuckets,
		},
		[]string{"endpoint", "method", "status_code"},
	)

	m.restaurantPizzasCreated = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "restaurant_pizzas_created_total",
		Help:      "Total number of restaurant pizzas created",
	})

	m.validationFailures = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "validation_failures_total",
		Help:      "Total number of writes rejected with a validation error",
	})

	m.restaurantsDeleted = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "restaurants_deleted_total",
		Help:      "Total number of restaurants deleted",
	})

	m.restaurantPizzasCascaded = auto.NewCounter(prometheus.CounterOpts{
		Namespace: m.namespace,
		Subsystem: m.subsystem,
		Name:      "restaurant_pizzas_cascaded_total",
		Help:      "Total number of restaurant pizzas removed along with their restaurant",
	})
}

// Registry returns the registry the manager's metrics live on.
func (m *Manager) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the manager's registry in the Prometheus exposition format.
func (m *Manager) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

// RecordHTTPRequest counts a finished request and observes its duration.
func (m *Manager) RecordHTTPRequest(endpoint, method, statusCode string, durationMs float64) {
	m.httpRequests.WithLabelValues(endpoint, method, statusCode).Inc()
	m.httpRequestDuration.WithLabelValues(endpoint, method, statusCode).Observe(durationMs)
}

// RecordRestaurantPizzaCreated counts a stored restaurant pizza.
func (m *Manager) RecordRestaurantPizzaCreated() {
	m.restaurantPizzasCreated.Inc()
}

// RecordValidationFailure counts a rejected write.
func (m *Manager) RecordValidationFailure() {
	m.validationFailures.Inc()
}

// RecordRestaurantDeleted counts a deleted restaurant and the join rows removed with it.
func (m *Manager) RecordRestaurantDeleted(cascaded int64) {
	m.restaurantsDeleted.Inc()
	if cascaded > 0 {
		m.restaurantPizzasCascaded.Add(float64(cascaded))
	}
}

// Default returns the process wide manager.
func Default() *Manager {
	return globalManager
}
