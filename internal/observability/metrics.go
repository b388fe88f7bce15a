package observability

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const metricsNamespace = "samoscore"

// Metrics is the Prometheus registry for the service. It satisfies the
// observer interfaces of the sports-data client, the response cache, the
// favorites caches and the HTTP router.
type Metrics struct {
	registry *prometheus.Registry

	httpRequests     *prometheus.CounterVec
	httpDuration     *prometheus.HistogramVec
	providerRequests *prometheus.CounterVec
	providerDuration *prometheus.HistogramVec
	cacheLookups     *prometheus.CounterVec
	favoriteWrites   *prometheus.CounterVec
	favoriteRefresh  *prometheus.CounterVec
	circuitState     *prometheus.GaugeVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)

	m := &Metrics{
		registry: reg,
		httpRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "http_requests_total",
			Help:      "HTTP requests by route and status code.",
		}, []string{"method", "route", "status"}),
		httpDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "http_request_duration_seconds",
			Help:      "HTTP request latency by route.",
			Buckets:   prometheus.DefBuckets,
		}, []string{"method", "route"}),
		providerRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "provider_requests_total",
			Help:      "Sports-data provider requests by endpoint and outcome.",
		}, []string{"endpoint", "outcome"}),
		providerDuration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: metricsNamespace,
			Name:      "provider_request_duration_seconds",
			Help:      "Sports-data provider latency by endpoint.",
			Buckets:   []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10},
		}, []string{"endpoint"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "provider_cache_lookups_total",
			Help:      "Provider response cache lookups by resource and tier hit.",
		}, []string{"resource", "outcome"}),
		favoriteWrites: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "favorite_mutations_total",
			Help:      "Favorites writes by kind, operation and outcome.",
		}, []string{"kind", "op", "outcome"}),
		favoriteRefresh: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: metricsNamespace,
			Name:      "favorite_refreshes_total",
			Help:      "Favorites cache refreshes by outcome.",
		}, []string{"outcome"}),
		circuitState: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: metricsNamespace,
			Name:      "circuit_breaker_open",
			Help:      "1 while the named circuit breaker is not closed.",
		}, []string{"name"}),
	}

	reg.MustRegister(
		m.httpRequests,
		m.httpDuration,
		m.providerRequests,
		m.providerDuration,
		m.cacheLookups,
		m.favoriteWrites,
		m.favoriteRefresh,
		m.circuitState,
	)
	return m
}

func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{Registry: m.registry})
}

func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

func (m *Metrics) ObserveHTTPRequest(method, route string, status int, elapsed time.Duration) {
	m.httpRequests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	m.httpDuration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveProviderRequest(endpoint, outcome string, elapsed time.Duration) {
	m.providerRequests.WithLabelValues(endpoint, outcome).Inc()
	m.providerDuration.WithLabelValues(endpoint).Observe(elapsed.Seconds())
}

func (m *Metrics) ObserveCacheLookup(resource, outcome string) {
	m.cacheLookups.WithLabelValues(resource, outcome).Inc()
}

func (m *Metrics) ObserveFavoriteMutation(kind, op, outcome string) {
	m.favoriteWrites.WithLabelValues(kind, op, outcome).Inc()
}

func (m *Metrics) ObserveFavoriteRefresh(outcome string) {
	m.favoriteRefresh.WithLabelValues(outcome).Inc()
}

func (m *Metrics) SetCircuitOpen(name string, open bool) {
	value := 0.0
	if open {
		value = 1
	}
	m.circuitState.WithLabelValues(name).Set(value)
}

// TrackGauge exposes fn as a gauge sampled on every scrape.
func (m *Metrics) TrackGauge(name, help string, fn func() float64) {
	m.registry.MustRegister(prometheus.NewGaugeFunc(prometheus.GaugeOpts{
		Namespace: metricsNamespace,
		Name:      name,
		Help:      help,
	}, fn))
}
