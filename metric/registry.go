package metric

import (
	"net/http"
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

const unmatchedRoute = "unmatched"

// Registry manages the collectors exported on the metrics endpoint.
type Registry struct {
	prometheusRegistry *prometheus.Registry
	requests           *prometheus.CounterVec
	duration           *prometheus.HistogramVec
	operations         prometheus.Gauge
	buildInfo          *prometheus.GaugeVec
}

// Option configures a Registry.
type Option func(*options)

type options struct {
	buckets        []float64
	runtimeMetrics bool
}

// WithBuckets replaces the latency histogram buckets, in seconds.
func WithBuckets(buckets ...float64) Option {
	return func(o *options) {
		if len(buckets) > 0 {
			o.buckets = buckets
		}
	}
}

// WithoutRuntimeMetrics skips the Go runtime and process collectors.
func WithoutRuntimeMetrics() Option {
	return func(o *options) {
		o.runtimeMetrics = false
	}
}

// NewRegistry creates a registry under the given metric namespace.
func NewRegistry(namespace string, opts ...Option) *Registry {
	settings := &options{
		buckets:        prometheus.DefBuckets,
		runtimeMetrics: true,
	}
	for _, opt := range opts {
		if opt != nil {
			opt(settings)
		}
	}

	r := &Registry{
		prometheusRegistry: prometheus.NewRegistry(),
		requests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "requests_total",
			Help:      "HTTP requests by method, route pattern and status code.",
		}, []string{"method", "route", "code"}),
		duration: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace,
			Subsystem: "http",
			Name:      "request_duration_seconds",
			Help:      "HTTP request latency by method and route pattern.",
			Buckets:   settings.buckets,
		}, []string{"method", "route"}),
		operations: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace,
			Subsystem: "openapi",
			Name:      "operations",
			Help:      "Operations published in the OpenAPI document.",
		}),
		buildInfo: prometheus.NewGaugeVec(prometheus.GaugeOpts{
			Namespace: namespace,
			Name:      "build_info",
			Help:      "Build metadata of the running binary; always 1.",
		}, []string{"version", "goversion"}),
	}

	r.prometheusRegistry.MustRegister(r.requests, r.duration, r.operations, r.buildInfo)
	if settings.runtimeMetrics {
		r.prometheusRegistry.MustRegister(
			collectors.NewGoCollector(),
			collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		)
	}

	return r
}

// PrometheusRegistry returns the underlying Prometheus registry.
func (r *Registry) PrometheusRegistry() *prometheus.Registry {
	return r.prometheusRegistry
}

// ObserveRequest records one completed HTTP request.
func (r *Registry) ObserveRequest(method, route string, status int, elapsed time.Duration) {
	if route == "" {
		route = unmatchedRoute
	}
	r.requests.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	r.duration.WithLabelValues(method, route).Observe(elapsed.Seconds())
}

// SetOperations publishes the number of documented operations.
func (r *Registry) SetOperations(n int) {
	r.operations.Set(float64(n))
}

// SetBuildInfo publishes the build metadata gauge.
func (r *Registry) SetBuildInfo(version, goVersion string) {
	r.buildInfo.Reset()
	r.buildInfo.WithLabelValues(version, goVersion).Set(1)
}

// Register adds an extra collector, such as a gauge fed by a host probe.
func (r *Registry) Register(c prometheus.Collector) error {
	return r.prometheusRegistry.Register(c)
}

// Handler serves the registry for Prometheus scrapes.
func (r *Registry) Handler() http.Handler {
	return promhttp.HandlerFor(r.prometheusRegistry, promhttp.HandlerOpts{
		EnableOpenMetrics: true,
		Registry:          r.prometheusRegistry,
	})
}
