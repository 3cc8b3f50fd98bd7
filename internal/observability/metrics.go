package observability

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promhttp"
	"gorm.io/gorm"
)

const namespace = "sotfinder"

var latencyBuckets = []float64{0.05, 0.1, 0.25, 0.5, 1, 2, 5, 10, 30, 60, 120, 300}

// Metrics holds the service's Prometheus collectors. A nil *Metrics is valid and records nothing.
type Metrics struct {
	registry *prometheus.Registry

	apiRequests *prometheus.CounterVec
	apiLatency  *prometheus.HistogramVec
	apiInflight prometheus.Gauge

	llmRequests *prometheus.CounterVec
	llmLatency  *prometheus.HistogramVec

	cacheLookups *prometheus.CounterVec

	generations       *prometheus.CounterVec
	generationLatency *prometheus.HistogramVec
	degradedTopics    prometheus.Counter
	assetGenerations  *prometheus.CounterVec
	assetLatency      *prometheus.HistogramVec
	urlProbes         *prometheus.CounterVec
	storeBootstrap    *prometheus.CounterVec
}

func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	m := &Metrics{
		registry: reg,
		apiRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "api", Name: "requests_total",
			Help: "HTTP requests by method, route and status.",
		}, []string{"method", "route", "status"}),
		apiLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "api", Name: "request_duration_seconds",
			Help: "HTTP request latency in seconds.", Buckets: latencyBuckets,
		}, []string{"method", "route"}),
		apiInflight: prometheus.NewGauge(prometheus.GaugeOpts{
			Namespace: namespace, Subsystem: "api", Name: "inflight_requests",
			Help: "HTTP requests currently being served.",
		}),
		llmRequests: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "llm", Name: "requests_total",
			Help: "LLM gateway calls by model and status.",
		}, []string{"model", "status"}),
		llmLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "llm", Name: "request_duration_seconds",
			Help: "LLM gateway call latency in seconds.", Buckets: latencyBuckets,
		}, []string{"model"}),
		cacheLookups: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "cache", Name: "lookups_total",
			Help: "Curriculum cache lookups by tier and result.",
		}, []string{"tier", "result"}),
		generations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "generator", Name: "runs_total",
			Help: "Curriculum generation runs by kind and status.",
		}, []string{"kind", "status"}),
		generationLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "generator", Name: "run_duration_seconds",
			Help: "Curriculum generation latency in seconds.", Buckets: latencyBuckets,
		}, []string{"kind"}),
		degradedTopics: prometheus.NewCounter(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "generator", Name: "degraded_topics_total",
			Help: "Topics whose subtopic expansion failed.",
		}),
		assetGenerations: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "assets", Name: "generations_total",
			Help: "Topic asset lookups by asset type and outcome.",
		}, []string{"asset_type", "status"}),
		assetLatency: prometheus.NewHistogramVec(prometheus.HistogramOpts{
			Namespace: namespace, Subsystem: "assets", Name: "generation_duration_seconds",
			Help: "Topic asset generation latency in seconds.", Buckets: latencyBuckets,
		}, []string{"asset_type"}),
		urlProbes: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "urlcheck", Name: "probes_total",
			Help: "URL reachability probes by result.",
		}, []string{"result"}),
		storeBootstrap: prometheus.NewCounterVec(prometheus.CounterOpts{
			Namespace: namespace, Subsystem: "store", Name: "bootstrap_total",
			Help: "Remote store bootstrap attempts by mode, status and error code.",
		}, []string{"mode", "status", "code"}),
	}
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
		m.apiRequests, m.apiLatency, m.apiInflight,
		m.llmRequests, m.llmLatency,
		m.cacheLookups,
		m.generations, m.generationLatency, m.degradedTopics,
		m.assetGenerations, m.assetLatency,
		m.urlProbes,
		m.storeBootstrap,
	)
	return m
}

// Registry exposes the underlying registry, mainly for tests.
func (m *Metrics) Registry() *prometheus.Registry {
	if m == nil {
		return nil
	}
	return m.registry
}

func (m *Metrics) Handler() http.Handler {
	if m == nil {
		return http.NotFoundHandler()
	}
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}

// RegisterDBStats exports connection pool stats for a gorm database.
func (m *Metrics) RegisterDBStats(db *gorm.DB, name string) error {
	if m == nil || db == nil {
		return nil
	}
	sqlDB, err := db.DB()
	if err != nil {
		return err
	}
	return m.registry.Register(collectors.NewDBStatsCollector(sqlDB, name))
}

func (m *Metrics) ObserveAPI(method, route, status string, dur time.Duration) {
	if m == nil {
		return
	}
	if method == "" {
		method = "UNKNOWN"
	}
	if route == "" {
		route = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.apiRequests.WithLabelValues(method, route, status).Inc()
	m.apiLatency.WithLabelValues(method, route).Observe(dur.Seconds())
}

func (m *Metrics) ApiInflightInc() {
	if m == nil {
		return
	}
	m.apiInflight.Inc()
}

func (m *Metrics) ApiInflightDec() {
	if m == nil {
		return
	}
	m.apiInflight.Dec()
}

// ObserveLLMRequest records one gateway call; status is the HTTP status or "error".
func (m *Metrics) ObserveLLMRequest(model, status string, dur time.Duration) {
	if m == nil {
		return
	}
	model = strings.TrimSpace(model)
	if model == "" {
		model = "unknown"
	}
	if status == "" {
		status = "0"
	}
	m.llmRequests.WithLabelValues(model, status).Inc()
	if dur > 0 {
		m.llmLatency.WithLabelValues(model).Observe(dur.Seconds())
	}
}

// ObserveCacheLookup records a lookup against one cache tier (inflight, remote, local);
// result is hit, miss, stale or error.
func (m *Metrics) ObserveCacheLookup(tier, result string) {
	if m == nil {
		return
	}
	m.cacheLookups.WithLabelValues(tier, result).Inc()
}

// ObserveGeneration records a pipeline run; kind is base, refresh or enriched.
func (m *Metrics) ObserveGeneration(kind string, err error, dur time.Duration) {
	if m == nil {
		return
	}
	m.generations.WithLabelValues(kind, statusOf(err)).Inc()
	m.generationLatency.WithLabelValues(kind).Observe(dur.Seconds())
}

func (m *Metrics) AddDegradedTopics(n int) {
	if m == nil || n <= 0 {
		return
	}
	m.degradedTopics.Add(float64(n))
}

// ObserveAsset records an asset request; status is hit, generated or error.
func (m *Metrics) ObserveAsset(assetType, status string, dur time.Duration) {
	if m == nil {
		return
	}
	m.assetGenerations.WithLabelValues(assetType, status).Inc()
	if status == "generated" && dur > 0 {
		m.assetLatency.WithLabelValues(assetType).Observe(dur.Seconds())
	}
}

func (m *Metrics) ObserveURLProbe(ok bool) {
	if m == nil {
		return
	}
	m.urlProbes.WithLabelValues(strconv.FormatBool(ok)).Inc()
}

func (m *Metrics) ObserveStoreBootstrap(mode, status, code string) {
	if m == nil {
		return
	}
	m.storeBootstrap.WithLabelValues(mode, status, code).Inc()
}

func statusOf(err error) string {
	if err != nil {
		return "error"
	}
	return "ok"
}
