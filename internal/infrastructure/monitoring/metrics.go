package monitoring

import (
	"net/http"
	"strconv"
	"time"

	"github.com/gin-gonic/gin"
	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/collectors"
	"github.com/prometheus/client_golang/prometheus/promauto"
	"github.com/prometheus/client_golang/prometheus/promhttp"
)

// Metrics prometheus collectors for the HTTP layer, the oracle and the store.
// Each instance owns its registry so tests can create as many as they like.
type Metrics struct {
	registry *prometheus.Registry

	httpRequestsTotal   *prometheus.CounterVec
	httpRequestDuration *prometheus.HistogramVec

	aiRequestsTotal   *prometheus.CounterVec
	aiRequestDuration *prometheus.HistogramVec
	aiCacheHits       prometheus.Counter
	nutritionFallback prometheus.Counter

	recipesSavedTotal   *prometheus.CounterVec
	recipesDeletedTotal prometheus.Counter
	dbQueryDuration     *prometheus.HistogramVec
}

// NewMetrics registers all collectors on a fresh registry
func NewMetrics() *Metrics {
	reg := prometheus.NewRegistry()
	reg.MustRegister(
		collectors.NewGoCollector(),
		collectors.NewProcessCollector(collectors.ProcessCollectorOpts{}),
	)
	factory := promauto.With(reg)

	return &Metrics{
		registry: reg,

		httpRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "http_requests_total",
				Help: "Total number of HTTP requests",
			},
			[]string{"method", "path", "status_code"},
		),
		httpRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "http_request_duration_seconds",
				Help:    "HTTP request duration in seconds",
				Buckets: prometheus.DefBuckets,
			},
			[]string{"method", "path"},
		),

		aiRequestsTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "ai_requests_total",
				Help: "Total number of oracle requests",
			},
			[]string{"purpose", "status"},
		),
		aiRequestDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "ai_request_duration_seconds",
				Help:    "Oracle request duration in seconds",
				Buckets: []float64{0.1, 0.5, 1.0, 2.0, 5.0, 10.0, 30.0},
			},
			[]string{"purpose"},
		),
		aiCacheHits: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "ai_cache_hits_total",
				Help: "Oracle responses served from the cache",
			},
		),
		nutritionFallback: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "nutrition_fallback_total",
				Help: "Nutrition estimates computed by the gram-based fallback",
			},
		),

		recipesSavedTotal: factory.NewCounterVec(
			prometheus.CounterOpts{
				Name: "recipes_saved_total",
				Help: "Total number of saved recipes",
			},
			[]string{"operation"},
		),
		recipesDeletedTotal: factory.NewCounter(
			prometheus.CounterOpts{
				Name: "recipes_deleted_total",
				Help: "Total number of deleted recipes",
			},
		),
		dbQueryDuration: factory.NewHistogramVec(
			prometheus.HistogramOpts{
				Name:    "db_query_duration_seconds",
				Help:    "Recipe store query duration in seconds",
				Buckets: []float64{0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1.0},
			},
			[]string{"operation"},
		),
	}
}

// HTTPMiddleware records request count and latency per route
func (m *Metrics) HTTPMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		start := time.Now()
		c.Next()

		path := c.FullPath()
		if path == "" {
			path = "unmatched"
		}
		m.httpRequestsTotal.WithLabelValues(c.Request.Method, path, strconv.Itoa(c.Writer.Status())).Inc()
		m.httpRequestDuration.WithLabelValues(c.Request.Method, path).Observe(time.Since(start).Seconds())
	}
}

// AIRequest records one oracle call; status is "success", "error", "timeout" or "cache"
func (m *Metrics) AIRequest(purpose, status string, duration time.Duration) {
	if m == nil {
		return
	}
	m.aiRequestsTotal.WithLabelValues(purpose, status).Inc()
	m.aiRequestDuration.WithLabelValues(purpose).Observe(duration.Seconds())
	if status == "cache" {
		m.aiCacheHits.Inc()
	}
}

// NutritionFallback counts one fallback estimate
func (m *Metrics) NutritionFallback() {
	if m == nil {
		return
	}
	m.nutritionFallback.Inc()
}

// RecipeSaved counts an insert or update
func (m *Metrics) RecipeSaved(operation string) {
	if m == nil {
		return
	}
	m.recipesSavedTotal.WithLabelValues(operation).Inc()
}

// RecipeDeleted counts a delete
func (m *Metrics) RecipeDeleted() {
	if m == nil {
		return
	}
	m.recipesDeletedTotal.Inc()
}

// DBQuery observes a store call
func (m *Metrics) DBQuery(operation string, duration time.Duration) {
	if m == nil {
		return
	}
	m.dbQueryDuration.WithLabelValues(operation).Observe(duration.Seconds())
}

// Registry exposes the underlying registry
func (m *Metrics) Registry() *prometheus.Registry {
	return m.registry
}

// Handler serves the registry in the prometheus text format
func (m *Metrics) Handler() http.Handler {
	return promhttp.HandlerFor(m.registry, promhttp.HandlerOpts{})
}
