// Package metrics holds the Prometheus collectors for the HTTP surface and
// the recommendation engine.
package metrics

import (
	"strconv"
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

var (
	// API Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movierec_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "route", "status"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "movierec_api_request_duration_seconds",
			Help:    "Duration of API requests in seconds",
			Buckets: prometheus.DefBuckets,
		},
		[]string{"method", "route"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "movierec_api_active_requests",
			Help: "Number of in-flight API requests",
		},
	)

	// Engine Metrics
	EngineReady = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "movierec_engine_ready",
			Help: "1 once the similarity index is built",
		},
	)

	EngineBuildDuration = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "movierec_engine_build_duration_seconds",
			Help: "Duration of the last successful index build",
		},
	)

	EngineBuildErrors = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "movierec_engine_build_errors_total",
			Help: "Total number of failed catalog loads or index builds",
		},
	)

	CatalogMovies = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "movierec_catalog_movies",
			Help: "Number of movies in the index",
		},
	)

	VocabularySize = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "movierec_vocabulary_size",
			Help: "Number of terms in the fitted vocabulary",
		},
	)

	// Query Metrics
	QueriesTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movierec_queries_total",
			Help: "Engine queries by kind and outcome",
		},
		[]string{"kind", "outcome"}, // kind: recommend, search, chat; outcome: ok, not_found, not_ready, error
	)

	ChatIntents = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "movierec_chat_replies_total",
			Help: "Chat replies by reply type",
		},
		[]string{"type"},
	)
)

// RecordAPIRequest records one finished HTTP request.
func RecordAPIRequest(method, route string, status int, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, route, strconv.Itoa(status)).Inc()
	APIRequestDuration.WithLabelValues(method, route).Observe(duration.Seconds())
}

// TrackActiveRequest increments or decrements the in-flight gauge.
func TrackActiveRequest(start bool) {
	if start {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}

// RecordBuild publishes the result of a successful index build.
func RecordBuild(movies, vocabulary int, duration time.Duration) {
	EngineReady.Set(1)
	CatalogMovies.Set(float64(movies))
	VocabularySize.Set(float64(vocabulary))
	EngineBuildDuration.Set(duration.Seconds())
}

// RecordBuildError counts a failed load or build.
func RecordBuildError() {
	EngineBuildErrors.Inc()
}

// RecordQuery counts an engine query outcome.
func RecordQuery(kind, outcome string) {
	QueriesTotal.WithLabelValues(kind, outcome).Inc()
}
