// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package metrics

import (
	"time"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/prometheus/client_golang/prometheus/promauto"
)

// Prometheus metrics for:
// - Dataset loading (ratings read, malformed records skipped)
// - Ratings store shape
// - Prediction throughput and latency per axis
// - Prediction cache efficiency
// - Persistent prediction store (BadgerDB)
// - API endpoint latency and throughput

var (
	// Dataset Metrics
	RatingsLoaded = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cfpredict_ratings_loaded_total",
			Help: "Total number of training ratings loaded into the store",
		},
	)

	RecordsSkipped = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cfpredict_records_skipped_total",
			Help: "Total number of malformed input records skipped",
		},
		[]string{"input"}, // "ratings", "queries"
	)

	// Store Metrics
	StoreProfiles = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cfpredict_store_profiles",
			Help: "Number of profiles in the ratings store",
		},
		[]string{"axis"}, // "user", "movie"
	)

	// Prediction Metrics
	PredictionsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cfpredict_predictions_total",
			Help: "Total number of single-axis estimates by axis and source",
		},
		[]string{"axis", "source"}, // source: "neighbor", "weighted", "undefined"
	)

	PredictionDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cfpredict_prediction_duration_seconds",
			Help:    "Duration of one blended prediction in seconds",
			Buckets: []float64{0.00001, 0.00005, 0.0001, 0.0005, 0.001, 0.005, 0.01, 0.05, 0.1, 0.5, 1},
		},
	)

	BatchDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cfpredict_batch_duration_seconds",
			Help:    "Duration of a batch prediction run in seconds",
			Buckets: prometheus.DefBuckets,
		},
	)

	BatchQueries = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cfpredict_batch_queries_total",
			Help: "Total number of queries processed in batch runs",
		},
	)

	// Prediction Cache Metrics
	PredictionCacheHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cfpredict_prediction_cache_hits_total",
			Help: "Total number of prediction cache hits",
		},
	)

	PredictionCacheMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cfpredict_prediction_cache_misses_total",
			Help: "Total number of prediction cache misses",
		},
	)

	// Persistent Prediction Store Metrics
	PredictionStoreHits = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cfpredict_prediction_store_hits_total",
			Help: "Total number of predictions served from the persistent store",
		},
	)

	PredictionStoreMisses = promauto.NewCounter(
		prometheus.CounterOpts{
			Name: "cfpredict_prediction_store_misses_total",
			Help: "Total number of persistent prediction store misses",
		},
	)

	PredictionStoreErrors = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cfpredict_prediction_store_errors_total",
			Help: "Total number of persistent prediction store failures",
		},
		[]string{"operation"}, // "load", "save", "gc"
	)

	PredictionStoreGCDuration = promauto.NewHistogram(
		prometheus.HistogramOpts{
			Name:    "cfpredict_prediction_store_gc_duration_seconds",
			Help:    "Duration of BadgerDB value log GC runs in seconds",
			Buckets: []float64{0.001, 0.01, 0.1, 0.5, 1, 5, 10, 30},
		},
	)

	// Circuit breaker metrics. State is 0 closed, 1 half-open, 2 open.
	CircuitBreakerState = promauto.NewGaugeVec(
		prometheus.GaugeOpts{
			Name: "cfpredict_circuit_breaker_state",
			Help: "Circuit breaker state (0=closed, 1=half-open, 2=open)",
		},
		[]string{"name"},
	)

	CircuitBreakerTransitions = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cfpredict_circuit_breaker_transitions_total",
			Help: "Total number of circuit breaker state transitions",
		},
		[]string{"name", "from", "to"},
	)

	CircuitBreakerRequests = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cfpredict_circuit_breaker_requests_total",
			Help: "Requests through a circuit breaker by result",
		},
		[]string{"name", "result"}, // "success", "failure", "rejected"
	)

	// API Endpoint Metrics
	APIRequestsTotal = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cfpredict_api_requests_total",
			Help: "Total number of API requests",
		},
		[]string{"method", "endpoint", "status_code"},
	)

	APIRequestDuration = promauto.NewHistogramVec(
		prometheus.HistogramOpts{
			Name:    "cfpredict_api_request_duration_seconds",
			Help:    "API request duration in seconds",
			Buckets: []float64{0.001, 0.005, 0.01, 0.025, 0.05, 0.1, 0.25, 0.5, 1, 2.5, 5}, // Optimized for API latency
		},
		[]string{"method", "endpoint"},
	)

	APIActiveRequests = promauto.NewGauge(
		prometheus.GaugeOpts{
			Name: "cfpredict_api_active_requests",
			Help: "Current number of active API requests",
		},
	)

	APIRateLimitHits = promauto.NewCounterVec(
		prometheus.CounterOpts{
			Name: "cfpredict_api_rate_limit_hits_total",
			Help: "Total number of rate limit rejections",
		},
		[]string{"endpoint"},
	)
)

// RecordRatingsLoaded records ratings accepted into the store builder.
func RecordRatingsLoaded(count int) {
	RatingsLoaded.Add(float64(count))
}

// RecordRecordsSkipped records malformed records skipped while reading input.
func RecordRecordsSkipped(input string, count int) {
	if count <= 0 {
		return
	}
	RecordsSkipped.WithLabelValues(input).Add(float64(count))
}

// UpdateStoreProfiles sets the profile gauges for a freshly built store.
func UpdateStoreProfiles(users, movies int) {
	StoreProfiles.WithLabelValues("user").Set(float64(users))
	StoreProfiles.WithLabelValues("movie").Set(float64(movies))
}

// RecordPrediction records one blended prediction and its two estimates.
func RecordPrediction(userSource, itemSource string, duration time.Duration) {
	PredictionsTotal.WithLabelValues("user", userSource).Inc()
	PredictionsTotal.WithLabelValues("movie", itemSource).Inc()
	PredictionDuration.Observe(duration.Seconds())
}

// RecordBatch records a completed batch prediction run.
func RecordBatch(queries int, duration time.Duration) {
	BatchQueries.Add(float64(queries))
	BatchDuration.Observe(duration.Seconds())
}

// RecordPredictionCacheHit records a prediction served from cache.
func RecordPredictionCacheHit() {
	PredictionCacheHits.Inc()
}

// RecordPredictionCacheMiss records a prediction cache miss.
func RecordPredictionCacheMiss() {
	PredictionCacheMisses.Inc()
}

// RecordPredictionStoreHit records a prediction served from the persistent store.
func RecordPredictionStoreHit() {
	PredictionStoreHits.Inc()
}

// RecordPredictionStoreMiss records a persistent store miss.
func RecordPredictionStoreMiss() {
	PredictionStoreMisses.Inc()
}

// RecordPredictionStoreError records a failed persistent store operation.
func RecordPredictionStoreError(operation string) {
	PredictionStoreErrors.WithLabelValues(operation).Inc()
}

// RecordPredictionStoreGC records one value log GC pass.
func RecordPredictionStoreGC(duration time.Duration) {
	PredictionStoreGCDuration.Observe(duration.Seconds())
}

// RecordCircuitBreakerState publishes a breaker's current state.
func RecordCircuitBreakerState(name string, state float64) {
	CircuitBreakerState.WithLabelValues(name).Set(state)
}

// RecordCircuitBreakerTransition counts a breaker state change.
func RecordCircuitBreakerTransition(name, from, to string) {
	CircuitBreakerTransitions.WithLabelValues(name, from, to).Inc()
}

// RecordCircuitBreakerRequest counts one call through a breaker.
func RecordCircuitBreakerRequest(name, result string) {
	CircuitBreakerRequests.WithLabelValues(name, result).Inc()
}

// RecordAPIRequest records an API request metric
func RecordAPIRequest(method, endpoint, statusCode string, duration time.Duration) {
	APIRequestsTotal.WithLabelValues(method, endpoint, statusCode).Inc()
	APIRequestDuration.WithLabelValues(method, endpoint).Observe(duration.Seconds())
}

// RecordRateLimitHit records a request rejected by the rate limiter.
func RecordRateLimitHit(endpoint string) {
	APIRateLimitHits.WithLabelValues(endpoint).Inc()
}

// TrackActiveRequest tracks active API requests
func TrackActiveRequest(inc bool) {
	if inc {
		APIActiveRequests.Inc()
	} else {
		APIActiveRequests.Dec()
	}
}
