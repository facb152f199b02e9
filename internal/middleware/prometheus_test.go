// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package middleware

import (
	"net/http"
	"net/http/httptest"
	"testing"

	"github.com/go-chi/chi/v5"
	"github.com/prometheus/client_golang/prometheus/testutil"

	"github.com/tomtom215/cfpredict/internal/metrics"
)

func newMetricsRouter() http.Handler {
	r := chi.NewRouter()
	r.Use(PrometheusMetrics)
	r.Get("/items/{id}", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusOK)
	})
	r.Post("/fail", func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusInternalServerError)
		w.WriteHeader(http.StatusTeapot) // superfluous, ignored
	})
	return r
}

func TestPrometheusMetrics_RoutePatternLabel(t *testing.T) {
	router := newMetricsRouter()
	counter := metrics.APIRequestsTotal.WithLabelValues("GET", "/items/{id}", "200")
	before := testutil.ToFloat64(counter)

	for _, path := range []string{"/items/1", "/items/2", "/items/3"} {
		rec := httptest.NewRecorder()
		router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, path, nil))
		if rec.Code != http.StatusOK {
			t.Fatalf("GET %s = %d, want 200", path, rec.Code)
		}
	}

	if delta := testutil.ToFloat64(counter) - before; delta != 3 {
		t.Errorf("requests_total delta = %v, want 3 on one series", delta)
	}
}

func TestPrometheusMetrics_StatusCode(t *testing.T) {
	router := newMetricsRouter()
	counter := metrics.APIRequestsTotal.WithLabelValues("POST", "/fail", "500")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodPost, "/fail", nil))

	if delta := testutil.ToFloat64(counter) - before; delta != 1 {
		t.Errorf("requests_total{status_code=500} delta = %v, want 1", delta)
	}
}

func TestPrometheusMetrics_Unmatched(t *testing.T) {
	router := newMetricsRouter()
	counter := metrics.APIRequestsTotal.WithLabelValues("GET", unmatchedEndpoint, "404")
	before := testutil.ToFloat64(counter)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/nowhere/at/all", nil))

	if rec.Code != http.StatusNotFound {
		t.Fatalf("status = %d, want 404", rec.Code)
	}
	if delta := testutil.ToFloat64(counter) - before; delta != 1 {
		t.Errorf("unmatched delta = %v, want 1", delta)
	}
}

func TestPrometheusMetrics_ActiveRequestsReturnToBaseline(t *testing.T) {
	router := newMetricsRouter()
	before := testutil.ToFloat64(metrics.APIActiveRequests)

	rec := httptest.NewRecorder()
	router.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/items/9", nil))

	if after := testutil.ToFloat64(metrics.APIActiveRequests); after != before {
		t.Errorf("active requests = %v after request, want %v", after, before)
	}
}

func TestPrometheusMetrics_WithoutRouter(t *testing.T) {
	handler := PrometheusMetrics(http.HandlerFunc(func(w http.ResponseWriter, _ *http.Request) {
		w.WriteHeader(http.StatusAccepted)
	}))

	rec := httptest.NewRecorder()
	handler.ServeHTTP(rec, httptest.NewRequest(http.MethodGet, "/raw", nil))

	if rec.Code != http.StatusAccepted {
		t.Errorf("status = %d, want 202", rec.Code)
	}
}
