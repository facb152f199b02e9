// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package middleware

import (
	"net/http"
	"strconv"
	"time"

	"github.com/go-chi/chi/v5"
	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tomtom215/cfpredict/internal/metrics"
)

// unmatchedEndpoint is the endpoint label for requests no route matched.
const unmatchedEndpoint = "unmatched"

// PrometheusMetrics feeds the cfpredict_api_* request metrics. Endpoints
// are labeled by chi route pattern, never by raw path, so the label set
// stays bounded no matter which IDs clients ask about.
func PrometheusMetrics(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		metrics.TrackActiveRequest(true)
		defer metrics.TrackActiveRequest(false)

		began := time.Now()
		ww := chimiddleware.NewWrapResponseWriter(w, r.ProtoMajor)
		next.ServeHTTP(ww, r)

		status := ww.Status()
		if status == 0 {
			status = http.StatusOK
		}
		metrics.RecordAPIRequest(r.Method, endpointLabel(r), strconv.Itoa(status), time.Since(began))
	})
}

// endpointLabel must run after next.ServeHTTP; chi fills the pattern in
// while routing.
func endpointLabel(r *http.Request) string {
	if rctx := chi.RouteContext(r.Context()); rctx != nil {
		if p := rctx.RoutePattern(); p != "" {
			return p
		}
	}
	return unmatchedEndpoint
}
