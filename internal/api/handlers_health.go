// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package api

import (
	"net/http"
	"time"
)

// HealthLive handles liveness check requests (Kubernetes-style).
// Returns 200 OK if the process is alive.
func (h *Handler) HealthLive(w http.ResponseWriter, r *http.Request) {
	NewResponseWriter(w, r).Success(map[string]interface{}{
		"alive":          true,
		"uptime_seconds": time.Since(h.startTime).Seconds(),
	})
}

// HealthReady handles readiness check requests (Kubernetes-style).
// Returns 200 OK once a ratings store is loaded, 503 otherwise.
func (h *Handler) HealthReady(w http.ResponseWriter, r *http.Request) {
	rw := NewResponseWriter(w, r)
	if h.engine == nil {
		rw.ServiceUnavailable("Ratings store not loaded")
		return
	}

	stats := h.engine.Stats()
	rw.Success(map[string]interface{}{
		"ready":   true,
		"ratings": stats.Ratings,
		"users":   stats.Users,
		"movies":  stats.Movies,
	})
}
