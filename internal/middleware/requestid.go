// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package middleware

import (
	"context"
	"net/http"

	chimiddleware "github.com/go-chi/chi/v5/middleware"

	"github.com/tomtom215/cfpredict/internal/logging"
)

// RequestIDHeader carries the request ID in both directions.
const RequestIDHeader = "X-Request-ID"

// Longer client-supplied IDs are replaced rather than logged.
const maxRequestIDLength = 128

// RequestID tags the request context with a request ID and a fresh
// correlation ID for logging.Ctx, and echoes the request ID back. A sane
// upstream X-Request-ID is kept. The ID is also stored under chi's
// RequestIDKey so chimiddleware.GetReqID agrees.
func RequestID(next http.Handler) http.Handler {
	return http.HandlerFunc(func(w http.ResponseWriter, r *http.Request) {
		id := r.Header.Get(RequestIDHeader)
		if n := len(id); n == 0 || n > maxRequestIDLength {
			id = logging.GenerateRequestID()
		}
		w.Header().Set(RequestIDHeader, id)

		ctx := logging.ContextWithNewCorrelationID(logging.ContextWithRequestID(r.Context(), id))
		next.ServeHTTP(w, r.WithContext(context.WithValue(ctx, chimiddleware.RequestIDKey, id)))
	})
}
