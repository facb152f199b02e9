// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package api

import (
	"context"
	"errors"
	"net/http"
	"time"

	"github.com/tomtom215/cfpredict/internal/logging"
	"github.com/tomtom215/cfpredict/internal/recommend"
)

// Handler contains dependencies for API handlers.
//
// Handler methods are split across files:
//   - handlers_health.go: liveness and readiness checks
//   - handlers_predict.go: predictions, similarity and stats
type Handler struct {
	engine    *recommend.Engine
	timeout   time.Duration
	startTime time.Time
}

// NewHandler creates a handler serving predictions from engine. A positive
// timeout bounds each prediction request.
//
//	handler := api.NewHandler(engine, cfg.Server.Timeout)
//	router := api.NewRouter(handler, api.ChiMiddlewareConfigFromServer(&cfg.Server))
func NewHandler(engine *recommend.Engine, timeout time.Duration) *Handler {
	return &Handler{
		engine:    engine,
		timeout:   timeout,
		startTime: time.Now(),
	}
}

// requestContext applies the handler timeout to the request context.
func (h *Handler) requestContext(r *http.Request) (context.Context, context.CancelFunc) {
	if h.timeout > 0 {
		return context.WithTimeout(r.Context(), h.timeout)
	}
	return context.WithCancel(r.Context())
}

// respondPredictError maps an engine error to a response.
func respondPredictError(rw *ResponseWriter, r *http.Request, err error) {
	switch {
	case errors.Is(err, context.DeadlineExceeded):
		logging.Ctx(r.Context()).Warn().Err(err).Msg("Prediction timed out")
		rw.Error(http.StatusServiceUnavailable, ErrCodeRequestTimeout, "Prediction timed out")
	case errors.Is(err, context.Canceled):
		logging.Ctx(r.Context()).Debug().Err(err).Msg("Prediction cancelled by client")
		rw.ServiceUnavailable("Request cancelled")
	default:
		logging.Ctx(r.Context()).Error().Err(err).Msg("Prediction failed")
		rw.InternalError("Prediction failed")
	}
}
