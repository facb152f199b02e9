// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package services

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"time"

	"github.com/rs/zerolog"
)

const defaultShutdownTimeout = 10 * time.Second

// HTTPServer is satisfied by *http.Server.
type HTTPServer interface {
	ListenAndServe() error
	Shutdown(ctx context.Context) error
}

// HTTPServerService adapts an HTTPServer to suture.Service.
//
//	srv := &http.Server{Addr: cfg.Server.Addr(), Handler: router.Setup()}
//	tree.AddAPIService(services.NewHTTPServerService(srv, cfg.Server.ShutdownTimeout))
type HTTPServerService struct {
	server          HTTPServer
	shutdownTimeout time.Duration
	logger          zerolog.Logger
	name            string
}

// NewHTTPServerService wraps server. In-flight prediction requests get
// shutdownTimeout (10s if non-positive) to drain on cancellation.
func NewHTTPServerService(server HTTPServer, shutdownTimeout time.Duration) *HTTPServerService {
	if shutdownTimeout <= 0 {
		shutdownTimeout = defaultShutdownTimeout
	}
	return &HTTPServerService{
		server:          server,
		shutdownTimeout: shutdownTimeout,
		logger:          zerolog.Nop(),
		name:            "http-server",
	}
}

// WithLogger enables lifecycle logging. It returns h for chaining.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func (h *HTTPServerService) WithLogger(logger zerolog.Logger) *HTTPServerService {
	h.logger = logger.With().Str("service", h.name).Logger()
	return h
}

// Serve listens until ctx is canceled or the listener fails.
//
// A listener failure is returned wrapped so suture restarts the service.
// A clean shutdown returns ctx.Err(), which suture treats as a stop.
func (h *HTTPServerService) Serve(ctx context.Context) error {
	done := make(chan error, 1)
	go func() {
		err := h.server.ListenAndServe()
		if errors.Is(err, http.ErrServerClosed) {
			err = nil
		}
		done <- err
	}()
	h.logger.Info().Msg("http server started")

	select {
	case err := <-done:
		if err != nil {
			return fmt.Errorf("http server failed: %w", err)
		}
		return nil
	case <-ctx.Done():
	}

	// ctx is already done, so the drain deadline hangs off Background.
	drainCtx, cancel := context.WithTimeout(context.Background(), h.shutdownTimeout)
	defer cancel()

	h.logger.Info().Dur("timeout", h.shutdownTimeout).Msg("http server shutting down")
	if err := h.server.Shutdown(drainCtx); err != nil {
		return fmt.Errorf("http server shutdown failed: %w", err)
	}
	<-done
	h.logger.Info().Msg("http server stopped")
	return ctx.Err()
}

// String names the service in supervisor events.
func (h *HTTPServerService) String() string { return h.name }
