// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package logging

import (
	"context"

	"github.com/google/uuid"
	"github.com/rs/zerolog"
)

// Each value lives under its own unexported key type so no other package
// can collide with it.
type (
	correlationKey struct{}
	requestKey     struct{}
	loggerKey      struct{}
)

// GenerateCorrelationID returns a short random ID grouping the log lines of
// one batch run or one HTTP request.
func GenerateCorrelationID() string {
	id := uuid.New()
	return id.String()[:8]
}

// GenerateRequestID returns a full UUID for X-Request-ID.
func GenerateRequestID() string {
	return uuid.NewString()
}

// ContextWithCorrelationID attaches id to ctx.
func ContextWithCorrelationID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, correlationKey{}, id)
}

// ContextWithNewCorrelationID attaches a freshly generated correlation ID.
//
//	ctx = logging.ContextWithNewCorrelationID(ctx) // one per batch run
func ContextWithNewCorrelationID(ctx context.Context) context.Context {
	return ContextWithCorrelationID(ctx, GenerateCorrelationID())
}

// CorrelationIDFromContext returns the correlation ID, or "".
func CorrelationIDFromContext(ctx context.Context) string {
	return stringValue(ctx, correlationKey{})
}

// ContextWithRequestID attaches an HTTP request ID to ctx.
func ContextWithRequestID(ctx context.Context, id string) context.Context {
	return context.WithValue(ctx, requestKey{}, id)
}

// RequestIDFromContext returns the request ID, or "".
func RequestIDFromContext(ctx context.Context) string {
	return stringValue(ctx, requestKey{})
}

func stringValue(ctx context.Context, key any) string {
	s, _ := ctx.Value(key).(string)
	return s
}

// ContextWithLogger overrides the base logger used by Ctx.
//
//nolint:gocritic // zerolog.Logger is designed to be passed by value
func ContextWithLogger(ctx context.Context, logger zerolog.Logger) context.Context {
	return context.WithValue(ctx, loggerKey{}, logger)
}

// LoggerFromContext returns the logger stored by ContextWithLogger, falling
// back to the global logger.
func LoggerFromContext(ctx context.Context) zerolog.Logger {
	l, ok := ctx.Value(loggerKey{}).(zerolog.Logger)
	if !ok {
		return Logger()
	}
	return l
}

// Ctx returns the context's logger annotated with whichever of
// correlation_id and request_id are present.
//
//	logging.Ctx(ctx).Info().Msg("batch prediction started")
func Ctx(ctx context.Context) *zerolog.Logger {
	fields := make(map[string]any, 2)
	if id := CorrelationIDFromContext(ctx); id != "" {
		fields["correlation_id"] = id
	}
	if id := RequestIDFromContext(ctx); id != "" {
		fields["request_id"] = id
	}

	l := LoggerFromContext(ctx)
	if len(fields) > 0 {
		l = l.With().Fields(fields).Logger()
	}
	return &l
}

// WithComponent returns a child of the global logger tagged with component.
//
//	apiLogger := logging.WithComponent("api")
func WithComponent(component string) zerolog.Logger {
	return With().Str("component", component).Logger()
}
