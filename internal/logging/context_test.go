// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package logging

import (
	"bytes"
	"context"
	"strings"
	"testing"

	"github.com/rs/zerolog"
)

func TestGeneratedIDShapes(t *testing.T) {
	t.Parallel()

	if got := len(GenerateCorrelationID()); got != 8 {
		t.Errorf("correlation ID length = %d, want 8", got)
	}
	first, second := GenerateRequestID(), GenerateRequestID()
	if len(first) != 36 {
		t.Errorf("request ID length = %d, want 36", len(first))
	}
	if first == second {
		t.Errorf("request IDs repeated: %s", first)
	}
}

func TestContextIDs(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		set  func(context.Context) context.Context
		get  func(context.Context) string
		want string
	}{
		{
			name: "correlation",
			set:  func(ctx context.Context) context.Context { return ContextWithCorrelationID(ctx, "run-7") },
			get:  CorrelationIDFromContext,
			want: "run-7",
		},
		{
			name: "request",
			set:  func(ctx context.Context) context.Context { return ContextWithRequestID(ctx, "req-99") },
			get:  RequestIDFromContext,
			want: "req-99",
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if got := tt.get(context.Background()); got != "" {
				t.Errorf("empty context returned %q", got)
			}
			if got := tt.get(tt.set(context.Background())); got != tt.want {
				t.Errorf("got %q, want %q", got, tt.want)
			}
		})
	}

	ctx := ContextWithNewCorrelationID(context.Background())
	if got := CorrelationIDFromContext(ctx); len(got) != 8 {
		t.Errorf("generated correlation ID = %q", got)
	}
}

func TestLoggerFromContext(t *testing.T) {
	t.Parallel()

	var buf bytes.Buffer
	stored := zerolog.New(&buf).With().Str("run", "batch").Logger()

	l := LoggerFromContext(ContextWithLogger(context.Background(), stored))
	l.Warn().Msg("from context")

	if !strings.Contains(buf.String(), `"run":"batch"`) {
		t.Errorf("stored logger not used: %s", buf.String())
	}
}

func TestCtxAnnotations(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		decor   func(context.Context) context.Context
		want    []string
		notWant []string
	}{
		{
			name:    "none",
			decor:   func(ctx context.Context) context.Context { return ctx },
			notWant: []string{"correlation_id", "request_id"},
		},
		{
			name: "correlation only",
			decor: func(ctx context.Context) context.Context {
				return ContextWithCorrelationID(ctx, "abc12345")
			},
			want:    []string{`"correlation_id":"abc12345"`},
			notWant: []string{"request_id"},
		},
		{
			name: "both",
			decor: func(ctx context.Context) context.Context {
				ctx = ContextWithCorrelationID(ctx, "abc12345")
				return ContextWithRequestID(ctx, "req-1")
			},
			want: []string{`"correlation_id":"abc12345"`, `"request_id":"req-1"`},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			var buf bytes.Buffer
			ctx := tt.decor(ContextWithLogger(context.Background(), zerolog.New(&buf)))
			Ctx(ctx).Warn().Msg("annotated")

			out := buf.String()
			for _, s := range tt.want {
				if !strings.Contains(out, s) {
					t.Errorf("missing %s in %s", s, out)
				}
			}
			for _, s := range tt.notWant {
				if strings.Contains(out, s) {
					t.Errorf("unexpected %s in %s", s, out)
				}
			}
		})
	}
}

func TestWithComponent(t *testing.T) {
	resetLogger(t)

	var buf bytes.Buffer
	SetLogger(zerolog.New(&buf))

	l := WithComponent("predstore")
	l.Warn().Msg("tagged")

	if !strings.Contains(buf.String(), `"component":"predstore"`) {
		t.Errorf("component field missing: %s", buf.String())
	}
}
