// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

// Package logging provides centralized zerolog-based structured logging for CFPredict.
//
// # Quick Start
//
//	logging.Init(logging.Config{
//	    Level:  "info",
//	    Format: "json",
//	})
//
//	logging.Info().Int("ratings", n).Msg("training data loaded")
//	logging.Ctx(ctx).Debug().Int("user_id", q.UserID).Msg("predicting")
//
// # Configuration
//
// Level, format and caller reporting come from the logging section of the
// application config (LOG_LEVEL, LOG_FORMAT, LOG_CALLER):
//   - json: one JSON object per line, for production
//   - console: human-readable output, for development
//
// # Context
//
// HTTP middleware stores a request ID (and, for batch runs, a correlation
// ID) in the request context. Ctx(ctx) returns a logger carrying both
// fields, so every log line of one request can be joined.
//
// # Supervisor Integration
//
// SlogHandler adapts zerolog to slog.Handler so that sutureslog, which
// only speaks slog, writes supervisor events through the same logger.
//
// Always terminate log chains with .Msg() or .Send():
//
//	logging.Info().Str("path", p).Msg("wrote predictions")  // Correct
//	logging.Info().Str("path", p)                          // WRONG - not emitted
package logging
