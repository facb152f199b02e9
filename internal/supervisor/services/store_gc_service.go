// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package services

import (
	"context"
	"time"

	"github.com/rs/zerolog"
)

// GarbageCollector is implemented by *predstore.BadgerStore.
type GarbageCollector interface {
	RunGC() error
}

// StoreGCService runs value log garbage collection on the persistent
// prediction store at a fixed interval. GC failures are logged and retried
// on the next tick; they never restart the service.
type StoreGCService struct {
	store    GarbageCollector
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewStoreGCService creates a GC service. A non-positive interval
// defaults to 10 minutes.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewStoreGCService(store GarbageCollector, interval time.Duration, logger zerolog.Logger) *StoreGCService {
	if interval <= 0 {
		interval = 10 * time.Minute
	}
	return &StoreGCService{
		store:    store,
		interval: interval,
		logger:   logger.With().Str("service", "prediction-store-gc").Logger(),
		name:     "prediction-store-gc",
	}
}

// Serve implements suture.Service.
func (s *StoreGCService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("prediction store GC starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("prediction store GC shutting down")
			return ctx.Err()

		case <-ticker.C:
			start := time.Now()
			if err := s.store.RunGC(); err != nil {
				s.logger.Warn().Err(err).Msg("prediction store GC failed")
				continue
			}
			s.logger.Debug().Dur("duration", time.Since(start)).Msg("prediction store GC complete")
		}
	}
}

// String implements fmt.Stringer.
func (s *StoreGCService) String() string {
	return s.name
}
