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

// minJanitorInterval bounds how often the janitor may wake up.
const minJanitorInterval = time.Second

// CachePurger is implemented by *recommend.Engine.
type CachePurger interface {
	PurgeExpiredCache() int
}

// CacheJanitorService periodically removes expired prediction cache
// entries. Expired entries are never served, but without a sweep they hold
// memory until evicted by capacity.
type CacheJanitorService struct {
	purger   CachePurger
	interval time.Duration
	logger   zerolog.Logger
	name     string
}

// NewCacheJanitorService creates a janitor that sweeps every interval.
// Intervals below one second are raised to one second.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewCacheJanitorService(purger CachePurger, interval time.Duration, logger zerolog.Logger) *CacheJanitorService {
	if interval < minJanitorInterval {
		interval = minJanitorInterval
	}
	return &CacheJanitorService{
		purger:   purger,
		interval: interval,
		logger:   logger.With().Str("service", "cache-janitor").Logger(),
		name:     "cache-janitor",
	}
}

// Serve implements suture.Service.
func (s *CacheJanitorService) Serve(ctx context.Context) error {
	s.logger.Info().Dur("interval", s.interval).Msg("cache janitor starting")

	ticker := time.NewTicker(s.interval)
	defer ticker.Stop()

	for {
		select {
		case <-ctx.Done():
			s.logger.Info().Msg("cache janitor shutting down")
			return ctx.Err()

		case <-ticker.C:
			s.sweep()
		}
	}
}

func (s *CacheJanitorService) sweep() {
	if removed := s.purger.PurgeExpiredCache(); removed > 0 {
		s.logger.Debug().Int("removed", removed).Msg("expired predictions purged")
	}
}

// Interval returns the sweep interval.
func (s *CacheJanitorService) Interval() time.Duration {
	return s.interval
}

// String implements fmt.Stringer.
func (s *CacheJanitorService) String() string {
	return s.name
}
