// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package recommend

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/rs/zerolog"
	"golang.org/x/sync/errgroup"

	"github.com/tomtom215/cfpredict/internal/cache"
	"github.com/tomtom215/cfpredict/internal/metrics"
)

// ErrNoStore is returned by NewEngine when no store is supplied.
var ErrNoStore = errors.New("recommend: nil store")

// Blend combines a user-based and an item-based estimate by arithmetic mean.
// NaN in either input yields NaN.
func Blend(userBased, itemBased float64) float64 {
	return (userBased + itemBased) / 2
}

// Engine blends a user-axis and a movie-axis algorithm over one immutable
// store. It is safe for concurrent use.
type Engine struct {
	store  *Store
	user   Algorithm
	item   Algorithm
	config *Config
	logger zerolog.Logger

	// nil when caching is disabled
	cache *cache.LRU[Query, Prediction]

	// nil unless UsePredictionStore was called
	persist PredictionStore
}

// PredictionStore is a durable second-level cache for predictions. Entries
// must be scoped to the store and algorithm settings that produced them.
type PredictionStore interface {
	Load(ctx context.Context, q Query) (Prediction, bool, error)
	Save(ctx context.Context, p Prediction) error
}

// NewEngine creates a prediction engine.
//
// userAlg must operate on AxisUser and itemAlg on AxisMovie.
//
//nolint:gocritic // logger passed by value is acceptable for zerolog
func NewEngine(store *Store, cfg *Config, logger zerolog.Logger, userAlg, itemAlg Algorithm) (*Engine, error) {
	if store == nil {
		return nil, ErrNoStore
	}
	if cfg == nil {
		cfg = DefaultConfig()
	}
	if err := cfg.Validate(); err != nil {
		return nil, fmt.Errorf("invalid config: %w", err)
	}
	if userAlg == nil || userAlg.Axis() != AxisUser {
		return nil, fmt.Errorf("user algorithm must operate on the %s axis", AxisUser)
	}
	if itemAlg == nil || itemAlg.Axis() != AxisMovie {
		return nil, fmt.Errorf("item algorithm must operate on the %s axis", AxisMovie)
	}

	e := &Engine{
		store:  store,
		user:   userAlg,
		item:   itemAlg,
		config: cfg,
		logger: logger.With().Str("component", "recommend").Logger(),
	}
	if cfg.Cache.Enabled {
		e.cache = cache.NewLRU[Query, Prediction](cfg.Cache.Capacity, cfg.Cache.TTL)
	}

	stats := store.Stats()
	metrics.UpdateStoreProfiles(stats.Users, stats.Movies)

	e.logger.Info().
		Str("user_algorithm", userAlg.Name()).
		Str("item_algorithm", itemAlg.Name()).
		Int("ratings", stats.Ratings).
		Int("users", stats.Users).
		Int("movies", stats.Movies).
		Bool("cache", cfg.Cache.Enabled).
		Msg("prediction engine ready")

	return e, nil
}

// UsePredictionStore attaches a durable prediction store consulted after
// the in-memory cache. It must be called before the engine is shared
// between goroutines.
func (e *Engine) UsePredictionStore(ps PredictionStore) {
	e.persist = ps
}

// Store returns the ratings store the engine predicts from.
func (e *Engine) Store() *Store {
	return e.store
}

// Stats returns summary counts for the underlying store.
func (e *Engine) Stats() StoreStats {
	return e.store.Stats()
}

// Predict computes the blended prediction for q.
func (e *Engine) Predict(ctx context.Context, q Query) (Prediction, error) {
	if e.cache != nil {
		if p, ok := e.cache.Get(q); ok {
			metrics.RecordPredictionCacheHit()
			return p, nil
		}
		metrics.RecordPredictionCacheMiss()
	}

	if e.persist != nil {
		p, ok, err := e.persist.Load(ctx, q)
		switch {
		case err != nil:
			metrics.RecordPredictionStoreError("load")
			e.logger.Warn().Err(err).Int("user_id", q.UserID).Int("movie_id", q.MovieID).
				Msg("prediction store load failed")
		case ok:
			metrics.RecordPredictionStoreHit()
			if e.cache != nil {
				e.cache.Add(q, p)
			}
			return p, nil
		default:
			metrics.RecordPredictionStoreMiss()
		}
	}

	start := time.Now()

	userEst, err := e.user.Predict(ctx, e.store, q)
	if err != nil {
		return Prediction{}, fmt.Errorf("%s predict: %w", e.user.Name(), err)
	}
	itemEst, err := e.item.Predict(ctx, e.store, q)
	if err != nil {
		return Prediction{}, fmt.Errorf("%s predict: %w", e.item.Name(), err)
	}

	p := Prediction{
		Query:     q,
		Value:     Blend(userEst.Value, itemEst.Value),
		UserBased: userEst,
		ItemBased: itemEst,
	}

	metrics.RecordPrediction(userEst.Source.String(), itemEst.Source.String(), time.Since(start))

	if e.cache != nil {
		e.cache.Add(q, p)
	}
	if e.persist != nil {
		if err := e.persist.Save(ctx, p); err != nil {
			metrics.RecordPredictionStoreError("save")
			e.logger.Warn().Err(err).Int("user_id", q.UserID).Int("movie_id", q.MovieID).
				Msg("prediction store save failed")
		}
	}

	return p, nil
}

// PredictAll computes predictions for every query. Results are returned in
// input order. Queries run concurrently, bounded by Config.Workers; the
// first error cancels the remaining work.
func (e *Engine) PredictAll(ctx context.Context, queries []Query) ([]Prediction, error) {
	start := time.Now()
	results := make([]Prediction, len(queries))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(e.config.workers())

	for i := range queries {
		g.Go(func() error {
			p, err := e.Predict(gctx, queries[i])
			if err != nil {
				return fmt.Errorf("query %d (user %d, movie %d): %w", i, queries[i].UserID, queries[i].MovieID, err)
			}
			results[i] = p
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	duration := time.Since(start)
	metrics.RecordBatch(len(queries), duration)

	undefined := 0
	for i := range results {
		if !results[i].Defined() {
			undefined++
		}
	}
	e.logger.Info().
		Int("queries", len(queries)).
		Int("undefined", undefined).
		Dur("duration", duration).
		Msg("batch prediction complete")

	return results, nil
}

// CacheEnabled reports whether predictions are memoised.
func (e *Engine) CacheEnabled() bool {
	return e.cache != nil
}

// PurgeExpiredCache drops expired cache entries and returns how many were
// removed. It is a no-op when caching is disabled.
func (e *Engine) PurgeExpiredCache() int {
	if e.cache == nil {
		return 0
	}
	return e.cache.CleanupExpired()
}

// CacheStats returns prediction cache hit/miss counts and size.
// All zero when caching is disabled.
func (e *Engine) CacheStats() (hits, misses int64, size int) {
	if e.cache == nil {
		return 0, 0, 0
	}
	return e.cache.Stats()
}
