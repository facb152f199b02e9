// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package recommend

import (
	"fmt"
	"math"
	"runtime"
	"time"
)

// UndefinedPolicy decides the value reported when a prediction has no
// information to draw from (no neighbor rated the counterpart, or every
// contributing similarity was zero).
type UndefinedPolicy string

const (
	// UndefinedNaN reports NaN. NaN propagates through Blend and is written
	// to the output as "NaN".
	UndefinedNaN UndefinedPolicy = "nan"
	// UndefinedGlobalMean reports the mean of all training ratings.
	UndefinedGlobalMean UndefinedPolicy = "global_mean"
	// UndefinedZero reports 0.
	UndefinedZero UndefinedPolicy = "zero"
	// UndefinedUnratedZero treats every other entity on the target's axis
	// as a neighbor whose missing rating counts as 0. The estimate is 0
	// when the target's summed similarity to those entities is nonzero,
	// and NaN otherwise.
	UndefinedUnratedZero UndefinedPolicy = "unrated_zero"
)

// Valid reports whether p is a known policy.
func (p UndefinedPolicy) Valid() bool {
	switch p {
	case UndefinedNaN, UndefinedGlobalMean, UndefinedZero, UndefinedUnratedZero:
		return true
	default:
		return false
	}
}

// Value returns the undefined-prediction value for store.
// UndefinedUnratedZero depends on the target and is resolved by the
// predictor; Value reports NaN for it.
func (p UndefinedPolicy) Value(store *Store) float64 {
	switch p {
	case UndefinedGlobalMean:
		if store == nil {
			return 0
		}
		return store.GlobalMean()
	case UndefinedZero:
		return 0
	default:
		return math.NaN()
	}
}

// Config contains configuration for the blended prediction engine.
type Config struct {
	// Workers bounds the number of queries predicted concurrently by
	// PredictAll. Zero means runtime.NumCPU().
	Workers int `json:"workers"`

	// Cache contains prediction memoisation parameters.
	Cache CacheConfig `json:"cache"`
}

// CacheConfig contains prediction cache parameters.
type CacheConfig struct {
	// Enabled turns on memoisation of predictions by query.
	Enabled bool `json:"enabled"`

	// Capacity is the maximum number of cached predictions.
	Capacity int `json:"capacity"`

	// TTL is how long a cached prediction is served.
	TTL time.Duration `json:"ttl"`
}

// DefaultConfig returns the default engine configuration.
func DefaultConfig() *Config {
	return &Config{
		Workers: 0,
		Cache: CacheConfig{
			Enabled:  false,
			Capacity: 10000,
			TTL:      10 * time.Minute,
		},
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Workers < 0 {
		return fmt.Errorf("workers must be non-negative, got %d", c.Workers)
	}
	if c.Cache.Enabled {
		if c.Cache.Capacity <= 0 {
			return fmt.Errorf("cache capacity must be positive, got %d", c.Cache.Capacity)
		}
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("cache ttl must be positive, got %v", c.Cache.TTL)
		}
	}
	return nil
}

// workers returns the effective worker count.
func (c *Config) workers() int {
	if c.Workers > 0 {
		return c.Workers
	}
	return runtime.NumCPU()
}
