// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package predstore

import (
	"context"
	"errors"
	"time"

	gobreaker "github.com/sony/gobreaker/v2"

	"github.com/tomtom215/cfpredict/internal/logging"
	"github.com/tomtom215/cfpredict/internal/metrics"
	"github.com/tomtom215/cfpredict/internal/recommend"
)

// BreakerConfig tunes the circuit breaker in front of the store.
type BreakerConfig struct {
	// Name labels the breaker in metrics and logs.
	Name string

	// FailureThreshold consecutive failures open the circuit.
	FailureThreshold uint32

	// OpenTimeout is how long the circuit stays open before a trial request.
	OpenTimeout time.Duration

	// Interval resets the closed-state counts. Zero never resets.
	Interval time.Duration

	// HalfOpenRequests may reach the store while half-open.
	HalfOpenRequests uint32
}

// DefaultBreakerConfig opens after five straight failures and tries again
// after 30 seconds.
func DefaultBreakerConfig() BreakerConfig {
	return BreakerConfig{
		Name:             "prediction-store",
		FailureThreshold: 5,
		OpenTimeout:      30 * time.Second,
		Interval:         time.Minute,
		HalfOpenRequests: 1,
	}
}

// lookup is what one breaker call yields.
type lookup struct {
	prediction recommend.Prediction
	found      bool
}

// GuardedStore puts a circuit breaker in front of a recommend.PredictionStore.
//
// While the circuit is open, Load reports a miss and Save is dropped, both
// without error: the engine recomputes instead of waiting on a failing disk.
// Context cancellation is never counted as a store failure.
type GuardedStore struct {
	inner recommend.PredictionStore
	cb    *gobreaker.CircuitBreaker[lookup]
	name  string
}

var _ recommend.PredictionStore = (*GuardedStore)(nil)

// NewGuardedStore wraps inner. Zero fields of cfg take the defaults.
func NewGuardedStore(inner recommend.PredictionStore, cfg BreakerConfig) *GuardedStore {
	def := DefaultBreakerConfig()
	if cfg.Name == "" {
		cfg.Name = def.Name
	}
	if cfg.FailureThreshold == 0 {
		cfg.FailureThreshold = def.FailureThreshold
	}
	if cfg.OpenTimeout <= 0 {
		cfg.OpenTimeout = def.OpenTimeout
	}
	if cfg.HalfOpenRequests == 0 {
		cfg.HalfOpenRequests = def.HalfOpenRequests
	}

	logger := logging.WithComponent("predstore")
	metrics.RecordCircuitBreakerState(cfg.Name, stateValue(gobreaker.StateClosed))

	cb := gobreaker.NewCircuitBreaker[lookup](gobreaker.Settings{
		Name:        cfg.Name,
		MaxRequests: cfg.HalfOpenRequests,
		Interval:    cfg.Interval,
		Timeout:     cfg.OpenTimeout,
		ReadyToTrip: func(c gobreaker.Counts) bool {
			return c.ConsecutiveFailures >= cfg.FailureThreshold
		},
		IsSuccessful: func(err error) bool {
			return err == nil || errors.Is(err, context.Canceled) || errors.Is(err, context.DeadlineExceeded)
		},
		OnStateChange: func(name string, from, to gobreaker.State) {
			logger.Warn().
				Str("breaker", name).
				Str("from", from.String()).
				Str("to", to.String()).
				Msg("prediction store circuit breaker state change")
			metrics.RecordCircuitBreakerState(name, stateValue(to))
			metrics.RecordCircuitBreakerTransition(name, from.String(), to.String())
		},
	})

	return &GuardedStore{inner: inner, cb: cb, name: cfg.Name}
}

// Load implements recommend.PredictionStore.
func (g *GuardedStore) Load(ctx context.Context, q recommend.Query) (recommend.Prediction, bool, error) {
	res, err := g.execute(func() (lookup, error) {
		p, ok, err := g.inner.Load(ctx, q)
		return lookup{prediction: p, found: ok}, err
	})
	return res.prediction, res.found, err
}

// Save implements recommend.PredictionStore.
func (g *GuardedStore) Save(ctx context.Context, p recommend.Prediction) error {
	_, err := g.execute(func() (lookup, error) {
		return lookup{}, g.inner.Save(ctx, p)
	})
	return err
}

// State reports the breaker state.
func (g *GuardedStore) State() gobreaker.State {
	return g.cb.State()
}

func (g *GuardedStore) execute(fn func() (lookup, error)) (lookup, error) {
	res, err := g.cb.Execute(fn)
	switch {
	case errors.Is(err, gobreaker.ErrOpenState), errors.Is(err, gobreaker.ErrTooManyRequests):
		metrics.RecordCircuitBreakerRequest(g.name, "rejected")
		return lookup{}, nil
	case err != nil:
		metrics.RecordCircuitBreakerRequest(g.name, "failure")
		return lookup{}, err
	default:
		metrics.RecordCircuitBreakerRequest(g.name, "success")
		return res, nil
	}
}

func stateValue(s gobreaker.State) float64 {
	switch s {
	case gobreaker.StateHalfOpen:
		return 1
	case gobreaker.StateOpen:
		return 2
	default:
		return 0
	}
}
