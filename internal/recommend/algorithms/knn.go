// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package algorithms

import (
	"context"
	"errors"
	"math"

	"github.com/tomtom215/cfpredict/internal/recommend"
)

// ErrNilStore is returned when Predict is called without a store.
var ErrNilStore = errors.New("algorithms: nil store")

// cancelCheckInterval is how many candidates are scanned between context checks.
const cancelCheckInterval = 256

// KNNConfig contains configuration for neighbor-based algorithms.
type KNNConfig struct {
	// ShortCircuit returns the rating of the first other entity (ascending
	// ID) that rated the counterpart. When false, every such entity
	// contributes its rating weighted by cosine similarity to the target.
	ShortCircuit bool

	// Undefined decides the value of an estimate nothing contributed to.
	// Empty means recommend.UndefinedNaN.
	Undefined recommend.UndefinedPolicy
}

// DefaultKNNConfig returns default KNN configuration.
func DefaultKNNConfig() KNNConfig {
	return KNNConfig{
		ShortCircuit: true,
		Undefined:    recommend.UndefinedNaN,
	}
}

// NeighborCF implements neighbor-based collaborative filtering on one axis.
//
// On AxisUser it predicts r(u, m) from other users' ratings of m; on
// AxisMovie it predicts r(u, m) from u's ratings of other movies. In
// weighted mode:
//
//	r(t, c) = sum_{n != t, n rated c} sim(t, n) * r(n, c) / sum sim(t, n)
type NeighborCF struct {
	BaseAlgorithm
	config KNNConfig
}

// NewUserBasedCF creates a predictor over user profiles.
func NewUserBasedCF(cfg KNNConfig) *NeighborCF {
	return newNeighborCF("usercf", recommend.AxisUser, cfg)
}

// NewItemBasedCF creates a predictor over movie profiles.
func NewItemBasedCF(cfg KNNConfig) *NeighborCF {
	return newNeighborCF("itemcf", recommend.AxisMovie, cfg)
}

func newNeighborCF(name string, axis recommend.Axis, cfg KNNConfig) *NeighborCF {
	if cfg.Undefined == "" {
		cfg.Undefined = recommend.UndefinedNaN
	}
	return &NeighborCF{
		BaseAlgorithm: NewBaseAlgorithm(name, axis),
		config:        cfg,
	}
}

// Config returns the algorithm configuration.
func (n *NeighborCF) Config() KNNConfig {
	return n.config
}

// Predict estimates the rating for q.
//
// Unknown targets and counterparts are not errors: an unknown target has an
// empty profile (similarity 0 to everything) and an unknown counterpart has
// no raters, so the estimate falls to the short-circuit or to the undefined
// policy. Only context cancellation is returned as an error.
func (n *NeighborCF) Predict(ctx context.Context, store *recommend.Store, q recommend.Query) (recommend.Estimate, error) {
	if store == nil {
		return recommend.Estimate{}, ErrNilStore
	}
	if canceled(ctx) {
		return recommend.Estimate{}, ctx.Err()
	}

	target := n.axis.Target(q)
	counterpart := n.axis.Counterpart(q)

	// The counterpart's profile on the opposite axis lists exactly the
	// entities that rated it, already in ascending order. Entities that did
	// not rate the counterpart never contribute, so they are not visited.
	raters := store.Profile(n.axis.Opposite(), counterpart)

	var (
		targetProfile *recommend.Profile
		weighted      float64
		weightSum     float64
		contributors  int
	)

	for i, id := range raters.Keys() {
		if i%cancelCheckInterval == 0 && i > 0 && canceled(ctx) {
			return recommend.Estimate{}, ctx.Err()
		}
		if id == target {
			continue
		}

		rating, _ := raters.Rating(id)
		if n.config.ShortCircuit {
			return recommend.Estimate{
				Value:      rating,
				Source:     recommend.SourceNeighbor,
				NeighborID: id,
				Neighbors:  1,
			}, nil
		}

		if targetProfile == nil {
			targetProfile = store.Profile(n.axis, target)
		}
		sim := CosineSimilarity(targetProfile, store.Profile(n.axis, id))
		weighted += sim * rating
		weightSum += sim
		contributors++
	}

	if weightSum == 0 {
		value := n.config.Undefined.Value(store)
		if n.config.Undefined == recommend.UndefinedUnratedZero {
			v, err := n.unratedValue(ctx, store, target)
			if err != nil {
				return recommend.Estimate{}, err
			}
			value = v
		}
		return recommend.Estimate{
			Value:     value,
			Source:    recommend.SourceUndefined,
			Neighbors: contributors,
		}, nil
	}

	return recommend.Estimate{
		Value:     weighted / weightSum,
		Source:    recommend.SourceWeighted,
		Neighbors: contributors,
	}, nil
}

// unratedValue resolves recommend.UndefinedUnratedZero for target. Every
// other entity on the axis contributes sim*0 to the numerator and sim to
// the denominator, so the quotient is 0 unless the similarities sum to 0.
func (n *NeighborCF) unratedValue(ctx context.Context, store *recommend.Store, target int) (float64, error) {
	targetProfile := store.Profile(n.axis, target)
	if targetProfile.Empty() {
		return math.NaN(), nil
	}

	var simSum float64
	for i, id := range store.IDs(n.axis) {
		if i%cancelCheckInterval == 0 && i > 0 && canceled(ctx) {
			return 0, ctx.Err()
		}
		if id == target {
			continue
		}
		simSum += CosineSimilarity(targetProfile, store.Profile(n.axis, id))
	}

	if simSum == 0 {
		return math.NaN(), nil
	}
	return 0, nil
}
