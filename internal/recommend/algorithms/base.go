// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package algorithms

import (
	"context"

	"github.com/tomtom215/cfpredict/internal/recommend"
)

var _ recommend.Algorithm = (*NeighborCF)(nil)

// BaseAlgorithm carries the identity every recommend.Algorithm reports:
// a metrics label and the axis whose profiles it compares.
type BaseAlgorithm struct {
	name string
	axis recommend.Axis
}

// NewBaseAlgorithm returns the identity for an algorithm.
func NewBaseAlgorithm(name string, axis recommend.Axis) BaseAlgorithm {
	return BaseAlgorithm{name: name, axis: axis}
}

// Name is used as the algorithm label in metrics and logs.
func (b *BaseAlgorithm) Name() string { return b.name }

// Axis implements recommend.Algorithm.
func (b *BaseAlgorithm) Axis() recommend.Axis { return b.axis }

// canceled polls ctx without blocking. Neighbor scans call it every
// cancelCheckInterval candidates.
func canceled(ctx context.Context) bool {
	return ctx.Err() != nil
}
