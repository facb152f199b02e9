// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package algorithms

import (
	"math"

	"github.com/tomtom215/cfpredict/internal/recommend"
)

// CosineSimilarity computes the cosine similarity between two profiles on
// the same axis.
//
// The dot product covers only counterparts present in both profiles; each
// norm covers every entry of its own profile. Returns 0 if either profile
// has a zero norm.
func CosineSimilarity(a, b *recommend.Profile) float64 {
	normA := a.SquaredNorm()
	normB := b.SquaredNorm()
	if normA == 0 || normB == 0 {
		return 0
	}

	return dot(a, b) / (math.Sqrt(normA) * math.Sqrt(normB))
}

// dot sums a[k]*b[k] over shared keys, walking the smaller profile in
// ascending key order so the result is reproducible. Equal lengths walk the
// lower ID, which keeps dot(a, b) and dot(b, a) bit-identical.
func dot(a, b *recommend.Profile) float64 {
	small, large := a, b
	if large.Len() < small.Len() || (large.Len() == small.Len() && large.ID() < small.ID()) {
		small, large = large, small
	}

	var sum float64
	for _, k := range small.Keys() {
		lv, ok := large.Rating(k)
		if !ok {
			continue
		}
		sv, _ := small.Rating(k)
		sum += sv * lv
	}
	return sum
}
