// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package algorithms

import (
	"math"
	"testing"

	"github.com/tomtom215/cfpredict/internal/recommend"
)

func userProfile(id int, ratings map[int]float64) *recommend.Profile {
	return recommend.ProfileOf(recommend.AxisUser, id, ratings)
}

func TestCosineSimilarity(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b *recommend.Profile
		want float64
	}{
		{
			name: "identical profiles",
			a:    userProfile(1, map[int]float64{1: 3, 2: 4, 7: 1.5}),
			b:    userProfile(2, map[int]float64{1: 3, 2: 4, 7: 1.5}),
			want: 1.0,
		},
		{
			name: "norms cover all entries",
			a:    userProfile(1, map[int]float64{1: 4}),
			b:    userProfile(2, map[int]float64{1: 2, 2: 5}),
			want: 8.0 / (4.0 * math.Sqrt(29)),
		},
		{
			name: "disjoint profiles",
			a:    userProfile(1, map[int]float64{1: 4}),
			b:    userProfile(2, map[int]float64{2: 4}),
			want: 0,
		},
		{
			name: "empty first profile",
			a:    userProfile(1, nil),
			b:    userProfile(2, map[int]float64{1: 2}),
			want: 0,
		},
		{
			name: "empty second profile",
			a:    userProfile(1, map[int]float64{1: 2}),
			b:    userProfile(2, nil),
			want: 0,
		},
		{
			name: "zero ratings give zero norm",
			a:    userProfile(1, map[int]float64{1: 0, 2: 0}),
			b:    userProfile(2, map[int]float64{1: 3}),
			want: 0,
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			got := CosineSimilarity(tt.a, tt.b)
			if math.Abs(got-tt.want) > 1e-12 {
				t.Errorf("CosineSimilarity() = %v, want %v", got, tt.want)
			}
			if math.IsNaN(got) {
				t.Error("CosineSimilarity() returned NaN")
			}
		})
	}
}

func TestCosineSimilarity_AsymmetricNormIsNotIntersectionCosine(t *testing.T) {
	t.Parallel()

	a := userProfile(1, map[int]float64{1: 4})
	b := userProfile(2, map[int]float64{1: 2, 2: 5})

	// Restricted to the shared movie both vectors are parallel.
	if got := CosineSimilarity(a, b); got >= 0.99 {
		t.Errorf("CosineSimilarity() = %v, expected the full-profile norm to reduce it well below 1", got)
	}
}

func TestCosineSimilarity_Symmetric(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name string
		a, b *recommend.Profile
	}{
		{
			"different lengths",
			userProfile(1, map[int]float64{1: 4, 3: 2.5, 9: 1}),
			userProfile(2, map[int]float64{1: 2, 2: 5, 3: 3, 4: 1}),
		},
		{
			"equal lengths",
			userProfile(7, map[int]float64{1: 0.1, 2: 0.7, 5: 3.3}),
			userProfile(3, map[int]float64{1: 0.2, 2: 0.3, 6: 4.9}),
		},
		{
			"equal lengths disjoint",
			userProfile(4, map[int]float64{1: 1, 2: 2}),
			userProfile(5, map[int]float64{3: 3, 4: 4}),
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()
			if ab, ba := dot(tt.a, tt.b), dot(tt.b, tt.a); ab != ba {
				t.Errorf("dot(a, b) = %v, dot(b, a) = %v", ab, ba)
			}
			if ab, ba := CosineSimilarity(tt.a, tt.b), CosineSimilarity(tt.b, tt.a); ab != ba {
				t.Errorf("CosineSimilarity(a, b) = %v, CosineSimilarity(b, a) = %v", ab, ba)
			}
		})
	}
}

func TestCosineSimilarity_SelfIsOne(t *testing.T) {
	t.Parallel()

	store := trainingFixture(t)
	for _, axis := range []recommend.Axis{recommend.AxisUser, recommend.AxisMovie} {
		store.Each(axis, func(p *recommend.Profile) bool {
			if got := CosineSimilarity(p, p); math.Abs(got-1) > 1e-12 {
				t.Errorf("%v %d self-similarity = %v, want 1", axis, p.ID(), got)
			}
			return true
		})
	}
}
