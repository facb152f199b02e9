// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package recommend

import "sort"

// Profile is the sparse rating vector of one user or one movie.
//
// A user profile (AxisUser) maps movie IDs to ratings; a movie profile
// (AxisMovie) maps user IDs to ratings. Profiles are mutable only while
// owned by a Builder. Once the store is built, keys are iterated in
// ascending order and the squared norm is cached.
type Profile struct {
	id      int
	axis    Axis
	ratings map[int]float64

	// populated by freeze
	keys   []int
	normSq float64
}

// newProfile creates an empty, unfrozen profile.
func newProfile(axis Axis, id int) *Profile {
	return &Profile{
		id:      id,
		axis:    axis,
		ratings: make(map[int]float64),
	}
}

// ProfileOf builds a frozen profile from a counterpart->rating map.
// The map is copied.
func ProfileOf(axis Axis, id int, ratings map[int]float64) *Profile {
	p := newProfile(axis, id)
	for k, v := range ratings {
		p.ratings[k] = v
	}
	p.freeze()
	return p
}

// ID returns the entity identifier.
func (p *Profile) ID() int {
	return p.id
}

// Axis returns the axis the profile is indexed on.
func (p *Profile) Axis() Axis {
	return p.axis
}

// Len returns the number of rated counterparts.
func (p *Profile) Len() int {
	return len(p.ratings)
}

// Empty reports whether the profile has no ratings.
func (p *Profile) Empty() bool {
	return len(p.ratings) == 0
}

// Rating returns the rating for a counterpart and whether it exists.
func (p *Profile) Rating(counterpartID int) (float64, bool) {
	v, ok := p.ratings[counterpartID]
	return v, ok
}

// Keys returns counterpart IDs in ascending order.
// The returned slice is shared and must not be modified.
func (p *Profile) Keys() []int {
	return p.keys
}

// Each calls fn for every rating in ascending counterpart order.
// Iteration stops early when fn returns false.
func (p *Profile) Each(fn func(counterpartID int, value float64) bool) {
	for _, k := range p.keys {
		if !fn(k, p.ratings[k]) {
			return
		}
	}
}

// SquaredNorm returns the sum of squared ratings over all entries.
func (p *Profile) SquaredNorm() float64 {
	return p.normSq
}

// set stores a rating; last write wins. Reports whether the pair existed.
func (p *Profile) set(counterpartID int, value float64) bool {
	_, existed := p.ratings[counterpartID]
	p.ratings[counterpartID] = value
	return existed
}

// freeze computes the sorted key order and the squared norm.
func (p *Profile) freeze() {
	p.keys = make([]int, 0, len(p.ratings))
	p.normSq = 0
	for k := range p.ratings {
		p.keys = append(p.keys, k)
	}
	sort.Ints(p.keys)
	// Sum in key order so the norm is reproducible bit-for-bit.
	for _, k := range p.keys {
		v := p.ratings[k]
		p.normSq += v * v
	}
}
