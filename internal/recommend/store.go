// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package recommend

import "sort"

// Builder accumulates ratings into the two profile indexes.
// It is not safe for concurrent use; build the store on one goroutine
// and share the result.
type Builder struct {
	profiles   [2]map[int]*Profile
	ratings    int
	duplicates int
	sum        float64
	built      bool
}

// NewBuilder creates an empty store builder.
func NewBuilder() *Builder {
	return &Builder{
		profiles: [2]map[int]*Profile{
			AxisUser:  make(map[int]*Profile),
			AxisMovie: make(map[int]*Profile),
		},
	}
}

// AddRating records r in both the user-indexed and the movie-indexed
// profiles. A repeated (user, movie) pair overwrites the earlier value.
// Calls after Build are ignored.
func (b *Builder) AddRating(r Rating) {
	if b.built {
		return
	}

	up := b.profile(AxisUser, r.UserID)
	if prev, existed := up.ratings[r.MovieID]; existed {
		b.duplicates++
		b.sum -= prev
	} else {
		b.ratings++
	}
	up.set(r.MovieID, r.Value)
	b.profile(AxisMovie, r.MovieID).set(r.UserID, r.Value)
	b.sum += r.Value
}

// AddRatings records every rating in rs.
//
//nolint:gocritic // rangeValCopy: Rating is small
func (b *Builder) AddRatings(rs []Rating) {
	for _, r := range rs {
		b.AddRating(r)
	}
}

// Len returns the number of distinct (user, movie) pairs recorded so far.
func (b *Builder) Len() int {
	return b.ratings
}

// Duplicates returns how many ratings overwrote an earlier value.
func (b *Builder) Duplicates() int {
	return b.duplicates
}

// profile returns the profile for id on axis, creating it on first use.
func (b *Builder) profile(axis Axis, id int) *Profile {
	p, ok := b.profiles[axis][id]
	if !ok {
		p = newProfile(axis, id)
		b.profiles[axis][id] = p
	}
	return p
}

// Build freezes the indexes and returns the read-only store.
// The builder must not be used afterwards.
func (b *Builder) Build() *Store {
	b.built = true

	s := &Store{
		profiles:   b.profiles,
		ratings:    b.ratings,
		duplicates: b.duplicates,
	}
	if b.ratings > 0 {
		s.globalMean = b.sum / float64(b.ratings)
	}

	for _, axis := range []Axis{AxisUser, AxisMovie} {
		ids := make([]int, 0, len(s.profiles[axis]))
		for id, p := range s.profiles[axis] {
			p.freeze()
			ids = append(ids, id)
		}
		sort.Ints(ids)
		s.ids[axis] = ids
	}

	return s
}

// Store is the immutable, dual-indexed ratings snapshot.
// All methods are safe for concurrent use.
type Store struct {
	profiles   [2]map[int]*Profile
	ids        [2][]int
	ratings    int
	duplicates int
	globalMean float64
}

// Profile returns the profile for id on axis. Unknown IDs yield an empty
// profile carrying id, so callers never need a nil check.
func (s *Store) Profile(axis Axis, id int) *Profile {
	if p, ok := s.profiles[axis][id]; ok {
		return p
	}
	return ProfileOf(axis, id, nil)
}

// IDs returns the observed IDs on axis in ascending order.
// The returned slice is shared and must not be modified.
func (s *Store) IDs(axis Axis) []int {
	return s.ids[axis]
}

// Each calls fn for every profile on axis in ascending ID order.
// Iteration stops early when fn returns false.
func (s *Store) Each(axis Axis, fn func(p *Profile) bool) {
	for _, id := range s.ids[axis] {
		if !fn(s.profiles[axis][id]) {
			return
		}
	}
}

// GlobalMean returns the mean of all stored ratings, or 0 for an empty store.
func (s *Store) GlobalMean() float64 {
	return s.globalMean
}

// Stats returns summary counts for the store.
func (s *Store) Stats() StoreStats {
	return StoreStats{
		Ratings:    s.ratings,
		Users:      len(s.ids[AxisUser]),
		Movies:     len(s.ids[AxisMovie]),
		Duplicates: s.duplicates,
		GlobalMean: s.globalMean,
	}
}
