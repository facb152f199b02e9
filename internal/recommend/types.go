// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package recommend

import (
	"context"
	"math"
)

// Axis selects which side of the ratings matrix a profile lives on.
type Axis int

const (
	// AxisUser indexes profiles by user ID; a user profile is keyed by movie ID.
	AxisUser Axis = iota
	// AxisMovie indexes profiles by movie ID; a movie profile is keyed by user ID.
	AxisMovie
)

// String returns a human-readable name for the axis.
func (a Axis) String() string {
	switch a {
	case AxisUser:
		return "user"
	case AxisMovie:
		return "movie"
	default:
		return "unknown"
	}
}

// Valid reports whether a is one of the defined axes.
func (a Axis) Valid() bool {
	return a == AxisUser || a == AxisMovie
}

// Opposite returns the other axis.
func (a Axis) Opposite() Axis {
	if a == AxisMovie {
		return AxisUser
	}
	return AxisMovie
}

// Target returns the ID of the entity on this axis referenced by q.
func (a Axis) Target(q Query) int {
	if a == AxisMovie {
		return q.MovieID
	}
	return q.UserID
}

// Counterpart returns the ID on the opposite axis referenced by q.
func (a Axis) Counterpart(q Query) int {
	if a == AxisMovie {
		return q.UserID
	}
	return q.MovieID
}

// Rating is a single observed (user, movie, value) triple.
type Rating struct {
	// UserID identifies the rater.
	UserID int `json:"user_id"`

	// MovieID identifies the rated movie.
	MovieID int `json:"movie_id"`

	// Value is the observed rating.
	Value float64 `json:"rating"`
}

// Query is a request for a prediction of one (user, movie) pair.
type Query struct {
	UserID  int `json:"user_id"`
	MovieID int `json:"movie_id"`
}

// Source classifies how an estimate was produced.
type Source int

const (
	// SourceUndefined means no neighbor carried information about the
	// counterpart; the estimate value is decided by the UndefinedPolicy.
	SourceUndefined Source = iota
	// SourceNeighbor means the first other entity (ascending ID) that rated
	// the counterpart supplied its rating verbatim.
	SourceNeighbor
	// SourceWeighted means the estimate is a similarity-weighted mean of
	// neighbor ratings.
	SourceWeighted
)

// String returns a human-readable name for the source.
func (s Source) String() string {
	switch s {
	case SourceUndefined:
		return "undefined"
	case SourceNeighbor:
		return "neighbor"
	case SourceWeighted:
		return "weighted"
	default:
		return "unknown"
	}
}

// Estimate is the output of a single-axis prediction.
type Estimate struct {
	// Value is the predicted rating. With SourceUndefined it is the
	// policy's value: NaN for UndefinedNaN, and for UndefinedUnratedZero
	// whenever the target has no similarity to any other entity.
	Value float64

	// Source records which path produced Value.
	Source Source

	// NeighborID is the entity whose rating was returned when Source is
	// SourceNeighbor. Zero otherwise.
	NeighborID int

	// Neighbors is the number of candidates that contributed to a weighted
	// estimate.
	Neighbors int
}

// Defined reports whether the estimate carries a finite value.
func (e Estimate) Defined() bool {
	return !math.IsNaN(e.Value) && !math.IsInf(e.Value, 0)
}

// Prediction is the blended result for one query.
type Prediction struct {
	Query

	// Value is the arithmetic mean of UserBased.Value and ItemBased.Value.
	Value float64

	// UserBased is the estimate computed over user profiles.
	UserBased Estimate

	// ItemBased is the estimate computed over movie profiles.
	ItemBased Estimate
}

// Defined reports whether the blended value is finite.
func (p Prediction) Defined() bool {
	return !math.IsNaN(p.Value) && !math.IsInf(p.Value, 0)
}

// Algorithm is a single-axis rating predictor.
// Implementations must be safe for concurrent use against an immutable Store.
type Algorithm interface {
	// Name returns the algorithm identifier.
	Name() string

	// Axis returns the axis whose profiles the algorithm compares.
	Axis() Axis

	// Predict estimates the rating for q using the profiles in store.
	Predict(ctx context.Context, store *Store, q Query) (Estimate, error)
}

// StoreStats summarises a built store.
type StoreStats struct {
	Ratings    int     `json:"ratings"`
	Users      int     `json:"users"`
	Movies     int     `json:"movies"`
	Duplicates int     `json:"duplicates"`
	GlobalMean float64 `json:"global_mean"`
}
