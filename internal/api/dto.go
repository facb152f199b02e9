// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package api

import (
	"math"

	"github.com/tomtom215/cfpredict/internal/recommend"
)

// EstimateResponse is one side of a blended prediction. Value is null when
// the estimate is undefined, since JSON cannot carry NaN.
type EstimateResponse struct {
	Value      *float64 `json:"value"`
	Defined    bool     `json:"defined"`
	Source     string   `json:"source"`
	NeighborID *int     `json:"neighbor_id,omitempty"`
	Neighbors  int      `json:"neighbors"`
}

// PredictionResponse is the JSON form of a blended prediction.
type PredictionResponse struct {
	UserID     int              `json:"user_id"`
	MovieID    int              `json:"movie_id"`
	Prediction *float64         `json:"prediction"`
	Defined    bool             `json:"defined"`
	UserBased  EstimateResponse `json:"user_based"`
	ItemBased  EstimateResponse `json:"item_based"`
}

// BatchPredictionResponse is the body of a batch prediction response.
type BatchPredictionResponse struct {
	Predictions []PredictionResponse `json:"predictions"`
	Undefined   int                  `json:"undefined"`
}

// SimilarityResponse is the cosine similarity of two profiles.
type SimilarityResponse struct {
	Axis       string  `json:"axis"`
	A          int     `json:"a"`
	B          int     `json:"b"`
	Similarity float64 `json:"similarity"`
	ARatings   int     `json:"a_ratings"`
	BRatings   int     `json:"b_ratings"`
}

// CacheStatsResponse reports prediction cache counters.
type CacheStatsResponse struct {
	Hits   int64 `json:"hits"`
	Misses int64 `json:"misses"`
	Size   int   `json:"size"`
}

// StatsResponse is the body of GET /stats.
type StatsResponse struct {
	Store         recommend.StoreStats `json:"store"`
	Cache         *CacheStatsResponse  `json:"cache,omitempty"`
	UptimeSeconds float64              `json:"uptime_seconds"`
}

// finite returns a pointer to v, or nil when v is NaN or infinite.
func finite(v float64) *float64 {
	if math.IsNaN(v) || math.IsInf(v, 0) {
		return nil
	}
	return &v
}

func newEstimateResponse(e recommend.Estimate) EstimateResponse {
	resp := EstimateResponse{
		Value:     finite(e.Value),
		Defined:   e.Defined(),
		Source:    e.Source.String(),
		Neighbors: e.Neighbors,
	}
	if e.Source == recommend.SourceNeighbor {
		id := e.NeighborID
		resp.NeighborID = &id
	}
	return resp
}

//nolint:gocritic // hugeParam: Prediction is converted once per response
func newPredictionResponse(p recommend.Prediction) PredictionResponse {
	return PredictionResponse{
		UserID:     p.UserID,
		MovieID:    p.MovieID,
		Prediction: finite(p.Value),
		Defined:    p.Defined(),
		UserBased:  newEstimateResponse(p.UserBased),
		ItemBased:  newEstimateResponse(p.ItemBased),
	}
}
