// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package api

import "github.com/tomtom215/cfpredict/internal/recommend"

// MaxBatchQueries bounds the number of queries in one batch request.
const MaxBatchQueries = 1000

// maxBatchBodyBytes bounds the batch request body.
const maxBatchBodyBytes = 1 << 20

// PredictionRequest is the parsed query string of GET /predictions.
// IDs may be any integer, as in the CSV input.
type PredictionRequest struct {
	UserID  int `json:"user_id"`
	MovieID int `json:"movie_id"`
}

// Query converts the request to an engine query.
func (r PredictionRequest) Query() recommend.Query {
	return recommend.Query{UserID: r.UserID, MovieID: r.MovieID}
}

// BatchPredictionRequest is the validated body of POST /predictions/batch.
//
//	{"queries": [{"user_id": 1, "movie_id": 10}, {"user_id": 2, "movie_id": 20}]}
type BatchPredictionRequest struct {
	Queries []recommend.Query `json:"queries" validate:"required,min=1,max=1000,dive"`
}

// SimilarityRequest is the validated path of GET /similarity/{axis}/{a}/{b}.
type SimilarityRequest struct {
	Axis string `json:"axis" validate:"oneof=users movies"`
	A    int    `json:"a"`
	B    int    `json:"b"`
}

// axis maps the path segment to a profile axis.
func (r SimilarityRequest) axis() recommend.Axis {
	if r.Axis == "movies" {
		return recommend.AxisMovie
	}
	return recommend.AxisUser
}
