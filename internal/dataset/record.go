// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package dataset

import (
	"errors"
	"fmt"
	"math"
	"strconv"
	"strings"

	"github.com/tomtom215/cfpredict/internal/recommend"
)

// ErrMalformedRecord is wrapped by every parse failure. Readers skip
// records that fail with it.
var ErrMalformedRecord = errors.New("malformed record")

// ParseRating parses userId,movieId,rating. Extra trailing fields are ignored.
func ParseRating(fields []string) (recommend.Rating, error) {
	if len(fields) < 3 {
		return recommend.Rating{}, fmt.Errorf("%w: want 3 fields, got %d", ErrMalformedRecord, len(fields))
	}

	userID, err := parseID("userId", fields[0])
	if err != nil {
		return recommend.Rating{}, err
	}
	movieID, err := parseID("movieId", fields[1])
	if err != nil {
		return recommend.Rating{}, err
	}

	raw := strings.TrimSpace(fields[2])
	value, err := strconv.ParseFloat(raw, 64)
	if err != nil {
		return recommend.Rating{}, fmt.Errorf("%w: rating %q: %v", ErrMalformedRecord, raw, err)
	}
	if math.IsNaN(value) || math.IsInf(value, 0) {
		return recommend.Rating{}, fmt.Errorf("%w: rating %q is not finite", ErrMalformedRecord, raw)
	}

	return recommend.Rating{UserID: userID, MovieID: movieID, Value: value}, nil
}

// ParseQuery parses userId,movieId. Extra trailing fields are ignored.
func ParseQuery(fields []string) (recommend.Query, error) {
	if len(fields) < 2 {
		return recommend.Query{}, fmt.Errorf("%w: want 2 fields, got %d", ErrMalformedRecord, len(fields))
	}

	userID, err := parseID("userId", fields[0])
	if err != nil {
		return recommend.Query{}, err
	}
	movieID, err := parseID("movieId", fields[1])
	if err != nil {
		return recommend.Query{}, err
	}

	return recommend.Query{UserID: userID, MovieID: movieID}, nil
}

func parseID(name, field string) (int, error) {
	raw := strings.TrimSpace(field)
	id, err := strconv.Atoi(raw)
	if err != nil {
		return 0, fmt.Errorf("%w: %s %q is not an integer", ErrMalformedRecord, name, raw)
	}
	return id, nil
}
