// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

// Package validation provides struct validation using go-playground/validator v10.
//
// A single validator instance is shared process-wide; it caches struct
// metadata, so repeated validation of the same request and config types is
// cheap. Field names in errors come from json tags (API requests) or koanf
// tags (configuration), so messages name the keys the caller actually wrote.
//
// Custom tags:
//   - loglevel: a level name understood by the logging package
//
// Example:
//
//	type batchRequest struct {
//	    Queries []recommend.Query `json:"queries" validate:"required,min=1,max=1000,dive"`
//	}
//
//	if verr := validation.ValidateStruct(&req); verr != nil {
//	    // 400 with verr.Error() and verr.Details()
//	}
package validation
