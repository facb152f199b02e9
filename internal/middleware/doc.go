// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

/*
Package middleware provides HTTP middleware shared by the API router.

  - RequestID: assigns or propagates X-Request-ID and seeds the logging
    context with request and correlation IDs
  - PrometheusMetrics: records cfpredict_api_* metrics labelled by the chi
    route pattern

Both are plain func(http.Handler) http.Handler and compose with chi's r.Use:

	r := chi.NewRouter()
	r.Use(middleware.RequestID)
	r.Use(middleware.PrometheusMetrics)
*/
package middleware
