// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

// Package services adapts blocking components to suture.Service.
//
// HTTPServerService turns http.Server's ListenAndServe/Shutdown pair into a
// context-driven Serve. CacheJanitorService periodically drops expired
// prediction cache entries.
package services
