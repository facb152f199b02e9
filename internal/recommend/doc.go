// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

// Package recommend predicts unseen user-movie ratings from a sparse ratings
// matrix by blending a user-based and an item-based collaborative filter.
//
// # Architecture
//
//   - Builder / Store: the ratings matrix indexed twice, once by user
//     (profiles keyed by movie) and once by movie (profiles keyed by user).
//   - Algorithm: a single-axis predictor. The algorithms subpackage provides
//     NeighborCF for both axes.
//   - Engine: runs the user-axis and movie-axis algorithms for a query and
//     blends the two estimates by arithmetic mean.
//
// # Lifecycle
//
// A Builder is filled on one goroutine and frozen by Build. The resulting
// Store never changes, so every reader (algorithms, the engine, HTTP
// handlers) shares it without locks.
//
// # Undefined Predictions
//
// An estimate with no contributing neighbor is SourceUndefined. Its value
// comes from the configured UndefinedPolicy: NaN by default, which then
// propagates through Blend.
//
// # Usage
//
//	b := recommend.NewBuilder()
//	b.AddRatings(ratings)
//	store := b.Build()
//
//	engine, err := recommend.NewEngine(store, recommend.DefaultConfig(), logger,
//	    algorithms.NewUserBasedCF(algorithms.DefaultKNNConfig()),
//	    algorithms.NewItemBasedCF(algorithms.DefaultKNNConfig()))
//	if err != nil {
//	    return err
//	}
//
//	p, err := engine.Predict(ctx, recommend.Query{UserID: 1, MovieID: 10})
//
// # Thread Safety
//
// Store, Engine and the algorithms are safe for concurrent use once built.
// Builder is not.
package recommend
