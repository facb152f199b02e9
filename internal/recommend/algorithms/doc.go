// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

// Package algorithms implements the single-axis rating predictors used by
// the blended engine.
//
// # Similarity
//
// CosineSimilarity compares two profiles on the same axis. The dot product
// runs over the counterparts both profiles rated, while each norm runs over
// all of its own profile's entries:
//
//	sim(a, b) = sum_{k in a∩b} a[k]*b[k] / (||a|| * ||b||)
//
// A profile that rates many counterparts the other never saw is therefore
// penalised even when the overlap agrees perfectly. Either norm being zero
// yields exactly 0.
//
// # Neighbor Prediction
//
// NeighborCF predicts the rating of a target entity for a counterpart by
// scanning every other entity on its axis in ascending ID order:
//
//   - With ShortCircuit (the default) the first entity that rated the
//     counterpart supplies its rating verbatim.
//   - Without it, every rater contributes its rating weighted by its cosine
//     similarity to the target.
//
// When nothing contributes the estimate is undefined and its value comes
// from the configured recommend.UndefinedPolicy.
//
// One NeighborCF type serves both axes:
//
//	users := algorithms.NewUserBasedCF(algorithms.DefaultKNNConfig())
//	movies := algorithms.NewItemBasedCF(algorithms.DefaultKNNConfig())
//
// # Thread Safety
//
// Algorithms hold only configuration. They read an immutable recommend.Store
// and are safe for concurrent use without locking.
package algorithms
