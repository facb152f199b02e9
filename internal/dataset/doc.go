// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

/*
Package dataset is the CSV boundary of the predictor.

Training input is userId,movieId,rating and query input is userId,movieId.
Extra trailing columns are ignored. A header row is skipped when
Options.Header is set. Rows that do not parse are skipped, counted in
ReadStats.Skipped, logged at debug level, and added to the
cfpredict_records_skipped_total metric; they never abort a read.

Predictions are written as userId,movieId,prediction in query order with
six significant digits by default. Undefined predictions are written as NaN.

	store, stats, err := dataset.LoadStore(ctx, cfg.Data.TrainPath, opts)
	queries, _, err := dataset.ReadQueriesFile(ctx, cfg.Data.QueryPath, opts)
	preds, err := engine.PredictAll(ctx, queries)
	err = dataset.WritePredictionsFile(cfg.Data.OutputPath, preds, cfg.Data.Precision)
*/
package dataset
