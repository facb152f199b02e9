// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

/*
Package predstore persists computed predictions in BadgerDB so repeated
batch runs and restarted servers do not recompute them.

It is a cache of derived output only. Training ratings are never written
here; the rating store is always rebuilt in memory from the training file,
and deleting the database directory loses nothing but cached predictions.

Entries are keyed by a fingerprint of the training ratings and algorithm
settings, so a changed training file or policy never serves stale values:

	pred:<fingerprint hex>:<userId>:<movieId>

Each entry carries a BadgerDB TTL. Expired and superseded entries are
reclaimed by RunGC, which serve mode schedules through the supervisor's
maintenance layer.

GuardedStore puts a sony/gobreaker circuit breaker in front of the store.
After repeated failures it stops touching BadgerDB for a while and lets
the engine recompute, so a sick disk costs a metric, not latency.

	fp := predstore.Fingerprint(store, cfg.ModelSignature())
	ps, err := predstore.Open(predstore.DefaultConfig(cfg.Cache.PersistPath), fp)
	if err != nil {
	    return err
	}
	defer ps.Close()
	engine.UsePredictionStore(predstore.NewGuardedStore(ps, predstore.DefaultBreakerConfig()))
*/
package predstore
