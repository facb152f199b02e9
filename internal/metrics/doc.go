// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

/*
Package metrics provides Prometheus metrics collection and export for observability.

All collectors are registered with the default registry through promauto and
are exposed at /metrics in serve mode:

	curl http://localhost:8080/metrics

# Available Metrics

Dataset and store:
  - cfpredict_ratings_loaded_total: training ratings accepted (counter)
  - cfpredict_records_skipped_total: malformed records skipped (counter)
    Labels: input
  - cfpredict_store_profiles: profiles per axis (gauge)
    Labels: axis

Prediction:
  - cfpredict_predictions_total: single-axis estimates (counter)
    Labels: axis, source
  - cfpredict_prediction_duration_seconds: blended prediction latency (histogram)
  - cfpredict_batch_duration_seconds: batch run latency (histogram)
  - cfpredict_batch_queries_total: queries processed in batch runs (counter)
  - cfpredict_prediction_cache_hits_total / _misses_total (counters)

API:
  - cfpredict_api_requests_total (counter)
    Labels: method, endpoint, status_code
  - cfpredict_api_request_duration_seconds (histogram)
    Labels: method, endpoint
  - cfpredict_api_active_requests (gauge)
  - cfpredict_api_rate_limit_hits_total (counter)
    Labels: endpoint

# Usage

Callers use the Record* helpers rather than touching collectors directly:

	metrics.RecordPrediction(p.UserBased.Source.String(), p.ItemBased.Source.String(), time.Since(start))

# Thread Safety

Prometheus collectors are safe for concurrent use.
*/
package metrics
