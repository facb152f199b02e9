// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

/*
Package config provides layered configuration loading using Koanf v2.

Sources are applied in order, later ones winning:

 1. Built-in defaults (defaultConfig)
 2. YAML file: CONFIG_PATH, else config.yaml, config.yml, /etc/cfpredict/config.yaml
 3. Environment variables from an explicit mapping table

Unmapped environment variables are ignored.

# Environment Variables

Run mode:
  - MODE: batch or serve (default: batch)

Data:
  - TRAIN_PATH: ratings CSV (default: ./datafiles/train.csv)
  - QUERY_PATH: query CSV (default: ./datafiles/test.csv)
  - OUTPUT_PATH: result CSV, "-" for stdout (default: ./datafiles/conclusion.csv)
  - CSV_HEADER: skip the first input row (default: true)
  - OUTPUT_PRECISION: significant digits per prediction (default: 6)

Prediction:
  - SHORT_CIRCUIT: return the first neighbor rating (default: true)
  - UNDEFINED_POLICY: nan, global_mean, zero or unrated_zero (default: nan)
  - PREDICT_WORKERS: concurrent batch predictions, 0 = NumCPU
  - CACHE_ENABLED, CACHE_CAPACITY, CACHE_TTL: prediction cache
  - CACHE_PERSIST_PATH: BadgerDB directory for persisted predictions (default: off)
  - CACHE_PERSIST_PURGE: drop all persisted predictions on startup (default: false)
  - CACHE_PERSIST_TTL, CACHE_PERSIST_GC_INTERVAL (default: 24h, 10m)

Server (serve mode):
  - HTTP_HOST, HTTP_PORT (default: 0.0.0.0:8080)
  - HTTP_TIMEOUT, SHUTDOWN_TIMEOUT
  - CORS_ORIGINS: comma-separated origins (default: *)
  - RATE_LIMIT_REQUESTS, RATE_LIMIT_WINDOW, DISABLE_RATE_LIMIT

Logging:
  - LOG_LEVEL, LOG_FORMAT (json or console), LOG_CALLER

# Example YAML

	mode: serve
	data:
	  train_path: /data/train.csv
	predict:
	  undefined_policy: global_mean
	cache:
	  enabled: true
	server:
	  port: 9090
	  cors_origins: ["https://example.com"]

# Validation

Struct tags are checked through the validation package, followed by
cross-field rules in Config.Validate (batch paths, cache bounds, server
timeouts and rate limits).
*/
package config
