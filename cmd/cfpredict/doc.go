// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

/*
Command cfpredict predicts movie ratings from a training set of
(user, movie, rating) triples using memory-based collaborative filtering.

Each prediction is the mean of a user-based estimate and a movie-based
estimate. Either side may be undefined when no neighbor carries information
about the target; by default that yields NaN.

# Modes

batch (default) reads the training CSV and a query CSV, predicts every
query and writes a result CSV:

	export TRAIN_PATH=./datafiles/train.csv
	export QUERY_PATH=./datafiles/test.csv
	export OUTPUT_PATH=./datafiles/conclusion.csv
	./cfpredict

OUTPUT_PATH=- writes to standard output. Logs always go to stderr.

serve builds the store once and answers prediction requests over HTTP
under a suture supervisor tree until SIGINT or SIGTERM:

	export MODE=serve
	export HTTP_PORT=8080
	./cfpredict

	RootSupervisor ("cfpredict")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── CacheJanitorService (if CACHE_ENABLED)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

# Configuration

Configuration is loaded via Koanf v2 (highest priority wins):

	Priority: Environment variables > Config file > Defaults

	# Prediction
	SHORT_CIRCUIT=true           # first-neighbor rule
	UNDEFINED_POLICY=nan         # nan, global_mean, zero or unrated_zero
	PREDICT_WORKERS=0            # 0 = runtime.NumCPU()

	# Prediction cache (serve mode)
	CACHE_ENABLED=false
	CACHE_CAPACITY=10000
	CACHE_TTL=10m

	# Logging
	LOG_LEVEL=info               # trace, debug, info, warn, error
	LOG_FORMAT=json              # json or console

See package config for the full list.
*/
package main
