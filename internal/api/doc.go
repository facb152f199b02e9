// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

/*
Package api serves read-only rating predictions over HTTP.

Endpoints:

	GET  /api/v1/health/live                 liveness check
	GET  /api/v1/health/ready                503 until a store is loaded
	GET  /api/v1/predictions?user_id=&movie_id=
	POST /api/v1/predictions/batch           {"queries":[{"user_id":1,"movie_id":10}]}
	GET  /api/v1/similarity/{axis}/{a}/{b}   axis is users or movies
	GET  /api/v1/stats                       store dimensions and cache counters
	GET  /metrics                            Prometheus exposition

Every JSON response uses the APIResponse envelope:

	{"success": true, "data": {...}, "meta": {"request_id": "...", "timestamp": "...", "duration_ms": 0}}

Undefined predictions are reported as "prediction": null with
"defined": false, since JSON has no NaN.

Middleware order: request ID, real IP, access log, panic recovery, CORS
(go-chi/cors), Prometheus metrics, and on /api/v1 an IP-keyed rate limit
(go-chi/httprate) plus security headers.

Usage:

	handler := api.NewHandler(engine, cfg.Server.Timeout)
	router := api.NewRouter(handler, api.ChiMiddlewareConfigFromServer(&cfg.Server))
	srv := &http.Server{Addr: cfg.Server.Addr(), Handler: router.Setup()}
*/
package api
