// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

/*
Package supervisor runs the long-lived parts of serve mode under suture v4.

The tree has two layers so that background upkeep cannot take the HTTP
listener down with it:

	RootSupervisor ("cfpredict")
	├── MaintenanceSupervisor ("maintenance-layer")
	│   └── CacheJanitorService (if cache.enabled)
	└── APISupervisor ("api-layer")
	    └── HTTPServerService

Supervisor events (service start, failure, backoff) are reported through
sutureslog. The slog logger is normally backed by the application's zerolog
logger:

	slogger := logging.NewSlogLogger(logging.WithComponent("supervisor"))
	tree, err := supervisor.NewSupervisorTree(slogger, supervisor.DefaultTreeConfig())
	if err != nil {
	    return err
	}
	tree.AddAPIService(services.NewHTTPServerService(srv, cfg.Server.ShutdownTimeout))

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()
	err = tree.Serve(ctx)

Batch mode does not use the tree.
*/
package supervisor
