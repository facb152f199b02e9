// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package main

import (
	"context"
	"errors"
	"fmt"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"github.com/tomtom215/cfpredict/internal/api"
	"github.com/tomtom215/cfpredict/internal/config"
	"github.com/tomtom215/cfpredict/internal/dataset"
	"github.com/tomtom215/cfpredict/internal/logging"
	"github.com/tomtom215/cfpredict/internal/predstore"
	"github.com/tomtom215/cfpredict/internal/recommend"
	"github.com/tomtom215/cfpredict/internal/recommend/algorithms"
	"github.com/tomtom215/cfpredict/internal/supervisor"
	"github.com/tomtom215/cfpredict/internal/supervisor/services"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		logging.Fatal().Err(err).Msg("Failed to load configuration")
	}

	logging.Init(logging.Config{
		Level:     cfg.Logging.Level,
		Format:    cfg.Logging.Format,
		Caller:    cfg.Logging.Caller,
		Timestamp: true,
	})

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	if err := run(ctx, cfg); err != nil {
		stop()
		logging.Fatal().Err(err).Str("mode", cfg.Mode).Msg("cfpredict failed")
	}
}

// run loads the training data and dispatches on cfg.Mode.
func run(ctx context.Context, cfg *config.Config) error {
	logging.Info().Str("config", cfg.String()).Msg("Starting cfpredict")

	engine, err := newEngine(ctx, cfg)
	if err != nil {
		return err
	}

	var ps *predstore.BadgerStore
	if cfg.Cache.PersistPath != "" {
		ps, err = openPredictionStore(cfg, engine)
		if err != nil {
			return err
		}
		defer func() {
			if err := ps.Close(); err != nil {
				logging.Error().Err(err).Msg("Error closing prediction store")
			}
		}()
	}

	switch cfg.Mode {
	case config.ModeBatch:
		return runBatch(ctx, cfg, engine)
	case config.ModeServe:
		return runServe(ctx, cfg, engine, ps)
	default:
		return fmt.Errorf("unknown mode %q", cfg.Mode)
	}
}

func readOptions(cfg *config.Config) dataset.Options {
	opts := dataset.DefaultOptions()
	opts.Header = cfg.Data.Header
	return opts
}

// newEngine builds the ratings store and wires the user and movie axis
// neighbor predictors into an engine.
func newEngine(ctx context.Context, cfg *config.Config) (*recommend.Engine, error) {
	store, stats, err := dataset.LoadStore(ctx, cfg.Data.TrainPath, readOptions(cfg))
	if err != nil {
		return nil, err
	}
	logging.Info().
		Str("path", cfg.Data.TrainPath).
		Int("read", stats.Read).
		Int("skipped", stats.Skipped).
		Dur("duration", stats.Duration()).
		Float64("records_per_sec", stats.RecordsPerSecond()).
		Msg("Training data loaded")

	knn := cfg.KNNConfig()
	engine, err := recommend.NewEngine(
		store,
		cfg.EngineConfig(),
		logging.WithComponent("recommend"),
		algorithms.NewUserBasedCF(knn),
		algorithms.NewItemBasedCF(knn),
	)
	if err != nil {
		return nil, fmt.Errorf("create engine: %w", err)
	}
	return engine, nil
}

// openPredictionStore opens the BadgerDB prediction store scoped to the
// engine's training data and attaches it to the engine behind a circuit
// breaker.
func openPredictionStore(cfg *config.Config, engine *recommend.Engine) (*predstore.BadgerStore, error) {
	psCfg := predstore.DefaultConfig(cfg.Cache.PersistPath)
	psCfg.TTL = cfg.Cache.PersistTTL

	ps, err := predstore.Open(psCfg, predstore.Fingerprint(engine.Store(), cfg.ModelSignature()))
	if err != nil {
		return nil, fmt.Errorf("open prediction store: %w", err)
	}

	if cfg.Cache.PersistPurge {
		if err := ps.Purge(); err != nil {
			ps.Close()
			return nil, fmt.Errorf("purge prediction store: %w", err)
		}
		logging.Info().Str("path", cfg.Cache.PersistPath).Msg("Prediction store purged")
	}

	n, err := ps.Count()
	if err != nil {
		logging.Warn().Err(err).Msg("Cannot count persisted predictions")
	}
	logging.Info().Str("path", cfg.Cache.PersistPath).Int("entries", n).Msg("Prediction store ready")

	engine.UsePredictionStore(predstore.NewGuardedStore(ps, predstore.DefaultBreakerConfig()))
	return ps, nil
}

// runBatch predicts every query in the query file and writes the results.
func runBatch(ctx context.Context, cfg *config.Config, engine *recommend.Engine) error {
	ctx = logging.ContextWithNewCorrelationID(ctx)
	start := time.Now()

	queries, stats, err := dataset.ReadQueriesFile(ctx, cfg.Data.QueryPath, readOptions(cfg))
	if err != nil {
		return err
	}
	logging.Ctx(ctx).Info().
		Str("path", cfg.Data.QueryPath).
		Int("read", stats.Read).
		Int("skipped", stats.Skipped).
		Float64("records_per_sec", stats.RecordsPerSecond()).
		Msg("Queries loaded")

	preds, err := engine.PredictAll(ctx, queries)
	if err != nil {
		return fmt.Errorf("predict: %w", err)
	}

	if err := dataset.WritePredictionsFile(cfg.Data.OutputPath, preds, cfg.Data.Precision); err != nil {
		return fmt.Errorf("write predictions: %w", err)
	}

	undefined := 0
	for i := range preds {
		if !preds[i].Defined() {
			undefined++
		}
	}
	logging.Ctx(ctx).Info().
		Str("output", cfg.Data.OutputPath).
		Int("predictions", len(preds)).
		Int("undefined", undefined).
		Dur("duration", time.Since(start)).
		Msg("Batch prediction written")
	return nil
}

// runServe serves predictions over HTTP under the supervisor tree until ctx
// is canceled.
func runServe(ctx context.Context, cfg *config.Config, engine *recommend.Engine, ps *predstore.BadgerStore) error {
	if cfg.HasWildcardCORS() {
		logging.Warn().Msg("CORS allows any origin (CORS_ORIGINS=*); set explicit origins for browser clients")
	}
	if cfg.Server.RateLimitDisabled {
		logging.Warn().Msg("Rate limiting is DISABLED (DISABLE_RATE_LIMIT=true)")
	}

	tree, err := supervisor.NewSupervisorTree(
		logging.NewSlogLogger(logging.WithComponent("supervisor")),
		supervisor.TreeConfig{ShutdownTimeout: cfg.Server.ShutdownTimeout},
	)
	if err != nil {
		return fmt.Errorf("create supervisor tree: %w", err)
	}

	handler := api.NewHandler(engine, cfg.Server.Timeout)
	router := api.NewRouter(handler, api.ChiMiddlewareConfigFromServer(&cfg.Server))

	server := &http.Server{
		Addr:              cfg.Server.Addr(),
		Handler:           router.Setup(),
		ReadHeaderTimeout: cfg.Server.Timeout,
		ReadTimeout:       cfg.Server.Timeout,
		// Leave headroom past the per-request deadline for the error response.
		WriteTimeout: cfg.Server.Timeout + 5*time.Second,
		IdleTimeout:  60 * time.Second,
	}

	if engine.CacheEnabled() {
		tree.AddMaintenanceService(services.NewCacheJanitorService(
			engine, cfg.Cache.TTL/2, logging.WithComponent("supervisor"),
		))
	}
	if ps != nil {
		tree.AddMaintenanceService(services.NewStoreGCService(
			ps, cfg.Cache.PersistGCInterval, logging.WithComponent("supervisor"),
		))
	}
	tree.AddAPIService(services.NewHTTPServerService(server, cfg.Server.ShutdownTimeout).
		WithLogger(logging.WithComponent("supervisor")))
	logging.Info().Str("addr", server.Addr).Msg("HTTP server service added")

	err = tree.Serve(ctx)

	unstopped, _ := tree.UnstoppedServiceReport()
	for _, svc := range unstopped {
		logging.Warn().Str("service", svc.Name).Msg("Service failed to stop within timeout")
	}

	if err != nil && !errors.Is(err, context.Canceled) {
		return fmt.Errorf("supervisor tree: %w", err)
	}
	logging.Info().Msg("Server stopped gracefully")
	return nil
}
