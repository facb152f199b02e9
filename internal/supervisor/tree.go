// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package supervisor

import (
	"context"
	"log/slog"
	"time"

	"github.com/thejerf/suture/v4"
	"github.com/thejerf/sutureslog"
)

// TreeConfig tunes restart behavior. It is applied to every supervisor in
// the tree.
type TreeConfig struct {
	// FailureThreshold failures, decaying at one per FailureDecay seconds,
	// put a supervisor into FailureBackoff before it restarts anything.
	FailureThreshold float64
	FailureDecay     float64
	FailureBackoff   time.Duration

	// ShutdownTimeout bounds how long a service may take to return from
	// Serve after its context is canceled.
	ShutdownTimeout time.Duration
}

// DefaultTreeConfig mirrors suture's own defaults.
func DefaultTreeConfig() TreeConfig {
	return TreeConfig{
		FailureThreshold: 5,
		FailureDecay:     30,
		FailureBackoff:   15 * time.Second,
		ShutdownTimeout:  10 * time.Second,
	}
}

// withDefaults fills zero fields from DefaultTreeConfig.
func (c TreeConfig) withDefaults() TreeConfig {
	d := DefaultTreeConfig()
	if c.FailureThreshold == 0 {
		c.FailureThreshold = d.FailureThreshold
	}
	if c.FailureDecay == 0 {
		c.FailureDecay = d.FailureDecay
	}
	if c.FailureBackoff == 0 {
		c.FailureBackoff = d.FailureBackoff
	}
	if c.ShutdownTimeout == 0 {
		c.ShutdownTimeout = d.ShutdownTimeout
	}
	return c
}

func (c TreeConfig) supervisorSpec(hook suture.EventHook) suture.Spec {
	return suture.Spec{
		EventHook:        hook,
		FailureThreshold: c.FailureThreshold,
		FailureDecay:     c.FailureDecay,
		FailureBackoff:   c.FailureBackoff,
		Timeout:          c.ShutdownTimeout,
	}
}

// SupervisorTree is the serve-mode process tree:
//
//	cfpredict
//	├── maintenance-layer  cache janitor, prediction store GC
//	└── api-layer          HTTP server
//
// The layers restart independently, so a failing janitor never takes the
// listener down.
type SupervisorTree struct {
	root        *suture.Supervisor
	maintenance *suture.Supervisor
	api         *suture.Supervisor
	logger      *slog.Logger
	config      TreeConfig
}

// NewSupervisorTree builds the tree. Supervisor events are logged through
// logger via sutureslog; nil means slog.Default().
func NewSupervisorTree(logger *slog.Logger, config TreeConfig) (*SupervisorTree, error) {
	if logger == nil {
		logger = slog.Default()
	}
	config = config.withDefaults()

	// Child supervisors inherit the root's hook when added, so only the
	// root carries one.
	root := suture.New("cfpredict", config.supervisorSpec((&sutureslog.Handler{Logger: logger}).MustHook()))
	t := &SupervisorTree{
		root:        root,
		maintenance: suture.New("maintenance-layer", config.supervisorSpec(nil)),
		api:         suture.New("api-layer", config.supervisorSpec(nil)),
		logger:      logger,
		config:      config,
	}
	root.Add(t.maintenance)
	root.Add(t.api)
	return t, nil
}

// Root exposes the root supervisor.
func (t *SupervisorTree) Root() *suture.Supervisor { return t.root }

// AddMaintenanceService supervises svc in the maintenance layer.
func (t *SupervisorTree) AddMaintenanceService(svc suture.Service) suture.ServiceToken {
	return t.maintenance.Add(svc)
}

// AddAPIService supervises svc in the api layer.
func (t *SupervisorTree) AddAPIService(svc suture.Service) suture.ServiceToken {
	return t.api.Add(svc)
}

// Serve runs the tree until ctx is canceled.
func (t *SupervisorTree) Serve(ctx context.Context) error { return t.root.Serve(ctx) }

// ServeBackground runs the tree in a goroutine; the channel yields Serve's
// result.
func (t *SupervisorTree) ServeBackground(ctx context.Context) <-chan error {
	return t.root.ServeBackground(ctx)
}

// UnstoppedServiceReport names services still running after shutdown
// timed out.
func (t *SupervisorTree) UnstoppedServiceReport() ([]suture.UnstoppedService, error) {
	return t.root.UnstoppedServiceReport()
}
