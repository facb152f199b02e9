// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package services

import (
	"context"
	"errors"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

type countingPurger struct {
	calls atomic.Int32
}

func (p *countingPurger) PurgeExpiredCache() int {
	p.calls.Add(1)
	return 1
}

func TestCacheJanitorService_Interface(t *testing.T) {
	var _ suture.Service = (*CacheJanitorService)(nil)
}

func TestNewCacheJanitorService_MinimumInterval(t *testing.T) {
	svc := NewCacheJanitorService(&countingPurger{}, 10*time.Millisecond, zerolog.Nop())
	if svc.Interval() != time.Second {
		t.Errorf("Interval() = %v, want 1s", svc.Interval())
	}

	svc = NewCacheJanitorService(&countingPurger{}, 5*time.Minute, zerolog.Nop())
	if svc.Interval() != 5*time.Minute {
		t.Errorf("Interval() = %v, want 5m", svc.Interval())
	}
}

func TestCacheJanitorService_Sweeps(t *testing.T) {
	purger := &countingPurger{}
	svc := NewCacheJanitorService(purger, time.Second, zerolog.Nop())

	ctx, cancel := context.WithTimeout(context.Background(), 2500*time.Millisecond)
	defer cancel()

	err := svc.Serve(ctx)
	if !errors.Is(err, context.DeadlineExceeded) {
		t.Errorf("Serve() = %v, want context.DeadlineExceeded", err)
	}
	if got := purger.calls.Load(); got < 1 {
		t.Errorf("expected at least one sweep, got %d", got)
	}
}

func TestCacheJanitorService_StopsOnCancel(t *testing.T) {
	purger := &countingPurger{}
	svc := NewCacheJanitorService(purger, time.Hour, zerolog.Nop())

	ctx, cancel := context.WithCancel(context.Background())
	errCh := make(chan error, 1)
	go func() {
		errCh <- svc.Serve(ctx)
	}()
	cancel()

	select {
	case err := <-errCh:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(time.Second):
		t.Fatal("janitor did not stop")
	}
	if purger.calls.Load() != 0 {
		t.Errorf("unexpected sweep before first tick")
	}
}

func TestCacheJanitorService_String(t *testing.T) {
	svc := NewCacheJanitorService(&countingPurger{}, time.Minute, zerolog.Nop())
	if svc.String() != "cache-janitor" {
		t.Errorf("String() = %q, want cache-janitor", svc.String())
	}
}
