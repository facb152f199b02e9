// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package services

import (
	"bytes"
	"context"
	"errors"
	"net/http"
	"strings"
	"sync"
	"sync/atomic"
	"testing"
	"time"

	"github.com/rs/zerolog"
	"github.com/thejerf/suture/v4"
)

var (
	_ suture.Service = (*HTTPServerService)(nil)
	_ HTTPServer     = (*http.Server)(nil)
)

// fakeServer blocks in ListenAndServe until Shutdown, unless listenErr is
// set, in which case it fails immediately.
type fakeServer struct {
	listenErr   error
	shutdownErr error

	listens   atomic.Int32
	shutdowns atomic.Int32
	started   chan struct{}
	release   chan struct{}
	once      sync.Once
}

func newFakeServer() *fakeServer {
	return &fakeServer{
		started: make(chan struct{}, 1),
		release: make(chan struct{}),
	}
}

func (f *fakeServer) ListenAndServe() error {
	f.listens.Add(1)
	select {
	case f.started <- struct{}{}:
	default:
	}
	if f.listenErr != nil {
		return f.listenErr
	}
	<-f.release
	return http.ErrServerClosed
}

func (f *fakeServer) Shutdown(context.Context) error {
	f.shutdowns.Add(1)
	f.once.Do(func() { close(f.release) })
	return f.shutdownErr
}

// serveUntilCanceled runs svc, cancels once the server is listening and
// returns Serve's result.
func serveUntilCanceled(t *testing.T, svc *HTTPServerService, srv *fakeServer) error {
	t.Helper()
	ctx, cancel := context.WithCancel(context.Background())
	defer cancel()

	result := make(chan error, 1)
	go func() { result <- svc.Serve(ctx) }()

	select {
	case <-srv.started:
	case <-time.After(time.Second):
		t.Fatal("server never started listening")
	}
	cancel()

	select {
	case err := <-result:
		return err
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancellation")
		return nil
	}
}

func TestNewHTTPServerService_ShutdownTimeout(t *testing.T) {
	tests := []struct {
		in, want time.Duration
	}{
		{3 * time.Second, 3 * time.Second},
		{0, defaultShutdownTimeout},
		{-time.Second, defaultShutdownTimeout},
	}
	for _, tt := range tests {
		svc := NewHTTPServerService(newFakeServer(), tt.in)
		if svc.shutdownTimeout != tt.want {
			t.Errorf("NewHTTPServerService(%v).shutdownTimeout = %v, want %v", tt.in, svc.shutdownTimeout, tt.want)
		}
	}

	if got := NewHTTPServerService(newFakeServer(), 0).String(); got != "http-server" {
		t.Errorf("String() = %q", got)
	}
}

func TestHTTPServerService_GracefulStop(t *testing.T) {
	srv := newFakeServer()
	err := serveUntilCanceled(t, NewHTTPServerService(srv, time.Second), srv)

	if !errors.Is(err, context.Canceled) {
		t.Errorf("Serve() = %v, want context.Canceled", err)
	}
	if srv.listens.Load() != 1 || srv.shutdowns.Load() != 1 {
		t.Errorf("listens = %d shutdowns = %d, want 1 and 1", srv.listens.Load(), srv.shutdowns.Load())
	}
}

func TestHTTPServerService_ListenFailure(t *testing.T) {
	bindErr := errors.New("bind: address already in use")
	srv := newFakeServer()
	srv.listenErr = bindErr

	err := NewHTTPServerService(srv, time.Second).Serve(context.Background())
	if !errors.Is(err, bindErr) {
		t.Errorf("Serve() = %v, want wrapped bind error", err)
	}
}

func TestHTTPServerService_ShutdownFailure(t *testing.T) {
	drainErr := errors.New("connections still open")
	srv := newFakeServer()
	srv.shutdownErr = drainErr

	err := serveUntilCanceled(t, NewHTTPServerService(srv, time.Second), srv)
	if !errors.Is(err, drainErr) {
		t.Errorf("Serve() = %v, want wrapped shutdown error", err)
	}
}

func TestHTTPServerService_UnderSupervisor(t *testing.T) {
	srv := newFakeServer()
	sup := suture.New("api-layer", suture.Spec{
		FailureBackoff: 10 * time.Millisecond,
		Timeout:        2 * time.Second,
	})
	sup.Add(NewHTTPServerService(srv, time.Second))

	ctx, cancel := context.WithCancel(context.Background())
	done := sup.ServeBackground(ctx)

	select {
	case <-srv.started:
	case <-time.After(time.Second):
		t.Fatal("supervisor never started the server")
	}
	cancel()
	<-done

	if srv.shutdowns.Load() == 0 {
		t.Error("supervisor stop did not shut the server down")
	}
}

func TestHTTPServerService_Logging(t *testing.T) {
	var buf bytes.Buffer
	srv := newFakeServer()
	svc := NewHTTPServerService(srv, time.Second).WithLogger(zerolog.New(&buf))

	_ = serveUntilCanceled(t, svc, srv)

	out := buf.String()
	for _, want := range []string{
		`"service":"http-server"`,
		"http server started",
		"http server shutting down",
		"http server stopped",
	} {
		if !strings.Contains(out, want) {
			t.Errorf("log missing %q:\n%s", want, out)
		}
	}
}

func TestHTTPServerService_RealListener(t *testing.T) {
	srv := &http.Server{
		Addr:              "127.0.0.1:0",
		Handler:           http.NotFoundHandler(),
		ReadHeaderTimeout: time.Second,
	}
	svc := NewHTTPServerService(srv, time.Second)

	ctx, cancel := context.WithCancel(context.Background())
	result := make(chan error, 1)
	go func() { result <- svc.Serve(ctx) }()

	time.Sleep(50 * time.Millisecond)
	cancel()

	select {
	case err := <-result:
		if !errors.Is(err, context.Canceled) {
			t.Errorf("Serve() = %v, want context.Canceled", err)
		}
	case <-time.After(2 * time.Second):
		t.Fatal("Serve did not return after cancellation")
	}
}
