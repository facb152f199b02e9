// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package predstore

import (
	"context"
	"errors"
	"math"
	"testing"
	"time"

	"github.com/tomtom215/cfpredict/internal/recommend"
)

func testStore(ratings ...recommend.Rating) *recommend.Store {
	b := recommend.NewBuilder()
	b.AddRatings(ratings)
	return b.Build()
}

func fixtureRatings() []recommend.Rating {
	return []recommend.Rating{
		{UserID: 1, MovieID: 10, Value: 4},
		{UserID: 2, MovieID: 10, Value: 2},
		{UserID: 1, MovieID: 20, Value: 5},
		{UserID: 2, MovieID: 20, Value: 1},
	}
}

func openMemory(t *testing.T, fingerprint uint64) *BadgerStore {
	t.Helper()
	cfg := DefaultConfig("")
	cfg.InMemory = true
	s, err := Open(cfg, fingerprint)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	t.Cleanup(func() { _ = s.Close() })
	return s
}

func TestConfigValidate(t *testing.T) {
	tests := []struct {
		name    string
		mutate  func(*Config)
		wantErr bool
	}{
		{"defaults", func(*Config) {}, false},
		{"in-memory without path", func(c *Config) { c.Path = ""; c.InMemory = true }, false},
		{"missing path", func(c *Config) { c.Path = "" }, true},
		{"zero ttl", func(c *Config) { c.TTL = 0 }, true},
		{"gc ratio too high", func(c *Config) { c.GCRatio = 1 }, true},
		{"gc ratio zero", func(c *Config) { c.GCRatio = 0 }, true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			cfg := DefaultConfig("/tmp/predstore")
			tt.mutate(cfg)
			if err := cfg.Validate(); (err != nil) != tt.wantErr {
				t.Errorf("Validate() error = %v, wantErr %v", err, tt.wantErr)
			}
		})
	}
}

func TestFingerprint(t *testing.T) {
	base := testStore(fixtureRatings()...)

	if Fingerprint(base, "a") != Fingerprint(testStore(fixtureRatings()...), "a") {
		t.Error("identical stores should share a fingerprint")
	}
	if Fingerprint(base, "a") == Fingerprint(base, "b") {
		t.Error("signature should change the fingerprint")
	}

	changed := fixtureRatings()
	changed[0].Value = 3
	if Fingerprint(base, "a") == Fingerprint(testStore(changed...), "a") {
		t.Error("a changed rating should change the fingerprint")
	}
}

func TestBadgerStore_SaveLoad(t *testing.T) {
	s := openMemory(t, 42)
	ctx := context.Background()
	q := recommend.Query{UserID: 1, MovieID: 10}

	if _, ok, err := s.Load(ctx, q); err != nil || ok {
		t.Fatalf("Load on empty store = ok %v, err %v", ok, err)
	}

	want := recommend.Prediction{
		Query: q,
		Value: 3.5,
		UserBased: recommend.Estimate{
			Value: 2, Source: recommend.SourceNeighbor, NeighborID: 2,
		},
		ItemBased: recommend.Estimate{
			Value: 5, Source: recommend.SourceNeighbor, NeighborID: 20,
		},
	}
	if err := s.Save(ctx, want); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, ok, err := s.Load(ctx, q)
	if err != nil || !ok {
		t.Fatalf("Load = ok %v, err %v", ok, err)
	}
	if got != want {
		t.Errorf("Load = %+v, want %+v", got, want)
	}

	if n, err := s.Count(); err != nil || n != 1 {
		t.Errorf("Count() = %d, %v; want 1", n, err)
	}
}

func TestBadgerStore_UndefinedRoundTrip(t *testing.T) {
	s := openMemory(t, 1)
	ctx := context.Background()
	q := recommend.Query{UserID: 99, MovieID: 10}

	p := recommend.Prediction{
		Query:     q,
		Value:     math.NaN(),
		UserBased: recommend.Estimate{Value: 4, Source: recommend.SourceNeighbor, NeighborID: 1},
		ItemBased: recommend.Estimate{Value: math.NaN(), Source: recommend.SourceUndefined},
	}
	if err := s.Save(ctx, p); err != nil {
		t.Fatalf("Save: %v", err)
	}

	got, ok, err := s.Load(ctx, q)
	if err != nil || !ok {
		t.Fatalf("Load = ok %v, err %v", ok, err)
	}
	if got.Defined() {
		t.Errorf("Value = %v, want NaN", got.Value)
	}
	if got.ItemBased.Source != recommend.SourceUndefined || got.ItemBased.Defined() {
		t.Errorf("ItemBased = %+v, want undefined NaN", got.ItemBased)
	}
	if got.UserBased.Value != 4 {
		t.Errorf("UserBased.Value = %v, want 4", got.UserBased.Value)
	}
}

func TestBadgerStore_FingerprintIsolation(t *testing.T) {
	cfg := DefaultConfig(t.TempDir())
	ctx := context.Background()
	q := recommend.Query{UserID: 1, MovieID: 10}

	first, err := Open(cfg, 1)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := first.Save(ctx, recommend.Prediction{Query: q, Value: 3}); err != nil {
		t.Fatalf("Save: %v", err)
	}
	if err := first.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}

	second, err := Open(cfg, 2)
	if err != nil {
		t.Fatalf("reopen: %v", err)
	}
	defer second.Close()

	if _, ok, _ := second.Load(ctx, q); ok {
		t.Error("prediction from another fingerprint must not be served")
	}
	if err := second.RunGC(); err != nil {
		t.Errorf("RunGC: %v", err)
	}
}

func TestBadgerStore_Purge(t *testing.T) {
	s := openMemory(t, 7)
	ctx := context.Background()

	for i := 1; i <= 3; i++ {
		p := recommend.Prediction{Query: recommend.Query{UserID: i, MovieID: 1}, Value: float64(i)}
		if err := s.Save(ctx, p); err != nil {
			t.Fatalf("Save: %v", err)
		}
	}
	if err := s.Purge(); err != nil {
		t.Fatalf("Purge: %v", err)
	}
	if n, _ := s.Count(); n != 0 {
		t.Errorf("Count() after Purge = %d, want 0", n)
	}
}

func TestBadgerStore_Closed(t *testing.T) {
	cfg := DefaultConfig("")
	cfg.InMemory = true
	cfg.CloseTimeout = 5 * time.Second
	s, err := Open(cfg, 1)
	if err != nil {
		t.Fatalf("Open: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Fatalf("Close: %v", err)
	}
	if err := s.Close(); err != nil {
		t.Errorf("second Close: %v", err)
	}

	ctx := context.Background()
	if _, _, err := s.Load(ctx, recommend.Query{}); !errors.Is(err, ErrClosed) {
		t.Errorf("Load after Close = %v, want ErrClosed", err)
	}
	if err := s.Save(ctx, recommend.Prediction{}); !errors.Is(err, ErrClosed) {
		t.Errorf("Save after Close = %v, want ErrClosed", err)
	}
	if err := s.RunGC(); !errors.Is(err, ErrClosed) {
		t.Errorf("RunGC after Close = %v, want ErrClosed", err)
	}
}

func TestBadgerStore_CanceledContext(t *testing.T) {
	s := openMemory(t, 1)
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	if _, _, err := s.Load(ctx, recommend.Query{}); !errors.Is(err, context.Canceled) {
		t.Errorf("Load = %v, want context.Canceled", err)
	}
}
