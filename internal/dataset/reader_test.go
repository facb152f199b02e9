// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package dataset

import (
	"bytes"
	"context"
	"errors"
	"io"
	"strings"
	"testing"

	"github.com/prometheus/client_golang/prometheus/testutil"
	"github.com/rs/zerolog"

	"github.com/tomtom215/cfpredict/internal/metrics"
	"github.com/tomtom215/cfpredict/internal/recommend"
)

const fixtureRatings = `userId,movieId,rating
1,10,4
2,10,2
1,20,5
2,20,1
`

func quietOptions(header bool) Options {
	return Options{Header: header, Logger: zerolog.Nop()}
}

func TestBuildStore_Fixture(t *testing.T) {
	store, stats, err := BuildStore(context.Background(), strings.NewReader(fixtureRatings), quietOptions(true))
	if err != nil {
		t.Fatalf("BuildStore() error: %v", err)
	}

	want := []recommend.Rating{
		{UserID: 1, MovieID: 10, Value: 4},
		{UserID: 2, MovieID: 10, Value: 2},
		{UserID: 1, MovieID: 20, Value: 5},
		{UserID: 2, MovieID: 20, Value: 1},
	}
	for _, r := range want {
		if v, ok := store.Profile(recommend.AxisUser, r.UserID).Rating(r.MovieID); !ok || v != r.Value {
			t.Errorf("rating(%d, %d) = %v, %v, want %v", r.UserID, r.MovieID, v, ok, r.Value)
		}
	}
	if stats.Read != 4 || stats.Skipped != 0 || stats.Input != InputRatings {
		t.Errorf("stats = %+v, want Read=4 Skipped=0", stats)
	}
	if stats.EndTime.Before(stats.StartTime) {
		t.Error("EndTime before StartTime")
	}
	if stats.RecordsPerSecond() < 0 {
		t.Errorf("RecordsPerSecond() = %v, want non-negative", stats.RecordsPerSecond())
	}
}

func TestBuildStore_NoHeader(t *testing.T) {
	input := "1,10,4\n2,10,2\n"

	store, stats, err := BuildStore(context.Background(), strings.NewReader(input), quietOptions(false))
	if err != nil {
		t.Fatalf("BuildStore() error: %v", err)
	}
	if store.Stats().Ratings != 2 || stats.Read != 2 {
		t.Errorf("got %d ratings (stats %+v), want 2", store.Stats().Ratings, stats)
	}

	// With header skipping on, the first data row is lost.
	store, _, err = BuildStore(context.Background(), strings.NewReader(input), quietOptions(true))
	if err != nil {
		t.Fatalf("BuildStore() error: %v", err)
	}
	if got := store.IDs(recommend.AxisUser); len(got) != 1 || got[0] != 2 {
		t.Errorf("header skip: users = %v, want only user 2", got)
	}
}

func TestBuildStore_SkipsMalformed(t *testing.T) {
	input := `userId,movieId,rating
1,10,4
oops,10,3
1,20
2,20,not-a-number

2,10,4"x
3,30,2.5
`
	before := testutil.ToFloat64(metrics.RecordsSkipped.WithLabelValues(InputRatings))

	var logBuf bytes.Buffer
	opts := Options{Header: true, Logger: zerolog.New(&logBuf).Level(zerolog.DebugLevel)}

	store, stats, err := BuildStore(context.Background(), strings.NewReader(input), opts)
	if err != nil {
		t.Fatalf("BuildStore() error: %v", err)
	}

	if got := store.IDs(recommend.AxisUser); len(got) != 2 || got[0] != 1 || got[1] != 3 {
		t.Fatalf("users = %v, want [1 3]", got)
	}
	if store.Stats().Ratings != 2 {
		t.Errorf("Ratings = %d, want 2", store.Stats().Ratings)
	}
	if stats.Skipped < 3 {
		t.Errorf("stats.Skipped = %d, want at least 3", stats.Skipped)
	}

	after := testutil.ToFloat64(metrics.RecordsSkipped.WithLabelValues(InputRatings))
	if after-before != float64(stats.Skipped) {
		t.Errorf("records_skipped delta = %v, want %d", after-before, stats.Skipped)
	}
	if !strings.Contains(logBuf.String(), "Skipping malformed record") {
		t.Errorf("expected debug skip log, got %q", logBuf.String())
	}
}

func TestReadQueries(t *testing.T) {
	input := "userId,movieId\n1,10\n2,x\n3,30\n"

	queries, stats, err := ReadQueries(context.Background(), strings.NewReader(input), quietOptions(true))
	if err != nil {
		t.Fatalf("ReadQueries() error: %v", err)
	}

	want := []recommend.Query{{UserID: 1, MovieID: 10}, {UserID: 3, MovieID: 30}}
	if len(queries) != len(want) {
		t.Fatalf("got %d queries, want %d", len(queries), len(want))
	}
	for i := range want {
		if queries[i] != want[i] {
			t.Errorf("queries[%d] = %+v, want %+v", i, queries[i], want[i])
		}
	}
	if stats.Skipped != 1 || stats.Input != InputQueries {
		t.Errorf("stats = %+v, want Skipped=1 Input=queries", stats)
	}
}

func TestBuildStore_Empty(t *testing.T) {
	store, stats, err := BuildStore(context.Background(), strings.NewReader(""), quietOptions(true))
	if err != nil {
		t.Fatalf("BuildStore() error: %v", err)
	}
	if store.Stats().Ratings != 0 || stats.Read != 0 || stats.Skipped != 0 {
		t.Errorf("empty input: store=%+v stats=%+v", store.Stats(), stats)
	}
}

func TestBuildStore_ContextCancelled(t *testing.T) {
	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, _, err := BuildStore(ctx, strings.NewReader(fixtureRatings), quietOptions(true))
	if !errors.Is(err, context.Canceled) {
		t.Errorf("BuildStore() error = %v, want context.Canceled", err)
	}
}

type failingReader struct{}

func (failingReader) Read([]byte) (int, error) {
	return 0, io.ErrUnexpectedEOF
}

func TestBuildStore_IOError(t *testing.T) {
	_, _, err := BuildStore(context.Background(), failingReader{}, quietOptions(true))
	if !errors.Is(err, io.ErrUnexpectedEOF) {
		t.Errorf("BuildStore() error = %v, want io.ErrUnexpectedEOF", err)
	}
}

func TestBuildStore(t *testing.T) {
	input := fixtureRatings + "1,10,3\n"

	store, stats, err := BuildStore(context.Background(), strings.NewReader(input), quietOptions(true))
	if err != nil {
		t.Fatalf("BuildStore() error: %v", err)
	}
	if stats.Read != 5 {
		t.Errorf("stats.Read = %d, want 5", stats.Read)
	}

	got := store.Stats()
	if got.Users != 2 || got.Movies != 2 || got.Ratings != 4 {
		t.Errorf("Stats() = %+v, want 2 users, 2 movies, 4 ratings", got)
	}
	if v, ok := store.Profile(recommend.AxisUser, 1).Rating(10); !ok || v != 3 {
		t.Errorf("duplicate pair: rating = %v, %v, want 3 (last wins)", v, ok)
	}
}
