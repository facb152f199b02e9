// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package dataset

import (
	"context"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/rs/zerolog"

	"github.com/tomtom215/cfpredict/internal/logging"
	"github.com/tomtom215/cfpredict/internal/metrics"
	"github.com/tomtom215/cfpredict/internal/recommend"
)

// Input names used in logs and the records_skipped metric.
const (
	InputRatings = "ratings"
	InputQueries = "queries"
)

// cancelCheckInterval is how many records are read between context checks.
const cancelCheckInterval = 4096

// Options controls how CSV input is read.
type Options struct {
	// Header skips the first record.
	Header bool

	// Logger receives per-record skip messages at debug level.
	Logger zerolog.Logger
}

// DefaultOptions returns options that skip a header row and log through
// the dataset component logger.
func DefaultOptions() Options {
	return Options{
		Header: true,
		Logger: logging.WithComponent("dataset"),
	}
}

// ReadStats holds statistics about one read pass.
type ReadStats struct {
	// Input is InputRatings or InputQueries.
	Input string

	// Read is the number of records accepted.
	Read int

	// Skipped is the number of malformed records dropped.
	Skipped int

	// StartTime is when reading started.
	StartTime time.Time

	// EndTime is when reading finished.
	EndTime time.Time
}

// Duration returns how long the read took.
func (s *ReadStats) Duration() time.Duration {
	if s.EndTime.IsZero() {
		return time.Since(s.StartTime)
	}
	return s.EndTime.Sub(s.StartTime)
}

// RecordsPerSecond returns the read rate over accepted and skipped records.
func (s *ReadStats) RecordsPerSecond() float64 {
	duration := s.Duration().Seconds()
	if duration == 0 {
		return 0
	}
	return float64(s.Read+s.Skipped) / duration
}

// ReadQueries reads every well-formed query from r in file order.
func ReadQueries(ctx context.Context, r io.Reader, opts Options) ([]recommend.Query, ReadStats, error) {
	var queries []recommend.Query
	stats, err := readRecords(ctx, r, InputQueries, opts, func(fields []string) error {
		q, err := ParseQuery(fields)
		if err != nil {
			return err
		}
		queries = append(queries, q)
		return nil
	})
	if err != nil {
		return nil, stats, err
	}
	return queries, stats, nil
}

// BuildStore streams ratings from r straight into a Builder and returns
// the frozen store.
func BuildStore(ctx context.Context, r io.Reader, opts Options) (*recommend.Store, ReadStats, error) {
	b := recommend.NewBuilder()
	stats, err := readRecords(ctx, r, InputRatings, opts, func(fields []string) error {
		rating, err := ParseRating(fields)
		if err != nil {
			return err
		}
		b.AddRating(rating)
		return nil
	})
	if err != nil {
		return nil, stats, err
	}

	metrics.RecordRatingsLoaded(stats.Read)
	if dups := b.Duplicates(); dups > 0 {
		opts.Logger.Warn().Int("duplicates", dups).Msg("Repeated (user, movie) pairs overwrote earlier ratings")
	}
	return b.Build(), stats, nil
}

// readRecords drives a CSV reader, handing each record to accept. Records
// rejected with ErrMalformedRecord, and rows the CSV reader cannot parse,
// are skipped and counted. Any other error aborts the read.
func readRecords(ctx context.Context, r io.Reader, input string, opts Options, accept func([]string) error) (ReadStats, error) {
	stats := ReadStats{Input: input, StartTime: time.Now()}

	cr := csv.NewReader(r)
	cr.FieldsPerRecord = -1
	cr.ReuseRecord = true

	first := true
	for n := 0; ; n++ {
		if n%cancelCheckInterval == 0 {
			if err := ctx.Err(); err != nil {
				stats.EndTime = time.Now()
				return stats, err
			}
		}

		fields, err := cr.Read()
		if errors.Is(err, io.EOF) {
			break
		}

		var parseErr *csv.ParseError
		if errors.As(err, &parseErr) {
			first = false
			stats.Skipped++
			opts.Logger.Debug().Str("input", input).Int("line", parseErr.Line).Err(err).Msg("Skipping unreadable record")
			continue
		}
		if err != nil {
			stats.EndTime = time.Now()
			return stats, fmt.Errorf("read %s: %w", input, err)
		}

		if first {
			first = false
			if opts.Header {
				continue
			}
		}

		if err := accept(fields); err != nil {
			if !errors.Is(err, ErrMalformedRecord) {
				stats.EndTime = time.Now()
				return stats, err
			}
			stats.Skipped++
			line, _ := cr.FieldPos(0)
			opts.Logger.Debug().Str("input", input).Int("line", line).Err(err).Msg("Skipping malformed record")
			continue
		}
		stats.Read++
	}

	stats.EndTime = time.Now()
	metrics.RecordRecordsSkipped(input, stats.Skipped)
	return stats, nil
}
