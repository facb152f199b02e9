// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package dataset

import (
	"context"
	"fmt"
	"os"
	"path/filepath"

	"github.com/tomtom215/cfpredict/internal/recommend"
)

// StdoutPath selects standard output as the prediction destination.
const StdoutPath = "-"

// LoadStore reads the ratings file at path and builds the store.
func LoadStore(ctx context.Context, path string, opts Options) (*recommend.Store, ReadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadStats{Input: InputRatings}, fmt.Errorf("open ratings: %w", err)
	}
	defer f.Close()

	store, stats, err := BuildStore(ctx, f, opts)
	if err != nil {
		return nil, stats, fmt.Errorf("load ratings %s: %w", path, err)
	}
	return store, stats, nil
}

// ReadQueriesFile reads the query file at path.
func ReadQueriesFile(ctx context.Context, path string, opts Options) ([]recommend.Query, ReadStats, error) {
	f, err := os.Open(path)
	if err != nil {
		return nil, ReadStats{Input: InputQueries}, fmt.Errorf("open queries: %w", err)
	}
	defer f.Close()

	queries, stats, err := ReadQueries(ctx, f, opts)
	if err != nil {
		return nil, stats, fmt.Errorf("load queries %s: %w", path, err)
	}
	return queries, stats, nil
}

// WritePredictionsFile writes preds to path. The file is written to a
// temporary sibling and renamed into place, so a failed run never leaves
// a truncated result. StdoutPath writes to standard output.
func WritePredictionsFile(path string, preds []recommend.Prediction, precision int) error {
	if path == StdoutPath {
		return NewPredictionWriter(os.Stdout, precision).WriteAll(preds)
	}

	tmp, err := os.CreateTemp(filepath.Dir(path), "."+filepath.Base(path)+".*")
	if err != nil {
		return fmt.Errorf("create output: %w", err)
	}
	tmpName := tmp.Name()

	if err := NewPredictionWriter(tmp, precision).WriteAll(preds); err != nil {
		tmp.Close()
		os.Remove(tmpName)
		return err
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("close output: %w", err)
	}
	if err := os.Rename(tmpName, path); err != nil {
		os.Remove(tmpName)
		return fmt.Errorf("rename output: %w", err)
	}
	return nil
}
