// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package dataset

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/tomtom215/cfpredict/internal/recommend"
)

// DefaultPrecision is the number of significant digits written per prediction.
const DefaultPrecision = 6

// OutputHeader is the fixed first row of every prediction file.
var OutputHeader = []string{"userId", "movieId", "prediction"}

// PredictionWriter writes userId,movieId,prediction rows.
// It is not safe for concurrent use.
type PredictionWriter struct {
	w         *csv.Writer
	precision int
	header    bool
	rows      int
}

// NewPredictionWriter creates a writer emitting values with precision
// significant digits. Non-positive precision uses DefaultPrecision.
func NewPredictionWriter(w io.Writer, precision int) *PredictionWriter {
	if precision <= 0 {
		precision = DefaultPrecision
	}
	return &PredictionWriter{
		w:         csv.NewWriter(w),
		precision: precision,
	}
}

// Write writes one prediction row, emitting the header first if needed.
func (pw *PredictionWriter) Write(p recommend.Prediction) error {
	if !pw.header {
		if err := pw.w.Write(OutputHeader); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		pw.header = true
	}

	row := []string{
		strconv.Itoa(p.UserID),
		strconv.Itoa(p.MovieID),
		FormatValue(p.Value, pw.precision),
	}
	if err := pw.w.Write(row); err != nil {
		return fmt.Errorf("write prediction row %d: %w", pw.rows+1, err)
	}
	pw.rows++
	return nil
}

// WriteAll writes every prediction and flushes. An empty slice still
// produces the header row.
//
//nolint:gocritic // rangeValCopy: Prediction is passed by value to Write
func (pw *PredictionWriter) WriteAll(preds []recommend.Prediction) error {
	if len(preds) == 0 && !pw.header {
		if err := pw.w.Write(OutputHeader); err != nil {
			return fmt.Errorf("write header: %w", err)
		}
		pw.header = true
	}
	for _, p := range preds {
		if err := pw.Write(p); err != nil {
			return err
		}
	}
	return pw.Flush()
}

// Flush writes buffered rows to the underlying writer.
func (pw *PredictionWriter) Flush() error {
	pw.w.Flush()
	if err := pw.w.Error(); err != nil {
		return fmt.Errorf("flush predictions: %w", err)
	}
	return nil
}

// FormatValue formats v with precision significant digits in the shortest
// of plain or exponent notation. NaN is written as "NaN".
func FormatValue(v float64, precision int) string {
	return strconv.FormatFloat(v, 'g', precision, 64)
}
