// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package dataset

import (
	"errors"
	"testing"

	"github.com/tomtom215/cfpredict/internal/recommend"
)

func TestParseRating(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		fields  []string
		want    recommend.Rating
		wantErr bool
	}{
		{name: "basic", fields: []string{"1", "10", "4"}, want: recommend.Rating{UserID: 1, MovieID: 10, Value: 4}},
		{name: "fractional", fields: []string{"7", "3", "3.5"}, want: recommend.Rating{UserID: 7, MovieID: 3, Value: 3.5}},
		{name: "whitespace", fields: []string{" 2 ", "\t20", " 1.0 "}, want: recommend.Rating{UserID: 2, MovieID: 20, Value: 1}},
		{name: "negative ids", fields: []string{"-4", "-10", "2"}, want: recommend.Rating{UserID: -4, MovieID: -10, Value: 2}},
		{name: "extra columns ignored", fields: []string{"1", "2", "3", "964982703"}, want: recommend.Rating{UserID: 1, MovieID: 2, Value: 3}},
		{name: "too few fields", fields: []string{"1", "2"}, wantErr: true},
		{name: "non-integer user", fields: []string{"abc", "2", "3"}, wantErr: true},
		{name: "float movie", fields: []string{"1", "2.5", "3"}, wantErr: true},
		{name: "empty rating", fields: []string{"1", "2", ""}, wantErr: true},
		{name: "bad rating", fields: []string{"1", "2", "four"}, wantErr: true},
		{name: "nan rating", fields: []string{"1", "2", "NaN"}, wantErr: true},
		{name: "inf rating", fields: []string{"1", "2", "+Inf"}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseRating(tt.fields)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedRecord) {
					t.Fatalf("ParseRating(%q) error = %v, want ErrMalformedRecord", tt.fields, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseRating(%q) unexpected error: %v", tt.fields, err)
			}
			if got != tt.want {
				t.Errorf("ParseRating(%q) = %+v, want %+v", tt.fields, got, tt.want)
			}
		})
	}
}

func TestParseQuery(t *testing.T) {
	t.Parallel()

	tests := []struct {
		name    string
		fields  []string
		want    recommend.Query
		wantErr bool
	}{
		{name: "basic", fields: []string{"1", "10"}, want: recommend.Query{UserID: 1, MovieID: 10}},
		{name: "extra columns ignored", fields: []string{"3", "4", "ignored"}, want: recommend.Query{UserID: 3, MovieID: 4}},
		{name: "negative ids", fields: []string{"-1", "-30"}, want: recommend.Query{UserID: -1, MovieID: -30}},
		{name: "header row", fields: []string{"userId", "movieId"}, wantErr: true},
		{name: "single field", fields: []string{"1"}, wantErr: true},
		{name: "empty movie", fields: []string{"1", " "}, wantErr: true},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			t.Parallel()

			got, err := ParseQuery(tt.fields)
			if tt.wantErr {
				if !errors.Is(err, ErrMalformedRecord) {
					t.Fatalf("ParseQuery(%q) error = %v, want ErrMalformedRecord", tt.fields, err)
				}
				return
			}
			if err != nil {
				t.Fatalf("ParseQuery(%q) unexpected error: %v", tt.fields, err)
			}
			if got != tt.want {
				t.Errorf("ParseQuery(%q) = %+v, want %+v", tt.fields, got, tt.want)
			}
		})
	}
}
