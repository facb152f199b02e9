// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package config

import (
	"fmt"
	"net"
	"strconv"
	"time"

	"github.com/tomtom215/cfpredict/internal/recommend"
	"github.com/tomtom215/cfpredict/internal/recommend/algorithms"
)

// Run modes.
const (
	// ModeBatch reads a query CSV, predicts every row and writes a result CSV.
	ModeBatch = "batch"
	// ModeServe builds the store once and serves predictions over HTTP.
	ModeServe = "serve"
)

// Config holds all application configuration.
//
// Configuration Loading Order (Koanf v2):
//  1. Defaults: Built-in defaults (defaultConfig)
//  2. Config File: Optional YAML config file
//  3. Environment Variables: Override any mapped setting
//
// Config is immutable after Load() and safe for concurrent read access.
type Config struct {
	Mode    string        `koanf:"mode" validate:"oneof=batch serve"`
	Data    DataConfig    `koanf:"data"`
	Predict PredictConfig `koanf:"predict"`
	Cache   CacheConfig   `koanf:"cache"`
	Server  ServerConfig  `koanf:"server"`
	Logging LoggingConfig `koanf:"logging"`
}

// DataConfig holds input and output file settings.
type DataConfig struct {
	// TrainPath is the ratings CSV: userId,movieId,rating.
	TrainPath string `koanf:"train_path" validate:"required"`

	// QueryPath is the query CSV: userId,movieId. Batch mode only.
	QueryPath string `koanf:"query_path"`

	// OutputPath receives userId,movieId,prediction. "-" writes to stdout.
	OutputPath string `koanf:"output_path"`

	// Header skips the first row of each input file.
	Header bool `koanf:"header"`

	// Precision is the number of significant digits written per prediction.
	Precision int `koanf:"precision" validate:"min=1,max=17"`
}

// PredictConfig holds prediction algorithm settings.
type PredictConfig struct {
	// ShortCircuit returns the first neighbor rating instead of a
	// similarity-weighted mean.
	ShortCircuit bool `koanf:"short_circuit"`

	// UndefinedPolicy is the value reported when nothing contributes to an
	// estimate: nan, global_mean, zero or unrated_zero.
	UndefinedPolicy string `koanf:"undefined_policy" validate:"oneof=nan global_mean zero unrated_zero"`

	// Workers bounds concurrent batch predictions. 0 means NumCPU.
	Workers int `koanf:"workers" validate:"min=0"`
}

// CacheConfig holds prediction cache settings.
type CacheConfig struct {
	Enabled  bool          `koanf:"enabled"`
	Capacity int           `koanf:"capacity" validate:"min=0"`
	TTL      time.Duration `koanf:"ttl"`

	// PersistPath enables the BadgerDB prediction store when non-empty.
	PersistPath       string        `koanf:"persist_path"`
	PersistTTL        time.Duration `koanf:"persist_ttl"`
	PersistGCInterval time.Duration `koanf:"persist_gc_interval"`

	// PersistPurge drops every persisted prediction when the store opens.
	PersistPurge bool `koanf:"persist_purge"`
}

// ServerConfig holds HTTP server settings for serve mode.
type ServerConfig struct {
	Host              string        `koanf:"host"`
	Port              int           `koanf:"port" validate:"min=1,max=65535"`
	Timeout           time.Duration `koanf:"timeout"`
	ShutdownTimeout   time.Duration `koanf:"shutdown_timeout"`
	CORSOrigins       []string      `koanf:"cors_origins"`
	RateLimitReqs     int           `koanf:"rate_limit_reqs" validate:"min=0"`
	RateLimitWindow   time.Duration `koanf:"rate_limit_window"`
	RateLimitDisabled bool          `koanf:"rate_limit_disabled"`
}

// Addr returns the host:port listen address.
func (s *ServerConfig) Addr() string {
	return net.JoinHostPort(s.Host, strconv.Itoa(s.Port))
}

// LoggingConfig holds logging settings.
type LoggingConfig struct {
	Level  string `koanf:"level" validate:"loglevel"`
	Format string `koanf:"format" validate:"oneof=json console"`
	Caller bool   `koanf:"caller"`
}

// EngineConfig converts the cache and worker settings into a recommend.Config.
func (c *Config) EngineConfig() *recommend.Config {
	return &recommend.Config{
		Workers: c.Predict.Workers,
		Cache: recommend.CacheConfig{
			Enabled:  c.Cache.Enabled,
			Capacity: c.Cache.Capacity,
			TTL:      c.Cache.TTL,
		},
	}
}

// Policy returns the configured undefined-prediction policy.
func (c *Config) Policy() recommend.UndefinedPolicy {
	return recommend.UndefinedPolicy(c.Predict.UndefinedPolicy)
}

// KNNConfig converts the prediction settings into the neighbor algorithm config.
func (c *Config) KNNConfig() algorithms.KNNConfig {
	return algorithms.KNNConfig{
		ShortCircuit: c.Predict.ShortCircuit,
		Undefined:    c.Policy(),
	}
}

// ModelSignature describes the settings that change prediction values.
// Persisted predictions are only reused under an identical signature.
func (c *Config) ModelSignature() string {
	return fmt.Sprintf("short_circuit=%t;undefined_policy=%s", c.Predict.ShortCircuit, c.Predict.UndefinedPolicy)
}

// String returns a one-line summary safe for logging.
func (c *Config) String() string {
	return fmt.Sprintf("mode=%s train=%s short_circuit=%t policy=%s cache=%t persist=%t",
		c.Mode, c.Data.TrainPath, c.Predict.ShortCircuit, c.Predict.UndefinedPolicy, c.Cache.Enabled, c.Cache.PersistPath != "")
}
