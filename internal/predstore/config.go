// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package predstore

import (
	"errors"
	"fmt"
	"time"
)

// Config holds prediction store configuration.
type Config struct {
	// Path is the BadgerDB directory. Empty with InMemory set keeps
	// everything in memory.
	Path string

	// InMemory opens BadgerDB without touching disk.
	InMemory bool

	// TTL is how long a persisted prediction stays valid.
	TTL time.Duration

	// SyncWrites forces fsync after every write. Predictions can always be
	// recomputed, so the default is false.
	SyncWrites bool

	// Compression enables Snappy compression of SST blocks.
	Compression bool

	// GCRatio is the discard ratio for value log GC (0 < ratio < 1).
	GCRatio float64

	// CloseTimeout bounds how long Close waits for BadgerDB.
	CloseTimeout time.Duration
}

// DefaultConfig returns defaults for an on-disk store at path.
func DefaultConfig(path string) *Config {
	return &Config{
		Path:         path,
		TTL:          24 * time.Hour,
		SyncWrites:   false,
		Compression:  true,
		GCRatio:      0.5,
		CloseTimeout: 30 * time.Second,
	}
}

// Validate checks the configuration for invalid values.
func (c *Config) Validate() error {
	if c.Path == "" && !c.InMemory {
		return errors.New("prediction store path is required")
	}
	if c.TTL <= 0 {
		return fmt.Errorf("prediction store ttl must be positive, got %v", c.TTL)
	}
	if c.GCRatio <= 0 || c.GCRatio >= 1 {
		return fmt.Errorf("prediction store gc ratio must be in (0, 1), got %v", c.GCRatio)
	}
	return nil
}
