// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package config

import (
	"fmt"

	"github.com/tomtom215/cfpredict/internal/validation"
)

// Validate checks struct tag constraints, then the rules that span fields.
func (c *Config) Validate() error {
	if verr := validation.ValidateStruct(c); verr != nil {
		return verr
	}

	validators := []func() error{
		c.validateBatch,
		c.validateCache,
		c.validateServer,
		c.validateRateLimits,
	}
	for _, validate := range validators {
		if err := validate(); err != nil {
			return err
		}
	}
	return nil
}

// validateBatch requires query and output paths in batch mode.
func (c *Config) validateBatch() error {
	if c.Mode != ModeBatch {
		return nil
	}
	if c.Data.QueryPath == "" {
		return fmt.Errorf("QUERY_PATH is required in batch mode")
	}
	if c.Data.OutputPath == "" {
		return fmt.Errorf("OUTPUT_PATH is required in batch mode")
	}
	if c.Data.OutputPath == c.Data.TrainPath || c.Data.OutputPath == c.Data.QueryPath {
		return fmt.Errorf("OUTPUT_PATH must differ from the input files, got %s", c.Data.OutputPath)
	}
	return nil
}

// validateCache checks cache bounds when the cache or the persistent
// prediction store is enabled.
func (c *Config) validateCache() error {
	if c.Cache.Enabled {
		if c.Cache.Capacity <= 0 {
			return fmt.Errorf("CACHE_CAPACITY must be positive when the cache is enabled, got %d", c.Cache.Capacity)
		}
		if c.Cache.TTL <= 0 {
			return fmt.Errorf("CACHE_TTL must be positive when the cache is enabled, got %v", c.Cache.TTL)
		}
	}
	if c.Cache.PersistPath != "" {
		if c.Cache.PersistTTL <= 0 {
			return fmt.Errorf("CACHE_PERSIST_TTL must be positive when CACHE_PERSIST_PATH is set, got %v", c.Cache.PersistTTL)
		}
		if c.Cache.PersistGCInterval <= 0 {
			return fmt.Errorf("CACHE_PERSIST_GC_INTERVAL must be positive when CACHE_PERSIST_PATH is set, got %v", c.Cache.PersistGCInterval)
		}
	}
	return nil
}

// validateServer checks HTTP timeouts in serve mode.
func (c *Config) validateServer() error {
	if c.Mode != ModeServe {
		return nil
	}
	if c.Server.Timeout <= 0 {
		return fmt.Errorf("HTTP_TIMEOUT must be positive, got %v", c.Server.Timeout)
	}
	if c.Server.ShutdownTimeout <= 0 {
		return fmt.Errorf("SHUTDOWN_TIMEOUT must be positive, got %v", c.Server.ShutdownTimeout)
	}
	return nil
}

// validateRateLimits checks rate limiting when it is enabled.
func (c *Config) validateRateLimits() error {
	if c.Mode != ModeServe || c.Server.RateLimitDisabled {
		return nil
	}
	if c.Server.RateLimitReqs <= 0 {
		return fmt.Errorf("RATE_LIMIT_REQUESTS must be positive, got %d", c.Server.RateLimitReqs)
	}
	if c.Server.RateLimitWindow <= 0 {
		return fmt.Errorf("RATE_LIMIT_WINDOW must be positive, got %v", c.Server.RateLimitWindow)
	}
	return nil
}

// HasWildcardCORS reports whether any CORS origin is "*".
func (c *Config) HasWildcardCORS() bool {
	for _, origin := range c.Server.CORSOrigins {
		if origin == "*" {
			return true
		}
	}
	return false
}
