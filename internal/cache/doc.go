// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

/*
Package cache provides a generic, thread-safe LRU cache with TTL support.

The prediction engine uses it to memoise blended predictions by query.
Because the ratings store is immutable once built, cached predictions never
go stale with respect to the data; the TTL only bounds memory held for
queries that are no longer asked.

# Usage Example

	c := cache.NewLRU[recommend.Query, recommend.Prediction](10000, 10*time.Minute)
	c.Add(q, p)
	if p, ok := c.Get(q); ok {
	    // serve from cache
	}

# Thread Safety

All methods are safe for concurrent use. Get mutates recency order, so
reads take the same exclusive lock as writes.
*/
package cache
