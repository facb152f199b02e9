// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package cache

import (
	"container/list"
	"sync"
	"time"
)

const (
	defaultCapacity = 10000
	defaultTTL      = 5 * time.Minute
)

type entry[K comparable, V any] struct {
	key       K
	value     V
	expiresAt time.Time
}

// LRU is a mutex-guarded least recently used cache whose entries also
// expire after a fixed TTL. Expired entries are dropped lazily on Get or in
// bulk by CleanupExpired; the serve-mode janitor calls the latter.
//
// The front of order is the most recently used entry.
type LRU[K comparable, V any] struct {
	mu       sync.Mutex
	capacity int
	ttl      time.Duration
	order    *list.List
	index    map[K]*list.Element
	hits     int64
	misses   int64

	now func() time.Time
}

// NewLRU creates a cache. Non-positive arguments select 10000 entries and
// a five minute TTL.
func NewLRU[K comparable, V any](capacity int, ttl time.Duration) *LRU[K, V] {
	if capacity <= 0 {
		capacity = defaultCapacity
	}
	if ttl <= 0 {
		ttl = defaultTTL
	}
	return &LRU[K, V]{
		capacity: capacity,
		ttl:      ttl,
		order:    list.New(),
		index:    make(map[K]*list.Element, capacity),
		now:      time.Now,
	}
}

// Get returns the live value for key and marks it most recently used.
func (c *LRU[K, V]) Get(key K) (V, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[key]
	if ok && c.expired(el, c.now()) {
		c.drop(el)
		ok = false
	}
	if !ok {
		c.misses++
		var zero V
		return zero, false
	}
	c.hits++
	c.order.MoveToFront(el)
	return el.Value.(*entry[K, V]).value, true
}

// Add inserts or refreshes key, restarting its TTL. The least recently
// used entries are evicted while the cache is over capacity.
func (c *LRU[K, V]) Add(key K, value V) {
	c.mu.Lock()
	defer c.mu.Unlock()

	deadline := c.now().Add(c.ttl)
	if el, ok := c.index[key]; ok {
		e := el.Value.(*entry[K, V])
		e.value, e.expiresAt = value, deadline
		c.order.MoveToFront(el)
		return
	}

	c.index[key] = c.order.PushFront(&entry[K, V]{key: key, value: value, expiresAt: deadline})
	for c.order.Len() > c.capacity {
		c.drop(c.order.Back())
	}
}

// Remove deletes key and reports whether it was cached.
func (c *LRU[K, V]) Remove(key K) bool {
	c.mu.Lock()
	defer c.mu.Unlock()

	el, ok := c.index[key]
	if ok {
		c.drop(el)
	}
	return ok
}

// Len counts cached entries, including expired ones not yet dropped.
func (c *LRU[K, V]) Len() int {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.order.Len()
}

// Clear empties the cache. Hit and miss counters are kept.
func (c *LRU[K, V]) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()
	c.order.Init()
	c.index = make(map[K]*list.Element, c.capacity)
}

// CleanupExpired drops every expired entry and returns how many it dropped.
func (c *LRU[K, V]) CleanupExpired() int {
	c.mu.Lock()
	defer c.mu.Unlock()

	now := c.now()
	n := 0
	for el := c.order.Back(); el != nil; {
		prev := el.Prev()
		if c.expired(el, now) {
			c.drop(el)
			n++
		}
		el = prev
	}
	return n
}

// Stats reports lifetime hits and misses and the current size.
func (c *LRU[K, V]) Stats() (hits, misses int64, size int) {
	c.mu.Lock()
	defer c.mu.Unlock()
	return c.hits, c.misses, c.order.Len()
}

// expired and drop require c.mu.

func (c *LRU[K, V]) expired(el *list.Element, now time.Time) bool {
	return now.After(el.Value.(*entry[K, V]).expiresAt)
}

func (c *LRU[K, V]) drop(el *list.Element) {
	c.order.Remove(el)
	delete(c.index, el.Value.(*entry[K, V]).key)
}
