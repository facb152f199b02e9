// CFPredict - Collaborative Filtering Rating Prediction
// Copyright 2026 Tom F. (tomtom215)
// SPDX-License-Identifier: AGPL-3.0-or-later
// https://github.com/tomtom215/cfpredict

package cache

import (
	"sync"
	"testing"
	"time"
)

func TestLRU_BasicOperations(t *testing.T) {
	c := NewLRU[string, float64](3, time.Minute)

	c.Add("a", 1.0)
	c.Add("b", 2.0)
	c.Add("c", 3.0)

	for key, want := range map[string]float64{"a": 1.0, "b": 2.0, "c": 3.0} {
		got, found := c.Get(key)
		if !found {
			t.Errorf("Expected to find key %q", key)
			continue
		}
		if got != want {
			t.Errorf("Get(%q) = %v, want %v", key, got, want)
		}
	}

	if c.Len() != 3 {
		t.Errorf("Expected len 3, got %d", c.Len())
	}
}

func TestLRU_Eviction(t *testing.T) {
	c := NewLRU[string, int](3, time.Minute)

	c.Add("a", 1)
	c.Add("b", 2)
	c.Add("c", 3)

	// Access 'a' to make it most recently used
	c.Get("a")

	// Add new item, should evict 'b' (least recently used)
	c.Add("d", 4)

	if _, found := c.Get("b"); found {
		t.Error("Expected 'b' to be evicted")
	}
	for _, key := range []string{"a", "c", "d"} {
		if _, found := c.Get(key); !found {
			t.Errorf("Expected %q to be present", key)
		}
	}
}

func TestLRU_UpdateExisting(t *testing.T) {
	c := NewLRU[int, string](2, time.Minute)

	c.Add(1, "first")
	c.Add(1, "second")

	if c.Len() != 1 {
		t.Fatalf("Expected len 1 after update, got %d", c.Len())
	}
	if got, _ := c.Get(1); got != "second" {
		t.Errorf("Get(1) = %q, want %q", got, "second")
	}
}

func TestLRU_TTLExpiration(t *testing.T) {
	c := NewLRU[string, int](10, time.Minute)

	now := time.Date(2026, 1, 1, 0, 0, 0, 0, time.UTC)
	c.now = func() time.Time { return now }

	c.Add("a", 1)
	c.Add("b", 2)

	now = now.Add(30 * time.Second)
	if _, found := c.Get("a"); !found {
		t.Error("Expected 'a' before TTL")
	}

	now = now.Add(2 * time.Minute)
	if _, found := c.Get("a"); found {
		t.Error("Expected 'a' to expire")
	}

	if removed := c.CleanupExpired(); removed != 1 {
		t.Errorf("CleanupExpired() = %d, want 1", removed)
	}
	if c.Len() != 0 {
		t.Errorf("Expected empty cache, got len %d", c.Len())
	}
}

func TestLRU_RemoveAndClear(t *testing.T) {
	c := NewLRU[string, int](5, time.Minute)
	c.Add("a", 1)
	c.Add("b", 2)

	if !c.Remove("a") {
		t.Error("Remove(a) = false, want true")
	}
	if c.Remove("a") {
		t.Error("second Remove(a) = true, want false")
	}

	c.Clear()
	if c.Len() != 0 {
		t.Errorf("Len() after Clear = %d, want 0", c.Len())
	}
	c.Add("c", 3)
	if _, found := c.Get("c"); !found {
		t.Error("cache unusable after Clear")
	}
}

func TestLRU_Stats(t *testing.T) {
	c := NewLRU[string, int](5, time.Minute)
	c.Add("a", 1)

	c.Get("a")
	c.Get("a")
	c.Get("missing")

	hits, misses, size := c.Stats()
	if hits != 2 || misses != 1 || size != 1 {
		t.Errorf("Stats() = (%d, %d, %d), want (2, 1, 1)", hits, misses, size)
	}
}

func TestLRU_Defaults(t *testing.T) {
	c := NewLRU[string, int](0, 0)
	if c.capacity != 10000 {
		t.Errorf("capacity = %d, want 10000", c.capacity)
	}
	if c.ttl != 5*time.Minute {
		t.Errorf("ttl = %v, want 5m", c.ttl)
	}
}

func TestLRU_Concurrent(t *testing.T) {
	c := NewLRU[int, int](100, time.Minute)

	var wg sync.WaitGroup
	for g := 0; g < 8; g++ {
		wg.Add(1)
		go func(base int) {
			defer wg.Done()
			for i := 0; i < 500; i++ {
				c.Add(base*1000+i, i)
				c.Get(base*1000 + i/2)
			}
		}(g)
	}
	wg.Wait()

	if c.Len() > 100 {
		t.Errorf("Len() = %d, exceeds capacity 100", c.Len())
	}
}
