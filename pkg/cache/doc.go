// Package cache provides a generic, thread-safe LRU (Least Recently Used)
// cache with hit/miss accounting.
//
// formguard stores memoized rule outcomes here: the cache bounds memory when a
// long-lived page validates many distinct values, and the counters feed the
// metrics observer.
//
// # Usage
//
//	c := cache.New[string, int](128)
//	c.Put("a", 1)
//
//	if v, ok := c.Get("a"); ok {
//		// use v
//	}
//
//	stats := c.Stats() // Hits, Misses, Evictions, Len
//	c.Clear()          // drops every entry, counters keep running
//
// Peek reads without touching recency or counters. An optional eviction
// callback runs for capacity evictions, explicit Remove calls and Clear.
//
// All methods are safe for concurrent use. Get, Put, Peek and Remove are O(1).
package cache
