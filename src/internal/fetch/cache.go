// Copyright (c) 2026 H0llyW00dzZ All rights reserved.
//
// By accessing or using this software, you agree to be bound by the terms
// of the License Agreement, which you can find at LICENSE files.

package fetch

import (
	"crypto/sha256"
	"encoding/hex"
	"fmt"
	"os"
	"path/filepath"
	"sort"
	"sync"
	"time"

	"github.com/cloudflare/cfssl/log"
	"github.com/jmhodges/clock"
)

// defaultMaxEntries caps how many downloads the cache keeps on disk.
const defaultMaxEntries = 512

// Cache is a best-effort on-disk download cache keyed by location. Each
// entry lives in one file named by the location hash, whose modification
// time doubles as the revalidation timestamp. Every operation degrades to
// a miss on filesystem trouble; correctness never depends on the cache.
type Cache struct {
	MaxEntries int // entry cap enforced by pruning, defaultMaxEntries when zero

	dir    string
	maxAge time.Duration
	clk    clock.Clock

	mu            sync.Mutex
	hits          int64
	misses        int64
	revalidations int64
}

// CacheMetrics tracks cache performance and usage.
type CacheMetrics struct {
	Entries       int   // Current number of cached downloads
	Hits          int64 // Number of cache hits
	Misses        int64 // Number of cache misses
	Revalidations int64 // Number of 304-confirmed reuses
}

// NewCache creates a download cache rooted at dir.
//
// Entries older than maxAge require revalidation before reuse; zero means
// every hit revalidates. The clock drives freshness decisions so tests
// can run on a fake one; nil selects the wall clock.
//
// Parameters:
//   - dir: Directory holding the cached downloads
//   - maxAge: Freshness window, 0 to always revalidate
//   - clk: Clock for freshness decisions, nil for wall time
//
// Returns:
//   - *Cache: New download cache
func NewCache(dir string, maxAge time.Duration, clk clock.Clock) *Cache {
	if clk == nil {
		clk = clock.New()
	}
	return &Cache{
		dir:    dir,
		maxAge: maxAge,
		clk:    clk,
	}
}

func (c *Cache) cap() int {
	if c.MaxEntries > 0 {
		return c.MaxEntries
	}
	return defaultMaxEntries
}

// Get returns the cached bytes and stored modification time for location.
func (c *Cache) Get(location string) ([]byte, time.Time, bool) {
	path := c.path(location)

	info, err := os.Stat(path)
	if err != nil {
		c.bump(&c.misses)
		return nil, time.Time{}, false
	}

	data, err := os.ReadFile(path)
	if err != nil {
		c.bump(&c.misses)
		return nil, time.Time{}, false
	}

	c.bump(&c.hits)
	return data, info.ModTime(), true
}

// Fresh reports whether a cached copy with the given modification time
// can be reused without revalidation.
func (c *Cache) Fresh(modTime time.Time) bool {
	return c.maxAge > 0 && c.clk.Now().Sub(modTime) <= c.maxAge
}

// Put stores data for location. Failures only cost the cache entry.
func (c *Cache) Put(location string, data []byte) {
	if err := os.WriteFile(c.path(location), data, 0o644); err != nil {
		log.Debugf("download cache: store %s: %v", location, err)
		return
	}
	c.prune()
}

// Touch refreshes the stored modification time after a 304 confirmed the
// cached copy is still current.
func (c *Cache) Touch(location string) {
	now := c.clk.Now()
	if err := os.Chtimes(c.path(location), now, now); err != nil {
		log.Debugf("download cache: touch %s: %v", location, err)
		return
	}
	c.bump(&c.revalidations)
}

// Metrics returns current cache metrics.
func (c *Cache) Metrics() CacheMetrics {
	c.mu.Lock()
	defer c.mu.Unlock()

	metrics := CacheMetrics{
		Hits:          c.hits,
		Misses:        c.misses,
		Revalidations: c.revalidations,
	}
	if entries, err := os.ReadDir(c.dir); err == nil {
		metrics.Entries = len(entries)
	}
	return metrics
}

// Stats returns a formatted string with cache statistics.
func (c *Cache) Stats() string {
	metrics := c.Metrics()

	hitRate := float64(0)
	totalRequests := metrics.Hits + metrics.Misses
	if totalRequests > 0 {
		hitRate = float64(metrics.Hits) / float64(totalRequests) * 100
	}

	return fmt.Sprintf("Download Cache Statistics:\n"+
		"  Directory: %s\n"+
		"  Entries: %d/%d\n"+
		"  Hit Rate: %.1f%% (%d hits, %d misses)\n"+
		"  Revalidations: %d\n"+
		"  Max Age: %v",
		c.dir,
		metrics.Entries, c.cap(),
		hitRate, metrics.Hits, metrics.Misses,
		metrics.Revalidations,
		c.maxAge)
}

// path maps a location to its cache file.
func (c *Cache) path(location string) string {
	sum := sha256.Sum256([]byte(location))
	return filepath.Join(c.dir, hex.EncodeToString(sum[:]))
}

func (c *Cache) bump(counter *int64) {
	c.mu.Lock()
	*counter++
	c.mu.Unlock()
}

// prune drops the oldest entries once the cache exceeds its entry cap.
func (c *Cache) prune() {
	entries, err := os.ReadDir(c.dir)
	if err != nil || len(entries) <= c.cap() {
		return
	}

	type aged struct {
		name string
		mod  time.Time
	}
	files := make([]aged, 0, len(entries))
	for _, entry := range entries {
		if entry.IsDir() {
			continue
		}
		info, err := entry.Info()
		if err != nil {
			continue
		}
		files = append(files, aged{name: entry.Name(), mod: info.ModTime()})
	}

	sort.Slice(files, func(i, j int) bool { return files[i].mod.Before(files[j].mod) })

	for i := 0; i < len(files)-c.cap(); i++ {
		if err := os.Remove(filepath.Join(c.dir, files[i].name)); err != nil {
			log.Debugf("download cache: prune %s: %v", files[i].name, err)
		}
	}
}
