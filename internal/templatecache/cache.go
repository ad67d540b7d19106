// Package templatecache is the in-memory key → template store that sits in
// front of the generative fallback. Every mutation is snapshotted to disk
// so resolved templates survive restarts.
package templatecache

import (
	"log/slog"
	"regexp"
	"sort"
	"sync"
	"time"
)

// defaultCostPerMTok is the output price used when the fallback model has
// no pricing entry (gpt-4o-mini output, USD per 1M tokens).
const defaultCostPerMTok = 0.6

// Config controls a Cache.
type Config struct {
	// SnapshotPath is the JSON snapshot file. Empty disables persistence.
	SnapshotPath string

	// CostPerMTok is the USD price of one million generated tokens, used
	// to estimate what cache hits saved.
	CostPerMTok float64

	Logger *slog.Logger
}

// DefaultConfig returns a Config with no persistence.
func DefaultConfig() Config {
	return Config{CostPerMTok: defaultCostPerMTok}
}

// Metrics is a point-in-time view of the cache counters.
type Metrics struct {
	Hits                 int64   `json:"hits"`
	Misses               int64   `json:"misses"`
	TotalRequests        int64   `json:"total_requests"`
	HitRatePercent       float64 `json:"hit_rate_percent"`
	EstimatedTokensSaved int64   `json:"estimated_tokens_saved"`
	EstimatedCostSaved   float64 `json:"estimated_cost_saved"`
	CacheSize            int     `json:"cache_size"`
}

// Cache is safe for concurrent use. Counters, the entry map and the
// snapshot write share one critical section.
type Cache struct {
	cfg Config
	log *slog.Logger
	now func() time.Time

	mu          sync.RWMutex
	entries     map[string]string
	hits        int64
	misses      int64
	tokensSaved float64
}

// New creates a Cache and loads its snapshot. A missing or corrupt
// snapshot yields an empty cache.
func New(cfg Config) *Cache {
	if cfg.CostPerMTok <= 0 {
		cfg.CostPerMTok = defaultCostPerMTok
	}
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	c := &Cache{
		cfg:     cfg,
		log:     log.With("component", "template-cache"),
		now:     time.Now,
		entries: make(map[string]string),
	}
	c.load()
	return c
}

// Get returns the template stored under key. A hit adds len(text)/4 to the
// estimated tokens saved. The updated counters are persisted.
func (c *Cache) Get(key string) (string, bool) {
	c.mu.Lock()
	defer c.mu.Unlock()

	text, ok := c.entries[key]
	if ok {
		c.hits++
		c.tokensSaved += float64(len(text) / 4)
	} else {
		c.misses++
	}
	c.persistLocked()
	return text, ok
}

// Set stores text under key, overwriting any previous entry, and persists.
func (c *Cache) Set(key, text string) {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries[key] = text
	c.persistLocked()
}

// Has reports whether key is cached. It does not touch the counters.
func (c *Cache) Has(key string) bool {
	c.mu.RLock()
	defer c.mu.RUnlock()
	_, ok := c.entries[key]
	return ok
}

// Keys returns the cached keys in sorted order.
func (c *Cache) Keys() []string {
	c.mu.RLock()
	defer c.mu.RUnlock()

	keys := make([]string, 0, len(c.entries))
	for k := range c.entries {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	return keys
}

// InvalidatePattern removes every key matching pattern at position 0 and
// returns how many were removed. The snapshot is written once, and only
// when something was removed.
func (c *Cache) InvalidatePattern(pattern string) (int, error) {
	re, err := regexp.Compile(`^(?:` + pattern + `)`)
	if err != nil {
		return 0, err
	}

	c.mu.Lock()
	defer c.mu.Unlock()

	removed := 0
	for k := range c.entries {
		if re.MatchString(k) {
			delete(c.entries, k)
			removed++
		}
	}
	if removed > 0 {
		c.persistLocked()
		c.log.Info("cache entries invalidated", "pattern", pattern, "removed", removed)
	}
	return removed, nil
}

// Clear drops every entry and resets the counters.
func (c *Cache) Clear() {
	c.mu.Lock()
	defer c.mu.Unlock()

	c.entries = make(map[string]string)
	c.hits, c.misses, c.tokensSaved = 0, 0, 0
	c.persistLocked()
}

// Metrics returns the current counters.
func (c *Cache) Metrics() Metrics {
	c.mu.RLock()
	defer c.mu.RUnlock()

	total := c.hits + c.misses
	rate := 0.0
	if total > 0 {
		rate = float64(c.hits) / float64(total) * 100
	}
	return Metrics{
		Hits:                 c.hits,
		Misses:               c.misses,
		TotalRequests:        total,
		HitRatePercent:       rate,
		EstimatedTokensSaved: int64(c.tokensSaved),
		EstimatedCostSaved:   c.tokensSaved * c.cfg.CostPerMTok / 1_000_000,
		CacheSize:            len(c.entries),
	}
}
