package templatecache

import (
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"time"
)

// snapshot is the on-disk format. TotalCostSaved carries the cumulative
// estimated tokens saved.
type snapshot struct {
	Cache          map[string]string `json:"cache"`
	Hits           int64             `json:"hits"`
	Misses         int64             `json:"misses"`
	TotalCostSaved float64           `json:"total_cost_saved"`
	LastUpdated    time.Time         `json:"last_updated"`
}

func (c *Cache) load() {
	if c.cfg.SnapshotPath == "" {
		return
	}

	data, err := os.ReadFile(c.cfg.SnapshotPath)
	if err != nil {
		if !errors.Is(err, fs.ErrNotExist) {
			c.log.Warn("cache snapshot unreadable, starting empty", "path", c.cfg.SnapshotPath, "error", err)
		}
		return
	}

	var snap snapshot
	if err := json.Unmarshal(data, &snap); err != nil {
		c.log.Warn("cache snapshot corrupt, starting empty", "path", c.cfg.SnapshotPath, "error", err)
		return
	}

	if snap.Cache != nil {
		c.entries = snap.Cache
	}
	c.hits = snap.Hits
	c.misses = snap.Misses
	c.tokensSaved = snap.TotalCostSaved
	c.log.Info("cache snapshot loaded", "entries", len(c.entries), "path", c.cfg.SnapshotPath)
}

// persistLocked writes the snapshot. Failures are logged and swallowed:
// the in-memory cache stays authoritative. Caller holds c.mu.
func (c *Cache) persistLocked() {
	if c.cfg.SnapshotPath == "" {
		return
	}

	data, err := json.MarshalIndent(snapshot{
		Cache:          c.entries,
		Hits:           c.hits,
		Misses:         c.misses,
		TotalCostSaved: c.tokensSaved,
		LastUpdated:    c.now().UTC(),
	}, "", "  ")
	if err != nil {
		c.log.Warn("marshal cache snapshot", "error", err)
		return
	}

	if err := atomicWrite(c.cfg.SnapshotPath, data); err != nil {
		c.log.Warn("write cache snapshot", "path", c.cfg.SnapshotPath, "error", err)
	}
}

// atomicWrite writes data to a temp file next to path and renames it over
// path, so readers never observe a half-written snapshot.
func atomicWrite(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create snapshot dir: %w", err)
	}

	tmp, err := os.CreateTemp(dir, filepath.Base(path)+".*.tmp")
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	tmpPath := tmp.Name()

	if _, err := tmp.Write(data); err != nil {
		tmp.Close()
		os.Remove(tmpPath)
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Rename(tmpPath, path); err != nil {
		os.Remove(tmpPath)
		return fmt.Errorf("rename snapshot: %w", err)
	}
	return nil
}
