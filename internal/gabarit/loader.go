// Package gabarit loads pre-authored statement templates and derives the
// values interpolated into them from a math spec.
package gabarit

import (
	"encoding/json"
	"fmt"
	"io/fs"
	"log/slog"
	"math/rand/v2"
	"os"
	"path/filepath"
	"sort"
	"strings"
	"sync"

	"github.com/abhisek/gabarit/internal/style"
	"github.com/abhisek/gabarit/internal/textnorm"
)

// File is the on-disk format of one gabarit file.
type File struct {
	Chapter  string       `json:"chapitre"`
	Kind     string       `json:"type_exercice"`
	Gabarits []StyleBlock `json:"gabarits"`
}

// StyleBlock groups the templates written for one style.
type StyleBlock struct {
	Style     string   `json:"style"`
	Templates []string `json:"templates"`
}

// Entry is the loaded, indexed form of one (chapter, kind) pair.
type Entry struct {
	Chapter   string
	Kind      string
	Templates map[style.Style][]string
	Sources   []string
}

// Styles returns the styles that have templates, in style.All order.
func (e *Entry) Styles() []style.Style {
	var out []style.Style
	for _, s := range style.All() {
		if len(e.Templates[s]) > 0 {
			out = append(out, s)
		}
	}
	return out
}

// Config controls a Loader.
type Config struct {
	// Dir is scanned recursively for *.json gabarit files.
	Dir string

	// Rand drives template choice. Nil uses a randomly seeded source.
	Rand *rand.Rand

	Logger *slog.Logger
}

// Loader holds every gabarit loaded at startup. The index is read-only
// after Load returns.
type Loader struct {
	log     *slog.Logger
	entries map[string]*Entry

	mu  sync.Mutex
	rng *rand.Rand
}

func indexKey(chapter, kind string) string {
	return textnorm.Key(chapter) + "::" + textnorm.Key(kind)
}

// Load scans cfg.Dir. Unreadable or invalid files are logged and skipped;
// a missing directory yields an empty Loader.
func Load(cfg Config) *Loader {
	log := cfg.Logger
	if log == nil {
		log = slog.Default()
	}
	rng := cfg.Rand
	if rng == nil {
		rng = rand.New(rand.NewPCG(rand.Uint64(), rand.Uint64()))
	}
	l := &Loader{
		log:     log.With("component", "gabarit-loader"),
		entries: make(map[string]*Entry),
		rng:     rng,
	}
	if cfg.Dir == "" {
		return l
	}

	err := filepath.WalkDir(cfg.Dir, func(path string, d fs.DirEntry, err error) error {
		if err != nil {
			l.log.Warn("skip unreadable path", "path", path, "error", err)
			if d != nil && d.IsDir() && path != cfg.Dir {
				return fs.SkipDir
			}
			return nil
		}
		if d.IsDir() || !strings.EqualFold(filepath.Ext(path), ".json") {
			return nil
		}
		if err := l.loadFile(path); err != nil {
			l.log.Warn("skip gabarit file", "path", path, "error", err)
		}
		return nil
	})
	if err != nil {
		l.log.Warn("scan gabarit directory", "dir", cfg.Dir, "error", err)
	}

	l.log.Info("gabarits loaded", "dir", cfg.Dir, "entries", len(l.entries))
	return l
}

func (l *Loader) loadFile(path string) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("read: %w", err)
	}
	if err := validateFile(raw); err != nil {
		return err
	}

	var f File
	if err := json.Unmarshal(raw, &f); err != nil {
		return fmt.Errorf("decode: %w", err)
	}

	templates := make(map[style.Style][]string)
	for _, block := range f.Gabarits {
		s, ok := style.Parse(block.Style)
		if !ok {
			l.log.Warn("unknown style in gabarit", "path", path, "style", block.Style)
			continue
		}
		templates[s] = append(templates[s], block.Templates...)
	}
	if len(templates) == 0 {
		return fmt.Errorf("no template with a known style")
	}

	key := indexKey(f.Chapter, f.Kind)
	e, ok := l.entries[key]
	if !ok {
		e = &Entry{Chapter: f.Chapter, Kind: f.Kind, Templates: make(map[style.Style][]string)}
		l.entries[key] = e
	} else {
		l.log.Info("merging gabarit file into existing entry", "path", path, "chapter", f.Chapter, "kind", f.Kind)
	}
	for s, ts := range templates {
		e.Templates[s] = append(e.Templates[s], ts...)
	}
	e.Sources = append(e.Sources, path)
	return nil
}

// HasGabarit reports whether templates exist for (chapter, kind).
func (l *Loader) HasGabarit(chapter, kind string) bool {
	_, ok := l.entries[indexKey(chapter, kind)]
	return ok
}

// GetRandomGabarit returns one template for (chapter, kind, style), chosen
// uniformly. It reports false when the pair or the style is absent.
func (l *Loader) GetRandomGabarit(chapter, kind string, s style.Style) (string, bool) {
	e, ok := l.entries[indexKey(chapter, kind)]
	if !ok {
		return "", false
	}
	ts := e.Templates[s]
	if len(ts) == 0 {
		return "", false
	}

	l.mu.Lock()
	i := l.rng.IntN(len(ts))
	l.mu.Unlock()
	return ts[i], true
}

// Styles lists the styles available for (chapter, kind).
func (l *Loader) Styles(chapter, kind string) []style.Style {
	e, ok := l.entries[indexKey(chapter, kind)]
	if !ok {
		return nil
	}
	return e.Styles()
}

// Entries returns every loaded entry sorted by chapter then kind.
func (l *Loader) Entries() []*Entry {
	out := make([]*Entry, 0, len(l.entries))
	for _, e := range l.entries {
		out = append(out, e)
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Chapter != out[j].Chapter {
			return out[i].Chapter < out[j].Chapter
		}
		return out[i].Kind < out[j].Kind
	})
	return out
}
