package app

import (
	"fmt"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/abhisek/gabarit/internal/llm"
	"github.com/abhisek/gabarit/internal/statement"
	"github.com/abhisek/gabarit/internal/store"
)

// Config gathers every component's configuration.
type Config struct {
	// GabaritDir holds the *.json gabarit files.
	GabaritDir string

	// CacheFile is the template cache snapshot.
	CacheFile string

	// DBPath is the SQLite history. Empty disables history.
	DBPath string

	LogLevel slog.Level

	LLM       llm.Config
	Fallback  statement.LLMConfig
	Statement statement.Config
}

func DefaultConfig() Config {
	return Config{
		GabaritDir: "gabarits",
		LogLevel:   slog.LevelInfo,
		LLM:        llm.DefaultConfig(),
		Fallback:   statement.DefaultLLMConfig(),
		Statement:  statement.DefaultConfig(),
	}
}

// ConfigFromEnv reads GABARIT_DIR, GABARIT_CACHE_FILE, GABARIT_DB,
// GABARIT_LOG_LEVEL and the LLM variables. Unset paths resolve under the
// XDG directories.
func ConfigFromEnv() (Config, error) {
	cfg := DefaultConfig()
	cfg.LLM = llm.ConfigFromEnv()
	cfg.Fallback.Timeout = cfg.LLM.Timeout

	if d := os.Getenv("GABARIT_DIR"); d != "" {
		cfg.GabaritDir = d
	}

	if f := os.Getenv("GABARIT_CACHE_FILE"); f != "" {
		cfg.CacheFile = f
	} else {
		f, err := DefaultCacheFile()
		if err != nil {
			return cfg, err
		}
		cfg.CacheFile = f
	}

	db, err := store.DefaultDBPath()
	if err != nil {
		return cfg, err
	}
	cfg.DBPath = db

	if l := os.Getenv("GABARIT_LOG_LEVEL"); l != "" {
		if err := cfg.LogLevel.UnmarshalText([]byte(strings.ToUpper(l))); err != nil {
			return cfg, fmt.Errorf("GABARIT_LOG_LEVEL: %w", err)
		}
	}
	return cfg, nil
}

// DefaultCacheFile is $XDG_CACHE_HOME/gabarit/templates.json, falling
// back to ~/.cache.
func DefaultCacheFile() (string, error) {
	base := os.Getenv("XDG_CACHE_HOME")
	if base == "" {
		home, err := os.UserHomeDir()
		if err != nil {
			return "", fmt.Errorf("resolve home dir: %w", err)
		}
		base = filepath.Join(home, ".cache")
	}
	return filepath.Join(base, "gabarit", "templates.json"), nil
}
