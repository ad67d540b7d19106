// Package app builds the service graph once per process. Every command
// receives an *App instead of reaching for package-level state.
package app

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"

	"github.com/abhisek/gabarit/internal/gabarit"
	"github.com/abhisek/gabarit/internal/llm"
	"github.com/abhisek/gabarit/internal/statement"
	"github.com/abhisek/gabarit/internal/store"
	"github.com/abhisek/gabarit/internal/style"
	"github.com/abhisek/gabarit/internal/templatecache"
)

// App owns the long-lived components.
type App struct {
	Config Config
	Log    *slog.Logger

	Store      *store.Store // nil without DBPath
	Cache      *templatecache.Cache
	Gabarits   *gabarit.Loader
	Selector   *style.Selector
	Provider   llm.Provider // nil when no provider is configured
	Statements *statement.Service
}

// New wires every component from cfg. A provider that fails to initialize
// is logged and the fallback disabled; a store that fails to open is an
// error.
func New(ctx context.Context, cfg Config) (*App, error) {
	log := slog.New(slog.NewTextHandler(os.Stderr, &slog.HandlerOptions{Level: cfg.LogLevel}))
	a := &App{Config: cfg, Log: log}

	var (
		events  store.EventRepo
		history store.StatementRepo
	)
	if cfg.DBPath != "" {
		if err := store.EnsureDir(cfg.DBPath); err != nil {
			return nil, fmt.Errorf("prepare database dir: %w", err)
		}
		s, err := store.Open(cfg.DBPath)
		if err != nil {
			return nil, fmt.Errorf("open store: %w", err)
		}
		a.Store = s
		events = s.EventRepo()
		history = s.StatementRepo()
	}

	provider, err := llm.NewProvider(ctx, cfg.LLM, events, log)
	if err != nil {
		log.Warn("LLM fallback unavailable", "provider", cfg.LLM.Provider, "error", err)
	}
	a.Provider = provider

	cacheCfg := templatecache.DefaultConfig()
	cacheCfg.SnapshotPath = cfg.CacheFile
	cacheCfg.Logger = log
	if cost := llm.LookupCost(cfg.LLM.Model()); cost != nil {
		cacheCfg.CostPerMTok = cost.OutputPerMTok
	}
	a.Cache = templatecache.New(cacheCfg)

	a.Gabarits = gabarit.Load(gabarit.Config{Dir: cfg.GabaritDir, Logger: log})
	a.Selector = style.NewSelector(nil)

	var fallback statement.Fallback
	if provider != nil {
		fallback = statement.NewLLMFallback(provider, cfg.Fallback)
	}
	stCfg := cfg.Statement
	stCfg.Logger = log
	a.Statements = statement.NewService(a.Cache, a.Gabarits, a.Selector, fallback, history, stCfg)

	return a, nil
}

// Close closes the store. The cache persists on every mutation and needs
// no flush.
func (a *App) Close() error {
	var errs []error
	if a.Store != nil {
		errs = append(errs, a.Store.Close())
	}
	return errors.Join(errs...)
}
