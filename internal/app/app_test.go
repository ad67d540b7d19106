package app

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/gabarit/internal/llm"
	"github.com/abhisek/gabarit/internal/mathspec"
	"github.com/abhisek/gabarit/internal/statement"
	"github.com/abhisek/gabarit/internal/style"
)

func testConfig(t *testing.T) Config {
	t.Helper()
	dir := t.TempDir()
	cfg := DefaultConfig()
	cfg.GabaritDir = filepath.Join(dir, "gabarits")
	cfg.CacheFile = filepath.Join(dir, "cache", "templates.json")
	cfg.DBPath = filepath.Join(dir, "data", "gabarit.db")
	return cfg
}

func TestNew_WiresMockFallback(t *testing.T) {
	cfg := testConfig(t)
	cfg.LLM.Provider = llm.ProviderMock

	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	require.NotNil(t, a.Provider)
	require.NotNil(t, a.Store)
	assert.NotNil(t, a.Statements.Fallback)
	assert.Empty(t, a.Gabarits.Entries())
}

func TestNew_NoProvider(t *testing.T) {
	a, err := New(context.Background(), testConfig(t))
	require.NoError(t, err)
	defer a.Close()

	assert.Nil(t, a.Provider)
	assert.Nil(t, a.Statements.Fallback)

	spec := &mathspec.Spec{Chapter: "Symétrie centrale", Kind: "trouver_valeur"}
	_, err = a.Statements.Generate(context.Background(), spec, statement.Options{Style: style.Concis})
	assert.ErrorIs(t, err, statement.ErrNoTemplate)
}

func TestCacheCountersPersistWithoutClose(t *testing.T) {
	cfg := testConfig(t)
	a, err := New(context.Background(), cfg)
	require.NoError(t, err)
	defer a.Close()

	a.Cache.Set("k", "v")
	_, _ = a.Cache.Get("k")

	raw, err := os.ReadFile(cfg.CacheFile)
	require.NoError(t, err)
	var snap map[string]any
	require.NoError(t, json.Unmarshal(raw, &snap))
	assert.EqualValues(t, 1, snap["hits"])
}

func TestConfigFromEnv(t *testing.T) {
	dir := t.TempDir()
	t.Setenv("GABARIT_DIR", "/srv/gabarits")
	t.Setenv("GABARIT_CACHE_FILE", filepath.Join(dir, "c.json"))
	t.Setenv("GABARIT_DB", filepath.Join(dir, "g.db"))
	t.Setenv("GABARIT_LOG_LEVEL", "debug")
	t.Setenv("GABARIT_LLM_PROVIDER", "mock")

	cfg, err := ConfigFromEnv()
	require.NoError(t, err)
	assert.Equal(t, "/srv/gabarits", cfg.GabaritDir)
	assert.Equal(t, filepath.Join(dir, "c.json"), cfg.CacheFile)
	assert.Equal(t, filepath.Join(dir, "g.db"), cfg.DBPath)
	assert.Equal(t, "DEBUG", cfg.LogLevel.String())
	assert.Equal(t, llm.ProviderMock, cfg.LLM.Provider)

	t.Setenv("GABARIT_LOG_LEVEL", "loud")
	_, err = ConfigFromEnv()
	assert.Error(t, err)
}
