package gabarit

import (
	"math/rand/v2"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/abhisek/gabarit/internal/style"
)

const axialFile = `{
	"chapitre": "Symétrie axiale",
	"type_exercice": "trouver_valeur",
	"gabarits": [
		{"style": "concis", "templates": [
			"Point {pointA}({coordA_x},{coordA_y}). {axeDesc}. Trouve {pointB}.",
			"Place {pointB}, symétrique de {pointA} par rapport à {axeDesc}."
		]},
		{"style": "narratif", "templates": ["Léa trace {pointA}..."]}
	]
}`

func writeFile(t *testing.T, dir, name, content string) {
	t.Helper()
	path := filepath.Join(dir, name)
	require.NoError(t, os.MkdirAll(filepath.Dir(path), 0o755))
	require.NoError(t, os.WriteFile(path, []byte(content), 0o644))
}

func testLoader(t *testing.T, files map[string]string) *Loader {
	t.Helper()
	dir := t.TempDir()
	for name, content := range files {
		writeFile(t, dir, name, content)
	}
	return Load(Config{Dir: dir, Rand: rand.New(rand.NewPCG(1, 1))})
}

func TestLoad(t *testing.T) {
	l := testLoader(t, map[string]string{"axiale.json": axialFile})

	assert.True(t, l.HasGabarit("Symétrie axiale", "trouver_valeur"))
	assert.True(t, l.HasGabarit("symetrie axiale", "Trouver_Valeur"))
	assert.False(t, l.HasGabarit("Symétrie centrale", "trouver_valeur"))
	assert.Equal(t, []style.Style{style.Concis, style.Narratif}, l.Styles("Symétrie axiale", "trouver_valeur"))
}

func TestLoad_BadFilesSkipped(t *testing.T) {
	l := testLoader(t, map[string]string{
		"axiale.json":          axialFile,
		"broken.json":          `{"chapitre": `,
		"no_gabarits.json":     `{"chapitre": "Fractions", "type_exercice": "x"}`,
		"empty_templates.json": `{"chapitre": "Aires", "type_exercice": "x", "gabarits": [{"style": "concis", "templates": []}]}`,
		"unknown_style.json":   `{"chapitre": "Angles", "type_exercice": "x", "gabarits": [{"style": "poetique", "templates": ["a"]}]}`,
		"notes.txt":            "not a gabarit",
	})

	require.Len(t, l.Entries(), 1)
	assert.True(t, l.HasGabarit("Symétrie axiale", "trouver_valeur"))
	assert.False(t, l.HasGabarit("Fractions", "x"))
	assert.False(t, l.HasGabarit("Angles", "x"))
}

func TestLoad_MissingDirIsEmpty(t *testing.T) {
	l := Load(Config{Dir: filepath.Join(t.TempDir(), "absent")})
	assert.Empty(t, l.Entries())
}

func TestLoad_NestedAndMerged(t *testing.T) {
	const oralFile = `{"chapitre": "Symetrie Axiale", "type_exercice": "trouver_valeur",
		"gabarits": [{"style": "oral", "templates": ["Dis-moi où est {pointB}."]}]}`

	l := testLoader(t, map[string]string{
		"6e/axiale.json":     axialFile,
		"5e/axiale_bis.json": oralFile,
	})

	entries := l.Entries()
	require.Len(t, entries, 1)
	assert.Len(t, entries[0].Sources, 2)
	assert.Contains(t, l.Styles("Symétrie axiale", "trouver_valeur"), style.Oral)
}

func TestGetRandomGabarit(t *testing.T) {
	l := testLoader(t, map[string]string{"axiale.json": axialFile})

	seen := make(map[string]bool)
	for range 100 {
		tpl, ok := l.GetRandomGabarit("Symétrie axiale", "trouver_valeur", style.Concis)
		require.True(t, ok)
		seen[tpl] = true
	}
	assert.Len(t, seen, 2)

	_, ok := l.GetRandomGabarit("Symétrie axiale", "trouver_valeur", style.Defi)
	assert.False(t, ok, "absent style is a miss")

	_, ok = l.GetRandomGabarit("Fractions", "trouver_valeur", style.Concis)
	assert.False(t, ok, "absent pair is a miss")
}
