package style

import (
	"math/rand/v2"
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestAll_TenDistinctStyles(t *testing.T) {
	all := All()
	assert.Len(t, all, 10)

	seen := make(map[Style]bool)
	for _, s := range all {
		assert.False(t, seen[s], "duplicate style %q", s)
		seen[s] = true
		assert.True(t, s.Valid())
		assert.NotEmpty(t, Directive(s))
	}
}

func TestParse(t *testing.T) {
	tests := []struct {
		in   string
		want Style
		ok   bool
	}{
		{"concis", Concis, true},
		{"Pas à pas", PasAPas, true},
		{"question-reponse", QuestionReponse, true},
		{"Défi", Defi, true},
		{"Guidé", Guide, true},
		{"poétique", Style("poetique"), false},
	}
	for _, tt := range tests {
		got, ok := Parse(tt.in)
		assert.Equal(t, tt.ok, ok, "Parse(%q)", tt.in)
		assert.Equal(t, tt.want, got, "Parse(%q)", tt.in)
	}
}

func TestDirective_UnknownFallsBack(t *testing.T) {
	assert.Equal(t, Directive(AcademiqueClassique), Directive(Style("inconnu")))
	assert.NotEqual(t, Directive(Concis), Directive(Narratif))
}

func TestBuildCacheKey(t *testing.T) {
	key := BuildCacheKey("Symétrie axiale", "trouver_valeur", "Facile", Concis, "")
	assert.Equal(t, "symetrie_axiale__trouver_valeur__facile__concis", key)

	// Deterministic.
	assert.Equal(t, key, BuildCacheKey("Symétrie axiale", "trouver_valeur", "Facile", Concis, ""))

	// Theme is appended without changing the base key.
	themed := BuildCacheKey("Symétrie axiale", "trouver_valeur", "Facile", Concis, "Sport")
	assert.Equal(t, key+"__theme_sport", themed)
}

func TestRandom_RespectsExclusion(t *testing.T) {
	sel := NewSelector(rand.New(rand.NewPCG(1, 2)))
	for range 500 {
		assert.NotEqual(t, Concis, sel.Random(Concis))
	}
}

func TestRandom_ExcludeAllFallsBackToFullSet(t *testing.T) {
	sel := NewSelector(rand.New(rand.NewPCG(3, 4)))
	got := sel.Random(All()...)
	assert.True(t, got.Valid())
}

func TestRandom_CoversAllStyles(t *testing.T) {
	sel := NewSelector(rand.New(rand.NewPCG(5, 6)))
	seen := make(map[Style]bool)
	for range 2000 {
		seen[sel.Random()] = true
	}
	assert.Len(t, seen, len(All()))
}

func TestPick_RestrictsToCandidates(t *testing.T) {
	sel := NewSelector(rand.New(rand.NewPCG(7, 8)))
	for range 200 {
		got := sel.Pick([]Style{Concis, Oral, Defi}, Oral)
		assert.Contains(t, []Style{Concis, Defi}, got)
	}
	assert.Equal(t, Oral, sel.Pick([]Style{Oral}, Oral))
}

func TestVariabilityScore(t *testing.T) {
	assert.Equal(t, 1.0, VariabilityScore(nil))
	assert.Equal(t, 1.0, VariabilityScore([]string{"a b c"}))
	assert.InDelta(t, 1.0/3.0, VariabilityScore([]string{"a a a", "a a a"}), 1e-9)
	assert.Equal(t, 1.0, VariabilityScore([]string{"trace le point", "place son image"}))
	assert.Equal(t, 0.0, VariabilityScore([]string{"", "  "}))
}

func TestVariabilityScore_NearDuplicatesSaturate(t *testing.T) {
	assert.Equal(t, 1.0, VariabilityScore([]string{"a b c", "a b d"}))
	assert.Equal(t, 1.0, VariabilityScore([]string{
		"Trace le symétrique du point M par rapport à l'axe.",
		"Trace le symétrique du point A par rapport à la droite.",
	}))
	assert.Less(t, VariabilityScore([]string{"a b c", "a b c"}), 1.0)
}

func TestVariabilityScore_CaseInsensitive(t *testing.T) {
	assert.InDelta(t, 0.5, VariabilityScore([]string{"A a", "a A"}), 1e-9)
}
